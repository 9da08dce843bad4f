package handlers

import (
	"fmt"
	"time"

	"clinic-server/internal/audit"
	"clinic-server/internal/middleware"
	"clinic-server/internal/models"
	"clinic-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MedicalRecordHandler handles medical record related requests.
type MedicalRecordHandler struct {
	DB    *gorm.DB
	Audit *audit.Logger
}

// NewMedicalRecordHandler creates a new MedicalRecordHandler.
func NewMedicalRecordHandler(db *gorm.DB, auditLog *audit.Logger) *MedicalRecordHandler {
	return &MedicalRecordHandler{DB: db, Audit: auditLog}
}

// CreateMedicalRecordRequest represents the request body for creating a medical record.
type CreateMedicalRecordRequest struct {
	PatientID     string `json:"patientId" binding:"required,uuid"`
	AppointmentID string `json:"appointmentId" binding:"omitempty,uuid"`
	RecordDate    string `json:"recordDate"` // RFC3339, defaults to now
	Symptoms      string `json:"symptoms" binding:"required"`
	DiagnosisID   string `json:"diagnosisId" binding:"omitempty,uuid"`
	TreatmentPlan string `json:"treatmentPlan" binding:"required"`
	Notes         string `json:"notes"`
}

// CreateMedicalRecord handles creating a new medical record.
// Only accessible by doctors.
func (h *MedicalRecordHandler) CreateMedicalRecord(c *gin.Context) {
	var req CreateMedicalRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	// The authoring doctor is the authenticated user's staff identity.
	var doctor models.Staff
	if err := h.DB.Where("user_id = ? AND position = ?", userID, models.PositionDoctor).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Forbidden(c, "Only doctors can create medical records")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	recordDate := time.Now()
	if req.RecordDate != "" {
		var err error
		recordDate, err = time.Parse(time.RFC3339, req.RecordDate)
		if err != nil {
			utils.BadRequest(c, "Invalid date format. Please use ISO 8601 format (YYYY-MM-DDTHH:MM:SSZ)")
			return
		}
	}

	record := models.MedicalRecord{
		PatientID:     req.PatientID,
		DoctorID:      doctor.ID,
		RecordDate:    recordDate,
		Symptoms:      req.Symptoms,
		TreatmentPlan: req.TreatmentPlan,
		Notes:         req.Notes,
	}
	if req.AppointmentID != "" {
		record.AppointmentID = &req.AppointmentID
	}
	if req.DiagnosisID != "" {
		record.DiagnosisID = &req.DiagnosisID
	}

	if err := h.DB.Create(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to create medical record: "+err.Error())
		return
	}

	h.Audit.Record(userID, "create", "MedicalRecord", record.ID, nil, middleware.ClientIP(c))
	utils.Created(c, "Medical record created successfully", record)
}

// GetMedicalRecordsForPatient fetches all medical records of a patient.
func (h *MedicalRecordHandler) GetMedicalRecordsForPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		utils.BadRequest(c, "Invalid Patient ID format")
		return
	}

	// Patients can only read their own history.
	userID, _ := middleware.GetUserIDFromContext(c)
	if role, _ := middleware.GetUserRoleFromContext(c); role == models.RolePatient {
		var patient models.Patient
		if err := h.DB.Where("user_id = ?", userID).First(&patient).Error; err != nil || patient.ID != patientID.String() {
			utils.Forbidden(c, "You are not authorized to view these medical records")
			return
		}
	}

	var records []models.MedicalRecord
	if err := h.DB.Preload("Diagnosis").Preload("Prescriptions").
		Where("patient_id = ?", patientID.String()).
		Order("record_date desc").
		Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medical records: "+err.Error())
		return
	}
	utils.Success(c, "Medical records fetched successfully", records)
}

// GetMedicalRecordByID fetches a single medical record.
func (h *MedicalRecordHandler) GetMedicalRecordByID(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Medical Record ID format")
		return
	}

	var record models.MedicalRecord
	if err := h.DB.Preload("Diagnosis").Preload("Prescriptions").First(&record, "id = ?", recordID.String()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medical record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Medical record fetched successfully", record)
}

// UpdateMedicalRecordRequest represents the request body for amending a record.
type UpdateMedicalRecordRequest struct {
	Symptoms      string `json:"symptoms"`
	DiagnosisID   string `json:"diagnosisId" binding:"omitempty,uuid"`
	TreatmentPlan string `json:"treatmentPlan"`
	Notes         string `json:"notes"`
}

// UpdateMedicalRecord amends an unsigned medical record.
func (h *MedicalRecordHandler) UpdateMedicalRecord(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Medical Record ID format")
		return
	}

	var req UpdateMedicalRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var record models.MedicalRecord
	if err := h.DB.First(&record, "id = ?", recordID.String()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medical record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if record.IsSigned {
		utils.Forbidden(c, "Signed medical records cannot be amended")
		return
	}

	if req.Symptoms != "" {
		record.Symptoms = req.Symptoms
	}
	if req.TreatmentPlan != "" {
		record.TreatmentPlan = req.TreatmentPlan
	}
	if req.Notes != "" {
		record.Notes = req.Notes
	}
	if req.DiagnosisID != "" {
		record.DiagnosisID = &req.DiagnosisID
	}

	if err := h.DB.Save(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to update medical record: "+err.Error())
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	h.Audit.Record(userID, "update", "MedicalRecord", record.ID, nil, middleware.ClientIP(c))
	utils.Success(c, "Medical record updated successfully", record)
}

// DeleteMedicalRecord always refuses: medical records are append-only.
func (h *MedicalRecordHandler) DeleteMedicalRecord(c *gin.Context) {
	utils.Forbidden(c, "Deleting medical records is forbidden")
}

// SignMedicalRecord applies the doctor's digital signature to a record.
func (h *MedicalRecordHandler) SignMedicalRecord(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Medical Record ID format")
		return
	}

	var record models.MedicalRecord
	if err := h.DB.First(&record, "id = ?", recordID.String()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medical record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	record.IsSigned = true
	record.DigitalSignature = fmt.Sprintf("Signed by %s at %s", userID, time.Now().Format(time.RFC3339))

	if err := h.DB.Save(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to sign medical record: "+err.Error())
		return
	}

	h.Audit.Record(userID, "sign", "MedicalRecord", record.ID, nil, middleware.ClientIP(c))
	utils.Success(c, "Medical record signed", record)
}
