package handlers

import (
	"time"

	"clinic-server/internal/audit"
	"clinic-server/internal/middleware"
	"clinic-server/internal/models"
	"clinic-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PrescriptionHandler handles prescription requests.
type PrescriptionHandler struct {
	DB    *gorm.DB
	Audit *audit.Logger
}

// NewPrescriptionHandler creates a new PrescriptionHandler.
func NewPrescriptionHandler(db *gorm.DB, auditLog *audit.Logger) *PrescriptionHandler {
	return &PrescriptionHandler{DB: db, Audit: auditLog}
}

// CreatePrescriptionRequest represents the request body for issuing a prescription.
type CreatePrescriptionRequest struct {
	MedicalRecordID string `json:"medicalRecordId" binding:"required,uuid"`
	MedicationName  string `json:"medicationName" binding:"required"`
	Dosage          string `json:"dosage" binding:"required"`
	Frequency       string `json:"frequency" binding:"required"`
	DurationDays    int    `json:"durationDays" binding:"required,min=1"`
	Instructions    string `json:"instructions" binding:"required"`
	ValidUntil      string `json:"validUntil" binding:"required"` // YYYY-MM-DD
}

// CreatePrescription attaches a new prescription to a medical record.
func (h *PrescriptionHandler) CreatePrescription(c *gin.Context) {
	var req CreatePrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	validUntil, err := time.Parse(models.DateLayout, req.ValidUntil)
	if err != nil {
		utils.BadRequest(c, "Invalid validUntil format (YYYY-MM-DD)")
		return
	}

	var record models.MedicalRecord
	if err := h.DB.First(&record, "id = ?", req.MedicalRecordID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medical record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	prescription := models.Prescription{
		MedicalRecordID: record.ID,
		PatientID:       record.PatientID,
		DoctorID:        record.DoctorID,
		MedicationName:  req.MedicationName,
		Dosage:          req.Dosage,
		Frequency:       req.Frequency,
		DurationDays:    req.DurationDays,
		Instructions:    req.Instructions,
		ValidUntil:      validUntil,
	}

	if err := h.DB.Create(&prescription).Error; err != nil {
		utils.InternalServerError(c, "Failed to create prescription: "+err.Error())
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	h.Audit.Record(userID, "create", "Prescription", prescription.ID, nil, middleware.ClientIP(c))
	utils.Created(c, "Prescription created successfully", prescription)
}

// GetPrescriptionsForPatient fetches all prescriptions of a patient.
func (h *PrescriptionHandler) GetPrescriptionsForPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		utils.BadRequest(c, "Invalid Patient ID format")
		return
	}

	var prescriptions []models.Prescription
	if err := h.DB.Where("patient_id = ?", patientID.String()).
		Order("created_at desc").
		Find(&prescriptions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}
	utils.Success(c, "Prescriptions fetched successfully", prescriptions)
}

// IssuePrescription marks a prescription as handed out to the patient.
func (h *PrescriptionHandler) IssuePrescription(c *gin.Context) {
	prescriptionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Prescription ID format")
		return
	}

	var prescription models.Prescription
	if err := h.DB.First(&prescription, "id = ?", prescriptionID.String()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Prescription not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if prescription.IsIssued {
		utils.BadRequest(c, "Prescription has already been issued")
		return
	}

	prescription.IsIssued = true
	if err := h.DB.Save(&prescription).Error; err != nil {
		utils.InternalServerError(c, "Failed to issue prescription: "+err.Error())
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	h.Audit.Record(userID, "issue", "Prescription", prescription.ID, nil, middleware.ClientIP(c))
	utils.Success(c, "Prescription issued", prescription)
}
