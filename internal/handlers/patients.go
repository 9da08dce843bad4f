package handlers

import (
	"time"

	"clinic-server/internal/audit"
	"clinic-server/internal/config"
	"clinic-server/internal/middleware"
	"clinic-server/internal/models"
	"clinic-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PatientHandler handles patient registry requests.
type PatientHandler struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Audit *audit.Logger
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB, cfg *config.Config, auditLog *audit.Logger) *PatientHandler {
	return &PatientHandler{DB: db, Cfg: cfg, Audit: auditLog}
}

// CreatePatientRequest represents the request body for registering a patient.
type CreatePatientRequest struct {
	UserID             string `json:"userId" binding:"required,uuid"`
	FullName           string `json:"fullName" binding:"required"`
	DateOfBirth        string `json:"dateOfBirth" binding:"required"` // YYYY-MM-DD
	Gender             string `json:"gender" binding:"required,oneof=M F O"`
	PassportNumber     string `json:"passportNumber" binding:"required"`
	Address            string `json:"address" binding:"required"`
	Phone              string `json:"phone" binding:"required"`
	Email              string `json:"email" binding:"omitempty,email"`
	InsuranceCompanyID string `json:"insuranceCompanyId" binding:"omitempty,uuid"`
	InsuranceNumber    string `json:"insuranceNumber" binding:"required,len=16,numeric"`
	EmergencyContact   string `json:"emergencyContact" binding:"required"`
	EmergencyPhone     string `json:"emergencyPhone" binding:"required"`
	Allergies          string `json:"allergies"`
	ChronicDiseases    string `json:"chronicDiseases"`
}

// CreatePatient registers a new patient.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	dob, err := time.Parse(models.DateLayout, req.DateOfBirth)
	if err != nil {
		utils.BadRequest(c, "Invalid dateOfBirth format (YYYY-MM-DD)")
		return
	}
	if age := ageOn(dob, time.Now()); age < 0 || age > 120 {
		utils.BadRequest(c, "Patient age must be between 0 and 120 years")
		return
	}

	passport := req.PassportNumber
	if h.Cfg.EncryptionKey != "" {
		passport, err = utils.EncryptField(h.Cfg.EncryptionKey, req.PassportNumber)
		if err != nil {
			utils.InternalServerError(c, "Failed to protect sensitive data: "+err.Error())
			return
		}
	}

	patient := models.Patient{
		UserID:           req.UserID,
		FullName:         req.FullName,
		DateOfBirth:      dob,
		Gender:           models.Gender(req.Gender),
		PassportNumber:   passport,
		Address:          req.Address,
		Phone:            req.Phone,
		Email:            req.Email,
		InsuranceNumber:  req.InsuranceNumber,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		Allergies:        req.Allergies,
		ChronicDiseases:  req.ChronicDiseases,
	}
	if req.InsuranceCompanyID != "" {
		patient.InsuranceCompanyID = &req.InsuranceCompanyID
	}

	if err := h.DB.Create(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to create patient: "+err.Error())
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	h.Audit.Record(userID, "create", "Patient", patient.ID, nil, middleware.ClientIP(c))
	utils.Created(c, "Patient created successfully", patient)
}

// GetPatients fetches all patients.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	var patients []models.Patient
	query := h.DB.Order("full_name asc")
	if insurance := c.Query("insurance_number"); insurance != "" {
		query = query.Where("insurance_number = ?", insurance)
	}
	if err := query.Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}
	utils.Success(c, "Patients fetched successfully", patients)
}

// GetPatientByID fetches a single patient, decrypting protected fields.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Patient ID format")
		return
	}

	var patient models.Patient
	if err := h.DB.Preload("InsuranceCompany").First(&patient, "id = ?", patientID.String()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if h.Cfg.EncryptionKey != "" {
		if plain, err := utils.DecryptField(h.Cfg.EncryptionKey, patient.PassportNumber); err == nil {
			patient.PassportNumber = plain
		}
	}
	utils.Success(c, "Patient fetched successfully", patient)
}

// UpdatePatientRequest represents the request body for updating a patient.
type UpdatePatientRequest struct {
	FullName         string `json:"fullName"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	Email            string `json:"email" binding:"omitempty,email"`
	EmergencyContact string `json:"emergencyContact"`
	EmergencyPhone   string `json:"emergencyPhone"`
	Allergies        string `json:"allergies"`
	ChronicDiseases  string `json:"chronicDiseases"`
}

// UpdatePatient updates a patient's contact and medical background fields.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Patient ID format")
		return
	}

	var req UpdatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", patientID.String()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.FullName != "" {
		patient.FullName = req.FullName
	}
	if req.Address != "" {
		patient.Address = req.Address
	}
	if req.Phone != "" {
		patient.Phone = req.Phone
	}
	if req.Email != "" {
		patient.Email = req.Email
	}
	if req.EmergencyContact != "" {
		patient.EmergencyContact = req.EmergencyContact
	}
	if req.EmergencyPhone != "" {
		patient.EmergencyPhone = req.EmergencyPhone
	}
	if req.Allergies != "" {
		patient.Allergies = req.Allergies
	}
	if req.ChronicDiseases != "" {
		patient.ChronicDiseases = req.ChronicDiseases
	}

	if err := h.DB.Save(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to update patient: "+err.Error())
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	h.Audit.Record(userID, "update", "Patient", patient.ID, nil, middleware.ClientIP(c))
	utils.Success(c, "Patient updated successfully", patient)
}

// ageOn returns full years between birth and day.
func ageOn(birth, day time.Time) int {
	age := day.Year() - birth.Year()
	if day.Month() < birth.Month() || (day.Month() == birth.Month() && day.Day() < birth.Day()) {
		age--
	}
	return age
}
