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

// StaffHandler handles medical personnel requests.
type StaffHandler struct {
	DB    *gorm.DB
	Audit *audit.Logger
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(db *gorm.DB, auditLog *audit.Logger) *StaffHandler {
	return &StaffHandler{DB: db, Audit: auditLog}
}

// CreateStaffRequest represents the request body for adding a staff member.
type CreateStaffRequest struct {
	UserID          string `json:"userId" binding:"required,uuid"`
	FullName        string `json:"fullName" binding:"required"`
	DateOfBirth     string `json:"dateOfBirth" binding:"required"` // YYYY-MM-DD
	Gender          string `json:"gender" binding:"required,oneof=M F O"`
	Position        string `json:"position" binding:"required,oneof=doctor nurse registrar"`
	Specialty       string `json:"specialty"`
	LicenseNumber   string `json:"licenseNumber" binding:"required"`
	ExperienceYears int    `json:"experienceYears" binding:"min=0,max=70"`
	DepartmentID    string `json:"departmentId" binding:"omitempty,uuid"`
	Phone           string `json:"phone" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	WorkSchedule    string `json:"workSchedule"`
}

// CreateStaff adds a new staff member.
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	dob, err := time.Parse(models.DateLayout, req.DateOfBirth)
	if err != nil {
		utils.BadRequest(c, "Invalid dateOfBirth format (YYYY-MM-DD)")
		return
	}

	staff := models.Staff{
		UserID:          req.UserID,
		FullName:        req.FullName,
		DateOfBirth:     dob,
		Gender:          models.Gender(req.Gender),
		Position:        models.Position(req.Position),
		Specialty:       req.Specialty,
		LicenseNumber:   req.LicenseNumber,
		ExperienceYears: req.ExperienceYears,
		Phone:           req.Phone,
		Email:           req.Email,
		WorkSchedule:    req.WorkSchedule,
		IsAvailable:     true,
	}
	if req.DepartmentID != "" {
		staff.DepartmentID = &req.DepartmentID
	}

	if err := h.DB.Create(&staff).Error; err != nil {
		utils.InternalServerError(c, "Failed to create staff member: "+err.Error())
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	h.Audit.Record(userID, "create", "Staff", staff.ID, nil, middleware.ClientIP(c))
	utils.Created(c, "Staff member created successfully", staff)
}

// GetStaff fetches staff members, optionally filtered by position or department.
func (h *StaffHandler) GetStaff(c *gin.Context) {
	var staff []models.Staff
	query := h.DB.Preload("Department").Order("full_name asc")
	if position := c.Query("position"); position != "" {
		query = query.Where("position = ?", position)
	}
	if departmentID := c.Query("department_id"); departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}
	if err := query.Find(&staff).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch staff: "+err.Error())
		return
	}
	utils.Success(c, "Staff fetched successfully", staff)
}

// GetDoctors fetches all bookable doctors.
func (h *StaffHandler) GetDoctors(c *gin.Context) {
	var doctors []models.Staff
	if err := h.DB.Preload("Department").
		Where("position = ? AND is_available = ?", models.PositionDoctor, true).
		Order("full_name asc").
		Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}
	utils.Success(c, "Doctors fetched successfully", doctors)
}

// GetStaffByID fetches a single staff member.
func (h *StaffHandler) GetStaffByID(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Staff ID format")
		return
	}

	var staff models.Staff
	if err := h.DB.Preload("Department").First(&staff, "id = ?", staffID.String()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Staff member not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Staff member fetched successfully", staff)
}

// UpdateStaffRequest represents the request body for updating a staff member.
type UpdateStaffRequest struct {
	Specialty    string `json:"specialty"`
	DepartmentID string `json:"departmentId" binding:"omitempty,uuid"`
	Phone        string `json:"phone"`
	Email        string `json:"email" binding:"omitempty,email"`
	WorkSchedule string `json:"workSchedule"`
	IsAvailable  *bool  `json:"isAvailable"`
}

// UpdateStaff updates a staff member's mutable fields.
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Staff ID format")
		return
	}

	var req UpdateStaffRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var staff models.Staff
	if err := h.DB.First(&staff, "id = ?", staffID.String()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Staff member not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Specialty != "" {
		staff.Specialty = req.Specialty
	}
	if req.DepartmentID != "" {
		staff.DepartmentID = &req.DepartmentID
	}
	if req.Phone != "" {
		staff.Phone = req.Phone
	}
	if req.Email != "" {
		staff.Email = req.Email
	}
	if req.WorkSchedule != "" {
		staff.WorkSchedule = req.WorkSchedule
	}
	if req.IsAvailable != nil {
		staff.IsAvailable = *req.IsAvailable
	}

	if err := h.DB.Save(&staff).Error; err != nil {
		utils.InternalServerError(c, "Failed to update staff member: "+err.Error())
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	h.Audit.Record(userID, "update", "Staff", staff.ID, nil, middleware.ClientIP(c))
	utils.Success(c, "Staff member updated successfully", staff)
}
