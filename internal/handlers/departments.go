package handlers

import (
	"clinic-server/internal/models"
	"clinic-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DepartmentHandler handles department registry requests.
type DepartmentHandler struct {
	DB *gorm.DB
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(db *gorm.DB) *DepartmentHandler {
	return &DepartmentHandler{DB: db}
}

// CreateDepartmentRequest represents the request body for creating a department.
type CreateDepartmentRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description" binding:"required"`
	HeadDoctorID  string `json:"headDoctorId" binding:"omitempty,uuid"`
	Phone         string `json:"phone" binding:"required"`
	CabinetNumber string `json:"cabinetNumber" binding:"required"`
}

// CreateDepartment creates a new department.
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req CreateDepartmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	department := models.Department{
		Name:          req.Name,
		Description:   req.Description,
		Phone:         req.Phone,
		CabinetNumber: req.CabinetNumber,
	}
	if req.HeadDoctorID != "" {
		department.HeadDoctorID = &req.HeadDoctorID
	}

	if err := h.DB.Create(&department).Error; err != nil {
		utils.InternalServerError(c, "Failed to create department: "+err.Error())
		return
	}
	utils.Created(c, "Department created successfully", department)
}

// GetDepartments fetches all departments.
func (h *DepartmentHandler) GetDepartments(c *gin.Context) {
	var departments []models.Department
	if err := h.DB.Preload("HeadDoctor").Order("name asc").Find(&departments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch departments: "+err.Error())
		return
	}
	utils.Success(c, "Departments fetched successfully", departments)
}

// GetDepartmentByID fetches a single department with its staff.
func (h *DepartmentHandler) GetDepartmentByID(c *gin.Context) {
	departmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Department ID format")
		return
	}

	var department models.Department
	if err := h.DB.Preload("HeadDoctor").Preload("StaffMembers").First(&department, "id = ?", departmentID.String()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Department not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Department fetched successfully", department)
}
