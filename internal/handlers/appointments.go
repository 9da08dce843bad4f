package handlers

import (
	"fmt"

	"clinic-server/internal/audit"
	"clinic-server/internal/middleware"
	"clinic-server/internal/models"
	"clinic-server/internal/scheduling"
	"clinic-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentHandler adapts HTTP requests to the scheduling core.
type AppointmentHandler struct {
	DB        *gorm.DB
	Scheduler *scheduling.Scheduler
	Audit     *audit.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, scheduler *scheduling.Scheduler, auditLog *audit.Logger) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Scheduler: scheduler, Audit: auditLog}
}

// respondSchedulingError maps the scheduling error taxonomy onto HTTP
// statuses. Callers must only pass errors returned by the scheduler.
func respondSchedulingError(c *gin.Context, err error) {
	switch {
	case scheduling.IsValidation(err):
		utils.BadRequest(c, err.Error())
	case scheduling.IsConflict(err):
		utils.Conflict(c, err.Error())
	case scheduling.IsLeadTime(err):
		utils.Conflict(c, err.Error())
	case scheduling.IsNotFound(err):
		utils.NotFound(c, err.Error())
	case scheduling.IsInvalidState(err):
		utils.Conflict(c, err.Error())
	default:
		utils.InternalServerError(c, "Scheduling error: "+err.Error())
	}
}

// CreateAppointmentRequest represents the request body for booking an appointment.
type CreateAppointmentRequest struct {
	DoctorID        string `json:"doctorId" binding:"required,uuid"`
	PatientID       string `json:"patientId" binding:"required,uuid"`
	Date            string `json:"date" binding:"required"` // YYYY-MM-DD
	Time            string `json:"time" binding:"required"` // HH:MM
	DurationMinutes int    `json:"durationMinutes"`
	Reason          string `json:"reason" binding:"required"`
	Notes           string `json:"notes"`
}

// CreateAppointment books a new appointment for a patient with a doctor.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	// Patients can only book for themselves
	if role, _ := middleware.GetUserRoleFromContext(c); role == models.RolePatient {
		var patient models.Patient
		if err := h.DB.Where("user_id = ?", userID).First(&patient).Error; err != nil || patient.ID != req.PatientID {
			utils.Forbidden(c, "Patients can only book appointments for themselves.")
			return
		}
	}

	appt, err := h.Scheduler.Create(scheduling.CreateRequest{
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Reason:          req.Reason,
		Notes:           req.Notes,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	h.Audit.Record(userID, "create", "Appointment", appt.ID, map[string]interface{}{
		"doctor_id": appt.DoctorID,
		"date":      req.Date,
		"time":      appt.Time,
	}, middleware.ClientIP(c))
	utils.Created(c, "Appointment created successfully", appt)
}

// GetAppointments fetches appointments for the logged-in user. Patients
// see their own, doctors the ones booked with them, everyone else all.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Preload("Patient").Preload("Doctor").
		Order("appointment_date asc, appointment_time asc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("appointment_date = ?", date)
	}

	var appointments []models.Appointment
	var err error
	switch role {
	case models.RolePatient:
		err = query.Joins("JOIN patients ON patients.id = appointments.patient_id").
			Where("patients.user_id = ?", userID).Find(&appointments).Error
	case models.RoleDoctor:
		err = query.Joins("JOIN staff ON staff.id = appointments.doctor_id").
			Where("staff.user_id = ?", userID).Find(&appointments).Error
	default: // admin, nurse, registrar
		err = query.Find(&appointments).Error
	}

	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID fetches a single appointment by its ID.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := h.DB.Preload("Patient").Preload("Doctor").First(&appointment, "id = ?", appointmentID.String()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Appointment fetched successfully", appointment)
}

// ConfirmAppointment confirms a scheduled appointment.
func (h *AppointmentHandler) ConfirmAppointment(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	if err := h.Scheduler.Confirm(appointmentID.String()); err != nil {
		respondSchedulingError(c, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	h.Audit.Record(userID, "confirm", "Appointment", appointmentID.String(), nil, middleware.ClientIP(c))
	utils.Success(c, "Appointment confirmed", nil)
}

// CancelAppointment cancels an appointment, subject to the clinic's
// cancellation lead-time policy.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	if err := h.Scheduler.Cancel(appointmentID.String()); err != nil {
		respondSchedulingError(c, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	h.Audit.Record(userID, "cancel", "Appointment", appointmentID.String(), nil, middleware.ClientIP(c))
	utils.Success(c, "Appointment cancelled", nil)
}

// GetAvailableSlots lists a doctor's free 30-minute slots on a date.
func (h *AppointmentHandler) GetAvailableSlots(c *gin.Context) {
	doctorID := c.Query("doctor_id")
	date := c.Query("date")
	if doctorID == "" || date == "" {
		utils.BadRequest(c, "doctor_id and date query parameters are required")
		return
	}

	slots, err := h.Scheduler.AvailableSlots(doctorID, date)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Available slots fetched successfully", gin.H{"availableSlots": slots})
}

// GetAppointmentStats reports booking totals for reporting dashboards.
func (h *AppointmentHandler) GetAppointmentStats(c *gin.Context) {
	var total, completed, cancelled int64
	if err := h.DB.Model(&models.Appointment{}).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to compute stats: "+err.Error())
		return
	}
	h.DB.Model(&models.Appointment{}).Where("status = ?", models.StatusCompleted).Count(&completed)
	h.DB.Model(&models.Appointment{}).Where("status = ?", models.StatusCancelled).Count(&cancelled)

	completionRate := "0%"
	if total > 0 {
		completionRate = fmt.Sprintf("%.2f%%", float64(completed)/float64(total)*100)
	}
	utils.Success(c, "Appointment stats fetched successfully", gin.H{
		"total":          total,
		"completed":      completed,
		"cancelled":      cancelled,
		"completionRate": completionRate,
	})
}
