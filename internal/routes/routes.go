package routes

import (
	"clinic-server/internal/audit"
	"clinic-server/internal/config"
	"clinic-server/internal/handlers"
	"clinic-server/internal/middleware"
	"clinic-server/internal/models"
	"clinic-server/internal/scheduling"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, scheduler *scheduling.Scheduler, auditLog *audit.Logger) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	patientHandler := handlers.NewPatientHandler(db, cfg, auditLog)
	staffHandler := handlers.NewStaffHandler(db, auditLog)
	departmentHandler := handlers.NewDepartmentHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, scheduler, auditLog)
	medicalRecordHandler := handlers.NewMedicalRecordHandler(db, auditLog)
	prescriptionHandler := handlers.NewPrescriptionHandler(db, auditLog)
	auditLogHandler := handlers.NewAuditLogHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User account management (admin-only)
		userRoutes := private.Group("/users")
		userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			userRoutes.POST("", userHandler.CreateUser)
			userRoutes.GET("", userHandler.GetUsers)
			userRoutes.GET("/:id", userHandler.GetUserByID)
			userRoutes.PUT("/:id", userHandler.UpdateUser)
			userRoutes.DELETE("/:id", userHandler.DeactivateUser)
		}

		// Patient registry
		patientRoutes := private.Group("/patients")
		{
			patientRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleRegistrar), patientHandler.CreatePatient)
			patientRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleDoctor, models.RoleNurse, models.RoleRegistrar), patientHandler.GetPatients)
			patientRoutes.GET("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleDoctor, models.RoleNurse, models.RoleRegistrar), patientHandler.GetPatientByID)
			patientRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleRegistrar), patientHandler.UpdatePatient)
		}

		// Medical personnel
		staffRoutes := private.Group("/staff")
		{
			// Doctors listing is open to all authenticated users for booking
			staffRoutes.GET("/doctors", staffHandler.GetDoctors)

			staffRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin), staffHandler.CreateStaff)
			staffRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleRegistrar), staffHandler.GetStaff)
			staffRoutes.GET("/:id", staffHandler.GetStaffByID)
			staffRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), staffHandler.UpdateStaff)
		}

		// Departments
		departmentRoutes := private.Group("/departments")
		{
			departmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin), departmentHandler.CreateDepartment)
			departmentRoutes.GET("", departmentHandler.GetDepartments)
			departmentRoutes.GET("/:id", departmentHandler.GetDepartmentByID)
		}

		// Appointments
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleRegistrar, models.RoleAdmin), appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointments) // Logic inside handler differentiates by role
			appointmentRoutes.GET("/available-slots", appointmentHandler.GetAvailableSlots)
			appointmentRoutes.GET("/stats", middleware.RoleAuthMiddleware(models.RoleAdmin), appointmentHandler.GetAppointmentStats)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.POST("/:id/confirm", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleRegistrar, models.RoleAdmin), appointmentHandler.ConfirmAppointment)
			appointmentRoutes.POST("/:id/cancel", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleRegistrar, models.RoleAdmin), appointmentHandler.CancelAppointment)
		}

		// Medical records (append-only)
		medicalRecordRoutes := private.Group("/medical-records")
		{
			medicalRecordRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor), medicalRecordHandler.CreateMedicalRecord)
			medicalRecordRoutes.GET("/patient/:patientId", medicalRecordHandler.GetMedicalRecordsForPatient) // Auth in handler
			medicalRecordRoutes.GET("/:id", medicalRecordHandler.GetMedicalRecordByID)
			medicalRecordRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), medicalRecordHandler.UpdateMedicalRecord)
			medicalRecordRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), medicalRecordHandler.DeleteMedicalRecord)
			medicalRecordRoutes.POST("/:id/sign", middleware.RoleAuthMiddleware(models.RoleDoctor), medicalRecordHandler.SignMedicalRecord)
		}

		// Prescriptions
		prescriptionRoutes := private.Group("/prescriptions")
		{
			prescriptionRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor), prescriptionHandler.CreatePrescription)
			prescriptionRoutes.GET("/patient/:patientId", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleNurse, models.RoleAdmin), prescriptionHandler.GetPrescriptionsForPatient)
			prescriptionRoutes.POST("/:id/issue", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleNurse), prescriptionHandler.IssuePrescription)
		}

		// Audit trail (admin-only)
		auditRoutes := private.Group("/audit-logs")
		auditRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			auditRoutes.GET("", auditLogHandler.GetAuditLogs)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
