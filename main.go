package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"clinic-server/internal/audit"
	"clinic-server/internal/config"
	"clinic-server/internal/middleware"
	"clinic-server/internal/models"
	"clinic-server/internal/routes"
	"clinic-server/internal/scheduling"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Environment == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	// The scheduling core and its collaborators
	store := scheduling.NewGormStore(db)
	scheduler := scheduling.NewScheduler(store, cfg.Clinic.Location, cfg.Clinic.CancelLeadTime, logger)
	auditLog := audit.NewLogger(db, logger)

	// Initialize Gin router. Request logging goes through zerolog, so
	// gin's own logger stays off.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes
	routes.SetupRoutes(router, db, cfg, scheduler, auditLog)

	// Periodically cancel appointments left unconfirmed within a day of
	// their date. Per-row failures are handled inside the sweep.
	go func() {
		runSweep := func() {
			count, err := scheduler.ExpireStale()
			if err != nil {
				logger.Error().Err(err).Msg("auto-expire sweep failed")
				return
			}
			if count > 0 {
				auditLog.Record("", "auto_cancel", "Appointment", "", map[string]interface{}{"count": count}, "")
			}
		}
		if cfg.Clinic.AutoExpireOnStartup {
			runSweep()
		}
		ticker := time.NewTicker(cfg.Clinic.AutoExpireInterval)
		defer ticker.Stop()
		for range ticker.C {
			runSweep()
		}
	}()

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
