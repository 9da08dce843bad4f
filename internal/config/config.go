package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port                      string
	Origin                    string
	Environment               string
	JWTSecret                 string
	JWTRefreshSecret          string
	EncryptionKey             string // base64 Fernet key for sensitive patient fields
	Database                  DatabaseConfig
	Clinic                    ClinicConfig
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// ClinicConfig holds the scheduling policy of the clinic
type ClinicConfig struct {
	Timezone            string
	Location            *time.Location
	CancelLeadTime      time.Duration
	AutoExpireInterval  time.Duration
	AutoExpireOnStartup bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Driver:   getEnv("DB_DRIVER", "mysql"),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clinic"),
	}

	// Build DSN (Data Source Name) for the selected driver
	switch dbConfig.Driver {
	case "sqlite":
		dbConfig.DSN = getEnv("DB_PATH", "clinic.db")
	default:
		dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)
	}

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	clinicConfig, err := loadClinicConfig()
	if err != nil {
		return nil, err
	}

	// Return complete configuration
	return &Config{
		Port:                      getEnv("PORT", "3001"),
		Origin:                    getEnv("ORIGIN", "http://localhost:4200"),
		Environment:               getEnv("APP_ENV", "development"),
		JWTSecret:                 getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret:          getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		EncryptionKey:             getEnv("ENCRYPTION_KEY", ""),
		Database:                  dbConfig,
		Clinic:                    clinicConfig,
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
	}, nil
}

func loadClinicConfig() (ClinicConfig, error) {
	tz := getEnv("CLINIC_TIMEZONE", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return ClinicConfig{}, fmt.Errorf("invalid CLINIC_TIMEZONE: %w", err)
	}

	leadHours, err := strconv.ParseFloat(getEnv("CANCEL_LEAD_TIME_HOURS", "2"), 64)
	if err != nil {
		return ClinicConfig{}, fmt.Errorf("invalid CANCEL_LEAD_TIME_HOURS: %w", err)
	}

	expireMinutes, err := strconv.Atoi(getEnv("AUTO_EXPIRE_INTERVAL_MINUTES", "60"))
	if err != nil {
		return ClinicConfig{}, fmt.Errorf("invalid AUTO_EXPIRE_INTERVAL_MINUTES: %w", err)
	}

	return ClinicConfig{
		Timezone:            tz,
		Location:            loc,
		CancelLeadTime:      time.Duration(leadHours * float64(time.Hour)),
		AutoExpireInterval:  time.Duration(expireMinutes) * time.Minute,
		AutoExpireOnStartup: getEnv("AUTO_EXPIRE_ON_STARTUP", "true") == "true",
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
