package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// BaseModel contains common columns for all tables
type BaseModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

// Database connection instance
var DB *gorm.DB

// InitDB initializes database connection
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	var err error

	gormConfig := &gorm.Config{TranslateError: true}
	switch config.Driver {
	case "sqlite":
		DB, err = gorm.Open(sqlite.Open(config.DSN), gormConfig)
	case "mysql", "":
		DB, err = gorm.Open(mysql.Open(config.DSN), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", config.Driver)
	}
	if err != nil {
		return nil, err
	}

	// Auto migrate the database models
	err = DB.AutoMigrate(
		&User{},
		&RefreshToken{},
		&InsuranceCompany{},
		&Patient{},
		&Department{},
		&Staff{},
		&Appointment{},
		&Diagnosis{},
		&MedicalRecord{},
		&Prescription{},
		&AuditLog{},
	)
	if err != nil {
		return nil, err
	}

	// Backstop against two active bookings of the exact same slot.
	// Cancelled, completed and no-show rows must stay out of the index
	// so a freed slot can be rebooked; MySQL has no partial indexes, so
	// there the transactional conflict check is the only guard.
	if DB.Dialector.Name() == "sqlite" {
		err = DB.Exec(
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_doctor_slot ON appointments(doctor_id, appointment_date, appointment_time) WHERE status IN ('scheduled', 'confirmed')",
		).Error
		if err != nil {
			return nil, err
		}
	}

	return DB, nil
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver string
	DSN    string
}
