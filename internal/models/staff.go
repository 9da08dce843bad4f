package models

import (
	"time"
)

// Position enum for staff members
type Position string

const (
	PositionDoctor    Position = "doctor"
	PositionNurse     Position = "nurse"
	PositionRegistrar Position = "registrar"
)

// Staff represents a member of the clinic's medical personnel
type Staff struct {
	BaseModel
	UserID          string    `gorm:"size:36;uniqueIndex" json:"userId"`
	FullName        string    `gorm:"size:255;not null" json:"fullName"`
	DateOfBirth     time.Time `gorm:"type:date" json:"dateOfBirth"`
	Gender          Gender    `gorm:"size:1" json:"gender"`
	Position        Position  `gorm:"size:20;index:idx_position_department" json:"position"`
	Specialty       string    `gorm:"size:255" json:"specialty,omitempty"` // doctors only
	LicenseNumber   string    `gorm:"size:50;uniqueIndex" json:"licenseNumber"`
	ExperienceYears int       `json:"experienceYears"`
	DepartmentID    *string   `gorm:"size:36;index:idx_position_department" json:"departmentId,omitempty"`
	Phone           string    `gorm:"size:20" json:"phone"`
	Email           string    `gorm:"size:255" json:"email"`
	WorkSchedule    string    `gorm:"type:text" json:"workSchedule,omitempty"` // JSON, e.g. {"Monday": "09:00-17:00"}
	IsAvailable     bool      `gorm:"default:true" json:"isAvailable"`

	// Relations
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Department   *Department   `gorm:"foreignKey:DepartmentID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"-"`
}

// IsDoctor reports whether the staff member can be booked for appointments.
func (s *Staff) IsDoctor() bool {
	return s.Position == PositionDoctor
}
