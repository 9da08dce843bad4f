package models

import (
	"time"
)

// Gender enum
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// InsuranceCompany represents an insurance provider patients are covered by
type InsuranceCompany struct {
	BaseModel
	Name          string `gorm:"size:255;not null" json:"name"`
	LicenseNumber string `gorm:"size:100;uniqueIndex" json:"licenseNumber"`
	Phone         string `gorm:"size:20" json:"phone"`
	Email         string `gorm:"size:255" json:"email"`
	Address       string `gorm:"type:text" json:"address"`

	Patients []Patient `gorm:"foreignKey:InsuranceCompanyID" json:"-"`
}

// Patient represents a patient of the clinic
type Patient struct {
	BaseModel
	UserID             string    `gorm:"size:36;uniqueIndex" json:"userId"`
	FullName           string    `gorm:"size:255;not null" json:"fullName"`
	DateOfBirth        time.Time `gorm:"type:date" json:"dateOfBirth"`
	Gender             Gender    `gorm:"size:1" json:"gender"`
	PassportNumber     string    `gorm:"size:255;uniqueIndex" json:"passportNumber"` // may be stored encrypted
	Address            string    `gorm:"type:text" json:"address"`
	Phone              string    `gorm:"size:20" json:"phone"`
	Email              string    `gorm:"size:255" json:"email,omitempty"`
	InsuranceCompanyID *string   `gorm:"size:36" json:"insuranceCompanyId,omitempty"`
	InsuranceNumber    string    `gorm:"size:50;uniqueIndex" json:"insuranceNumber"`
	EmergencyContact   string    `gorm:"size:255" json:"emergencyContact"`
	EmergencyPhone     string    `gorm:"size:20" json:"emergencyPhone"`
	Allergies          string    `gorm:"type:text" json:"allergies,omitempty"`
	ChronicDiseases    string    `gorm:"type:text" json:"chronicDiseases,omitempty"`

	// Relations
	User             User              `gorm:"foreignKey:UserID" json:"-"`
	InsuranceCompany *InsuranceCompany `gorm:"foreignKey:InsuranceCompanyID" json:"-"`
	Appointments     []Appointment     `gorm:"foreignKey:PatientID" json:"-"`
	MedicalRecords   []MedicalRecord   `gorm:"foreignKey:PatientID" json:"-"`
}

// Age returns the patient's age in full years as of today.
func (p *Patient) Age() int {
	return p.AgeAt(time.Now())
}

// AgeAt returns the patient's age in full years as of the given day.
func (p *Patient) AgeAt(day time.Time) int {
	age := day.Year() - p.DateOfBirth.Year()
	if day.Month() < p.DateOfBirth.Month() ||
		(day.Month() == p.DateOfBirth.Month() && day.Day() < p.DateOfBirth.Day()) {
		age--
	}
	return age
}
