package models

import (
	"time"
)

// Diagnosis is a reference entry from the ICD-10 catalogue
type Diagnosis struct {
	BaseModel
	Code        string `gorm:"size:10;uniqueIndex" json:"code"` // ICD-10 code
	Name        string `gorm:"size:500;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}

// MedicalRecord represents an entry in a patient's electronic health history.
// Records are append-only: they can be created and amended but never deleted.
type MedicalRecord struct {
	BaseModel
	PatientID        string    `gorm:"size:36;index:idx_patient_record_date" json:"patientId"`
	AppointmentID    *string   `gorm:"size:36" json:"appointmentId,omitempty"`
	DoctorID         string    `gorm:"size:36;index" json:"doctorId"`
	RecordDate       time.Time `gorm:"index:idx_patient_record_date" json:"recordDate"`
	Symptoms         string    `gorm:"type:text" json:"symptoms"`
	DiagnosisID      *string   `gorm:"size:36" json:"diagnosisId,omitempty"`
	TreatmentPlan    string    `gorm:"type:text" json:"treatmentPlan"`
	Notes            string    `gorm:"type:text" json:"notes,omitempty"`
	IsSigned         bool      `gorm:"default:false" json:"isSigned"`
	DigitalSignature string    `gorm:"type:text" json:"-"`

	// Relations
	Patient       Patient        `gorm:"foreignKey:PatientID" json:"-"`
	Appointment   *Appointment   `gorm:"foreignKey:AppointmentID" json:"-"`
	Doctor        Staff          `gorm:"foreignKey:DoctorID" json:"-"`
	Diagnosis     *Diagnosis     `gorm:"foreignKey:DiagnosisID" json:"-"`
	Prescriptions []Prescription `gorm:"foreignKey:MedicalRecordID" json:"prescriptions,omitempty"`
}

// Prescription represents a medication prescribed by a doctor
type Prescription struct {
	BaseModel
	MedicalRecordID string    `gorm:"size:36;index" json:"medicalRecordId"`
	PatientID       string    `gorm:"size:36;index" json:"patientId"`
	DoctorID        string    `gorm:"size:36" json:"doctorId"`
	MedicationName  string    `gorm:"size:500;not null" json:"medicationName"`
	Dosage          string    `gorm:"size:100" json:"dosage"`    // e.g. "500mg x 2"
	Frequency       string    `gorm:"size:100" json:"frequency"` // e.g. "3 times a day"
	DurationDays    int       `json:"durationDays"`
	Instructions    string    `gorm:"type:text" json:"instructions"`
	IsIssued        bool      `gorm:"default:false" json:"isIssued"`
	ValidUntil      time.Time `gorm:"type:date" json:"validUntil"`

	// Relations
	MedicalRecord MedicalRecord `gorm:"foreignKey:MedicalRecordID" json:"-"`
	Patient       Patient       `gorm:"foreignKey:PatientID" json:"-"`
	Doctor        Staff         `gorm:"foreignKey:DoctorID" json:"-"`
}
