package models

import (
	"fmt"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// ActiveStatuses are the statuses that occupy a doctor's time. Only these
// participate in conflict detection and slot planning.
var ActiveStatuses = []AppointmentStatus{StatusScheduled, StatusConfirmed}

// TimeLayout is the wire and storage format of an appointment's time of day.
const TimeLayout = "15:04"

// DateLayout is the wire format of an appointment's calendar date.
const DateLayout = "2006-01-02"

// Appointment represents a booked visit with a doctor.
//
// Date and Time are kept separate, clinic-local. A partial unique index
// on (doctor, date, time) over the active statuses backstops the
// exact-start-time case where the engine supports it (see InitDB);
// overlap with varying durations is guarded at booking time.
type Appointment struct {
	BaseModel
	PatientID       string            `gorm:"size:36;index" json:"patientId"`
	DoctorID        string            `gorm:"size:36;index:idx_doctor_day" json:"doctorId"`
	Date            time.Time         `gorm:"column:appointment_date;type:date;index:idx_doctor_day" json:"date"`
	Time            string            `gorm:"column:appointment_time;size:5" json:"time"`
	DurationMinutes int               `gorm:"default:30" json:"durationMinutes"`
	Status          AppointmentStatus `gorm:"size:20;default:'scheduled';index" json:"status"`
	Reason          string            `gorm:"type:text" json:"reason"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  Staff   `gorm:"foreignKey:DoctorID" json:"-"`
}

// StartMinute returns the appointment's start as minutes since midnight.
// The stored time must be exactly "HH:MM"; time.Parse alone would also
// accept a non-padded hour.
func (a *Appointment) StartMinute() (int, error) {
	if len(a.Time) != len(TimeLayout) {
		return 0, fmt.Errorf("malformed appointment time %q: want HH:MM", a.Time)
	}
	t, err := time.Parse(TimeLayout, a.Time)
	if err != nil {
		return 0, fmt.Errorf("malformed appointment time %q: %w", a.Time, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// StartsAt combines the appointment's date and time in the given location.
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	minute, err := a.StartMinute()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, minute, 0, 0, loc), nil
}

// EndsAt returns the exclusive end of the appointment's interval.
func (a *Appointment) EndsAt(loc *time.Location) (time.Time, error) {
	start, err := a.StartsAt(loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(a.DurationMinutes) * time.Minute), nil
}
