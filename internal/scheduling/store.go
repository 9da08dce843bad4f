package scheduling

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clinic-server/internal/models"
)

// GormStore implements Store on top of the application database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by the given gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// lockForUpdate adds row locking on databases that support it. SQLite has
// no FOR UPDATE; its single-writer transactions already serialize the
// read-check-write sequence.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// FindAppointments returns a doctor's appointments on the given date,
// optionally filtered to the given statuses, ordered by start time.
func (s *GormStore) FindAppointments(doctorID string, date time.Time, statuses ...models.AppointmentStatus) ([]models.Appointment, error) {
	var appts []models.Appointment
	query := s.db.
		Where("doctor_id = ? AND appointment_date = ?", doctorID, date).
		Order("appointment_time asc")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Find(&appts).Error
	return appts, err
}

// FindAppointment returns the appointment with the given id, or nil when
// it does not exist.
func (s *GormStore) FindAppointment(id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.db.First(&appt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// InsertAppointment books the appointment after re-checking conflicts
// against the doctor's active appointments on that date. Check and insert
// run in one transaction with the day's rows locked, so two concurrent
// bookings cannot both pass the check. Where a partial unique index on
// (doctor, date, time) backstops the exact-start case, tripping it is
// reported as a conflict too.
func (s *GormStore) InsertAppointment(appt *models.Appointment) error {
	start, err := appt.StartMinute()
	if err != nil {
		return &ValidationError{Field: "time", Message: "must be formatted HH:MM"}
	}
	candidate := NewInterval(start, appt.DurationMinutes)

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing []models.Appointment
		err := lockForUpdate(tx).
			Where("doctor_id = ? AND appointment_date = ? AND status IN ?",
				appt.DoctorID, appt.Date, models.ActiveStatuses).
			Find(&existing).Error
		if err != nil {
			return err
		}

		if err := CheckConflict(candidate, existing); err != nil {
			return err
		}
		if err := tx.Create(appt).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &ConflictError{Time: appt.Time}
			}
			return err
		}
		return nil
	})
}

// UpdateStatus transitions an appointment from the expected status to the
// next one. The update is conditional on the current status, so the sweep
// and user-initiated transitions cannot clobber each other. Returns
// *NotFoundError when the row is missing and *InvalidStateError when its
// status no longer matches.
func (s *GormStore) UpdateStatus(id string, expected, next models.AppointmentStatus) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var appt models.Appointment
		err := lockForUpdate(tx).First(&appt, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{ID: id}
		}
		if err != nil {
			return err
		}

		if appt.Status != expected {
			return &InvalidStateError{Current: appt.Status, Requested: next}
		}

		return tx.Model(&models.Appointment{}).
			Where("id = ? AND status = ?", id, expected).
			Update("status", next).Error
	})
}

// FindExpiring returns scheduled appointments dated before the given day.
func (s *GormStore) FindExpiring(dateBefore time.Time) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.
		Where("status = ? AND appointment_date < ?", models.StatusScheduled, dateBefore).
		Find(&appts).Error
	return appts, err
}

// DoctorExists reports whether the id resolves to a staff member holding
// the doctor position.
func (s *GormStore) DoctorExists(doctorID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Staff{}).
		Where("id = ? AND position = ?", doctorID, models.PositionDoctor).
		Count(&count).Error
	return count > 0, err
}

// PatientExists reports whether the id resolves to a known patient.
func (s *GormStore) PatientExists(patientID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Patient{}).
		Where("id = ?", patientID).
		Count(&count).Error
	return count > 0, err
}
