package scheduling

import (
	"time"

	"github.com/rs/zerolog"

	"clinic-server/internal/models"
)

// DefaultDuration is applied when a booking request does not specify one.
const DefaultDuration = 30

// DefaultCancelLead is the minimum time between "now" and an appointment's
// start for a cancellation to be accepted.
const DefaultCancelLead = 2 * time.Hour

// expireWindow: appointments still unconfirmed this close to their date
// are swept into cancelled.
const expireWindow = 24 * time.Hour

// Store is the persistence contract the scheduler operates over.
//
// InsertAppointment must perform the conflict check and the insert as one
// serializable unit, otherwise two concurrent bookings can both pass the
// check. UpdateStatus must be conditional on the expected current status
// so a sweep cannot clobber a concurrent confirmation.
type Store interface {
	FindAppointments(doctorID string, date time.Time, statuses ...models.AppointmentStatus) ([]models.Appointment, error)
	FindAppointment(id string) (*models.Appointment, error)
	InsertAppointment(appt *models.Appointment) error
	UpdateStatus(id string, expected, next models.AppointmentStatus) error
	FindExpiring(dateBefore time.Time) ([]models.Appointment, error)
	DoctorExists(doctorID string) (bool, error)
	PatientExists(patientID string) (bool, error)
}

// Scheduler owns the appointment lifecycle: booking with conflict
// detection, confirmation, lead-time-gated cancellation, free-slot
// queries and the stale-appointment sweep.
type Scheduler struct {
	store      Store
	loc        *time.Location
	cancelLead time.Duration
	now        func() time.Time
	log        zerolog.Logger
}

// NewScheduler creates a Scheduler over the given store. loc is the
// clinic's local time zone; cancelLead <= 0 falls back to the default
// 2-hour policy.
func NewScheduler(store Store, loc *time.Location, cancelLead time.Duration, log zerolog.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if cancelLead <= 0 {
		cancelLead = DefaultCancelLead
	}
	return &Scheduler{
		store:      store,
		loc:        loc,
		cancelLead: cancelLead,
		now:        time.Now,
		log:        log,
	}
}

// CreateRequest carries the fields of a booking request.
type CreateRequest struct {
	DoctorID        string
	PatientID       string
	Date            string // "2006-01-02", clinic-local
	Time            string // "15:04"
	DurationMinutes int    // 0 means DefaultDuration
	Reason          string
	Notes           string
}

// Create validates the request and books a new appointment in the
// scheduled state. Returns a *ValidationError for malformed input or
// unknown identities, and a *ConflictError when the requested interval
// overlaps one of the doctor's active appointments.
func (s *Scheduler) Create(req CreateRequest) (*models.Appointment, error) {
	date, err := time.ParseInLocation(models.DateLayout, req.Date, s.loc)
	if err != nil {
		return nil, &ValidationError{Field: "date", Message: "must be formatted YYYY-MM-DD"}
	}

	start, err := time.Parse(models.TimeLayout, req.Time)
	if err != nil {
		return nil, &ValidationError{Field: "time", Message: "must be formatted HH:MM"}
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = DefaultDuration
	}
	if duration < 0 {
		return nil, &ValidationError{Field: "durationMinutes", Message: "must be positive"}
	}

	if ok, err := s.store.DoctorExists(req.DoctorID); err != nil {
		return nil, err
	} else if !ok {
		return nil, &ValidationError{Field: "doctorId", Message: "unknown doctor"}
	}
	if ok, err := s.store.PatientExists(req.PatientID); err != nil {
		return nil, err
	} else if !ok {
		return nil, &ValidationError{Field: "patientId", Message: "unknown patient"}
	}

	appt := &models.Appointment{
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		Date:            date,
		Time:            start.Format(models.TimeLayout),
		DurationMinutes: duration,
		Status:          models.StatusScheduled,
		Reason:          req.Reason,
		Notes:           req.Notes,
	}

	// The store re-runs the conflict check inside its insert transaction.
	if err := s.store.InsertAppointment(appt); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("appointment_id", appt.ID).
		Str("doctor_id", appt.DoctorID).
		Str("date", req.Date).
		Str("time", appt.Time).
		Msg("appointment booked")
	return appt, nil
}

// Confirm moves a scheduled appointment to confirmed. Confirming is only
// allowed from the scheduled state; any other current status yields an
// *InvalidStateError, a missing appointment a *NotFoundError.
func (s *Scheduler) Confirm(id string) error {
	return s.store.UpdateStatus(id, models.StatusScheduled, models.StatusConfirmed)
}

// Cancel moves a scheduled or confirmed appointment to cancelled,
// provided its start is at least the configured lead time away. A
// cancellation exactly at the lead-time boundary is still accepted.
func (s *Scheduler) Cancel(id string) error {
	appt, err := s.store.FindAppointment(id)
	if err != nil {
		return err
	}
	if appt == nil {
		return &NotFoundError{ID: id}
	}

	if appt.Status != models.StatusScheduled && appt.Status != models.StatusConfirmed {
		return &InvalidStateError{Current: appt.Status, Requested: models.StatusCancelled}
	}

	startsAt, err := appt.StartsAt(s.loc)
	if err != nil {
		return err
	}
	if startsAt.Sub(s.now()) < s.cancelLead {
		return &LeadTimeError{Required: s.cancelLead.Hours()}
	}

	if err := s.store.UpdateStatus(id, appt.Status, models.StatusCancelled); err != nil {
		return err
	}
	s.log.Info().Str("appointment_id", id).Msg("appointment cancelled")
	return nil
}

// AvailableSlots returns the free 30-minute grid slots of a doctor's day,
// ascending. Fails with a *ValidationError when the date cannot be parsed
// or the doctor is unknown.
func (s *Scheduler) AvailableSlots(doctorID, dateStr string) ([]string, error) {
	date, err := time.ParseInLocation(models.DateLayout, dateStr, s.loc)
	if err != nil {
		return nil, &ValidationError{Field: "date", Message: "must be formatted YYYY-MM-DD"}
	}

	if ok, err := s.store.DoctorExists(doctorID); err != nil {
		return nil, err
	} else if !ok {
		return nil, &ValidationError{Field: "doctorId", Message: "unknown doctor"}
	}

	existing, err := s.store.FindAppointments(doctorID, date, models.ActiveStatuses...)
	if err != nil {
		return nil, err
	}
	return AvailableSlots(existing), nil
}

// ExpireStale sweeps appointments still scheduled within a day of their
// date into cancelled and returns how many were transitioned. The sweep
// is idempotent and tolerates rows transitioned concurrently: a failed
// conditional update is logged and skipped, never aborts the pass.
func (s *Scheduler) ExpireStale() (int, error) {
	cutoff := s.now().In(s.loc).Add(expireWindow)
	cutoffDate := time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, s.loc)

	stale, err := s.store.FindExpiring(cutoffDate)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range stale {
		err := s.store.UpdateStatus(stale[i].ID, models.StatusScheduled, models.StatusCancelled)
		if err != nil {
			if IsInvalidState(err) || IsNotFound(err) {
				s.log.Warn().
					Str("appointment_id", stale[i].ID).
					Err(err).
					Msg("skipping concurrently updated appointment")
				continue
			}
			return expired, err
		}
		expired++
	}

	if expired > 0 {
		s.log.Info().Int("expired", expired).Msg("stale appointments cancelled")
	}
	return expired, nil
}
