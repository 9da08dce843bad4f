package scheduling

import (
	"errors"
	"fmt"

	"clinic-server/internal/models"
)

// ValidationError reports malformed booking input: a bad date or time
// format, a non-positive duration, or an unknown doctor or patient.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ConflictError reports that a candidate appointment overlaps an existing
// one. Time is the start of the conflicting appointment, for user display.
type ConflictError struct {
	Time string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicts with an existing appointment at %s", e.Time)
}

// LeadTimeError reports a cancellation attempted too close to the
// appointment's start.
type LeadTimeError struct {
	Required float64 // hours
}

func (e *LeadTimeError) Error() string {
	return fmt.Sprintf("cannot cancel less than %g hours before the appointment", e.Required)
}

// NotFoundError reports that the referenced appointment does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("appointment %s not found", e.ID)
}

// InvalidStateError reports a transition attempted from a status that
// forbids it.
type InvalidStateError struct {
	Current   models.AppointmentStatus
	Requested models.AppointmentStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot move appointment from %q to %q", e.Current, e.Requested)
}

// Kind predicates for callers that branch on error type.

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

func IsLeadTime(err error) bool {
	var e *LeadTimeError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsInvalidState(err error) bool {
	var e *InvalidStateError
	return errors.As(err, &e)
}
