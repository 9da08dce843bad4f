package scheduling

import (
	"clinic-server/internal/models"
)

// Interval is a half-open [Start, End) time range, in minutes since
// midnight of a single clinic-local day.
type Interval struct {
	Start int
	End   int
}

// NewInterval builds the candidate interval for a booking starting at the
// given minute of the day and lasting durationMinutes.
func NewInterval(startMinute, durationMinutes int) Interval {
	return Interval{Start: startMinute, End: startMinute + durationMinutes}
}

// Overlaps reports whether two half-open intervals share any instant.
// Back-to-back intervals do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.End > other.Start && i.Start < other.End
}

// CheckConflict decides whether the candidate interval overlaps any of the
// doctor's existing appointments on the same date. The caller supplies only
// appointments whose status still occupies the doctor's time; cancelled,
// completed and no-show appointments must not be passed in.
//
// The first overlapping appointment encountered wins; no ordering of the
// input is required. Existing rows with an unparseable stored time are
// skipped rather than failing the whole check.
//
// Returns nil when the candidate fits, or a *ConflictError naming the
// conflicting appointment's start time.
func CheckConflict(candidate Interval, existing []models.Appointment) error {
	for i := range existing {
		start, err := existing[i].StartMinute()
		if err != nil {
			continue
		}
		other := NewInterval(start, existing[i].DurationMinutes)
		if candidate.Overlaps(other) {
			return &ConflictError{Time: existing[i].Time}
		}
	}
	return nil
}
