package scheduling

import (
	"errors"
	"testing"

	"clinic-server/internal/models"
)

func appt(start string, duration int, status models.AppointmentStatus) models.Appointment {
	return models.Appointment{
		Time:            start,
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestCheckConflictNoExisting(t *testing.T) {
	if err := CheckConflict(NewInterval(10*60, 30), nil); err != nil {
		t.Fatalf("expected no conflict against empty day, got %v", err)
	}
}

func TestCheckConflictOverlap(t *testing.T) {
	existing := []models.Appointment{appt("10:00", 30, models.StatusConfirmed)}

	tests := []struct {
		name     string
		start    int // minutes since midnight
		duration int
		conflict bool
	}{
		{"candidate inside existing", 10*60 + 15, 30, true},
		{"candidate contains existing", 9*60 + 45, 60, true},
		{"identical interval", 10 * 60, 30, true},
		{"ends exactly at existing start", 9*60 + 30, 30, false},
		{"ends one minute into existing", 9*60 + 31, 30, true},
		{"starts exactly at existing end", 10*60 + 30, 30, false},
		{"starts one minute before existing end", 10*60 + 29, 30, true},
		{"well before", 9 * 60, 30, false},
		{"well after", 14 * 60, 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckConflict(NewInterval(tt.start, tt.duration), existing)
			if tt.conflict && err == nil {
				t.Fatalf("expected conflict for start=%d duration=%d", tt.start, tt.duration)
			}
			if !tt.conflict && err != nil {
				t.Fatalf("unexpected conflict for start=%d duration=%d: %v", tt.start, tt.duration, err)
			}
		})
	}
}

func TestCheckConflictReportsFirstMatch(t *testing.T) {
	existing := []models.Appointment{
		appt("11:00", 30, models.StatusScheduled),
		appt("11:15", 30, models.StatusConfirmed),
	}

	err := CheckConflict(NewInterval(11*60+10, 30), existing)
	if err == nil {
		t.Fatal("expected a conflict")
	}

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *ConflictError, got %T", err)
	}
	if conflict.Time != "11:00" {
		t.Fatalf("expected first conflicting appointment (11:00) to be reported, got %s", conflict.Time)
	}
}

func TestCheckConflictSkipsUnparseableRows(t *testing.T) {
	existing := []models.Appointment{
		appt("garbage", 30, models.StatusScheduled),
		appt("12:00", 30, models.StatusScheduled),
	}

	if err := CheckConflict(NewInterval(9*60, 30), existing); err != nil {
		t.Fatalf("unparseable row should be skipped, got %v", err)
	}
	if err := CheckConflict(NewInterval(12*60, 30), existing); err == nil {
		t.Fatal("expected conflict with the valid 12:00 row")
	}
}

func TestIntervalOverlapsIsSymmetric(t *testing.T) {
	a := NewInterval(600, 30)
	b := NewInterval(615, 45)
	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Fatal("overlap must be symmetric")
	}

	c := NewInterval(630, 30)
	if a.Overlaps(c) || c.Overlaps(a) {
		t.Fatal("back-to-back intervals must not overlap")
	}
}
