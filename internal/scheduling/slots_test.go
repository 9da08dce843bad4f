package scheduling

import (
	"sort"
	"testing"

	"clinic-server/internal/models"
)

func TestAvailableSlotsEmptyDay(t *testing.T) {
	slots := AvailableSlots(nil)
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots on an empty day, got %d: %v", len(slots), slots)
	}
	if slots[0] != "09:00" {
		t.Fatalf("first slot should be 09:00, got %s", slots[0])
	}
	if slots[len(slots)-1] != "16:30" {
		t.Fatalf("last slot should be 16:30, got %s", slots[len(slots)-1])
	}
	if !sort.StringsAreSorted(slots) {
		t.Fatalf("slots must be ascending: %v", slots)
	}
}

func TestAvailableSlotsExcludesBooked(t *testing.T) {
	existing := []models.Appointment{
		appt("09:00", 30, models.StatusScheduled),
		appt("14:30", 30, models.StatusConfirmed),
	}

	slots := AvailableSlots(existing)
	if len(slots) != 14 {
		t.Fatalf("expected 14 slots, got %d: %v", len(slots), slots)
	}
	for _, s := range slots {
		if s == "09:00" || s == "14:30" {
			t.Fatalf("booked slot %s must not be offered", s)
		}
	}
	if slots[0] != "09:30" {
		t.Fatalf("expected 09:30 first once 09:00 is booked, got %s", slots[0])
	}
}

func TestAvailableSlotsLongAppointmentBlocksOnlyItsOwnSlot(t *testing.T) {
	// A 60-minute appointment at 10:00 runs into the 10:30 grid position,
	// but only the 10:00 slot disappears from the grid.
	existing := []models.Appointment{appt("10:00", 60, models.StatusScheduled)}

	slots := AvailableSlots(existing)
	seen := make(map[string]bool, len(slots))
	for _, s := range slots {
		seen[s] = true
	}
	if seen["10:00"] {
		t.Fatal("10:00 should be blocked")
	}
	if !seen["10:30"] {
		t.Fatal("10:30 should still appear on the grid")
	}
}

func TestAvailableSlotsOffGridBookingDoesNotHideSlots(t *testing.T) {
	// An appointment starting off the grid blocks nothing, since blocking
	// is by exact start-time equality.
	existing := []models.Appointment{appt("10:15", 30, models.StatusScheduled)}

	if got := AvailableSlots(existing); len(got) != 16 {
		t.Fatalf("expected full grid, got %d slots: %v", len(got), got)
	}
}

func TestAvailableSlotsFullyBookedDay(t *testing.T) {
	var existing []models.Appointment
	for _, s := range AvailableSlots(nil) {
		existing = append(existing, appt(s, 30, models.StatusScheduled))
	}

	if got := AvailableSlots(existing); len(got) != 0 {
		t.Fatalf("expected no slots on a fully booked day, got %v", got)
	}
}
