package scheduling

import (
	"fmt"

	"clinic-server/internal/models"
)

// The clinic's bookable day: 30-minute grid positions from 09:00 up to and
// including 16:30, covering the 09:00-17:00 window.
const (
	openingHour = 9
	closingHour = 17
	slotMinutes = 30
)

// AvailableSlots returns the grid slots not taken by any of the given
// appointments, ascending, as "HH:MM" strings. The caller supplies the
// doctor's appointments for the day that still occupy time (scheduled or
// confirmed ones).
//
// A slot is taken only when an appointment starts exactly on it. An
// appointment longer than the 30-minute grid step does not shadow the
// slots it runs into; overlap enforcement happens at booking time, not
// here.
func AvailableSlots(existing []models.Appointment) []string {
	booked := make(map[string]bool, len(existing))
	for i := range existing {
		booked[existing[i].Time] = true
	}

	var slots []string
	for hour := openingHour; hour < closingHour; hour++ {
		for _, minute := range []int{0, slotMinutes} {
			slot := fmt.Sprintf("%02d:%02d", hour, minute)
			if !booked[slot] {
				slots = append(slots, slot)
			}
		}
	}
	return slots
}
