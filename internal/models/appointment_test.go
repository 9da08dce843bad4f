package models

import (
	"testing"
	"time"
)

func TestStartMinute(t *testing.T) {
	tests := []struct {
		time    string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"16:30", 990, false},
		{"23:59", 1439, false},
		{"9:00", 0, true},
		{"24:00", 0, true},
		{"garbage", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		a := Appointment{Time: tt.time}
		got, err := a.StartMinute()
		if tt.wantErr {
			if err == nil {
				t.Errorf("StartMinute(%q): expected error", tt.time)
			}
			continue
		}
		if err != nil {
			t.Errorf("StartMinute(%q): %v", tt.time, err)
			continue
		}
		if got != tt.want {
			t.Errorf("StartMinute(%q) = %d, want %d", tt.time, got, tt.want)
		}
	}
}

func TestStartsAtAndEndsAt(t *testing.T) {
	a := Appointment{
		Date:            time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
		Time:            "10:00",
		DurationMinutes: 45,
	}

	start, err := a.StartsAt(time.UTC)
	if err != nil {
		t.Fatalf("StartsAt: %v", err)
	}
	if want := time.Date(2026, time.March, 12, 10, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Fatalf("StartsAt = %v, want %v", start, want)
	}

	end, err := a.EndsAt(time.UTC)
	if err != nil {
		t.Fatalf("EndsAt: %v", err)
	}
	if want := start.Add(45 * time.Minute); !end.Equal(want) {
		t.Fatalf("EndsAt = %v, want %v", end, want)
	}
}

func TestStartsAtMalformedTime(t *testing.T) {
	a := Appointment{
		Date: time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
		Time: "later",
	}
	if _, err := a.StartsAt(time.UTC); err == nil {
		t.Fatal("expected an error for a malformed time")
	}
}
