package scheduling

import (
	"fmt"
	"testing"

	"clinic-server/internal/models"
)

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want func(error) bool
	}{
		{"validation", &ValidationError{Field: "date", Message: "bad"}, IsValidation},
		{"conflict", &ConflictError{Time: "10:00"}, IsConflict},
		{"lead time", &LeadTimeError{Required: 2}, IsLeadTime},
		{"not found", &NotFoundError{ID: "x"}, IsNotFound},
		{"invalid state", &InvalidStateError{Current: models.StatusCancelled, Requested: models.StatusConfirmed}, IsInvalidState},
	}

	predicates := []func(error) bool{IsValidation, IsConflict, IsLeadTime, IsNotFound, IsInvalidState}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.want(tt.err) {
				t.Fatalf("predicate rejected its own error %v", tt.err)
			}
			matches := 0
			for _, p := range predicates {
				if p(tt.err) {
					matches++
				}
			}
			if matches != 1 {
				t.Fatalf("error %v matched %d predicates, want exactly 1", tt.err, matches)
			}
		})
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("booking failed: %w", &ConflictError{Time: "11:30"})
	if !IsConflict(wrapped) {
		t.Fatal("IsConflict must unwrap")
	}
	if IsConflict(nil) || IsConflict(fmt.Errorf("other")) {
		t.Fatal("IsConflict must reject unrelated errors")
	}
}
