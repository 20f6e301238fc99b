package models

import "testing"

func TestRegistrationStatusCounted(t *testing.T) {
	counted := map[RegistrationStatus]bool{
		RegistrationPendingApproval:     false,
		RegistrationConfirmed:           true,
		RegistrationRejectedByOrganizer: false,
		RegistrationCancelledByUser:     false,
		RegistrationAttended:            true,
	}
	for status, want := range counted {
		if got := status.Counted(); got != want {
			t.Errorf("%s.Counted() = %v, want %v", status, got, want)
		}
	}
}

func TestCounterDelta(t *testing.T) {
	tests := []struct {
		name string
		old  RegistrationStatus
		new  RegistrationStatus
		want int
	}{
		{"pending to confirmed", RegistrationPendingApproval, RegistrationConfirmed, 1},
		{"confirmed to rejected", RegistrationConfirmed, RegistrationRejectedByOrganizer, -1},
		{"confirmed to cancelled", RegistrationConfirmed, RegistrationCancelledByUser, -1},
		{"confirmed to pending", RegistrationConfirmed, RegistrationPendingApproval, -1},
		{"pending to rejected", RegistrationPendingApproval, RegistrationRejectedByOrganizer, 0},
		{"rejected to confirmed", RegistrationRejectedByOrganizer, RegistrationConfirmed, 1},
		{"cancelled to confirmed", RegistrationCancelledByUser, RegistrationConfirmed, 1},
		{"confirmed to attended", RegistrationConfirmed, RegistrationAttended, 0},
		{"attended to confirmed", RegistrationAttended, RegistrationConfirmed, 0},
		{"attended to rejected", RegistrationAttended, RegistrationRejectedByOrganizer, -1},
		{"attended to cancelled", RegistrationAttended, RegistrationCancelledByUser, -1},
		{"pending to attended", RegistrationPendingApproval, RegistrationAttended, 1},
		{"no change", RegistrationConfirmed, RegistrationConfirmed, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CounterDelta(tt.old, tt.new); got != tt.want {
				t.Errorf("CounterDelta(%s, %s) = %d, want %d", tt.old, tt.new, got, tt.want)
			}
		})
	}
}

// The delta rule must stay symmetric: applying a transition and its
// reverse always nets to zero.
func TestCounterDeltaSymmetry(t *testing.T) {
	statuses := []RegistrationStatus{
		RegistrationPendingApproval,
		RegistrationConfirmed,
		RegistrationRejectedByOrganizer,
		RegistrationCancelledByUser,
		RegistrationAttended,
	}
	for _, a := range statuses {
		for _, b := range statuses {
			if CounterDelta(a, b)+CounterDelta(b, a) != 0 {
				t.Errorf("CounterDelta(%s, %s) and reverse do not cancel", a, b)
			}
		}
	}
}

func TestEventStatusGates(t *testing.T) {
	open := map[EventStatus]bool{
		EventDraft:              false,
		EventPlanned:            true,
		EventRegistrationOpen:   true,
		EventRegistrationClosed: false,
		EventActive:             false,
		EventCompleted:          false,
		EventCancelled:          false,
	}
	for status, want := range open {
		if got := status.AcceptsRegistrations(); got != want {
			t.Errorf("%s.AcceptsRegistrations() = %v, want %v", status, got, want)
		}
	}

	results := map[EventStatus]bool{
		EventActive:    true,
		EventCompleted: true,
		EventPlanned:   false,
		EventCancelled: false,
	}
	for status, want := range results {
		if got := status.AcceptsResults(); got != want {
			t.Errorf("%s.AcceptsResults() = %v, want %v", status, got, want)
		}
	}
}
