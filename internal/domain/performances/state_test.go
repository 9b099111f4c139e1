package performances

import "testing"

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateCreated, StateSubmitted, true},
		{StateSubmitted, StateReviewed, true},
		{StateReviewed, StateApproved, true},
		{StateApproved, StateFinalSubmitted, true},
		{StateApproved, StateScheduled, true},
		{StateApproved, StateRejected, true},
		{StateFinalSubmitted, StateScheduled, true},

		// a final submission shields a performance from rejection
		{StateFinalSubmitted, StateRejected, false},

		// no skipping the review branch
		{StateCreated, StateReviewed, false},
		{StateSubmitted, StateApproved, false},
		{StateCreated, StateScheduled, false},

		// terminal states
		{StateRejected, StateApproved, false},
		{StateScheduled, StateRejected, false},

		// unknown
		{State("BOGUS"), StateSubmitted, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []State{StateRejected, StateScheduled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []State{StateCreated, StateSubmitted, StateReviewed, StateApproved, StateFinalSubmitted} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	if State("BOGUS").Terminal() {
		t.Error("unknown state should not be terminal")
	}
}
