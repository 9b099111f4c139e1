package festivals

import "testing"

func TestStateSequence(t *testing.T) {
	want := []State{
		StateCreated,
		StateSubmission,
		StateAssignment,
		StateReview,
		StateScheduling,
		StateFinalSubmission,
		StateDecision,
		StateAnnounced,
	}

	state := StateCreated
	for i := 1; i < len(want); i++ {
		next, ok := state.Next()
		if !ok {
			t.Fatalf("Next(%s): no successor, want %s", state, want[i])
		}
		if next != want[i] {
			t.Fatalf("Next(%s) = %s, want %s", state, next, want[i])
		}
		state = next
	}

	if _, ok := StateAnnounced.Next(); ok {
		t.Error("ANNOUNCED should be terminal")
	}
}

func TestCanAdvanceTo(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateCreated, StateSubmission, true},
		{StateSubmission, StateAssignment, true},
		{StateFinalSubmission, StateDecision, true},
		{StateDecision, StateAnnounced, true},

		// skips
		{StateCreated, StateAssignment, false},
		{StateCreated, StateAnnounced, false},
		{StateSubmission, StateReview, false},

		// regressions
		{StateReview, StateAssignment, false},
		{StateAnnounced, StateDecision, false},

		// self
		{StateReview, StateReview, false},

		// unknown
		{State("BOGUS"), StateSubmission, false},
		{StateCreated, State("BOGUS"), false},
	}

	for _, tt := range tests {
		if got := tt.from.CanAdvanceTo(tt.to); got != tt.want {
			t.Errorf("CanAdvanceTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestRequiredBefore(t *testing.T) {
	tests := []struct {
		target   State
		required State
		ok       bool
	}{
		{StateSubmission, StateCreated, true},
		{StateDecision, StateFinalSubmission, true},
		{StateAnnounced, StateDecision, true},
		{StateCreated, "", false},
		{State("BOGUS"), "", false},
	}

	for _, tt := range tests {
		got, ok := RequiredBefore(tt.target)
		if ok != tt.ok || got != tt.required {
			t.Errorf("RequiredBefore(%s) = (%s, %v), want (%s, %v)",
				tt.target, got, ok, tt.required, tt.ok)
		}
	}
}

func TestHasOrganizer(t *testing.T) {
	f := Festival{}
	if f.HasOrganizer(1) {
		t.Error("empty organizer set should not match")
	}
}

func TestStateValid(t *testing.T) {
	for _, s := range phaseOrder {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if State("DRAFT").Valid() {
		t.Error("DRAFT should not be valid")
	}
}
