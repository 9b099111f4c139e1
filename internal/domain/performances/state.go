package performances

type State string

const (
	StateCreated        State = "CREATED"
	StateSubmitted      State = "SUBMITTED"
	StateReviewed       State = "REVIEWED"
	StateApproved       State = "APPROVED"
	StateRejected       State = "REJECTED"
	StateScheduled      State = "SCHEDULED"
	StateFinalSubmitted State = "FINAL_SUBMITTED"
)

// transitions is the performance lifecycle graph. Unlike the festival
// sequence it branches: an APPROVED performance either files its final
// submission, gets scheduled, or gets rejected. A FINAL_SUBMITTED
// performance can only be scheduled; the decision cascade never touches it.
var transitions = map[State][]State{
	StateCreated:        {StateSubmitted},
	StateSubmitted:      {StateReviewed},
	StateReviewed:       {StateApproved},
	StateApproved:       {StateFinalSubmitted, StateScheduled, StateRejected},
	StateFinalSubmitted: {StateScheduled},
	StateRejected:       {},
	StateScheduled:      {},
}

func (s State) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether the lifecycle graph contains an edge
// from s to target. Cross-entity guards (the parent festival's phase,
// review scores) are checked by the workflow on top of this.
func (s State) CanTransitionTo(target State) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition leaves s.
func (s State) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}
