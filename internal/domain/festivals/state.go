package festivals

type State string

const (
	StateCreated         State = "CREATED"
	StateSubmission      State = "SUBMISSION"
	StateAssignment      State = "ASSIGNMENT"
	StateReview          State = "REVIEW"
	StateScheduling      State = "SCHEDULING"
	StateFinalSubmission State = "FINAL_SUBMISSION"
	StateDecision        State = "DECISION"
	StateAnnounced       State = "ANNOUNCED"
)

// phaseOrder is the single source of truth for the festival lifecycle.
// State only ever advances one step forward through this sequence.
var phaseOrder = []State{
	StateCreated,
	StateSubmission,
	StateAssignment,
	StateReview,
	StateScheduling,
	StateFinalSubmission,
	StateDecision,
	StateAnnounced,
}

func (s State) Valid() bool {
	return s.index() >= 0
}

func (s State) index() int {
	for i, p := range phaseOrder {
		if p == s {
			return i
		}
	}
	return -1
}

// Next returns the phase that follows s, or false when s is terminal
// or unknown.
func (s State) Next() (State, bool) {
	i := s.index()
	if i < 0 || i == len(phaseOrder)-1 {
		return "", false
	}
	return phaseOrder[i+1], true
}

// RequiredBefore returns the phase a festival must currently be in for a
// transition into target to be legal.
func RequiredBefore(target State) (State, bool) {
	i := target.index()
	if i <= 0 {
		return "", false
	}
	return phaseOrder[i-1], true
}

// CanAdvanceTo reports whether a festival in state s may transition into
// target: exactly one step forward, never a skip, never a regression.
func (s State) CanAdvanceTo(target State) bool {
	next, ok := s.Next()
	return ok && next == target
}
