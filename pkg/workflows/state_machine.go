package workflows

// StateMachine enforces one-way status transitions over a fixed table.
type StateMachine struct {
	allowedTransitions map[string][]string
}

// NewStateMachine creates a state machine from a table of allowed
// transitions. States absent from the table (or mapped to an empty slice)
// are terminal.
func NewStateMachine(transitions map[string][]string) *StateMachine {
	return &StateMachine{allowedTransitions: transitions}
}

// CanTransition checks if a status transition is allowed
func (sm *StateMachine) CanTransition(from, to string) bool {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return false
	}
	for _, allowedTo := range allowed {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves the given status.
func (sm *StateMachine) IsTerminal(status string) bool {
	return len(sm.allowedTransitions[status]) == 0
}

// GetAllowedTransitions returns the allowed next statuses for a given status
func (sm *StateMachine) GetAllowedTransitions(from string) []string {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return []string{}
	}
	return allowed
}
