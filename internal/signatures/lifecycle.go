package signatures

import (
	"penscribe/sign-portal/sign-portal-backend/pkg/workflows"
)

// lifecycle is the signature state machine: pending is the only state with
// outgoing transitions, signed and rejected are terminal.
var lifecycle = workflows.NewStateMachine(map[string][]string{
	string(StatusPending):  {string(StatusSigned), string(StatusRejected)},
	string(StatusSigned):   {},
	string(StatusRejected): {},
})

// CanTransition reports whether a status update from one state to another is
// allowed.
func CanTransition(from, to Status) bool {
	return lifecycle.CanTransition(string(from), string(to))
}

// IsTerminal reports whether a signature in the given status can never change
// again.
func IsTerminal(status Status) bool {
	return lifecycle.IsTerminal(string(status))
}
