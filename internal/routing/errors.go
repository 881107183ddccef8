package routing

import "github.com/pkg/errors"

// ErrUnknownAgent is returned when a Schedule references an agent name
// absent from the agent list passed to Routes — a name mismatch between
// schedule and agents, which spec §7 calls fatal: abort.
var ErrUnknownAgent = errors.New("routing: action references unknown agent")

// DebugInvariants gates the recursive-evasion invariant check described
// in spec §7: "Fails with InvariantViolation in debug builds if a
// recursive evasion does not strictly reduce the conflict set." It is
// off by default so release callers pay nothing for the extra bookkeeping;
// enable it in tests that want to pin the termination argument.
//
// Unlike the Rust original's debug_assert! (which aborts the process),
// the check here surfaces as an ordinary returned error from Routes, so
// a caller (e.g. sim.Simulator.Run) can decide what to do with it —
// fail the batch, log and continue, whatever fits the caller's context.
var DebugInvariants = false

// InvariantViolation is returned (only when DebugInvariants is true) when
// an evasion step fails to shrink the blocking set — input contradicting
// agent ordering is the only way this should occur.
type InvariantViolation struct {
	Agent  string
	Detail string
}

func (e *InvariantViolation) Error() string {
	return "routing: invariant violation for agent " + e.Agent + ": " + e.Detail
}
