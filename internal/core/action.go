package core

import "github.com/google/uuid"

// ActionType tags the provenance of an Action. It is metadata only — it
// never affects planning — but is observable on output for downstream
// tooling (logs, plots, benchmarks).
type ActionType int

const (
	// Scheduled is a caller-requested dwell, part of the input Schedule.
	Scheduled ActionType = iota
	// Evasive is a planner-synthesized shove of a blocking agent.
	Evasive
	// Idle is a planner-inserted pre-wait at the agent's current position.
	Idle
)

// String renders the action kind for logs and plots.
func (t ActionType) String() string {
	switch t {
	case Scheduled:
		return "Scheduled"
	case Evasive:
		return "Evasive"
	case Idle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// Action is a request: an owning agent performs a dwell of Duration at
// Target. Agent is a snapshot — identity is carried by Agent.Name.
type Action struct {
	ID       uuid.UUID  `json:"id"`
	Agent    Agent      `json:"agent"`
	Target   Point      `json:"target"`
	Duration float64    `json:"duration"`
	Kind     ActionType `json:"kind"`
}

// NewAction builds a Scheduled action, stamping a fresh correlation ID.
func NewAction(agent Agent, target Point, duration float64) Action {
	return Action{
		ID:       uuid.New(),
		Agent:    agent,
		Target:   target,
		Duration: duration,
		Kind:     Scheduled,
	}
}
