// Package routing implements the recursive conflict-resolution routing
// core: the direct path planner, conflict detector, evasion synthesizer,
// idle-time computer and the driver that folds a Schedule into a Routing.
package routing

import (
	"fmt"

	"github.com/elektrokombinacija/railmapf/internal/core"
)

// Routes computes routes for every agent given an ordered schedule of
// actions (spec §4.6). The result contains one route per input agent, in
// input order, each starting with a synthetic t=0 idle.
func Routes(agents []core.Agent, schedule core.Schedule) (core.Routing, error) {
	log, err := core.NewCommitLog(agents)
	if err != nil {
		return core.Routing{}, err
	}

	for _, action := range schedule.Actions {
		if _, ok := log.Lookup(action.Agent.Name); !ok {
			return core.Routing{}, fmt.Errorf("%w: %q", ErrUnknownAgent, action.Agent.Name)
		}
		if err := executeAction(action, log); err != nil {
			return core.Routing{}, err
		}
	}

	return log.Routing(), nil
}

// executeAction finds a path for action.Agent to arrive at the action's
// target and resolves any conflicts along the way, recursing into
// evasions before committing the action itself.
func executeAction(action core.Action, log *core.CommitLog) error {
	last, ok := log.Last(action.Agent.Name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAgent, action.Agent.Name)
	}
	directPath := []core.Segment{DirectPath(action, last.Action.Target)}

	blocking := map[string]Resolution{}
	for {
		conflict, found := FirstConflict(action.Agent, directPath, log)
		if !found {
			break
		}
		if DebugInvariants {
			if prev, seen := blocking[conflict.Cause.Agent.Name]; seen && !strictlyTighter(conflict.Resolution, prev) {
				return &InvariantViolation{
					Agent:  conflict.Cause.Agent.Name,
					Detail: "evasion did not strictly reduce the conflict set",
				}
			}
			blocking[conflict.Cause.Agent.Name] = conflict.Resolution
		}

		evasion := EvasionTarget(conflict)
		if err := executeAction(evasion, log); err != nil {
			return err
		}
	}

	idle := IdlePath(action, directPath, log)
	path := core.Path{
		Moves:  directPath,
		Action: action,
		TStart: idle.TEnd,
		TEnd:   idle.TEnd + directPath[0].Duration + action.Duration,
	}

	if idle.TEnd != idle.TStart {
		log.Append(action.Agent.Name, idle)
	}
	log.Append(action.Agent.Name, path)
	return nil
}

// strictlyTighter reports whether resolving the same blocking agent again
// demands a strictly tighter bound than the previous resolution — the
// monotone-reduction termination argument of spec §4.4.
func strictlyTighter(curr, prev Resolution) bool {
	if curr.IsLower() != prev.IsLower() {
		return true
	}
	if curr.IsLower() {
		return curr.X() < prev.X()
	}
	return curr.X() > prev.X()
}
