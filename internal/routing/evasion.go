package routing

import "github.com/elektrokombinacija/railmapf/internal/core"

// EvasionTarget converts a Conflict into the zero-duration Evasive action
// that the blocking agent must execute to clear the band: it moves in x
// only, to the minimum-displacement x the resolution names, keeping its y
// (spec §4.4).
func EvasionTarget(c Conflict) core.Action {
	return core.Action{
		Agent:    c.Cause.Agent,
		Target:   core.Point{X: c.Resolution.X(), Y: c.Cause.Target.Y},
		Duration: 0,
		Kind:     core.Evasive,
	}
}
