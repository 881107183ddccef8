package routing

import (
	"math"

	"github.com/elektrokombinacija/railmapf/internal/core"
)

// DirectPath plans the single straight-line move from the agent's last
// committed position p to the action's target (spec §4.1). Motion is
// independent-axis and simultaneous on both axes; the slower axis governs
// arrival time — the agent never manhattan-walks.
func DirectPath(action core.Action, p core.Point) core.Segment {
	v := action.Agent.Velocity
	tx := math.Abs(action.Target.X-p.X) / v.X
	ty := math.Abs(action.Target.Y-p.Y) / v.Y
	t := math.Max(tx, ty)
	return core.Segment{Start: p, End: action.Target, Duration: t}
}
