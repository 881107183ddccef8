package visgraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/railmapf/internal/core"
)

func squareReach() *core.Polygon {
	return &core.Polygon{
		Exterior: []core.Point{
			{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100},
		},
	}
}

// Grounded on original_source/src/actions/graphs/tests.rs's
// test_find_path_2d_g: an open rectangular reach with no obstacles, so
// the shortest path degenerates to the direct start->target segment.
func TestFindPath2D_OpenReach_StraightLine(t *testing.T) {
	start := core.Point{X: 10, Y: 10}
	target := core.Point{X: 90, Y: 90}
	vel := core.ConstVel2D{X: 2, Y: 1}

	agent := core.Agent{
		Name:     "agent",
		Position: start,
		Velocity: vel,
		SafetyX:  10,
		Order:    0,
		Reach:    squareReach(),
	}
	action := core.NewAction(agent, target, 10)

	segs, ok := FindPath2D(action, start)
	require.True(t, ok)
	require.Len(t, segs, 1)
	require.Equal(t, start, segs[0].Start)
	require.Equal(t, target, segs[0].End)
	require.InDelta(t, timer(start, target, vel), segs[0].Duration, 1e-9)
}

// A reach with an interior hole blocking the direct line forces the
// shortest path to route around a polygon vertex instead.
func TestFindPath2D_HoleForcesDetour(t *testing.T) {
	start := core.Point{X: 0, Y: 50}
	target := core.Point{X: 100, Y: 50}
	vel := core.ConstVel2D{X: 1, Y: 1}

	reach := &core.Polygon{
		Exterior: []core.Point{
			{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100},
		},
		Interiors: [][]core.Point{
			{{X: 40, Y: 20}, {X: 60, Y: 20}, {X: 60, Y: 80}, {X: 40, Y: 80}},
		},
	}
	agent := core.Agent{Name: "agent", Position: start, Velocity: vel, SafetyX: 10, Order: 0, Reach: reach}
	action := core.NewAction(agent, target, 5)

	segs, ok := FindPath2D(action, start)
	require.True(t, ok)
	require.GreaterOrEqual(t, len(segs), 2, "direct line crosses the hole, so the route must bend around it")

	var total float64
	for _, s := range segs {
		total += s.Duration
	}
	require.GreaterOrEqual(t, total, timer(start, target, vel), "detour cannot be cheaper than the blocked direct line")
}

func TestFindPath2D_NoReach_ReturnsFalse(t *testing.T) {
	agent := core.Agent{Name: "agent", Position: core.Point{X: 0, Y: 0}, Velocity: core.ConstVel2D{X: 1, Y: 1}, SafetyX: 5}
	action := core.NewAction(agent, core.Point{X: 10, Y: 10}, 1)

	_, ok := FindPath2D(action, agent.Position)
	require.False(t, ok)
}
