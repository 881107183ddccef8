package routing

import (
	"math"
	"testing"

	"github.com/elektrokombinacija/railmapf/internal/core"
)

func a1() core.Agent {
	return core.Agent{Name: "A1", Position: core.Point{X: 10, Y: 10}, Velocity: core.ConstVel2D{X: 2, Y: 1}, SafetyX: 10, Order: 0}
}

func a2() core.Agent {
	return core.Agent{Name: "A2", Position: core.Point{X: 30, Y: 10}, Velocity: core.ConstVel2D{X: 2, Y: 1}, SafetyX: 10, Order: 1}
}

// Scenario A (spec §8): no conflict, no idle.
func TestRoutes_ScenarioA_NoConflictNoIdle(t *testing.T) {
	agents := []core.Agent{a1(), a2()}
	sched := core.NewSchedule(core.NewAction(a1(), core.Point{X: 20, Y: 20}, 6))

	out, err := Routes(agents, sched)
	if err != nil {
		t.Fatalf("Routes: %v", err)
	}

	r1 := routeFor(t, out, "A1")
	if len(r1.Paths) != 2 {
		t.Fatalf("A1 should have 2 paths (initial idle + move), got %d", len(r1.Paths))
	}
	move := r1.Paths[1]
	if move.Action.Kind != core.Scheduled {
		t.Errorf("second path should be the scheduled move, got kind %v", move.Action.Kind)
	}
	if len(move.Moves) != 1 || move.Moves[0].Duration != 10 {
		t.Fatalf("expected a single 10s move, got %+v", move.Moves)
	}
	if move.TStart != 0 || move.TEnd != 16 {
		t.Errorf("expected t_start=0 t_end=16, got t_start=%v t_end=%v", move.TStart, move.TEnd)
	}

	r2 := routeFor(t, out, "A2")
	if len(r2.Paths) != 1 {
		t.Fatalf("A2 should be untouched beyond its initial idle, got %d paths", len(r2.Paths))
	}
}

// Scenario E (spec §8): empty schedule yields one synthetic idle per agent.
func TestRoutes_ScenarioE_EmptySchedule(t *testing.T) {
	agents := []core.Agent{a1(), a2()}
	out, err := Routes(agents, core.Schedule{})
	if err != nil {
		t.Fatalf("Routes: %v", err)
	}
	if len(out.Routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(out.Routes))
	}
	for _, route := range out.Routes {
		if len(route.Paths) != 1 {
			t.Fatalf("agent %s: expected exactly the synthetic idle, got %d paths", route.Agent.Name, len(route.Paths))
		}
		p := route.Paths[0]
		if p.TStart != 0 || p.TEnd != 0 {
			t.Errorf("agent %s: synthetic idle should be t_start=t_end=0, got %v/%v", route.Agent.Name, p.TStart, p.TEnd)
		}
	}
}

// Scenario B (spec §8): a trailing agent's transit through the destination
// band forces a non-zero idle before the leading agent may depart.
func TestRoutes_ScenarioB_IdleInserted(t *testing.T) {
	agents := []core.Agent{a1(), a2()}
	sched := core.NewSchedule(
		core.NewAction(a2(), core.Point{X: 5, Y: 20}, 6),
		core.NewAction(a1(), core.Point{X: 20, Y: 20}, 6),
	)

	out, err := Routes(agents, sched)
	if err != nil {
		t.Fatalf("Routes: %v", err)
	}

	r1 := routeFor(t, out, "A1")
	foundIdle := false
	for _, p := range r1.Paths {
		if p.Action.Kind == core.Idle && p.TEnd > p.TStart {
			foundIdle = true
		}
	}
	if !foundIdle {
		t.Errorf("expected A1 to carry a non-zero idle while A2 transits its destination band")
	}
	assertSafetyProperty(t, out)
}

// Scenario F (spec §8): a handful of deterministic schedules over 3 agents,
// checking P1 (safety) and P2 (ordering) on every produced route.
func TestRoutes_PropertyP1P2_DeterministicSchedules(t *testing.T) {
	agents := []core.Agent{
		{Name: "r0", Position: core.Point{X: 0, Y: 0}, Velocity: core.ConstVel2D{X: 2, Y: 1}, SafetyX: 12, Order: 0},
		{Name: "r1", Position: core.Point{X: 30, Y: 0}, Velocity: core.ConstVel2D{X: 2.5, Y: 1.5}, SafetyX: 15, Order: 1},
		{Name: "r2", Position: core.Point{X: 60, Y: 0}, Velocity: core.ConstVel2D{X: 1.5, Y: 2}, SafetyX: 18, Order: 2},
	}

	gen := newScheduleGen(7)
	for trial := 0; trial < 25; trial++ {
		sched := gen.schedule(agents, 20)
		out, err := Routes(agents, sched)
		if err != nil {
			t.Fatalf("trial %d: Routes: %v", trial, err)
		}
		assertSafetyProperty(t, out)
		assertOrderingPreserved(t, out)
	}
}

func routeFor(t *testing.T, r core.Routing, name string) core.AgentRoute {
	t.Helper()
	for _, route := range r.Routes {
		if route.Agent.Name == name {
			return route
		}
	}
	t.Fatalf("no route for agent %q", name)
	return core.AgentRoute{}
}

// assertSafetyProperty checks P1: for every pair of agents, at every time
// sampled by either's timeline, their interpolated x-positions differ by
// at least sd(A,B), with the sign fixed by agent order.
func assertSafetyProperty(t *testing.T, r core.Routing) {
	t.Helper()
	const eps = 1e-6

	flat := make(map[string][]core.PointST, len(r.Routes))
	for _, route := range r.Routes {
		var pts []core.PointST
		for _, p := range route.Paths {
			pts = append(pts, p.ToPointsST()...)
		}
		flat[route.Agent.Name] = pts
	}

	for i, ri := range r.Routes {
		for j, rj := range r.Routes {
			if i == j {
				continue
			}
			sd := ri.Agent.SafetyDistance(rj.Agent)
			for _, p := range flat[ri.Agent.Name] {
				q, ok := interpolate(p.T, rj.Agent, flat[rj.Agent.Name])
				if !ok {
					continue
				}
				if ri.Agent.Order < rj.Agent.Order {
					if q.X-p.X < sd-eps {
						t.Errorf("P1 violated: %s@%v x=%v too close to %s x=%v (sd=%v)",
							ri.Agent.Name, p.T, p.X, rj.Agent.Name, q.X, sd)
					}
				} else {
					if p.X-q.X < sd-eps {
						t.Errorf("P1 violated: %s@%v x=%v too close to %s x=%v (sd=%v)",
							ri.Agent.Name, p.T, p.X, rj.Agent.Name, q.X, sd)
					}
				}
			}
		}
	}
}

// assertOrderingPreserved checks P2 for every pair of agents with
// different orders: at each sample time of the lower-ordered agent, its x
// must be strictly less than the higher-ordered agent's interpolated x.
func assertOrderingPreserved(t *testing.T, r core.Routing) {
	t.Helper()
	for _, route := range r.Routes {
		var pts []core.PointST
		for _, p := range route.Paths {
			pts = append(pts, p.ToPointsST()...)
		}
		for _, other := range r.Routes {
			if other.Agent.Name == route.Agent.Name {
				continue
			}
			var otherPts []core.PointST
			for _, p := range other.Paths {
				otherPts = append(otherPts, p.ToPointsST()...)
			}
			for _, p := range pts {
				q, ok := interpolate(p.T, other.Agent, otherPts)
				if !ok {
					continue
				}
				diff := p.X - q.X
				if route.Agent.Order < other.Agent.Order && diff >= 0 {
					t.Errorf("P2 violated: %s (order %d) not left of %s (order %d) at t=%v",
						route.Agent.Name, route.Agent.Order, other.Agent.Name, other.Agent.Order, p.T)
				}
			}
		}
	}
}

// interpolate linearly interpolates an agent's position at time t from its
// own timeline samples (grounded on the original test suite's
// `interpolate` helper in original_source/tests/actions_tests.rs).
func interpolate(t float64, agent core.Agent, pts []core.PointST) (core.Point, bool) {
	if len(pts) == 0 {
		return core.Point{}, false
	}
	idx := -1
	for i, pt := range pts {
		if t < pt.T {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return core.Point{}, false
	}
	p1, p2 := pts[idx-1], pts[idx]

	sgn := func(a, b float64) float64 {
		switch {
		case b > a:
			return 1
		case b < a:
			return -1
		default:
			return 0
		}
	}
	maxDx := math.Abs(p1.X - p2.X)
	maxDy := math.Abs(p1.Y - p2.Y)
	x := p1.X + sgn(p1.X, p2.X)*math.Min(agent.Velocity.X*(t-p1.T), maxDx)
	y := p1.Y + sgn(p1.Y, p2.Y)*math.Min(agent.Velocity.Y*(t-p1.T), maxDy)
	return core.Point{X: x, Y: y}, true
}
