package routing

import (
	"math"

	"github.com/elektrokombinacija/railmapf/internal/core"
)

// IdlePath computes the pre-wait Δ that must precede the candidate path
// so it never comes within the safety distance of any other agent's
// committed future motion in transit (spec §4.5). It returns an Idle Path
// staying at the agent's last committed target, with TStart = t0 and
// TEnd = t0 + Δ. The caller (driver.go) omits it from the commit log when
// Δ == 0 (spec §4.5 "If Δ == 0, the idle is omitted").
func IdlePath(action core.Action, directPath []core.Segment, log *core.CommitLog) core.Path {
	last, _ := log.Last(action.Agent.Name)
	t0 := last.TEnd
	duration := directPath[0].Duration
	xi := directPath[0].Start.X
	xf := directPath[0].End.X

	// raw is the max wait demanded by any currently-blocking neighbor; it
	// falls back to t0 (not to -Inf) when nothing blocks, so a fractional
	// t0 still gets ceiled below. t0 itself is deliberately excluded from
	// the max whenever a blocker is found — folding it in early would
	// round some smaller blocking waits up further than the source
	// algorithm does.
	raw := t0
	anyBlocking := false
	for _, other := range log.Others(action.Agent.Name) {
		wait, ok := blockingWait(action.Agent, other, t0, xi, xf, duration)
		if !ok {
			continue
		}
		if !anyBlocking || wait > raw {
			raw = wait
		}
		anyBlocking = true
	}

	// Whole-second alignment simplifies downstream rendering and removes
	// float-equality edge cases (spec §4.5, Open Question 4).
	tEnd := math.Max(math.Ceil(raw), t0)

	return core.Path{
		Moves: nil,
		Action: core.Action{
			Agent:    action.Agent,
			Target:   last.Action.Target,
			Duration: tEnd - t0,
			Kind:     core.Idle,
		},
		TStart: t0,
		TEnd:   tEnd,
	}
}

// blockingWait finds the latest moment the other agent's committed
// timeline still blocks the candidate path and returns the wait time that
// would clear it, following spec §4.5's t1/t2 formula.
//
// The other agent's remaining paths (those ending at or after t0) are
// flattened into one (x, y, t) sample stream before windowing, matching
// the source algorithm: the forbidden-band test runs over consecutive
// samples across path boundaries, not just within a single committed
// Path.
func blockingWait(agent core.Agent, other core.AgentRoute, t0, xi, xf, duration float64) (float64, bool) {
	sd := other.Agent.SafetyDistance(agent)

	var pts []core.PointST
	for _, path := range other.Paths {
		if path.TEnd < t0 {
			continue
		}
		pts = append(pts, path.ToPointsST()...)
	}

	var blockingP1 core.PointST
	haveBlocking := false
	for i := 0; i+1 < len(pts); i++ {
		p1 := pts[i]
		blocks := xf-p1.X < sd
		if other.Agent.Order >= agent.Order {
			blocks = p1.X-xf < sd
		}
		if blocks {
			blockingP1 = p1
			haveBlocking = true
		}
	}
	if !haveBlocking {
		return 0, false
	}

	t1 := blockingP1.T - (math.Abs(blockingP1.X-xi)-sd)/agent.Velocity.X
	t2 := blockingP1.T + (sd-math.Abs(blockingP1.X-xf))/other.Agent.Velocity.X - duration
	return math.Max(t1, t2), true
}
