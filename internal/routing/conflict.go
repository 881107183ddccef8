package routing

import (
	"math"

	"github.com/elektrokombinacija/railmapf/internal/core"
)

// resolutionSide tags which side of the candidate path a Resolution pushes
// the blocking agent toward.
type resolutionSide int

const (
	sideLower resolutionSide = iota
	sideHigher
)

// Resolution indicates how a conflict must be resolved: the blocking
// agent needs to end up at an x at or below (LowerThanX) or at or above
// (HigherThanX) the given coordinate; a blocker sitting exactly on it no
// longer conflicts (spec §4.3, §9 tagged variant).
type Resolution struct {
	side resolutionSide
	x    float64
}

// LowerThanX resolves a conflict by requiring the blocker's x below x.
func LowerThanX(x float64) Resolution { return Resolution{side: sideLower, x: x} }

// HigherThanX resolves a conflict by requiring the blocker's x above x.
func HigherThanX(x float64) Resolution { return Resolution{side: sideHigher, x: x} }

// X is the boundary coordinate carried by the resolution.
func (r Resolution) X() float64 { return r.x }

// IsLower reports whether this is a LowerThanX resolution.
func (r Resolution) IsLower() bool { return r.side == sideLower }

// Conflict is caused by an agent sitting at the position of its latest
// action, hindering the action now requested by some other agent.
type Conflict struct {
	// Cause is the blocking agent's last committed action; that agent
	// must move to resolve the conflict.
	Cause      core.Action
	Resolution Resolution
}

// lessResolution implements the total order from spec §4.3: resolve the
// tightest squeeze on the left first, otherwise the tightest on the right.
//
//   - any LowerThanX(l1) with greater l1 precedes any LowerThanX with
//     smaller l1;
//   - any LowerThanX precedes any HigherThanX;
//   - HigherThanX(l1) with smaller l1 precedes HigherThanX with greater l1.
func lessResolution(a, b Resolution) bool {
	if a.IsLower() && b.IsLower() {
		return a.X() > b.X()
	}
	if a.IsLower() && !b.IsLower() {
		return true
	}
	if !a.IsLower() && b.IsLower() {
		return false
	}
	return a.X() < b.X()
}

// FirstConflict scans every other agent's last committed action against
// the candidate direct path and returns the single conflict that should
// be resolved first, per the ordering above. It returns ok=false when no
// other agent conflicts.
func FirstConflict(agent core.Agent, path []core.Segment, log *core.CommitLog) (Conflict, bool) {
	if len(path) == 0 {
		return Conflict{}, false
	}

	minX, maxX := path[0].End.X, path[0].End.X
	for _, s := range path[1:] {
		minX = math.Min(minX, s.End.X)
		maxX = math.Max(maxX, s.End.X)
	}

	var best Conflict
	found := false
	for _, other := range log.Others(agent.Name) {
		last := other.Paths[len(other.Paths)-1].Action
		sd := last.Agent.SafetyDistance(agent)

		var candidate Conflict
		ok := false
		switch {
		case last.Agent.Order < agent.Order && last.Target.X > minX-sd:
			candidate = Conflict{Cause: last, Resolution: LowerThanX(minX - sd)}
			ok = true
		case last.Agent.Order > agent.Order && last.Target.X < maxX+sd:
			candidate = Conflict{Cause: last, Resolution: HigherThanX(maxX + sd)}
			ok = true
		}
		if !ok {
			continue
		}
		if !found || lessResolution(candidate.Resolution, best.Resolution) {
			best = candidate
			found = true
		}
	}
	return best, found
}
