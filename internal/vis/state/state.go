// Package state manages the visualization state.
package state

import (
	"github.com/elektrokombinacija/railmapf/internal/core"
)

// State holds all visualization state.
type State struct {
	Agents   []core.Agent
	Routing  core.Routing
	Playback *PlaybackState

	// timelines is each agent's flattened (x, y, t) samples, precomputed
	// once so playback can interpolate without walking Paths every frame.
	timelines map[string][]core.PointST

	Selected string
}

// NewState creates a new visualization state from a routing result.
func NewState(agents []core.Agent, routing core.Routing) *State {
	makespan := 0.0
	timelines := make(map[string][]core.PointST, len(routing.Routes))
	for _, route := range routing.Routes {
		var pts []core.PointST
		for _, p := range route.Paths {
			pts = append(pts, p.ToPointsST()...)
			if p.TEnd > makespan {
				makespan = p.TEnd
			}
		}
		timelines[route.Agent.Name] = pts
	}

	return &State{
		Agents:    agents,
		Routing:   routing,
		Playback:  NewPlaybackState(makespan),
		timelines: timelines,
	}
}

// CurrentPositions returns each agent's interpolated (x, y) at the
// current playback time.
func (s *State) CurrentPositions() map[string]core.Point {
	positions := make(map[string]core.Point, len(s.Agents))
	for _, route := range s.Routing.Routes {
		positions[route.Agent.Name] = s.positionAt(route.Agent.Name, s.Playback.CurrentTime)
	}
	return positions
}

func (s *State) positionAt(name string, t float64) core.Point {
	pts := s.timelines[name]
	if len(pts) == 0 {
		return core.Point{}
	}
	if t <= pts[0].T {
		return core.Point{X: pts[0].X, Y: pts[0].Y}
	}
	for i := 1; i < len(pts); i++ {
		if t <= pts[i].T {
			p0, p1 := pts[i-1], pts[i]
			if p1.T == p0.T {
				return core.Point{X: p1.X, Y: p1.Y}
			}
			frac := (t - p0.T) / (p1.T - p0.T)
			return core.Point{X: p0.X + frac*(p1.X-p0.X), Y: p0.Y + frac*(p1.Y-p0.Y)}
		}
	}
	last := pts[len(pts)-1]
	return core.Point{X: last.X, Y: last.Y}
}

// Timeline returns an agent's full flattened sample stream, for drawing
// its complete path.
func (s *State) Timeline(name string) []core.PointST {
	return s.timelines[name]
}

// History returns the portion of an agent's timeline up to the current
// playback time, for trail rendering.
func (s *State) History(name string) []core.PointST {
	pts := s.timelines[name]
	var out []core.PointST
	for _, p := range pts {
		if p.T > s.Playback.CurrentTime {
			break
		}
		out = append(out, p)
	}
	return out
}

// AgentByName looks up an agent's static record by name.
func (s *State) AgentByName(name string) (core.Agent, bool) {
	for _, a := range s.Agents {
		if a.Name == name {
			return a, true
		}
	}
	return core.Agent{}, false
}

// SelectAgent sets the selected agent, toggling off on repeat selection.
func (s *State) SelectAgent(name string) {
	if s.Selected == name {
		s.Selected = ""
		return
	}
	s.Selected = name
}

// RailBounds returns the x-extent any agent's timeline reaches, padded
// by each agent's safety radius so the visible rail corridor includes
// every agent's safety envelope, not just its raw sampled positions. It
// is used to frame the camera (interact.Camera.FitRail) on first layout.
func (s *State) RailBounds() (minX, maxX float64) {
	first := true
	for _, route := range s.Routing.Routes {
		pad := route.Agent.SafetyX
		for _, p := range s.timelines[route.Agent.Name] {
			lo, hi := p.X-pad, p.X+pad
			if first || lo < minX {
				minX = lo
			}
			if first || hi > maxX {
				maxX = hi
			}
			first = false
		}
	}
	return minX, maxX
}

// MinSafetyMargin reports the tightest observed (x-gap - sd) across every
// ordered agent pair at the current playback time. A negative result
// means the routing core's P1 invariant was violated somewhere upstream.
func (s *State) MinSafetyMargin() float64 {
	best := 0.0
	first := true
	positions := s.CurrentPositions()
	for _, a := range s.Agents {
		for _, b := range s.Agents {
			if a.Name == b.Name || a.Order >= b.Order {
				continue
			}
			pa, ok1 := positions[a.Name]
			pb, ok2 := positions[b.Name]
			if !ok1 || !ok2 {
				continue
			}
			sd := a.SafetyDistance(b)
			margin := (pb.X - pa.X) - sd
			if first || margin < best {
				best = margin
				first = false
			}
		}
	}
	return best
}
