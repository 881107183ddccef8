// Package visgraph is the reserved, currently-unwired visibility-graph
// path planner for agents carrying a non-nil Agent.Reach polygon. It is
// a straight port of original_source's actions::graphs module (which
// built a petgraph visibility graph over an agent's reachable region and
// ran A*) onto gonum's graph/simple and graph/path. The core router
// (internal/routing) never calls this package: Reach is optional
// metadata, and the default planner treats every agent's reach as
// unbounded.
package visgraph

import (
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/elektrokombinacija/railmapf/internal/core"
)

// Graph is a visibility graph over a polygon's vertices plus the start
// and target points: node 0 is always start, node 1 is always target.
type Graph struct {
	Nodes []core.Point
	g     *simple.WeightedUndirectedGraph
}

// BuildGraph constructs the visibility graph for a move from start to
// the action's target, constrained to agent.Reach. Two vertices are
// connected when the straight segment between them lies entirely inside
// the polygon (is "visible" to each other); the edge weight is the
// travel time under the agent's constant-velocity model, mirroring the
// original's timer().
func BuildGraph(reach *core.Polygon, start, target core.Point, vel core.ConstVel2D) *Graph {
	nodes := []core.Point{start, target}
	nodes = append(nodes, reach.Exterior...)
	for _, interior := range reach.Interiors {
		nodes = append(nodes, interior...)
	}

	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := range nodes {
		g.AddNode(simple.Node(int64(i)))
	}

	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			if !segmentInPolygon(reach, nodes[i], nodes[j]) {
				continue
			}
			w := timer(nodes[i], nodes[j], vel)
			g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(int64(i)), T: simple.Node(int64(j)), W: w})
		}
	}

	return &Graph{Nodes: nodes, g: g}
}

// FindPath runs A* (with a zero heuristic, i.e. Dijkstra, matching the
// original's |_| 0.0) from node 0 (start) to node 1 (target) and
// returns the resulting chain of segments, or ok=false if start cannot
// reach target inside the reach polygon.
func (gr *Graph) FindPath(vel core.ConstVel2D) ([]core.Segment, bool) {
	startNode := simple.Node(0)
	targetNode := simple.Node(1)

	shortest, _ := path.AStar(startNode, targetNode, gr.g, nil)
	nodes, _ := shortest.To(targetNode.ID())
	if len(nodes) < 2 {
		return nil, false
	}

	segments := make([]core.Segment, 0, len(nodes)-1)
	for i := 0; i+1 < len(nodes); i++ {
		s := gr.Nodes[nodes[i].ID()]
		e := gr.Nodes[nodes[i+1].ID()]
		segments = append(segments, core.Segment{
			Start:    s,
			End:      e,
			Duration: timer(s, e, vel),
		})
	}
	return segments, true
}

// FindPath2D builds the visibility graph for one action and returns the
// shortest feasible route from start to the action's target, reserved
// for callers that want reach-constrained routing instead of the core
// planner's straight-line assumption.
func FindPath2D(a core.Action, start core.Point) ([]core.Segment, bool) {
	if a.Agent.Reach == nil {
		return nil, false
	}
	g := BuildGraph(a.Agent.Reach, start, a.Target, a.Agent.Velocity)
	return g.FindPath(a.Agent.Velocity)
}

// timer is the travel time between two points under an independent-axis
// constant-velocity model: the slower axis governs (same rule as
// routing.DirectPath uses for straight-line moves).
func timer(start, end core.Point, vel core.ConstVel2D) float64 {
	tx := math.Abs(end.X-start.X) / vel.X
	ty := math.Abs(end.Y-start.Y) / vel.Y
	return math.Max(tx, ty)
}
