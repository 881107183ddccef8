package visgraph

import (
	"math"

	"github.com/elektrokombinacija/railmapf/internal/core"
)

const epsilon = 1e-9

// segmentInPolygon reports whether the closed segment a-b lies entirely
// inside reach: its midpoint must be inside (or on the boundary of) the
// polygon, and it must not properly cross any exterior or interior
// edge. This mirrors geo::Contains's use in the original's create_graph,
// simplified to the case needed here (simple, non-self-intersecting
// polygons).
func segmentInPolygon(reach *core.Polygon, a, b core.Point) bool {
	mid := core.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	if !pointInPolygon(reach, mid) {
		return false
	}

	for _, ring := range allRings(reach) {
		n := len(ring)
		for i := 0; i < n; i++ {
			c, d := ring[i], ring[(i+1)%n]
			if segmentsProperlyCross(a, b, c, d) {
				return false
			}
		}
	}
	return true
}

func allRings(p *core.Polygon) [][]core.Point {
	rings := [][]core.Point{p.Exterior}
	rings = append(rings, p.Interiors...)
	return rings
}

// pointInPolygon is a ray-casting test over the exterior ring minus any
// interior (hole) rings, treating every ring's own boundary as part of
// the solid region (a point sitting exactly on a polygon or hole edge
// counts as contained, not excluded) — otherwise a candidate visibility
// edge that runs along the reach polygon's own boundary, or along a
// hole's boundary, would be rejected by ray-casting's inherent
// on-edge ambiguity.
func pointInPolygon(p *core.Polygon, pt core.Point) bool {
	if !onBoundary(p.Exterior, pt) && !rayCast(p.Exterior, pt) {
		return false
	}
	for _, hole := range p.Interiors {
		if onBoundary(hole, pt) {
			continue
		}
		if rayCast(hole, pt) {
			return false
		}
	}
	return true
}

// onBoundary reports whether pt lies on (within 1e-6 of) any edge of
// ring.
func onBoundary(ring []core.Point, pt core.Point) bool {
	n := len(ring)
	for i := 0; i < n; i++ {
		if distToSegment(pt, ring[i], ring[(i+1)%n]) < 1e-6 {
			return true
		}
	}
	return false
}

func distToSegment(pt, a, b core.Point) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	apx, apy := pt.X-a.X, pt.Y-a.Y
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return math.Hypot(apx, apy)
	}
	t := (apx*abx + apy*aby) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closestX, closestY := a.X+t*abx, a.Y+t*aby
	return math.Hypot(pt.X-closestX, pt.Y-closestY)
}

func rayCast(ring []core.Point, pt core.Point) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) {
			xIntersect := (pj.X-pi.X)*(pt.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if pt.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

// segmentsProperlyCross reports whether a-b and c-d cross at an
// interior point of both segments (shared endpoints don't count, since
// polygon vertices are themselves graph nodes).
func segmentsProperlyCross(a, b, c, d core.Point) bool {
	d1 := cross(sub(d, c), sub(a, c))
	d2 := cross(sub(d, c), sub(b, c))
	d3 := cross(sub(b, a), sub(c, a))
	d4 := cross(sub(b, a), sub(d, a))

	return sign(d1) != sign(d2) && sign(d3) != sign(d4) &&
		sign(d1) != 0 && sign(d2) != 0 && sign(d3) != 0 && sign(d4) != 0
}

func sub(p, q core.Point) core.Point { return core.Point{X: p.X - q.X, Y: p.Y - q.Y} }
func cross(p, q core.Point) float64  { return p.X*q.Y - p.Y*q.X }

func sign(v float64) int {
	if v > epsilon {
		return 1
	}
	if v < -epsilon {
		return -1
	}
	return 0
}
