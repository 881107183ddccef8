package core

import "testing"

func TestPathToPointsST_WithMoves(t *testing.T) {
	p := Path{
		Moves: []Segment{
			{Start: Point{X: 10, Y: 10}, End: Point{X: 20, Y: 20}, Duration: 10},
		},
		Action: Action{Target: Point{X: 20, Y: 20}, Duration: 6},
		TStart: 0,
		TEnd:   16,
	}

	pts := p.ToPointsST()
	want := []PointST{
		{X: 10, Y: 10, T: 0},
		{X: 20, Y: 20, T: 10},
		{X: 20, Y: 20, T: 16},
	}
	if len(pts) != len(want) {
		t.Fatalf("got %d points, want %d", len(pts), len(want))
	}
	for i, w := range want {
		if pts[i] != w {
			t.Errorf("point %d = %+v, want %+v", i, pts[i], w)
		}
	}
}

func TestPathToPointsST_IdleHasNoMoves(t *testing.T) {
	p := Path{
		Action: Action{Target: Point{X: 5, Y: 5}, Duration: 4},
		TStart: 2,
		TEnd:   6,
	}
	pts := p.ToPointsST()
	if len(pts) != 1 {
		t.Fatalf("idle path should project to a single sample, got %d", len(pts))
	}
	if pts[0] != (PointST{X: 5, Y: 5, T: 6}) {
		t.Errorf("got %+v", pts[0])
	}
}

func TestPathToPointsST_MonotoneInTime(t *testing.T) {
	p := Path{
		Moves: []Segment{
			{Start: Point{X: 0, Y: 0}, End: Point{X: 5, Y: 0}, Duration: 5},
			{Start: Point{X: 5, Y: 0}, End: Point{X: 5, Y: 5}, Duration: 5},
		},
		Action: Action{Target: Point{X: 5, Y: 5}, Duration: 2},
		TStart: 1,
	}
	pts := p.ToPointsST()
	for i := 1; i < len(pts); i++ {
		if pts[i].T < pts[i-1].T {
			t.Fatalf("timeline not monotone at index %d: %+v -> %+v", i, pts[i-1], pts[i])
		}
	}
}
