package core

// Segment is a straight-line move under the owning agent's velocity.
type Segment struct {
	Start    Point   `json:"start"`
	End      Point   `json:"end"`
	Duration float64 `json:"duration"`
}

// Path is one commit-log entry: zero or more moves followed by the
// terminal Action's dwell, occupying the closed time interval
// [TStart, TEnd].
//
// Invariants (see spec §3): TEnd >= TStart; if Moves is non-empty,
// Moves[0].Start is the agent's position at TStart, Moves[k].End ==
// Moves[k+1].Start, and the last move's End == Action.Target.
type Path struct {
	Moves   []Segment `json:"moves"`
	Action  Action    `json:"action"`
	TStart  float64   `json:"t_start"`
	TEnd    float64   `json:"t_end"`
}

// ToPointsST projects a committed Path into its ordered (x, y, t) samples
// (spec §4.2). The series is monotone in t and piecewise-linear between
// consecutive samples.
func (p Path) ToPointsST() []PointST {
	var result []PointST
	if len(p.Moves) > 0 {
		result = append(result, PointST{X: p.Moves[0].Start.X, Y: p.Moves[0].Start.Y, T: p.TStart})
	}
	clock := p.TStart
	for _, s := range p.Moves {
		clock += s.Duration
		result = append(result, PointST{X: s.End.X, Y: s.End.Y, T: clock})
	}
	result = append(result, PointST{X: p.Action.Target.X, Y: p.Action.Target.Y, T: clock + p.Action.Duration})
	return result
}
