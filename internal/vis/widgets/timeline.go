package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/railmapf/internal/core"
	"github.com/elektrokombinacija/railmapf/internal/vis/draw"
	"github.com/elektrokombinacija/railmapf/internal/vis/state"
)

// Timeline is a time scrubber for a core.Routing: besides the playhead,
// it marks where each agent's commit log carries an Evasive or Idle
// Path (the moments routing.Routes had to intervene), so a reviewer can
// scrub straight to a conflict instead of hunting for it by eye in the
// lanes view.
type Timeline struct {
	state    *state.State
	dragging bool
}

// routeEvent is one marked Path start on the scrubber track, carrying
// the originating agent's order (for draw.AgentColor) and the action kind
// that produced it.
type routeEvent struct {
	t     float64
	order int64
	kind  core.ActionType
}

// events collects every non-trivial (TEnd > TStart) Evasive or Idle Path
// across all routes, in the routing core's own units (seconds from t=0),
// so it tracks whatever core.Routing the scrubber is built over instead
// of a fixed/sample scale.
func (t *Timeline) events() []routeEvent {
	var out []routeEvent
	for _, route := range t.state.Routing.Routes {
		for _, p := range route.Paths {
			if p.TEnd <= p.TStart {
				continue
			}
			switch p.Action.Kind {
			case core.Evasive, core.Idle:
				out = append(out, routeEvent{t: p.TStart, order: route.Agent.Order, kind: p.Action.Kind})
			}
		}
	}
	return out
}

// NewTimeline creates a new timeline widget.
func NewTimeline(st *state.State) *Timeline {
	return &Timeline{
		state: st,
	}
}

// Layout renders the timeline.
func (t *Timeline) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := 60

	// Background
	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 38, B: 42, A: 255}, clip.Rect(rect).Op())

	// Handle pointer events
	t.handlePointerEvents(gtx, height)

	// Draw timeline
	margin := 20
	trackY := height / 2
	trackHeight := 6
	trackWidth := gtx.Constraints.Max.X - 2*margin

	// Track background
	trackRect := image.Rect(margin, trackY-trackHeight/2, margin+trackWidth, trackY+trackHeight/2)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(trackRect).Op())

	// Progress fill
	progress := t.state.Playback.Progress()
	fillWidth := int(float64(trackWidth) * progress)
	if fillWidth > 0 {
		fillRect := image.Rect(margin, trackY-trackHeight/2, margin+fillWidth, trackY+trackHeight/2)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 100, G: 180, B: 255, A: 255}, clip.Rect(fillRect).Op())
	}

	// Conflict markers: one tick per Evasive/Idle Path start, positioned
	// by its fraction of the routing's makespan and colored by the
	// owning agent's order.
	t.drawEventMarkers(gtx, margin, trackWidth, trackY)

	// Playhead
	playheadX := margin + fillWidth
	playheadSize := 12
	playheadRect := image.Rect(playheadX-playheadSize/2, trackY-playheadSize/2, playheadX+playheadSize/2, trackY+playheadSize/2)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, clip.Rect(playheadRect).Op())

	// Time labels
	t.drawTimeLabels(gtx, th, margin, trackWidth, height)

	return layout.Dimensions{Size: image.Point{X: gtx.Constraints.Max.X, Y: height}}
}

// drawEventMarkers draws one small square per routeEvent along the
// track: a filled square for Evasive (the planner shoved this agent),
// a hollow one for Idle (the agent waited). Both sit above the fill/track
// rect so they stay visible regardless of playback progress.
func (t *Timeline) drawEventMarkers(gtx layout.Context, margin, trackWidth, trackY int) {
	maxTime := t.state.Playback.MaxTime
	if maxTime <= 0 {
		return
	}
	const size = 5
	for _, ev := range t.events() {
		frac := ev.t / maxTime
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		x := margin + int(float64(trackWidth)*frac)
		col := draw.AgentColor(ev.order)
		y := trackY - 10
		switch ev.kind {
		case core.Evasive:
			rect := image.Rect(x-size, y-size, x+size, y+size)
			paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
		case core.Idle:
			rect := image.Rect(x-size, y-size, x+size, y+size)
			border := clip.Rect(rect)
			inner := image.Rect(x-size+2, y-size+2, x+size-2, y+size-2)
			paint.FillShape(gtx.Ops, col, border.Op())
			paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 38, B: 42, A: 255}, clip.Rect(inner).Op())
		}
	}
}

func (t *Timeline) drawTimeLabels(gtx layout.Context, th *material.Theme, margin, trackWidth, height int) {
	// Current time
	currentLabel := material.Label(th, 12, fmt.Sprintf("%.1fs", t.state.Playback.CurrentTime))
	currentLabel.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	currentLabel.Alignment = text.Start

	// Max time
	maxLabel := material.Label(th, 12, fmt.Sprintf("%.1fs", t.state.Playback.MaxTime))
	maxLabel.Color = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	maxLabel.Alignment = text.End

	// Speed indicator
	speedLabel := material.Label(th, 12, fmt.Sprintf("%.1fx", t.state.Playback.Speed))
	speedLabel.Color = color.NRGBA{R: 150, G: 180, B: 200, A: 255}

	// Layout labels
	layout.Inset{Top: unit.Dp(4), Left: unit.Dp(20), Right: unit.Dp(20)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return currentLabel.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return speedLabel.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return maxLabel.Layout(gtx)
			}),
		)
	})
	_ = margin
	_ = trackWidth
	_ = height
}

func (t *Timeline) handlePointerEvents(gtx layout.Context, height int) {
	margin := 20
	trackWidth := gtx.Constraints.Max.X - 2*margin

	// Register for pointer events
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, height)).Push(gtx.Ops)
	event.Op(gtx.Ops, t)
	area.Pop()

	// Process events
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: t,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			switch pe.Kind {
			case pointer.Press:
				t.dragging = true
				t.seekToPosition(pe.Position.X, margin, trackWidth)

			case pointer.Drag:
				if t.dragging {
					t.seekToPosition(pe.Position.X, margin, trackWidth)
				}

			case pointer.Release:
				t.dragging = false
			}
		}
	}
}

func (t *Timeline) seekToPosition(screenX float32, margin, trackWidth int) {
	// Calculate progress from screen position
	x := float64(screenX) - float64(margin)
	progress := x / float64(trackWidth)

	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	// Set time
	newTime := progress * t.state.Playback.MaxTime
	t.state.Playback.SetTime(newTime)
}
