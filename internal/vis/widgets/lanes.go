// Package widgets provides Gio UI widgets for the visualizer.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/railmapf/internal/vis/draw"
	"github.com/elektrokombinacija/railmapf/internal/vis/interact"
	"github.com/elektrokombinacija/railmapf/internal/vis/state"
)

// Lanes is the main 2D visualization area: the rail plane with every
// agent's traveled trail, full planned timeline, and current position.
type Lanes struct {
	state  *state.State
	camera *interact.Camera
}

// NewLanes creates a new lanes widget.
func NewLanes(st *state.State, camera *interact.Camera) *Lanes {
	return &Lanes{state: st, camera: camera}
}

// Layout renders the lanes view.
func (l *Lanes) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})
	l.handlePointerEvents(gtx)

	for _, agent := range l.state.Agents {
		col := draw.AgentColor(agent.Order)

		full := l.state.Timeline(agent.Name)
		dim := col
		dim.A = 70
		draw.DrawPath(gtx, full, l.camera, dim, 1.5)

		trail := l.state.History(agent.Name)
		draw.DrawPathTrail(gtx, trail, l.camera, col, 3)
	}

	positions := l.state.CurrentPositions()
	margin := l.state.MinSafetyMargin()
	for _, agent := range l.state.Agents {
		pos, ok := positions[agent.Name]
		if !ok {
			continue
		}
		draw.DrawAgent(gtx, pos.X, pos.Y, agent.Order, l.camera, agent.Name == l.state.Selected)
	}
	if margin < 0 {
		for _, agent := range l.state.Agents {
			if pos, ok := positions[agent.Name]; ok {
				draw.DrawSafetyBand(gtx, pos.X, pos.Y, l.camera)
			}
		}
	}

	return layout.Dimensions{Size: bounds}
}

func (l *Lanes) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, l)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: l,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll | pointer.Move,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			l.camera.HandleEvent(gtx, pe)
			if pe.Kind == pointer.Press && pe.Buttons.Contain(pointer.ButtonPrimary) {
				l.handleClick(pe.Position.X, pe.Position.Y)
			}
		}
	}
}

func (l *Lanes) handleClick(screenX, screenY float32) {
	positions := l.state.CurrentPositions()
	for _, agent := range l.state.Agents {
		pos, ok := positions[agent.Name]
		if !ok {
			continue
		}
		sx, sy := l.camera.WorldToScreen(pos.X, pos.Y)
		dx, dy := sx-screenX, sy-screenY
		if dx*dx+dy*dy <= 15*15 {
			l.state.SelectAgent(agent.Name)
			return
		}
	}
}
