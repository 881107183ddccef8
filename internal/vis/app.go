// Package vis implements a Gio-based visualization for railmapf routing
// results: a scrubbable playback of every agent's timeline along the
// rail plane.
package vis

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/railmapf/internal/core"
	"github.com/elektrokombinacija/railmapf/internal/vis/interact"
	"github.com/elektrokombinacija/railmapf/internal/vis/state"
	"github.com/elektrokombinacija/railmapf/internal/vis/widgets"
)

// App is the main visualization application.
type App struct {
	state    *state.State
	theme    *material.Theme
	lanes    *widgets.Lanes
	timeline *widgets.Timeline
	toolbar  *widgets.Toolbar
	camera   *interact.Camera
	fitted   bool
	lastW    float32
	lastH    float32
}

// NewApp creates a visualization application for the given routing
// result.
func NewApp(agents []core.Agent, routing core.Routing) *App {
	th := material.NewTheme()
	st := state.NewState(agents, routing)
	camera := interact.NewCamera()

	return &App{
		state:    st,
		theme:    th,
		lanes:    widgets.NewLanes(st, camera),
		timeline: widgets.NewTimeline(st),
		toolbar:  widgets.NewToolbar(st),
		camera:   camera,
	}
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModCtrl | key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.lastW = float32(gtx.Constraints.Max.X)
			a.lastH = float32(gtx.Constraints.Max.Y)
			if !a.fitted {
				a.fitToRail(gtx)
				a.fitted = true
			}

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.state.Playback.Playing {
				a.state.Playback.Advance()
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	switch e.Name {
	case key.NameSpace:
		a.state.Playback.TogglePlay()
	case key.NameLeftArrow:
		a.state.Playback.StepBack()
	case key.NameRightArrow:
		a.state.Playback.StepForward()
	case key.NameHome:
		a.state.Playback.Reset()
	case "R":
		a.fitToRailNow()
	}
}

// fitToRail frames the camera on the rail corridor every agent actually
// reaches (state.RailBounds), called once the first frame reports a real
// screen size. A blind interact.Camera.Reset default (offset 100,100,
// zoom 1.0) has no relation to how long the rail actually is.
func (a *App) fitToRail(gtx layout.Context) {
	minX, maxX := a.state.RailBounds()
	size := gtx.Constraints.Max
	a.camera.FitRail(minX, maxX, float32(size.X), float32(size.Y), 60)
}

// fitToRailNow re-fits using the last known layout size; bound to "R" so
// a user who pans/zooms away from the rail can snap back to it.
func (a *App) fitToRailNow() {
	if !a.fitted || a.lastW == 0 || a.lastH == 0 {
		return
	}
	minX, maxX := a.state.RailBounds()
	a.camera.FitRail(minX, maxX, a.lastW, a.lastH, 60)
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.lanes.Layout(gtx, a.theme)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.timeline.Layout(gtx, a.theme)
		}),
	)
}
