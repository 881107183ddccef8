package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/railmapf/internal/vis/interact"
)

// Agent colors, cycled by order so neighboring agents are distinguishable.
var agentPalette = []color.NRGBA{
	{R: 100, G: 200, B: 255, A: 255},
	{R: 255, G: 150, B: 100, A: 255},
	{R: 150, G: 220, B: 120, A: 255},
	{R: 220, G: 140, B: 255, A: 255},
	{R: 255, G: 210, B: 90, A: 255},
}

// ColorSelected highlights the agent selected by clicking it in the lanes
// view.
var ColorSelected = color.NRGBA{R: 255, G: 255, B: 100, A: 255}

// AgentColor returns a stable color for an agent's order, cycling through
// the palette for fleets larger than its size.
func AgentColor(order int64) color.NRGBA {
	return agentPalette[int(order)%len(agentPalette)]
}

// DrawAgent draws an agent as a rail-mounted rectangle at its current
// (x, y) position.
func DrawAgent(gtx layout.Context, x, y float64, order int64, camera *interact.Camera, selected bool) {
	screenX, screenY := camera.WorldToScreen(x, y)
	size := float32(14) * camera.Zoom

	col := AgentColor(order)
	if selected {
		col = ColorSelected
	}
	drawRectangle(gtx, screenX, screenY, size*1.6, size*0.8, col)
}

func drawRectangle(gtx layout.Context, cx, cy, width, height float32, col color.NRGBA) {
	halfW := width / 2
	halfH := height / 2
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(cx-halfW, cy-halfH))
	path.LineTo(f32.Pt(cx+halfW, cy-halfH))
	path.LineTo(f32.Pt(cx+halfW, cy+halfH))
	path.LineTo(f32.Pt(cx-halfW, cy+halfH))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func drawFilledCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))

	segments := 12
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// DrawCircleOutline draws a circular ring.
func DrawCircleOutline(gtx layout.Context, cx, cy, radius float32, col color.NRGBA, width float32) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))

	segments := 24
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}

	paint.FillShape(gtx.Ops, col, clip.Stroke{Path: path.End(), Width: width}.Op())
}
