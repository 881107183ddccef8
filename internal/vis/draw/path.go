package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/railmapf/internal/core"
	"github.com/elektrokombinacija/railmapf/internal/vis/interact"
)

// DrawPath draws an agent's flattened (x, y, t) timeline as a line strip.
func DrawPath(gtx layout.Context, pts []core.PointST, camera *interact.Camera, col color.NRGBA, width float32) {
	if len(pts) < 2 {
		return
	}

	w := width * camera.Zoom
	for i := 0; i < len(pts)-1; i++ {
		x1, y1 := camera.WorldToScreen(pts[i].X, pts[i].Y)
		x2, y2 := camera.WorldToScreen(pts[i+1].X, pts[i+1].Y)
		drawPathSegment(gtx, x1, y1, x2, y2, w, col)
	}
}

// DrawPathTrail draws a fading trail of already-visited samples.
func DrawPathTrail(gtx layout.Context, pts []core.PointST, camera *interact.Camera, baseColor color.NRGBA, maxWidth float32) {
	if len(pts) < 2 {
		return
	}

	n := len(pts)
	for i := 0; i < n-1; i++ {
		alpha := uint8(50 + float64(i)/float64(n)*150)
		col := baseColor
		col.A = alpha

		w := maxWidth * camera.Zoom * (0.3 + 0.7*float32(i)/float32(n))

		x1, y1 := camera.WorldToScreen(pts[i].X, pts[i].Y)
		x2, y2 := camera.WorldToScreen(pts[i+1].X, pts[i+1].Y)
		drawPathSegment(gtx, x1, y1, x2, y2, w, col)
	}
}

func drawPathSegment(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}

	dx /= length
	dy /= length
	px := -dy * width / 2
	py := dx * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
