package draw

import (
	"image/color"
	"math"
	"time"

	"gioui.org/layout"

	"github.com/elektrokombinacija/railmapf/internal/vis/interact"
)

// ColorSafetyBand is the pulsing highlight drawn by DrawSafetyBand.
var ColorSafetyBand = color.NRGBA{R: 255, G: 80, B: 80, A: 180}

// DrawSafetyBand draws a pulsing ring at an agent's position. The lanes
// view draws it around every agent whenever some agent pair is within sd
// of each other at the current playback time — the routing core
// never actually allows this (spec P1), so seeing one during replay
// marks a bug, not a transient condition to wait out.
func DrawSafetyBand(gtx layout.Context, x, y float64, camera *interact.Camera) {
	screenX, screenY := camera.WorldToScreen(x, y)
	pulse := float32(math.Sin(float64(time.Now().UnixMilli())/200.0)*0.3 + 0.7)

	radius := float32(20) * camera.Zoom * pulse
	DrawCircleOutline(gtx, screenX, screenY, radius, ColorSafetyBand, 3*camera.Zoom)
	drawFilledCircle(gtx, screenX, screenY, radius*0.3*pulse, ColorSafetyBand)
}
