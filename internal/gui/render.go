package gui

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/chargesim/internal/viz"
)

// scale returns the screen pixels per world unit on each axis. With window
// bounds this is 1.
func (a *App) scale() (sx, sy float64) {
	b := a.Session.Bounds
	sx = float64(rl.GetScreenWidth()) / b.Width()
	sy = float64(rl.GetScreenHeight()) / b.Height()
	return
}

func (a *App) worldToScreen(x, y float64) (int32, int32) {
	b := a.Session.Bounds
	sx, sy := a.scale()
	return int32(math.Round((x - b.XMin) * sx)), int32(math.Round((y - b.YMin) * sy))
}

func (a *App) screenToWorld(x, y int32) (float64, float64) {
	b := a.Session.Bounds
	sx, sy := a.scale()
	return b.XMin + float64(x)/sx, b.YMin + float64(y)/sy
}

// drawField draws one fixed-length segment per grid sample.
func (a *App) drawField() {
	sess := a.Session
	if sess.System.Len() == 0 {
		return
	}
	sx, sy := a.scale()
	for _, s := range sess.System.SampleField(sess.Grid) {
		if !s.Valid {
			continue
		}
		x0, y0 := a.worldToScreen(s.X, s.Y)
		x1 := x0 + int32(math.Round(s.DX*sx))
		y1 := y0 + int32(math.Round(s.DY*sy))
		rl.DrawLine(x0, y0, x1, y1, ColField)
	}
}

// drawPotential shades each grid cell by the potential at its sample point.
func (a *App) drawPotential() {
	sess := a.Session
	sx, sy := a.scale()
	for _, c := range sess.System.SamplePotential(sess.Grid) {
		x, y := a.worldToScreen(c.X, c.Y)
		w := int32(math.Ceil(c.Width * sx))
		h := int32(math.Ceil(c.Height * sy))
		rl.DrawRectangle(x, y, w, h, viz.HeatColor(c.Potential))
	}
}

func (a *App) drawParticles() {
	for _, p := range a.Session.System.Particles() {
		if !p.IsValid() {
			continue
		}
		x, y := a.worldToScreen(p.X, p.Y)
		rl.DrawCircle(x, y, particleRadius, rlColor(p.Color))
	}
}

// drawCursor draws the pulsing ring that follows the mouse.
func (a *App) drawCursor() {
	r := cursorRadius * math.Sin(float64(a.Session.Ticks)/10)
	rl.DrawCircleLines(rl.GetMouseX(), rl.GetMouseY(), float32(math.Abs(r)), ColCursor)
}

func rlColor(c color.Color) rl.Color {
	if c == nil {
		return ColText
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
