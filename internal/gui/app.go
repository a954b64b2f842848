package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/chargesim/internal/config"
	"github.com/san-kum/chargesim/internal/metrics"
	"github.com/san-kum/chargesim/internal/sim"
)

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColField   = rl.NewColor(200, 200, 200, 255)
	ColCursor  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(255, 255, 255, 255)
	ColTextDim = rl.NewColor(90, 90, 90, 255)
	ColAccent  = rl.NewColor(0, 200, 200, 255)
)

const (
	particleRadius = 3
	cursorRadius   = 20
	maxTelemetry   = 200
)

type App struct {
	Session       *sim.Session
	Window        config.WindowConfig
	Running       bool
	ShowField     bool
	ShowPotential bool
	Telemetry     []float64
	Err           error
	quit          bool
}

// initWindow opens a resizable window and caps the loop at 60 frames per
// second. Escape is handled by the app rather than raylib.
func initWindow(w config.WindowConfig) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func NewApp(sess *sim.Session, w config.WindowConfig) *App {
	return &App{
		Session:   sess,
		Window:    w,
		Running:   true,
		ShowField: true,
		Telemetry: make([]float64, 0, maxTelemetry),
	}
}

// Run opens the window and blocks until it is closed or escape is pressed.
func Run(sess *sim.Session, w config.WindowConfig) error {
	initWindow(w)
	defer rl.CloseWindow()
	app := NewApp(sess, w)
	app.RunLoop()
	return app.Err
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	sess := a.Session
	sess.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))

	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyF) {
		a.ShowField = !a.ShowField
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.ShowPotential = !a.ShowPotential
	}

	x, y := a.screenToWorld(rl.GetMouseX(), rl.GetMouseY())
	in := sim.Input{
		X:        x,
		Y:        y,
		Proton:   rl.IsMouseButtonDown(rl.MouseButtonLeft),
		Electron: rl.IsMouseButtonDown(rl.MouseButtonRight),
		FlipK:    rl.IsMouseButtonDown(rl.MouseButtonMiddle),
		Undo:     rl.IsKeyDown(rl.KeyBackspace),
		Clear:    rl.IsKeyDown(rl.KeyEnter),
	}
	if sess.InputFrame() && rl.IsKeyDown(rl.KeyEscape) {
		a.quit = true
		return
	}
	if err := sess.Poll(in); err != nil {
		a.Err = err
	}
	if in.Clear && sess.InputFrame() {
		a.Telemetry = a.Telemetry[:0]
	}
	sess.Tick()

	if !a.Running {
		return
	}
	sess.Step()
	a.Telemetry = append(a.Telemetry, metrics.Total(sess.System))
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.ShowPotential {
		a.drawPotential()
	}
	if a.ShowField {
		a.drawField()
	}
	a.drawParticles()
	a.drawCursor()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	sess := a.Session
	rl.DrawText(fmt.Sprintf("FPS: %d", rl.GetFPS()), 10, 10, 20, ColText)
	rl.DrawText(fmt.Sprintf("Protons: %d Electrons: %d", sess.Protons, sess.Electrons), 10, 30, 20, ColText)
	rl.DrawText(fmt.Sprintf("K: %.1f", sess.System.K), 10, 50, 20, ColTextDim)
	if !a.Running {
		rl.DrawText("PAUSED", 10, 70, 20, ColAccent)
	}
	if a.Err != nil {
		rl.DrawText(a.Err.Error(), 10, int32(rl.GetScreenHeight())-60, 16, rl.Red)
	}

	a.DrawTelemetry()
	rl.DrawText("[L/R] SPAWN  [MID] FLIP K  [BKSP] UNDO  [ENTER] CLEAR  [F] FIELD  [P] POTENTIAL  [ESC] QUIT",
		10, int32(rl.GetScreenHeight())-20, 10, ColTextDim)
}

// DrawTelemetry plots the recent total energy as a line strip.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}
	rectX := float32(rl.GetScreenWidth()) - 230
	rectY := float32(10)
	width, height := float32(200), float32(50)

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := rectX + float32(i)/float32(len(a.Telemetry))*width
		norm := (val - minVal) / (maxVal - minVal)
		py := rectY + height - float32(norm)*height
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("E: %.2e", a.Telemetry[len(a.Telemetry)-1]), int32(rectX), int32(rectY+height+4), 10, ColTextDim)
}
