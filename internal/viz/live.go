package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/chargesim/internal/metrics"
	"github.com/san-kum/chargesim/internal/particles"
	"github.com/san-kum/chargesim/internal/sim"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 45
	historyCapacity = 600
	arrowPixels     = 3
	frameRate       = 60
)

type TickMsg time.Time

// Model contains the simulation session, visualization buffers, and UI context.
type Model struct {
	session       *sim.Session
	canvas        *Canvas
	width, height int
	running       bool
	showField     bool
	showPotential bool
	showHelp      bool
	theme         int
	energyHistory []float64
	fps           float64
	lastFrame     time.Time
	cursorX       float64
	cursorY       float64
	cursorOn      bool
	dragTick      int
	err           error
}

// NewModel wraps a session in a live view.
func NewModel(sess *sim.Session) Model {
	return Model{
		session:       sess,
		canvas:        NewCanvas(width, height),
		width:         width,
		height:        height,
		running:       true,
		showField:     true,
		dragTick:      -1,
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "backspace":
			m.apply(sim.CmdUndo, 0, 0)
		case "enter":
			m.apply(sim.CmdClear, 0, 0)
			m.energyHistory = m.energyHistory[:0]
		case "m":
			m.apply(sim.CmdFlipK, 0, 0)
		case "f":
			m.showField = !m.showField
		case "p":
			m.showPotential = !m.showPotential
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
				m.fps = 0.9*m.fps + 0.1/dt
			}
		}
		m.lastFrame = now
		if m.running {
			m.step()
		}
		m.session.Tick()
		return m, tick()
	}
	return m, nil
}

func (m *Model) apply(c sim.Command, x, y float64) {
	if err := m.session.Apply(c, x, y); err != nil {
		m.err = err
	}
}

// handleMouse maps terminal cells to world coordinates. Presses and drags
// with a button held spawn particles; every event moves the cursor ring.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	x, y, ok := m.cellToWorld(msg.X, msg.Y)
	if !ok {
		m.cursorOn = false
		return
	}
	m.cursorX, m.cursorY, m.cursorOn = x, y, true

	if msg.Action == tea.MouseActionRelease {
		return
	}
	drag := msg.Action == tea.MouseActionMotion
	switch msg.Button {
	case tea.MouseButtonLeft:
		if !drag || m.dragSpawn() {
			m.apply(sim.CmdSpawnProton, x, y)
		}
	case tea.MouseButtonRight:
		if !drag || m.dragSpawn() {
			m.apply(sim.CmdSpawnElectron, x, y)
		}
	case tea.MouseButtonMiddle:
		if !drag {
			m.apply(sim.CmdFlipK, x, y)
		}
	}
}

// dragSpawn allows at most one drag spawn per input tick.
func (m *Model) dragSpawn() bool {
	if !m.session.InputFrame() || m.dragTick == m.session.Ticks {
		return false
	}
	m.dragTick = m.session.Ticks
	return true
}

func (m *Model) resize(termW, termH int) {
	w := termW - statsWidth - 6
	h := termH - 3
	if w < 20 {
		w = 20
	}
	if h < 8 {
		h = 8
	}
	m.width, m.height = w, h
	m.canvas = NewCanvas(w, h)
}

// step advances the physics simulation.
func (m *Model) step() {
	m.session.Step()
	m.energyHistory = append(m.energyHistory, metrics.Total(m.session.System))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// cellToWorld converts a terminal cell to world coordinates, accounting for
// the canvas padding.
func (m *Model) cellToWorld(cx, cy int) (float64, float64, bool) {
	col, row := cx-2, cy-1
	if col < 0 || row < 0 || col >= m.width || row >= m.height {
		return 0, 0, false
	}
	b := m.session.Bounds
	x := b.XMin + float64(col*2+1)*b.Width()/float64(m.canvas.SubWidth())
	y := b.YMin + float64(row*4+2)*b.Height()/float64(m.canvas.SubHeight())
	return x, y, true
}

// project maps world coordinates to canvas sub-pixels.
func (m *Model) project(x, y float64) (int, int) {
	b := m.session.Bounds
	px := (x - b.XMin) / b.Width() * float64(m.canvas.SubWidth()-1)
	py := (y - b.YMin) / b.Height() * float64(m.canvas.SubHeight()-1)
	return int(math.Round(px)), int(math.Round(py))
}

func (m *Model) fieldGrid() particles.Grid {
	b := m.session.Bounds
	return particles.Grid{
		XCount:  max(1, m.width/4),
		YCount:  max(1, m.height/2),
		Width:   b.Width(),
		Height:  b.Height(),
		OriginX: b.XMin,
		OriginY: b.YMin,
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	sys := m.session.System

	if m.showPotential {
		b := m.session.Bounds
		for row := 0; row < m.canvas.Height; row++ {
			for col := 0; col < m.canvas.Width; col++ {
				x := b.XMin + (float64(col)+0.5)/float64(m.canvas.Width)*b.Width()
				y := b.YMin + (float64(row)+0.5)/float64(m.canvas.Height)*b.Height()
				m.canvas.Shade(col, row, HeatColor(sys.Potential(x, y)))
			}
		}
	}

	if m.showField && sys.Len() > 0 {
		for _, s := range sys.SampleField(m.fieldGrid()) {
			if !s.Valid {
				continue
			}
			x0, y0 := m.project(s.X, s.Y)
			dx := s.DX / particles.FieldArrowLength * arrowPixels
			dy := s.DY / particles.FieldArrowLength * arrowPixels
			m.canvas.DrawLine(x0, y0, x0+int(math.Round(dx)), y0+int(math.Round(dy)), InkField)
		}
	}

	for _, p := range sys.Particles() {
		if !p.IsValid() {
			continue
		}
		x, y := m.project(p.X, p.Y)
		ink := InkElectron
		if p.Charge > 0 {
			ink = InkProton
		}
		m.canvas.Disc(x, y, 1, ink)
	}

	if m.cursorOn {
		x, y := m.project(m.cursorX, m.cursorY)
		r := 20 * math.Abs(math.Sin(float64(m.session.Ticks)/10))
		scale := float64(m.canvas.SubWidth()) / m.session.Bounds.Width()
		m.canvas.Ring(x, y, r*scale, InkCursor)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	th := Themes[m.theme]
	sess := m.session
	sys := sess.System

	canvasView := canvasStyle.Render(m.canvas.Render(th))

	var s strings.Builder
	s.WriteString(headerStyle.Render("CHARGESIM") + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}
	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	mode := "attract unlike"
	if sys.K > 0 {
		mode = "attract like"
	}
	rows := []struct{ label, value string }{
		{"FPS", fmt.Sprintf("%.0f", m.fps)},
		{"Frame", fmt.Sprintf("%d", sess.Frame)},
		{"Protons", lipgloss.NewStyle().Foreground(th.Proton).Render(fmt.Sprintf("%d", sess.Protons))},
		{"Electrons", lipgloss.NewStyle().Foreground(th.Electron).Render(fmt.Sprintf("%d", sess.Electrons))},
		{"K", fmt.Sprintf("%.2f (%s)", sys.K, mode)},
		{"Friction", fmt.Sprintf("%.3f", sys.Friction)},
		{"Pairing", sys.Pairing.String()},
		{"Kinetic", fmt.Sprintf("%.3f", metrics.Kinetic(sys))},
		{"Theme", th.Name},
	}
	for _, r := range rows {
		s.WriteString(labelStyle.Render(r.label) + valueStyle.Render(r.value) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nL/R click:Spawn  M:Flip K\nBksp:Undo Enter:Clear\nF:Field P:Potential SP:Pause\nT:Theme ?:Help Q:Quit"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Left click   - Spawn proton         ║
║  Right click  - Spawn electron       ║
║  Middle / M   - Flip K               ║
║  Backspace    - Undo last spawn      ║
║  Enter        - Clear all particles  ║
║  F            - Toggle field arrows  ║
║  P            - Toggle potential map ║
║  Space        - Pause/Resume         ║
║  T            - Cycle themes         ║
║  ?            - Toggle this help     ║
║  Q / Esc      - Quit                 ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the interactive terminal session and blocks until the user quits.
func Run(sess *sim.Session) error {
	p := tea.NewProgram(NewModel(sess), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
