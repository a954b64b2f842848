package viz

import (
	"image/color"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// HeatColor maps a potential onto red (high) and blue (low), saturating
// outside [0, 255].
func HeatColor(potential float64) color.RGBA {
	r := clampByte(potential)
	return color.RGBA{R: r, G: 0, B: 255 - r, A: 255}
}

func clampByte(v float64) uint8 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

// hexColor formats c for lipgloss. Fully transparent colours become black.
func hexColor(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Hex()
}
