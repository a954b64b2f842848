package viz

import (
	"image/color"
	"math"
	"strings"
	"testing"
)

func TestCanvasSetAndUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(1, 3)
	if got := c.Grid[0][0]; got != rune(brailleBlank|0x1|0x80) {
		t.Errorf("cell = %U, want %U", got, rune(brailleBlank|0x1|0x80))
	}

	c.Unset(0, 0)
	if got := c.Grid[0][0]; got != rune(brailleBlank|0x80) {
		t.Errorf("after unset cell = %U", got)
	}

	// Out of range writes are ignored.
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	if c.Grid[0][1] != brailleBlank {
		t.Errorf("out of range write touched cell 1: %U", c.Grid[0][1])
	}
}

func TestCanvasInkPriority(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Paint(0, 0, InkProton)
	c.Paint(1, 1, InkField)
	if c.Inks[0][0] != InkProton {
		t.Errorf("ink = %v, want proton to win", c.Inks[0][0])
	}

	c.Clear()
	if c.Inks[0][0] != InkNone || c.Grid[0][0] != brailleBlank {
		t.Error("Clear did not reset the cell")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0, InkField)
	for col := 0; col < 4; col++ {
		if c.Grid[0][col] != rune(brailleBlank|0x1|0x8) {
			t.Errorf("col %d = %U, want top row set", col, c.Grid[0][col])
		}
		if c.Inks[0][col] != InkField {
			t.Errorf("col %d ink = %v", col, c.Inks[0][col])
		}
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if len([]rune(l)) != 3 {
			t.Errorf("line %q has %d runes, want 3", l, len([]rune(l)))
		}
	}
}

func TestCanvasRenderKeepsGlyphs(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Paint(0, 0, InkElectron)
	c.Shade(1, 0, color.RGBA{R: 255, A: 255})
	out := c.Render(ThemeClassic)
	if !strings.ContainsRune(out, rune(brailleBlank|0x1)) {
		t.Errorf("rendered output lost the painted glyph: %q", out)
	}
}

func TestCanvasRing(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Ring(10, 10, 4, InkCursor)
	if c.Grid[2][7] == brailleBlank {
		t.Error("expected ring to pass through (14, 10)")
	}
	// The centre stays empty.
	if c.Grid[2][5]&rune(pixelMap[2][0]) != 0 {
		t.Error("ring filled its centre")
	}
}

func TestHeatColor(t *testing.T) {
	tests := []struct {
		pot  float64
		want color.RGBA
	}{
		{0, color.RGBA{R: 0, B: 255, A: 255}},
		{100, color.RGBA{R: 100, B: 155, A: 255}},
		{1e6, color.RGBA{R: 255, B: 0, A: 255}},
		{-50, color.RGBA{R: 0, B: 255, A: 255}},
		{math.NaN(), color.RGBA{R: 0, B: 255, A: 255}},
		{math.Inf(1), color.RGBA{R: 255, B: 0, A: 255}},
	}
	for _, tt := range tests {
		if got := HeatColor(tt.pot); got != tt.want {
			t.Errorf("HeatColor(%v) = %v, want %v", tt.pot, got, tt.want)
		}
	}
}

func TestThemes(t *testing.T) {
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names out of sync")
	}
	if GetTheme("retro").Name != "retro" {
		t.Error("GetTheme did not find retro")
	}
	if GetTheme("nope").Name != ThemeClassic.Name {
		t.Error("unknown theme should fall back to classic")
	}
}
