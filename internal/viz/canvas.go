package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Ink tags what was drawn into a cell. Higher inks win when layers overlap.
type Ink uint8

const (
	InkNone Ink = iota
	InkField
	InkCursor
	InkElectron
	InkProton
)

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Inks          [][]Ink
	heat          [][]color.RGBA
	shaded        [][]bool
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Inks:   make([][]Ink, h),
		heat:   make([][]color.RGBA, h),
		shaded: make([][]bool, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Inks[i] = make([]Ink, w)
		c.heat[i] = make([]color.RGBA, w)
		c.shaded[i] = make([]bool, w)
	}
	c.Clear()
	return c
}

// SubWidth and SubHeight are the canvas size in sub-pixels.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set sets a sub-pixel at (x, y) without ink.
func (c *Canvas) Set(x, y int) { c.Paint(x, y, InkNone) }

// Paint sets a sub-pixel and raises the cell's ink to at least ink.
func (c *Canvas) Paint(x, y int, ink Ink) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if ink > c.Inks[row][col] {
		c.Inks[row][col] = ink
	}
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < brailleBlank {
		c.Grid[row][col] = brailleBlank
	}
}

// Shade sets the background colour of a whole cell.
func (c *Canvas) Shade(col, row int, bg color.RGBA) {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return
	}
	c.heat[row][col] = bg
	c.shaded[row][col] = true
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Inks[i][j] = InkNone
			c.shaded[i][j] = false
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, ink Ink) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Paint(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Disc fills a square-ish blob of radius r around (cx, cy).
func (c *Canvas) Disc(cx, cy, r int, ink Ink) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r+r {
				c.Paint(cx+dx, cy+dy, ink)
			}
		}
	}
}

// Ring outlines a circle of radius r.
func (c *Canvas) Ring(cx, cy int, r float64, ink Ink) {
	if r < 1 {
		c.Paint(cx, cy, ink)
		return
	}
	steps := int(2*math.Pi*r) + 8
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Paint(cx+int(math.Round(r*math.Cos(a))), cy+int(math.Round(r*math.Sin(a))), ink)
	}
}

// String renders the canvas without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colours each cell by its ink and heat shading.
func (c *Canvas) Render(th Theme) string {
	var b strings.Builder
	for row := range c.Grid {
		for col, r := range c.Grid[row] {
			style := th.inkStyle(c.Inks[row][col])
			if c.shaded[row][col] {
				style = style.Background(lipgloss.Color(hexColor(c.heat[row][col])))
			}
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
