package particles

import "math"

// FieldArrowLength is the display length every sampled field vector is
// normalised to.
const FieldArrowLength = 10.0

// Grid describes an XCount×YCount sampling of a Width×Height area whose
// top-left corner is (OriginX, OriginY). Samples sit at interior points; the
// area edges are never sampled.
type Grid struct {
	XCount, YCount   int
	Width, Height    float64
	OriginX, OriginY float64
}

// Point returns the sample position of cell (i, j).
func (g Grid) Point(i, j int) (x, y float64) {
	x = g.OriginX + g.Width*float64(i+1)/float64(g.XCount+1)
	y = g.OriginY + g.Height*float64(j+1)/float64(g.YCount+1)
	return
}

// FieldSample is one arrow of the field visualisation: it starts at (X, Y) and
// points along (DX, DY), which has length FieldArrowLength. Valid is false
// when the field magnitude was zero or not finite; DX and DY are zero then.
type FieldSample struct {
	X, Y      float64
	DX, DY    float64
	Magnitude float64
	Valid     bool
}

// PotentialCell is one heatmap rectangle anchored at (X, Y).
type PotentialCell struct {
	X, Y          float64
	Width, Height float64
	Potential     float64
}

func (s *System) distance2(dx, dy float64) float64 {
	d2 := dx*dx + dy*dy
	if s.MinDistance > 0 && d2 < s.MinDistance*s.MinDistance {
		d2 = s.MinDistance * s.MinDistance
	}
	return d2
}

// Field returns the unscaled field a unit test charge would feel at (x, y).
// Without MinDistance the result is Inf or NaN on top of a particle.
func (s *System) Field(x, y float64) (fx, fy float64) {
	for i := range s.particles {
		p := &s.particles[i]
		dx := p.X - x
		dy := p.Y - y
		d3 := math.Pow(s.distance2(dx, dy), 1.5)
		fx += p.Charge * dx / d3
		fy += p.Charge * dy / d3
	}
	return
}

// Potential returns the scalar 1/r potential at (x, y).
func (s *System) Potential(x, y float64) float64 {
	res := 0.0
	for i := range s.particles {
		p := &s.particles[i]
		res += p.Charge / math.Sqrt(s.distance2(p.X-x, p.Y-y))
	}
	return res
}

// SampleField evaluates Field over g in x-major order.
func (s *System) SampleField(g Grid) []FieldSample {
	if g.XCount <= 0 || g.YCount <= 0 {
		return nil
	}
	out := make([]FieldSample, 0, g.XCount*g.YCount)
	for i := 0; i < g.XCount; i++ {
		for j := 0; j < g.YCount; j++ {
			x, y := g.Point(i, j)
			fx, fy := s.Field(x, y)
			f := math.Hypot(fx, fy)
			sample := FieldSample{X: x, Y: y, Magnitude: f}
			if f != 0 && !math.IsNaN(f) && !math.IsInf(f, 0) {
				sample.DX = FieldArrowLength * fx / f
				sample.DY = FieldArrowLength * fy / f
				sample.Valid = true
			}
			out = append(out, sample)
		}
	}
	return out
}

// SamplePotential evaluates Potential over g in x-major order.
func (s *System) SamplePotential(g Grid) []PotentialCell {
	if g.XCount <= 0 || g.YCount <= 0 {
		return nil
	}
	cw := g.Width / float64(g.XCount)
	ch := g.Height / float64(g.YCount)
	out := make([]PotentialCell, 0, g.XCount*g.YCount)
	for i := 0; i < g.XCount; i++ {
		for j := 0; j < g.YCount; j++ {
			x, y := g.Point(i, j)
			out = append(out, PotentialCell{X: x, Y: y, Width: cw, Height: ch, Potential: s.Potential(x, y)})
		}
	}
	return out
}
