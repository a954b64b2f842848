package particles

import (
	"image/color"
	"math"
)

// Particle is a point mass carrying a signed charge.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Mass   float64
	Charge float64
	// Color is forwarded to front ends untouched.
	Color      color.Color
	Stationary bool
	// ID is assigned by System.Spawn and never reused within a system.
	ID uint64
}

// NewParticle builds a particle from explicit initial values.
func NewParticle(x, y, vx, vy, mass, charge float64, c color.Color, stationary bool) Particle {
	return Particle{X: x, Y: y, VX: vx, VY: vy, Mass: mass, Charge: charge, Color: c, Stationary: stationary}
}

// Force returns the unscaled force exerted on p by other.
// Coincident particles exert no force on each other.
func (p *Particle) Force(other *Particle) (fx, fy float64) {
	dx := other.X - p.X
	dy := other.Y - p.Y
	d3 := math.Pow(dx*dx+dy*dy, 1.5)
	if d3 == 0 {
		return 0, 0
	}
	q := p.Charge * other.Charge
	return q * dx / d3, q * dy / d3
}

// UpdateVelocity applies one force contribution. The acceleration added per
// call is clamped to [-1, 1] on each axis; the resulting velocity is not.
func (p *Particle) UpdateVelocity(fx, fy float64) {
	p.VX += clamp(fx/p.Mass, -1, 1)
	p.VY += clamp(fy/p.Mass, -1, 1)
}

// Speed returns the magnitude of the velocity.
func (p *Particle) Speed() float64 { return math.Hypot(p.VX, p.VY) }

func (p *Particle) IsValid() bool {
	for _, v := range [...]float64{p.X, p.Y, p.VX, p.VY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
