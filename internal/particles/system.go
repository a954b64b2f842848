package particles

import (
	"fmt"
	"math"
)

const (
	DefaultK        = -10.0
	DefaultFriction = 1.0
)

// PairMode selects how the force pass walks particle pairs.
type PairMode int

const (
	// PairLegacy walks i over [0, n-1) and j over [1, n) independently, so
	// interior pairs are visited in both orders and i == j is visited for
	// i >= 1 (contributing nothing). This matches the historical output.
	PairLegacy PairMode = iota
	// PairTriangular visits each unordered pair exactly once (j > i).
	PairTriangular
)

func (m PairMode) String() string {
	switch m {
	case PairLegacy:
		return "legacy"
	case PairTriangular:
		return "triangular"
	}
	return fmt.Sprintf("PairMode(%d)", int(m))
}

// ParsePairMode maps a config name to a PairMode. The empty string is legacy.
func ParsePairMode(name string) (PairMode, error) {
	switch name {
	case "", "legacy":
		return PairLegacy, nil
	case "triangular":
		return PairTriangular, nil
	}
	return PairLegacy, fmt.Errorf("%w: %q", ErrUnknownPairing, name)
}

// Bounds is the axis-aligned box particles are reflected into.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Unbounded returns bounds that never trigger a reflection.
func Unbounded() Bounds {
	return Bounds{XMin: math.Inf(-1), XMax: math.Inf(1), YMin: math.Inf(-1), YMax: math.Inf(1)}
}

func (b Bounds) Width() float64  { return b.XMax - b.XMin }
func (b Bounds) Height() float64 { return b.YMax - b.YMin }

// System owns the particles and the two tunable coefficients.
type System struct {
	particles []Particle
	nextID    uint64

	K        float64
	Friction float64
	Pairing  PairMode
	// MinDistance floors the distance used by Field and Potential. Zero
	// leaves sampling singular at particle positions.
	MinDistance float64
}

func NewSystem() *System {
	return &System{
		particles: make([]Particle, 0),
		K:         DefaultK,
		Friction:  DefaultFriction,
		Pairing:   PairLegacy,
	}
}

func (s *System) Len() int { return len(s.particles) }

// Particles exposes the collection for drawing. Callers must not retain it
// across frames.
func (s *System) Particles() []Particle { return s.particles }

// At returns a copy of particle i.
func (s *System) At(i int) (Particle, error) {
	if i < 0 || i >= len(s.particles) {
		return Particle{}, fmt.Errorf("%w: %d (len %d)", ErrInvalidIndex, i, len(s.particles))
	}
	return s.particles[i], nil
}

// Spawn appends p and assigns it a fresh ID. Mass must be positive since
// UpdateVelocity divides by it.
func (s *System) Spawn(p Particle) error {
	if !(p.Mass > 0) || math.IsInf(p.Mass, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidMass, p.Mass)
	}
	s.nextID++
	p.ID = s.nextID
	s.particles = append(s.particles, p)
	return nil
}

// RemoveLast pops the most recently spawned particle. ok is false when the
// system was empty.
func (s *System) RemoveLast() (p Particle, ok bool) {
	n := len(s.particles)
	if n == 0 {
		return Particle{}, false
	}
	p = s.particles[n-1]
	s.particles[n-1] = Particle{}
	s.particles = s.particles[:n-1]
	return p, true
}

func (s *System) Clear() {
	clear(s.particles)
	s.particles = s.particles[:0]
}

// FlipK negates the interaction coefficient, swapping attraction and repulsion.
func (s *System) FlipK() { s.K = -s.K }

// Force returns the K-scaled force on particle i from particle j.
func (s *System) Force(i, j int) (fx, fy float64) {
	fx, fy = s.particles[i].Force(&s.particles[j])
	return s.K * fx, s.K * fy
}

// UpdateVel runs the O(n²) force pass, applying each pair force to i and its
// negation to j.
func (s *System) UpdateVel() {
	n := len(s.particles)
	if n == 0 {
		return
	}
	for i := 0; i < n-1; i++ {
		start := 1
		if s.Pairing == PairTriangular {
			start = i + 1
		}
		for j := start; j < n; j++ {
			fx, fy := s.Force(i, j)
			s.particles[i].UpdateVelocity(fx, fy)
			s.particles[j].UpdateVelocity(-fx, -fy)
		}
	}
}

// UpdatePos advances every non-stationary particle by one Euler step, applies
// friction and reflects particles that left b. An x-wall hit negates and halves
// VX and halves VY; a y-wall hit does the converse. Both may fire in one step.
func (s *System) UpdatePos(b Bounds) {
	for i := range s.particles {
		p := &s.particles[i]
		if p.Stationary {
			continue
		}
		p.X += p.VX
		p.Y += p.VY
		p.VX *= s.Friction
		p.VY *= s.Friction
		if p.X < b.XMin || p.X > b.XMax {
			p.X = clamp(p.X, b.XMin, b.XMax)
			p.VX *= -0.5
			p.VY *= 0.5
		}
		if p.Y < b.YMin || p.Y > b.YMax {
			p.Y = clamp(p.Y, b.YMin, b.YMax)
			p.VY *= -0.5
			p.VX *= 0.5
		}
	}
}

// Step runs one full frame: UpdateVel then UpdatePos.
func (s *System) Step(b Bounds) {
	s.UpdateVel()
	s.UpdatePos(b)
}

// Counts returns the number of positive and non-positive charges.
func (s *System) Counts() (positive, negative int) {
	for i := range s.particles {
		if s.particles[i].Charge > 0 {
			positive++
		} else {
			negative++
		}
	}
	return
}
