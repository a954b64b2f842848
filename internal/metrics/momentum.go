package metrics

import (
	"math"

	"github.com/san-kum/chargesim/internal/particles"
)

// Momentum returns the net momentum of all particles, stationary included.
func Momentum(sys *particles.System) (px, py float64) {
	for _, p := range sys.Particles() {
		px += p.Mass * p.VX
		py += p.Mass * p.VY
	}
	return
}

// MaxMomentum tracks the largest net momentum magnitude seen.
type MaxMomentum struct {
	name string
	max  float64
}

func NewMaxMomentum() *MaxMomentum {
	return &MaxMomentum{name: "max_momentum"}
}

func (m *MaxMomentum) Name() string { return m.name }

func (m *MaxMomentum) Observe(sys *particles.System, frame int) {
	px, py := Momentum(sys)
	m.max = math.Max(m.max, math.Hypot(px, py))
}

func (m *MaxMomentum) Value() float64 { return m.max }

func (m *MaxMomentum) Reset() { m.max = 0 }

// MaxSpeed tracks the fastest particle seen.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(sys *particles.System, frame int) {
	for _, p := range sys.Particles() {
		m.max = math.Max(m.max, p.Speed())
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }
