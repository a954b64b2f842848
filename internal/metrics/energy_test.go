package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/chargesim/internal/particles"
)

func newSystem(t *testing.T, ps ...particles.Particle) *particles.System {
	t.Helper()
	sys := particles.NewSystem()
	for _, p := range ps {
		if err := sys.Spawn(p); err != nil {
			t.Fatalf("spawn failed: %v", err)
		}
	}
	return sys
}

func TestKinetic(t *testing.T) {
	sys := newSystem(t,
		particles.Particle{VX: 3, VY: 4, Mass: 2},
		particles.Particle{VX: 10, Mass: 2, Stationary: true},
	)
	if got := Kinetic(sys); got != 25 {
		t.Errorf("Kinetic() = %v, want 25", got)
	}
}

func TestPotential(t *testing.T) {
	sys := newSystem(t,
		particles.Particle{X: 0, Mass: 1, Charge: 1},
		particles.Particle{X: 4, Mass: 1, Charge: -1},
		particles.Particle{X: 4, Mass: 1, Charge: 5},
	)
	sys.K = -10
	// pairs: (0,1) -(-10)(1)(-1)/4 = -2.5; (0,2) -(-10)(5)/4 = 12.5; (1,2) coincident
	if got := Potential(sys); math.Abs(got-10) > 1e-12 {
		t.Errorf("Potential() = %v, want 10", got)
	}
}

func TestEnergyConservedWithoutClamp(t *testing.T) {
	// Far apart, heavy particles stay well inside the clamp, so a small
	// Euler step keeps energy roughly constant.
	sys := newSystem(t,
		particles.Particle{X: 0, Mass: 1e4, Charge: 1},
		particles.Particle{X: 100, Mass: 1e4, Charge: -1},
	)
	drift := NewEnergyDrift()
	for i := 0; i < 20; i++ {
		drift.Observe(sys, i)
		sys.Step(particles.Unbounded())
	}
	if drift.Value() > 1e-3 {
		t.Errorf("energy drift %v too large", drift.Value())
	}
}

func TestEnergyReset(t *testing.T) {
	m := NewEnergy()
	sys := newSystem(t, particles.Particle{VX: 1, Mass: 2})

	m.Observe(sys, 0)
	if m.Value() != 1 || m.Last() != 1 {
		t.Errorf("expected energy 1, got mean %v last %v", m.Value(), m.Last())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestStability(t *testing.T) {
	s := NewStability(5)
	if s.Value() != 1 {
		t.Errorf("expected 1 before observing, got %v", s.Value())
	}

	s.Observe(newSystem(t, particles.Particle{VX: 1, Mass: 1}), 0)
	s.Observe(newSystem(t, particles.Particle{VX: 6, Mass: 1}), 1)
	s.Observe(newSystem(t, particles.Particle{X: math.NaN(), Mass: 1}), 2)
	s.Observe(newSystem(t), 3)

	if got := s.Value(); got != 0.5 {
		t.Errorf("Value() = %v, want 0.5", got)
	}
}

func TestMomentumMetrics(t *testing.T) {
	sys := newSystem(t,
		particles.Particle{VX: 3, Mass: 1},
		particles.Particle{VY: 2, Mass: 2},
	)

	px, py := Momentum(sys)
	if px != 3 || py != 4 {
		t.Errorf("Momentum() = (%v, %v), want (3, 4)", px, py)
	}

	mm := NewMaxMomentum()
	mm.Observe(sys, 0)
	if mm.Value() != 5 {
		t.Errorf("max momentum = %v, want 5", mm.Value())
	}

	ms := NewMaxSpeed()
	ms.Observe(sys, 0)
	if ms.Value() != 3 {
		t.Errorf("max speed = %v, want 3", ms.Value())
	}
	ms.Reset()
	if ms.Value() != 0 {
		t.Error("expected zero after reset")
	}
}
