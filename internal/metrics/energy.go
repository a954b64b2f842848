package metrics

import (
	"math"

	"github.com/san-kum/chargesim/internal/particles"
)

// Kinetic returns the total kinetic energy of the non-stationary particles.
func Kinetic(sys *particles.System) float64 {
	ke := 0.0
	for _, p := range sys.Particles() {
		if p.Stationary {
			continue
		}
		ke += 0.5 * p.Mass * (p.VX*p.VX + p.VY*p.VY)
	}
	return ke
}

// Potential returns the pairwise interaction energy -K·qi·qj/d consistent
// with the force pass. Coincident pairs contribute nothing.
func Potential(sys *particles.System) float64 {
	ps := sys.Particles()
	pe := 0.0
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			d := math.Hypot(ps[j].X-ps[i].X, ps[j].Y-ps[i].Y)
			if d == 0 {
				continue
			}
			pe -= sys.K * ps[i].Charge * ps[j].Charge / d
		}
	}
	return pe
}

// Total returns kinetic plus potential energy.
func Total(sys *particles.System) float64 {
	return Kinetic(sys) + Potential(sys)
}

type Energy struct {
	name        string
	samples     int
	totalEnergy float64
	last        float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(sys *particles.System, frame int) {
	e.last = Total(sys)
	e.totalEnergy += e.last
	e.samples++
}

// Value is the mean total energy over the observed frames.
func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

// Last is the energy of the most recent frame.
func (e *Energy) Last() float64 { return e.last }

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
	e.last = 0
}

type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(sys *particles.System, frame int) {
	energy := Total(sys)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
