package config

import "sort"

var Presets = map[string]*Config{
	"empty": DefaultConfig(),
	"dipole": withParticles(
		ParticleConfig{X: 300, Y: 300, Mass: 100, Charge: 10, Stationary: true},
		ParticleConfig{X: 500, Y: 300, Mass: 100, Charge: -10, Stationary: true},
	),
	"orbit": withParticles(
		ParticleConfig{X: 400, Y: 300, Mass: 100, Charge: 10, Stationary: true},
		ParticleConfig{X: 400, Y: 200, VX: 2, Mass: 100, Charge: -10},
	),
	"quadrupole": withParticles(
		ParticleConfig{X: 300, Y: 200, Mass: 100, Charge: 10, Stationary: true},
		ParticleConfig{X: 500, Y: 200, Mass: 100, Charge: -10, Stationary: true},
		ParticleConfig{X: 300, Y: 400, Mass: 100, Charge: -10, Stationary: true},
		ParticleConfig{X: 500, Y: 400, Mass: 100, Charge: 10, Stationary: true},
	),
	"gas": withParticles(
		ParticleConfig{X: 100, Y: 100, VX: 3, VY: 1, Mass: 100, Charge: 10},
		ParticleConfig{X: 700, Y: 120, VX: -2, VY: 2, Mass: 100, Charge: 10},
		ParticleConfig{X: 150, Y: 500, VX: 1, VY: -3, Mass: 100, Charge: -10},
		ParticleConfig{X: 650, Y: 480, VX: -1, VY: -1, Mass: 100, Charge: -10},
		ParticleConfig{X: 400, Y: 300, Mass: 100, Charge: 10},
		ParticleConfig{X: 420, Y: 330, Mass: 100, Charge: -10},
	),
}

func withParticles(ps ...ParticleConfig) *Config {
	cfg := DefaultConfig()
	cfg.Particles = ps
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Particles = append([]ParticleConfig(nil), cfg.Particles...)
	if cfg.Bounds != nil {
		b := *cfg.Bounds
		c.Bounds = &b
	}
	return &c
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
