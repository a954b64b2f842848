package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/san-kum/chargesim/internal/particles"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultTitle      = "Gravity Simulation"
	DefaultGridX      = 50
	DefaultGridY      = 35
	DefaultSpawnMass  = 100.0
	DefaultCharge     = 10.0
	DefaultSpawnEvery = 2
	DefaultFrames     = 600
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	K           float64          `yaml:"k"`
	Friction    float64          `yaml:"friction"`
	Pairing     string           `yaml:"pairing"`
	MinDistance float64          `yaml:"min_distance"`
	Window      WindowConfig     `yaml:"window"`
	Bounds      *BoundsConfig    `yaml:"bounds,omitempty"`
	Grid        GridConfig       `yaml:"grid"`
	Spawn       SpawnConfig      `yaml:"spawn"`
	SpawnEvery  int              `yaml:"spawn_every"`
	Frames      int              `yaml:"frames"`
	Particles   []ParticleConfig `yaml:"particles"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// BoundsConfig overrides the reflection box. When absent the box is the
// window area.
type BoundsConfig struct {
	XMin float64 `yaml:"xmin"`
	XMax float64 `yaml:"xmax"`
	YMin float64 `yaml:"ymin"`
	YMax float64 `yaml:"ymax"`
}

type GridConfig struct {
	XCount int `yaml:"x_count"`
	YCount int `yaml:"y_count"`
}

// SpawnConfig holds the templates used when the user clicks.
type SpawnConfig struct {
	Proton   SpawnTemplate `yaml:"proton"`
	Electron SpawnTemplate `yaml:"electron"`
}

type SpawnTemplate struct {
	Mass   float64 `yaml:"mass"`
	Charge float64 `yaml:"charge"`
}

type ParticleConfig struct {
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	VX         float64 `yaml:"vx"`
	VY         float64 `yaml:"vy"`
	Mass       float64 `yaml:"mass"`
	Charge     float64 `yaml:"charge"`
	Stationary bool    `yaml:"stationary"`
}

func DefaultConfig() *Config {
	return &Config{
		K:        particles.DefaultK,
		Friction: particles.DefaultFriction,
		Pairing:  particles.PairLegacy.String(),
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  DefaultTitle,
		},
		Grid: GridConfig{XCount: DefaultGridX, YCount: DefaultGridY},
		Spawn: SpawnConfig{
			Proton:   SpawnTemplate{Mass: DefaultSpawnMass, Charge: DefaultCharge},
			Electron: SpawnTemplate{Mass: DefaultSpawnMass, Charge: -DefaultCharge},
		},
		SpawnEvery: DefaultSpawnEvery,
		Frames:     DefaultFrames,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Friction < 0 || c.Friction > 1 {
		return fmt.Errorf("%w: friction %v outside [0, 1]", ErrInvalidConfig, c.Friction)
	}
	if _, err := particles.ParsePairMode(c.Pairing); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.MinDistance < 0 {
		return fmt.Errorf("%w: min_distance %v is negative", ErrInvalidConfig, c.MinDistance)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if b := c.Bounds; b != nil && (b.XMax <= b.XMin || b.YMax <= b.YMin) {
		return fmt.Errorf("%w: empty bounds [%v,%v]x[%v,%v]", ErrInvalidConfig, b.XMin, b.XMax, b.YMin, b.YMax)
	}
	if c.Grid.XCount <= 0 || c.Grid.YCount <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.Grid.XCount, c.Grid.YCount)
	}
	if c.Spawn.Proton.Mass <= 0 || c.Spawn.Electron.Mass <= 0 {
		return fmt.Errorf("%w: spawn mass must be positive", ErrInvalidConfig)
	}
	if c.SpawnEvery <= 0 {
		return fmt.Errorf("%w: spawn_every %d", ErrInvalidConfig, c.SpawnEvery)
	}
	for i, p := range c.Particles {
		if p.Mass <= 0 {
			return fmt.Errorf("%w: particle %d mass %v", ErrInvalidConfig, i, p.Mass)
		}
	}
	return nil
}

// GetBounds returns the reflection box.
func (c *Config) GetBounds() particles.Bounds {
	if c.Bounds != nil {
		return particles.Bounds{XMin: c.Bounds.XMin, XMax: c.Bounds.XMax, YMin: c.Bounds.YMin, YMax: c.Bounds.YMax}
	}
	return particles.Bounds{XMax: float64(c.Window.Width), YMax: float64(c.Window.Height)}
}

// GetGrid returns the field sampling grid spanning the reflection box.
func (c *Config) GetGrid() particles.Grid {
	b := c.GetBounds()
	return particles.Grid{
		XCount:  c.Grid.XCount,
		YCount:  c.Grid.YCount,
		Width:   b.Width(),
		Height:  b.Height(),
		OriginX: b.XMin,
		OriginY: b.YMin,
	}
}

// NewSystem builds a particle system from the coefficients and scenario
// particles. Scenario particles are coloured by charge sign.
func (c *Config) NewSystem() (*particles.System, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	mode, _ := particles.ParsePairMode(c.Pairing)

	sys := particles.NewSystem()
	sys.K = c.K
	sys.Friction = c.Friction
	sys.Pairing = mode
	sys.MinDistance = c.MinDistance

	for i, p := range c.Particles {
		err := sys.Spawn(particles.NewParticle(p.X, p.Y, p.VX, p.VY, p.Mass, p.Charge, ChargeColor(p.Charge), p.Stationary))
		if err != nil {
			return nil, fmt.Errorf("particle %d: %w", i, err)
		}
	}
	return sys, nil
}

var (
	ProtonColor   = color.RGBA{R: 230, G: 41, B: 55, A: 255}
	ElectronColor = color.RGBA{R: 0, G: 121, B: 241, A: 255}
)

// ChargeColor picks the display colour for a charge sign.
func ChargeColor(charge float64) color.Color {
	if charge > 0 {
		return ProtonColor
	}
	return ElectronColor
}
