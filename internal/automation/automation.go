package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/chargesim/internal/config"
	"github.com/san-kum/chargesim/internal/sim"
	"gopkg.in/yaml.v3"
)

var ErrUnknownCommand = errors.New("automation: unknown command")

// Scenario is a scripted input sequence replayed against a session.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Events      []Event `yaml:"events"`
}

// Event applies one command when the session reaches Frame.
type Event struct {
	Frame   int     `yaml:"frame"`
	Command string  `yaml:"command"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
}

// LoadScenario loads a scenario from a YAML file and checks its commands.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	for i, ev := range scenario.Events {
		if _, err := ParseCommand(ev.Command); err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
	}

	return &scenario, nil
}

func ParseCommand(name string) (sim.Command, error) {
	for _, c := range []sim.Command{sim.CmdSpawnProton, sim.CmdSpawnElectron, sim.CmdFlipK, sim.CmdUndo, sim.CmdClear} {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// Player replays a scenario. It is a sim.Observer, so events fire from the
// scheduler loop before the frame they are scheduled for is stepped.
type Player struct {
	scenario *Scenario
	Applied  int
	Errors   []error
}

func NewPlayer(s *Scenario) *Player {
	return &Player{scenario: s}
}

func (p *Player) OnFrame(s *sim.Session) {
	for i, ev := range p.scenario.Events {
		if ev.Frame != s.Frame {
			continue
		}
		cmd, err := ParseCommand(ev.Command)
		if err == nil {
			err = s.Apply(cmd, ev.X, ev.Y)
		}
		if err != nil {
			p.Errors = append(p.Errors, fmt.Errorf("event %d at frame %d: %w", i+1, ev.Frame, err))
			continue
		}
		p.Applied++
	}
}

// ParameterSweep reruns a scenario across a range of one coefficient.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Frames    int
}

// SweepResult holds the outcome of one sweep point.
type SweepResult struct {
	ParamValue    float64
	MaxEnergy     float64
	MinEnergy     float64
	InvalidFrames int
	Protons       int
	Electrons     int
}

func setParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "k":
		cfg.K = v
	case "friction":
		cfg.Friction = v
	case "min_distance":
		cfg.MinDistance = v
	default:
		return fmt.Errorf("parameter %s is not tunable", name)
	}
	return nil
}

// RunSweep executes a parameter sweep over copies of base.
func RunSweep(ctx context.Context, base *config.Config, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := *base
		cfg.Particles = append([]config.ParticleConfig(nil), base.Particles...)
		if err := setParam(&cfg, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		sess, err := sim.NewSession(&cfg)
		if err != nil {
			return results, fmt.Errorf("sweep %s=%g: %w", sweep.ParamName, paramVal, err)
		}
		result, err := sim.New(sess).Run(ctx, sweep.Frames)
		if err != nil {
			return results, fmt.Errorf("sweep %s=%g: %w", sweep.ParamName, paramVal, err)
		}

		minE, maxE := math.Inf(1), math.Inf(-1)
		for _, e := range result.Energy {
			if math.IsNaN(e) {
				continue
			}
			minE = math.Min(minE, e)
			maxE = math.Max(maxE, e)
		}

		results = append(results, SweepResult{
			ParamValue:    paramVal,
			MaxEnergy:     maxE,
			MinEnergy:     minE,
			InvalidFrames: len(result.Errors),
			Protons:       result.Protons,
			Electrons:     result.Electrons,
		})
	}

	return results, nil
}
