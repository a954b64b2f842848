package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/chargesim/internal/config"
	"github.com/san-kum/chargesim/internal/sim"
)

func TestParseCommand(t *testing.T) {
	for _, c := range []sim.Command{sim.CmdSpawnProton, sim.CmdSpawnElectron, sim.CmdFlipK, sim.CmdUndo, sim.CmdClear} {
		got, err := ParseCommand(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCommand(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseCommand("teleport"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestLoadScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.yaml")
	data := []byte(`name: pair
events:
  - {frame: 0, command: spawn_proton, x: 100, y: 100}
  - {frame: 0, command: spawn_electron, x: 200, y: 100}
  - {frame: 3, command: flip_k}
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}
	if s.Name != "pair" || len(s.Events) != 3 {
		t.Errorf("got %+v", s)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("events:\n  - {frame: 0, command: explode}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(bad); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestPlayer(t *testing.T) {
	sess, err := sim.NewSession(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(&Scenario{Events: []Event{
		{Frame: 0, Command: "spawn_proton", X: 100, Y: 100},
		{Frame: 0, Command: "spawn_electron", X: 200, Y: 100},
		{Frame: 2, Command: "undo"},
		{Frame: 4, Command: "flip_k"},
	}})

	s := sim.New(sess)
	s.AddObserver(p)
	if _, err := s.Run(context.Background(), 5); err != nil {
		t.Fatal(err)
	}

	if p.Applied != 4 || len(p.Errors) != 0 {
		t.Errorf("applied %d, errors %v", p.Applied, p.Errors)
	}
	if sess.Protons != 1 || sess.Electrons != 0 {
		t.Errorf("counters = %d/%d, want 1/0", sess.Protons, sess.Electrons)
	}
	if sess.System.K != -config.DefaultConfig().K {
		t.Errorf("K = %v, want flipped", sess.System.K)
	}
}

func TestRunSweep(t *testing.T) {
	base := config.GetPreset("dipole")
	sweep := &ParameterSweep{ParamName: "friction", ParamMin: 0, ParamMax: 1, NumSteps: 3, Frames: 10}

	results, err := RunSweep(context.Background(), base, sweep)
	if err != nil {
		t.Fatalf("RunSweep failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	want := []float64{0, 0.5, 1}
	for i, r := range results {
		if r.ParamValue != want[i] {
			t.Errorf("step %d value = %v, want %v", i, r.ParamValue, want[i])
		}
		if r.Protons != 1 || r.Electrons != 1 {
			t.Errorf("step %d counters = %d/%d", i, r.Protons, r.Electrons)
		}
	}
	if base.Friction != config.DefaultConfig().Friction {
		t.Error("sweep modified the base config")
	}

	if _, err := RunSweep(context.Background(), base, &ParameterSweep{ParamName: "mass", NumSteps: 1, Frames: 1}); err == nil {
		t.Error("expected error for untunable parameter")
	}
}
