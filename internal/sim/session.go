package sim

import (
	"github.com/san-kum/chargesim/internal/config"
	"github.com/san-kum/chargesim/internal/particles"
)

// Session is the driver state for one simulation: the particle system, the
// frame counter and the per-kind counters shown in the HUD.
type Session struct {
	System *particles.System
	Bounds particles.Bounds
	Grid   particles.Grid

	Frame     int
	Ticks     int
	Protons   int
	Electrons int

	spawn      config.SpawnConfig
	spawnEvery int
	fixed      bool
}

func NewSession(cfg *config.Config) (*Session, error) {
	sys, err := cfg.NewSystem()
	if err != nil {
		return nil, err
	}
	s := &Session{
		System:     sys,
		Bounds:     cfg.GetBounds(),
		Grid:       cfg.GetGrid(),
		spawn:      cfg.Spawn,
		spawnEvery: cfg.SpawnEvery,
		fixed:      cfg.Bounds != nil,
	}
	s.Protons, s.Electrons = sys.Counts()
	return s, nil
}

// Resize follows the drawing surface. Explicit config bounds are kept.
func (s *Session) Resize(width, height float64) {
	if s.fixed {
		return
	}
	s.Bounds = particles.Bounds{XMax: width, YMax: height}
	s.Grid.Width, s.Grid.Height = width, height
	s.Grid.OriginX, s.Grid.OriginY = 0, 0
}

// Apply runs one command immediately.
func (s *Session) Apply(c Command, x, y float64) error {
	switch c {
	case CmdSpawnProton:
		return s.spawnFrom(s.spawn.Proton, x, y)
	case CmdSpawnElectron:
		return s.spawnFrom(s.spawn.Electron, x, y)
	case CmdFlipK:
		s.System.FlipK()
	case CmdUndo:
		s.Undo()
	case CmdClear:
		s.System.Clear()
		s.Protons, s.Electrons = 0, 0
	}
	return nil
}

// Poll applies held input. Input is only sampled every spawnEvery ticks so a
// held button does not flood the system.
func (s *Session) Poll(in Input) error {
	if !s.InputFrame() {
		return nil
	}
	held := []struct {
		on  bool
		cmd Command
	}{
		{in.Proton, CmdSpawnProton},
		{in.Electron, CmdSpawnElectron},
		{in.FlipK, CmdFlipK},
		{in.Undo, CmdUndo},
		{in.Clear, CmdClear},
	}
	for _, h := range held {
		if !h.on {
			continue
		}
		if err := s.Apply(h.cmd, in.X, in.Y); err != nil {
			return err
		}
	}
	return nil
}

// InputFrame reports whether held input is sampled on the current tick.
func (s *Session) InputFrame() bool { return s.Ticks%s.spawnEvery == 0 }

// Tick advances the input clock. Front ends call it once per rendered frame,
// paused or not, after polling input.
func (s *Session) Tick() { s.Ticks++ }

// Undo removes the newest particle and updates the counters. It reports
// false when there was nothing to remove.
func (s *Session) Undo() (particles.Particle, bool) {
	p, ok := s.System.RemoveLast()
	if !ok {
		return p, false
	}
	if p.Charge > 0 {
		s.Protons--
	} else {
		s.Electrons--
	}
	return p, true
}

// Step advances the simulation by one frame.
func (s *Session) Step() {
	s.System.UpdateVel()
	s.System.UpdatePos(s.Bounds)
	s.Frame++
}

func (s *Session) spawnFrom(t config.SpawnTemplate, x, y float64) error {
	p := particles.NewParticle(x, y, 0, 0, t.Mass, t.Charge, config.ChargeColor(t.Charge), false)
	if err := s.System.Spawn(p); err != nil {
		return err
	}
	if t.Charge > 0 {
		s.Protons++
	} else {
		s.Electrons++
	}
	return nil
}
