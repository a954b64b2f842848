package sim

import (
	"fmt"

	"github.com/san-kum/chargesim/internal/particles"
)

// Command is a discrete user action the driver applies to a session.
type Command int

const (
	CmdSpawnProton Command = iota
	CmdSpawnElectron
	CmdFlipK
	CmdUndo
	CmdClear
)

func (c Command) String() string {
	switch c {
	case CmdSpawnProton:
		return "spawn_proton"
	case CmdSpawnElectron:
		return "spawn_electron"
	case CmdFlipK:
		return "flip_k"
	case CmdUndo:
		return "undo"
	case CmdClear:
		return "clear"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Input is the held-button state a front end polls once per frame.
type Input struct {
	X, Y     float64
	Proton   bool
	Electron bool
	FlipK    bool
	Undo     bool
	Clear    bool
}

type Metric interface {
	Name() string
	Observe(sys *particles.System, frame int)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(s *Session)
}

type Result struct {
	Energy    []float64
	Counts    [][2]int
	Metrics   map[string]float64
	Frames    int
	Protons   int
	Electrons int
	Errors    []error
}

// FrameError reports a frame that left a particle with a non-finite state.
type FrameError struct {
	Frame   int
	Index   int
	Message string
}

func (e FrameError) Error() string {
	return fmt.Sprintf("frame %d (particle %d): %s", e.Frame, e.Index, e.Message)
}
