package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/chargesim/internal/metrics"
)

type Simulator struct {
	session   *Session
	metrics   []Metric
	observers []Observer
}

func New(s *Session) *Simulator {
	return &Simulator{
		session:   s,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Session() *Session { return s.session }

// Run steps the session for the given number of frames, recording total
// energy and particle counts after each one.
func (s *Simulator) Run(ctx context.Context, frames int) (*Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("frames must be positive, got %d", frames)
	}

	result := &Result{
		Energy:  make([]float64, 0, frames+1),
		Counts:  make([][2]int, 0, frames+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	sess := s.session
	result.Energy = append(result.Energy, metrics.Total(sess.System))
	result.Counts = append(result.Counts, [2]int{sess.Protons, sess.Electrons})

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(sess.System, sess.Frame)
		}
		for _, obs := range s.observers {
			obs.OnFrame(sess)
		}

		sess.Step()
		result.Frames++

		if err := checkFrame(sess); err != nil {
			result.Errors = append(result.Errors, err)
		}

		result.Energy = append(result.Energy, metrics.Total(sess.System))
		result.Counts = append(result.Counts, [2]int{sess.Protons, sess.Electrons})
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Protons, result.Electrons = sess.Protons, sess.Electrons

	return result, nil
}

// RunWithCallback steps until the callback returns false or ctx is done. The
// callback runs before every frame and is where a front end polls input.
func (s *Simulator) RunWithCallback(ctx context.Context, callback func(*Session) bool) error {
	sess := s.session
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(sess) {
			return nil
		}

		for _, obs := range s.observers {
			obs.OnFrame(sess)
		}
		sess.Step()
		sess.Tick()
	}
}

func checkFrame(sess *Session) error {
	for i, p := range sess.System.Particles() {
		if !p.IsValid() {
			return FrameError{Frame: sess.Frame, Index: i, Message: "invalid state (NaN/Inf)"}
		}
	}
	return nil
}
