package core

import (
	"math"
	"time"
)

// MaxStep is the upper bound on a single simulation step, in seconds.
// A stalled frame (suspended terminal, slow host) never advances the world
// by more than this.
const MaxStep = 1.0 / 30.0

// Stepper turns wall-clock frame timestamps into bounded simulation deltas.
type Stepper struct {
	last    time.Time
	started bool
	max     float64
}

// NewStepper creates a stepper that caps every delta at maxStep seconds.
// A non-positive maxStep selects MaxStep.
func NewStepper(maxStep float64) *Stepper {
	if maxStep <= 0 {
		maxStep = MaxStep
	}
	return &Stepper{max: maxStep}
}

// Reset forgets the previous timestamp; the next Tick yields 0.
func (s *Stepper) Reset() {
	s.started = false
	s.last = time.Time{}
}

// Tick returns the seconds elapsed since the previous Tick, bounded to
// [0, max]. The stored timestamp is updated on every call, including
// calls whose delta was clamped.
func (s *Stepper) Tick(now time.Time) float64 {
	if !s.started {
		s.started = true
		s.last = now
		return 0
	}
	dt := now.Sub(s.last).Seconds()
	s.last = now
	if dt < 0 {
		return 0
	}
	return math.Min(s.max, dt)
}

// FrameMeter derives a frames-per-second figure from simulation deltas.
type FrameMeter struct {
	accum  float64
	frames int
	window float64
}

// NewFrameMeter creates a meter that reports once every window seconds
// (0.5 when window is non-positive).
func NewFrameMeter(window float64) *FrameMeter {
	if window <= 0 {
		window = 0.5
	}
	return &FrameMeter{window: window}
}

// Frame records one frame of dt seconds. When the accumulated time reaches
// the window it returns the rounded rate and resets, with ok=true.
func (m *FrameMeter) Frame(dt float64) (fps int, ok bool) {
	m.accum += dt
	m.frames++
	if m.accum < m.window {
		return 0, false
	}
	fps = int(math.Round(float64(m.frames) / m.accum))
	m.accum = 0
	m.frames = 0
	return fps, true
}

// Reset clears the accumulated window.
func (m *FrameMeter) Reset() {
	m.accum = 0
	m.frames = 0
}
