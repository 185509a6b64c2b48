package clock

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxCatchUp bounds how many fixed steps one frame may run after a stall.
const maxCatchUp = 8

// Manual is a controller clock advanced explicitly by the host loop.
type Manual struct {
	now   float64
	frame float64
	fixed float64
}

// NewManual returns a clock at time zero with the given frame and fixed step
// durations in seconds.
func NewManual(frame, fixed float64) (*Manual, error) {
	if frame <= 0 || fixed <= 0 {
		return nil, fmt.Errorf("clock: step durations must be positive, got frame=%g fixed=%g", frame, fixed)
	}
	return &Manual{frame: frame, fixed: fixed}, nil
}

// FromRates builds a Manual clock from frames and ticks per second.
func FromRates(frameRate, tickRate float64) (*Manual, error) {
	if frameRate <= 0 || tickRate <= 0 {
		return nil, fmt.Errorf("clock: rates must be positive, got frame=%g tick=%g", frameRate, tickRate)
	}
	return NewManual(1/frameRate, 1/tickRate)
}

// Ebiten returns a clock whose frame step is one ebiten tick.
func Ebiten(tickRate float64) (*Manual, error) {
	return FromRates(float64(ebiten.TPS()), tickRate)
}

func (m *Manual) Now() float64        { return m.now }
func (m *Manual) FrameDelta() float64 { return m.frame }
func (m *Manual) FixedDelta() float64 { return m.fixed }

// Advance moves the clock forward by one frame.
func (m *Manual) Advance() {
	m.now += m.frame
}

// Loop runs one variable-rate update per frame and as many fixed steps as the
// elapsed frame time covers.
type Loop struct {
	clock       *Manual
	accumulator float64
	steps       int
}

func NewLoop(clock *Manual) *Loop {
	return &Loop{clock: clock}
}

// Frame runs update once, then fixed zero or more times, then advances the clock.
// It returns the number of fixed steps run.
func (l *Loop) Frame(update, fixed func()) int {
	update()

	l.accumulator += l.clock.frame
	n := 0
	for l.accumulator >= l.clock.fixed-1e-12 && n < maxCatchUp {
		fixed()
		l.accumulator -= l.clock.fixed
		n++
	}
	if n == maxCatchUp {
		l.accumulator = 0
	}
	l.steps += n

	l.clock.Advance()
	return n
}

// Steps reports the total fixed steps run so far.
func (l *Loop) Steps() int {
	return l.steps
}

// Clock returns the clock driven by the loop.
func (l *Loop) Clock() *Manual {
	return l.clock
}
