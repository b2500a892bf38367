package watch

import (
	"context"
	"time"
)

// DefaultPollInterval is how often a Delay checks for cancellation.
const DefaultPollInterval = 10 * time.Millisecond

// Clock is the source of waiting for a Delay.
type Clock interface {
	// Sleep pauses for d, or until ctx is done, in which case it returns
	// ctx.Err().
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SystemClock sleeps in real time.
var SystemClock Clock = realClock{}

// Delay waits a whole number of units, in steps of Poll, checking for
// cancellation before every step.
type Delay struct {
	Clock Clock
	// Unit is the length of one interval unit; normally one second.
	Unit time.Duration
	// Poll is the granularity of the cancellation checks.
	Poll time.Duration
}

// NewDelay returns a Delay using the system clock, one-second units and the
// default poll interval.
func NewDelay() *Delay {
	return &Delay{
		Clock: SystemClock,
		Unit:  time.Second,
		Poll:  DefaultPollInterval,
	}
}

// Steps returns the number of polling steps in one unit.
func (d *Delay) Steps() int {
	if d.Poll <= 0 || d.Unit <= 0 {
		return 1
	}
	n := int(d.Unit / d.Poll)
	if d.Unit%d.Poll != 0 {
		n++
	}
	return n
}

// Wait waits for units whole units. It calls cancelled before each step, and
// returns true as soon as cancelled does, without sleeping further. A
// cancelled ctx also ends the wait early with true. If every step elapses,
// Wait returns false.
func (d *Delay) Wait(ctx context.Context, units int, cancelled func() bool) bool {
	clock := d.Clock
	if clock == nil {
		clock = SystemClock
	}
	step := d.Poll
	if step <= 0 {
		step = d.Unit
	}
	steps := d.Steps()
	for i := 0; i < units; i++ {
		for j := 0; j < steps; j++ {
			if cancelled() {
				return true
			}
			if err := clock.Sleep(ctx, step); err != nil {
				return true
			}
		}
	}
	return false
}
