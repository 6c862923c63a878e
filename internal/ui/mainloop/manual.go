package mainloop

import (
	"time"

	"github.com/bnema/floatdock/internal/application/port"
)

// ManualScheduler is a port.Scheduler driven by explicit Tick calls instead of
// wall-clock time. The simulator uses it to replay scenarios deterministically.
type ManualScheduler struct {
	timers []*manualTimer
}

type manualTimer struct {
	interval time.Duration
	fn       func() bool
	active   bool
}

var _ port.Scheduler = (*ManualScheduler)(nil)

// NewManualScheduler creates a scheduler with no timers.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every implements port.Scheduler.
func (s *ManualScheduler) Every(interval time.Duration, fn func() bool) port.CancelFunc {
	t := &manualTimer{interval: interval, fn: fn, active: fn != nil}
	s.timers = append(s.timers, t)
	return func() { t.active = false }
}

// Pending returns the number of active timers.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if t.active {
			n++
		}
	}
	return n
}

// Tick fires every active timer once and reports how many fired.
func (s *ManualScheduler) Tick() int {
	due := make([]*manualTimer, 0, len(s.timers))
	for _, t := range s.timers {
		if t.active {
			due = append(due, t)
		}
	}

	for _, t := range due {
		if !t.active {
			continue
		}
		if !t.fn() {
			t.active = false
		}
	}

	s.compact()
	return len(due)
}

// Drain ticks until no timer is left or maxTicks is reached, and returns the
// number of ticks run.
func (s *ManualScheduler) Drain(maxTicks int) int {
	ticks := 0
	for ticks < maxTicks && s.Pending() > 0 {
		s.Tick()
		ticks++
	}
	return ticks
}

func (s *ManualScheduler) compact() {
	kept := s.timers[:0]
	for _, t := range s.timers {
		if t.active {
			kept = append(kept, t)
		}
	}
	s.timers = kept
}
