// Package mainloop serializes layout work onto a single goroutine, the way a
// toolkit main loop would.
package mainloop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bnema/floatdock/internal/application/port"
)

// ErrStopped is returned by Run when the loop was stopped before Run started.
var ErrStopped = errors.New("main loop stopped")

const defaultQueueSize = 256

// Loop runs posted callbacks one at a time on the goroutine that calls Run.
type Loop struct {
	tasks chan func()

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
}

var _ port.Scheduler = (*Loop)(nil)

// NewLoop creates a loop whose queue holds size callbacks before Post blocks.
func NewLoop(size int) *Loop {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Loop{
		tasks: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Post queues fn. It returns false once the loop is stopped.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	l.mu.Lock()
	stopped := l.stopped
	l.mu.Unlock()
	if stopped {
		return false
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Every implements port.Scheduler. Ticks are posted to the loop so fn never
// runs concurrently with other loop work.
func (l *Loop) Every(interval time.Duration, fn func() bool) port.CancelFunc {
	if interval <= 0 {
		interval = time.Millisecond
	}

	stop := make(chan struct{})
	var once sync.Once
	cancel := func() { once.Do(func() { close(stop) }) }

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-l.done:
				return
			case <-ticker.C:
				l.Post(func() {
					select {
					case <-stop:
						return
					default:
					}
					if !fn() {
						cancel()
					}
				})
			}
		}
	}()

	return cancel
}

// Run processes callbacks until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	select {
	case <-l.done:
		return ErrStopped
	default:
	}

	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Stop ends Run and rejects further posts. Queued callbacks are dropped.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	close(l.done)
}
