package preview

import (
	"context"
	"sync"
)

// maxPendingStatus bounds the status lines held while the sink is busy.
const maxPendingStatus = 8

// Relay decouples the loop goroutine from a sink that may block, such as
// tea.Program.Send. Offer never blocks: frames collapse to the latest one and
// status lines queue up to maxPendingStatus, oldest dropped first. Run
// delivers them from its own goroutine.
type Relay struct {
	mu     sync.Mutex
	frame  *FrameMsg
	status []StatusMsg
	wake   chan struct{}
}

// NewRelay returns an empty relay.
func NewRelay() *Relay {
	return &Relay{wake: make(chan struct{}, 1)}
}

// Offer stores msg for delivery. Messages other than frames and status lines
// are ignored.
func (r *Relay) Offer(msg any) {
	r.mu.Lock()
	switch m := msg.(type) {
	case FrameMsg:
		r.frame = &m
	case StatusMsg:
		if len(r.status) == maxPendingStatus {
			r.status = r.status[1:]
		}
		r.status = append(r.status, m)
	default:
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Run forwards pending messages to send until ctx is done. Status lines go
// out before the frame taken with them.
func (r *Relay) Run(ctx context.Context, send func(any)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.wake:
		}
		status, frame := r.take()
		for _, s := range status {
			send(s)
		}
		if frame != nil {
			send(*frame)
		}
	}
}

func (r *Relay) take() ([]StatusMsg, *FrameMsg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	status, frame := r.status, r.frame
	r.status, r.frame = nil, nil
	return status, frame
}
