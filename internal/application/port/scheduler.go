package port

import "time"

// CancelFunc stops a scheduled callback. Calling it more than once is safe.
type CancelFunc func()

// Scheduler runs callbacks on the UI event loop.
type Scheduler interface {
	// Every calls fn on the event loop every interval until fn returns false
	// or the returned CancelFunc is called.
	Every(interval time.Duration, fn func() bool) CancelFunc
}
