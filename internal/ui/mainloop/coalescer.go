package mainloop

import "sync"

// Coalescer merges bursts of same-key callbacks into a single loop task that
// runs the latest callback. Config reloads use it: an editor save can emit
// several file events, but only one layout refresh should follow.
type Coalescer struct {
	mu        sync.Mutex
	latest    map[string]func()
	post      func(func()) bool
	destroyed bool
}

// NewCoalescer creates a coalescer that schedules through post, usually Loop.Post.
func NewCoalescer(post func(func()) bool) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}
	return &Coalescer{
		latest: make(map[string]func()),
		post:   post,
	}
}

// Post records fn as the latest callback for key and schedules a run unless one
// is already pending.
func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	_, pending := c.latest[key]
	c.latest[key] = fn
	c.mu.Unlock()
	if pending {
		return
	}

	if !c.post(func() { c.run(key) }) {
		c.mu.Lock()
		delete(c.latest, key)
		c.mu.Unlock()
	}
}

// Pending returns the number of keys waiting to run.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.latest)
}

func (c *Coalescer) run(key string) {
	c.mu.Lock()
	fn := c.latest[key]
	delete(c.latest, key)
	destroyed := c.destroyed
	c.mu.Unlock()

	if fn != nil && !destroyed {
		fn()
	}
}

// Destroy drops pending work and ignores later posts.
func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.latest = map[string]func(){}
	c.mu.Unlock()
}
