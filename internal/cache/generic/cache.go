// Package generic provides a RAM-first cache that persists writes in the
// background.
package generic

import (
	"context"
	"sync"

	"github.com/bnema/floatdock/internal/logging"
)

// Cache provides a generic interface for caching any type of data.
// K is the key type (must be comparable), V is the value type.
//
// Reads never touch storage. Writes update memory immediately and are
// persisted asynchronously; the last write for a key wins.
type Cache[K comparable, V any] interface {
	// Load bulk-loads all data from storage into memory.
	Load(ctx context.Context) error
	Get(key K) (V, bool)
	Set(key K, value V)
	Delete(key K)
	Clear()
	List() []V
	// Flush waits for all pending writes.
	Flush()
}

// DatabaseOperations is the storage behind a cache.
type DatabaseOperations[K comparable, V any] interface {
	LoadAll(ctx context.Context) (map[K]V, error)
	Persist(ctx context.Context, key K, value V) error
	Delete(ctx context.Context, key K) error
	Clear(ctx context.Context) error
}

// GenericCache implements Cache[K, V] on a map guarded by a RWMutex. Storage
// calls run one at a time on a background goroutine, in the order the
// mutations happened.
type GenericCache[K comparable, V any] struct {
	ctx   context.Context
	dbOps DatabaseOperations[K, V]

	mu   sync.RWMutex
	data map[K]V

	qmu      sync.Mutex
	queue    []storageOp
	draining bool

	pendingWrites sync.WaitGroup
}

type storageOp struct {
	name string
	run  func(ctx context.Context) error
}

var _ Cache[string, int] = (*GenericCache[string, int])(nil)

// NewGenericCache creates a cache on dbOps. ctx carries the logger used to
// report failed background writes.
func NewGenericCache[K comparable, V any](ctx context.Context, dbOps DatabaseOperations[K, V]) *GenericCache[K, V] {
	return &GenericCache[K, V]{
		ctx:   ctx,
		dbOps: dbOps,
		data:  make(map[K]V),
	}
}

// Load bulk-loads all data from the database into memory.
func (c *GenericCache[K, V]) Load(ctx context.Context) error {
	data, err := c.dbOps.LoadAll(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range data {
		c.data[k] = v
	}
	return nil
}

// Get retrieves a value from memory.
func (c *GenericCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.data[key]
	return v, ok
}

// Set stores value and persists it in the background.
func (c *GenericCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.enqueue(storageOp{name: "persist", run: func(ctx context.Context) error {
		return c.dbOps.Persist(ctx, key, value)
	}})
}

// Delete removes key and deletes it from storage in the background.
func (c *GenericCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	c.enqueue(storageOp{name: "delete", run: func(ctx context.Context) error {
		return c.dbOps.Delete(ctx, key)
	}})
}

// Clear empties memory and storage.
func (c *GenericCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[K]V)
	c.enqueue(storageOp{name: "clear", run: c.dbOps.Clear})
}

// List returns all values in memory, in no particular order.
func (c *GenericCache[K, V]) List() []V {
	c.mu.RLock()
	defer c.mu.RUnlock()
	values := make([]V, 0, len(c.data))
	for _, v := range c.data {
		values = append(values, v)
	}
	return values
}

// Flush blocks until all pending writes complete.
func (c *GenericCache[K, V]) Flush() {
	c.pendingWrites.Wait()
}

// enqueue must be called with c.mu held so storage sees mutations in order.
func (c *GenericCache[K, V]) enqueue(op storageOp) {
	c.qmu.Lock()
	defer c.qmu.Unlock()
	c.pendingWrites.Add(1)
	c.queue = append(c.queue, op)
	if !c.draining {
		c.draining = true
		go c.drain()
	}
}

func (c *GenericCache[K, V]) drain() {
	for {
		c.qmu.Lock()
		if len(c.queue) == 0 {
			c.draining = false
			c.qmu.Unlock()
			return
		}
		op := c.queue[0]
		c.queue = c.queue[1:]
		c.qmu.Unlock()

		if err := op.run(c.ctx); err != nil {
			logging.FromContext(c.ctx).Warn().Err(err).Str("op", op.name).Msg("async cache write failed")
		}
		c.pendingWrites.Done()
	}
}
