// Package cache keeps hot copies of persisted data in memory.
package cache

import (
	"context"
	"sort"

	"github.com/bnema/floatdock/internal/application/port"
	"github.com/bnema/floatdock/internal/cache/generic"
	"github.com/bnema/floatdock/internal/domain/entity"
)

// BoundsCache is a port.BoundsStore serving reads from memory and writing
// through to another store in the background. The preview saves from the
// layout loop, which must never wait on disk.
type BoundsCache struct {
	cache *generic.GenericCache[entity.PanelID, port.SavedBounds]
}

var _ port.BoundsStore = (*BoundsCache)(nil)

// NewBoundsCache wraps store. Call Load before the first read and Flush
// before exit.
func NewBoundsCache(ctx context.Context, store port.BoundsStore) *BoundsCache {
	return &BoundsCache{cache: generic.NewGenericCache(ctx, boundsOps{store: store})}
}

// Load reads every stored rectangle into memory.
func (b *BoundsCache) Load(ctx context.Context) error {
	return b.cache.Load(ctx)
}

// Flush waits for pending writes.
func (b *BoundsCache) Flush() {
	b.cache.Flush()
}

func (b *BoundsCache) Save(_ context.Context, sb port.SavedBounds) error {
	if err := sb.Validate(); err != nil {
		return err
	}
	b.cache.Set(sb.PanelID, sb)
	return nil
}

func (b *BoundsCache) Get(_ context.Context, id entity.PanelID) (*port.SavedBounds, error) {
	sb, ok := b.cache.Get(id)
	if !ok {
		return nil, nil
	}
	return &sb, nil
}

// List returns the cached bounds ordered by panel id, like the SQLite store.
func (b *BoundsCache) List(context.Context) ([]port.SavedBounds, error) {
	out := b.cache.List()
	sort.Slice(out, func(i, j int) bool { return out[i].PanelID < out[j].PanelID })
	return out, nil
}

func (b *BoundsCache) Delete(_ context.Context, id entity.PanelID) error {
	b.cache.Delete(id)
	return nil
}

func (b *BoundsCache) Clear(context.Context) error {
	b.cache.Clear()
	return nil
}

// boundsOps adapts a port.BoundsStore to the generic cache's storage interface.
type boundsOps struct {
	store port.BoundsStore
}

func (o boundsOps) LoadAll(ctx context.Context) (map[entity.PanelID]port.SavedBounds, error) {
	list, err := o.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[entity.PanelID]port.SavedBounds, len(list))
	for _, sb := range list {
		out[sb.PanelID] = sb
	}
	return out, nil
}

func (o boundsOps) Persist(ctx context.Context, id entity.PanelID, sb port.SavedBounds) error {
	return o.store.Save(ctx, sb)
}

func (o boundsOps) Delete(ctx context.Context, id entity.PanelID) error {
	return o.store.Delete(ctx, id)
}

func (o boundsOps) Clear(ctx context.Context) error {
	return o.store.Clear(ctx)
}
