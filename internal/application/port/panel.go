// Package port defines interfaces for infrastructure adapters.
package port

import (
	"context"

	"github.com/bnema/floatdock/internal/domain/entity"
)

// Panel is the host's handle on one on-screen panel.
// The layout core only reads and repositions panels; the host owns their lifetime.
type Panel interface {
	// ID returns the stable panel identifier.
	ID() entity.PanelID
	// Traits returns the static capabilities of the panel.
	Traits() entity.PanelTraits

	// Bounds returns the current rectangle. Implementations return
	// entity.ErrGeometryUnavailable (or a zero size) before the panel is rendered.
	Bounds() (entity.Rect, error)
	// SetBounds moves and/or resizes the panel.
	SetBounds(r entity.Rect) error
	// SetMaxHeight publishes the computed height ceiling for height-constrained panels.
	SetMaxHeight(h float64)

	IsVisible() bool
	// IsLoaded reports whether the panel finished its first render.
	IsLoaded() bool
	// IsDragging reports whether the pointer currently holds the panel in a drag.
	IsDragging() bool
}

// PanelObserver receives geometry-affecting events from the host's windowing adapter.
// Implementations must be driven from the UI event loop.
type PanelObserver interface {
	OnPanelMoved(ctx context.Context, p Panel)
	OnPanelResized(ctx context.Context, p Panel)
	OnPanelVisibilityChanged(ctx context.Context, p Panel)
	OnPanelClosed(ctx context.Context, p Panel)
}

// DragObserver is implemented by observers that want to know when a pointer drag
// ends, including when the pointer capture is lost.
type DragObserver interface {
	OnDragReleased(ctx context.Context, p Panel)
}
