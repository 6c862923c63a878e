// Package virtualpanel provides in-memory panels for the simulator and tests.
// A Panel behaves like a window handle from a windowing adapter: user actions and
// programmatic writes both notify the bound observer synchronously.
package virtualpanel

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/floatdock/internal/application/port"
	"github.com/bnema/floatdock/internal/domain/entity"
)

// ErrClosed is returned by SetBounds once the panel is closed.
var ErrClosed = errors.New("panel closed")

// Panel is an in-memory port.Panel.
type Panel struct {
	id     entity.PanelID
	traits entity.PanelTraits

	rect      entity.Rect
	rendered  bool
	maxHeight float64

	visible  bool
	loaded   bool
	dragging bool
	closed   bool

	writes int

	ctx      context.Context
	observer port.PanelObserver
}

var _ port.Panel = (*Panel)(nil)

// New creates a visible, loaded panel at r.
func New(id entity.PanelID, traits entity.PanelTraits, r entity.Rect) *Panel {
	return &Panel{
		id:       id,
		traits:   traits,
		rect:     r,
		rendered: r.HasArea(),
		visible:  true,
		loaded:   true,
		ctx:      context.Background(),
	}
}

// NewOfKind creates a panel with the default traits of kind and its nominal size.
func NewOfKind(id entity.PanelID, kind entity.PanelKind, left, top float64) *Panel {
	traits := entity.DefaultTraits(kind)
	return New(id, traits, entity.NewRect(left, top, traits.NominalWidth, traits.NominalHeight))
}

// Bind attaches the observer notified of geometry and visibility changes.
func (p *Panel) Bind(ctx context.Context, observer port.PanelObserver) {
	if ctx == nil {
		ctx = context.Background()
	}
	p.ctx = ctx
	p.observer = observer
}

func (p *Panel) ID() entity.PanelID         { return p.id }
func (p *Panel) Traits() entity.PanelTraits { return p.traits }
func (p *Panel) IsVisible() bool            { return p.visible && !p.closed }
func (p *Panel) IsLoaded() bool             { return p.loaded }
func (p *Panel) IsDragging() bool           { return p.dragging }
func (p *Panel) IsClosed() bool             { return p.closed }

// MaxHeight returns the last ceiling published by the layout core, 0 if none.
func (p *Panel) MaxHeight() float64 { return p.maxHeight }

// Writes counts the programmatic SetBounds calls that changed the rect.
func (p *Panel) Writes() int { return p.writes }

// ResetWrites zeroes the write counter.
func (p *Panel) ResetWrites() { p.writes = 0 }

// Rect returns the stored rect without the unrendered check.
func (p *Panel) Rect() entity.Rect { return p.rect }

// Bounds implements port.Panel.
func (p *Panel) Bounds() (entity.Rect, error) {
	if !p.rendered {
		return entity.NewRect(p.rect.Left, p.rect.Top, 0, 0), entity.ErrGeometryUnavailable
	}
	return p.rect, nil
}

// SetBounds implements port.Panel.
func (p *Panel) SetBounds(r entity.Rect) error {
	if p.closed {
		return fmt.Errorf("set bounds on %s: %w", p.id, ErrClosed)
	}
	if r == p.rect && p.rendered {
		return nil
	}
	p.writes++
	p.apply(r)
	return nil
}

// SetMaxHeight implements port.Panel. A panel taller than the new ceiling is
// shrunk, which is reported as a resize like a real window would.
func (p *Panel) SetMaxHeight(h float64) {
	p.maxHeight = h
	if h > 0 && p.rendered && p.rect.Height > h {
		r := p.rect
		r.Height = h
		p.apply(r)
	}
}

// SetLoaded flips the loaded flag and reports it as a visibility change.
func (p *Panel) SetLoaded(loaded bool) {
	if p.loaded == loaded {
		return
	}
	p.loaded = loaded
	if p.observer != nil {
		p.observer.OnPanelVisibilityChanged(p.ctx, p)
	}
}

// Render gives an unrendered panel its first real rect.
func (p *Panel) Render(r entity.Rect) {
	p.apply(r)
}

// UserMove moves the panel the way a keyboard move or window manager would.
func (p *Panel) UserMove(left, top float64) {
	p.apply(p.rect.MoveTo(left, top))
}

// BeginDrag marks the panel as held by the pointer.
func (p *Panel) BeginDrag() { p.dragging = true }

// DragTo moves a dragged panel. It starts a drag if none is in progress.
func (p *Panel) DragTo(left, top float64) {
	p.dragging = true
	p.apply(p.rect.MoveTo(left, top))
}

// EndDrag releases the pointer.
func (p *Panel) EndDrag() {
	if !p.dragging {
		return
	}
	p.dragging = false
	if p.observer == nil {
		return
	}
	if drag, ok := p.observer.(port.DragObserver); ok {
		drag.OnDragReleased(p.ctx, p)
		return
	}
	p.observer.OnPanelMoved(p.ctx, p)
}

// UserResize resizes the panel, honoring the published max height for
// height-constrained panels.
func (p *Panel) UserResize(width, height float64) {
	if p.traits.HeightConstrained && p.maxHeight > 0 && height > p.maxHeight {
		height = p.maxHeight
	}
	r := p.rect
	r.Width, r.Height = width, height
	p.apply(r)
}

// Show makes the panel visible.
func (p *Panel) Show() { p.setVisible(true) }

// Hide hides the panel.
func (p *Panel) Hide() { p.setVisible(false) }

// Close closes the panel for good.
func (p *Panel) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.dragging = false
	if p.observer != nil {
		p.observer.OnPanelClosed(p.ctx, p)
	}
}

func (p *Panel) setVisible(visible bool) {
	if p.visible == visible || p.closed {
		return
	}
	p.visible = visible
	if p.observer != nil {
		p.observer.OnPanelVisibilityChanged(p.ctx, p)
	}
}

// apply stores r and emits the moved and resized notifications it implies.
func (p *Panel) apply(r entity.Rect) {
	prev := p.rect
	wasRendered := p.rendered
	p.rect = r
	p.rendered = r.HasArea()

	if p.observer == nil || p.closed {
		return
	}
	moved := prev.Left != r.Left || prev.Top != r.Top
	resized := prev.Width != r.Width || prev.Height != r.Height || !wasRendered
	if moved {
		p.observer.OnPanelMoved(p.ctx, p)
	}
	if resized {
		p.observer.OnPanelResized(p.ctx, p)
	}
}
