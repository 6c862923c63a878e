package virtualpanel

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/floatdock/internal/application/port"
	"github.com/bnema/floatdock/internal/domain/entity"
)

var (
	// ErrDuplicatePanel is returned when a panel id is already on the desk.
	ErrDuplicatePanel = errors.New("duplicate panel id")
	// ErrUnknownPanel is returned when a panel id is not on the desk.
	ErrUnknownPanel = errors.New("unknown panel")
)

// Desk is the set of virtual panels of one simulated session, all bound to the
// same observer.
type Desk struct {
	ctx      context.Context
	observer port.PanelObserver

	panels map[entity.PanelID]*Panel
	order  []entity.PanelID
}

// NewDesk creates an empty desk notifying observer.
func NewDesk(ctx context.Context, observer port.PanelObserver) *Desk {
	return &Desk{
		ctx:      ctx,
		observer: observer,
		panels:   make(map[entity.PanelID]*Panel),
	}
}

// Add binds p to the desk observer.
func (d *Desk) Add(p *Panel) error {
	if _, exists := d.panels[p.ID()]; exists {
		return fmt.Errorf("add %s: %w", p.ID(), ErrDuplicatePanel)
	}
	p.Bind(d.ctx, d.observer)
	d.panels[p.ID()] = p
	d.order = append(d.order, p.ID())
	return nil
}

// Get returns the panel with the given id.
func (d *Desk) Get(id entity.PanelID) (*Panel, error) {
	p, ok := d.panels[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPanel, id)
	}
	return p, nil
}

// Panels returns the panels in insertion order, closed ones included.
func (d *Desk) Panels() []*Panel {
	out := make([]*Panel, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.panels[id])
	}
	return out
}

// Open returns the panels that are not closed, in insertion order.
func (d *Desk) Open() []*Panel {
	out := make([]*Panel, 0, len(d.order))
	for _, id := range d.order {
		if p := d.panels[id]; !p.IsClosed() {
			out = append(out, p)
		}
	}
	return out
}
