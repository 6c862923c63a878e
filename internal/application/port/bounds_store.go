package port

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/floatdock/internal/domain/entity"
)

// SavedBounds is a panel rectangle persisted by the host between runs.
type SavedBounds struct {
	PanelID entity.PanelID
	Kind    entity.PanelKind
	Rect    entity.Rect
	Visible bool
}

// BoundsStore persists panel positions for the host application.
// The layout core never calls it; hosts save positions after layout settles.
type BoundsStore interface {
	Save(ctx context.Context, b SavedBounds) error
	Get(ctx context.Context, id entity.PanelID) (*SavedBounds, error)
	List(ctx context.Context) ([]SavedBounds, error)
	Delete(ctx context.Context, id entity.PanelID) error
	Clear(ctx context.Context) error
}

// ErrInvalidBounds is returned when saving bounds without a panel id or with
// a degenerate rectangle.
var ErrInvalidBounds = errors.New("invalid panel bounds")

// Validate checks that b can be stored.
func (b SavedBounds) Validate() error {
	if b.PanelID == "" || !b.Rect.HasArea() {
		return fmt.Errorf("%w: id=%q rect=%+v", ErrInvalidBounds, b.PanelID, b.Rect)
	}
	return nil
}
