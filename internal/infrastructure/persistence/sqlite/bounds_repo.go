package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/floatdock/internal/application/port"
	"github.com/bnema/floatdock/internal/domain/entity"
	"github.com/bnema/floatdock/internal/logging"
)

const (
	upsertBoundsSQL = `
INSERT INTO panel_bounds (panel_id, kind, left_px, top_px, width_px, height_px, visible, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(panel_id) DO UPDATE SET
    kind = excluded.kind,
    left_px = excluded.left_px,
    top_px = excluded.top_px,
    width_px = excluded.width_px,
    height_px = excluded.height_px,
    visible = excluded.visible,
    updated_at = CURRENT_TIMESTAMP`
	selectBoundsSQL = `
SELECT panel_id, kind, left_px, top_px, width_px, height_px, visible
FROM panel_bounds WHERE panel_id = ?`
	listBoundsSQL = `
SELECT panel_id, kind, left_px, top_px, width_px, height_px, visible
FROM panel_bounds ORDER BY panel_id`
	deleteBoundsSQL = `DELETE FROM panel_bounds WHERE panel_id = ?`
	clearBoundsSQL  = `DELETE FROM panel_bounds`
)

type boundsRepo struct {
	provider port.DatabaseProvider
}

var _ port.BoundsStore = (*boundsRepo)(nil)

// NewBoundsRepository creates a SQLite-backed bounds store. The connection is
// resolved through provider on every call.
func NewBoundsRepository(provider port.DatabaseProvider) port.BoundsStore {
	return &boundsRepo{provider: provider}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *boundsRepo) Save(ctx context.Context, b port.SavedBounds) error {
	if err := b.Validate(); err != nil {
		return err
	}
	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}

	log := logging.FromContext(ctx)
	log.Debug().Str("panel_id", string(b.PanelID)).Msg("saving panel bounds")

	_, err = db.ExecContext(ctx, upsertBoundsSQL,
		string(b.PanelID), string(b.Kind),
		b.Rect.Left, b.Rect.Top, b.Rect.Width, b.Rect.Height,
		b.Visible,
	)
	if err != nil {
		return fmt.Errorf("failed to save bounds for %s: %w", b.PanelID, err)
	}
	return nil
}

func (r *boundsRepo) Get(ctx context.Context, id entity.PanelID) (*port.SavedBounds, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	b, err := scanBounds(db.QueryRowContext(ctx, selectBoundsSQL, string(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load bounds for %s: %w", id, err)
	}
	return &b, nil
}

func (r *boundsRepo) List(ctx context.Context) ([]port.SavedBounds, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, listBoundsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list bounds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []port.SavedBounds
	for rows.Next() {
		b, err := scanBounds(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bounds: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *boundsRepo) Delete(ctx context.Context, id entity.PanelID) error {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, deleteBoundsSQL, string(id)); err != nil {
		return fmt.Errorf("failed to delete bounds for %s: %w", id, err)
	}
	return nil
}

func (r *boundsRepo) Clear(ctx context.Context) error {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, clearBoundsSQL); err != nil {
		return fmt.Errorf("failed to clear bounds: %w", err)
	}
	return nil
}

func scanBounds(row rowScanner) (port.SavedBounds, error) {
	var (
		id, kind string
		rect     entity.Rect
		visible  bool
	)
	if err := row.Scan(&id, &kind, &rect.Left, &rect.Top, &rect.Width, &rect.Height, &visible); err != nil {
		return port.SavedBounds{}, err
	}
	return port.SavedBounds{
		PanelID: entity.PanelID(id),
		Kind:    entity.PanelKind(kind),
		Rect:    rect,
		Visible: visible,
	}, nil
}
