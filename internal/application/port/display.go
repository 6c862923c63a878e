package port

import "github.com/bnema/floatdock/internal/domain/entity"

// ScreenQuery resolves the usable work area of the monitor under a point.
// Implemented by the host's display-topology adapter.
type ScreenQuery interface {
	// WorkAreaAt returns the work area of the monitor containing p.
	WorkAreaAt(p entity.Point) (entity.Rect, error)
	// PrimaryWorkArea returns the primary monitor's work area. It must not fail.
	PrimaryWorkArea() entity.Rect
}
