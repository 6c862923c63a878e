package layout

import "github.com/bnema/floatdock/internal/domain/entity"

// maxSettlePasses bounds how often the snap and resolve passes are chained while
// looking for a position that every pass leaves untouched.
const maxSettlePasses = 4

// ArrangeOptions carries the per-operation parameters of a live layout pass.
type ArrangeOptions struct {
	Gap               float64
	Threshold         float64
	OverlapPrevention bool
}

// Arrange runs the live layout passes on r: snap to the work area edges, snap to
// neighbouring panels, resolve overlaps. The passes are chained until they stop
// moving the rect, so arranging an already arranged rect returns it unchanged.
func Arrange(r entity.Rect, others []entity.Rect, workArea entity.Rect, opts ArrangeOptions) entity.Rect {
	current := r
	for pass := 0; pass < maxSettlePasses; pass++ {
		next := arrangeOnce(current, others, workArea, opts)
		if next.ApproxEqual(current, 0) {
			return next
		}
		current = next
	}
	return current
}

func arrangeOnce(r entity.Rect, others []entity.Rect, workArea entity.Rect, opts ArrangeOptions) entity.Rect {
	r = SnapToScreenEdges(r, workArea, opts.Gap, opts.Threshold)
	r = SnapToPanels(r, others, opts.Gap, opts.Threshold)
	if opts.OverlapPrevention {
		r = ResolveOverlaps(r, others, workArea, opts.Gap)
	} else {
		r = ClampToWorkArea(r, workArea, opts.Gap)
	}
	return r
}
