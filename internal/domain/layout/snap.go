package layout

import (
	"math"

	"github.com/bnema/floatdock/internal/domain/entity"
)

// minSnapCrossOverlap is the overlap required on the other axis before two
// panels are considered neighbours for snapping.
const minSnapCrossOverlap = 24.0

// SnapToScreenEdges pulls each axis of r onto the gap-inset work area edge when it
// is within threshold. The near edge wins over the far edge. The result is clamped.
func SnapToScreenEdges(r, workArea entity.Rect, gap, threshold float64) entity.Rect {
	left := workArea.Left + gap
	right := workArea.Right() - gap - r.Width
	switch {
	case math.Abs(r.Left-left) <= threshold:
		r.Left = left
	case math.Abs(r.Left-right) <= threshold:
		r.Left = right
	}

	top := workArea.Top + gap
	bottom := workArea.Bottom() - gap - r.Height
	switch {
	case math.Abs(r.Top-top) <= threshold:
		r.Top = top
	case math.Abs(r.Top-bottom) <= threshold:
		r.Top = bottom
	}

	return ClampToWorkArea(r, workArea, gap)
}

// SnapToPanels aligns r with the edges of neighbouring rects. Candidates on the x
// axis come from rects sharing more than 24px of vertical span, candidates on the y
// axis from rects sharing more than 24px of horizontal span. The closest candidate
// per axis is applied if it is within threshold.
func SnapToPanels(r entity.Rect, others []entity.Rect, gap, threshold float64) entity.Rect {
	bestX, bestXDist := r.Left, math.Inf(1)
	bestY, bestYDist := r.Top, math.Inf(1)

	for _, o := range others {
		if VerticalOverlap(r, o) > minSnapCrossOverlap {
			for _, x := range [...]float64{o.Left, o.Right(), o.Right() + gap, o.Left - r.Width - gap} {
				if d := math.Abs(x - r.Left); d < bestXDist {
					bestX, bestXDist = x, d
				}
			}
		}
		if HorizontalOverlap(r, o) > minSnapCrossOverlap {
			for _, y := range [...]float64{o.Top, o.Bottom(), o.Bottom() + gap, o.Top - r.Height - gap} {
				if d := math.Abs(y - r.Top); d < bestYDist {
					bestY, bestYDist = y, d
				}
			}
		}
	}

	if bestXDist <= threshold {
		r.Left = bestX
	}
	if bestYDist <= threshold {
		r.Top = bestY
	}
	return r
}
