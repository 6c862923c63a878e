// Package layout implements the pure geometry of free-placement panels: overlap
// tests, clamping, edge snapping, overlap resolution, height constraints, the
// attachment forest and the drop-recovery easing. Nothing in this package talks to
// a windowing layer; callers pass rectangles in and get rectangles out.
package layout

import (
	"math"

	"github.com/bnema/floatdock/internal/domain/entity"
)

// overlapEpsilon absorbs sub-pixel jitter when deciding whether two rects overlap.
const overlapEpsilon = 0.5

// HorizontalOverlap returns the length of the overlap of a and b along the x axis.
func HorizontalOverlap(a, b entity.Rect) float64 {
	return math.Max(0, math.Min(a.Right(), b.Right())-math.Max(a.Left, b.Left))
}

// VerticalOverlap returns the length of the overlap of a and b along the y axis.
func VerticalOverlap(a, b entity.Rect) float64 {
	return math.Max(0, math.Min(a.Bottom(), b.Bottom())-math.Max(a.Top, b.Top))
}

// RectsOverlap reports whether a and b overlap by more than half a pixel on both axes.
func RectsOverlap(a, b entity.Rect) bool {
	return HorizontalOverlap(a, b) > overlapEpsilon && VerticalOverlap(a, b) > overlapEpsilon
}

// HorizontalOverlapRatio returns the x overlap divided by the smaller of the two widths.
func HorizontalOverlapRatio(a, b entity.Rect) float64 {
	smaller := math.Min(a.Width, b.Width)
	if smaller <= 0 {
		return 0
	}
	return HorizontalOverlap(a, b) / smaller
}

// ClampToWorkArea translates r so it lies inside the work area shrunk by gap.
// A rect larger than the reduced span is clamped against the unreduced work
// area instead; it is never resized.
func ClampToWorkArea(r, workArea entity.Rect, gap float64) entity.Rect {
	r.Left = clampAxis(r.Left, r.Width, workArea.Left, workArea.Right(), gap)
	r.Top = clampAxis(r.Top, r.Height, workArea.Top, workArea.Bottom(), gap)
	return r
}

func clampAxis(pos, size, lo, hi, gap float64) float64 {
	minPos := lo + gap
	maxPos := hi - gap - size
	if maxPos < minPos {
		minPos = lo
		maxPos = hi - size
		if maxPos < minPos {
			return lo
		}
	}
	return math.Min(math.Max(pos, minPos), maxPos)
}
