package layout

import (
	"math"

	"github.com/bnema/floatdock/internal/domain/entity"
)

// minBelowOverlapRatio is the share of the narrower width two panels must share
// horizontally before the lower one limits the upper one's height.
const minBelowOverlapRatio = 0.30

// MaxHeight returns the tallest height window may take without pushing any panel
// below it off the bottom of the work area.
//
// A panel counts as "below" when its top is strictly under window's top and it
// shares at least 30% of the narrower width. If window grew until it pushed such
// a panel down by gap, that panel must still fit above workArea.Bottom-gap, which
// caps window's bottom at workArea.Bottom - other.Height - 2*gap.
func MaxHeight(window entity.Rect, others []entity.Rect, workArea entity.Rect, gap, minHeight float64) float64 {
	limitY := workArea.Bottom() - gap

	for _, o := range others {
		if o.Top <= window.Top {
			continue
		}
		if HorizontalOverlapRatio(window, o) < minBelowOverlapRatio {
			continue
		}
		limitY = math.Min(limitY, workArea.Bottom()-o.Height-2*gap)
	}

	return math.Max(minHeight, limitY-window.Top)
}
