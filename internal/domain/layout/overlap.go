package layout

import (
	"github.com/bnema/floatdock/internal/domain/entity"
)

// MaxResolveRounds caps the number of displacement rounds in ResolveOverlaps.
const MaxResolveRounds = 8

// CountOverlaps returns how many of others overlap r.
func CountOverlaps(r entity.Rect, others []entity.Rect) int {
	n := 0
	for _, o := range others {
		if RectsOverlap(r, o) {
			n++
		}
	}
	return n
}

// FirstOverlap returns the index of the first rect in others overlapping r, or -1.
func FirstOverlap(r entity.Rect, others []entity.Rect) int {
	for i, o := range others {
		if RectsOverlap(r, o) {
			return i
		}
	}
	return -1
}

type placement struct {
	rect     entity.Rect
	overlaps int
	distance float64
}

func (p placement) better(o placement) bool {
	if p.overlaps != o.overlaps {
		return p.overlaps < o.overlaps
	}
	return p.distance < o.distance
}

// ResolveOverlaps moves r to a nearby position that does not overlap others.
//
// Each round takes the first overlapping rect, tries the four positions flush
// against its sides (offset by gap), clamps them to the work area and keeps the one
// with the fewest overlaps, breaking ties by Manhattan distance. The search stops
// when nothing overlaps, when a round makes no progress, or after MaxResolveRounds.
// The result may still overlap if no clean spot was found; it is always clamped.
func ResolveOverlaps(r entity.Rect, others []entity.Rect, workArea entity.Rect, gap float64) entity.Rect {
	current := ClampToWorkArea(r, workArea, gap)

	for round := 0; round < MaxResolveRounds; round++ {
		idx := FirstOverlap(current, others)
		if idx < 0 {
			break
		}
		blocker := others[idx]

		candidates := [...]entity.Rect{
			current.MoveTo(blocker.Left-gap-current.Width, current.Top),
			current.MoveTo(blocker.Right()+gap, current.Top),
			current.MoveTo(current.Left, blocker.Top-gap-current.Height),
			current.MoveTo(current.Left, blocker.Bottom()+gap),
		}

		var best placement
		for i, c := range candidates {
			c = ClampToWorkArea(c, workArea, gap)
			p := placement{rect: c, overlaps: CountOverlaps(c, others), distance: c.ManhattanDistance(current)}
			if i == 0 || p.better(best) {
				best = p
			}
		}

		if best.rect.ManhattanDistance(current) <= overlapEpsilon {
			break
		}
		current = best.rect
	}

	return ClampToWorkArea(current, workArea, gap)
}
