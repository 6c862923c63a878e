package layout

import (
	"math"
	"sort"

	"github.com/bnema/floatdock/internal/domain/entity"
)

const (
	// minAttachOverlapRatio is the share of the narrower width an anchor and its
	// follower must have in common.
	minAttachOverlapRatio = 0.25
	// nearestBelowReach is how far below the anchor's old bottom (on top of gap)
	// AttachNearestBelow still looks for a follower.
	nearestBelowReach = 48.0
)

// PlacedPanel pairs a panel id with its current rectangle.
type PlacedPanel struct {
	ID   entity.PanelID
	Rect entity.Rect
}

// CaptureFollowers computes the attachment edges for a set of visible panels.
//
// A panel follows an anchor when its top sits between threshold above the
// anchor's bottom and gap+2*threshold below it, and the two share at least 25% of
// the narrower width. Among qualifying anchors the one whose vertical gap is
// closest to gap wins.
func CaptureFollowers(panels []PlacedPanel, gap, threshold float64) map[entity.PanelID]entity.PanelID {
	edges := make(map[entity.PanelID]entity.PanelID)

	for _, follower := range panels {
		bestScore := math.Inf(1)
		var bestAnchor entity.PanelID
		found := false

		for _, anchor := range panels {
			if anchor.ID == follower.ID {
				continue
			}
			vgap := follower.Rect.Top - anchor.Rect.Bottom()
			if vgap < -threshold || vgap > gap+2*threshold {
				continue
			}
			if HorizontalOverlapRatio(follower.Rect, anchor.Rect) < minAttachOverlapRatio {
				continue
			}
			if score := math.Abs(vgap - gap); score < bestScore {
				bestScore, bestAnchor, found = score, anchor.ID, true
			}
		}

		if found {
			edges[follower.ID] = bestAnchor
		}
	}

	return edges
}

// NearestBelow returns the closest candidate whose top lies at or below the
// anchor's previous bottom, no further than gap+48px, sharing at least 25% of the
// narrower width.
func NearestBelow(anchor entity.PanelID, previous entity.Rect, candidates []PlacedPanel, gap float64) (entity.PanelID, bool) {
	bestDist := math.Inf(1)
	var best entity.PanelID
	found := false

	for _, c := range candidates {
		if c.ID == anchor {
			continue
		}
		dist := c.Rect.Top - previous.Bottom()
		if dist < -overlapEpsilon || dist > gap+nearestBelowReach {
			continue
		}
		if HorizontalOverlapRatio(c.Rect, previous) < minAttachOverlapRatio {
			continue
		}
		if dist < bestDist {
			bestDist, best, found = dist, c.ID, true
		}
	}

	return best, found
}

// ImpactedBelow returns the candidates whose top falls into the band swept by a
// height change from previous to current, sorted by top.
//
// Growing sweeps [previousBottom-threshold, currentBottom+threshold]; shrinking
// sweeps [currentBottom-threshold, previousBottom+gap+threshold].
func ImpactedBelow(anchor entity.PanelID, previous, current entity.Rect, candidates []PlacedPanel, gap, threshold float64) []entity.PanelID {
	var lo, hi float64
	if current.Bottom() >= previous.Bottom() {
		lo = previous.Bottom() - threshold
		hi = current.Bottom() + threshold
	} else {
		lo = current.Bottom() - threshold
		hi = previous.Bottom() + gap + threshold
	}

	var hits []PlacedPanel
	for _, c := range candidates {
		if c.ID == anchor {
			continue
		}
		if c.Rect.Top < lo || c.Rect.Top > hi {
			continue
		}
		if HorizontalOverlapRatio(c.Rect, current) < minAttachOverlapRatio {
			continue
		}
		hits = append(hits, c)
	}

	SortByTop(hits)
	out := make([]entity.PanelID, len(hits))
	for i, h := range hits {
		out[i] = h.ID
	}
	return out
}

// SortByTop orders panels by top edge, then left edge, then id.
func SortByTop(panels []PlacedPanel) {
	sort.SliceStable(panels, func(i, j int) bool {
		a, b := panels[i].Rect, panels[j].Rect
		if a.Top != b.Top {
			return a.Top < b.Top
		}
		if a.Left != b.Left {
			return a.Left < b.Left
		}
		return panels[i].ID < panels[j].ID
	})
}
