package usecase

import (
	"github.com/bnema/floatdock/internal/domain/entity"
	"github.com/bnema/floatdock/internal/domain/layout"
)

// rebuildGraph replaces every attachment with the edges captured from current
// geometry.
func (uc *ArrangePanelsUseCase) rebuildGraph(pass *layoutPass) {
	placed := uc.placedPanels(pass, "")
	edges := layout.CaptureFollowers(placed, pass.settings.Gap, pass.settings.SnapThreshold)

	rejected := uc.forest.Replace(edges)
	for _, follower := range rejected {
		pass.panelLog(follower).Debug().
			Str("anchor_id", string(edges[follower])).
			Msg("attachment rejected, would create a cycle")
	}
	pass.log.Trace().Int("attachments", uc.forest.Len()).Msg("attachment graph rebuilt")
}

// attachImpactedBelow attaches to anchor every panel swept by its height change
// from previous to current. When the band is empty, the nearest panel under the
// old bottom edge is attached instead.
func (uc *ArrangePanelsUseCase) attachImpactedBelow(pass *layoutPass, anchor entity.PanelID, previous, current entity.Rect) {
	candidates := uc.placedPanels(pass, anchor)
	gap, threshold := pass.settings.Gap, pass.settings.SnapThreshold

	impacted := layout.ImpactedBelow(anchor, previous, current, candidates, gap, threshold)
	if len(impacted) == 0 {
		if nearest, ok := layout.NearestBelow(anchor, previous, candidates, gap); ok {
			impacted = append(impacted, nearest)
		}
	}

	for _, follower := range impacted {
		// Panels already trailing below anchor move with it through their own anchor.
		if uc.descendants(anchor)[follower] {
			continue
		}
		if err := uc.forest.Attach(follower, anchor); err != nil {
			pass.panelLog(follower).Debug().Err(err).Msg("skipping impacted panel")
		}
	}
}

// propagate moves every follower of anchor, recursively, so it sits gap pixels
// below its own anchor. Each panel is visited at most once.
func (uc *ArrangePanelsUseCase) propagate(pass *layoutPass, anchor entity.PanelID) {
	visited := map[entity.PanelID]bool{anchor: true}
	uc.propagateFrom(pass, anchor, visited)
}

func (uc *ArrangePanelsUseCase) propagateFrom(pass *layoutPass, anchorID entity.PanelID, visited map[entity.PanelID]bool) {
	anchor, ok := uc.panels[anchorID]
	if !ok || !isPlaceable(anchor) {
		return
	}
	anchorRect, ok := uc.safeBounds(anchor)
	if !ok {
		return
	}
	style := anchor.Traits().Propagation

	for _, follower := range uc.followersByTop(pass, anchorID) {
		if visited[follower.ID] {
			continue
		}
		visited[follower.ID] = true

		p := uc.panels[follower.ID]
		target := follower.Rect.MoveTo(follower.Rect.Left, anchorRect.Bottom()+pass.settings.Gap)
		if style != entity.PropagateVerticalOnly {
			// Descendants have not moved yet and must not push the follower sideways.
			others := uc.otherRects(pass, follower.ID, uc.descendants(follower.ID))
			target = layout.Arrange(target, others, uc.workAreaFor(pass, target), pass.arrangeOptions())
		}
		uc.write(pass, p, target)

		uc.propagateFrom(pass, follower.ID, visited)
	}
}

// followersByTop returns the visible direct followers of anchor ordered by top.
func (uc *ArrangePanelsUseCase) followersByTop(pass *layoutPass, anchor entity.PanelID) []layout.PlacedPanel {
	ids := uc.forest.FollowersOf(anchor)
	out := make([]layout.PlacedPanel, 0, len(ids))
	for _, id := range ids {
		p, ok := uc.panels[id]
		if !ok || !isPlaceable(p) {
			continue
		}
		r, ok := uc.safeBounds(p)
		if !ok {
			pass.panelLog(id).Trace().Msg("skipping follower without geometry")
			continue
		}
		out = append(out, layout.PlacedPanel{ID: id, Rect: r})
	}
	layout.SortByTop(out)
	return out
}

// descendants returns every panel transitively attached below id.
func (uc *ArrangePanelsUseCase) descendants(id entity.PanelID) map[entity.PanelID]bool {
	out := make(map[entity.PanelID]bool)
	stack := uc.forest.FollowersOf(id)
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if out[next] || next == id {
			continue
		}
		out[next] = true
		stack = append(stack, uc.forest.FollowersOf(next)...)
	}
	return out
}

