package usecase

import (
	"errors"
	"math"

	"github.com/bnema/floatdock/internal/application/port"
	"github.com/bnema/floatdock/internal/domain/entity"
	"github.com/bnema/floatdock/internal/domain/layout"
)

// resizeEpsilon is the height change below which a resize is treated as jitter.
const resizeEpsilon = 0.5

// fallbackWorkArea is used when no screen query is wired at all.
var fallbackWorkArea = entity.NewRect(0, 0, 1920, 1080)

// applying runs fn with the coordinator in PhaseApplying. Calls nest: the phase
// only drops back to idle when the outermost write returns.
func (uc *ArrangePanelsUseCase) applying(fn func()) {
	uc.applyDepth++
	uc.phase = PhaseApplying
	defer func() {
		uc.applyDepth--
		if uc.applyDepth <= 0 {
			uc.applyDepth = 0
			uc.phase = PhaseIdle
		}
	}()
	fn()
}

// write moves or resizes p. Returns false when r is already the panel's rect or
// the host refused the write.
func (uc *ArrangePanelsUseCase) write(pass *layoutPass, p port.Panel, r entity.Rect) bool {
	if current, ok := uc.measure(p); ok && current == r {
		return false
	}

	var err error
	uc.applying(func() { err = p.SetBounds(r) })
	if err != nil {
		pass.panelLog(p.ID()).Debug().Err(err).Msg("set bounds failed")
		return false
	}
	return true
}

// measure returns the rendered rect of p, or false when the panel has no usable
// geometry yet.
func (uc *ArrangePanelsUseCase) measure(p port.Panel) (r entity.Rect, ok bool) {
	defer func() {
		if recover() != nil {
			r, ok = entity.Rect{}, false
		}
	}()

	r, err := p.Bounds()
	if err != nil || !r.IsFinite() || !r.HasArea() {
		return entity.Rect{}, false
	}
	return r, true
}

// safeBounds returns the rect of p, substituting the nominal size (then 1px) for
// a missing width or height. A panel whose position cannot be read is skipped.
func (uc *ArrangePanelsUseCase) safeBounds(p port.Panel) (r entity.Rect, ok bool) {
	defer func() {
		if recover() != nil {
			r, ok = entity.Rect{}, false
		}
	}()

	r, err := p.Bounds()
	if err != nil && !errors.Is(err, entity.ErrGeometryUnavailable) {
		return entity.Rect{}, false
	}
	if !r.IsFinite() {
		return entity.Rect{}, false
	}

	traits := p.Traits()
	if r.Width <= 0 {
		r.Width = math.Max(traits.NominalWidth, 1)
	}
	if r.Height <= 0 {
		r.Height = math.Max(traits.NominalHeight, 1)
	}
	return r, true
}

// workAreaFor resolves the work area of the monitor under r's center, falling
// back to the primary monitor when the lookup fails.
func (uc *ArrangePanelsUseCase) workAreaFor(pass *layoutPass, r entity.Rect) (wa entity.Rect) {
	if uc.screen == nil {
		return fallbackWorkArea
	}
	defer func() {
		if rec := recover(); rec != nil {
			pass.log.Debug().Interface("panic", rec).Msg("work area lookup panicked")
			wa = uc.primaryWorkArea(pass)
		}
	}()

	wa, err := uc.screen.WorkAreaAt(r.Center())
	if err != nil || !wa.HasArea() || !wa.IsFinite() {
		pass.log.Debug().Err(err).Msg("work area lookup failed, using primary monitor")
		return uc.primaryWorkArea(pass)
	}
	return wa
}

func (uc *ArrangePanelsUseCase) primaryWorkArea(pass *layoutPass) (wa entity.Rect) {
	defer func() {
		if rec := recover(); rec != nil {
			pass.log.Debug().Interface("panic", rec).Msg("primary work area lookup panicked")
			wa = fallbackWorkArea
		}
	}()

	wa = uc.screen.PrimaryWorkArea()
	if !wa.HasArea() || !wa.IsFinite() {
		return fallbackWorkArea
	}
	return wa
}

// placedPanels returns every visible, loaded panel with readable geometry except
// exclude, ordered top to bottom.
func (uc *ArrangePanelsUseCase) placedPanels(pass *layoutPass, exclude entity.PanelID) []layout.PlacedPanel {
	out := make([]layout.PlacedPanel, 0, len(uc.order))
	for _, id := range uc.order {
		if id == exclude {
			continue
		}
		p := uc.panels[id]
		if !isPlaceable(p) {
			continue
		}
		r, ok := uc.safeBounds(p)
		if !ok {
			pass.panelLog(id).Trace().Msg("skipping panel without geometry")
			continue
		}
		out = append(out, layout.PlacedPanel{ID: id, Rect: r})
	}
	layout.SortByTop(out)
	return out
}

// otherRects returns the rects of the panels p should avoid, minus skip.
func (uc *ArrangePanelsUseCase) otherRects(pass *layoutPass, id entity.PanelID, skip map[entity.PanelID]bool) []entity.Rect {
	placed := uc.placedPanels(pass, id)
	out := make([]entity.Rect, 0, len(placed))
	for _, pp := range placed {
		if skip[pp.ID] {
			continue
		}
		out = append(out, pp.Rect)
	}
	return out
}

// applyLiveLayout snaps p to the work area edges and its neighbours, resolves
// overlaps, moves it and republishes its height ceiling.
func (uc *ArrangePanelsUseCase) applyLiveLayout(pass *layoutPass, p port.Panel, skip map[entity.PanelID]bool) {
	r, ok := uc.safeBounds(p)
	if !ok {
		return
	}
	others := uc.otherRects(pass, p.ID(), skip)
	target := layout.Arrange(r, others, uc.workAreaFor(pass, r), pass.arrangeOptions())

	if uc.write(pass, p, target) {
		pass.panelLog(p.ID()).Debug().
			Float64("x", target.Left).
			Float64("y", target.Top).
			Msg("live layout applied")
	}
	uc.refreshHeightConstraint(pass, p, others)
}

// clampWhileDragging keeps a dragged panel on screen without snapping it.
func (uc *ArrangePanelsUseCase) clampWhileDragging(pass *layoutPass, p port.Panel) {
	uc.cancelAnimation(p.ID())
	r, ok := uc.safeBounds(p)
	if !ok {
		return
	}
	uc.write(pass, p, layout.ClampToWorkArea(r, uc.workAreaFor(pass, r), pass.settings.Gap))
}

// handleDrop places a panel the user let go of.
func (uc *ArrangePanelsUseCase) handleDrop(pass *layoutPass, p port.Panel) {
	id := p.ID()
	uc.cancelAnimation(id)

	dropped, ok := uc.safeBounds(p)
	if !ok {
		return
	}
	uc.forest.Detach(id)

	others := uc.otherRects(pass, id, nil)
	if pass.settings.OverlapPrevention && layout.CountOverlaps(dropped, others) > 0 {
		target := uc.recoveryTarget(pass, id, dropped, others)
		pass.panelLog(id).Debug().
			Float64("x", target.Left).
			Float64("y", target.Top).
			Msg("drop overlaps, recovering")
		uc.animateTo(pass, p, dropped, target)
		return
	}

	uc.applyLiveLayout(pass, p, nil)
	uc.settle(pass, p)
}

// recoveryTarget picks where an overlapping drop goes: back to the last clean
// position when that spot is still free, otherwise the resolver's answer.
func (uc *ArrangePanelsUseCase) recoveryTarget(pass *layoutPass, id entity.PanelID, dropped entity.Rect, others []entity.Rect) entity.Rect {
	if prev, ok := uc.lastBounds[id]; ok {
		prev.Width, prev.Height = dropped.Width, dropped.Height
		prev = layout.ClampToWorkArea(prev, uc.workAreaFor(pass, prev), pass.settings.Gap)
		if layout.CountOverlaps(prev, others) == 0 {
			return prev
		}
	}
	return layout.ResolveOverlaps(dropped, others, uc.workAreaFor(pass, dropped), pass.settings.Gap)
}

// handleResize reacts to a panel changing size.
func (uc *ArrangePanelsUseCase) handleResize(pass *layoutPass, p port.Panel) {
	id := p.ID()
	current, ok := uc.safeBounds(p)
	if !ok {
		return
	}

	if prev, had := uc.lastBounds[id]; had && math.Abs(current.Height-prev.Height) > resizeEpsilon {
		uc.attachImpactedBelow(pass, id, prev, current)
		uc.propagate(pass, id)
	}

	if p.Traits().HeightConstrained {
		uc.write(pass, p, layout.ClampToWorkArea(current, uc.workAreaFor(pass, current), pass.settings.Gap))
	} else {
		uc.applyLiveLayout(pass, p, uc.descendants(id))
	}

	if after, ok := uc.safeBounds(p); ok && math.Abs(after.Bottom()-current.Bottom()) > resizeEpsilon {
		uc.propagate(pass, id)
	}

	uc.refreshHeightConstraints(pass)
	uc.rebuildGraph(pass)
	uc.snapshotAll()
}

// settle runs the post-placement sequence shared by drops, finished animations
// and newly shown panels.
func (uc *ArrangePanelsUseCase) settle(pass *layoutPass, p port.Panel) {
	uc.refreshHeightConstraints(pass)
	uc.propagate(pass, p.ID())
	uc.rebuildGraph(pass)
	uc.snapshotAll()
}

// refreshHeightConstraints republishes the height ceiling of every visible
// height-constrained panel.
func (uc *ArrangePanelsUseCase) refreshHeightConstraints(pass *layoutPass) {
	for _, pp := range uc.placedPanels(pass, "") {
		p := uc.panels[pp.ID]
		if !p.Traits().HeightConstrained {
			continue
		}
		uc.refreshHeightConstraint(pass, p, uc.otherRects(pass, pp.ID, nil))
	}
}

func (uc *ArrangePanelsUseCase) refreshHeightConstraint(pass *layoutPass, p port.Panel, others []entity.Rect) {
	traits := p.Traits()
	if !traits.HeightConstrained {
		return
	}
	r, ok := uc.safeBounds(p)
	if !ok {
		return
	}
	limit := layout.MaxHeight(r, others, uc.workAreaFor(pass, r), pass.settings.Gap, traits.EffectiveMinHeight())
	uc.applying(func() { p.SetMaxHeight(limit) })
}

// snapshot records p's rect as its last clean position. Dragged panels are left
// alone so the pre-drag position survives until the drop.
func (uc *ArrangePanelsUseCase) snapshot(p port.Panel) {
	if !isPlaceable(p) || p.IsDragging() {
		return
	}
	if r, ok := uc.measure(p); ok {
		uc.lastBounds[p.ID()] = r
	}
}

func (uc *ArrangePanelsUseCase) snapshotAll() {
	for _, id := range uc.order {
		uc.snapshot(uc.panels[id])
	}
}
