package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/floatdock/internal/application/port"
	"github.com/bnema/floatdock/internal/domain/entity"
	"github.com/bnema/floatdock/internal/domain/layout"
	"github.com/bnema/floatdock/internal/logging"
)

// LayoutPhase tells whether the coordinator is currently writing panel geometry.
type LayoutPhase string

const (
	// PhaseIdle means geometry events come from the user or the windowing system.
	PhaseIdle LayoutPhase = "idle"
	// PhaseApplying means the coordinator itself is moving or resizing a panel;
	// geometry events received in this phase are echoes of its own writes.
	PhaseApplying LayoutPhase = "applying"
)

// ArrangePanelsOptions wires the collaborators of the layout coordinator.
type ArrangePanelsOptions struct {
	Screen   port.ScreenQuery
	Settings port.LayoutSettingsProvider
	// Scheduler drives drop-recovery animations. Without one, recoveries jump
	// straight to their target.
	Scheduler port.Scheduler
	// Logger resolves the logger for an operation. Defaults to logging.FromContext.
	Logger port.LoggerFromContext
}

// ArrangePanelsUseCase is the free-placement layout coordinator.
//
// It is not safe for concurrent use: every method must be called from the UI
// event loop, which is also where the scheduler runs animation ticks.
type ArrangePanelsUseCase struct {
	screen    port.ScreenQuery
	settings  port.LayoutSettingsProvider
	scheduler port.Scheduler
	logger    port.LoggerFromContext

	panels map[entity.PanelID]port.Panel
	order  []entity.PanelID

	forest     *layout.Forest
	lastBounds map[entity.PanelID]entity.Rect
	animations map[entity.PanelID]*dropAnimation

	phase         LayoutPhase
	applyDepth    int
	freePlacement bool
}

var _ port.PanelObserver = (*ArrangePanelsUseCase)(nil)

// NewArrangePanelsUseCase creates a layout coordinator.
func NewArrangePanelsUseCase(opts ArrangePanelsOptions) *ArrangePanelsUseCase {
	logger := opts.Logger
	if logger == nil {
		logger = logging.FromContext
	}
	settings := opts.Settings
	if settings == nil {
		settings = port.StaticLayoutSettings(entity.DefaultLayoutSettings())
	}

	return &ArrangePanelsUseCase{
		screen:     opts.Screen,
		settings:   settings,
		scheduler:  opts.Scheduler,
		logger:     logger,
		panels:     make(map[entity.PanelID]port.Panel),
		forest:     layout.NewForest(),
		lastBounds: make(map[entity.PanelID]entity.Rect),
		animations: make(map[entity.PanelID]*dropAnimation),
		phase:      PhaseIdle,
	}
}

// Register adds panels to the managed set. Event handlers register unknown
// panels on the fly, so calling Register is only needed to make a panel count
// as a neighbour before it produced any event.
func (uc *ArrangePanelsUseCase) Register(panels ...port.Panel) {
	for _, p := range panels {
		uc.track(p)
	}
}

// Phase returns the current layout phase.
func (uc *ArrangePanelsUseCase) Phase() LayoutPhase { return uc.phase }

// AnchorOf returns the panel id is attached below, if any.
func (uc *ArrangePanelsUseCase) AnchorOf(id entity.PanelID) (entity.PanelID, bool) {
	return uc.forest.AnchorOf(id)
}

// FollowersOf returns the panels attached directly below id.
func (uc *ArrangePanelsUseCase) FollowersOf(id entity.PanelID) []entity.PanelID {
	return uc.forest.FollowersOf(id)
}

// Attachments returns a copy of the follower→anchor edges.
func (uc *ArrangePanelsUseCase) Attachments() map[entity.PanelID]entity.PanelID {
	return uc.forest.Edges()
}

// LastBounds returns the last clean rectangle recorded for id.
func (uc *ArrangePanelsUseCase) LastBounds(id entity.PanelID) (entity.Rect, bool) {
	r, ok := uc.lastBounds[id]
	return r, ok
}

// IsAnimating reports whether a drop-recovery animation is running for id.
func (uc *ArrangePanelsUseCase) IsAnimating(id entity.PanelID) bool {
	_, ok := uc.animations[id]
	return ok
}

// OnPanelMoved handles a position change reported by the windowing layer.
func (uc *ArrangePanelsUseCase) OnPanelMoved(ctx context.Context, p port.Panel) {
	if p == nil {
		return
	}
	defer uc.recoverOperation(ctx, "moved", uc.applyDepth)
	uc.track(p)

	if uc.phase == PhaseApplying {
		uc.snapshot(p)
		return
	}

	pass := uc.newPass(ctx)
	if !pass.settings.FreePlacement || !isPlaceable(p) {
		uc.snapshot(p)
		return
	}

	if p.IsDragging() {
		uc.clampWhileDragging(pass, p)
		return
	}
	uc.handleDrop(pass, p)
}

// OnDragReleased handles the end of a pointer drag, including loss of capture.
func (uc *ArrangePanelsUseCase) OnDragReleased(ctx context.Context, p port.Panel) {
	if p == nil {
		return
	}
	defer uc.recoverOperation(ctx, "drag_released", uc.applyDepth)
	uc.track(p)

	if uc.phase == PhaseApplying {
		return
	}
	pass := uc.newPass(ctx)
	if !pass.settings.FreePlacement || !isPlaceable(p) {
		uc.snapshot(p)
		return
	}
	uc.handleDrop(pass, p)
}

// OnPanelResized handles a size change reported by the windowing layer.
func (uc *ArrangePanelsUseCase) OnPanelResized(ctx context.Context, p port.Panel) {
	if p == nil {
		return
	}
	defer uc.recoverOperation(ctx, "resized", uc.applyDepth)
	uc.track(p)

	if uc.phase == PhaseApplying {
		uc.snapshot(p)
		return
	}

	pass := uc.newPass(ctx)
	if !pass.settings.FreePlacement || !isPlaceable(p) {
		uc.snapshot(p)
		return
	}
	uc.handleResize(pass, p)
}

// OnPanelVisibilityChanged handles a panel being shown, hidden, loaded or
// unloaded. A hidden or unloaded panel keeps no snapshot and no attachments.
func (uc *ArrangePanelsUseCase) OnPanelVisibilityChanged(ctx context.Context, p port.Panel) {
	if p == nil {
		return
	}
	defer uc.recoverOperation(ctx, "visibility_changed", uc.applyDepth)
	uc.track(p)

	if uc.phase == PhaseApplying {
		if !isPlaceable(p) {
			delete(uc.lastBounds, p.ID())
			return
		}
		uc.snapshot(p)
		return
	}

	pass := uc.newPass(ctx)
	if !isPlaceable(p) {
		uc.forget(p.ID())
		if pass.settings.FreePlacement {
			uc.refreshHeightConstraints(pass)
			uc.rebuildGraph(pass)
		}
		return
	}

	if !pass.settings.FreePlacement {
		uc.snapshot(p)
		return
	}
	uc.applyLiveLayout(pass, p, nil)
	uc.settle(pass, p)
}

// OnPanelClosed drops every piece of state held for the panel.
func (uc *ArrangePanelsUseCase) OnPanelClosed(ctx context.Context, p port.Panel) {
	if p == nil {
		return
	}
	defer uc.recoverOperation(ctx, "closed", uc.applyDepth)

	id := p.ID()
	uc.forget(id)
	uc.untrack(id)

	if uc.phase == PhaseApplying {
		return
	}
	pass := uc.newPass(ctx)
	if pass.settings.FreePlacement {
		uc.refreshHeightConstraints(pass)
		uc.rebuildGraph(pass)
	}
}

// ApplyLiveLayout snaps, de-overlaps and constrains a single panel. Hosts call it
// after creating or showing a panel.
func (uc *ArrangePanelsUseCase) ApplyLiveLayout(ctx context.Context, p port.Panel) {
	if p == nil {
		return
	}
	defer uc.recoverOperation(ctx, "apply_live_layout", uc.applyDepth)
	uc.track(p)

	pass := uc.newPass(ctx)
	if !pass.settings.FreePlacement || !isPlaceable(p) {
		uc.snapshot(p)
		return
	}

	uc.applyLiveLayout(pass, p, nil)
	uc.refreshHeightConstraints(pass)
	uc.rebuildGraph(pass)
	uc.snapshotAll()
}

// RefreshAttachmentGraph recomputes every attachment from current geometry.
func (uc *ArrangePanelsUseCase) RefreshAttachmentGraph(ctx context.Context) {
	defer uc.recoverOperation(ctx, "refresh_attachment_graph", uc.applyDepth)

	pass := uc.newPass(ctx)
	if !pass.settings.FreePlacement {
		return
	}
	uc.rebuildGraph(pass)
}

// RefreshAllLayouts re-runs the live layout on every visible panel, top to
// bottom, then rebuilds constraints, attachments and snapshots. Used when the
// configuration changes.
func (uc *ArrangePanelsUseCase) RefreshAllLayouts(ctx context.Context) {
	defer uc.recoverOperation(ctx, "refresh_all_layouts", uc.applyDepth)

	pass := uc.newPass(ctx)
	if !pass.settings.FreePlacement {
		uc.snapshotAll()
		return
	}

	for _, placed := range uc.placedPanels(pass, "") {
		if p, ok := uc.panels[placed.ID]; ok {
			uc.applyLiveLayout(pass, p, nil)
		}
	}
	uc.refreshHeightConstraints(pass)
	uc.rebuildGraph(pass)
	uc.snapshotAll()

	pass.log.Debug().Int("panels", len(uc.order)).Int("attachments", uc.forest.Len()).Msg("refreshed all layouts")
}

// layoutPass is the per-operation context threaded through the coordinator:
// the configuration is read once per pass and never cached across operations.
type layoutPass struct {
	ctx      context.Context
	log      *zerolog.Logger
	logFor   port.LoggerFromContext
	settings entity.LayoutSettings
}

// panelLog returns the pass logger tagged with the panel id.
func (pass *layoutPass) panelLog(id entity.PanelID) *zerolog.Logger {
	return pass.logFor(logging.WithPanelID(pass.ctx, string(id)))
}

func (uc *ArrangePanelsUseCase) newPass(ctx context.Context) *layoutPass {
	settings := uc.settings.LayoutSettings().Normalized()

	if uc.freePlacement && !settings.FreePlacement {
		uc.clearLayoutState()
	}
	uc.freePlacement = settings.FreePlacement

	return &layoutPass{ctx: ctx, log: uc.logger(ctx), logFor: uc.logger, settings: settings}
}

func (pass *layoutPass) arrangeOptions() layout.ArrangeOptions {
	return layout.ArrangeOptions{
		Gap:               pass.settings.Gap,
		Threshold:         pass.settings.SnapThreshold,
		OverlapPrevention: pass.settings.OverlapPrevention,
	}
}

// clearLayoutState drops attachments, snapshots and animations when free
// placement is switched off.
func (uc *ArrangePanelsUseCase) clearLayoutState() {
	for id := range uc.animations {
		uc.cancelAnimation(id)
	}
	uc.forest.Clear()
	uc.lastBounds = make(map[entity.PanelID]entity.Rect)
}

func (uc *ArrangePanelsUseCase) track(p port.Panel) {
	id := p.ID()
	if _, ok := uc.panels[id]; !ok {
		uc.order = append(uc.order, id)
	}
	uc.panels[id] = p
}

func (uc *ArrangePanelsUseCase) untrack(id entity.PanelID) {
	if _, ok := uc.panels[id]; !ok {
		return
	}
	delete(uc.panels, id)
	for i, existing := range uc.order {
		if existing == id {
			uc.order = append(uc.order[:i], uc.order[i+1:]...)
			break
		}
	}
}

// forget purges the transient state of a hidden or closed panel.
func (uc *ArrangePanelsUseCase) forget(id entity.PanelID) {
	uc.cancelAnimation(id)
	uc.forest.Detach(id)
	delete(uc.lastBounds, id)
}

// recoverOperation keeps any failure inside the coordinator. entryDepth is the
// apply depth at the start of the operation so a panic in the middle of a write
// does not leave the coordinator stuck in PhaseApplying.
func (uc *ArrangePanelsUseCase) recoverOperation(ctx context.Context, op string, entryDepth int) {
	r := recover()
	if r == nil {
		return
	}
	uc.applyDepth = entryDepth
	if entryDepth == 0 {
		uc.phase = PhaseIdle
	}
	uc.logger(ctx).Warn().
		Str("op", op).
		Str("panic", fmt.Sprint(r)).
		Msg("layout operation aborted")
}

func isPlaceable(p port.Panel) bool {
	return p.IsVisible() && p.IsLoaded()
}
