// Package preview drives a simulated desk from the terminal: a Host owns the
// layout engine on the main loop and publishes frames to a bubbletea Model.
package preview

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bnema/floatdock/internal/application/port"
	"github.com/bnema/floatdock/internal/application/usecase"
	"github.com/bnema/floatdock/internal/domain/entity"
	"github.com/bnema/floatdock/internal/infrastructure/config"
	"github.com/bnema/floatdock/internal/infrastructure/display"
	"github.com/bnema/floatdock/internal/infrastructure/virtualpanel"
	"github.com/bnema/floatdock/internal/logging"
)

const (
	// MoveStep is how far one arrow key press moves a panel, in pixels.
	MoveStep = 24.0
	// ResizeStep is how much one grow or shrink press changes the height.
	ResizeStep = 40.0

	minResizeHeight = 40.0
)

// FramePanel is one panel as seen by the view.
type FramePanel struct {
	ID       entity.PanelID
	Kind     entity.PanelKind
	Rect     entity.Rect
	Visible  bool
	Dragging bool
	Anchor   entity.PanelID
}

// Frame is an immutable snapshot of the desk.
type Frame struct {
	Area     entity.Rect
	Settings entity.LayoutSettings
	Panels   []FramePanel
}

// Panel returns the panel with the given id.
func (f Frame) Panel(id entity.PanelID) (FramePanel, bool) {
	for _, p := range f.Panels {
		if p.ID == id {
			return p, true
		}
	}
	return FramePanel{}, false
}

// FrameMsg carries a new frame to the model.
type FrameMsg Frame

// StatusMsg is a one-line message for the status bar.
type StatusMsg string

// settingsOverlay layers the preview's free placement toggle over the
// configured settings.
type settingsOverlay struct {
	base port.LayoutSettingsProvider

	mu   sync.Mutex
	free *bool
}

func (s *settingsOverlay) LayoutSettings() entity.LayoutSettings {
	settings := s.base.LayoutSettings()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.free != nil {
		settings.FreePlacement = *s.free
	}
	return settings
}

func (s *settingsOverlay) toggleFree() bool {
	current := s.LayoutSettings().FreePlacement
	s.mu.Lock()
	defer s.mu.Unlock()
	next := !current
	s.free = &next
	return next
}

// HostOptions configures a Host.
type HostOptions struct {
	// Post runs fn on the goroutine owning the layout engine.
	Post      func(func()) bool
	Scheduler port.Scheduler
	Settings  port.LayoutSettingsProvider
	Monitors  []config.MonitorConfig
	Panels    map[string]config.PanelConfig
	// Bounds is optional. When set, saved positions override Panels at start
	// unless SkipRestore is set.
	Bounds      port.BoundsStore
	SkipRestore bool
	// Publish receives frames and status messages on the loop goroutine. It
	// must not block; wrap tea.Program.Send in a Relay.
	Publish func(any)
}

// Host owns the simulated desk. Every method posts its work so the engine only
// ever runs on one goroutine.
type Host struct {
	ctx      context.Context
	post     func(func()) bool
	uc       *usecase.ArrangePanelsUseCase
	desk     *virtualpanel.Desk
	area     entity.Rect
	settings *settingsOverlay
	bounds   port.BoundsStore
	publish  func(any)
}

// NewHost builds the desk and registers its panels. It does not lay them out;
// call Start once the loop runs.
func NewHost(ctx context.Context, opts HostOptions) (*Host, error) {
	if opts.Post == nil || opts.Scheduler == nil || opts.Settings == nil {
		return nil, fmt.Errorf("preview host needs a post function, a scheduler and settings")
	}
	screen, err := display.FromConfig(opts.Monitors)
	if err != nil {
		return nil, err
	}

	ctx = logging.WithComponent(ctx, "preview")
	h := &Host{
		ctx:      ctx,
		post:     opts.Post,
		area:     screen.PrimaryWorkArea(),
		settings: &settingsOverlay{base: opts.Settings},
		bounds:   opts.Bounds,
		publish:  opts.Publish,
	}

	// Animation ticks publish the frame they produce.
	h.uc = usecase.NewArrangePanelsUseCase(usecase.ArrangePanelsOptions{
		Screen:    screen,
		Settings:  h.settings,
		Scheduler: publishingScheduler{inner: opts.Scheduler, after: h.publishFrame},
	})
	h.desk = virtualpanel.NewDesk(ctx, h.uc)

	panels := opts.Panels
	if len(panels) == 0 {
		panels = config.DefaultPanels()
	}
	saved := map[entity.PanelID]port.SavedBounds{}
	if !opts.SkipRestore {
		saved = h.loadSaved()
	}

	ids := make([]string, 0, len(panels))
	for id := range panels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	handles := make([]port.Panel, 0, len(ids))
	for _, id := range ids {
		pc := panels[id]
		kind := entity.PanelKind(pc.Kind)
		r, visible := pc.Rect(), pc.Visible
		if s, ok := saved[entity.PanelID(id)]; ok && s.Kind == kind {
			r, visible = s.Rect, s.Visible
		}
		p := virtualpanel.New(entity.PanelID(id), entity.DefaultTraits(kind), r)
		if !visible {
			p.Hide()
		}
		if err := h.desk.Add(p); err != nil {
			return nil, err
		}
		handles = append(handles, p)
	}
	h.uc.Register(handles...)
	return h, nil
}

func (h *Host) loadSaved() map[entity.PanelID]port.SavedBounds {
	out := map[entity.PanelID]port.SavedBounds{}
	if h.bounds == nil {
		return out
	}
	list, err := h.bounds.List(h.ctx)
	if err != nil {
		logging.FromContext(h.ctx).Warn().Err(err).Msg("failed to load saved bounds")
		return out
	}
	for _, b := range list {
		out[b.PanelID] = b
	}
	return out
}

func (h *Host) send(msg any) {
	if h.publish != nil {
		h.publish(msg)
	}
}

// do runs fn on the loop and publishes the resulting frame.
func (h *Host) do(fn func()) {
	h.post(func() {
		fn()
		h.publishFrame()
	})
}

// Start lays out every panel once.
func (h *Host) Start() {
	h.do(func() { h.uc.RefreshAllLayouts(h.ctx) })
}

// Refresh re-lays out every panel with the current settings.
func (h *Host) Refresh() {
	h.do(func() { h.uc.RefreshAllLayouts(h.ctx) })
}

// ToggleFreePlacement flips free placement for this session and re-lays out.
func (h *Host) ToggleFreePlacement() {
	h.do(func() {
		on := h.settings.toggleFree()
		h.uc.RefreshAllLayouts(h.ctx)
		h.send(StatusMsg(fmt.Sprintf("free placement %s", onOff(on))))
	})
}

// Move moves a panel by (dx, dy). A grabbed panel is dragged instead.
func (h *Host) Move(id entity.PanelID, dx, dy float64) {
	h.withPanel(id, func(p *virtualpanel.Panel) {
		r := p.Rect()
		if p.IsDragging() {
			p.DragTo(r.Left+dx, r.Top+dy)
			return
		}
		p.UserMove(r.Left+dx, r.Top+dy)
	})
}

// Grab starts a drag on a panel.
func (h *Host) Grab(id entity.PanelID) {
	h.withPanel(id, func(p *virtualpanel.Panel) { p.BeginDrag() })
}

// Drop releases a dragged panel.
func (h *Host) Drop(id entity.PanelID) {
	h.withPanel(id, func(p *virtualpanel.Panel) {
		if p.IsDragging() {
			p.EndDrag()
		}
	})
}

// Resize changes a panel's height by dh.
func (h *Host) Resize(id entity.PanelID, dh float64) {
	h.withPanel(id, func(p *virtualpanel.Panel) {
		r := p.Rect()
		height := max(r.Height+dh, minResizeHeight)
		p.UserResize(r.Width, height)
	})
}

// ToggleVisible shows a hidden panel or hides a visible one.
func (h *Host) ToggleVisible(id entity.PanelID) {
	h.withPanel(id, func(p *virtualpanel.Panel) {
		if p.IsVisible() {
			p.Hide()
			return
		}
		p.Show()
	})
}

// Save stores the bounds of every open panel.
func (h *Host) Save() {
	h.post(func() {
		if h.bounds == nil {
			h.send(StatusMsg("no bounds store configured"))
			return
		}
		n := 0
		for _, p := range h.desk.Open() {
			err := h.bounds.Save(h.ctx, port.SavedBounds{
				PanelID: p.ID(),
				Kind:    p.Traits().Kind,
				Rect:    p.Rect(),
				Visible: p.IsVisible(),
			})
			if err != nil {
				logging.FromContext(h.ctx).Warn().Err(err).Str("panel", string(p.ID())).Msg("failed to save bounds")
				continue
			}
			n++
		}
		h.send(StatusMsg(fmt.Sprintf("saved %d panel position(s)", n)))
	})
}

func (h *Host) withPanel(id entity.PanelID, fn func(p *virtualpanel.Panel)) {
	h.do(func() {
		p, err := h.desk.Get(id)
		if err != nil {
			h.send(StatusMsg(err.Error()))
			return
		}
		fn(p)
	})
}

// Snapshot builds the current frame. It must run on the loop.
func (h *Host) Snapshot() Frame {
	f := Frame{Area: h.area, Settings: h.settings.LayoutSettings()}
	for _, p := range h.desk.Open() {
		fp := FramePanel{
			ID:       p.ID(),
			Kind:     p.Traits().Kind,
			Rect:     p.Rect(),
			Visible:  p.IsVisible(),
			Dragging: p.IsDragging(),
		}
		if anchor, ok := h.uc.AnchorOf(p.ID()); ok {
			fp.Anchor = anchor
		}
		f.Panels = append(f.Panels, fp)
	}
	return f
}

func (h *Host) publishFrame() {
	h.send(FrameMsg(h.Snapshot()))
}

// publishingScheduler calls after once per tick.
type publishingScheduler struct {
	inner port.Scheduler
	after func()
}

func (s publishingScheduler) Every(interval time.Duration, fn func() bool) port.CancelFunc {
	return s.inner.Every(interval, func() bool {
		more := fn()
		s.after()
		return more
	})
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
