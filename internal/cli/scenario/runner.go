package scenario

import (
	"context"
	"fmt"
	"math"

	"github.com/bnema/floatdock/internal/application/port"
	"github.com/bnema/floatdock/internal/application/usecase"
	"github.com/bnema/floatdock/internal/domain/entity"
	"github.com/bnema/floatdock/internal/infrastructure/config"
	"github.com/bnema/floatdock/internal/infrastructure/display"
	"github.com/bnema/floatdock/internal/infrastructure/virtualpanel"
	"github.com/bnema/floatdock/internal/logging"
	"github.com/bnema/floatdock/internal/ui/mainloop"
)

const (
	defaultMaxTicks = 1000
	expectEpsilon   = 0.5
)

// Options configures a run.
type Options struct {
	// Settings are the layout settings before the scenario's own overrides.
	// The zero value means entity.DefaultLayoutSettings.
	Settings entity.LayoutSettings
	// Monitors is used when the scenario declares none.
	Monitors []config.MonitorConfig
	// MaxTicks bounds the animation drain after each step. Zero means 1000.
	MaxTicks int
}

// PanelState is the final state of one panel.
type PanelState struct {
	ID        entity.PanelID   `yaml:"id" json:"id"`
	Kind      entity.PanelKind `yaml:"kind" json:"kind"`
	Rect      entity.Rect      `yaml:"rect" json:"rect"`
	Visible   bool             `yaml:"visible" json:"visible"`
	Closed    bool             `yaml:"closed,omitempty" json:"closed,omitempty"`
	MaxHeight float64          `yaml:"max_height,omitempty" json:"max_height,omitempty"`
	Anchor    entity.PanelID   `yaml:"anchor,omitempty" json:"anchor,omitempty"`
	Writes    int              `yaml:"writes" json:"writes"`
}

// Result is the outcome of a run.
type Result struct {
	Name     string       `yaml:"name,omitempty" json:"name,omitempty"`
	Steps    int          `yaml:"steps" json:"steps"`
	Ticks    int          `yaml:"ticks" json:"ticks"`
	Panels   []PanelState `yaml:"panels" json:"panels"`
	Failures []string     `yaml:"failures,omitempty" json:"failures,omitempty"`
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

// Panel returns the state of the panel with the given id.
func (r *Result) Panel(id entity.PanelID) (PanelState, bool) {
	for _, p := range r.Panels {
		if p.ID == id {
			return p, true
		}
	}
	return PanelState{}, false
}

type settingsBox struct {
	settings entity.LayoutSettings
}

func (b *settingsBox) LayoutSettings() entity.LayoutSettings { return b.settings }

type runner struct {
	uc        *usecase.ArrangePanelsUseCase
	desk      *virtualpanel.Desk
	scheduler *mainloop.ManualScheduler
	settings  *settingsBox
	sizes     map[entity.PanelID]entity.Rect
	maxTicks  int
	ticks     int
}

// Run replays s on a fresh simulated desk and returns the final state.
// Animations are drained after every step unless the step holds them.
func Run(ctx context.Context, s *Scenario, opts Options) (*Result, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil scenario", ErrInvalidScenario)
	}
	ctx = logging.WithComponent(ctx, "scenario")
	log := logging.FromContext(ctx)

	monitors := s.Monitors
	if len(monitors) == 0 {
		monitors = opts.Monitors
	}
	screen, err := display.FromConfig(monitors)
	if err != nil {
		return nil, fmt.Errorf("failed to build screen: %w", err)
	}

	base := opts.Settings
	if base == (entity.LayoutSettings{}) {
		base = entity.DefaultLayoutSettings()
	}

	r := &runner{
		scheduler: mainloop.NewManualScheduler(),
		settings:  &settingsBox{settings: s.Layout.Apply(base)},
		sizes:     make(map[entity.PanelID]entity.Rect, len(s.Panels)),
		maxTicks:  opts.MaxTicks,
	}
	if r.maxTicks <= 0 {
		r.maxTicks = defaultMaxTicks
	}
	r.uc = usecase.NewArrangePanelsUseCase(usecase.ArrangePanelsOptions{
		Screen:    screen,
		Settings:  r.settings,
		Scheduler: r.scheduler,
	})
	r.desk = virtualpanel.NewDesk(ctx, r.uc)

	handles := make([]port.Panel, 0, len(s.Panels))
	for _, spec := range s.Panels {
		p := r.newPanel(spec)
		if err := r.desk.Add(p); err != nil {
			return nil, err
		}
		handles = append(handles, p)
	}
	r.uc.Register(handles...)
	r.uc.RefreshAllLayouts(ctx)

	for i, st := range s.Steps {
		log.Debug().Int("step", i).Str("action", string(st.Action)).Str("panel", st.Panel).Msg("scenario step")
		if err := r.step(ctx, st); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, st.Action, err)
		}
		if !st.Hold && st.Action != ActionTick {
			r.ticks += r.scheduler.Drain(r.maxTicks)
		}
	}

	result := r.result(s)
	result.Failures = checkExpectations(s.Expect, result)
	return result, nil
}

func (r *runner) newPanel(spec PanelSpec) *virtualpanel.Panel {
	traits := entity.DefaultTraits(entity.PanelKind(spec.Kind))
	size := entity.NewRect(spec.X, spec.Y, spec.Width, spec.Height)
	if size.Width <= 0 {
		size.Width = traits.NominalWidth
	}
	if size.Height <= 0 {
		size.Height = traits.NominalHeight
	}
	r.sizes[entity.PanelID(spec.ID)] = size

	initial := size
	if spec.Unrendered {
		initial.Width, initial.Height = 0, 0
	}
	p := virtualpanel.New(entity.PanelID(spec.ID), traits, initial)
	// Not bound yet, so these do not notify.
	if spec.Hidden {
		p.Hide()
	}
	if spec.Unloaded {
		p.SetLoaded(false)
	}
	return p
}

func (r *runner) step(ctx context.Context, st Step) error {
	switch st.Action {
	case ActionSettings:
		r.settings.settings = st.Layout.Apply(r.settings.settings)
		r.uc.RefreshAllLayouts(ctx)
		return nil
	case ActionRefresh:
		r.uc.RefreshAllLayouts(ctx)
		return nil
	case ActionTick:
		n := st.Ticks
		if n == 0 {
			n = 1
		}
		for range n {
			r.scheduler.Tick()
			r.ticks++
		}
		return nil
	}

	p, err := r.desk.Get(entity.PanelID(st.Panel))
	if err != nil {
		return err
	}

	switch st.Action {
	case ActionMove:
		p.UserMove(*st.X, *st.Y)
	case ActionDrag:
		p.DragTo(*st.X, *st.Y)
	case ActionRelease:
		p.EndDrag()
	case ActionResize:
		cur := p.Rect()
		w, h := st.Width, st.Height
		if w <= 0 {
			w = cur.Width
		}
		if h <= 0 {
			h = cur.Height
		}
		p.UserResize(w, h)
	case ActionRender:
		size := r.sizes[p.ID()]
		w, h := st.Width, st.Height
		if w <= 0 {
			w = size.Width
		}
		if h <= 0 {
			h = size.Height
		}
		cur := p.Rect()
		p.Render(entity.NewRect(cur.Left, cur.Top, w, h))
	case ActionShow:
		p.Show()
	case ActionHide:
		p.Hide()
	case ActionLoad:
		p.SetLoaded(true)
	case ActionClose:
		p.Close()
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidScenario, st.Action)
	}
	return nil
}

func (r *runner) result(s *Scenario) *Result {
	res := &Result{Name: s.Name, Steps: len(s.Steps), Ticks: r.ticks}
	for _, p := range r.desk.Panels() {
		state := PanelState{
			ID:        p.ID(),
			Kind:      p.Traits().Kind,
			Rect:      p.Rect(),
			Visible:   p.IsVisible(),
			Closed:    p.IsClosed(),
			MaxHeight: p.MaxHeight(),
			Writes:    p.Writes(),
		}
		if anchor, ok := r.uc.AnchorOf(p.ID()); ok {
			state.Anchor = anchor
		}
		res.Panels = append(res.Panels, state)
	}
	return res
}

func checkExpectations(expect []Expectation, res *Result) []string {
	var failures []string
	for _, e := range expect {
		state, ok := res.Panel(entity.PanelID(e.Panel))
		if !ok {
			failures = append(failures, fmt.Sprintf("panel %s: not on the desk", e.Panel))
			continue
		}
		failures = appendMismatch(failures, e.Panel, "left", e.Left, state.Rect.Left)
		failures = appendMismatch(failures, e.Panel, "top", e.Top, state.Rect.Top)
		failures = appendMismatch(failures, e.Panel, "width", e.Width, state.Rect.Width)
		failures = appendMismatch(failures, e.Panel, "height", e.Height, state.Rect.Height)
		if e.Anchor != nil && string(state.Anchor) != *e.Anchor {
			failures = append(failures, fmt.Sprintf("panel %s: anchor = %q, want %q", e.Panel, state.Anchor, *e.Anchor))
		}
		if e.Visible != nil && state.Visible != *e.Visible {
			failures = append(failures, fmt.Sprintf("panel %s: visible = %t, want %t", e.Panel, state.Visible, *e.Visible))
		}
	}
	return failures
}

func appendMismatch(failures []string, panel, field string, want *float64, got float64) []string {
	if want == nil || math.Abs(*want-got) <= expectEpsilon {
		return failures
	}
	return append(failures, fmt.Sprintf("panel %s: %s = %g, want %g", panel, field, got, *want))
}
