// Package scenario replays scripted user actions against the layout
// coordinator on a simulated desk and reports where every panel ended up.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/bnema/floatdock/internal/domain/entity"
	"github.com/bnema/floatdock/internal/infrastructure/config"
)

// ErrInvalidScenario wraps every validation failure of a scenario file.
var ErrInvalidScenario = errors.New("invalid scenario")

// Action names a scripted step.
type Action string

const (
	ActionMove     Action = "move"
	ActionDrag     Action = "drag"
	ActionRelease  Action = "release"
	ActionResize   Action = "resize"
	ActionRender   Action = "render"
	ActionShow     Action = "show"
	ActionHide     Action = "hide"
	ActionLoad     Action = "load"
	ActionClose    Action = "close"
	ActionSettings Action = "settings"
	ActionRefresh  Action = "refresh"
	ActionTick     Action = "tick"
)

// Scenario is the content of a scenario file.
type Scenario struct {
	Name string `yaml:"name"`

	// Layout overrides the settings the runner starts from.
	Layout   *LayoutOverrides       `yaml:"layout,omitempty"`
	Monitors []config.MonitorConfig `yaml:"monitors,omitempty"`
	Panels   []PanelSpec            `yaml:"panels"`
	Steps    []Step                 `yaml:"steps"`
	Expect   []Expectation          `yaml:"expect,omitempty"`
}

// LayoutOverrides changes individual layout settings. Nil fields keep the
// current value.
type LayoutOverrides struct {
	FreePlacement     *bool    `yaml:"free_placement,omitempty"`
	Gap               *float64 `yaml:"gap,omitempty"`
	OverlapPrevention *bool    `yaml:"overlap_prevention,omitempty"`
	AnimationMs       *int     `yaml:"animation_ms,omitempty"`
}

// Apply returns s with the overrides applied.
func (o *LayoutOverrides) Apply(s entity.LayoutSettings) entity.LayoutSettings {
	if o == nil {
		return s
	}
	if o.FreePlacement != nil {
		s.FreePlacement = *o.FreePlacement
	}
	if o.Gap != nil {
		s.Gap = *o.Gap
	}
	if o.OverlapPrevention != nil {
		s.OverlapPrevention = *o.OverlapPrevention
	}
	if o.AnimationMs != nil {
		s.AnimationDuration = time.Duration(*o.AnimationMs) * time.Millisecond
	}
	return s
}

// PanelSpec places one panel on the desk before the first step.
type PanelSpec struct {
	// ID defaults to "<kind>-<random>".
	ID   string  `yaml:"id,omitempty"`
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`

	// Width and Height default to the nominal size of the kind.
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`

	Hidden bool `yaml:"hidden,omitempty"`
	// Unloaded panels are ignored by the layout until a load step.
	Unloaded bool `yaml:"unloaded,omitempty"`
	// Unrendered panels report no geometry until a render step.
	Unrendered bool `yaml:"unrendered,omitempty"`
}

// Step is one scripted action.
type Step struct {
	Action Action `yaml:"action"`
	Panel  string `yaml:"panel,omitempty"`

	X      *float64 `yaml:"x,omitempty"`
	Y      *float64 `yaml:"y,omitempty"`
	Width  float64  `yaml:"width,omitempty"`
	Height float64  `yaml:"height,omitempty"`

	Layout *LayoutOverrides `yaml:"layout,omitempty"`

	// Ticks is the number of scheduler ticks run by a tick step.
	Ticks int `yaml:"ticks,omitempty"`

	// Hold leaves running animations in flight after the step.
	Hold bool `yaml:"hold,omitempty"`
}

// Expectation checks the final state of one panel. Nil fields are not checked.
type Expectation struct {
	Panel   string   `yaml:"panel"`
	Left    *float64 `yaml:"left,omitempty"`
	Top     *float64 `yaml:"top,omitempty"`
	Width   *float64 `yaml:"width,omitempty"`
	Height  *float64 `yaml:"height,omitempty"`
	Anchor  *string  `yaml:"anchor,omitempty"`
	Visible *bool    `yaml:"visible,omitempty"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scenario. Unknown keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	s.normalize()
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) normalize() {
	for i := range s.Panels {
		p := &s.Panels[i]
		p.Kind = strings.ToLower(strings.TrimSpace(p.Kind))
		if p.ID == "" {
			p.ID = p.Kind + "-" + uuid.NewString()[:8]
		}
	}
	for i := range s.Steps {
		s.Steps[i].Action = Action(strings.ToLower(strings.TrimSpace(string(s.Steps[i].Action))))
	}
}

func (s *Scenario) validate() error {
	var errs []string

	ids := make(map[string]bool, len(s.Panels))
	for i, p := range s.Panels {
		if !entity.PanelKind(p.Kind).IsKnown() {
			errs = append(errs, fmt.Sprintf("panels[%d].kind %q is not a panel kind", i, p.Kind))
		}
		if ids[p.ID] {
			errs = append(errs, fmt.Sprintf("panels[%d].id %q is used twice", i, p.ID))
		}
		ids[p.ID] = true
		if p.Width < 0 || p.Height < 0 {
			errs = append(errs, fmt.Sprintf("panels[%d] size must be non-negative", i))
		}
	}

	for i, st := range s.Steps {
		errs = append(errs, st.validate(i, ids)...)
	}
	for i, e := range s.Expect {
		if !ids[e.Panel] {
			errs = append(errs, fmt.Sprintf("expect[%d] references unknown panel %q", i, e.Panel))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidScenario, strings.Join(errs, "; "))
	}
	return nil
}

func (st Step) validate(i int, ids map[string]bool) []string {
	var errs []string
	needsPanel := true

	switch st.Action {
	case ActionMove, ActionDrag:
		if st.X == nil || st.Y == nil {
			errs = append(errs, fmt.Sprintf("steps[%d] %s needs x and y", i, st.Action))
		}
	case ActionResize:
		if st.Width <= 0 && st.Height <= 0 {
			errs = append(errs, fmt.Sprintf("steps[%d] resize needs width or height", i))
		}
	case ActionRelease, ActionRender, ActionShow, ActionHide, ActionLoad, ActionClose:
	case ActionSettings:
		needsPanel = false
		if st.Layout == nil {
			errs = append(errs, fmt.Sprintf("steps[%d] settings needs a layout block", i))
		}
	case ActionRefresh:
		needsPanel = false
	case ActionTick:
		needsPanel = false
		if st.Ticks < 0 {
			errs = append(errs, fmt.Sprintf("steps[%d] ticks must be non-negative", i))
		}
	default:
		return []string{fmt.Sprintf("steps[%d] has unknown action %q", i, st.Action)}
	}

	if needsPanel && !ids[st.Panel] {
		errs = append(errs, fmt.Sprintf("steps[%d] %s references unknown panel %q", i, st.Action, st.Panel))
	}
	return errs
}
