// Package display implements port.ScreenQuery over a fixed monitor topology.
package display

import (
	"errors"
	"fmt"

	"github.com/bnema/floatdock/internal/application/port"
	"github.com/bnema/floatdock/internal/domain/entity"
)

var (
	// ErrNoMonitors is returned when a topology has no monitor at all.
	ErrNoMonitors = errors.New("no monitors configured")
	// ErrInvalidMonitor is returned for a monitor without a usable work area.
	ErrInvalidMonitor = errors.New("invalid monitor")
	// ErrPointOffscreen is returned when no monitor contains the queried point.
	ErrPointOffscreen = errors.New("point is not on any monitor")
)

// Monitor is one output of the display topology.
type Monitor struct {
	Name string
	// Bounds is the full output rectangle. Zero means same as WorkArea.
	Bounds entity.Rect
	// WorkArea excludes panels, docks and other reserved edges.
	WorkArea entity.Rect
	Primary  bool
}

// Screen answers work-area queries for a static set of monitors.
type Screen struct {
	monitors []Monitor
	primary  int
}

var _ port.ScreenQuery = (*Screen)(nil)

// NewScreen validates monitors and picks the primary one: the first flagged
// Primary, else the first monitor.
func NewScreen(monitors []Monitor) (*Screen, error) {
	if len(monitors) == 0 {
		return nil, ErrNoMonitors
	}

	s := &Screen{monitors: make([]Monitor, len(monitors)), primary: -1}
	for i, m := range monitors {
		if !m.WorkArea.HasArea() || !m.WorkArea.IsFinite() {
			return nil, fmt.Errorf("%w: %q has no work area", ErrInvalidMonitor, m.Name)
		}
		if !m.Bounds.HasArea() {
			m.Bounds = m.WorkArea
		}
		if m.Primary && s.primary < 0 {
			s.primary = i
		}
		s.monitors[i] = m
	}
	if s.primary < 0 {
		s.primary = 0
	}
	return s, nil
}

// SingleMonitor returns a screen with one primary monitor covering r.
func SingleMonitor(r entity.Rect) *Screen {
	return &Screen{monitors: []Monitor{{Name: "default", Bounds: r, WorkArea: r, Primary: true}}}
}

// WorkAreaAt implements port.ScreenQuery.
func (s *Screen) WorkAreaAt(p entity.Point) (entity.Rect, error) {
	for _, m := range s.monitors {
		if m.Bounds.Contains(p) {
			return m.WorkArea, nil
		}
	}
	return entity.Rect{}, fmt.Errorf("%w: (%.0f, %.0f)", ErrPointOffscreen, p.X, p.Y)
}

// PrimaryWorkArea implements port.ScreenQuery.
func (s *Screen) PrimaryWorkArea() entity.Rect {
	return s.monitors[s.primary].WorkArea
}

// Monitors returns a copy of the topology.
func (s *Screen) Monitors() []Monitor {
	out := make([]Monitor, len(s.monitors))
	copy(out, s.monitors)
	return out
}

// Primary returns the primary monitor.
func (s *Screen) Primary() Monitor {
	return s.monitors[s.primary]
}
