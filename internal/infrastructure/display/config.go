package display

import (
	"github.com/bnema/floatdock/internal/infrastructure/config"
)

// FromConfig builds a screen from the monitors section of the config file.
// An empty section yields config.DefaultMonitors.
func FromConfig(monitors []config.MonitorConfig) (*Screen, error) {
	if len(monitors) == 0 {
		monitors = config.DefaultMonitors()
	}
	out := make([]Monitor, 0, len(monitors))
	for _, m := range monitors {
		out = append(out, Monitor{
			Name:     m.Name,
			Bounds:   m.Bounds(),
			WorkArea: m.WorkArea(),
			Primary:  m.Primary,
		})
	}
	return NewScreen(out)
}
