package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/bnema/floatdock/internal/domain/entity"
)

const maxAnimationMs = 2000

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	if math.IsNaN(config.Layout.Gap) || math.IsInf(config.Layout.Gap, 0) || config.Layout.Gap < 0 {
		validationErrors = append(validationErrors, "layout.gap must be a non-negative number")
	}
	if config.Layout.AnimationMs < 0 || config.Layout.AnimationMs > maxAnimationMs {
		validationErrors = append(validationErrors, fmt.Sprintf("layout.animation_ms must be between 0 and %d", maxAnimationMs))
	}

	switch strings.ToLower(config.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "off":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level must be one of: trace, debug, info, warn, error (got: %s)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be one of: console, json (got: %s)", config.Logging.Format))
	}

	validationErrors = append(validationErrors, validateMonitors(config.Monitors)...)
	validationErrors = append(validationErrors, validatePanels(config.Panels)...)

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, "; "))
	}
	return nil
}

func validateMonitors(monitors []MonitorConfig) []string {
	var errs []string
	primaries := 0
	for i, m := range monitors {
		name := m.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if m.Width <= 0 || m.Height <= 0 {
			errs = append(errs, fmt.Sprintf("monitors[%s] must have a positive width and height", name))
			continue
		}
		if m.ReservedTop < 0 || m.ReservedBottom < 0 || m.ReservedLeft < 0 || m.ReservedRight < 0 {
			errs = append(errs, fmt.Sprintf("monitors[%s] reserved edges must be non-negative", name))
		}
		if !m.WorkArea().HasArea() {
			errs = append(errs, fmt.Sprintf("monitors[%s] reserved edges leave no work area", name))
		}
		if m.Primary {
			primaries++
		}
	}
	if primaries > 1 {
		errs = append(errs, "only one monitor can be primary")
	}
	return errs
}

func validatePanels(panels map[string]PanelConfig) []string {
	ids := make([]string, 0, len(panels))
	for id := range panels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var errs []string
	for _, id := range ids {
		p := panels[id]
		if !entity.PanelKind(p.Kind).IsKnown() {
			errs = append(errs, fmt.Sprintf("panels.%s.kind must be one of: search, launcher, timer, tasks, documents (got: %s)", id, p.Kind))
		}
		if p.Width < 0 || p.Height < 0 {
			errs = append(errs, fmt.Sprintf("panels.%s size must be non-negative", id))
		}
	}
	return errs
}
