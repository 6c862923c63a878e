package config

import (
	"github.com/bnema/floatdock/internal/domain/entity"
)

// File permission constants
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

const (
	defaultMonitorWidth  = 1920
	defaultMonitorHeight = 1080
	defaultAnimationMs   = 180
)

// DefaultConfig returns the default configuration values for floatdock.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			FreePlacement:     true,
			Gap:               entity.DefaultGap,
			OverlapPrevention: true,
			AnimationMs:       defaultAnimationMs,
		},
		Panels:   DefaultPanels(),
		Monitors: DefaultMonitors(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultMonitors returns a single full-HD primary monitor.
func DefaultMonitors() []MonitorConfig {
	return []MonitorConfig{{
		Name:    "default",
		Width:   defaultMonitorWidth,
		Height:  defaultMonitorHeight,
		Primary: true,
	}}
}

// DefaultPanels returns one panel of every kind, stacked the way a fresh
// install opens them.
func DefaultPanels() map[string]PanelConfig {
	return map[string]PanelConfig{
		"search":    {Kind: string(entity.PanelSearch), X: 640, Y: 8, Visible: true},
		"documents": {Kind: string(entity.PanelDocuments), X: 640, Y: 88, Width: 640, Height: 420, Visible: true},
		"launcher":  {Kind: string(entity.PanelLauncher), X: 8, Y: 8, Visible: true},
		"timer":     {Kind: string(entity.PanelTimer), X: 1692, Y: 8, Visible: true},
		"tasks":     {Kind: string(entity.PanelTasks), X: 1592, Y: 136, Visible: false},
	}
}
