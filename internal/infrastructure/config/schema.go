package config

import (
	"time"

	"github.com/bnema/floatdock/internal/domain/entity"
)

// Config represents the complete configuration for floatdock.
type Config struct {
	// Layout controls the free-placement layout engine.
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout" toml:"layout" json:"layout"`
	// Panels is the initial desk used by the preview host, keyed by panel id.
	Panels map[string]PanelConfig `mapstructure:"panels" yaml:"panels" toml:"panels" json:"panels,omitempty"`
	// Monitors describes the display topology. Empty means one 1920x1080 monitor.
	Monitors []MonitorConfig `mapstructure:"monitors" yaml:"monitors" toml:"monitors" json:"monitors,omitempty"`
	Logging  LoggingConfig   `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
	Database DatabaseConfig  `mapstructure:"database" yaml:"database" toml:"database" json:"database"`
}

// LayoutConfig holds the settings read by the layout engine on every operation.
type LayoutConfig struct {
	// FreePlacement enables snapping, overlap avoidance and attachments.
	FreePlacement bool `mapstructure:"free_placement" yaml:"free_placement" toml:"free_placement" json:"free_placement" jsonschema:"default=true"`
	// Gap is the spacing in pixels kept between panels and screen edges. Values below 4 are raised to 4.
	Gap float64 `mapstructure:"gap" yaml:"gap" toml:"gap" json:"gap" jsonschema:"minimum=0,default=8"`
	// OverlapPrevention pushes dropped panels out of their neighbours.
	OverlapPrevention bool `mapstructure:"overlap_prevention" yaml:"overlap_prevention" toml:"overlap_prevention" json:"overlap_prevention" jsonschema:"default=true"`
	// AnimationMs is the duration of the drop-recovery animation in milliseconds.
	AnimationMs int `mapstructure:"animation_ms" yaml:"animation_ms" toml:"animation_ms" json:"animation_ms" jsonschema:"minimum=0,maximum=2000,default=180"`
}

// PanelConfig places one panel on the preview desk.
type PanelConfig struct {
	Kind    string  `mapstructure:"kind" yaml:"kind" toml:"kind" json:"kind" jsonschema:"enum=search,enum=launcher,enum=timer,enum=tasks,enum=documents"`
	X       float64 `mapstructure:"x" yaml:"x" toml:"x" json:"x"`
	Y       float64 `mapstructure:"y" yaml:"y" toml:"y" json:"y"`
	Width   float64 `mapstructure:"width" yaml:"width" toml:"width" json:"width,omitempty"`
	Height  float64 `mapstructure:"height" yaml:"height" toml:"height" json:"height,omitempty"`
	Visible bool    `mapstructure:"visible" yaml:"visible" toml:"visible" json:"visible"`
}

// MonitorConfig describes one monitor and the edges reserved by bars or docks.
type MonitorConfig struct {
	Name           string  `mapstructure:"name" yaml:"name" toml:"name" json:"name"`
	X              float64 `mapstructure:"x" yaml:"x" toml:"x" json:"x"`
	Y              float64 `mapstructure:"y" yaml:"y" toml:"y" json:"y"`
	Width          float64 `mapstructure:"width" yaml:"width" toml:"width" json:"width" jsonschema:"exclusiveMinimum=0"`
	Height         float64 `mapstructure:"height" yaml:"height" toml:"height" json:"height" jsonschema:"exclusiveMinimum=0"`
	ReservedTop    float64 `mapstructure:"reserved_top" yaml:"reserved_top" toml:"reserved_top" json:"reserved_top,omitempty"`
	ReservedBottom float64 `mapstructure:"reserved_bottom" yaml:"reserved_bottom" toml:"reserved_bottom" json:"reserved_bottom,omitempty"`
	ReservedLeft   float64 `mapstructure:"reserved_left" yaml:"reserved_left" toml:"reserved_left" json:"reserved_left,omitempty"`
	ReservedRight  float64 `mapstructure:"reserved_right" yaml:"reserved_right" toml:"reserved_right" json:"reserved_right,omitempty"`
	Primary        bool    `mapstructure:"primary" yaml:"primary" toml:"primary" json:"primary,omitempty"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Format string `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json,default=console"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	// Path of the SQLite file remembering panel positions. Empty means the XDG data dir.
	Path string `mapstructure:"path" yaml:"path" toml:"path" json:"path,omitempty"`
}

// Bounds returns the full monitor rectangle.
func (m MonitorConfig) Bounds() entity.Rect {
	return entity.NewRect(m.X, m.Y, m.Width, m.Height)
}

// WorkArea returns the monitor rectangle minus its reserved edges.
func (m MonitorConfig) WorkArea() entity.Rect {
	return entity.NewRect(
		m.X+m.ReservedLeft,
		m.Y+m.ReservedTop,
		m.Width-m.ReservedLeft-m.ReservedRight,
		m.Height-m.ReservedTop-m.ReservedBottom,
	)
}

// Rect returns the panel rectangle, using the kind's nominal size for a missing dimension.
func (p PanelConfig) Rect() entity.Rect {
	traits := entity.DefaultTraits(entity.PanelKind(p.Kind))
	r := entity.NewRect(p.X, p.Y, p.Width, p.Height)
	if r.Width <= 0 {
		r.Width = traits.NominalWidth
	}
	if r.Height <= 0 {
		r.Height = traits.NominalHeight
	}
	return r
}

// ToLayoutSettings converts the layout section into the engine's settings snapshot.
func (l LayoutConfig) ToLayoutSettings() entity.LayoutSettings {
	return entity.LayoutSettings{
		Gap:               l.Gap,
		SnapThreshold:     entity.SnapThreshold,
		OverlapPrevention: l.OverlapPrevention,
		FreePlacement:     l.FreePlacement,
		AnimationDuration: time.Duration(l.AnimationMs) * time.Millisecond,
	}
}
