package config

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "negative gap", mutate: func(c *Config) { c.Layout.Gap = -1 }, wantErr: "layout.gap"},
		{name: "nan gap", mutate: func(c *Config) { c.Layout.Gap = math.NaN() }, wantErr: "layout.gap"},
		{name: "slow animation", mutate: func(c *Config) { c.Layout.AnimationMs = 5000 }, wantErr: "layout.animation_ms"},
		{name: "log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
		{name: "zero monitor", mutate: func(c *Config) { c.Monitors[0].Width = 0 }, wantErr: "positive width"},
		{name: "reserved everything", mutate: func(c *Config) { c.Monitors[0].ReservedTop = 1080 }, wantErr: "no work area"},
		{
			name: "two primaries",
			mutate: func(c *Config) {
				c.Monitors = append(c.Monitors, MonitorConfig{Name: "b", X: 1920, Width: 100, Height: 100, Primary: true})
			},
			wantErr: "only one monitor",
		},
		{
			name:    "unknown kind",
			mutate:  func(c *Config) { c.Panels["x"] = PanelConfig{Kind: "clock"} },
			wantErr: "panels.x.kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfig_AggregatesErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.Gap = -1
	cfg.Logging.Format = "xml"

	err := validateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout.gap")
	assert.Contains(t, err.Error(), "; logging.format")
}
