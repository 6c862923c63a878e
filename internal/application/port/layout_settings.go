package port

import "github.com/bnema/floatdock/internal/domain/entity"

// LayoutSettingsProvider exposes the current layout configuration.
// The layout core reads it once per operation and never writes it.
type LayoutSettingsProvider interface {
	LayoutSettings() entity.LayoutSettings
}

// StaticLayoutSettings is a LayoutSettingsProvider returning a fixed value.
type StaticLayoutSettings entity.LayoutSettings

// LayoutSettings implements LayoutSettingsProvider.
func (s StaticLayoutSettings) LayoutSettings() entity.LayoutSettings {
	return entity.LayoutSettings(s)
}
