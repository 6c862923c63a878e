package entity

import "time"

const (
	// MinGap is the smallest spacing the layout engine will honor.
	MinGap = 4.0
	// SnapThreshold is the distance at which an edge is pulled onto a target edge.
	SnapThreshold = 16.0
	// DefaultGap is used when no configuration is available.
	DefaultGap = 8.0
	// DefaultAnimationDuration is the duration of a drop-recovery animation.
	DefaultAnimationDuration = 180 * time.Millisecond
)

// LayoutSettings is the read-only configuration snapshot used for one layout operation.
type LayoutSettings struct {
	Gap               float64
	SnapThreshold     float64
	OverlapPrevention bool
	FreePlacement     bool
	AnimationDuration time.Duration
}

// DefaultLayoutSettings returns settings with free placement enabled.
func DefaultLayoutSettings() LayoutSettings {
	return LayoutSettings{
		Gap:               DefaultGap,
		SnapThreshold:     SnapThreshold,
		OverlapPrevention: true,
		FreePlacement:     true,
		AnimationDuration: DefaultAnimationDuration,
	}
}

// Normalized floor-clamps the gap, pins the snap threshold and fills a zero duration.
func (s LayoutSettings) Normalized() LayoutSettings {
	if !isFinite(s.Gap) || s.Gap < MinGap {
		s.Gap = MinGap
	}
	s.SnapThreshold = SnapThreshold
	if s.AnimationDuration <= 0 {
		s.AnimationDuration = DefaultAnimationDuration
	}
	return s
}
