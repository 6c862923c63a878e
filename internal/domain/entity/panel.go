package entity

// PanelID uniquely identifies a panel within the application.
type PanelID string

// PanelKind identifies one of the fixed panel types the application creates.
type PanelKind string

const (
	PanelSearch    PanelKind = "search"
	PanelLauncher  PanelKind = "launcher"
	PanelTimer     PanelKind = "timer"
	PanelTasks     PanelKind = "tasks"
	PanelDocuments PanelKind = "documents"
)

// KnownKinds returns the panel kinds the application creates, in display order.
func KnownKinds() []PanelKind {
	return []PanelKind{PanelSearch, PanelLauncher, PanelTimer, PanelTasks, PanelDocuments}
}

// IsKnown reports whether k is one of KnownKinds.
func (k PanelKind) IsKnown() bool {
	switch k {
	case PanelSearch, PanelLauncher, PanelTimer, PanelTasks, PanelDocuments:
		return true
	}
	return false
}

// PropagationStyle controls how followers are repositioned when their anchor moves.
type PropagationStyle string

const (
	// PropagateFullLayout moves followers under the anchor and then re-runs the
	// full live layout on each of them.
	PropagateFullLayout PropagationStyle = "full-layout"
	// PropagateVerticalOnly only moves followers vertically so they never drift sideways.
	PropagateVerticalOnly PropagationStyle = "vertical-only"
)

const (
	// DefaultMinHeight is the max-height floor for height-constrained panels.
	DefaultMinHeight = 140.0
	// DocumentsMinHeight is the max-height floor for the document browser.
	DocumentsMinHeight = 200.0
)

// PanelTraits describes the static capabilities of a panel.
type PanelTraits struct {
	Kind PanelKind

	// HeightConstrained panels get a max height so that panels below them stay on screen.
	HeightConstrained bool
	// MinHeight is the floor applied to the computed max height.
	MinHeight float64

	Propagation PropagationStyle

	// Nominal size used while the windowing layer reports no geometry.
	NominalWidth  float64
	NominalHeight float64
}

// DefaultTraits returns the traits for one of the application's panel kinds.
// Unknown kinds get an unconstrained full-layout panel.
func DefaultTraits(kind PanelKind) PanelTraits {
	switch kind {
	case PanelSearch:
		return PanelTraits{
			Kind:              kind,
			HeightConstrained: true,
			MinHeight:         DefaultMinHeight,
			Propagation:       PropagateVerticalOnly,
			NominalWidth:      640,
			NominalHeight:     72,
		}
	case PanelDocuments:
		return PanelTraits{
			Kind:              kind,
			HeightConstrained: true,
			MinHeight:         DocumentsMinHeight,
			Propagation:       PropagateFullLayout,
			NominalWidth:      420,
			NominalHeight:     480,
		}
	case PanelLauncher:
		return PanelTraits{Kind: kind, Propagation: PropagateFullLayout, NominalWidth: 480, NominalHeight: 64}
	case PanelTimer:
		return PanelTraits{Kind: kind, Propagation: PropagateFullLayout, NominalWidth: 220, NominalHeight: 120}
	case PanelTasks:
		return PanelTraits{Kind: kind, Propagation: PropagateFullLayout, NominalWidth: 320, NominalHeight: 360}
	default:
		return PanelTraits{Kind: kind, Propagation: PropagateFullLayout, MinHeight: DefaultMinHeight}
	}
}

// EffectiveMinHeight returns the max-height floor, defaulting to DefaultMinHeight.
func (t PanelTraits) EffectiveMinHeight() float64 {
	if t.MinHeight > 0 {
		return t.MinHeight
	}
	return DefaultMinHeight
}
