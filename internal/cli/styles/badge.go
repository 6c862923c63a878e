package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/floatdock/internal/domain/entity"
)

// KindBadge renders a panel kind in its desk color.
func (t *Theme) KindBadge(kind entity.PanelKind) string {
	return lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.KindColor(kind)).
		Padding(0, 1).
		Render(string(kind))
}

// AccentBadge renders a badge with accent color.
func (t *Theme) AccentBadge(text string) string {
	return t.Badge.Render(text)
}

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}
