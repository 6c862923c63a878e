package styles

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/floatdock/internal/application/port"
)

// BoundsRenderer renders stored panel bounds.
type BoundsRenderer struct {
	theme *Theme
}

// NewBoundsRenderer creates a new bounds renderer with the given theme.
func NewBoundsRenderer(theme *Theme) *BoundsRenderer {
	return &BoundsRenderer{theme: theme}
}

// RenderList renders the stored bounds as a table.
func (r *BoundsRenderer) RenderList(dbPath string, bounds []port.SavedBounds) string {
	if len(bounds) == 0 {
		return r.RenderEmpty(dbPath)
	}

	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	rows := make([]table.Row, 0, len(bounds))
	for _, b := range bounds {
		state := "visible"
		if !b.Visible {
			state = "hidden"
		}
		rows = append(rows, PanelRow{ID: b.PanelID, Kind: b.Kind, Rect: b.Rect, State: state}.ToRow())
	}

	return fmt.Sprintf("\n  %s Saved bounds %s\n\n%s\n",
		iconStyle.Render(IconDatabase),
		r.theme.Subtle.Render(dbPath),
		RenderStaticTable(r.theme, PanelTableColumns()[:7], rows),
	)
}

// RenderEmpty renders the message shown when nothing is stored.
func (r *BoundsRenderer) RenderEmpty(dbPath string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Muted)
	return fmt.Sprintf("\n  %s No saved bounds in %s\n",
		iconStyle.Render(IconInfo),
		r.theme.Subtle.Render(dbPath),
	)
}

// RenderCleared renders the confirmation after clearing the store.
func (r *BoundsRenderer) RenderCleared(count int) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s Removed %s saved panel position(s)\n",
		iconStyle.Render(IconTrash),
		r.theme.Highlight.Render(fmt.Sprintf("%d", count)),
	)
}

// RenderSaved renders the confirmation after saving bounds.
func (r *BoundsRenderer) RenderSaved(count int) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("  %s Saved %d panel position(s)", iconStyle.Render(IconCheck), count)
}
