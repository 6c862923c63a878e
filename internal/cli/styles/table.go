package styles

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/floatdock/internal/domain/entity"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
	)
	t.SetStyles(tableStyles(theme))
	return t
}

// RenderStaticTable renders rows once, without selection highlight.
func RenderStaticTable(theme *Theme, columns []table.Column, rows []table.Row) string {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
	)
	s := tableStyles(theme)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	// Header line plus its bottom border.
	t.SetHeight(len(rows) + 2)
	return t.View()
}

func tableStyles(theme *Theme) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.SurfaceVariant).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Text)
	return s
}

// PanelTableColumns returns columns for a panel geometry table.
func PanelTableColumns() []table.Column {
	return []table.Column{
		{Title: "Panel", Width: 18},
		{Title: "Kind", Width: 10},
		{Title: "Left", Width: 8},
		{Title: "Top", Width: 8},
		{Title: "Width", Width: 8},
		{Title: "Height", Width: 8},
		{Title: "State", Width: 10},
		{Title: "Anchor", Width: 18},
	}
}

// PanelRow is one line of a panel geometry table.
type PanelRow struct {
	ID     entity.PanelID
	Kind   entity.PanelKind
	Rect   entity.Rect
	State  string
	Anchor entity.PanelID
}

// ToRow converts to table.Row.
func (p PanelRow) ToRow() table.Row {
	return table.Row{
		string(p.ID),
		string(p.Kind),
		FormatPixels(p.Rect.Left),
		FormatPixels(p.Rect.Top),
		FormatPixels(p.Rect.Width),
		FormatPixels(p.Rect.Height),
		p.State,
		string(p.Anchor),
	}
}

// FormatPixels prints whole pixels without decimals and fractions with one.
func FormatPixels(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
