package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/floatdock/internal/cli/scenario"
)

// SimulateRenderer renders scenario results.
type SimulateRenderer struct {
	theme *Theme
}

// NewSimulateRenderer creates a new simulate renderer with the given theme.
func NewSimulateRenderer(theme *Theme) *SimulateRenderer {
	return &SimulateRenderer{theme: theme}
}

// RenderResult renders the final panel table of a run followed by its
// expectation summary.
func (r *SimulateRenderer) RenderResult(res *scenario.Result) string {
	t := r.theme
	iconStyle := lipgloss.NewStyle().Foreground(t.Accent)

	name := res.Name
	if name == "" {
		name = "scenario"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n  %s %s %s\n\n",
		iconStyle.Render(IconPlay),
		t.Title.Render(name),
		t.Subtle.Render(fmt.Sprintf("(%d steps, %d animation ticks)", res.Steps, res.Ticks)),
	))

	rows := make([]table.Row, 0, len(res.Panels))
	for _, p := range res.Panels {
		rows = append(rows, PanelRow{
			ID:     p.ID,
			Kind:   p.Kind,
			Rect:   p.Rect,
			State:  panelState(p),
			Anchor: p.Anchor,
		}.ToRow())
	}
	sb.WriteString(RenderStaticTable(t, PanelTableColumns(), rows))
	sb.WriteString("\n")
	sb.WriteString(r.RenderExpectations(res))
	return sb.String()
}

// RenderExpectations renders either a success line or every failed expectation.
func (r *SimulateRenderer) RenderExpectations(res *scenario.Result) string {
	t := r.theme
	if res.Passed() {
		return fmt.Sprintf("\n  %s %s\n",
			t.SuccessStyle.Render(IconCheck),
			t.Normal.Render("all expectations met"),
		)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n  %s %s\n",
		t.ErrorStyle.Render(IconX),
		t.ErrorStyle.Render(fmt.Sprintf("%d expectation(s) failed", len(res.Failures))),
	))
	for _, f := range res.Failures {
		sb.WriteString(fmt.Sprintf("    %s %s\n", t.Subtle.Render(IconCursor), f))
	}
	return sb.String()
}

func panelState(p scenario.PanelState) string {
	switch {
	case p.Closed:
		return "closed"
	case !p.Visible:
		return "hidden"
	default:
		return "visible"
	}
}
