package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/floatdock/internal/cli/styles"
	"github.com/bnema/floatdock/internal/domain/entity"
)

const (
	minDeskCols = 20
	minDeskRows = 6
	// chrome is the number of lines around the desk: title, status and help.
	chrome = 7
)

// Controller is what the model drives. *Host implements it.
type Controller interface {
	Move(id entity.PanelID, dx, dy float64)
	Grab(id entity.PanelID)
	Drop(id entity.PanelID)
	Resize(id entity.PanelID, dh float64)
	ToggleVisible(id entity.PanelID)
	ToggleFreePlacement()
	Refresh()
	Save()
}

// Model is the bubbletea model of the preview.
type Model struct {
	theme *styles.Theme
	keys  styles.PreviewKeyMap
	help  help.Model
	ctl   Controller

	frame    Frame
	selected entity.PanelID
	grabbed  entity.PanelID
	status   string

	width  int
	height int
}

// NewModel creates the preview model.
func NewModel(theme *styles.Theme, ctl Controller) Model {
	return Model{
		theme:  theme,
		keys:   styles.DefaultPreviewKeyMap(),
		help:   styles.NewStyledHelp(theme),
		ctl:    ctl,
		width:  96,
		height: 34,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Selected returns the id of the selected panel.
func (m Model) Selected() entity.PanelID { return m.selected }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.frame = Frame(msg)
		if _, ok := m.frame.Panel(m.selected); !ok && len(m.frame.Panels) > 0 {
			m.selected = m.frame.Panels[0].ID
		}
		return m, nil

	case StatusMsg:
		m.status = string(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.grabbed != "" {
			m.ctl.Drop(m.grabbed)
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.FreePlacement):
		m.ctl.ToggleFreePlacement()
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.ctl.Refresh()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.ctl.Save()
		return m, nil
	}

	if m.selected == "" {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextPanel):
		m.cycle(1)
	case key.Matches(msg, m.keys.PrevPanel):
		m.cycle(-1)
	case key.Matches(msg, m.keys.Left):
		m.ctl.Move(m.selected, -MoveStep, 0)
	case key.Matches(msg, m.keys.Right):
		m.ctl.Move(m.selected, MoveStep, 0)
	case key.Matches(msg, m.keys.Up):
		m.ctl.Move(m.selected, 0, -MoveStep)
	case key.Matches(msg, m.keys.Down):
		m.ctl.Move(m.selected, 0, MoveStep)
	case key.Matches(msg, m.keys.Drag):
		if m.grabbed == m.selected {
			m.ctl.Drop(m.selected)
			m.grabbed = ""
		} else {
			m.ctl.Grab(m.selected)
			m.grabbed = m.selected
		}
	case key.Matches(msg, m.keys.Grow):
		m.ctl.Resize(m.selected, ResizeStep)
	case key.Matches(msg, m.keys.Shrink):
		m.ctl.Resize(m.selected, -ResizeStep)
	case key.Matches(msg, m.keys.ToggleVisible):
		m.ctl.ToggleVisible(m.selected)
	}
	return m, nil
}

// cycle moves the selection. A grabbed panel is dropped first so a drag never
// outlives its selection.
func (m *Model) cycle(delta int) {
	n := len(m.frame.Panels)
	if n == 0 {
		return
	}
	if m.grabbed != "" {
		m.ctl.Drop(m.grabbed)
		m.grabbed = ""
	}
	idx := 0
	for i, p := range m.frame.Panels {
		if p.ID == m.selected {
			idx = i
			break
		}
	}
	m.selected = m.frame.Panels[((idx+delta)%n+n)%n].ID
}

// View implements tea.Model.
func (m Model) View() string {
	t := m.theme
	var sb strings.Builder

	sb.WriteString(t.Title.Render(styles.IconDesktop + " floatdock preview"))
	sb.WriteString("  ")
	sb.WriteString(t.Subtle.Render(m.settingsLine()))
	sb.WriteString("\n")

	cols, rows := m.deskSize()
	sb.WriteString(t.Box.Render(t.RenderDesk(m.frame.Area, m.deskPanels(), cols, rows)))
	sb.WriteString("\n")
	sb.WriteString(m.selectionLine())
	sb.WriteString("\n")
	if m.status != "" {
		sb.WriteString(t.Subtle.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) settingsLine() string {
	s := m.frame.Settings
	return fmt.Sprintf("free placement %s, gap %s, overlap prevention %s",
		onOff(s.FreePlacement), styles.FormatPixels(s.Gap), onOff(s.OverlapPrevention))
}

func (m Model) selectionLine() string {
	t := m.theme
	p, ok := m.frame.Panel(m.selected)
	if !ok {
		return t.Subtle.Render("no panel")
	}

	parts := []string{
		t.KindBadge(p.Kind),
		t.Highlight.Render(string(p.ID)),
		t.Normal.Render(fmt.Sprintf("%s,%s %sx%s",
			styles.FormatPixels(p.Rect.Left), styles.FormatPixels(p.Rect.Top),
			styles.FormatPixels(p.Rect.Width), styles.FormatPixels(p.Rect.Height))),
	}
	if !p.Visible {
		parts = append(parts, t.MutedBadge("hidden"))
	}
	if p.Dragging {
		parts = append(parts, t.AccentBadge(styles.IconCursor + " grabbed"))
	}
	if p.Anchor != "" {
		parts = append(parts, t.Subtle.Render(styles.IconAnchor+" "+string(p.Anchor)))
	}
	return strings.Join(parts, " ")
}

func (m Model) deskPanels() []styles.DeskPanel {
	out := make([]styles.DeskPanel, 0, len(m.frame.Panels))
	for _, p := range m.frame.Panels {
		out = append(out, styles.DeskPanel{
			ID:       p.ID,
			Kind:     p.Kind,
			Rect:     p.Rect,
			Visible:  p.Visible,
			Selected: p.ID == m.selected,
			Dragging: p.Dragging,
		})
	}
	return out
}

// deskSize fits the desk to the terminal, keeping the work area's aspect with
// cells twice as tall as wide.
func (m Model) deskSize() (cols, rows int) {
	cols = max(m.width-2, minDeskCols)
	maxRows := max(m.height-chrome, minDeskRows)
	area := m.frame.Area
	if !area.HasArea() {
		return cols, maxRows
	}
	rows = int(float64(cols) * area.Height / area.Width / 2)
	if rows > maxRows {
		rows = maxRows
		cols = max(int(float64(rows)*2*area.Width/area.Height), minDeskCols)
	}
	return cols, max(rows, minDeskRows)
}
