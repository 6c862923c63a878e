package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmKeyMap defines keybindings for the confirm dialog.
type ConfirmKeyMap struct {
	Accept key.Binding
	Reject key.Binding
	Toggle key.Binding
	Submit key.Binding
	Abort  key.Binding
}

// ShortHelp implements KeyMap.
func (k ConfirmKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Reject, k.Toggle, k.Submit, k.Abort}
}

// FullHelp implements KeyMap.
func (k ConfirmKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultConfirmKeyMap returns the default keybindings.
func DefaultConfirmKeyMap() ConfirmKeyMap {
	return ConfirmKeyMap{
		Accept: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		Reject: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		Toggle: key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab"), key.WithHelp("←/→", "switch")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Abort:  key.NewBinding(key.WithKeys("esc", "ctrl+c", "q"), key.WithHelp("esc", "cancel")),
	}
}

// ConfirmModel asks a yes/no question about a destructive operation.
// The selection starts on "No".
type ConfirmModel struct {
	Message string
	// Detail is an optional second line, usually the path or count affected.
	Detail string

	yes      bool
	answered bool
	aborted  bool

	keys  ConfirmKeyMap
	help  help.Model
	theme *Theme
}

// NewConfirm creates a confirmation dialog.
func NewConfirm(theme *Theme, message string) ConfirmModel {
	return ConfirmModel{
		Message: message,
		keys:    DefaultConfirmKeyMap(),
		help:    NewStyledHelp(theme),
		theme:   theme,
	}
}

// WithDetail returns a copy of m that shows detail under the message.
func (m ConfirmModel) WithDetail(detail string) ConfirmModel {
	m.Detail = detail
	return m
}

// Init implements tea.Model.
func (m ConfirmModel) Init() tea.Cmd { return nil }

// Update handles key presses. "y" and "n" answer immediately.
func (m ConfirmModel) Update(msg tea.Msg) (ConfirmModel, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || m.Done() {
		return m, nil
	}

	switch {
	case key.Matches(k, m.keys.Accept):
		m.yes, m.answered = true, true
	case key.Matches(k, m.keys.Reject):
		m.yes, m.answered = false, true
	case key.Matches(k, m.keys.Toggle):
		m.yes = !m.yes
	case key.Matches(k, m.keys.Submit):
		m.answered = true
	case key.Matches(k, m.keys.Abort):
		m.aborted = true
	}
	return m, nil
}

// View implements tea.Model.
func (m ConfirmModel) View() string {
	t := m.theme

	yes, no := t.ButtonIdle, t.ButtonActive
	if m.yes {
		yes, no = t.ButtonActive, t.ButtonIdle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, no.Render(" No "), "  ", yes.Render(" Yes "))

	lines := []string{t.Title.Render(m.Message)}
	if m.Detail != "" {
		lines = append(lines, t.Subtle.Render(m.Detail))
	}
	lines = append(lines, "", buttons, "", m.help.View(m.keys))

	return t.Box.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// Selected reports which button is highlighted.
func (m ConfirmModel) Selected() bool { return m.yes }

// Done reports whether the user answered or canceled.
func (m ConfirmModel) Done() bool { return m.answered || m.aborted }

// Result reports whether the user accepted.
func (m ConfirmModel) Result() bool { return m.answered && m.yes }
