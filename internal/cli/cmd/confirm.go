package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/floatdock/internal/cli/styles"
)

// confirmModel hosts a styles.ConfirmModel as a standalone program.
type confirmModel struct {
	confirm styles.ConfirmModel
}

func (m confirmModel) Init() tea.Cmd {
	return m.confirm.Init()
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.confirm, cmd = m.confirm.Update(msg)
	if m.confirm.Done() {
		return m, tea.Quit
	}
	return m, cmd
}

func (m confirmModel) View() string {
	if m.confirm.Done() {
		return ""
	}
	return m.confirm.View() + "\n"
}

// askConfirm shows a yes/no dialog and reports whether the user accepted.
func askConfirm(theme *styles.Theme, message, detail string) (bool, error) {
	p := tea.NewProgram(confirmModel{confirm: styles.NewConfirm(theme, message).WithDetail(detail)})
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirm prompt: %w", err)
	}
	m, ok := final.(confirmModel)
	if !ok {
		return false, nil
	}
	return m.confirm.Result(), nil
}
