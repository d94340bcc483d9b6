package session

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmResult is emitted when the dialog resolves.
type confirmResult struct {
	confirmed bool
}

// confirmModel is the stop-recording dialog shown over the session
// view. Stopping a take by fat-fingering q is worse than one extra
// keypress.
type confirmModel struct {
	title string
	body  string
}

func newConfirm(title, body string) confirmModel {
	return confirmModel{title: title, body: body}
}

func (c confirmModel) Update(msg tea.KeyMsg) (confirmModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		return c, func() tea.Msg { return confirmResult{confirmed: true} }
	case "n", "N", "esc":
		return c, func() tea.Msg { return confirmResult{confirmed: false} }
	}
	return c, nil
}

func (c confirmModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	bodyStyle := lipgloss.NewStyle().Faint(true)

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(c.title),
		"",
		bodyStyle.Render(c.body),
		"",
		"[y] stop    [n] keep recording",
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 3).
		Render(content)
}

func confirmKeyBindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "stop")),
		key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "keep recording")),
	}
}
