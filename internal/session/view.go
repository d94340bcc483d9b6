package session

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
	"go.uber.org/zap/zapcore"

	"github.com/slate-tools/cli/internal/logging"
)

// View implements tea.Model
func (m sessionModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.phase == phasePrompt {
		return m.renderPrompt()
	}

	if m.hidden && m.phase == phaseRecording {
		return m.renderHiddenLine()
	}

	base := m.renderMain()
	if m.phase == phaseConfirmStop {
		return overlay.Composite(
			m.confirm.View(),
			base,
			overlay.Center,
			overlay.Center,
			0, 0,
		)
	}
	return base
}

func (m sessionModel) renderMain() string {
	sections := []string{m.renderHeader(), m.renderStatus()}

	if m.showLog {
		paneStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		sections = append(sections, paneStyle.Render(m.pane.View()))
	}

	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m sessionModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	id := m.cfg.ID
	if len(id) > 8 {
		id = id[:8]
	}

	content := titleStyle.Render("slate") +
		mutedStyle.Render(" | session ") + id +
		mutedStyle.Render(" | ") + m.cfg.Profile.String()

	return lipgloss.NewStyle().Width(m.width).Padding(0, 1).Render(content)
}

func (m sessionModel) renderStatus() string {
	recStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	content := m.spin.View() + " " +
		recStyle.Render("REC") + " " + m.timecode().String() +
		mutedStyle.Render("  |  ") + m.workDir

	return lipgloss.NewStyle().Width(m.width).Padding(0, 1).Render(content)
}

// renderHiddenLine is the whole UI when the pane is concealed. Keys
// still work; h brings the full view back.
func (m sessionModel) renderHiddenLine() string {
	recStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	return " " + recStyle.Render("●") + " " + m.timecode().String() +
		mutedStyle.Render("  [h] show  [q] stop")
}

func (m sessionModel) renderPrompt() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("slate") + mutedStyle.Render(" | new recording") + "\n\n")
	b.WriteString("  Working directory for this session:\n\n")
	b.WriteString("  " + m.input.View() + "\n\n")
	b.WriteString("  " + m.help.ShortHelpView(promptKeyBindings()) + "\n")
	return b.String()
}

func (m sessionModel) renderFooter() string {
	var bindings []key.Binding
	if m.phase == phaseConfirmStop {
		bindings = confirmKeyBindings()
	} else {
		bindings = []key.Binding{
			key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "stop")),
			key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log")),
			key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hide")),
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")),
		}
	}

	return lipgloss.NewStyle().Width(m.width).Padding(0, 1).Render(m.help.ShortHelpView(bindings))
}

func promptKeyBindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "start")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "cancel")),
	}
}

func (m sessionModel) renderRecords() string {
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	if len(m.records) == 0 {
		return mutedStyle.Render("waiting for activity...")
	}

	lines := make([]string, 0, len(m.records))
	for _, r := range m.records {
		var b strings.Builder
		b.WriteString(mutedStyle.Render(r.Time.Format("15:04:05.000")))
		b.WriteString(" ")
		b.WriteString(levelStyle(r.Level).Render(fmt.Sprintf("%-5s", levelLabel(r.Level))))
		if r.Logger != "" {
			b.WriteString(" " + mutedStyle.Render(r.Logger))
		}
		b.WriteString(" " + r.Message)
		if r.Fields != "" {
			b.WriteString(" " + mutedStyle.Render(r.Fields))
		}
		lines = append(lines, b.String())
	}

	return strings.Join(lines, "\n")
}

func levelLabel(l zapcore.Level) string {
	if l == logging.TraceLevel {
		return "TRACE"
	}
	return strings.ToUpper(l.String())
}

func levelStyle(l zapcore.Level) lipgloss.Style {
	switch {
	case l >= zapcore.ErrorLevel:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	case l == zapcore.WarnLevel:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	case l == zapcore.InfoLevel:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	}
}
