package stats

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	statsdto "fast/internal/modules/stats/dto"
	"fast/internal/ui/theme"
)

var (
	valueStyle = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

type Model struct {
	summary statsdto.SummaryOutput
	loaded  bool
}

func New() Model {
	return Model{}
}

func (m *Model) SetSummary(summary statsdto.SummaryOutput) {
	m.summary = summary
	m.loaded = true
}

func (m Model) View() string {
	if !m.loaded {
		return theme.Muted.Render("loading…")
	}
	rows := []string{
		theme.Title.Render("Stats"),
		"",
		m.row(fmt.Sprintf("%dh", m.summary.TotalHours), "total fasted"),
		m.row(fmt.Sprintf("%dd", m.summary.CurrentStreak), "current streak"),
		m.row(fmt.Sprintf("%d", m.summary.FastedDays), "fasted days"),
		m.row(fmt.Sprintf("%d", m.summary.TotalFasts), "completed fasts"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) row(value, label string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		valueStyle.Width(6).Render(value),
		labelStyle.Render(label),
	)
}
