package calendar

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	statsdto "fast/internal/modules/stats/dto"
	"fast/internal/ui/theme"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
	fastedStyle = lipgloss.NewStyle().Foreground(theme.Green).Bold(true)
	todayStyle  = lipgloss.NewStyle().Foreground(theme.Lavender).Bold(true).Underline(true)
	plainStyle  = lipgloss.NewStyle().Foreground(theme.Text)
	blankStyle  = lipgloss.NewStyle().Foreground(theme.Surface1)
)

// Model renders fasted-day markers: a compact last-7-days row plus a month
// grid. It is a pure function of the fasted-day set; all bucketing rules
// live in the stats module.
type Model struct {
	days  map[statsdto.Day]struct{}
	month time.Time // first day of the displayed month
	today time.Time
}

func New() Model {
	return Model{days: map[statsdto.Day]struct{}{}}
}

func (m *Model) SetDays(days []statsdto.Day, today time.Time) {
	set := make(map[statsdto.Day]struct{}, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	m.days = set
	m.today = today
	if m.month.IsZero() {
		m.month = monthStart(today)
	}
}

func (m *Model) PrevMonth() {
	m.month = m.month.AddDate(0, -1, 0)
}

func (m *Model) NextMonth() {
	m.month = m.month.AddDate(0, 1, 0)
}

func (m Model) View() string {
	if m.today.IsZero() {
		return theme.Muted.Render("loading…")
	}
	sections := []string{
		theme.Title.Render("Last 7 Days"),
		m.weekRow(),
		"",
		theme.Title.Render(m.month.Format("January 2006")),
		m.monthGrid(),
		"",
		theme.Muted.Render("←/→ month"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) weekRow() string {
	letters := "SMTWTFS"
	var heads, cells []string
	for offset := 6; offset >= 0; offset-- {
		day := m.today.AddDate(0, 0, -offset)
		heads = append(heads, headerStyle.Render(fmt.Sprintf(" %c ", letters[int(day.Weekday())])))
		cells = append(cells, m.cell(day, true))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, heads...),
		lipgloss.JoinHorizontal(lipgloss.Top, cells...),
	)
}

func (m Model) monthGrid() string {
	first := m.month
	rows := []string{headerStyle.Render(" S  M  T  W  T  F  S")}

	var cells []string
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, blankStyle.Render(" · "))
	}
	for day := first; day.Month() == first.Month(); day = day.AddDate(0, 0, 1) {
		cells = append(cells, m.cell(day, false))
		if len(cells) == 7 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = nil
		}
	}
	if len(cells) > 0 {
		for len(cells) < 7 {
			cells = append(cells, blankStyle.Render(" · "))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) cell(day time.Time, weekRow bool) string {
	label := fmt.Sprintf("%2d ", day.Day())
	key := statsdto.Day{Year: day.Year(), Month: int(day.Month()), Day: day.Day()}
	_, fasted := m.days[key]
	sameDay := day.Year() == m.today.Year() && day.YearDay() == m.today.YearDay()
	switch {
	case fasted:
		return fastedStyle.Render(label)
	case sameDay:
		return todayStyle.Render(label)
	default:
		return plainStyle.Render(label)
	}
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
