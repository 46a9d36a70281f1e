package timer

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	sessiondto "fast/internal/modules/session/dto"
	timerdto "fast/internal/modules/timer/dto"
	"fast/internal/ui/theme"
)

var (
	clockStyle = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// Model renders the live fast: a large elapsed readout, remaining time and
// progress for target sessions, and the last completed fast summary when
// idle.
type Model struct {
	snapshot  timerdto.Snapshot
	active    bool
	target    *time.Duration
	lastEnded *sessiondto.SessionOutput
	bar       progress.Model
	width     int
}

func New() Model {
	bar := progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Green)))
	bar.ShowPercentage = false
	return Model{bar: bar}
}

func (m *Model) SetSize(width int) {
	m.width = width
	barWidth := width - 8
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 60 {
		barWidth = 60
	}
	m.bar.Width = barWidth
}

// SetActive binds the view to a running session.
func (m *Model) SetActive(session sessiondto.SessionOutput) {
	m.active = true
	m.target = session.Target
	m.lastEnded = nil
}

// SetSnapshot publishes the engine's latest recomputation.
func (m *Model) SetSnapshot(snapshot timerdto.Snapshot) {
	m.snapshot = snapshot
}

// SetIdle clears the binding, optionally retaining the finished session so
// the final duration stays on screen.
func (m *Model) SetIdle(ended *sessiondto.SessionOutput) {
	m.active = false
	m.target = nil
	m.snapshot = timerdto.Snapshot{}
	m.lastEnded = ended
}

func (m Model) Active() bool {
	return m.active
}

func (m Model) View() string {
	if !m.active {
		return m.idleView()
	}

	lines := []string{
		theme.Title.Render("Fasting"),
		"",
		clockStyle.Render(formatClock(m.snapshot.Elapsed)),
	}
	if m.snapshot.HasTarget {
		if m.snapshot.GoalReached {
			lines = append(lines, theme.Good.Render("goal reached"))
		} else {
			lines = append(lines, labelStyle.Render(fmt.Sprintf("%s remaining", formatClock(m.snapshot.Remaining))))
		}
		lines = append(lines, "", m.bar.ViewAs(m.ratio()))
	} else {
		lines = append(lines, labelStyle.Render("open-ended fast"))
	}
	lines = append(lines, "", theme.Muted.Render("s end fast"))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m Model) idleView() string {
	lines := []string{
		theme.Title.Render("No Active Fast"),
		"",
	}
	if m.lastEnded != nil {
		lines = append(lines,
			labelStyle.Render("last fast"),
			clockStyle.Render(formatClock(m.lastEnded.Elapsed)),
		)
		if m.lastEnded.GoalReached {
			lines = append(lines, theme.Good.Render("goal reached"))
		}
		lines = append(lines, "")
	}
	lines = append(lines, theme.Muted.Render("s start fast"))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m Model) ratio() float64 {
	if m.target == nil || *m.target <= 0 {
		return 1
	}
	r := float64(m.snapshot.Elapsed) / float64(*m.target)
	if r > 1 {
		r = 1
	}
	if r < 0 {
		r = 0
	}
	return r
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
