package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "fast/internal/modules/session/dto"
	settingsdto "fast/internal/modules/settings/dto"
	statsdto "fast/internal/modules/stats/dto"
	timerin "fast/internal/modules/timer/port/in"
	"fast/internal/ui/components"
	"fast/internal/ui/theme"
	calendarview "fast/internal/ui/views/calendar"
	statsview "fast/internal/ui/views/stats"
	timerview "fast/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this orchestration layer requires.

type sessionPort interface {
	Start(ctx context.Context, at time.Time, target *time.Duration) (sessiondto.SessionOutput, error)
	End(ctx context.Context, at time.Time) (sessiondto.EndOutput, error)
	EditStart(ctx context.Context, sessionID string, newStart time.Time) (sessiondto.SessionOutput, error)
	Active(ctx context.Context) (sessiondto.SessionOutput, error)
	Resume(ctx context.Context) (sessiondto.SessionOutput, error)
}

type statsPort interface {
	Summary(ctx context.Context) (statsdto.SummaryOutput, error)
	FastedDays(ctx context.Context) ([]statsdto.Day, error)
}

type settingsPort interface {
	Update(ctx context.Context, input settingsdto.UpdateInput) (settingsdto.SettingsOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimer tabID = iota
	tabCalendar
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{"Timer", "Calendar", "Stats"}

// ─── async messages ──────────────────────────────────────────────────────────

type tickMsg time.Time

type activeLoadedMsg struct {
	session sessiondto.SessionOutput
	err     error
}

type sessionStartedMsg struct {
	session sessiondto.SessionOutput
	err     error
}

type sessionEndedMsg struct {
	out sessiondto.EndOutput
	err error
}

type editAppliedMsg struct {
	session sessiondto.SessionOutput
	err     error
}

type statsLoadedMsg struct {
	summary statsdto.SummaryOutput
	days    []statsdto.Day
	err     error
}

type settingsUpdatedMsg struct {
	settings settingsdto.SettingsOutput
	err      error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Toggle  key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	PrevMon key.Binding
	NextMon key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Toggle:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start/end fast")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		PrevMon: key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "month")),
		NextMon: key.NewBinding(key.WithKeys("right"), key.WithHelp("←/→", "month")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Toggle, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Toggle},
		{k.PrevMon, k.NextMon},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the command
// palette, and the once-per-second refresh that republishes the engine
// snapshot. All session commands go through ports; all rendering is
// delegated to sub-views.
type Model struct {
	session  sessionPort
	stats    statsPort
	settings settingsPort
	engine   timerin.Engine

	timerView    timerview.Model
	calendarView calendarview.Model
	statsView    statsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	hasActive bool
	status    string
	width     int
	height    int
}

func NewModel(session sessionPort, stats statsPort, settings settingsPort, engine timerin.Engine) Model {
	return Model{
		session:      session,
		stats:        stats,
		settings:     settings,
		engine:       engine,
		timerView:    timerview.New(),
		calendarView: calendarview.New(),
		statsView:    statsview.New(),
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.resumeCmd(), m.loadStatsCmd(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(msg.Width)
		m.timerView.SetSize(msg.Width)
		return m, nil

	case tickMsg:
		if m.hasActive {
			snapshot := m.engine.Refresh()
			if snapshot.SessionID == "" {
				// Engine unbound under us: the completion subscriber ended
				// the session. Reconcile with the store.
				return m, tea.Batch(m.reloadAfterEndCmd(), m.loadStatsCmd(), tick())
			}
			m.timerView.SetSnapshot(snapshot)
		}
		return m, tick()

	case activeLoadedMsg:
		if msg.err == nil {
			m.hasActive = true
			m.timerView.SetActive(msg.session)
			m.timerView.SetSnapshot(m.engine.Snapshot())
		} else {
			m.hasActive = false
			m.timerView.SetIdle(nil)
		}
		return m, nil

	case sessionStartedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.hasActive = true
		m.status = "fast started"
		m.timerView.SetActive(msg.session)
		m.timerView.SetSnapshot(m.engine.Snapshot())
		return m, nil

	case sessionEndedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.hasActive = false
		if msg.out.Discarded {
			m.status = "fast discarded (under a minute)"
			m.timerView.SetIdle(nil)
		} else {
			m.status = "fast ended"
			ended := msg.out.Session
			m.timerView.SetIdle(&ended)
		}
		return m, m.loadStatsCmd()

	case editAppliedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = "start time updated"
		m.timerView.SetActive(msg.session)
		return m, nil

	case statsLoadedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.statsView.SetSummary(msg.summary)
		m.calendarView.SetDays(msg.days, time.Now())
		return m, nil

	case settingsUpdatedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = fmt.Sprintf("reminders %s at %02d:%02d",
				onOff(msg.settings.ReminderEnabled), msg.settings.ReminderHour, msg.settings.ReminderMinute)
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m, m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		return m, nil

	case tea.KeyMsg:
		if m.palette.Visible() {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			return m, m.palette.Open()
		case key.Matches(msg, m.keys.Toggle):
			if m.activeTab == tabTimer {
				if m.hasActive {
					return m, m.endCmd(time.Time{})
				}
				return m, m.startCmd(nil)
			}
		case key.Matches(msg, m.keys.PrevMon):
			if m.activeTab == tabCalendar {
				m.calendarView.PrevMonth()
				return m, nil
			}
		case key.Matches(msg, m.keys.NextMon):
			if m.activeTab == tabCalendar {
				m.calendarView.NextMonth()
				return m, nil
			}
		}
	}

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) resumeCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.session.Resume(context.Background())
		return activeLoadedMsg{session: session, err: err}
	}
}

func (m Model) reloadAfterEndCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.session.Active(context.Background())
		return activeLoadedMsg{session: session, err: err}
	}
}

func (m Model) startCmd(target *time.Duration) tea.Cmd {
	return func() tea.Msg {
		session, err := m.session.Start(context.Background(), time.Time{}, target)
		return sessionStartedMsg{session: session, err: err}
	}
}

func (m Model) endCmd(at time.Time) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.End(context.Background(), at)
		return sessionEndedMsg{out: out, err: err}
	}
}

func (m Model) loadStatsCmd() tea.Cmd {
	return func() tea.Msg {
		summary, err := m.stats.Summary(context.Background())
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		days, err := m.stats.FastedDays(context.Background())
		return statsLoadedMsg{summary: summary, days: days, err: err}
	}
}

func (m Model) executePalette(input string) tea.Cmd {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "fast:start":
		var target *time.Duration
		if len(fields) > 1 {
			d, err := time.ParseDuration(fields[1])
			if err != nil {
				return m.statusCmd("bad target: " + err.Error())
			}
			target = &d
		}
		return m.startCmd(target)
	case "fast:end":
		return m.endCmd(time.Time{})
	case "fast:edit-start":
		if len(fields) < 2 {
			return m.statusCmd("usage: fast:edit-start <RFC3339 time>")
		}
		at, err := time.Parse(time.RFC3339, fields[1])
		if err != nil {
			return m.statusCmd("bad time: " + err.Error())
		}
		return func() tea.Msg {
			session, err := m.session.EditStart(context.Background(), "", at)
			return editAppliedMsg{session: session, err: err}
		}
	case "reminder:on", "reminder:off":
		enabled := fields[0] == "reminder:on"
		return func() tea.Msg {
			settings, err := m.settings.Update(context.Background(), settingsdto.UpdateInput{ReminderEnabled: &enabled})
			return settingsUpdatedMsg{settings: settings, err: err}
		}
	case "reminder:time":
		if len(fields) < 2 {
			return m.statusCmd("usage: reminder:time <HH:MM>")
		}
		hour, minute, err := parseClock(fields[1])
		if err != nil {
			return m.statusCmd(err.Error())
		}
		return func() tea.Msg {
			settings, err := m.settings.Update(context.Background(), settingsdto.UpdateInput{ReminderHour: &hour, ReminderMinute: &minute})
			return settingsUpdatedMsg{settings: settings, err: err}
		}
	default:
		return m.statusCmd("unknown command: " + fields[0])
	}
}

func (m Model) statusCmd(status string) tea.Cmd {
	return func() tea.Msg {
		return settingsUpdatedMsg{err: fmt.Errorf("%s", status)}
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var tabs []string
	for i, label := range tabLabels {
		style := theme.Muted
		if tabID(i) == m.activeTab {
			style = theme.Title
		}
		tabs = append(tabs, style.Render(label))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(tabs, theme.Muted.Render("  ·  ")))

	var body string
	switch m.activeTab {
	case tabTimer:
		body = m.timerView.View()
	case tabCalendar:
		body = m.calendarView.View()
	case tabStats:
		body = m.statsView.View()
	}

	sections := []string{header, "", theme.Pane.Render(body)}
	if m.status != "" {
		sections = append(sections, theme.Muted.Render(m.status))
	}
	if m.palette.Visible() {
		sections = append(sections, m.palette.View())
	}
	if m.showHelp {
		sections = append(sections, m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		sections = append(sections, m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

func parseClock(raw string) (int, int, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad hour in %q", raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad minute in %q", raw)
	}
	return hour, minute, nil
}
