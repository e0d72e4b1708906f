package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jaydenlee09/GameOfLife/internal/engine"
	"github.com/jaydenlee09/GameOfLife/internal/storage"
	"github.com/jaydenlee09/GameOfLife/internal/ui"
)

type tab int

const (
	tabTasks tab = iota
	tabHabits
	tabChallenges
	tabFocus
	tabCount
)

var tabNames = [tabCount]string{"Tasks", "Habits", "Challenges", "Focus"}

const toastFor = 4 * time.Second

type boardModel struct {
	ctx    context.Context
	svc    *engine.Service
	events <-chan engine.Event

	keys     keyMap
	help     help.Model
	xpBar    progress.Model
	focusBar progress.Model

	width  int
	height int
	now    time.Time

	tab      tab
	selected int

	state    storage.State
	featured []storage.Challenge

	focus       *engine.FocusTimer
	preset      int
	rewardReady bool

	toast      string
	toastUntil time.Time
	lastLog    string
}

type tickMsg time.Time

type eventMsg engine.Event

type rolledMsg struct {
	res engine.RolloverResult
	err error
}

type actionMsg struct {
	text string
	err  error
}

func newBoardModel(ctx context.Context, svc *engine.Service, events <-chan engine.Event) boardModel {
	timer, _ := engine.NewFocusTimer(engine.FocusPresets[2])
	m := boardModel{
		ctx:      ctx,
		svc:      svc,
		events:   events,
		keys:     defaultKeys(),
		help:     help.New(),
		xpBar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		focusBar: progress.New(progress.WithSolidFill("205")),
		now:      svc.Now(),
		focus:    timer,
		preset:   2,
		lastLog:  "Loaded.",
	}
	m.reload()
	return m
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(tick(), m.waitForEvent())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m boardModel) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	ch := m.events
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

// reload copies fresh state out of the service. The board never mutates it.
func (m *boardModel) reload() {
	m.state = m.svc.Snapshot()
	m.featured = m.svc.FeaturedChallenges()
	if n := m.rowCount(); m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.xpBar.Width = clampWidth(msg.Width/3, 10, 40)
		m.focusBar.Width = clampWidth(msg.Width/2, 10, 60)
		return m, nil

	case tickMsg:
		m.now = m.svc.Now()
		if m.focus.Tick(m.now) {
			m.rewardReady = true
			m.svc.FocusFinished(m.focus.Total())
			m.lastLog = "Focus session complete."
		}
		return m, tick()

	case eventMsg:
		m.now = m.svc.Now()
		switch msg.Kind {
		case engine.EventLevelUp:
			m.showToast(fmt.Sprintf("%s %s  Level %d", ui.IconTrophy, ui.BadgeLevelUp, msg.Level))
		case engine.EventReward:
			if msg.Source == engine.SourceTask {
				m.showToast(fmt.Sprintf("%s +%d XP %s", ui.IconSparkle, msg.XP, msg.Stat.Label()))
				break
			}
			m.showToast(ui.IconTimer + " Claim your focus reward: press 1-6")
		}
		return m, m.waitForEvent()

	case rolledMsg:
		if msg.err != nil {
			m.lastLog = "Rollover failed: " + msg.err.Error()
			return m, nil
		}
		m.reload()
		m.lastLog = fmt.Sprintf("New day %s: %d task(s) moved to today.", msg.res.Today, msg.res.Promoted)
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.lastLog = "Error: " + msg.err.Error()
		} else {
			m.lastLog = msg.text
		}
		m.reload()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		m.selected = 0
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.selected = 0
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.selected < m.rowCount()-1 {
			m.selected++
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.reload()
		m.lastLog = fmt.Sprintf("Refreshed at %s.", m.svc.Now().Format("15:04:05"))
		return m, nil
	case key.Matches(msg, m.keys.Act):
		return m, m.actCmd()
	}

	if m.tab == tabFocus {
		return m.handleFocusKey(msg)
	}
	return m, nil
}

func (m boardModel) handleFocusKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.svc.Now()
	switch {
	case key.Matches(msg, m.keys.Timer):
		if m.focus.Running() {
			m.focus.Pause(now)
		} else {
			m.focus.Start(now)
		}
	case key.Matches(msg, m.keys.Reset):
		m.focus.Reset()
	case key.Matches(msg, m.keys.Preset):
		if m.focus.Running() {
			return m, nil
		}
		m.preset = (m.preset + 1) % len(engine.FocusPresets)
		_ = m.focus.Set(engine.FocusPresets[m.preset])
	case key.Matches(msg, m.keys.ClaimXP):
		if !m.rewardReady {
			return m, nil
		}
		i := int(msg.String()[0] - '1')
		if i < 0 || i >= len(engine.FocusRewards) {
			return m, nil
		}
		m.rewardReady = false
		m.focus.Reset()
		xp := engine.FocusRewards[i]
		svc, ctx := m.svc, m.ctx
		return m, func() tea.Msg {
			res, err := svc.RewardFocusSession(ctx, engine.DefaultFocusStat, xp)
			return actionMsg{text: rewardText("Focus session", res), err: err}
		}
	}
	m.now = now
	return m, nil
}

// actCmd runs the primary action for the selected row off the update loop.
func (m boardModel) actCmd() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	switch m.tab {
	case tabTasks:
		tasks := m.state.Todos
		if m.selected >= len(tasks) {
			return nil
		}
		t := tasks[m.selected]
		return func() tea.Msg {
			res, err := svc.CompleteTask(ctx, t.ID)
			return actionMsg{text: rewardText("Completed "+quoted(t.Text), res), err: err}
		}
	case tabHabits:
		habits := m.state.Habits
		if m.selected >= len(habits) {
			return nil
		}
		h := habits[m.selected]
		today := engine.DateKey(m.svc.Now())
		return func() tea.Msg {
			res, err := svc.ToggleHabitDate(ctx, h.ID, today)
			return actionMsg{text: rewardText("Toggled "+quoted(h.Name), res), err: err}
		}
	case tabChallenges:
		list := m.challengeRows()
		if m.selected >= len(list) {
			return nil
		}
		c := list[m.selected]
		if c.Completed {
			return nil
		}
		if !c.Started {
			return func() tea.Msg {
				_, err := svc.StartChallenge(ctx, c.ID)
				return actionMsg{text: "Started " + quoted(c.Text), err: err}
			}
		}
		return func() tea.Msg {
			res, err := svc.CompleteChallenge(ctx, c.ID)
			return actionMsg{text: rewardText("Challenge "+quoted(c.Text), res), err: err}
		}
	}
	return nil
}

func (m *boardModel) showToast(s string) {
	m.toast = s
	m.toastUntil = m.now.Add(toastFor)
}

func (m boardModel) rowCount() int {
	switch m.tab {
	case tabTasks:
		return len(m.state.Todos)
	case tabHabits:
		return len(m.state.Habits)
	case tabChallenges:
		return len(m.challengeRows())
	default:
		return 0
	}
}

// challengeRows lists open challenges by duration group, then completed ones.
func (m boardModel) challengeRows() []storage.Challenge {
	open, done := engine.GroupChallenges(m.state.Challenges)
	var out []storage.Challenge
	for _, d := range engine.DurationOrder {
		out = append(out, open[d]...)
	}
	return append(out, done...)
}

func (m boardModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.tab {
	case tabTasks:
		b.WriteString(m.renderTasks())
	case tabHabits:
		b.WriteString(m.renderHabits())
	case tabChallenges:
		b.WriteString(m.renderChallenges())
	case tabFocus:
		b.WriteString(m.renderFocus())
	}

	b.WriteString("\n")
	if m.toast != "" && m.now.Before(m.toastUntil) {
		b.WriteString(ui.Toast.Render(m.toast))
		b.WriteString("\n")
	}
	b.WriteString(ui.Muted.Render(m.lastLog))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m boardModel) renderHeader() string {
	p := m.state.User
	need := engine.XPCap(p.Level)
	return fmt.Sprintf("%s  %s  %s %s %s",
		ui.Title.Render("Game of Life"),
		ui.Key.Render(p.Name),
		ui.Gold.Render(fmt.Sprintf("Lv %d", p.Level)),
		m.xpBar.ViewAs(engine.LevelProgress(p.Level, p.XP)),
		ui.Muted.Render(fmt.Sprintf("%d/%d XP", p.XP, need)),
	)
}

func (m boardModel) renderTabs() string {
	parts := make([]string, 0, tabCount)
	for i, name := range tabNames {
		if tab(i) == m.tab {
			parts = append(parts, ui.SelectedRow.Render(" "+name+" "))
		} else {
			parts = append(parts, ui.Muted.Render(" "+name+" "))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m boardModel) cursor(i int) string {
	if i == m.selected {
		return ui.Gold.Render("> ")
	}
	return "  "
}

func (m boardModel) renderTasks() string {
	if len(m.state.Todos) == 0 {
		return ui.Muted.Render("(no tasks)")
	}
	var lines []string
	for i, t := range m.state.Todos {
		line := fmt.Sprintf("%s%s %s %s %s",
			m.cursor(i), ui.StatIcon(t.Category), t.Text,
			ui.Muted.Render("("+engine.TimeFrame(t.TimeFrame).Label()+")"),
			ui.Good.Render(fmt.Sprintf("+%d", t.XP)))
		lines = append(lines, line)
		for _, s := range t.Subtasks {
			lines = append(lines, fmt.Sprintf("      %s %s", ui.Check(s.Completed), s.Text))
		}
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderHabits() string {
	if len(m.state.Habits) == 0 {
		return ui.Muted.Render("(no habits)")
	}
	week := engine.WeekDays(m.now)
	var header strings.Builder
	header.WriteString(strings.Repeat(" ", 26))
	for _, d := range week {
		header.WriteString(d.Format("Mon")[:2] + " ")
	}
	lines := []string{ui.Muted.Render(header.String())}
	for i, h := range m.state.Habits {
		var row strings.Builder
		for _, d := range week {
			if h.History[engine.DateKey(d)] {
				row.WriteString(ui.Good.Render("■ "))
			} else {
				row.WriteString(ui.Muted.Render("· "))
			}
			row.WriteString(" ")
		}
		st := engine.StatsFor(h, m.now)
		lines = append(lines, fmt.Sprintf("%s%s %-21s %s %s %d  %s %d",
			m.cursor(i), ui.StatIcon(h.Attribute), truncate(h.Name, 21), row.String(),
			ui.IconFire, st.Current, ui.IconTrophy, st.Best))
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderChallenges() string {
	var lines []string
	if len(m.featured) > 0 {
		lines = append(lines, ui.H2.Render("This week's picks"))
		for _, c := range m.featured {
			lines = append(lines, "  "+ui.IconFlag+" "+c.Text)
		}
		lines = append(lines, "")
	}
	for i, c := range m.challengeRows() {
		status := ui.Muted.Render(string(c.Duration))
		switch {
		case c.Completed:
			status = ui.Good.Render("done")
		case c.Started:
			left, _ := engine.TimeLeft(c, m.now)
			status = ui.Warn.Render(engine.FormatTimeLeft(left, engine.ChallengeDuration(c.Duration)))
		}
		lines = append(lines, fmt.Sprintf("%s%s %s %s %s",
			m.cursor(i), ui.StatIcon(c.Category), c.Text,
			ui.Good.Render(fmt.Sprintf("+%d", c.XP)), status))
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderFocus() string {
	left := m.focus.Remaining(m.now)
	state := "paused"
	if m.focus.Running() {
		state = "running"
	}
	lines := []string{
		ui.Title.Render(engine.FormatClock(left)) + "  " + ui.Muted.Render(state),
		m.focusBar.ViewAs(m.focus.Progress(m.now)),
		"",
	}
	presets := make([]string, len(engine.FocusPresets))
	for i, p := range engine.FocusPresets {
		label := fmt.Sprintf("%dm", int(p.Minutes()))
		if i == m.preset {
			label = ui.SelectedRow.Render(" " + label + " ")
		}
		presets[i] = label
	}
	lines = append(lines, "Presets: "+strings.Join(presets, " "))
	if m.rewardReady {
		rewards := make([]string, len(engine.FocusRewards))
		for i, xp := range engine.FocusRewards {
			rewards[i] = fmt.Sprintf("%d) %d", i+1, xp)
		}
		lines = append(lines, "", ui.Gold.Render("Reward: ")+strings.Join(rewards, "  "))
	}
	return strings.Join(lines, "\n")
}

func rewardText(prefix string, res engine.RewardResult) string {
	if !res.Applied {
		return prefix + ": nothing changed."
	}
	s := fmt.Sprintf("%s: %+d XP", prefix, res.XPAwarded)
	if res.Stat != "" {
		s += " to " + res.Stat.Label()
	}
	if res.Change.LevelUp() || res.Change.LevelDown() {
		s += fmt.Sprintf(" (level %d → %d)", res.Change.LevelBefore, res.Change.LevelAfter)
	}
	return s
}

func quoted(s string) string {
	return `"` + truncate(s, 40) + `"`
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func clampWidth(w, lo, hi int) int {
	if w < lo {
		return lo
	}
	if w > hi {
		return hi
	}
	return w
}
