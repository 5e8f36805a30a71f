package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"planner/internal/engine"
	"planner/internal/storage"
	"planner/internal/ui"
)

type boardModel struct {
	ctx   context.Context
	svc   *engine.Service
	touch func()
	keys  keyMap

	width  int
	height int

	snap   engine.Snapshot
	months []string
	month  int
	day    int
	styles ui.Styles

	editing bool
	input   textinput.Model

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	snap engine.Snapshot
	err  error
}

type mutatedMsg struct {
	log string
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, touch func(), now time.Time) boardModel {
	ti := textinput.New()
	ti.Placeholder = "What happened today?"
	ti.CharLimit = 2000
	ti.Width = 60

	return boardModel{
		ctx:     ctx,
		svc:     svc,
		touch:   touch,
		keys:    defaultKeys(),
		day:     now.Day(),
		styles:  ui.For(storage.ThemeLight),
		input:   ti,
		loading: true,
		lastLog: "Loaded.",
		months:  []string{engine.CurrentMonthKey(now)},
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.svc.Snapshot(m.ctx)
		return loadedMsg{snap: snap, err: err}
	}
}

func (m boardModel) toggleCmd(monthKey string, day int) tea.Cmd {
	return func() tea.Msg {
		progress, err := m.svc.ProgressRepo().Toggle(m.ctx, monthKey, day)
		if err != nil {
			return mutatedMsg{err: err}
		}
		state := "open"
		if progress[monthKey][strconv.Itoa(day)] {
			state = "done"
		}
		return mutatedMsg{log: fmt.Sprintf("%s day %d marked %s.", monthKey, day, state)}
	}
}

func (m boardModel) noteCmd(monthKey string, day int, text string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.SaveNote(m.ctx, monthKey, day, text); err != nil {
			return mutatedMsg{err: err}
		}
		if strings.TrimSpace(text) == "" {
			return mutatedMsg{log: fmt.Sprintf("Removed note for %s day %d.", monthKey, day)}
		}
		return mutatedMsg{log: fmt.Sprintf("Saved note for %s day %d.", monthKey, day)}
	}
}

func (m boardModel) themeCmd(t storage.Theme) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.ThemeRepo().Set(m.ctx, t); err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{log: "Theme: " + string(t) + "."}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(20, msg.Width-10)
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.applySnapshot(msg.snap)
		return m, nil
	case mutatedMsg:
		if msg.err != nil {
			m.lastLog = "Save failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.log
		if m.snap.Settings.AutoSave && m.touch != nil {
			m.touch()
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m *boardModel) applySnapshot(snap engine.Snapshot) {
	current := m.monthKey()
	m.snap = snap
	m.styles = ui.For(snap.Theme)
	m.months = snap.Plan.Keys()
	if len(m.months) == 0 {
		m.months = []string{current}
	}
	m.month = 0
	for i, k := range m.months {
		if k == current {
			m.month = i
			break
		}
	}
	m.clampDay()
}

func (m boardModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	case key.Matches(msg, m.keys.PrevMonth):
		if m.month > 0 {
			m.month--
			m.clampDay()
		}
		return m, nil
	case key.Matches(msg, m.keys.NextMonth):
		if m.month < len(m.months)-1 {
			m.month++
			m.clampDay()
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevDay):
		if m.day > 1 {
			m.day--
		}
		return m, nil
	case key.Matches(msg, m.keys.NextDay):
		if m.day < m.daysInMonth() {
			m.day++
		}
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		if m.locked() {
			return m, nil
		}
		return m, m.toggleCmd(m.monthKey(), m.day)
	case key.Matches(msg, m.keys.Note):
		if m.locked() {
			return m, nil
		}
		m.editing = true
		m.input.SetValue(m.snap.Notes[m.monthKey()][strconv.Itoa(m.day)])
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Theme):
		next := storage.ThemeDark
		if m.snap.Theme == storage.ThemeDark {
			next = storage.ThemeLight
		}
		return m, m.themeCmd(next)
	}
	return m, nil
}

func (m boardModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.input.Blur()
		m.input.SetValue("")
		m.lastLog = "Cancelled."
		return m, nil
	case key.Matches(msg, m.keys.Save):
		text := m.input.Value()
		m.editing = false
		m.input.Blur()
		m.input.SetValue("")
		return m, m.noteCmd(m.monthKey(), m.day, text)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *boardModel) locked() bool {
	if m.snap.Settings.LockMode {
		m.lastLog = ui.IconLock + " Locked. Run 'planner settings --unlock' to edit."
		return true
	}
	return false
}

func (m boardModel) monthKey() string {
	if m.month < 0 || m.month >= len(m.months) {
		return ""
	}
	return m.months[m.month]
}

func (m boardModel) daysInMonth() int {
	n, err := engine.DaysInMonth(m.monthKey())
	if err != nil {
		return 31
	}
	return n
}

func (m *boardModel) clampDay() {
	m.day = max(1, min(m.day, m.daysInMonth()))
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	if m.loading && len(m.snap.Plan) == 0 {
		return "Planner: loading…\n"
	}

	leftW := 30
	if m.width > 0 {
		leftW = max(22, min(leftW, m.width/3))
	}
	left := lipgloss.NewStyle().Width(leftW).Render(m.renderMonths())
	right := m.renderMonth()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	return m.renderHeader() + "\n\n" + body + "\n" + m.renderFooter()
}

func (m boardModel) renderHeader() string {
	k := m.monthKey()
	label := storage.MonthLabel(k)
	if mp, ok := m.snap.Plan[k]; ok && mp.Month != "" {
		label = mp.Month
	}
	p := engine.EnhancedProgress(m.snap, k)
	return fmt.Sprintf("%s | %s %s overall %s",
		m.styles.Heading(ui.IconPlan, "Planner"),
		m.styles.H2.Render(label),
		ui.ProgressBar(p.Overall, 20),
		m.styles.Percent(p.Overall),
	)
}

func (m boardModel) renderMonths() string {
	lines := []string{m.styles.PanelTitle.Render("Months")}
	for i, k := range m.months {
		row := fmt.Sprintf("%s %s", k, ui.ProgressBar(engine.MonthProgress(m.snap, k), 10))
		if i == m.month {
			lines = append(lines, m.styles.SelectedRow.Render("> "+row))
			continue
		}
		lines = append(lines, "  "+row)
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMonth() string {
	k := m.monthKey()
	var out []string

	out = append(out, m.renderCalendar(k), "")

	notes := engine.NotesProgress(m.snap, k)
	enhanced := engine.EnhancedProgress(m.snap, k)
	out = append(out,
		m.styles.LabelValue("Days done", m.styles.Percent(enhanced.Daily)),
		m.styles.LabelValue("Notes", fmt.Sprintf("%d/%d %s", notes.NotesCount, notes.TotalDays, m.styles.Percent(notes.Overall))),
		m.styles.LabelValue("Targets", m.styles.Percent(engine.TargetProgress(m.snap, k))),
		"",
	)

	if mp, ok := m.snap.Plan[k]; ok {
		out = append(out, m.styles.PanelTitle.Render(ui.IconTarget+" Targets"))
		done := m.snap.Targets[k]
		for i, t := range mp.Targets {
			mark := "[ ]"
			if done[strconv.Itoa(i)] {
				mark = m.styles.Good.Render("[x]")
			}
			out = append(out, fmt.Sprintf("%s %d. %s", mark, i+1, t))
		}
		out = append(out, "")
	}

	out = append(out, m.styles.PanelTitle.Render(fmt.Sprintf("%s Day %d", ui.IconNote, m.day)))
	note := m.snap.Notes[k][strconv.Itoa(m.day)]
	if note == "" {
		note = m.styles.Muted.Render("(no note)")
	}
	out = append(out, note)
	return strings.Join(out, "\n")
}

// renderCalendar draws a Monday-first grid of the month's days.
func (m boardModel) renderCalendar(monthKey string) string {
	first, err := storage.ParseMonthKey(monthKey)
	if err != nil {
		return m.styles.Bad.Render("invalid month " + monthKey)
	}
	days := m.daysInMonth()
	offset := (int(first.Weekday()) + 6) % 7

	var b strings.Builder
	b.WriteString(m.styles.Muted.Render(" Mo  Tu  We  Th  Fr  Sa  Su"))
	b.WriteString("\n")
	col := 0
	for ; col < offset; col++ {
		b.WriteString("    ")
	}
	for d := 1; d <= days; d++ {
		ds := strconv.Itoa(d)
		cell := fmt.Sprintf("%2d", d)
		switch {
		case m.snap.Daily[monthKey][ds]:
			cell = m.styles.DayDone.Render(cell)
		case m.snap.Notes[monthKey][ds] != "":
			cell = m.styles.DayNoted.Render(cell)
		default:
			cell = m.styles.DayEmpty.Render(cell)
		}
		if d == m.day {
			cell = "[" + cell + "]"
		} else {
			cell = " " + cell + " "
		}
		b.WriteString(cell)
		col++
		if col%7 == 0 && d < days {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m boardModel) renderFooter() string {
	if m.editing {
		return "\n" + m.input.View() + "\n" + m.styles.Muted.Render(helpLine(m.keys.editing()))
	}
	status := m.lastLog
	if m.snap.Settings.LockMode {
		status = ui.IconLock + " " + status
	}
	return "\n" + status + "\n" + m.styles.Muted.Render(helpLine(m.keys.browsing()))
}
