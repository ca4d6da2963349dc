package ui

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atarukun/home/internal/logtail"
)

type logState struct {
	lines   []string
	follow  bool
	readAt  time.Time
	readErr error
	stale   bool // viewport content needs a re-render
	search  logSearch
}

func newLogState() logState {
	return logState{follow: true, stale: true, search: newLogSearch()}
}

type logBatchMsg struct {
	lines []string
	err   error
}

// updateLogViewport fits the viewport to the window: the box loses three
// rows to header, command bar and status line, and two more to its border.
func (m *Model) updateLogViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}
	w, h := max(m.width-4, 1), max(m.height-5, 1)
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(w, h)
	}
	m.logViewport.Width, m.logViewport.Height = w, h
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	if m.logState.stale {
		m.logViewport.SetContent(m.renderLogContent())
		m.logState.stale = false
	}
	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

func (m Model) renderLogs() string {
	box := m.renderBox("Diagnostic Log", m.logViewport.View(), m.width, m.height-3, true)
	return box + "\n" + m.renderLogStatus(m.theme.Styles(), NewBgStyle(m.theme.FocusBg))
}

// renderLogStatus is the line under the log box: the search prompt, the
// search result, or buffer details.
func (m Model) renderLogStatus(styles Styles, bg BgStyle) string {
	s := m.logState.search
	switch {
	case s.editing:
		return bg.Render("search: ", styles.FaintText) + s.input.View()
	case s.applied() && len(s.hits) == 0:
		return bg.Render("No match for "+s.query, styles.DangerText)
	case s.applied():
		pos := fmt.Sprintf("%d/%d", s.cur+1, len(s.hits))
		return bg.Render("/"+s.query, styles.AccentText) + bg.Space() +
			bg.Render(pos, styles.WarningText) + bg.Space() +
			bg.Render("(n/N move, esc clears)", styles.FaintText)
	}

	tail := "auto-tail off"
	if m.logState.follow {
		tail = "auto-tail on"
	}
	parts := []string{bg.Render(fmt.Sprintf("%d lines %s", len(m.logState.lines), tail), styles.FaintText)}
	if m.logPath != "" {
		parts = append(parts, bg.Render(truncateMiddle(m.logPath, 50), styles.MutedText))
	}
	if m.logState.readErr != nil {
		parts = append(parts, bg.Render(truncate(m.logState.readErr.Error(), 60), styles.DangerText))
	}
	return bg.Join(parts, "  ")
}

func (m *Model) renderLogContent() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.FocusBg)
	width := m.logViewport.Width

	switch {
	case m.logPath == "":
		return bg.FillLine(bg.Render("File logging is disabled", styles.MutedText), width)
	case len(m.logState.lines) == 0:
		return bg.FillLine(bg.Render("No log entries", styles.MutedText), width)
	}

	s := m.logState.search
	current := s.line()
	cursor := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Warning)).
		Foreground(lipgloss.Color(m.theme.Background))

	rows := make([]string, len(m.logState.lines))
	for i, line := range m.logState.lines {
		gutter := fmt.Sprintf("%4d │ ", i+1)
		var row string
		switch {
		case i == current:
			row = cursor.Render(gutter + line)
		case slices.Contains(s.hits, i):
			row = bg.Render(gutter, styles.AccentText) + bg.Render(line, styles.AccentText)
		default:
			row = bg.Render(gutter, styles.FaintText) + m.colorizeLine(line, styles, bg)
		}
		rows[i] = bg.FillLine(row, width)
	}
	return strings.Join(rows, "\n")
}

// Pieces of a line written by logtail.Format.
var (
	timestampRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})`)
	levelRe     = regexp.MustCompile(`\b(TRACE|DEBUG|INFO|WARN|ERROR|FATAL|PANIC)\b`)
	componentRe = regexp.MustCompile(`\[[^\]]+\]`)
	separatorRe = regexp.MustCompile(`\s+–\s+`)
)

// colorizeLine styles "timestamp LEVEL [component] message – details",
// tolerating any piece being absent.
func (m *Model) colorizeLine(line string, styles Styles, bg BgStyle) string {
	if strings.TrimSpace(line) == "" {
		return line
	}

	var out []string
	rest := line
	leading := func(loc []int) bool {
		return loc != nil && strings.TrimSpace(rest[:loc[0]]) == ""
	}

	if loc := timestampRe.FindStringSubmatchIndex(rest); loc != nil {
		out = append(out, bg.Render(rest[loc[2]:loc[3]], styles.FaintText))
		rest = rest[loc[3]:]
	}
	if loc := levelRe.FindStringSubmatchIndex(rest); leading(loc) {
		lvl := rest[loc[2]:loc[3]]
		out = append(out, bg.Render(lvl, levelStyle(lvl, styles).Bold(true)))
		rest = rest[loc[3]:]
	}
	if loc := componentRe.FindStringIndex(rest); leading(loc) {
		out = append(out, bg.Render(rest[loc[0]:loc[1]], styles.AccentText))
		rest = rest[loc[1]:]
	}

	if msg, details, ok := splitDetails(rest); ok {
		out = append(out,
			bg.Render(msg, styles.Text),
			bg.Render("–", styles.FaintText),
			bg.Render(details, styles.MutedText))
	} else if msg := strings.TrimSpace(rest); msg != "" {
		out = append(out, bg.Render(msg, styles.Text))
	}
	return strings.Join(out, bg.Space())
}

func splitDetails(s string) (msg, details string, ok bool) {
	parts := separatorRe.Split(s, 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

func levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "ERROR", "FATAL", "PANIC":
		return styles.DangerText
	case "WARN":
		return styles.WarningText
	case "INFO":
		return styles.SuccessText
	case "DEBUG", "TRACE":
		return styles.InfoText
	}
	return styles.Text
}

type scrollBinding struct {
	binding key.Binding
	move    func(*viewport.Model)
	follow  bool
}

// scrollBindings maps navigation keys to viewport moves. Every manual move
// except jumping to the end pauses auto-tail.
func (k keyMap) scrollBindings() []scrollBinding {
	return []scrollBinding{
		{k.Top, func(v *viewport.Model) { v.GotoTop() }, false},
		{k.Bottom, func(v *viewport.Model) { v.GotoBottom() }, true},
		{k.Up, func(v *viewport.Model) { v.ScrollUp(1) }, false},
		{k.Down, func(v *viewport.Model) { v.ScrollDown(1) }, false},
		{k.HalfPageUp, func(v *viewport.Model) { v.HalfPageUp() }, false},
		{k.HalfPageDown, func(v *viewport.Model) { v.HalfPageDown() }, false},
		{k.PageUp, func(v *viewport.Model) { v.PageUp() }, false},
		{k.PageDown, func(v *viewport.Model) { v.PageDown() }, false},
	}
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logState.follow = !m.logState.follow
		m.updateLogViewport()
		var cmd tea.Cmd
		if m.logState.follow {
			cmd = m.refreshLogs()
		}
		return m, cmd

	case key.Matches(msg, m.keys.Search):
		m.logState.search.editing = true
		m.logState.search.input.SetValue("")
		cmd := m.logState.search.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.NextMatch):
		m.stepSearch(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevMatch):
		m.stepSearch(-1)
		return m, nil
	}

	for _, sb := range m.keys.scrollBindings() {
		if key.Matches(msg, sb.binding) {
			sb.move(&m.logViewport)
			m.logState.follow = sb.follow
			break
		}
	}
	return m, nil
}

// handleLogSearchInput feeds keys to the search prompt until Enter or Esc.
func (m Model) handleLogSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.logState.search
	confirm := key.Matches(msg, m.keys.Confirm)
	if !confirm && !key.Matches(msg, m.keys.Escape) {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return m, cmd
	}

	query := s.input.Value()
	s.editing = false
	s.input.Blur()
	if !confirm {
		s.input.SetValue("")
		return m, nil
	}
	if query != "" {
		m.applySearch(query)
		m.updateLogViewport()
	}
	return m, nil
}

func (m *Model) applySearch(query string) {
	m.logState.search.set(query)
	m.logState.search.scan(m.logState.lines)
	m.logState.stale = true
	m.scrollToSearchMatch()
}

func (m *Model) clearLogSearch() {
	m.logState.search.reset()
	m.logState.stale = true
}

func (m *Model) stepSearch(delta int) {
	if !m.logState.search.step(delta) {
		return
	}
	m.logState.stale = true
	m.scrollToSearchMatch()
	m.updateLogViewport()
}

// scrollToSearchMatch centers the current hit and pauses auto-tail.
func (m *Model) scrollToSearchMatch() {
	line := m.logState.search.line()
	if line < 0 {
		return
	}
	m.logState.follow = false
	m.logViewport.SetYOffset(max(line-m.logViewport.Height/2, 0))
}

// refreshLogs returns a command that reads the log tail, at most once per
// LogRefreshDebounce.
func (m *Model) refreshLogs() tea.Cmd {
	if m.logPath == "" {
		return nil
	}
	now := m.now()
	if !m.logState.readAt.IsZero() && now.Sub(m.logState.readAt) < LogRefreshDebounce {
		return nil
	}
	m.logState.readAt = now

	path := m.logPath
	return func() tea.Msg {
		raw, err := logtail.Read(path, LogReadLimit)
		if err != nil {
			return logBatchMsg{err: err}
		}
		return logBatchMsg{lines: logtail.FormatLines(raw)}
	}
}

// handleLogBatch swaps in a fresh read. A failed read keeps the old lines.
func (m *Model) handleLogBatch(msg logBatchMsg) {
	m.logState.readErr = msg.err
	if msg.err != nil || slices.Equal(m.logState.lines, msg.lines) {
		return
	}
	m.logState.lines = msg.lines
	m.logState.search.scan(m.logState.lines)
	m.logState.stale = true
	m.updateLogViewport()
}
