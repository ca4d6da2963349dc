package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/atarukun/home/internal/countdown"
)

// renderCountdown renders the main view: the current frame and, on wide
// terminals, the status history beside it.
func (m Model) renderCountdown() string {
	height := max(m.height-2, 3)

	if m.width < LayoutSplitWidth {
		return m.renderBox("Countdown", m.countdownContent(m.width-4), m.width, height, true)
	}

	historyWidth := m.width / 3
	mainWidth := m.width - historyWidth
	main := m.renderBox("Countdown", m.countdownContent(mainWidth-4), mainWidth, height, true)
	side := m.renderBox("History", m.historyContent(historyWidth-4, height-2), historyWidth, height, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, main, side)
}

// countdownContent renders the headline block for the current frame.
func (m Model) countdownContent(width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	center := lipgloss.NewStyle().Width(max(width, 1)).Align(lipgloss.Center)

	if !m.snapshot.HasFrame {
		return center.Render(styles.MutedText.Render("Waiting for the first update..."))
	}

	d := m.snapshot.Display
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.StatusColor(d.Status.String()))).
		Background(lipgloss.Color(m.theme.FocusBg)).
		Bold(true)

	var lines []string
	if d.HasDate {
		number := fmt.Sprintf("%d", d.Days)
		if d.Days == 0 {
			number = "★"
		}
		lines = append(lines,
			"",
			statusStyle.Render(number),
			"",
			styles.Text.Bold(true).Render(d.Headline()),
			styles.FaintText.Render("Today is "+d.Date),
		)
	} else {
		lines = append(lines,
			"",
			statusStyle.Render(d.Headline()),
		)
		if d.ErrorCode != "" {
			lines = append(lines, styles.DangerText.Render(d.ErrorCode))
		}
		if m.snapshot.HasReady {
			last := m.snapshot.LastReady
			lines = append(lines,
				"",
				styles.MutedText.Render(fmt.Sprintf("Last known: %s (%s)", last.Headline(), last.Date)),
			)
		}
	}

	if m.snapshot.ConsecutiveFailures > 0 {
		lines = append(lines, "", styles.WarningText.Render(
			fmt.Sprintf("%d failed sync %s", m.snapshot.ConsecutiveFailures, plural(m.snapshot.ConsecutiveFailures, "attempt", "attempts"))))
	}

	for i, line := range lines {
		lines[i] = center.Render(line)
	}
	return strings.Join(lines, "\n")
}

// historyContent lists recent status changes, newest first, trimmed to
// the available rows.
func (m Model) historyContent(width, rows int) string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	history := m.snapshot.History
	if len(history) == 0 {
		return styles.MutedText.Render("No changes yet")
	}

	var lines []string
	for i := len(history) - 1; i >= 0 && len(lines) < rows; i-- {
		lines = append(lines, m.historyLine(history[i], width, styles))
	}
	return strings.Join(lines, "\n")
}

func (m Model) historyLine(d countdown.Display, width int, styles Styles) string {
	stamp := "--:--:--"
	if !d.At.IsZero() {
		stamp = d.At.Format("15:04:05")
	}
	dot := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.StatusColor(d.Status.String()))).
		Background(lipgloss.Color(m.theme.Surface)).
		Render("●")
	text := truncate(d.Headline(), max(width-len(stamp)-3, 1))
	return styles.FaintText.Render(stamp) + styles.Text.Render(" ") + dot + styles.Text.Render(" "+text)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
