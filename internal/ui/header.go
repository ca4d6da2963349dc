package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const logoText = "christmas"

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	if !m.snapshot.HasFrame {
		return styles.Header.Width(m.width).Render(
			bg.Render(logoText, styles.Logo) + sep +
				bg.Render("Starting...", styles.WarningText.Bold(true)),
		)
	}

	d := m.snapshot.Display
	compact := m.width < LayoutCompactWidth

	parts := []string{
		bg.Render(logoText, styles.Logo),
		styles.StatusStyle(d.Status.String()).Render(strings.ToUpper(titleCase(d.Status.String()))),
	}

	if d.HasDate {
		parts = append(parts,
			bg.Render("Days:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", d.Days), styles.SuccessText))
	} else if d.ErrorCode != "" {
		parts = append(parts, bg.Render(d.ErrorCode, styles.DangerText))
	}

	if m.snapshot.IsOffline() {
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	}

	if !compact && m.config != nil {
		parts = append(parts,
			bg.Render("Link:", styles.MutedText)+bg.Space()+
				bg.Render(m.linkLabel(), styles.Text))
	}

	if !m.snapshot.LastUpdated.IsZero() {
		age := humanizeDuration(m.now().Sub(m.snapshot.LastUpdated))
		parts = append(parts, bg.Render("Updated "+age, styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// linkLabel names the configured network path.
func (m Model) linkLabel() string {
	w := m.config.WiFi
	switch {
	case w.Adapter == "":
		return "unknown"
	case w.Credentials.SSID != "":
		return w.Adapter + " " + truncate(w.Credentials.SSID, 24)
	default:
		return w.Adapter
	}
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewLogs:
		followLabel := "Pause"
		if !m.logState.follow {
			followLabel = "Follow"
		}
		commands = []cmd{
			{"Space", followLabel},
			{"/", "Search"},
			{"n/N", "Next/Prev"},
			{"c", "Countdown"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"l", "Logs"},
			{"Tab", "Switch"},
			{"?", "More"},
			{"e", "Quit"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if m.currentView == ViewLogs && m.logState.search.query != "" {
		segments = append(segments, bg.Render("/"+truncate(m.logState.search.query, 18), styles.AccentText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderBox draws content inside a rounded, titled border of the given outer
// size.
func (m Model) renderBox(title, content string, width, height int, focused bool) string {
	border := m.theme.Border
	bgColor := m.theme.Surface
	if focused {
		border = m.theme.BorderFocus
		bgColor = m.theme.FocusBg
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		BorderBackground(lipgloss.Color(m.theme.Background)).
		Background(lipgloss.Color(bgColor)).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Render(content)

	if title == "" {
		return box
	}

	// Overwrite the top border with " title ".
	lines := strings.SplitN(box, "\n", 2)
	label := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Accent)).
		Background(lipgloss.Color(m.theme.Background)).
		Bold(true).
		Render(" " + title + " ")
	top := lipgloss.NewStyle().
		Foreground(lipgloss.Color(border)).
		Background(lipgloss.Color(m.theme.Background))
	inner := max(width-2-lipgloss.Width(label)-1, 0)
	lines[0] = top.Render("╭─") + label + top.Render(strings.Repeat("─", inner)+"╮")
	return strings.Join(lines, "\n")
}
