package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Section titles for keyMap.FullHelp, in order.
var helpTitles = []string{"Views", "Scrolling", "Paging", "Logs", "General"}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyCol := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Width(12)

	lines := []string{
		styles.Text.Bold(true).Render("Keyboard Shortcuts"),
		styles.FaintText.Render(strings.Repeat("─", 30)),
	}
	for i, group := range m.keys.FullHelp() {
		title := "More"
		if i < len(helpTitles) {
			title = helpTitles[i]
		}
		lines = append(lines, "", styles.AccentText.Bold(true).Render(title))
		for _, b := range group {
			h := b.Help()
			lines = append(lines, keyCol.Render(h.Key)+styles.Text.Render(h.Desc))
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(40).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)))
}
