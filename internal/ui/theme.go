package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette. Colors are hex strings.
type Theme struct {
	Name string

	Background string // behind every panel
	Surface    string // header, command bar, inactive boxes
	FocusBg    string // the active box

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// StatusColors is keyed by countdown status name.
	StatusColors map[string]string
}

// Styles contains pre-built Lip Gloss styles for a theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header lipgloss.Style
	Logo   lipgloss.Style

	statusColors map[string]string
	background   string
	muted        string
}

// Styles returns Lip Gloss styles for this theme.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: fg(t.Text).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		Logo:   fg(t.Danger).Bold(true),

		statusColors: t.StatusColors,
		background:   t.Background,
		muted:        t.Muted,
	}
}

// WithBackground returns a copy where every style carries bgColor, so styled
// runs never fall back to the terminal's default background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Logo,
	} {
		*st = st.Background(bg)
	}
	return out
}

// StatusStyle returns a badge style for a status name.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color := s.statusColors[strings.ToLower(strings.TrimSpace(status))]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// StatusColor returns the color for a status name, falling back to Muted.
func (t Theme) StatusColor(status string) string {
	if c := t.StatusColors[strings.ToLower(strings.TrimSpace(status))]; c != "" {
		return c
	}
	return t.Muted
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
	"Holly":    hollyTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate", "Holly"}

// GetTheme returns a theme by name, Nightfox when unknown.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names in cycle order.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

// https://github.com/EdenEast/nightfox.nvim
func nightfoxTheme() Theme {
	return Theme{
		Name:       "Nightfox",
		Background: "#131a24",
		Surface:    "#192330",
		FocusBg:    "#29394f",

		Border:      "#39506d",
		BorderFocus: "#719cd6",

		Text:    "#cdcecf",
		Muted:   "#738091",
		Faint:   "#71839b",
		Accent:  "#719cd6",
		Success: "#81b29a",
		Warning: "#dbc074",
		Danger:  "#c94f6d",
		Info:    "#63cdcf",

		StatusColors: map[string]string{
			"thinking":       "#738091",
			"ready":          "#81b29a",
			"no_network":     "#c94f6d",
			"no_credentials": "#dbc074",
			"connecting":     "#719cd6",
			"fetching":       "#63cdcf",
			"retrying":       "#f4a261",
		},
	}
}

// https://github.com/rebelot/kanagawa.nvim
func kanagawaTheme() Theme {
	return Theme{
		Name:       "Kanagawa",
		Background: "#16161D",
		Surface:    "#1F1F28",
		FocusBg:    "#2A2A37",

		Border:      "#54546D",
		BorderFocus: "#7E9CD8",

		Text:    "#DCD7BA",
		Muted:   "#C8C093",
		Faint:   "#727169",
		Accent:  "#7E9CD8",
		Success: "#98BB6C",
		Warning: "#E6C384",
		Danger:  "#E46876",
		Info:    "#7FB4CA",

		StatusColors: map[string]string{
			"thinking":       "#727169",
			"ready":          "#98BB6C",
			"no_network":     "#E46876",
			"no_credentials": "#E6C384",
			"connecting":     "#7E9CD8",
			"fetching":       "#7FB4CA",
			"retrying":       "#FFA066",
		},
	}
}

// Tailwind slate/sky.
func slateTheme() Theme {
	return Theme{
		Name:       "Slate",
		Background: "#020617",
		Surface:    "#0f172a",
		FocusBg:    "#1e293b",

		Border:      "#334155",
		BorderFocus: "#38bdf8",

		Text:    "#f1f5f9",
		Muted:   "#94a3b8",
		Faint:   "#64748b",
		Accent:  "#38bdf8",
		Success: "#22c55e",
		Warning: "#f59e0b",
		Danger:  "#ef4444",
		Info:    "#06b6d4",

		StatusColors: map[string]string{
			"thinking":       "#64748b",
			"ready":          "#16a34a",
			"no_network":     "#dc2626",
			"no_credentials": "#f59e0b",
			"connecting":     "#0ea5e9",
			"fetching":       "#06b6d4",
			"retrying":       "#ea580c",
		},
	}
}

// Evergreen and berry.
func hollyTheme() Theme {
	return Theme{
		Name:       "Holly",
		Background: "#0b1a12",
		Surface:    "#10261a",
		FocusBg:    "#173524",

		Border:      "#2f5a40",
		BorderFocus: "#e0b44c",

		Text:    "#f3efe0",
		Muted:   "#a9b8a4",
		Faint:   "#6f8a72",
		Accent:  "#e0b44c",
		Success: "#5fbf77",
		Warning: "#e0b44c",
		Danger:  "#d64545",
		Info:    "#8fd3c8",

		StatusColors: map[string]string{
			"thinking":       "#6f8a72",
			"ready":          "#5fbf77",
			"no_network":     "#d64545",
			"no_credentials": "#e0b44c",
			"connecting":     "#8fd3c8",
			"fetching":       "#7fb0e0",
			"retrying":       "#e07a3c",
		},
	}
}
