package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit, Help, CycleTheme, Tab, Escape key.Binding

	ViewCountdown, ViewLogs key.Binding

	// scrolling in the log view
	Up, Down, Top, Bottom                      key.Binding
	PageUp, PageDown, HalfPageUp, HalfPageDown key.Binding

	ToggleFollow, Search, NextMatch, PrevMatch key.Binding
	Confirm                                    key.Binding
}

// bind builds a binding whose help label is the first key unless label is set.
func bind(label, desc string, keys ...string) key.Binding {
	if label == "" {
		label = keys[0]
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// DefaultKeyMap returns the bindings used by the countdown screen.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit:       bind("e", "Quit", "ctrl+c", "e"),
		Help:       bind("h/?", "Show or hide this help", "h", "?"),
		CycleTheme: bind("", "Next color theme", "T"),
		Tab:        bind("tab", "Toggle countdown/log", "tab", "shift+tab"),
		Escape:     bind("", "Clear search or go back", "esc"),

		ViewCountdown: bind("", "Countdown", "c"),
		ViewLogs:      bind("", "Diagnostic log", "l"),

		Up:           bind("k/↑", "Line up", "k", "up"),
		Down:         bind("j/↓", "Line down", "j", "down"),
		Top:          bind("", "Oldest entry", "g", "home"),
		Bottom:       bind("", "Newest entry", "G", "end"),
		PageUp:       bind("", "Page up", "pgup"),
		PageDown:     bind("", "Page down", "pgdown"),
		HalfPageUp:   bind("", "Half page up", "ctrl+u"),
		HalfPageDown: bind("", "Half page down", "ctrl+d"),

		ToggleFollow: bind("space", "Auto-tail on/off", " "),
		Search:       bind("", "Search (regex)", "/"),
		NextMatch:    bind("", "Next match", "n"),
		PrevMatch:    bind("", "Previous match", "N"),
		Confirm:      bind("", "Apply search", "enter"),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp groups bindings in the order the help overlay lists its sections.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ViewCountdown, k.ViewLogs, k.Escape},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.HalfPageDown, k.HalfPageUp, k.PageDown, k.PageUp},
		{k.ToggleFollow, k.Search, k.NextMatch, k.PrevMatch},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
