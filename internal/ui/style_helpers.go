package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle paints text runs on a fixed background. Words and the gaps between
// them are rendered separately so an ANSI reset inside a styled word never
// leaves an unpainted cell.
type BgStyle struct {
	fill lipgloss.Style
}

func NewBgStyle(bgColor string) BgStyle {
	return BgStyle{fill: lipgloss.NewStyle().Background(lipgloss.Color(bgColor))}
}

// Render draws text with style on the background.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Inherit(b.fill)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.Space())
}

func (b BgStyle) Space() string { return b.fill.Render(" ") }

func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return b.fill.Render(strings.Repeat(" ", n))
}

func (b BgStyle) Sep(sep string) string { return b.fill.Render(sep) }

func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.Sep(sep))
}

// FillLine pads content to width.
func (b BgStyle) FillLine(content string, width int) string {
	return b.fill.Width(width).Render(content)
}
