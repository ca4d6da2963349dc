package ui

import (
	"fmt"
	"strings"
	"time"
)

// truncate cuts value to limit runes, ending in "..." when there is room.
func truncate(value string, limit int) string {
	runes := []rune(strings.TrimSpace(value))
	switch {
	case limit <= 0 || len(runes) <= limit:
		return string(runes)
	case limit <= 3:
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// truncateMiddle keeps both ends of value, which suits file paths.
func truncateMiddle(value string, limit int) string {
	runes := []rune(strings.TrimSpace(value))
	switch {
	case limit <= 0 || len(runes) <= limit:
		return string(runes)
	case limit <= 3:
		return string(runes[:limit])
	}
	head := (limit - 1) / 2
	tail := limit - 1 - head
	return string(runes[:head]) + "…" + string(runes[len(runes)-tail:])
}

func humanizeDuration(d time.Duration) string {
	if d < time.Second {
		return "now"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d/time.Second))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d/time.Minute))
	}
	if d >= 24*time.Hour {
		return fmt.Sprintf("%dd", int(d/(24*time.Hour)))
	}
	h, rest := int(d/time.Hour), int((d%time.Hour)/time.Minute)
	if rest == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, rest)
}

// titleCase turns a status name like "no_credentials" into "No Credentials".
func titleCase(value string) string {
	words := strings.FieldsFunc(strings.ToLower(value), func(r rune) bool {
		return r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
