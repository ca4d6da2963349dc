package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops
	// secondary fields.
	LayoutCompactWidth = 80

	// LayoutSplitWidth is the minimum width to show history beside the
	// countdown.
	LayoutSplitWidth = 110
)

// Log display limits.
const (
	// LogReadLimit is the number of trailing log lines read per refresh.
	LogReadLimit = 500

	// LogRefreshDebounce is the minimum time between log file reads.
	LogRefreshDebounce = 400 * time.Millisecond
)

// DefaultUIInterval is the default UI refresh interval.
const DefaultUIInterval = time.Second
