// Package ui is the terminal front end for the countdown, built on Bubble
// Tea, Bubbles, and Lip Gloss.
//
// # Overview
//
// The UI never talks to the network. A background poller writes frames into
// a state.Store; the Model reads a snapshot on every tick and renders it.
// Quitting the UI returns from Run, which lets the app package shut the
// poller down.
//
// # Architecture
//
// The package follows the Elm architecture Bubble Tea is built around:
//
//	┌──────────────┐   tea.Msg    ┌──────────────┐
//	│  tickCmd     │─────────────→│  Update()    │
//	│  snapshotCmd │              │   handleKey  │
//	│  refreshLogs │              │   poll       │
//	└──────────────┘              └──────┬───────┘
//	                                     │ Model
//	                                     ↓
//	                              ┌──────────────┐
//	                              │  View()      │
//	                              │   header     │
//	                              │   cmd bar    │
//	                              │   countdown  │
//	                              │   or logs    │
//	                              └──────────────┘
//
// Every message handler returns a new Model by value. Commands that touch
// the store or the log file run off the UI goroutine and come back as
// snapshotMsg and logBatchMsg.
//
// # Files
//
//   - app.go: Model, Options, Init/Update/View, key dispatch, Run
//   - header.go: status header, command bar, renderBox
//   - countdown.go: countdown and history panels
//   - logs.go: log viewport, line colouring, scrolling, reading the file
//   - search.go: the /-search over the log buffer
//   - help.go: help overlay generated from keyMap.FullHelp
//   - keys.go: key bindings
//   - theme.go, style_helpers.go: palettes, Lip Gloss styles, BgStyle
//   - layout.go, strings.go: constants and text helpers
//
// # Views
//
//   - Countdown: the current frame (days until Christmas, or the status that
//     explains why there is no date yet) with recent status changes beside
//     it on terminals at least LayoutSplitWidth columns wide. While a sync
//     error is showing, the last known countdown and the number of failed
//     attempts are printed under it.
//   - Logs: the tail of the diagnostic log, formatted by logtail, with
//     auto-tail and regex search. The file is re-read on the refresh tick
//     while auto-tail is on, no more than once per LogRefreshDebounce.
//
// # Header
//
// The header carries the status badge, coloured per status by the theme,
// then the days remaining or the error code, "● OFFLINE" once two sync
// attempts in a row have failed, the configured link (hidden below
// LayoutCompactWidth columns), and the age of the last frame.
//
// # Key Bindings
//
//   - Tab: switch view; c: countdown; l: logs; Esc: back to countdown
//   - j/k, g/G, ctrl+d/u, pgup/pgdown: scroll logs
//   - Space: toggle auto-tail; /: search; n/N: next/previous match
//   - T: cycle theme; h or ?: help; e or Ctrl+C: quit
//
// While the search prompt is open it receives every key, so typing "e" or
// "c" edits the query instead of quitting or switching view. Enter applies
// the pattern; Esc closes the prompt, and a second Esc clears the search.
//
// # Search
//
// Patterns are case-insensitive regular expressions. A pattern that does
// not compile is matched literally, so "(b" finds the text "(b". Matching
// lines are tinted and the current match is highlighted and centred; any
// manual scroll, and every search, turns auto-tail off. Matches are
// recomputed whenever the buffer changes.
//
// # Themes
//
// Nightfox, Kanagawa, Slate and Holly. Each defines surfaces, text
// colours and one colour per countdown status. Styles are rebuilt from the
// theme on each render; BgStyle paints every word and gap on the panel
// background so ANSI resets do not leave unpainted cells.
//
// # Preferences
//
// The chosen theme and whether the log view is open are saved to the prefs
// file as they change and restored on the next start. A failed save is
// ignored.
//
// # Testing Considerations
//
// Tests build a Model with New, send a tea.WindowSizeMsg to make it ready,
// and drive it through Update with key and snapshot messages. Commands are
// executed by calling them directly. Lip Gloss renders without colour when
// no terminal is attached, so View output can be searched as plain text.
package ui
