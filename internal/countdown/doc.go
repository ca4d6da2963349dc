// Package countdown is the per-tick controller that ties the link, the date
// fetcher and the calendar together and hands renderers a Display.
//
// # Overview
//
// Controller.Tick is the whole update step. It is called once per poll
// interval from a single goroutine, never returns an error, and always
// produces exactly one final frame:
//
//  1. Poll the link, advancing the WiFi state machine by one step.
//  2. If the link is connected and the fetcher is about to sweep, render a
//     Fetching frame first so slow endpoints show progress.
//  3. Ask the fetcher for the date; it answers from its cache when fresh.
//  4. With a date, render Ready with the days until the next Christmas and
//     the date formatted as "01 Dec 2025".
//  5. Without one, render the status that explains why.
//
// The first Tick (or an explicit Start) resets the fetcher and, when it
// supports it, the link, so a run always begins from scratch.
//
// # Status Precedence
//
// When there is no date the status is chosen in this order:
//
//	no adapter             → no_network      "No network"     NO_NETWORK
//	no SSID configured     → no_credentials  "No WiFi config"
//	association under way  → connecting      "Connecting to WiFi... 12s"
//	connected, fetch error → retrying        "Unable to sync (ALL_ENDPOINTS_FAILED)"
//	link failed            → retrying        "Unable to sync (WIFI_TIMEOUT)"
//	otherwise              → thinking        "Checking..."
//
// The elapsed seconds on a connecting frame are truncated to whole seconds.
//
// # Display
//
// A Display is a plain value. Days and Date are set only when HasDate is
// true. Headline gives the one line a small screen would show: "N days
// until Christmas", "1 day until Christmas", "Merry Christmas!" on the day
// itself, or the status message. Same compares two frames ignoring their
// timestamps, which renderers use to skip redundant work.
//
// # Renderers
//
// A Renderer presents frames and holds no countdown logic. Fanout hands
// each frame to several renderers in order; a renderer that panics is
// logged as render_panic and skipped for that frame only. RenderFunc adapts
// a plain function, which is how the headless console renderer is built.
//
// # Logging
//
// The controller logs countdown_frame whenever the status, error code or
// days change, at warn level for retrying and no_network and at info
// otherwise. Identical consecutive frames are not logged.
package countdown
