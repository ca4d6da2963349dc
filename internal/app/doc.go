// Package app is the composition root for the Christmas countdown.
//
// # Overview
//
// Run wires configuration, the diagnostic log, the network link, the date
// fetch service and the countdown controller together, then hands the
// screen to the terminal UI (or, headless, to the log). Everything that
// talks to the network runs on one background poller goroutine; the UI only
// reads snapshots.
//
// # Components
//
//   - app.go: Run, the controller factory and the headless renderer
//   - poller.go: StartPoller, the single driver goroutine
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        config.toml + CHRISTMAS_WIFI_* env
//	       ├─────> diag.Open()          append-only JSON log
//	       ├─────> state.Store{}        frame store for the UI
//	       ├─────> publish.Dial()       optional MQTT mirror
//	       ├─────> newController()      link + datefetch + countdown
//	       ├─────> StartPoller()        Tick on every interval
//	       └─────> ui.Run()             TUI (blocks), or wait for ctx
//
//	Poller goroutine:
//	┌──────────────────────────────────────────┐
//	│ controller.Tick(ctx)                     │
//	│  ├─> link.Poll()         one wifi step   │
//	│  ├─> fetcher.FetchDate() cached or sweep │
//	│  └─> fanout.Render()                     │
//	│       ├─> state.Store                    │
//	│       ├─> publish.MQTT   (if enabled)    │
//	│       └─> console        (if headless)   │
//	└──────────────────────────────────────────┘
//
// # Link Selection
//
// The [wifi] adapter key picks the link handed to both the controller and
// the fetch service:
//
//   - nmcli (default): wifi.Manager driving NetworkManager's CLI
//   - wired: wifi.Wired, always connected, for hosts already online
//   - none: wifi.Manager with no adapter, which reports "No network"
//
// Tests replace the adapter, the HTTP getter and the clock through the
// unexported deps struct.
//
// # Polling Behavior
//
// StartPoller ticks once immediately and then on every interval (1s by
// default, [ui] poll or -poll to change it). Tick never fails and never
// blocks longer than one request timeout per endpoint, so the interval is
// the only pacing: the WiFi timeout, the fetch cache and the retry backoff
// are all measured by the clock inside each component, not by sleeping.
//
// # Headless Mode
//
// With -headless no TUI starts. The log also mirrors to stderr through
// zerolog's console writer, and a renderer logs a line whenever the
// status, headline or error code changes. The headline is the message; the
// status, days, date and error code are fields. Repeated connecting frames, whose elapsed seconds change every tick, are
// not logged again.
//
// # Error Handling
//
// Only configuration errors are fatal and returned from Run ("load config:
// ..."). Everything else is logged and surfaces as a status on the display:
//
//   - no adapter or no SSID: a status, not an error
//   - association timeout: WIFI_TIMEOUT
//   - every endpoint failing: ALL_ENDPOINTS_FAILED
//   - broker unreachable: mqtt_disabled in the log, countdown unaffected
//
// # Shutdown
//
// Cancelling ctx (SIGINT or SIGTERM from main) ends the UI. The deferred
// shutdown then cancels the poller, waits for it to exit and logs
// "stopped"; MQTT is disconnected and the log file closed after that.
package app
