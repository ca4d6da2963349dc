// Package state holds the latest countdown frame for the terminal UI.
//
// # Overview
//
// The countdown controller runs on the poller goroutine and renders a frame
// on every tick. The UI runs on Bubble Tea's goroutine and wants to read
// whatever is current when its own refresh tick fires. Store sits between
// the two: it is a countdown.Renderer on one side and a snapshot source on
// the other.
//
// # Architecture
//
//	Producer (poller):               Consumer (UI):
//	┌──────────────────────┐        ┌──────────────────────┐
//	│ controller.Tick()    │        │ tickMsg              │
//	│      ↓               │        │      ↓               │
//	│ Fanout.Render(frame) │        │ fetchSnapshotCmd()   │
//	│      ↓               │        │      ↓               │
//	│ store.Render(frame)  │───────→│ store.Snapshot()     │
//	│      ↓               │(mutex) │      ↓               │
//	│ next interval...     │        │ View()               │
//	└──────────────────────┘        └──────────────────────┘
//
// The producer never waits on the UI and the UI never triggers network
// work. A slow sweep only delays the next frame; the UI keeps redrawing the
// previous one, with its "Updated" age growing.
//
// # Core Types
//
// Store:
//   - countdown.Renderer implementation
//   - sync.RWMutex guarded; the zero value is ready to use
//   - one writer (the poller), any number of readers
//
// Snapshot:
//   - Display: the most recent frame, whatever its status
//   - LastReady/HasReady: the most recent frame that carried a date
//   - History: frames where the status or error code changed
//   - ConsecutiveFailures: failed sync attempts since the last date
//   - LastUpdated: wall time of the last Render
//
// # Render Semantics
//
// Every frame replaces Display and stamps LastUpdated:
//
//	// A frame with a date
//	store.Render(Display{Status: ready, HasDate: true, Days: 24})
//	→ snapshot.Display = frame
//	→ snapshot.LastReady = frame
//	→ snapshot.ConsecutiveFailures = 0
//
//	// A retrying frame after a fetching frame
//	store.Render(Display{Status: fetching})
//	store.Render(Display{Status: retrying, ErrorCode: "ALL_ENDPOINTS_FAILED"})
//	→ snapshot.Display = retrying frame
//	→ snapshot.LastReady = <unchanged>
//	→ snapshot.ConsecutiveFailures++
//
// Keeping LastReady lets the countdown view show "Last known: 5 days until
// Christmas" under a sync error instead of an empty screen.
//
// # Counting Failures
//
// ConsecutiveFailures counts failed sync attempts since the last date, not
// retrying frames. The controller renders a frame on every tick, and after
// a failed sweep it repeats the same retrying frame on each backoff tick
// (five of them with the default 5s retry and 1s poll). Only a retrying
// frame that follows something else counts as a new attempt:
//
//   - fetching → retrying: a sweep ran and failed
//   - connecting → retrying WIFI_TIMEOUT: the association attempt failed
//   - retrying X → retrying Y: the failure changed
//   - retrying X → retrying X: a backoff tick, not counted
//
// A link stuck in WIFI_TIMEOUT therefore counts once, not once per tick.
// IsOffline reports true from the second consecutive failure; the header
// shows "● OFFLINE" from then until a date arrives.
//
// # History
//
// History records the first frame of every status or error-code run,
// oldest first, capped at a small fixed length. Connecting frames whose
// elapsed seconds change on every tick are one run, so they add a single
// entry. The countdown view lists History beside the main box on wide
// terminals.
//
// # Concurrency Model
//
//   - Render(): takes the write lock
//   - Snapshot(): takes the read lock
//
// The lock covers only the copy, never rendering or I/O. Snapshot returns
// its History through slices.Clone, so the UI may keep or modify the
// returned value without aliasing the store.
//
// # Usage Example
//
//	store := &state.Store{}
//	fanout := countdown.NewFanout(log, store)
//	ctrl := countdown.New(link, fetcher, fanout, log)
//	app.StartPoller(ctx, ctrl, time.Second)
//
//	// Later, on the UI goroutine:
//	snap := store.Snapshot()
//	if snap.HasFrame {
//		fmt.Println(snap.Display.Headline())
//	}
//
// # Testing Considerations
//
// The zero Store works in tests without setup. Tests inside the package
// may set the unexported now field to pin LastUpdated. Snapshot of a store
// that never rendered returns the zero Snapshot with HasFrame false.
package state
