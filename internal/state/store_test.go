package state

import (
	"testing"
	"time"

	"github.com/atarukun/home/internal/countdown"
)

func ready(days int) countdown.Display {
	return countdown.Display{Status: countdown.StatusReady, HasDate: true, Days: days, Date: "01 Dec 2025"}
}

func retrying(code string) countdown.Display {
	return countdown.Display{Status: countdown.StatusRetrying, ErrorCode: code}
}

func TestStore_RenderAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.Render(ready(24))

	snap := s.Snapshot()
	if !snap.HasFrame || snap.Display.Days != 24 {
		t.Fatalf("snapshot display = %#v, want days=24 HasFrame=true", snap.Display)
	}
	if !snap.HasReady || snap.LastReady.Days != 24 {
		t.Fatalf("LastReady = %#v, want days=24", snap.LastReady)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if len(snap.History) != 1 {
		t.Fatalf("History = %d entries, want 1", len(snap.History))
	}

	// Returned snapshot should be independent of the stored one.
	snap.History[0].Days = 999
	if s.Snapshot().History[0].Days != 24 {
		t.Fatal("Snapshot should clone history")
	}
}

func TestStore_FailureKeepsLastReady(t *testing.T) {
	var s Store

	s.Render(ready(10))
	s.Render(retrying("ALL_ENDPOINTS_FAILED"))

	snap := s.Snapshot()
	if snap.Display.Status != countdown.StatusRetrying {
		t.Fatalf("Display.Status = %s, want retrying", snap.Display.Status)
	}
	if !snap.HasReady || snap.LastReady.Days != 10 {
		t.Fatalf("LastReady = %#v, want the earlier date", snap.LastReady)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("zero store: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Render(retrying("ALL_ENDPOINTS_FAILED"))
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Render(countdown.Display{Status: countdown.StatusFetching})
	s.Render(retrying("ALL_ENDPOINTS_FAILED"))
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Render(ready(3))
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
}

func TestStore_BackoffTicksAreNotFailures(t *testing.T) {
	var s Store
	fetching := countdown.Display{Status: countdown.StatusFetching}

	// One failed sweep followed by four backoff ticks.
	s.Render(fetching)
	for i := 0; i < 5; i++ {
		s.Render(retrying("ALL_ENDPOINTS_FAILED"))
	}
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after one sweep: failures=%d offline=%v, want 1 and online", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Render(fetching)
	s.Render(retrying("ALL_ENDPOINTS_FAILED"))
	s.Render(retrying("ALL_ENDPOINTS_FAILED"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after two sweeps: failures=%d offline=%v, want 2 and offline", snap.ConsecutiveFailures, snap.IsOffline())
	}
}

func TestStore_PersistentLinkFailureCountsOnce(t *testing.T) {
	var s Store
	for i := 0; i < 30; i++ {
		s.Render(retrying("WIFI_TIMEOUT"))
	}
	if got := s.Snapshot().ConsecutiveFailures; got != 1 {
		t.Fatalf("failures = %d, want 1 for a link stuck in WIFI_TIMEOUT", got)
	}

	s.Render(retrying("ALL_ENDPOINTS_FAILED"))
	if got := s.Snapshot().ConsecutiveFailures; got != 2 {
		t.Fatalf("failures = %d, want 2 after the error changed", got)
	}
}

func TestStore_HistoryRecordsChangesOnly(t *testing.T) {
	var s Store

	connecting := countdown.Display{Status: countdown.StatusConnecting}
	for i := 0; i < 5; i++ {
		connecting.Elapsed = float64(i)
		s.Render(connecting)
	}
	s.Render(ready(5))
	s.Render(ready(5))

	if got := len(s.Snapshot().History); got != 2 {
		t.Fatalf("History = %d entries, want 2", got)
	}

	for i := 0; i < historyLimit*2; i++ {
		if i%2 == 0 {
			s.Render(retrying("TIMEOUT"))
		} else {
			s.Render(ready(5))
		}
	}
	hist := s.Snapshot().History
	if len(hist) != historyLimit {
		t.Fatalf("History = %d entries, want capped at %d", len(hist), historyLimit)
	}
	if last := hist[len(hist)-1]; last.Status != countdown.StatusReady {
		t.Fatalf("newest history entry = %s, want ready", last.Status)
	}
}

func TestStore_InjectedClock(t *testing.T) {
	at := time.Date(2025, 12, 24, 23, 59, 0, 0, time.UTC)
	s := Store{now: func() time.Time { return at }}
	s.Render(ready(1))
	if got := s.Snapshot().LastUpdated; !got.Equal(at) {
		t.Fatalf("LastUpdated = %v, want %v", got, at)
	}
}
