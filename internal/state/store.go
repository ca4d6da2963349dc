package state

import (
	"slices"
	"sync"
	"time"

	"github.com/atarukun/home/internal/countdown"
)

const historyLimit = 20

// Snapshot represents the latest frame available to the UI.
type Snapshot struct {
	Display     countdown.Display
	HasFrame    bool
	LastReady   countdown.Display // most recent frame that carried a date
	HasReady    bool
	LastUpdated time.Time
	// History holds frames where the status or error code changed, oldest
	// first.
	History             []countdown.Display
	ConsecutiveFailures int // failed sync attempts since the last date
}

// IsOffline returns true once two sync attempts in a row have failed.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates the driver goroutine writing frames and the UI reading
// them.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	now      func() time.Time
}

// Render implements countdown.Renderer.
func (s *Store) Render(d countdown.Display) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.snapshot.Display
	changed := !s.snapshot.HasFrame || prev.Status != d.Status || prev.ErrorCode != d.ErrorCode
	if changed {
		s.snapshot.History = append(s.snapshot.History, d)
		if over := len(s.snapshot.History) - historyLimit; over > 0 {
			s.snapshot.History = slices.Clone(s.snapshot.History[over:])
		}
	}

	switch {
	case d.HasDate:
		s.snapshot.LastReady = d
		s.snapshot.HasReady = true
		s.snapshot.ConsecutiveFailures = 0
	case failedAttempt(prev, d):
		s.snapshot.ConsecutiveFailures++
	}

	s.snapshot.Display = d
	s.snapshot.HasFrame = true
	s.snapshot.LastUpdated = s.clock()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.History = slices.Clone(s.snapshot.History)
	return snap
}

func (s *Store) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// failedAttempt reports whether d records a new failure. The backoff ticks
// after a failed sweep repeat the same retrying frame and are not counted;
// a sweep always emits a fetching frame first, so its result is.
func failedAttempt(prev, d countdown.Display) bool {
	if d.Status != countdown.StatusRetrying {
		return false
	}
	return prev.Status != countdown.StatusRetrying || prev.ErrorCode != d.ErrorCode
}
