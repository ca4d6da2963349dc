// Package clock provides the millisecond tick counter used for every
// deadline and cache window.
//
// Ticks are uint32 milliseconds and wrap roughly every 49.7 days. Elapsed
// time is computed with modular subtraction, which is exact as long as the
// real interval is shorter than one wrap period. Callers refresh their stored
// ticks far more often than that.
package clock

import (
	"sync/atomic"
	"time"
)

// Ticks is a wrapping millisecond counter value.
type Ticks uint32

// Clock returns the current tick.
type Clock interface {
	Now() Ticks
}

// Since returns the milliseconds elapsed from start to now, accounting for a
// single wraparound of the counter.
func Since(start, now Ticks) time.Duration {
	return time.Duration(uint32(now-start)) * time.Millisecond
}

// Expired reports whether span has passed between start and now.
func Expired(start, now Ticks, span time.Duration) bool {
	return Since(start, now) >= span
}

// Monotonic derives ticks from the runtime's monotonic clock.
type Monotonic struct {
	origin time.Time
}

// NewMonotonic returns a Monotonic clock whose origin is the current instant.
func NewMonotonic() *Monotonic {
	return &Monotonic{origin: time.Now()}
}

// Now implements Clock.
func (m *Monotonic) Now() Ticks {
	return Ticks(uint32(time.Since(m.origin).Milliseconds()))
}

// Manual is a Clock advanced explicitly. It is safe for concurrent use.
type Manual struct {
	now atomic.Uint32
}

// NewManual returns a Manual clock starting at start.
func NewManual(start Ticks) *Manual {
	m := &Manual{}
	m.now.Store(uint32(start))
	return m
}

// Now implements Clock.
func (m *Manual) Now() Ticks {
	return Ticks(m.now.Load())
}

// Advance moves the clock forward by d, wrapping like the real counter.
func (m *Manual) Advance(d time.Duration) {
	m.now.Add(uint32(d.Milliseconds()))
}

// Set jumps the clock to t.
func (m *Manual) Set(t Ticks) {
	m.now.Store(uint32(t))
}
