package clock

import (
	"testing"
	"time"
)

func TestSince(t *testing.T) {
	cases := []struct {
		name       string
		start, now Ticks
		want       time.Duration
	}{
		{"zero", 100, 100, 0},
		{"forward", 1000, 4000, 3 * time.Second},
		{"across wrap", 0xFFFFFF00, 0x100, 0x200 * time.Millisecond},
		{"exactly at max", 0, 0xFFFFFFFF, 0xFFFFFFFF * time.Millisecond},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Since(tc.start, tc.now); got != tc.want {
				t.Fatalf("Since(%d, %d) = %v, want %v", tc.start, tc.now, got, tc.want)
			}
		})
	}
}

func TestExpired(t *testing.T) {
	if Expired(0, 4999, 5*time.Second) {
		t.Fatal("Expired(0, 4999, 5s) = true, want false")
	}
	if !Expired(0, 5000, 5*time.Second) {
		t.Fatal("Expired(0, 5000, 5s) = false, want true")
	}
	if Expired(0xFFFFF000, 0x200, time.Hour) {
		t.Fatal("Expired across wrap = true, want false")
	}
}

func TestManual_AdvanceWraps(t *testing.T) {
	m := NewManual(0xFFFFFFF0)
	m.Advance(32 * time.Millisecond)
	if got := m.Now(); got != 0x10 {
		t.Fatalf("Now() = %#x, want 0x10", uint32(got))
	}
	m.Set(42)
	if got := m.Now(); got != 42 {
		t.Fatalf("Now() = %d, want 42", got)
	}
}

func TestMonotonic_StartsNearZero(t *testing.T) {
	m := NewMonotonic()
	if got := m.Now(); got > 1000 {
		t.Fatalf("Now() = %d right after construction, want < 1000", got)
	}
}
