package app

import (
	"context"
	"time"

	"github.com/atarukun/home/internal/countdown"
)

const defaultPollInterval = time.Second

// Ticker advances the countdown by one step.
type Ticker interface {
	Tick(ctx context.Context) countdown.Display
}

// StartPoller launches the single driver goroutine that ticks the
// countdown at a fixed cadence. The first tick runs immediately. The
// returned channel is closed once the goroutine exits after ctx is
// cancelled.
func StartPoller(ctx context.Context, ticker Ticker, interval time.Duration) <-chan struct{} {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			if ctx.Err() != nil {
				return
			}
			ticker.Tick(ctx)
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
		}
	}()
	return done
}
