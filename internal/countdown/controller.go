package countdown

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/atarukun/home/internal/calendar"
	"github.com/atarukun/home/internal/fault"
)

// Link is the network association the controller drives once per tick.
type Link interface {
	Poll() bool
	IsConnected() bool
	Elapsed() float64
	Available() bool
	HasCredentials() bool
	LastError() fault.Code
}

// Fetcher supplies the authoritative date.
type Fetcher interface {
	FetchDate(ctx context.Context) (calendar.Date, bool)
	SweepDue() bool
	LastError() fault.Code
	Reset()
}

type resetter interface {
	Reset()
}

// Controller turns link and fetch state into Display frames.
type Controller struct {
	link     Link
	fetcher  Fetcher
	renderer Renderer
	log      zerolog.Logger
	now      func() time.Time

	last    Display
	started bool
}

// Option customises a Controller.
type Option func(*Controller)

// WithNow overrides the wall clock stamped on frames.
func WithNow(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New builds a Controller. A nil renderer is allowed; frames are then only
// returned from Tick.
func New(link Link, fetcher Fetcher, renderer Renderer, log zerolog.Logger, opts ...Option) *Controller {
	c := &Controller{
		link:     link,
		fetcher:  fetcher,
		renderer: renderer,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start resets the owned state so a run begins from scratch.
func (c *Controller) Start() {
	c.fetcher.Reset()
	if r, ok := c.link.(resetter); ok {
		r.Reset()
	}
	c.last = Display{}
	c.started = true
	c.log.Info().Msg("countdown_start")
}

// Tick runs one update: poll the link, fetch the date when the link allows
// it, then render. It never fails.
func (c *Controller) Tick(ctx context.Context) Display {
	if !c.started {
		c.Start()
	}

	polled := c.link.Poll()

	if c.link.IsConnected() && c.fetcher.SweepDue() {
		c.emit(c.frame(StatusFetching, ""))
	}

	if date, ok := c.fetcher.FetchDate(ctx); ok {
		d := c.frame(StatusReady, "")
		d.HasDate = true
		d.Days = date.DaysUntilChristmas()
		d.Date = calendar.Format(date)
		d.Message = d.Headline()
		return c.emit(d)
	}

	return c.emit(c.fallback(polled))
}

// fallback picks the status shown when there is no date, in order of
// precedence.
func (c *Controller) fallback(polled bool) Display {
	switch {
	case !c.link.Available():
		return c.frame(StatusNoNetwork, fault.CodeNoNetwork.String())
	case !c.link.HasCredentials():
		return c.frame(StatusNoCredentials, "")
	case polled && !c.link.IsConnected():
		d := c.frame(StatusConnecting, "")
		d.Elapsed = c.link.Elapsed()
		d.Message = statusMessage(StatusConnecting, d.Elapsed, "")
		return d
	}

	if code := c.fetcher.LastError(); c.link.IsConnected() && !code.IsZero() {
		return c.frame(StatusRetrying, code.String())
	}
	if code := c.link.LastError(); !polled && !code.IsZero() {
		return c.frame(StatusRetrying, code.String())
	}
	return c.frame(StatusThinking, "")
}

func (c *Controller) frame(status Status, code string) Display {
	return Display{
		Status:    status,
		ErrorCode: code,
		Message:   statusMessage(status, 0, code),
		At:        c.now(),
	}
}

func (c *Controller) emit(d Display) Display {
	if d.Status != c.last.Status || d.ErrorCode != c.last.ErrorCode || d.Days != c.last.Days {
		ev := c.log.Info()
		if d.Status == StatusRetrying || d.Status == StatusNoNetwork {
			ev = c.log.Warn()
		}
		ev.Str("status", d.Status.String()).
			Str("text", d.Message).
			Str("code", d.ErrorCode).
			Msg("countdown_frame")
	}
	c.last = d
	if c.renderer != nil {
		c.renderer.Render(d)
	}
	return d
}

// Last returns the most recent frame.
func (c *Controller) Last() Display { return c.last }
