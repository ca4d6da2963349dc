package datefetch

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/atarukun/home/internal/calendar"
	"github.com/atarukun/home/internal/clock"
	"github.com/atarukun/home/internal/fault"
	"github.com/atarukun/home/internal/timeapi"
)

// Default intervals.
const (
	DefaultFetchInterval = time.Hour
	DefaultRetryInterval = 5 * time.Second
	DefaultTimeout       = 3 * time.Second
)

// Link reports whether the network can carry a request.
type Link interface {
	IsConnected() bool
	Available() bool
}

// FetchState is the service's view of the last sweep.
type FetchState struct {
	Cached       *calendar.Date
	LastAttempt  clock.Ticks
	Attempted    bool
	Succeeded    bool
	LastError    fault.Code
	NextEndpoint int
}

// Config tunes a Service.
type Config struct {
	Endpoints     []timeapi.Endpoint
	FetchInterval time.Duration
	RetryInterval time.Duration
	Timeout       time.Duration
}

// Service acquires the current date from the configured endpoints, caching a
// success for FetchInterval and backing off for RetryInterval after a failed
// sweep. It is driven from a single goroutine and holds no locks.
type Service struct {
	link      Link
	getter    timeapi.Getter
	clock     clock.Clock
	endpoints []timeapi.Endpoint
	fetchTTL  time.Duration
	retry     time.Duration
	timeout   time.Duration
	log       zerolog.Logger

	state   FetchState
	gateErr fault.Code
}

// New builds a Service. An empty endpoint list falls back to the defaults.
func New(link Link, getter timeapi.Getter, clk clock.Clock, cfg Config, log zerolog.Logger) *Service {
	if cfg.FetchInterval <= 0 {
		cfg.FetchInterval = DefaultFetchInterval
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultRetryInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if len(cfg.Endpoints) == 0 {
		cfg.Endpoints = timeapi.DefaultEndpoints()
	}
	if clk == nil {
		clk = clock.NewMonotonic()
	}
	endpoints := make([]timeapi.Endpoint, len(cfg.Endpoints))
	copy(endpoints, cfg.Endpoints)

	return &Service{
		link:      link,
		getter:    getter,
		clock:     clk,
		endpoints: endpoints,
		fetchTTL:  cfg.FetchInterval,
		retry:     cfg.RetryInterval,
		timeout:   cfg.Timeout,
		log:       log,
	}
}

// FetchDate returns the current date when one is known. It performs at most
// one sweep over the endpoints, and none while the cache is fresh, the link
// is down or a failed sweep is still inside its backoff window.
func (s *Service) FetchDate(ctx context.Context) (calendar.Date, bool) {
	if !s.linkUp() {
		return calendar.Date{}, false
	}
	s.gateErr = fault.Clear

	now := s.clock.Now()
	if s.cacheFresh(now) {
		return *s.state.Cached, true
	}
	if s.backingOff(now) {
		return calendar.Date{}, false
	}

	s.state.LastAttempt = now
	s.state.Attempted = true
	return s.sweep(ctx)
}

func (s *Service) sweep(ctx context.Context) (calendar.Date, bool) {
	n := len(s.endpoints)
	start := s.state.NextEndpoint % n

	for i := 0; i < n; i++ {
		idx := (start + i) % n
		ep := s.endpoints[idx]

		date, err := s.try(ctx, ep)
		if err != nil {
			code := fault.Classify(err)
			s.log.Warn().
				Str("endpoint", ep.Name).
				Str("code", code.String()).
				Err(err).
				Msg("date_fetch_failed")
			if ctx.Err() != nil {
				break
			}
			continue
		}

		cached := date
		s.state.Cached = &cached
		s.state.Succeeded = true
		s.state.LastError = fault.Clear
		s.state.NextEndpoint = (idx + 1) % n
		s.log.Info().
			Str("endpoint", ep.Name).
			Str("date", date.String()).
			Int("days", date.DaysUntilChristmas()).
			Msg("date_fetched")
		return date, true
	}

	s.state.Succeeded = false
	s.state.Cached = nil
	s.state.LastError = fault.CodeAllFailed
	s.state.NextEndpoint = (start + 1) % n
	s.log.Error().
		Int("endpoints", n).
		Str("next", s.endpoints[s.state.NextEndpoint].Name).
		Msg("date_fetch_all_failed")
	return calendar.Date{}, false
}

func (s *Service) try(ctx context.Context, ep timeapi.Endpoint) (calendar.Date, error) {
	body, err := s.getter.Get(ctx, ep.URL, s.timeout)
	if err != nil {
		return calendar.Date{}, err
	}
	return ep.Parse(body)
}

func (s *Service) linkUp() bool {
	if s.link == nil || !s.link.Available() {
		s.gateErr = fault.CodeNoNetwork
		return false
	}
	if !s.link.IsConnected() {
		s.gateErr = fault.CodeNoWifi
		return false
	}
	return true
}

func (s *Service) cacheFresh(now clock.Ticks) bool {
	return s.state.Cached != nil && s.state.Succeeded &&
		!clock.Expired(s.state.LastAttempt, now, s.fetchTTL)
}

func (s *Service) backingOff(now clock.Ticks) bool {
	return s.state.Attempted && !s.state.Succeeded &&
		!clock.Expired(s.state.LastAttempt, now, s.retry)
}

// SweepDue reports whether the next FetchDate would go to the network.
func (s *Service) SweepDue() bool {
	if s.link == nil || !s.link.Available() || !s.link.IsConnected() {
		return false
	}
	now := s.clock.Now()
	return !s.cacheFresh(now) && !s.backingOff(now)
}

// LastError returns the reason the last FetchDate produced no date: the
// link gate when it was closed, otherwise the sweep result.
func (s *Service) LastError() fault.Code {
	if !s.gateErr.IsZero() {
		return s.gateErr
	}
	return s.state.LastError
}

// State returns a copy of the fetch state.
func (s *Service) State() FetchState {
	st := s.state
	if st.Cached != nil {
		d := *st.Cached
		st.Cached = &d
	}
	return st
}

// Endpoints returns the sweep order.
func (s *Service) Endpoints() []timeapi.Endpoint {
	out := make([]timeapi.Endpoint, len(s.endpoints))
	copy(out, s.endpoints)
	return out
}

// Reset forgets the cache, the backoff window and the sweep position.
func (s *Service) Reset() {
	s.state = FetchState{}
	s.gateErr = fault.Clear
}
