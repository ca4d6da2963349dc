package wifi

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/atarukun/home/internal/clock"
	"github.com/atarukun/home/internal/fault"
)

// Adapter is the network-adapter capability the manager drives. Every
// method may fail; failures are classified and logged by the manager and
// never propagate to its caller.
type Adapter interface {
	Scan(ctx context.Context) ([]string, error)
	Connect(ctx context.Context, ssid, password string) error
	IsAssociated(ctx context.Context) (bool, error)
	Activate(ctx context.Context, on bool) error
}

// Credentials name the network to join. A blank SSID means no network is
// configured, which is a valid state and not an error.
type Credentials struct {
	SSID     string
	Password string
}

// Present reports whether an SSID is configured.
func (c Credentials) Present() bool {
	return strings.TrimSpace(c.SSID) != ""
}

// State is the association progress.
type State uint8

const (
	StateIdle State = iota
	StateScanning
	StateConnecting
	StateConnected
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Default timings.
const (
	DefaultTimeout        = 60 * time.Second
	DefaultCommandTimeout = 5 * time.Second
)

// Config tunes a Manager.
type Config struct {
	Credentials Credentials
	// Timeout bounds a whole association attempt, measured from the first
	// scan.
	Timeout time.Duration
	// RearmAfter, when positive, lets a failed manager start over once that
	// long has passed since it failed. Zero keeps Failed terminal.
	RearmAfter time.Duration
	// CommandTimeout bounds each adapter call.
	CommandTimeout time.Duration
}

// Manager joins the configured network incrementally. Each Poll does at most
// one step of work and returns; it is meant to be called once per tick from
// a single goroutine.
type Manager struct {
	adapter Adapter
	clock   clock.Clock
	cfg     Config
	log     zerolog.Logger

	state     State
	startTick clock.Ticks
	failTick  clock.Ticks
	lastErr   fault.Code
}

// NewManager builds a Manager. A nil adapter models a device without any
// network capability.
func NewManager(adapter Adapter, clk clock.Clock, cfg Config, log zerolog.Logger) *Manager {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = DefaultCommandTimeout
	}
	cfg.Credentials.SSID = strings.TrimSpace(cfg.Credentials.SSID)
	if clk == nil {
		clk = clock.NewMonotonic()
	}
	return &Manager{adapter: adapter, clock: clk, cfg: cfg, log: log}
}

// Poll advances the state machine by one step. It returns true while the
// link is connected or still progressing within its deadline, and false once
// the attempt has failed or cannot start.
func (m *Manager) Poll() bool {
	if m.adapter == nil {
		m.lastErr = fault.CodeNoNetwork
		return false
	}
	if !m.cfg.Credentials.Present() {
		m.lastErr = fault.CodeNoCreds
		return false
	}

	now := m.clock.Now()
	switch m.state {
	case StateConnected:
		return true

	case StateFailed:
		if m.cfg.RearmAfter <= 0 || !clock.Expired(m.failTick, now, m.cfg.RearmAfter) {
			return false
		}
		m.log.Info().Str("ssid", m.cfg.Credentials.SSID).Dur("after", m.cfg.RearmAfter).Msg("wifi_rearm")
		m.state = StateIdle
		fallthrough

	case StateIdle:
		m.startTick = now
		m.lastErr = fault.Clear
		m.transition(StateScanning)
		if err := m.call(func(ctx context.Context) error { return m.adapter.Activate(ctx, true) }); err != nil {
			m.log.Warn().Err(err).Msg("wifi_activate_failed")
		}
		return m.scan(now)

	case StateScanning:
		return m.scan(now)

	case StateConnecting:
		return m.checkAssociation(now)
	}
	return false
}

func (m *Manager) scan(now clock.Ticks) bool {
	var ssids []string
	err := m.call(func(ctx context.Context) error {
		var err error
		ssids, err = m.adapter.Scan(ctx)
		return err
	})
	if err != nil {
		// A failed scan is treated as an empty one; the next poll retries.
		m.log.Warn().Err(err).Str("code", fault.Classify(err).String()).Msg("wifi_scan_failed")
		ssids = nil
	}

	if !containsSSID(ssids, m.cfg.Credentials.SSID) {
		return m.checkDeadline(now)
	}

	associated, err := m.associated()
	if err == nil && associated {
		m.transition(StateConnected)
		return true
	}
	if err := m.call(func(ctx context.Context) error {
		return m.adapter.Connect(ctx, m.cfg.Credentials.SSID, m.cfg.Credentials.Password)
	}); err != nil {
		m.log.Warn().Err(err).Str("ssid", m.cfg.Credentials.SSID).Msg("wifi_connect_failed")
		return m.checkDeadline(now)
	}
	m.transition(StateConnecting)
	return true
}

func (m *Manager) checkAssociation(now clock.Ticks) bool {
	associated, err := m.associated()
	if err != nil {
		m.log.Warn().Err(err).Msg("wifi_status_failed")
	}
	if associated {
		m.transition(StateConnected)
		return true
	}
	return m.checkDeadline(now)
}

func (m *Manager) checkDeadline(now clock.Ticks) bool {
	if !clock.Expired(m.startTick, now, m.cfg.Timeout) {
		return true
	}
	m.failTick = now
	m.lastErr = fault.CodeWifiTimeout
	m.log.Error().
		Str("ssid", m.cfg.Credentials.SSID).
		Str("stage", m.state.String()).
		Dur("timeout", m.cfg.Timeout).
		Msg("wifi_timeout")
	m.transition(StateFailed)
	return false
}

func (m *Manager) associated() (bool, error) {
	var ok bool
	err := m.call(func(ctx context.Context) error {
		var err error
		ok, err = m.adapter.IsAssociated(ctx)
		return err
	})
	return ok, err
}

// call runs one adapter operation under the command timeout and converts a
// panic inside the adapter into an error.
func (m *Manager) call(op func(ctx context.Context) error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.CommandTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = &adapterPanic{value: r}
		}
	}()
	return op(ctx)
}

func (m *Manager) transition(next State) {
	if m.state == next {
		return
	}
	m.log.Info().Str("from", m.state.String()).Str("to", next.String()).Msg("wifi_state")
	m.state = next
	if next == StateConnected {
		m.lastErr = fault.Clear
	}
}

// IsConnected reports whether the link is associated.
func (m *Manager) IsConnected() bool {
	return m.state == StateConnected
}

// Elapsed returns the seconds since the current attempt started, or zero
// when no attempt is running.
func (m *Manager) Elapsed() float64 {
	switch m.state {
	case StateScanning, StateConnecting:
		return clock.Since(m.startTick, m.clock.Now()).Seconds()
	default:
		return 0
	}
}

// State returns the current association state.
func (m *Manager) State() State { return m.state }

// Available reports whether a network adapter exists at all.
func (m *Manager) Available() bool { return m.adapter != nil }

// HasCredentials reports whether an SSID is configured.
func (m *Manager) HasCredentials() bool { return m.cfg.Credentials.Present() }

// LastError returns the most recent classified failure, zero when none.
func (m *Manager) LastError() fault.Code { return m.lastErr }

// SSID returns the configured network name.
func (m *Manager) SSID() string { return m.cfg.Credentials.SSID }

// Reset returns the manager to Idle, dropping any attempt in progress.
func (m *Manager) Reset() {
	m.state = StateIdle
	m.startTick = 0
	m.failTick = 0
	m.lastErr = fault.Clear
}

func containsSSID(ssids []string, want string) bool {
	for _, s := range ssids {
		if strings.TrimSpace(s) == want {
			return true
		}
	}
	return false
}

type adapterPanic struct {
	value any
}

func (p *adapterPanic) Error() string {
	return "adapter panic: " + strings.TrimSpace(stringify(p.value))
}

func (p *adapterPanic) FaultCode() fault.Code {
	return fault.OtherCode("adapter_panic")
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case error:
		return t.Error()
	default:
		return "unknown"
	}
}
