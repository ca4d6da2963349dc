package ui

import (
	"cmp"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atarukun/home/internal/config"
	"github.com/atarukun/home/internal/prefs"
	"github.com/atarukun/home/internal/state"
)

// View selects the panel below the header.
type View int

const (
	ViewCountdown View = iota
	ViewLogs
)

// Options configures the UI.
type Options struct {
	Store     *state.Store
	Config    *config.Config
	PollTick  time.Duration // how often the store is re-read
	ThemeName string
	ShowLogs  bool // open on the log view
	PrefsPath string
	LogPath   string // diagnostic log shown in the log view; empty hides it
}

// Model is the Bubble Tea model for the countdown screen. It never talks to
// the controller directly; it only reads snapshots from the store.
type Model struct {
	store     *state.Store
	config    *config.Config
	prefsPath string
	logPath   string
	pollTick  time.Duration
	keys      keyMap
	now       func() time.Time

	theme         Theme
	currentView   View
	width, height int
	ready         bool
	showHelp      bool

	snapshot    state.Snapshot
	logViewport viewport.Model
	logState    logState
}

func New(opts Options) Model {
	m := Model{
		store:       opts.Store,
		config:      opts.Config,
		prefsPath:   cmp.Or(opts.PrefsPath, prefs.DefaultPath()),
		logPath:     strings.TrimSpace(opts.LogPath),
		pollTick:    DefaultUIInterval,
		keys:        DefaultKeyMap(),
		now:         time.Now,
		theme:       GetTheme(cmp.Or(opts.ThemeName, prefs.Defaults().Theme)),
		currentView: ViewCountdown,
		logState:    newLogState(),
	}
	if opts.PollTick > 0 {
		m.pollTick = opts.PollTick
	}
	if opts.ShowLogs {
		m.currentView = ViewLogs
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return m.poll(true)
}

// poll re-reads the store and, on the log view, the log file. The next tick
// is scheduled only when reschedule is set so Init and tick share the code.
func (m *Model) poll(reschedule bool) tea.Cmd {
	var cmds []tea.Cmd
	if reschedule {
		cmds = append(cmds, tickCmd(m.pollTick))
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewLogs && m.logState.follow {
		cmds = append(cmds, m.refreshLogs())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height, m.ready = msg.Width, msg.Height, true
		m.updateLogViewport()
	case tickMsg:
		cmd = m.poll(true)
	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
	case logBatchMsg:
		m.handleLogBatch(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	switch {
	case !m.ready:
		return "Loading..."
	case m.showHelp:
		return m.renderHelp()
	}
	body := m.renderCountdown()
	if m.currentView == ViewLogs {
		body = m.renderLogs()
	}
	return strings.Join([]string{m.renderHeader(), m.renderCommandBar(), body}, "\n")
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The help overlay is dismissed by any key, and an open search prompt
	// owns the keyboard.
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.currentView == ViewLogs && m.logState.search.editing {
		return m.handleLogSearchInput(msg)
	}

	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.showHelp = true
	case key.Matches(msg, k.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.logState.stale = true
		m.updateLogViewport()
		m.savePrefs()
	case key.Matches(msg, k.Tab):
		next := ViewLogs
		if m.currentView == ViewLogs {
			next = ViewCountdown
		}
		return m.switchView(next)
	case key.Matches(msg, k.ViewCountdown):
		return m.switchView(ViewCountdown)
	case key.Matches(msg, k.ViewLogs):
		return m.switchView(ViewLogs)
	case key.Matches(msg, k.Escape):
		if m.currentView == ViewLogs && m.logState.search.applied() {
			m.clearLogSearch()
			m.updateLogViewport()
			return m, nil
		}
		return m.switchView(ViewCountdown)
	case m.currentView == ViewLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	if m.currentView == v {
		return m, nil
	}
	m.currentView = v
	m.savePrefs()
	var cmd tea.Cmd
	if v == ViewLogs {
		m.logState.readAt = time.Time{}
		cmd = m.refreshLogs()
	}
	return m, cmd
}

// savePrefs persists theme and view. A failed write only costs the choice
// on the next start.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{
		Theme:    m.theme.Name,
		ShowLogs: m.currentView == ViewLogs,
	})
}

type (
	tickMsg     time.Time
	snapshotMsg state.Snapshot
)

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg { return snapshotMsg(store.Snapshot()) }
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !(ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled)) {
		return err
	}
	return nil
}
