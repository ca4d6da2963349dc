// Package diag is the diagnostic log sink: timestamped, append-only lines
// built on zerolog. Nothing in this package returns a write error to its
// caller; a log that cannot be written is dropped.
package diag

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the sink.
type Options struct {
	Path    string    // log file; empty disables the file
	Level   string    // trace, debug, info, warn, error
	Console io.Writer // optional human-readable mirror, e.g. os.Stderr
}

// Sink owns the log file and the root logger.
type Sink struct {
	root zerolog.Logger
	file *os.File
	path string
}

// Open builds a Sink. It never fails: when the file cannot be created the
// sink keeps logging to Console, or nowhere.
func Open(opts Options) *Sink {
	var writers []io.Writer
	s := &Sink{path: strings.TrimSpace(opts.Path)}
	if s.path != "" {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err == nil {
			f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err == nil {
				s.file = f
				writers = append(writers, quiet{f})
			}
		}
	}
	if opts.Console != nil {
		writers = append(writers, quiet{zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.Kitchen}})
	}

	var w io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		w = writers[0]
	default:
		w = zerolog.MultiLevelWriter(writers...)
	}

	s.root = zerolog.New(w).Level(ParseLevel(opts.Level)).Hook(stamp{})
	return s
}

// Nop returns a Sink that discards everything.
func Nop() *Sink {
	return &Sink{root: zerolog.Nop()}
}

// Logger returns the root logger.
func (s *Sink) Logger() zerolog.Logger {
	if s == nil {
		return zerolog.Nop()
	}
	return s.root
}

// Named returns a child logger tagged with component.
func (s *Sink) Named(component string) zerolog.Logger {
	if s == nil {
		return zerolog.Nop()
	}
	if component == "" {
		return s.root
	}
	return s.root.With().Str("component", component).Logger()
}

// Path is the log file path, empty when no file is open.
func (s *Sink) Path() string {
	if s == nil || s.file == nil {
		return ""
	}
	return s.path
}

// Close releases the log file. Errors are ignored.
func (s *Sink) Close() {
	if s == nil || s.file == nil {
		return
	}
	_ = s.file.Close()
	s.file = nil
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// stamp adds an RFC 3339 time field to every event. It replaces
// Context.Timestamp, which formats through the process-wide
// zerolog.TimeFieldFormat.
type stamp struct{}

func (stamp) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str(zerolog.TimestampFieldName, time.Now().Format(time.RFC3339))
}

// quiet swallows write errors so a full disk or a closed file never reaches
// the caller.
type quiet struct {
	w io.Writer
}

func (q quiet) Write(p []byte) (int, error) {
	_, _ = q.w.Write(p)
	return len(p), nil
}
