package logtail

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file is not an error.
func Read(path string, maxLines int) ([]string, error) {
	f, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	// Keep at most twice the window in memory, compacting to the newest
	// maxLines whenever it fills.
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
		if maxLines > 0 && len(lines) >= 2*maxLines {
			lines = append(lines[:0], lines[len(lines)-maxLines:]...)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines, nil
}

// Entry is one decoded diagnostic log line.
type Entry struct {
	Time      time.Time
	Level     string
	Component string
	Message   string
	Error     string
	Fields    map[string]string
}

// Parse decodes a JSON log line. ok is false for anything that is not a
// JSON object.
func Parse(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "{") {
		return Entry{}, false
	}
	dec := json.NewDecoder(strings.NewReader(line))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return Entry{}, false
	}

	e := Entry{Fields: make(map[string]string)}
	for k, v := range raw {
		s := stringify(v)
		switch k {
		case "time":
			if ts, err := time.Parse(time.RFC3339, s); err == nil {
				e.Time = ts
			}
		case "level":
			e.Level = s
		case "component":
			e.Component = s
		case "message":
			e.Message = s
		case "error":
			e.Error = s
		default:
			e.Fields[k] = s
		}
	}
	return e, true
}

// Format renders a log line for display:
//
//	2025-12-01 08:00:00 INFO [wifi] wifi_state – from=idle to=scanning
//
// Lines that are not JSON are returned unchanged.
func Format(line string) string {
	e, ok := Parse(line)
	if !ok {
		return line
	}

	var parts []string
	if !e.Time.IsZero() {
		parts = append(parts, e.Time.In(time.Local).Format("2006-01-02 15:04:05"))
	}
	level := strings.ToUpper(strings.TrimSpace(e.Level))
	if level == "" {
		level = "INFO"
	}
	parts = append(parts, level)
	if e.Component != "" {
		parts = append(parts, "["+e.Component+"]")
	}
	header := strings.Join(parts, " ")
	if e.Message != "" {
		header += " " + e.Message
	}

	var details []string
	for _, k := range slices.Sorted(maps.Keys(e.Fields)) {
		details = append(details, k+"="+e.Fields[k])
	}
	if e.Error != "" {
		details = append(details, "error="+e.Error)
	}
	if len(details) == 0 {
		return header
	}
	return header + " – " + strings.Join(details, " ")
}

// FormatLines applies Format to every line.
func FormatLines(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Format(line)
	}
	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(bytes.TrimSpace(b))
	}
}
