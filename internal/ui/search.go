package ui

import (
	"regexp"

	"github.com/charmbracelet/bubbles/textinput"
)

// logSearch is the /-search over the log buffer. Patterns are
// case-insensitive regular expressions; anything that does not compile is
// matched literally.
type logSearch struct {
	editing bool
	input   textinput.Model

	query string
	re    *regexp.Regexp
	hits  []int // indices into the buffer
	cur   int
}

func newLogSearch() logSearch {
	in := textinput.New()
	in.Placeholder = "regex, Enter to apply"
	in.CharLimit = 100
	return logSearch{input: in}
}

func (s *logSearch) set(query string) {
	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	}
	s.query, s.re, s.cur = query, re, 0
}

func (s *logSearch) reset() {
	s.query, s.re, s.hits, s.cur = "", nil, nil, 0
}

// scan recomputes hits, keeping the cursor when it is still in range.
func (s *logSearch) scan(lines []string) {
	s.hits = nil
	if s.re == nil {
		return
	}
	for i, line := range lines {
		if s.re.MatchString(line) {
			s.hits = append(s.hits, i)
		}
	}
	if s.cur >= len(s.hits) {
		s.cur = 0
	}
}

// step moves the cursor by delta, wrapping at both ends.
func (s *logSearch) step(delta int) bool {
	n := len(s.hits)
	if n == 0 {
		return false
	}
	s.cur = ((s.cur+delta)%n + n) % n
	return true
}

// line is the buffer index under the cursor, or -1.
func (s logSearch) line() int {
	if s.cur < len(s.hits) {
		return s.hits[s.cur]
	}
	return -1
}

func (s logSearch) applied() bool { return s.re != nil }
