package datefetch

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/atarukun/home/internal/calendar"
	"github.com/atarukun/home/internal/clock"
	"github.com/atarukun/home/internal/fault"
	"github.com/atarukun/home/internal/timeapi"
)

type fakeLink struct {
	connected bool
	absent    bool
}

func (l *fakeLink) IsConnected() bool { return l.connected }
func (l *fakeLink) Available() bool   { return !l.absent }

type response struct {
	body string
	err  error
}

type fakeGetter struct {
	responses map[string]response
	calls     []string
}

func (g *fakeGetter) Get(_ context.Context, url string, timeout time.Duration) ([]byte, error) {
	g.calls = append(g.calls, url)
	if timeout != DefaultTimeout {
		return nil, errors.New("unexpected timeout")
	}
	r, ok := g.responses[url]
	if !ok {
		return nil, errors.New("no response configured")
	}
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.body), nil
}

func testEndpoints(t *testing.T) []timeapi.Endpoint {
	t.Helper()
	specs := []struct {
		name string
		id   timeapi.ParserID
	}{
		{"a", timeapi.ParserWorldTimeAPI},
		{"b", timeapi.ParserTimeAPIIO},
		{"c", timeapi.ParserWorldTimeIP},
	}
	eps := make([]timeapi.Endpoint, 0, len(specs))
	for _, s := range specs {
		ep, err := timeapi.NewEndpoint(s.name, "http://"+s.name+".test/now", s.id)
		if err != nil {
			t.Fatalf("NewEndpoint(%s): %v", s.name, err)
		}
		eps = append(eps, ep)
	}
	return eps
}

const (
	urlA = "http://a.test/now"
	urlB = "http://b.test/now"
	urlC = "http://c.test/now"
)

var timeoutErr = &net.DNSError{Err: "i/o timeout", Name: "a.test", IsTimeout: true}

func newTestService(t *testing.T, link Link, g *fakeGetter, clk clock.Clock) *Service {
	t.Helper()
	return New(link, g, clk, Config{Endpoints: testEndpoints(t)}, zerolog.Nop())
}

func TestFetchDate_LinkDownDoesNoIO(t *testing.T) {
	g := &fakeGetter{}
	s := newTestService(t, &fakeLink{}, g, clock.NewManual(0))

	if _, ok := s.FetchDate(context.Background()); ok {
		t.Fatal("FetchDate ok = true with link down")
	}
	if len(g.calls) != 0 {
		t.Fatalf("calls = %v, want none", g.calls)
	}
	if s.LastError() != fault.CodeNoWifi {
		t.Fatalf("LastError = %v, want %v", s.LastError(), fault.CodeNoWifi)
	}
	if s.State().Attempted {
		t.Fatal("gate failure recorded as an attempt")
	}

	s = newTestService(t, &fakeLink{absent: true}, g, clock.NewManual(0))
	s.FetchDate(context.Background())
	if s.LastError() != fault.CodeNoNetwork {
		t.Fatalf("LastError = %v, want %v", s.LastError(), fault.CodeNoNetwork)
	}
}

func TestFetchDate_FallsBackAndAdvances(t *testing.T) {
	g := &fakeGetter{responses: map[string]response{
		urlA: {err: timeoutErr},
		urlB: {body: `{"year":2024,"month":12,"day":26}`},
		urlC: {body: `{"datetime":"2030-01-01T00:00:00Z"}`},
	}}
	s := newTestService(t, &fakeLink{connected: true}, g, clock.NewManual(0))

	date, ok := s.FetchDate(context.Background())
	if !ok {
		t.Fatalf("FetchDate ok = false, LastError = %v", s.LastError())
	}
	if date != (calendar.Date{Year: 2024, Month: 12, Day: 26}) {
		t.Fatalf("date = %v, want 2024-12-26", date)
	}
	if len(g.calls) != 2 || g.calls[0] != urlA || g.calls[1] != urlB {
		t.Fatalf("calls = %v, want [a b]", g.calls)
	}
	st := s.State()
	if st.NextEndpoint != 2 {
		t.Fatalf("NextEndpoint = %d, want 2", st.NextEndpoint)
	}
	if !st.Succeeded || !st.LastError.IsZero() || st.Cached == nil {
		t.Fatalf("state = %+v, want cached success", st)
	}
	if date.DaysUntilChristmas() != 364 {
		t.Fatalf("DaysUntilChristmas = %d, want 364", date.DaysUntilChristmas())
	}
}

func TestFetchDate_CachedWithinFetchInterval(t *testing.T) {
	clk := clock.NewManual(0)
	g := &fakeGetter{responses: map[string]response{
		urlA: {body: `{"datetime":"2025-12-01T10:00:00+00:00"}`},
	}}
	s := newTestService(t, &fakeLink{connected: true}, g, clk)

	first, ok := s.FetchDate(context.Background())
	if !ok {
		t.Fatal("first FetchDate failed")
	}
	calls := len(g.calls)

	for _, step := range []time.Duration{time.Second, 30 * time.Minute, 29*time.Minute + 58*time.Second} {
		clk.Advance(step)
		got, ok := s.FetchDate(context.Background())
		if !ok || got != first {
			t.Fatalf("cached FetchDate = %v, %v; want %v, true", got, ok, first)
		}
		if s.SweepDue() {
			t.Fatal("SweepDue() = true while cache is fresh")
		}
	}
	if len(g.calls) != calls {
		t.Fatalf("calls = %d, want %d while cached", len(g.calls), calls)
	}

	clk.Advance(time.Second)
	if !s.SweepDue() {
		t.Fatal("SweepDue() = false after an hour")
	}
	if _, ok := s.FetchDate(context.Background()); !ok {
		t.Fatal("refresh after expiry failed")
	}
	if len(g.calls) == calls {
		t.Fatal("no request after the cache expired")
	}
	if g.calls[calls] != urlB {
		t.Fatalf("refresh started at %s, want next endpoint b", g.calls[calls])
	}
}

func TestFetchDate_AllFailedBacksOff(t *testing.T) {
	clk := clock.NewManual(0)
	g := &fakeGetter{responses: map[string]response{
		urlA: {err: timeoutErr},
		urlB: {body: `{"year":2025}`},
		urlC: {err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}},
	}}
	s := newTestService(t, &fakeLink{connected: true}, g, clk)

	if _, ok := s.FetchDate(context.Background()); ok {
		t.Fatal("FetchDate ok = true, want all endpoints failed")
	}
	if len(g.calls) != 3 {
		t.Fatalf("calls = %d, want 3", len(g.calls))
	}
	st := s.State()
	if st.LastError != fault.CodeAllFailed || s.LastError() != fault.CodeAllFailed {
		t.Fatalf("LastError = %v, want %v", st.LastError, fault.CodeAllFailed)
	}
	if st.NextEndpoint != 1 {
		t.Fatalf("NextEndpoint = %d, want 1", st.NextEndpoint)
	}
	if st.Succeeded || st.Cached != nil {
		t.Fatalf("state = %+v, want no cached date", st)
	}

	clk.Advance(4999 * time.Millisecond)
	if _, ok := s.FetchDate(context.Background()); ok || len(g.calls) != 3 {
		t.Fatalf("FetchDate inside backoff: ok=%v calls=%d, want false and 3", ok, len(g.calls))
	}
	if s.SweepDue() {
		t.Fatal("SweepDue() = true inside backoff")
	}

	clk.Advance(time.Millisecond)
	g.responses[urlB] = response{body: `{"year":2025,"month":12,"day":24}`}
	date, ok := s.FetchDate(context.Background())
	if !ok || date.DaysUntilChristmas() != 1 {
		t.Fatalf("FetchDate after backoff = %v, %v", date, ok)
	}
	if g.calls[3] != urlB {
		t.Fatalf("second sweep started at %s, want b", g.calls[3])
	}
	if s.State().NextEndpoint != 2 {
		t.Fatalf("NextEndpoint = %d, want 2", s.State().NextEndpoint)
	}
}

func TestFetchDate_SweepsWrapAround(t *testing.T) {
	clk := clock.NewManual(0)
	g := &fakeGetter{responses: map[string]response{
		urlA: {body: `{"datetime":"2025-06-01T00:00:00Z"}`},
		urlB: {err: timeoutErr},
		urlC: {err: timeoutErr},
	}}
	s := newTestService(t, &fakeLink{connected: true}, g, clk)
	s.state.NextEndpoint = 1

	if _, ok := s.FetchDate(context.Background()); !ok {
		t.Fatal("FetchDate ok = false, want success from a after wrap")
	}
	want := []string{urlB, urlC, urlA}
	for i, u := range want {
		if g.calls[i] != u {
			t.Fatalf("calls = %v, want %v", g.calls, want)
		}
	}
	if s.State().NextEndpoint != 1 {
		t.Fatalf("NextEndpoint = %d, want 1", s.State().NextEndpoint)
	}
}

func TestFetchDate_LinkDropKeepsFetchState(t *testing.T) {
	link := &fakeLink{connected: true}
	g := &fakeGetter{responses: map[string]response{
		urlA: {body: `{"datetime":"2025-12-25T00:00:00Z"}`},
	}}
	s := newTestService(t, link, g, clock.NewManual(0))
	s.FetchDate(context.Background())

	link.connected = false
	if _, ok := s.FetchDate(context.Background()); ok {
		t.Fatal("FetchDate ok = true with link down")
	}
	if s.LastError() != fault.CodeNoWifi {
		t.Fatalf("LastError = %v, want %v", s.LastError(), fault.CodeNoWifi)
	}
	if st := s.State(); !st.Succeeded || !st.LastError.IsZero() {
		t.Fatalf("state = %+v, want the cached success untouched", st)
	}

	link.connected = true
	if _, ok := s.FetchDate(context.Background()); !ok {
		t.Fatal("FetchDate ok = false after link returned")
	}
	if !s.LastError().IsZero() {
		t.Fatalf("LastError = %v, want cleared", s.LastError())
	}
}

func TestReset(t *testing.T) {
	g := &fakeGetter{responses: map[string]response{urlA: {err: timeoutErr}}}
	s := newTestService(t, &fakeLink{connected: true}, g, clock.NewManual(0))
	s.FetchDate(context.Background())
	s.Reset()
	if st := s.State(); st.Attempted || st.NextEndpoint != 0 || !st.LastError.IsZero() {
		t.Fatalf("state after Reset = %+v, want zero", st)
	}
	if !s.SweepDue() {
		t.Fatal("SweepDue() = false after Reset")
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New(&fakeLink{}, &fakeGetter{}, nil, Config{}, zerolog.Nop())
	if len(s.Endpoints()) != len(timeapi.DefaultEndpoints()) {
		t.Fatalf("endpoints = %d, want defaults", len(s.Endpoints()))
	}
	if s.fetchTTL != DefaultFetchInterval || s.retry != DefaultRetryInterval || s.timeout != DefaultTimeout {
		t.Fatalf("intervals = %v/%v/%v, want defaults", s.fetchTTL, s.retry, s.timeout)
	}
}
