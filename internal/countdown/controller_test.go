package countdown

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/atarukun/home/internal/calendar"
	"github.com/atarukun/home/internal/fault"
)

type fakeLink struct {
	absent    bool
	noCreds   bool
	pollOK    bool
	connected bool
	elapsed   float64
	err       fault.Code
	resets    int
}

func (l *fakeLink) Poll() bool            { return l.pollOK }
func (l *fakeLink) IsConnected() bool     { return l.connected }
func (l *fakeLink) Elapsed() float64      { return l.elapsed }
func (l *fakeLink) Available() bool       { return !l.absent }
func (l *fakeLink) HasCredentials() bool  { return !l.noCreds }
func (l *fakeLink) LastError() fault.Code { return l.err }
func (l *fakeLink) Reset()                { l.resets++ }

type fakeFetcher struct {
	date   calendar.Date
	ok     bool
	due    bool
	err    fault.Code
	calls  int
	resets int
}

func (f *fakeFetcher) FetchDate(context.Context) (calendar.Date, bool) {
	f.calls++
	return f.date, f.ok
}
func (f *fakeFetcher) SweepDue() bool        { return f.due }
func (f *fakeFetcher) LastError() fault.Code { return f.err }
func (f *fakeFetcher) Reset()                { f.resets++ }

type recorder struct {
	frames []Display
}

func (r *recorder) Render(d Display) { r.frames = append(r.frames, d) }

var fixedNow = time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)

func newTestController(link *fakeLink, fetcher *fakeFetcher, r Renderer) *Controller {
	return New(link, fetcher, r, zerolog.Nop(), WithNow(func() time.Time { return fixedNow }))
}

func TestTick_ReadyWithDate(t *testing.T) {
	link := &fakeLink{pollOK: true, connected: true}
	fetcher := &fakeFetcher{ok: true, date: calendar.Date{Year: 2025, Month: 12, Day: 5}}
	rec := &recorder{}

	d := newTestController(link, fetcher, rec).Tick(context.Background())

	if d.Status != StatusReady || !d.HasDate {
		t.Fatalf("Status = %s HasDate = %v, want ready with date", d.Status, d.HasDate)
	}
	if d.Days != 20 {
		t.Fatalf("Days = %d, want 20", d.Days)
	}
	if d.Date != "05 Dec 2025" {
		t.Fatalf("Date = %q, want %q", d.Date, "05 Dec 2025")
	}
	if d.ErrorCode != "" {
		t.Fatalf("ErrorCode = %q, want empty", d.ErrorCode)
	}
	if d.Message != "20 days until Christmas" {
		t.Fatalf("Message = %q", d.Message)
	}
	if !d.At.Equal(fixedNow) {
		t.Fatalf("At = %v, want %v", d.At, fixedNow)
	}
	if len(rec.frames) != 1 {
		t.Fatalf("rendered %d frames, want 1", len(rec.frames))
	}
}

func TestTick_FetchingFrameBeforeSweep(t *testing.T) {
	link := &fakeLink{pollOK: true, connected: true}
	fetcher := &fakeFetcher{due: true, err: fault.CodeAllFailed}
	rec := &recorder{}

	d := newTestController(link, fetcher, rec).Tick(context.Background())

	if len(rec.frames) != 2 {
		t.Fatalf("rendered %d frames, want fetching then result", len(rec.frames))
	}
	if rec.frames[0].Status != StatusFetching || rec.frames[0].Message != "Fetching date..." {
		t.Fatalf("first frame = %+v, want fetching", rec.frames[0])
	}
	if d.Status != StatusRetrying || d.ErrorCode != "ALL_ENDPOINTS_FAILED" {
		t.Fatalf("final frame = %+v, want retrying ALL_ENDPOINTS_FAILED", d)
	}
	if d.Message != "Unable to sync (ALL_ENDPOINTS_FAILED)" {
		t.Fatalf("Message = %q", d.Message)
	}
}

func TestTick_StatusPrecedence(t *testing.T) {
	cases := []struct {
		name    string
		link    fakeLink
		fetcher fakeFetcher
		status  Status
		code    string
		message string
	}{
		{
			name:    "no network beats everything",
			link:    fakeLink{absent: true, noCreds: true, err: fault.CodeNoNetwork},
			fetcher: fakeFetcher{err: fault.CodeAllFailed},
			status:  StatusNoNetwork,
			code:    "NO_NETWORK",
			message: "No network",
		},
		{
			name:    "no credentials",
			link:    fakeLink{noCreds: true, err: fault.CodeNoCreds},
			status:  StatusNoCredentials,
			message: "No WiFi config",
		},
		{
			name:    "connecting shows elapsed seconds",
			link:    fakeLink{pollOK: true, elapsed: 12.7},
			fetcher: fakeFetcher{err: fault.CodeNoWifi},
			status:  StatusConnecting,
			message: "Connecting to WiFi... 12s",
		},
		{
			name:    "retrying with fetch error",
			link:    fakeLink{pollOK: true, connected: true},
			fetcher: fakeFetcher{err: fault.CodeAllFailed},
			status:  StatusRetrying,
			code:    "ALL_ENDPOINTS_FAILED",
			message: "Unable to sync (ALL_ENDPOINTS_FAILED)",
		},
		{
			name:    "wifi timeout is a retrying state",
			link:    fakeLink{err: fault.CodeWifiTimeout},
			fetcher: fakeFetcher{err: fault.CodeNoWifi},
			status:  StatusRetrying,
			code:    "WIFI_TIMEOUT",
			message: "Unable to sync (WIFI_TIMEOUT)",
		},
		{
			name:    "thinking when nothing is known",
			link:    fakeLink{pollOK: true, connected: true},
			status:  StatusThinking,
			message: "Checking...",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			link, fetcher := tc.link, tc.fetcher
			d := newTestController(&link, &fetcher, nil).Tick(context.Background())
			if d.Status != tc.status {
				t.Fatalf("Status = %s, want %s", d.Status, tc.status)
			}
			if d.ErrorCode != tc.code {
				t.Fatalf("ErrorCode = %q, want %q", d.ErrorCode, tc.code)
			}
			if d.Message != tc.message {
				t.Fatalf("Message = %q, want %q", d.Message, tc.message)
			}
			if d.HasDate {
				t.Fatal("HasDate = true without a date")
			}
		})
	}
}

func TestTick_ChristmasDay(t *testing.T) {
	link := &fakeLink{pollOK: true, connected: true}
	fetcher := &fakeFetcher{ok: true, date: calendar.Date{Year: 2025, Month: 12, Day: 25}}
	d := newTestController(link, fetcher, nil).Tick(context.Background())
	if d.Days != 0 || d.Headline() != "Merry Christmas!" {
		t.Fatalf("Days = %d Headline = %q", d.Days, d.Headline())
	}
}

func TestStart_ResetsOwnedState(t *testing.T) {
	link := &fakeLink{pollOK: true, connected: true}
	fetcher := &fakeFetcher{}
	c := newTestController(link, fetcher, nil)

	c.Tick(context.Background())
	c.Tick(context.Background())
	if fetcher.resets != 1 || link.resets != 1 {
		t.Fatalf("resets fetcher=%d link=%d, want 1 and 1 after first tick", fetcher.resets, link.resets)
	}
	c.Start()
	if fetcher.resets != 2 || link.resets != 2 {
		t.Fatalf("resets fetcher=%d link=%d, want 2 and 2", fetcher.resets, link.resets)
	}
}

func TestFanout_RecoversPanics(t *testing.T) {
	rec := &recorder{}
	boom := RenderFunc(func(Display) { panic("screen unplugged") })
	f := NewFanout(zerolog.Nop(), boom, nil, rec)

	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", f.Len())
	}
	link := &fakeLink{pollOK: true, connected: true}
	fetcher := &fakeFetcher{ok: true, date: calendar.Date{Year: 2025, Month: 12, Day: 24}}
	d := newTestController(link, fetcher, f).Tick(context.Background())

	if len(rec.frames) != 1 || rec.frames[0].Days != 1 {
		t.Fatalf("frames = %+v, want one frame with 1 day", rec.frames)
	}
	if d.Headline() != "1 day until Christmas" {
		t.Fatalf("Headline = %q", d.Headline())
	}
}

func TestDisplay_Same(t *testing.T) {
	a := Display{Status: StatusReady, Days: 3, HasDate: true, At: fixedNow}
	b := a
	b.At = fixedNow.Add(time.Minute)
	if !a.Same(b) {
		t.Fatal("frames differing only in At should be the same")
	}
	b.Days = 2
	if a.Same(b) {
		t.Fatal("frames with different days reported the same")
	}
}

func TestStatus_MarshalText(t *testing.T) {
	text, err := StatusNoCredentials.MarshalText()
	if err != nil || string(text) != "no_credentials" {
		t.Fatalf("MarshalText = %q, %v", text, err)
	}
	if Status(99).String() != "unknown" {
		t.Fatalf("String() = %q, want unknown", Status(99).String())
	}
}
