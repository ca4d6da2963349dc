package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeLines(t *testing.T, n int) (string, []string) {
	t.Helper()
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %02d", i+1)
	}
	path := filepath.Join(t.TempDir(), "christmas.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path, lines
}

func TestRead_Tail(t *testing.T) {
	path, all := writeLines(t, 10)

	for _, tc := range []struct {
		max  int
		want []string
	}{
		{0, all},
		{-1, all},
		{3, all[7:]},
		{4, all[6:]}, // compacts once at eight lines
		{10, all},
		{25, all},
	} {
		t.Run(fmt.Sprintf("max=%d", tc.max), func(t *testing.T) {
			got, err := Read(path, tc.max)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Read() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRead_LongFileKeepsNewest(t *testing.T) {
	path, all := writeLines(t, 99)
	got, err := Read(path, 5)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !reflect.DeepEqual(got, all[94:]) {
		t.Fatalf("Read() = %q, want the last five", got)
	}
}

func TestRead_MissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || lines != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", lines, err)
	}
}

func TestFormat(t *testing.T) {
	ts := time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC)
	stamp := ts.In(time.Local).Format("2006-01-02 15:04:05")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text passes through",
			input:    "not json",
			expected: "not json",
		},
		{
			name:     "broken json passes through",
			input:    `{"level":"info"`,
			expected: `{"level":"info"`,
		},
		{
			name:     "component and fields",
			input:    `{"level":"info","component":"wifi","from":"idle","to":"scanning","time":"2025-12-01T08:00:00Z","message":"wifi_state"}`,
			expected: stamp + " INFO [wifi] wifi_state – from=idle to=scanning",
		},
		{
			name:     "numbers and errors",
			input:    `{"level":"warn","component":"datefetch","endpoint":"a","attempt":3,"error":"i/o timeout","time":"2025-12-01T08:00:00Z","message":"date_fetch_failed"}`,
			expected: stamp + " WARN [datefetch] date_fetch_failed – attempt=3 endpoint=a error=i/o timeout",
		},
		{
			name:     "no level or time",
			input:    `{"message":"countdown_start"}`,
			expected: "INFO countdown_start",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.input); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatLines(t *testing.T) {
	if FormatLines(nil) != nil {
		t.Fatal("FormatLines(nil) should be nil")
	}
	got := FormatLines([]string{"a", `{"message":"b"}`})
	want := []string{"a", "INFO b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FormatLines() = %q, want %q", got, want)
	}
}

func TestParse(t *testing.T) {
	e, ok := Parse(`{"level":"error","retained":true,"qos":1,"time":"2025-12-01T08:00:00Z","message":"x"}`)
	if !ok {
		t.Fatal("Parse returned ok=false")
	}
	if e.Level != "error" || e.Message != "x" || e.Time.IsZero() {
		t.Fatalf("Entry = %+v", e)
	}
	if e.Fields["retained"] != "true" || e.Fields["qos"] != "1" {
		t.Fatalf("Fields = %v", e.Fields)
	}
}
