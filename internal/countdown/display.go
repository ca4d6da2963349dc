package countdown

import (
	"fmt"
	"time"
)

// Status is the headline state shown when no countdown is available, or
// Ready when one is.
type Status uint8

const (
	StatusThinking Status = iota
	StatusReady
	StatusNoNetwork
	StatusNoCredentials
	StatusConnecting
	StatusFetching
	StatusRetrying
)

var statusNames = map[Status]string{
	StatusThinking:      "thinking",
	StatusReady:         "ready",
	StatusNoNetwork:     "no_network",
	StatusNoCredentials: "no_credentials",
	StatusConnecting:    "connecting",
	StatusFetching:      "fetching",
	StatusRetrying:      "retrying",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText renders the status name in JSON payloads.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Display is everything a renderer receives for one tick. Days and Date are
// meaningful only when HasDate is true; ErrorCode is empty when there is
// nothing to report.
type Display struct {
	Status    Status
	Days      int
	HasDate   bool
	Date      string
	ErrorCode string
	Message   string
	Elapsed   float64
	At        time.Time
}

// Same reports whether two frames would look identical, ignoring the time
// they were produced at.
func (d Display) Same(o Display) bool {
	d.At, o.At = time.Time{}, time.Time{}
	return d == o
}

// Headline is the single line a small screen would show.
func (d Display) Headline() string {
	if d.HasDate {
		if d.Days == 0 {
			return "Merry Christmas!"
		}
		unit := "days"
		if d.Days == 1 {
			unit = "day"
		}
		return fmt.Sprintf("%d %s until Christmas", d.Days, unit)
	}
	return d.Message
}

func statusMessage(status Status, elapsed float64, code string) string {
	switch status {
	case StatusNoNetwork:
		return "No network"
	case StatusNoCredentials:
		return "No WiFi config"
	case StatusConnecting:
		return fmt.Sprintf("Connecting to WiFi... %ds", int(elapsed))
	case StatusFetching:
		return "Fetching date..."
	case StatusRetrying:
		if code == "" {
			return "Unable to sync"
		}
		return fmt.Sprintf("Unable to sync (%s)", code)
	default:
		return "Checking..."
	}
}
