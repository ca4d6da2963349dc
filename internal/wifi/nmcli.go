package wifi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// NMCLI drives NetworkManager through its command-line client.
type NMCLI struct {
	// Device restricts operations to one interface, e.g. "wlan0". Empty
	// lets NetworkManager choose.
	Device string
	run    Runner
	binary string
}

// NewNMCLI returns an adapter that shells out to nmcli. A nil runner uses
// os/exec.
func NewNMCLI(device string, run Runner) *NMCLI {
	if run == nil {
		run = execRunner
	}
	return &NMCLI{Device: strings.TrimSpace(device), run: run, binary: "nmcli"}
}

// Scan lists visible SSIDs after asking NetworkManager for a fresh scan.
func (n *NMCLI) Scan(ctx context.Context) ([]string, error) {
	args := []string{"-t", "-f", "SSID", "device", "wifi", "list", "--rescan", "yes"}
	if n.Device != "" {
		args = append(args, "ifname", n.Device)
	}
	out, err := n.run(ctx, n.binary, args...)
	if err != nil {
		return nil, fmt.Errorf("nmcli scan: %w", err)
	}
	return parseSSIDList(out), nil
}

// Connect asks NetworkManager to join ssid.
func (n *NMCLI) Connect(ctx context.Context, ssid, password string) error {
	args := []string{"device", "wifi", "connect", ssid}
	if password != "" {
		args = append(args, "password", password)
	}
	if n.Device != "" {
		args = append(args, "ifname", n.Device)
	}
	if _, err := n.run(ctx, n.binary, args...); err != nil {
		return fmt.Errorf("nmcli connect %q: %w", ssid, err)
	}
	return nil
}

// IsAssociated reports whether a wifi device is in the connected state.
func (n *NMCLI) IsAssociated(ctx context.Context) (bool, error) {
	out, err := n.run(ctx, n.binary, "-t", "-f", "DEVICE,TYPE,STATE", "device", "status")
	if err != nil {
		return false, fmt.Errorf("nmcli status: %w", err)
	}
	return parseAssociated(out, n.Device), nil
}

// Activate switches the wifi radio on or off.
func (n *NMCLI) Activate(ctx context.Context, on bool) error {
	state := "off"
	if on {
		state = "on"
	}
	if _, err := n.run(ctx, n.binary, "radio", "wifi", state); err != nil {
		return fmt.Errorf("nmcli radio %s: %w", state, err)
	}
	return nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return nil, fmt.Errorf("%w: %s", err, msg)
			}
		}
		return nil, err
	}
	return out, nil
}

// parseSSIDList reads terse single-field output, one SSID per line. Hidden
// networks print an empty line and are skipped.
func parseSSIDList(out []byte) []string {
	var ssids []string
	seen := make(map[string]struct{})
	for _, line := range strings.Split(string(out), "\n") {
		ssid := unescapeTerse(strings.TrimRight(line, "\r"))
		if strings.TrimSpace(ssid) == "" {
			continue
		}
		if _, ok := seen[ssid]; ok {
			continue
		}
		seen[ssid] = struct{}{}
		ssids = append(ssids, ssid)
	}
	return ssids
}

// parseAssociated looks for a wifi device in state "connected".
func parseAssociated(out []byte, device string) bool {
	for _, line := range strings.Split(string(out), "\n") {
		fields := splitTerse(strings.TrimRight(line, "\r"))
		if len(fields) < 3 {
			continue
		}
		if fields[1] != "wifi" {
			continue
		}
		if device != "" && fields[0] != device {
			continue
		}
		if fields[2] == "connected" {
			return true
		}
	}
	return false
}

// splitTerse splits one line of nmcli -t output on unescaped colons.
func splitTerse(line string) []string {
	var fields []string
	var cur strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ':':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	return append(fields, cur.String())
}

func unescapeTerse(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}
