// Package wifi joins a configured wireless network without blocking.
//
// # Overview
//
// Manager is a small state machine advanced one step per Poll. No call
// waits for the network to come up: every wait is a comparison of clock
// ticks against the start of the attempt, so the caller can render
// "Connecting to WiFi... 12s" between polls.
//
// # States
//
//	        Poll (adapter, SSID present)
//	Idle ──────────────────────────────→ Scanning
//	                                       │  SSID visible, connect issued
//	                                       ↓
//	                                    Connecting
//	                                       │  adapter reports associated
//	                                       ↓
//	                                    Connected
//
//	Scanning or Connecting past Timeout ──→ Failed (WIFI_TIMEOUT)
//	Failed, RearmAfter elapsed          ──→ Idle (next attempt)
//
// Entering Scanning switches the radio on. A scan that errors is treated
// as an empty scan and retried on the next Poll. When the SSID is visible
// and the adapter is already associated the manager goes straight to
// Connected.
//
// # Poll Results
//
// Poll returns true while the link is connected or still progressing
// within its deadline, and false when it cannot start or has failed:
//
//   - no adapter: false, LastError NO_NETWORK
//   - no SSID configured: false, LastError NO_CREDENTIALS
//   - timed out: false, LastError WIFI_TIMEOUT
//
// With RearmAfter zero, Failed is terminal until Reset.
//
// # Adapters
//
// Adapter is the capability the manager drives: Scan, Connect,
// IsAssociated and Activate. Each call runs under CommandTimeout; errors
// and panics inside an adapter are logged and never reach the caller.
//
//   - NMCLI: NetworkManager's command-line client through a Runner, which
//     tests replace with canned output
//   - Wired: not an adapter but a complete link that is always connected,
//     for hosts that are online without WiFi
//
// # Logging
//
// Transitions are logged as wifi_state with from and to; failures as
// wifi_scan_failed, wifi_connect_failed, wifi_status_failed and
// wifi_timeout; a re-armed manager logs wifi_rearm.
package wifi
