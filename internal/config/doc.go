// Package config loads the countdown's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/christmas/config.toml (default)
//  3. If the config file doesn't exist, fall back to built-in defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// CHRISTMAS_WIFI_SSID and CHRISTMAS_WIFI_PASSWORD, when set, override the
// credentials from the file. No SSID at all is a valid configuration; the
// countdown then reports "No WiFi config".
//
// # TOML Format
//
//	[wifi]
//	adapter = "nmcli"        # nmcli, wired or none
//	device = "wlan0"
//	ssid = "home"
//	password = "..."
//	timeout = "60s"
//	rearm_after = "0s"       # 0 keeps a failed association failed
//
//	[fetch]
//	interval = "1h"
//	retry = "5s"
//	timeout = "3s"
//
//	[[endpoints]]            # optional; replaces the built-in list
//	name = "worldtimeapi"
//	url = "https://worldtimeapi.org/api/timezone/Etc/UTC"
//	parser = "worldtimeapi"
//
//	[log]
//	path = "~/.local/state/christmas/christmas.log"
//	level = "info"
//
//	[mqtt]                   # disabled unless broker is set
//	broker = "tcp://broker.local:1883"
//	topic = "home/christmas"
//
//	[ui]
//	poll = "1s"
//
// # Validation
//
// The raw document is checked with go-playground/validator struct tags
// before anything is resolved. Endpoint parsers are looked up by name here,
// at load time, so a typo fails start-up instead of a later fetch. Errors
// name the offending key, e.g. "endpoints[1].parser".
//
// Custom tags registered on the shared validator:
//
//   - duration: empty, or a non-negative Go duration such as 5s or 1h
//   - parser: one of the names timeapi.ParserNames returns
//
// The validator is built once per process (sync.Once) with English
// translations from universal-translator, so messages read
// "fetch.retry must be a duration such as 5s or 1h" rather than a raw tag
// name.
//
// # Resolution
//
// After validation the raw document is applied over Default():
//
//   - strings are trimmed; adapter and log level are lower-cased
//   - durations replace the default only when set
//   - [[endpoints]] replaces the built-in list as a whole; an endpoint
//     without a name takes its parser's name
//   - ~ in log.path is expanded to the home directory
//   - mqtt.retained defaults to true when the key is absent
//
// Config.Path records the file that was read and stays empty when the
// defaults were used.
//
// # Defaults
//
//	WiFi:      nmcli adapter, 60s association timeout, 5s per command,
//	           no re-arm after failure, no credentials
//	Fetch:     1h cache, 5s retry backoff, 3s per request
//	Endpoints: timeapi.DefaultEndpoints() in priority order
//	Log:       ~/.local/state/christmas/christmas.log at info
//	MQTT:      disabled, topic home/christmas, retained
//	UI:        1s refresh
//
// # Error Handling
//
// Load returns an error only for a file that exists but cannot be opened,
// read, parsed or validated. Errors are wrapped with %w and a short prefix
// ("open config", "parse config") so the caller can print them as-is.
//
// # Usage
//
//	cfg, err := config.Load("")   // default path
//	if err != nil {
//		return fmt.Errorf("load config: %w", err)
//	}
//	if cfg.MQTT.Enabled() {
//		// dial the broker
//	}
package config
