package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/atarukun/home/internal/datefetch"
	"github.com/atarukun/home/internal/timeapi"
	"github.com/atarukun/home/internal/wifi"
)

// Adapter kinds.
const (
	AdapterNMCLI = "nmcli"
	AdapterWired = "wired"
	AdapterNone  = "none"
)

// Environment overrides for the wireless credentials.
const (
	EnvSSID     = "CHRISTMAS_WIFI_SSID"
	EnvPassword = "CHRISTMAS_WIFI_PASSWORD"
)

// Config is the resolved runtime configuration.
type Config struct {
	Path string // file that was read; empty when defaults were used

	WiFi      WiFi
	Fetch     Fetch
	Endpoints []timeapi.Endpoint
	Log       Log
	MQTT      MQTT
	PollEvery time.Duration
}

// WiFi configures the link.
type WiFi struct {
	Adapter        string
	Device         string
	Credentials    wifi.Credentials
	Timeout        time.Duration
	RearmAfter     time.Duration
	CommandTimeout time.Duration
}

// Fetch configures the date service.
type Fetch struct {
	Interval time.Duration
	Retry    time.Duration
	Timeout  time.Duration
}

// Log configures the diagnostic sink.
type Log struct {
	Path  string
	Level string
}

// MQTT configures the optional broker renderer. It is disabled when Broker
// is empty.
type MQTT struct {
	Broker   string
	Topic    string
	ClientID string
	Username string
	Password string
	QoS      byte
	Retained bool
}

// Enabled reports whether a broker is configured.
func (m MQTT) Enabled() bool { return m.Broker != "" }

const (
	defaultConfigPath = "~/.config/christmas/config.toml"
	defaultLogPath    = "~/.local/state/christmas/christmas.log"
	defaultLogLevel   = "info"
	defaultTopic      = "home/christmas"
	defaultPollEvery  = time.Second
)

// fileConfig mirrors the TOML document. Durations stay strings until they
// pass validation.
type fileConfig struct {
	WiFi struct {
		Adapter        string `toml:"adapter" validate:"omitempty,oneof=nmcli wired none"`
		Device         string `toml:"device"`
		SSID           string `toml:"ssid"`
		Password       string `toml:"password"`
		Timeout        string `toml:"timeout" validate:"duration"`
		RearmAfter     string `toml:"rearm_after" validate:"duration"`
		CommandTimeout string `toml:"command_timeout" validate:"duration"`
	} `toml:"wifi"`
	Fetch struct {
		Interval string `toml:"interval" validate:"duration"`
		Retry    string `toml:"retry" validate:"duration"`
		Timeout  string `toml:"timeout" validate:"duration"`
	} `toml:"fetch"`
	Endpoints []fileEndpoint `toml:"endpoints" validate:"dive"`
	Log       struct {
		Path  string `toml:"path"`
		Level string `toml:"level" validate:"omitempty,oneof=trace debug info warn warning error"`
	} `toml:"log"`
	MQTT struct {
		Broker   string `toml:"broker" validate:"omitempty,url"`
		Topic    string `toml:"topic"`
		ClientID string `toml:"client_id"`
		Username string `toml:"username"`
		Password string `toml:"password"`
		QoS      int    `toml:"qos" validate:"min=0,max=2"`
		Retained *bool  `toml:"retained"`
	} `toml:"mqtt"`
	UI struct {
		Poll string `toml:"poll" validate:"duration"`
	} `toml:"ui"`
}

type fileEndpoint struct {
	Name   string `toml:"name"`
	URL    string `toml:"url" validate:"required,http_url"`
	Parser string `toml:"parser" validate:"required,parser"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		WiFi: WiFi{
			Adapter:        AdapterNMCLI,
			Timeout:        wifi.DefaultTimeout,
			CommandTimeout: wifi.DefaultCommandTimeout,
		},
		Fetch: Fetch{
			Interval: datefetch.DefaultFetchInterval,
			Retry:    datefetch.DefaultRetryInterval,
			Timeout:  datefetch.DefaultTimeout,
		},
		Endpoints: timeapi.DefaultEndpoints(),
		Log:       Log{Path: mustExpand(defaultLogPath), Level: defaultLogLevel},
		MQTT:      MQTT{Topic: defaultTopic, Retained: true},
		PollEvery: defaultPollEvery,
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Load reads the config at path, falling back to defaults when the file is
// missing. Credentials from the environment override the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	trimRaw(&raw)
	if err := validate(&raw); err != nil {
		return Config{}, err
	}

	if err := apply(&cfg, raw); err != nil {
		return Config{}, err
	}
	cfg.Path = resolved
	applyEnv(&cfg)
	return cfg, nil
}

func trimRaw(raw *fileConfig) {
	raw.WiFi.Adapter = strings.ToLower(strings.TrimSpace(raw.WiFi.Adapter))
	raw.WiFi.Device = strings.TrimSpace(raw.WiFi.Device)
	raw.WiFi.SSID = strings.TrimSpace(raw.WiFi.SSID)
	raw.Log.Path = strings.TrimSpace(raw.Log.Path)
	raw.Log.Level = strings.ToLower(strings.TrimSpace(raw.Log.Level))
	raw.MQTT.Broker = strings.TrimSpace(raw.MQTT.Broker)
	raw.MQTT.Topic = strings.TrimSpace(raw.MQTT.Topic)
	for i := range raw.Endpoints {
		ep := &raw.Endpoints[i]
		ep.Name = strings.TrimSpace(ep.Name)
		ep.URL = strings.TrimSpace(ep.URL)
		ep.Parser = strings.TrimSpace(ep.Parser)
	}
}

func apply(cfg *Config, raw fileConfig) error {
	if raw.WiFi.Adapter != "" {
		cfg.WiFi.Adapter = raw.WiFi.Adapter
	}
	cfg.WiFi.Device = raw.WiFi.Device
	cfg.WiFi.Credentials = wifi.Credentials{SSID: raw.WiFi.SSID, Password: raw.WiFi.Password}
	setDuration(&cfg.WiFi.Timeout, raw.WiFi.Timeout)
	setDuration(&cfg.WiFi.RearmAfter, raw.WiFi.RearmAfter)
	setDuration(&cfg.WiFi.CommandTimeout, raw.WiFi.CommandTimeout)

	setDuration(&cfg.Fetch.Interval, raw.Fetch.Interval)
	setDuration(&cfg.Fetch.Retry, raw.Fetch.Retry)
	setDuration(&cfg.Fetch.Timeout, raw.Fetch.Timeout)
	setDuration(&cfg.PollEvery, raw.UI.Poll)

	if len(raw.Endpoints) > 0 {
		endpoints := make([]timeapi.Endpoint, 0, len(raw.Endpoints))
		for i, fe := range raw.Endpoints {
			id, err := timeapi.LookupParser(fe.Parser)
			if err != nil {
				return fmt.Errorf("endpoints[%d]: %w", i, err)
			}
			ep, err := timeapi.NewEndpoint(fe.Name, fe.URL, id)
			if err != nil {
				return fmt.Errorf("endpoints[%d]: %w", i, err)
			}
			endpoints = append(endpoints, ep)
		}
		cfg.Endpoints = endpoints
	}

	if raw.Log.Path != "" {
		cfg.Log.Path = mustExpand(raw.Log.Path)
	}
	if raw.Log.Level != "" {
		cfg.Log.Level = raw.Log.Level
	}

	cfg.MQTT.Broker = raw.MQTT.Broker
	if raw.MQTT.Topic != "" {
		cfg.MQTT.Topic = raw.MQTT.Topic
	}
	cfg.MQTT.ClientID = strings.TrimSpace(raw.MQTT.ClientID)
	cfg.MQTT.Username = raw.MQTT.Username
	cfg.MQTT.Password = raw.MQTT.Password
	cfg.MQTT.QoS = byte(raw.MQTT.QoS)
	if raw.MQTT.Retained != nil {
		cfg.MQTT.Retained = *raw.MQTT.Retained
	}
	return nil
}

// setDuration overwrites dst when s is set. s has already been validated.
func setDuration(dst *time.Duration, s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	if d, err := time.ParseDuration(s); err == nil {
		*dst = d
	}
}

func applyEnv(cfg *Config) {
	if ssid, ok := os.LookupEnv(EnvSSID); ok {
		cfg.WiFi.Credentials.SSID = strings.TrimSpace(ssid)
	}
	if pw, ok := os.LookupEnv(EnvPassword); ok {
		cfg.WiFi.Credentials.Password = pw
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
