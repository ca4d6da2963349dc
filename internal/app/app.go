package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/atarukun/home/internal/clock"
	"github.com/atarukun/home/internal/config"
	"github.com/atarukun/home/internal/countdown"
	"github.com/atarukun/home/internal/datefetch"
	"github.com/atarukun/home/internal/diag"
	"github.com/atarukun/home/internal/prefs"
	"github.com/atarukun/home/internal/publish"
	"github.com/atarukun/home/internal/state"
	"github.com/atarukun/home/internal/timeapi"
	"github.com/atarukun/home/internal/ui"
	"github.com/atarukun/home/internal/wifi"
)

// Options configure the application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/christmas/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
	Headless   bool   // no terminal UI; frames are logged to Console
	Console    io.Writer
}

// Run boots the countdown until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	interval := cfg.PollEvery
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	var console io.Writer
	if opts.Headless {
		console = opts.Console
		if console == nil {
			console = os.Stderr
		}
	}
	sink := diag.Open(diag.Options{Path: cfg.Log.Path, Level: cfg.Log.Level, Console: console})
	defer sink.Close()

	log := sink.Named("app")
	log.Info().
		Str("config", cfg.Path).
		Str("adapter", cfg.WiFi.Adapter).
		Int("endpoints", len(cfg.Endpoints)).
		Dur("poll", interval).
		Bool("headless", opts.Headless).
		Msg("starting")

	store := &state.Store{}
	fanout := countdown.NewFanout(sink.Named("render"), store)
	if opts.Headless {
		fanout.Add(headlessRenderer(sink.Named("display")))
	}
	if cfg.MQTT.Enabled() {
		m, err := publish.Dial(publish.Options{
			Broker:   cfg.MQTT.Broker,
			Topic:    cfg.MQTT.Topic,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
			QoS:      cfg.MQTT.QoS,
			Retained: cfg.MQTT.Retained,
		}, sink.Named("mqtt"))
		if err != nil {
			// The countdown still works locally without a broker.
			log.Warn().Err(err).Str("broker", cfg.MQTT.Broker).Msg("mqtt_disabled")
		} else {
			defer m.Close()
			fanout.Add(m)
		}
	}

	ctrl := newController(cfg, sink, fanout, deps{})

	pollCtx, stopPoller := context.WithCancel(ctx)
	done := StartPoller(pollCtx, ctrl, interval)
	defer func() {
		stopPoller()
		<-done
		log.Info().Msg("stopped")
	}()

	if opts.Headless {
		<-ctx.Done()
		return nil
	}

	userPrefs := prefs.Load(opts.PrefsPath)
	return ui.Run(ctx, ui.Options{
		Store:     store,
		Config:    &cfg,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		ShowLogs:  userPrefs.ShowLogs,
		PrefsPath: opts.PrefsPath,
		LogPath:   sink.Path(),
	})
}

// deps are the outside-world capabilities; zero values select the real
// implementations.
type deps struct {
	clock   clock.Clock
	getter  timeapi.Getter
	adapter wifi.Adapter
}

func newController(cfg config.Config, sink *diag.Sink, renderer countdown.Renderer, d deps) *countdown.Controller {
	if d.clock == nil {
		d.clock = clock.NewMonotonic()
	}
	if d.getter == nil {
		d.getter = timeapi.NewClient(nil)
	}

	link := newLink(cfg.WiFi, d, sink.Named("wifi"))
	fetcher := datefetch.New(link, d.getter, d.clock, datefetch.Config{
		Endpoints:     cfg.Endpoints,
		FetchInterval: cfg.Fetch.Interval,
		RetryInterval: cfg.Fetch.Retry,
		Timeout:       cfg.Fetch.Timeout,
	}, sink.Named("datefetch"))

	return countdown.New(link, fetcher, renderer, sink.Named("countdown"))
}

type link interface {
	countdown.Link
	datefetch.Link
}

func newLink(c config.WiFi, d deps, log zerolog.Logger) link {
	managerCfg := wifi.Config{
		Credentials:    c.Credentials,
		Timeout:        c.Timeout,
		RearmAfter:     c.RearmAfter,
		CommandTimeout: c.CommandTimeout,
	}
	switch c.Adapter {
	case config.AdapterWired:
		return wifi.Wired{}
	case config.AdapterNone:
		return wifi.NewManager(nil, d.clock, managerCfg, log)
	default:
		adapter := d.adapter
		if adapter == nil {
			adapter = wifi.NewNMCLI(c.Device, nil)
		}
		return wifi.NewManager(adapter, d.clock, managerCfg, log)
	}
}

// headlessRenderer logs a line whenever the visible state changes.
func headlessRenderer(log zerolog.Logger) countdown.Renderer {
	var last countdown.Display
	var seen bool
	return countdown.RenderFunc(func(d countdown.Display) {
		if seen && d.Status == last.Status && d.Headline() == last.Headline() && d.ErrorCode == last.ErrorCode {
			return
		}
		if d.Status == countdown.StatusConnecting && seen && last.Status == countdown.StatusConnecting {
			return
		}
		seen, last = true, d
		ev := log.Info().Str("status", d.Status.String())
		if d.HasDate {
			ev = ev.Int("days", d.Days).Str("date", d.Date)
		}
		if d.ErrorCode != "" {
			ev = ev.Str("code", d.ErrorCode)
		}
		ev.Msg(d.Headline())
	})
}
