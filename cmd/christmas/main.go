package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atarukun/home/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config path (optional, defaults to ~/.config/christmas/config.toml)")
	prefsPath := flag.String("prefs", "", "UI preferences path (optional)")
	pollSeconds := flag.Int("poll", 0, "tick interval in seconds (optional, defaults to the config value)")
	headless := flag.Bool("headless", false, "run without the terminal UI and log frames to stderr")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Headless:   *headless,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "christmas: %v\n", err)
		return 1
	}
	return 0
}
