package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"tradecalc/app"
	"tradecalc/hal"
	"tradecalc/internal/config"
)

func main() {
	var (
		headless   bool
		hz         int
		ticks      uint64
		configPath string
		scale      int
		keys       string
	)
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hz, "hz", 0, "Tick rate in headless mode (0 = config value).")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&configPath, "config", "", "YAML config file.")
	flag.IntVar(&scale, "scale", 0, "Window scale factor (0 = config value).")
	flag.StringVar(&keys, "keys", "", "Key script replayed at startup, one key per frame.")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			fatalf("%v", err)
		}
	}
	if hz > 0 {
		cfg.Headless.Hz = hz
	}
	if scale > 0 {
		cfg.Display.Scale = scale
	}
	if err := cfg.Validate(); err != nil {
		fatalf("config: %v", err)
	}

	newApp := func(h hal.HAL) func() error { return app.NewWithConfig(h, cfg) }

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{Hz: cfg.Headless.Hz, Ticks: ticks, Keys: keys})
		if err != nil && !errors.Is(err, context.Canceled) {
			fatalf("%v", err)
		}
		return
	}

	if err := hal.RunWindow(newApp, hal.WindowConfig{Scale: cfg.Display.Scale, Keys: keys}); err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "tradecalc: "+format+"\n", args...)
	os.Exit(1)
}
