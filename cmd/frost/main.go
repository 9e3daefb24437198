//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"window-frost/internal/app"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "frost:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		return err
	}

	out := os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if _, err := app.SetupLogging(out, cfg.LogLevel); err != nil {
		return err
	}

	sim, err := cfg.NewSim()
	if err != nil {
		return err
	}
	fc := sim.Simulation().Config()

	opts := cfg.Options()
	game, err := app.New(sim, opts)
	if err != nil {
		return err
	}

	w, h := game.Layout(0, 0)
	ebiten.SetWindowTitle("window-frost")
	ebiten.SetTPS(opts.TPS)
	ebiten.SetWindowSize(w, h)

	slog.Info("frost started", "seed", fc.Seed, "noise", fc.Noise, "probes", opts.Probes, "sound", opts.Sound)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
