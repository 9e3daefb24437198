package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"window-frost/internal/app"
	"window-frost/internal/audio"
	"window-frost/internal/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "frost-term:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := app.NewConfig()
	cfg.Heater = 8
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The screen owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	if _, err := app.SetupLogging(logOut, cfg.LogLevel); err != nil {
		return err
	}

	fs, err := cfg.NewSim()
	if err != nil {
		return err
	}
	sim := fs.Simulation()
	fc := sim.Config()

	var cues term.CuePlayer
	if cfg.Sound {
		player := audio.NewPlayer(audio.DefaultConfig())
		if err := player.Init(); err != nil {
			slog.Warn("audio unavailable", "error", err)
		} else {
			defer player.Close()
			cues = player
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	viewer := term.New(screen, sim, term.Options{TPS: cfg.TPS, HeaterSize: cfg.Heater, Probes: cfg.Probes}, cues)
	slog.Info("frost-term started", "seed", fc.Seed, "noise", fc.Noise, "probes", cfg.Probes)
	if err := viewer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
