package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"window-frost/internal/app"
	"window-frost/internal/report"
	"window-frost/internal/store"
	"window-frost/internal/sweep"
)

func main() {
	if err := run(); err != nil {
		slog.Error("sweep failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := app.NewConfig()
	cfg.BindCommon(flag.CommandLine)
	steps := flag.Int("steps", 1800, "ticks to simulate per scenario")
	dt := flag.Float64("dt", 1.0/30, "seconds per tick")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 5, "results to print and plot")
	dbPath := flag.String("db", "", "record results in this SQLite database")
	chartPath := flag.String("chart", "", "write a coverage chart PNG to this path")
	flag.Parse()

	if _, err := app.SetupLogging(os.Stderr, cfg.LogLevel); err != nil {
		return err
	}
	base, err := cfg.FrostConfig()
	if err != nil {
		return err
	}

	opts := sweep.Options{Base: base, Steps: *steps, DT: *dt, Workers: *workers}
	sets := sweep.DefaultGrid().Sets()
	slog.Info("sweeping", "sets", len(sets), "workers", opts.Workers, "steps", opts.Steps, "dt", opts.DT)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	results, err := sweep.Run(ctx, opts, sets)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := report.Summary(os.Stdout, results, *top, opts.DT, elapsed); err != nil {
		return err
	}

	if *chartPath != "" {
		f, err := os.Create(*chartPath)
		if err != nil {
			return fmt.Errorf("create chart: %w", err)
		}
		if err := report.WriteCoveragePNG(f, results, *top, opts.DT); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		slog.Info("chart written", "path", *chartPath)
	}

	if *dbPath != "" {
		db, err := store.Open(*dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		id, err := db.SaveSweep(ctx, store.Sweep{
			StartedAt: start.UTC(),
			Steps:     opts.Steps,
			DT:        opts.DT,
			Workers:   opts.Workers,
			Width:     base.Width,
			Height:    base.Height,
			Seed:      base.Seed,
			Elapsed:   elapsed,
		}, results)
		if err != nil {
			return err
		}
		slog.Info("sweep recorded", "id", id, "db", *dbPath)
	}
	return nil
}
