package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/madocalc/internal/scenario"
	"github.com/udisondev/madocalc/internal/store"
)

func runBatch(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("batch")
	xlsx := fs.String("xlsx", "", "also write an xlsx report to this path")
	limit := fs.Int("limit", 0, "max concurrent scenarios (0 = GOMAXPROCS)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: batch takes one scenario file", errUsage)
	}

	file, err := scenario.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	modes, err := file.BuffModes(a.modes)
	if err != nil {
		return fmt.Errorf("scenario modes: %w", err)
	}
	presets, err := store.NewPresetRepository(a.store).Catalog(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := scenario.Runner{Modes: modes, Presets: presets, Limit: *limit}.Run(ctx, file.Scenarios)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			slog.Warn("scenario solve failed", "scenario", r.Name, "err", r.Err)
		}
	}
	slog.Info("batch done",
		"scenarios", len(results),
		"failed", failed,
		"elapsed", time.Since(start).Round(time.Millisecond))

	if err := scenario.WriteText(a.out, results); err != nil {
		return err
	}
	if *xlsx != "" {
		if err := scenario.WriteXLSX(*xlsx, results); err != nil {
			return err
		}
		slog.Info("xlsx report written", "path", *xlsx)
	}
	return nil
}
