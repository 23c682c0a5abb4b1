package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/alnah/go-md2site/internal/logfields"
	"github.com/alnah/go-md2site/internal/watch"
)

// newLogger returns the text logger used in watch mode.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// watchSite rebuilds whenever the report or the config file changes.
// Each rebuild re-reads configuration, so edits to the section table apply
// without a restart. Returns nil when ctx is cancelled.
func watchSite(ctx context.Context, env *Environment, flags *buildFlags, positional []string, plan *buildPlan) error {
	logger := newLogger(env.Stderr, flags.common.verbose)

	paths := []string{plan.reportPath}
	if plan.configPath != "" {
		paths = append(paths, plan.configPath)
	}

	w, err := watch.New(paths,
		watch.WithDebounce(flags.watch.debounce),
		watch.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("starting watch: %w", err)
	}

	return w.Run(ctx, func(ctx context.Context) error {
		next, err := planBuild(env, flags, positional)
		if err != nil {
			return err
		}
		summary, err := buildSite(ctx, env, next, flags.common)
		if err != nil {
			return err
		}

		logger.Info("pages built",
			logfields.Pages(len(summary.result.Pages)),
			logfields.Skipped(len(summary.result.Skipped)),
			logfields.Engine(next.cfg.Render.Engine),
			logfields.Duration(summary.duration),
		)
		for _, page := range summary.result.Pages {
			logger.Debug("page written", logfields.Section(page.Key), logfields.File(page.File))
		}
		for _, key := range summary.result.Skipped {
			logger.Debug("unmapped section", logfields.Section(key))
		}
		return nil
	})
}
