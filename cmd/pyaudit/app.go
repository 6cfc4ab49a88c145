package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/gobwas/glob"

	"pyaudit/internal/analyzer"
	"pyaudit/internal/config"
	"pyaudit/internal/history"
	"pyaudit/internal/report"
	"pyaudit/internal/watcher"
)

// App wires the analyzer to config-driven concerns: ignore filters, the
// optional run history store, and watch mode.
type App struct {
	cfg           *config.Config
	path          string
	out           io.Writer
	analyzer      *analyzer.Analyzer
	varIgnores    []glob.Glob
	importIgnores []glob.Glob
	store         *history.Store
}

func NewApp(cfg *config.Config, path string) (*App, error) {
	varIgnores, importIgnores, err := cfg.CompileIgnores()
	if err != nil {
		return nil, err
	}

	var store *history.Store
	if cfg.History.Path != "" {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
	}

	return &App{
		cfg:           cfg,
		path:          path,
		out:           os.Stdout,
		analyzer:      analyzer.New(),
		varIgnores:    varIgnores,
		importIgnores: importIgnores,
		store:         store,
	}, nil
}

func (a *App) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

// RunOnce reads the target file, analyzes it, and prints the report. File
// I/O failures propagate; they are not part of the report.
func (a *App) RunOnce(ctx context.Context) error {
	source, err := os.ReadFile(a.path)
	if err != nil {
		return err
	}

	rep := a.analyzer.Analyze(ctx, source)
	rep = report.Filter(rep, a.varIgnores, a.importIgnores)

	if a.store != nil {
		if _, err := a.store.RecordRun(a.path, rep); err != nil {
			slog.Warn("failed to record run", "error", err)
		}
	}

	if a.cfg.Output.Format == "text" {
		if err := report.WriteText(a.out, a.path, rep); err != nil {
			return err
		}
		return a.writeRecentRuns()
	}
	return report.WriteJSON(a.out, rep)
}

// recentRunLimit caps the history trail appended to text output.
const recentRunLimit = 5

// writeRecentRuns appends the run-history trail to text output when the
// store is enabled. History read failures are logged, not fatal: the report
// itself has already been printed.
func (a *App) writeRecentRuns() error {
	if a.store == nil {
		return nil
	}
	runs, err := a.store.Recent(recentRunLimit)
	if err != nil {
		slog.Warn("failed to load run history", "error", err)
		return nil
	}
	return report.WriteHistory(a.out, runs)
}

// WatchLoop re-runs the analysis whenever the target file changes. Blocks
// until the process is terminated.
func (a *App) WatchLoop(ctx context.Context) error {
	w, err := watcher.New(a.path, a.cfg.Watch.Debounce, a.cfg.Watch.MaxEventsPerSecond, nil, func(path string) {
		if err := a.RunOnce(ctx); err != nil {
			slog.Error("re-analysis failed", "path", path, "error", err)
		}
	})
	if err != nil {
		return err
	}

	if err := w.Start(); err != nil {
		_ = w.Close()
		return err
	}

	slog.Info("watching for changes", "path", a.path)
	select {}
}
