package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"pyaudit/internal/config"
)

const configPath = "./pyaudit.toml"

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: pyaudit <filename.py>")
		return
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Config is discovered, never flagged; a missing file means defaults.
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	app, err := NewApp(cfg, os.Args[1])
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	ctx := context.Background()
	if err := app.RunOnce(ctx); err != nil {
		slog.Error("analysis failed", "path", os.Args[1], "error", err)
		os.Exit(1)
	}

	if cfg.Watch.Enabled {
		if err := app.WatchLoop(ctx); err != nil {
			slog.Error("watch mode failed", "error", err)
			os.Exit(1)
		}
	}
}
