package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"archive-extractor/internal/config"

	"github.com/urfave/cli/v3"
)

const version = "1.0.0"

// errJobsFailed signals a batch where at least one archive did not extract
var errJobsFailed = errors.New("one or more archives failed to extract")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()

	if err != nil {
		if !errors.Is(err, errJobsFailed) {
			slog.Error("Application failed", "error", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup structured logging
	setupLogging(cfg.LogLevel, stderr)

	return newApp(cfg, stdout, stderr).Run(ctx, args)
}

func newApp(cfg *config.Config, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "archive-extractor",
		Usage:     "Extract ZIP, RAR, 7z and split ZIP archives",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			extractCommand(cfg, stdout),
			listCommand(cfg, stdout),
			historyCommand(cfg, stdout),
		},
	}
}

// setupLogging configures structured logging based on the log level
func setupLogging(level string, w io.Writer) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := slog.NewTextHandler(w, opts)
	logger := slog.New(handler)
	slog.SetDefault(logger)
}
