package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"archive-extractor/internal/batch"
	"archive-extractor/internal/cleanup"
	"archive-extractor/internal/config"
	"archive-extractor/internal/database"
	"archive-extractor/internal/extractor"

	"github.com/urfave/cli/v3"
)

func extractCommand(cfg *config.Config, stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Aliases:   []string{"x"},
		Usage:     "Extract archives into a destination directory, one after another",
		ArgsUsage: "ARCHIVE...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dest", Aliases: []string{"d"}, Usage: "Destination directory (default: DESTINATION_PATH or current directory)"},
			&cli.BoolFlag{Name: "staging", Usage: "Extract into a staging directory and move entries into place on success"},
			&cli.BoolFlag{Name: "strict-split", Usage: "Only treat names ending in .zip.NNN as split archives"},
			&cli.BoolFlag{Name: "no-contain", Usage: "Allow entry names that resolve outside the destination"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Hide progress bars"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return fmt.Errorf("at least one archive path is required")
			}

			dest, err := resolveDestination(cmd.String("dest"), cfg.DestinationPath)
			if err != nil {
				return err
			}

			engine := extractor.NewService(
				extractor.WithPathContainment(cfg.ContainEntryPaths && !cmd.Bool("no-contain")),
				extractor.WithStrictSplitNames(cfg.StrictSplitNames || cmd.Bool("strict-split")),
			)
			cleaner := cleanup.NewService()
			sweepMergedLeftovers(cleaner, engine, paths)

			var opts []batch.Option
			if cfg.HistoryEnabled {
				db, err := database.New(cfg.HistoryDBPath)
				if err != nil {
					return fmt.Errorf("failed to initialize database: %w", err)
				}
				defer func() {
					if err := db.Close(); err != nil {
						slog.Error("Failed to close database", "error", err)
					}
				}()
				opts = append(opts, batch.WithHistory(db))
			}
			if cfg.UseStaging || cmd.Bool("staging") {
				opts = append(opts, batch.WithStaging(cleaner))
			}

			count, totalGB := batch.Totals(paths)
			display := newRenderer(stdout, cmd.Bool("quiet"), count, totalGB)

			runner := batch.NewRunner(engine, opts...)
			summary := display.consume(runner.Run(ctx, paths, dest))
			if summary.HasFailures() {
				return errJobsFailed
			}
			return nil
		},
	}
}

// resolveDestination picks the flag, then the configured path, then the working directory,
// and creates the directory when missing
func resolveDestination(flagValue, configured string) (string, error) {
	dest := flagValue
	if dest == "" {
		dest = configured
	}
	if dest == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		dest = wd
	}

	dest, err := filepath.Abs(dest)
	if err != nil {
		return "", fmt.Errorf("failed to resolve destination: %w", err)
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("failed to create destination directory: %w", err)
	}
	return dest, nil
}

// sweepMergedLeftovers removes merged files an interrupted run left next to split sources
func sweepMergedLeftovers(cleaner *cleanup.Service, engine *extractor.Service, paths []string) {
	seen := make(map[string]bool)
	for _, path := range paths {
		if engine.Classify(path) != extractor.FormatSplitZip {
			continue
		}
		dir := filepath.Dir(path)
		if seen[dir] {
			continue
		}
		seen[dir] = true

		removed, err := cleaner.SweepStaleMerged(dir)
		if err != nil {
			slog.Warn("Failed to sweep stale merged archives", "dir", dir, "error", err)
			continue
		}
		if len(removed) > 0 {
			slog.Info("Removed stale merged archives", "dir", dir, "count", len(removed))
		}
	}
}
