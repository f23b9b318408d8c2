package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"archive-extractor/internal/config"
	"archive-extractor/internal/database"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

const bytesPerGB = 1024 * 1024 * 1024

func historyCommand(cfg *config.Config, stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recent extraction outcomes",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "Number of extractions to show"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cfg.HistoryEnabled {
				return fmt.Errorf("history is disabled (HISTORY_ENABLED=false)")
			}

			db, err := database.New(cfg.HistoryDBPath)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					slog.Error("Failed to close database", "error", err)
				}
			}()

			return printHistory(stdout, db, cmd.Int("limit"))
		},
	}
}

func printHistory(out io.Writer, db *database.DB, limit int) error {
	extractions, err := db.ListExtractions(limit, 0)
	if err != nil {
		return err
	}

	if len(extractions) == 0 {
		fmt.Fprintln(out, "No extractions recorded")
		return nil
	}

	for _, extraction := range extractions {
		size := humanize.IBytes(uint64(extraction.SizeGB * bytesPerGB))
		fmt.Fprintf(out, "%-16s  %-18s  %-11s  %9s  %3d file(s)  %s\n",
			humanize.Time(extraction.CreatedAt),
			extraction.Status,
			extraction.Format,
			size,
			extraction.Entries,
			extraction.ArchivePath)
		if extraction.ErrorMessage != "" {
			fmt.Fprintf(out, "%16s  %s\n", "", extraction.ErrorMessage)
		}
	}

	stats, err := db.GetExtractionStats()
	if err != nil {
		return err
	}

	statuses := make([]string, 0, len(stats))
	for status := range stats {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	fmt.Fprint(out, "Totals:")
	for _, status := range statuses {
		fmt.Fprintf(out, " %s=%d", status, stats[status])
	}
	fmt.Fprintln(out)
	return nil
}
