package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"archive-extractor/internal/config"
	"archive-extractor/internal/extractor"

	"github.com/dustin/go-humanize"
	"github.com/mholt/archives"
	"github.com/urfave/cli/v3"
)

func listCommand(cfg *config.Config, stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List the entries of an archive without extracting it",
		ArgsUsage: "ARCHIVE",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			archivePath := cmd.Args().First()
			if archivePath == "" {
				return fmt.Errorf("archive path is required")
			}
			engine := extractor.NewService(extractor.WithStrictSplitNames(cfg.StrictSplitNames))
			return listArchive(ctx, stdout, engine, archivePath)
		},
	}
}

// listArchive prints every entry of archivePath. Split archives are joined first
// and the merged file is removed afterwards.
func listArchive(ctx context.Context, out io.Writer, engine *extractor.Service, archivePath string) error {
	if _, err := os.Stat(archivePath); err != nil {
		return fmt.Errorf("file not found: %s", archivePath)
	}

	classified := engine.Classify(archivePath)
	if classified == extractor.FormatUnsupported {
		return fmt.Errorf("format not supported: %s", filepath.Base(archivePath))
	}

	source := archivePath
	if classified == extractor.FormatSplitZip {
		merged, err := extractor.JoinSegments(filepath.Dir(archivePath), extractor.SplitBaseName(archivePath))
		if err != nil {
			if errors.Is(err, extractor.ErrSegmentsNotFound) {
				return fmt.Errorf("parts not found: %s", filepath.Base(archivePath))
			}
			return fmt.Errorf("failed to join segments: %w", err)
		}
		defer func() {
			if err := os.Remove(merged); err != nil && !os.IsNotExist(err) {
				slog.Warn("Failed to remove merged archive", "merged", merged, "error", err)
			}
		}()
		source = merged
	}

	file, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	format, input, err := archives.Identify(ctx, filepath.Base(source), file)
	if err != nil {
		if errors.Is(err, archives.NoMatch) {
			return fmt.Errorf("unrecognized archive contents: %s", filepath.Base(archivePath))
		}
		return fmt.Errorf("failed to identify archive format: %w", err)
	}

	ex, ok := format.(archives.Extractor)
	if !ok {
		return fmt.Errorf("archive format %s does not support listing", format.Extension())
	}

	fmt.Fprintf(out, "%s: %s (detected %s)\n", filepath.Base(archivePath), classified, format.Extension())

	var entries, files int
	var totalSize int64
	handler := func(ctx context.Context, f archives.FileInfo) error {
		entries++
		if f.IsDir() {
			fmt.Fprintf(out, "%10s  %s\n", "-", f.NameInArchive)
			return nil
		}
		files++
		totalSize += f.Size()
		fmt.Fprintf(out, "%10s  %s\n", humanize.IBytes(uint64(f.Size())), f.NameInArchive)
		return nil
	}

	if err := ex.Extract(ctx, input, handler); err != nil {
		return fmt.Errorf("failed to list archive: %w", err)
	}

	fmt.Fprintf(out, "%d entries, %d file(s), %s\n", entries, files, humanize.IBytes(uint64(totalSize)))
	return nil
}
