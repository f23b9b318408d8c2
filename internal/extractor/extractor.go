// Package extractor provides archive extraction functionality for ZIP, RAR, 7Z and split ZIP files
package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const bytesPerGB = 1024 * 1024 * 1024

// Extractor interface defines methods for extracting archive files
type Extractor interface {
	Extract(ctx context.Context, job Job, onProgress ProgressFunc) Outcome
}

// Service provides archive extraction services
type Service struct {
	logger       *slog.Logger
	contain      bool
	strictSplits bool
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger used by the service
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithPathContainment rejects entries whose names resolve outside the destination
func WithPathContainment(enabled bool) Option {
	return func(s *Service) {
		s.contain = enabled
	}
}

// WithStrictSplitNames only treats names ending in ".zip.NNN" as split archives
func WithStrictSplitNames(enabled bool) Option {
	return func(s *Service) {
		s.strictSplits = enabled
	}
}

// NewService creates a new extractor service
func NewService(opts ...Option) *Service {
	s := &Service{
		logger:  slog.Default(),
		contain: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Classify returns the format the service dispatches path to
func (s *Service) Classify(path string) Format {
	if s.strictSplits {
		return ClassifyStrict(path)
	}
	return Classify(path)
}

// Extract extracts job.Source into job.Destination, calling onProgress after each entry.
// Every failure is reported through the returned Outcome; Extract never panics.
func (s *Service) Extract(ctx context.Context, job Job, onProgress ProgressFunc) (outcome Outcome) {
	outcome.Basename = filepath.Base(job.Source)

	info, err := os.Stat(job.Source)
	if err != nil {
		s.logger.Warn("Archive not found", "archive", job.Source, "error", err)
		outcome.Kind = KindNotFound
		return outcome
	}

	outcome.SizeGB = float64(info.Size()) / bytesPerGB
	outcome.Format = s.Classify(job.Source)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Extraction panicked", "archive", job.Source, "panic", r)
			outcome.Kind = KindExtractionFailed
			outcome.Err = fmt.Sprintf("panic during extraction: %v", r)
		}
	}()

	s.logger.Info("Extracting archive",
		"archive", job.Source,
		"dest", job.Destination,
		"format", outcome.Format.String(),
		"size_gb", outcome.SizeGB)

	var files []string
	switch outcome.Format {
	case FormatZip:
		files, err = s.extractZip(ctx, job.Source, job.Destination, outcome.SizeGB, onProgress)
	case FormatRar:
		files, err = s.extractRar(ctx, job.Source, job.Destination, outcome.SizeGB, onProgress)
	case FormatSevenZip:
		files, err = s.extractSevenZip(ctx, job.Source, job.Destination, outcome.SizeGB, onProgress)
	case FormatSplitZip:
		files, err = s.extractSplitZip(ctx, job.Source, job.Destination, outcome.SizeGB, onProgress)
		if errors.Is(err, ErrSegmentsNotFound) {
			s.logger.Warn("Split archive segments not found", "archive", job.Source)
			outcome.Kind = KindSegmentsMissing
			return outcome
		}
	default:
		s.logger.Warn("Unsupported archive format", "archive", job.Source)
		outcome.Kind = KindUnsupportedFormat
		return outcome
	}

	outcome.Files = files
	if err != nil {
		s.logger.Error("Extraction failed", "archive", job.Source, "extracted_files", len(files), "error", err)
		outcome.Kind = KindExtractionFailed
		outcome.Err = err.Error()
		return outcome
	}

	s.logger.Info("Extraction completed", "archive", job.Source, "extracted_files", len(files))
	return outcome
}

// extractSplitZip reassembles the segments next to archivePath and extracts the merged file.
// The merged file is removed whatever the extraction result.
func (s *Service) extractSplitZip(ctx context.Context, archivePath, destPath string, sizeGB float64, onProgress ProgressFunc) ([]string, error) {
	dir := filepath.Dir(archivePath)
	base := SplitBaseName(archivePath)

	mergedPath, err := JoinSegments(dir, base)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Joined split archive", "base", base, "merged", mergedPath)

	defer func() {
		if removeErr := os.Remove(mergedPath); removeErr != nil && !os.IsNotExist(removeErr) {
			s.logger.Warn("Failed to remove merged archive", "merged", mergedPath, "error", removeErr)
		}
	}()

	return s.extractZip(ctx, mergedPath, destPath, sizeGB, onProgress)
}
