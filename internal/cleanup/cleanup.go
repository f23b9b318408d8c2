// Package cleanup removes leftovers of split archive joins and manages staging directories
package cleanup

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"archive-extractor/internal/extractor"
	"archive-extractor/internal/folder"
)

// StagingPrefix names every staging directory created by Prepare
const StagingPrefix = ".extract-staging-"

const mergedSuffix = "_merged.zip"

// ErrNotStaging is returned when a path was not created by Prepare
var ErrNotStaging = errors.New("not a staging directory")

// Service provides file cleanup services
type Service struct {
	logger *slog.Logger
}

// NewService creates a new cleanup service
func NewService() *Service {
	return &Service{
		logger: slog.Default(),
	}
}

// SweepStaleMerged removes {base}_merged.zip files in dir left behind by an interrupted join.
// A merged file is only removed when its first segment {base}.zip.001 is still next to it.
func (s *Service) SweepStaleMerged(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, mergedSuffix) {
			continue
		}

		base := strings.TrimSuffix(name, mergedSuffix)
		if base == "" || name != extractor.MergedName(base) {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, extractor.SegmentName(base, 1))); err != nil {
			s.logger.Debug("Keeping merged file without segments", "file", name)
			continue
		}

		mergedPath := filepath.Join(dir, name)
		s.logger.Info("Removing stale merged archive", "file", mergedPath, "size", s.getFileSize(mergedPath))
		if err := os.Remove(mergedPath); err != nil {
			return removed, fmt.Errorf("failed to remove stale merged archive: %w", err)
		}
		removed = append(removed, mergedPath)
	}

	return removed, nil
}

// Prepare creates a fresh staging directory inside dest
func (s *Service) Prepare(dest string) (string, error) {
	staging, err := os.MkdirTemp(dest, StagingPrefix+"*")
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	s.logger.Debug("Created staging directory", "staging", staging)
	return staging, nil
}

// Promote moves everything below staging into dest and removes staging.
// Existing files are replaced; existing directories are merged.
func (s *Service) Promote(staging, dest string) error {
	if !isStaging(staging) {
		return fmt.Errorf("%w: %s", ErrNotStaging, staging)
	}

	guard := folder.NewService(dest, true)
	if err := s.moveTree(guard, staging, dest); err != nil {
		return err
	}

	s.logger.Debug("Promoted staging directory", "staging", staging, "dest", dest)
	return s.Discard(staging)
}

// moveTree renames the children of src into dst, descending into directories that exist on both sides
func (s *Service) moveTree(guard *folder.Service, src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read staging directory: %w", err)
	}

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		if !s.isPathSafe(guard, to) {
			return fmt.Errorf("unsafe promote target: %s", to)
		}

		existing, err := os.Lstat(to)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return fmt.Errorf("failed to stat promote target: %w", err)
		case entry.IsDir() && existing.IsDir():
			if err := s.moveTree(guard, from, to); err != nil {
				return err
			}
			continue
		case existing.IsDir():
			return fmt.Errorf("cannot replace directory %s with a file", to)
		case entry.IsDir():
			return fmt.Errorf("cannot replace file %s with a directory", to)
		}

		if err := os.Rename(from, to); err != nil {
			return fmt.Errorf("failed to move %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// Discard removes a staging directory and everything in it
func (s *Service) Discard(staging string) error {
	if !isStaging(staging) {
		return fmt.Errorf("%w: %s", ErrNotStaging, staging)
	}
	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("failed to remove staging directory: %w", err)
	}
	return nil
}

func isStaging(path string) bool {
	return strings.HasPrefix(filepath.Base(path), StagingPrefix)
}

// isPathSafe checks if a file path is within the destination directory
func (s *Service) isPathSafe(guard *folder.Service, filePath string) bool {
	if !guard.IsWithin(filePath) {
		s.logger.Warn("Path outside destination", "file", filePath, "base", guard.BasePath)
		return false
	}
	return true
}

// getFileSize returns the size of a file in bytes, or 0 if it can't be determined
func (s *Service) getFileSize(filePath string) int64 {
	if stat, err := os.Stat(filePath); err == nil {
		return stat.Size()
	}
	return 0
}
