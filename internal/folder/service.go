// Package folder resolves archive entry names to paths under a destination directory
package folder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideBase is returned when a path resolves outside the base directory
var ErrOutsideBase = errors.New("path outside of base directory")

// Service maps relative names onto a base directory
type Service struct {
	BasePath string
	// Contain rejects names that escape BasePath. When false, names are joined as given.
	Contain bool
}

// NewService creates a new folder service with the specified base path
func NewService(basePath string, contain bool) *Service {
	return &Service{
		BasePath: filepath.Clean(basePath),
		Contain:  contain,
	}
}

// Resolve returns the destination path for an archive entry name
func (fs *Service) Resolve(name string) (string, error) {
	if fs.Contain {
		return fs.ValidatePath(name)
	}
	return filepath.Join(fs.BasePath, filepath.FromSlash(normalizeSeparators(name))), nil
}

// normalizeSeparators rewrites '\' separators, which some archive writers store, to '/'
func normalizeSeparators(name string) string {
	return strings.ReplaceAll(name, `\`, "/")
}

// ValidatePath ensures the given relative path is safe and returns the full path
func (fs *Service) ValidatePath(relativePath string) (string, error) {
	// Handle empty path or root
	if relativePath == "" || relativePath == "/" {
		return fs.BasePath, nil
	}

	normalized := normalizeSeparators(relativePath)
	cleanRelative := strings.TrimPrefix(filepath.FromSlash(normalized), string(filepath.Separator))

	fullPath := filepath.Clean(filepath.Join(fs.BasePath, cleanRelative))
	cleanBase := filepath.Clean(fs.BasePath)

	if fullPath != cleanBase && !strings.HasPrefix(fullPath, cleanBase+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideBase, relativePath)
	}

	return fullPath, nil
}

// IsWithin reports whether path lies strictly inside the base directory
func (fs *Service) IsWithin(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absBase, err := filepath.Abs(fs.BasePath)
	if err != nil {
		return false
	}
	return strings.HasPrefix(absPath, absBase+string(os.PathSeparator)) && absPath != absBase
}

// EnsureParent creates the parent directory of fullPath if it doesn't exist
func (fs *Service) EnsureParent(fullPath string) error {
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	return nil
}

// CreateDirectory creates the directory for an entry, including missing parents
func (fs *Service) CreateDirectory(fullPath string) error {
	if err := os.MkdirAll(fullPath, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}
