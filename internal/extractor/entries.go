package extractor

import (
	"fmt"
	"io"
	"os"

	"archive-extractor/internal/folder"
)

const defaultFileMode os.FileMode = 0o644

// entryWriter writes archive entries below one destination directory
type entryWriter struct {
	dest  *folder.Service
	files []string
}

func (s *Service) newEntryWriter(destPath string) *entryWriter {
	return &entryWriter{dest: folder.NewService(destPath, s.contain)}
}

// target resolves an entry name under the destination
func (w *entryWriter) target(name string) (string, error) {
	target, err := w.dest.Resolve(name)
	if err != nil {
		return "", fmt.Errorf("unsafe entry path %q: %w", name, err)
	}
	return target, nil
}

// directory creates the directory for a directory entry
func (w *entryWriter) directory(name string) error {
	target, err := w.target(name)
	if err != nil {
		return err
	}
	return w.dest.CreateDirectory(target)
}

// file writes r to the path of a file entry, creating missing parents
func (w *entryWriter) file(name string, r io.Reader, mode os.FileMode) error {
	target, err := w.target(name)
	if err != nil {
		return err
	}
	if err := w.dest.EnsureParent(target); err != nil {
		return err
	}
	if err := writeEntryFile(r, target, mode); err != nil {
		return fmt.Errorf("failed to extract %s: %w", name, err)
	}
	w.files = append(w.files, target)
	return nil
}

// writeEntryFile copies one entry's content to destPath
func writeEntryFile(reader io.Reader, destPath string, mode os.FileMode) error {
	perm := mode.Perm()
	if perm == 0 {
		perm = defaultFileMode
	}

	writer, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(writer, reader); err != nil {
		writer.Close()
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close destination file: %w", err)
	}
	return nil
}
