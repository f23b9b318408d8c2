package extractor

import (
	"archive/zip"
	"context"
	"fmt"
)

// extractZip extracts a ZIP archive using Go's built-in archive/zip package.
// The central directory listing fixes the entry total before the first entry is written.
func (s *Service) extractZip(ctx context.Context, archivePath, destPath string, sizeGB float64, onProgress ProgressFunc) ([]string, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ZIP archive: %w", err)
	}
	defer reader.Close()

	writer := s.newEntryWriter(destPath)
	total := len(reader.File)

	for i, file := range reader.File {
		if err := ctx.Err(); err != nil {
			return writer.files, err
		}

		if file.FileInfo().IsDir() {
			err = writer.directory(file.Name)
		} else {
			err = s.extractZipFile(writer, file)
		}
		if err != nil {
			return writer.files, err
		}

		s.logger.Debug("Extracted entry", "archive", archivePath, "entry", file.Name, "index", i+1, "total", total)
		report(onProgress, i+1, total, sizeGB)
	}

	return writer.files, nil
}

// extractZipFile extracts a single file from a ZIP archive
func (s *Service) extractZipFile(writer *entryWriter, file *zip.File) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file in archive: %w", err)
	}
	defer reader.Close()

	return writer.file(file.Name, reader, file.Mode())
}
