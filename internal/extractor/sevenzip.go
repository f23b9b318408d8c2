package extractor

import (
	"context"
	"fmt"

	"github.com/bodgit/sevenzip"
)

// extractSevenZip extracts a 7z archive one entry at a time.
// Each entry is opened on its own so progress stays per entry even for solid archives.
func (s *Service) extractSevenZip(ctx context.Context, archivePath, destPath string, sizeGB float64, onProgress ProgressFunc) ([]string, error) {
	reader, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z archive: %w", err)
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
			err = extractSevenZipFile(writer, file)
		}
		if err != nil {
			return writer.files, err
		}

		s.logger.Debug("Extracted entry", "archive", archivePath, "entry", file.Name, "index", i+1, "total", total)
		report(onProgress, i+1, total, sizeGB)
	}

	return writer.files, nil
}

// extractSevenZipFile extracts a single file from a 7z archive
func extractSevenZipFile(writer *entryWriter, file *sevenzip.File) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file in archive: %w", err)
	}
	defer reader.Close()

	return writer.file(file.Name, reader, file.Mode())
}
