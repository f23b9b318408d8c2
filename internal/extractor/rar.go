package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nwaples/rardecode"
)

// extractRar extracts a RAR archive using the rardecode library.
// RAR is a streaming format, so headers are walked once to learn the entry total
// and a second reader performs the extraction.
func (s *Service) extractRar(ctx context.Context, archivePath, destPath string, sizeGB float64, onProgress ProgressFunc) ([]string, error) {
	total, err := countRarEntries(archivePath)
	if err != nil {
		return nil, err
	}

	rarReader, err := openRar(archivePath)
	if err != nil {
		return nil, err
	}
	defer rarReader.Close()

	writer := s.newEntryWriter(destPath)

	for index := 1; ; index++ {
		if err := ctx.Err(); err != nil {
			return writer.files, err
		}

		header, err := rarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return writer.files, fmt.Errorf("failed to read RAR header: %w", err)
		}

		if header.IsDir {
			err = writer.directory(header.Name)
		} else {
			err = writer.file(header.Name, rarReader, header.Mode())
		}
		if err != nil {
			return writer.files, err
		}

		s.logger.Debug("Extracted entry", "archive", archivePath, "entry", header.Name, "index", index, "total", total)
		report(onProgress, index, total, sizeGB)
	}

	if volumes := rarReader.Volumes(); len(volumes) > 1 {
		s.logger.Info("Multi-part RAR extraction used volumes", "volumes", volumes, "count", len(volumes))
	}

	return writer.files, nil
}

// openRar opens a RAR archive, following continuation volumes
func openRar(archivePath string) (*rardecode.ReadCloser, error) {
	rarReader, err := rardecode.OpenReader(archivePath, "")
	if err != nil {
		if strings.Contains(err.Error(), "password") || strings.Contains(err.Error(), "encrypted") {
			return nil, errors.New("RAR archive is password-protected")
		}
		return nil, fmt.Errorf("failed to open RAR archive: %w", err)
	}
	return rarReader, nil
}

// countRarEntries walks every header of the archive without extracting data
func countRarEntries(archivePath string) (int, error) {
	rarReader, err := openRar(archivePath)
	if err != nil {
		return 0, err
	}
	defer rarReader.Close()

	count := 0
	for {
		_, err := rarReader.Next()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("failed to read RAR header: %w", err)
		}
		count++
	}
}
