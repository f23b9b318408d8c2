package extractor

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildZip returns the bytes of a stored (uncompressed) ZIP holding names in order.
// Names ending in "/" become directory entries.
func buildZip(t *testing.T, names []string, contents map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	for _, name := range names {
		header := &zip.FileHeader{Name: name, Method: zip.Store}
		header.SetMode(0o644)
		if name[len(name)-1] == '/' {
			header.SetMode(os.ModeDir | 0o755)
		}

		w, err := zipWriter.CreateHeader(header)
		require.NoError(t, err)
		if content, ok := contents[name]; ok {
			_, err = w.Write([]byte(content))
			require.NoError(t, err)
		}
	}

	require.NoError(t, zipWriter.Close())
	return buf.Bytes()
}

// createTestZip writes a ZIP archive to zipPath
func createTestZip(t *testing.T, zipPath string, names []string, contents map[string]string) {
	t.Helper()
	require.NoError(t, os.WriteFile(zipPath, buildZip(t, names, contents), 0o644))
}

// writeSegments writes {base}.zip.NNN files for the given indexes
func writeSegments(t *testing.T, dir, base string, segments map[int][]byte) {
	t.Helper()
	for index, data := range segments {
		require.NoError(t, os.WriteFile(filepath.Join(dir, SegmentName(base, index)), data, 0o644))
	}
}

// splitIntoSegments cuts data into chunkSize pieces named per the segment convention
func splitIntoSegments(t *testing.T, dir, base string, data []byte, chunkSize int) int {
	t.Helper()

	count := 0
	for offset := 0; offset < len(data); offset += chunkSize {
		end := offset + chunkSize
		if end > len(data) {
			end = len(data)
		}
		count++
		require.NoError(t, os.WriteFile(filepath.Join(dir, SegmentName(base, count)), data[offset:end], 0o644))
	}
	return count
}

// progressRecorder collects every progress callback
type progressRecorder struct {
	calls []Progress
}

func (p *progressRecorder) record(entry, total int, sizeGB float64) {
	p.calls = append(p.calls, Progress{Entry: entry, Total: total, SizeGB: sizeGB})
}

// requireMonotonic checks the per-entry progress contract for an archive of k entries
func requireMonotonic(t *testing.T, calls []Progress, k int) {
	t.Helper()

	require.Len(t, calls, k)
	for i, call := range calls {
		require.Equal(t, i+1, call.Entry)
		require.Equal(t, k, call.Total)
		require.Equal(t, calls[0].SizeGB, call.SizeGB)
	}
}
