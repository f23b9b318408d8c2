package cleanup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"archive-extractor/internal/folder"

	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	service := NewService()
	require.NotNil(t, service)
	require.NotNil(t, service.logger)
}

func TestService_SweepStaleMerged(t *testing.T) {
	service := NewService()
	tempDir := t.TempDir()

	write := func(name string) string {
		path := filepath.Join(tempDir, name)
		require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
		return path
	}

	// Stale: first segment still present
	staleMerged := write("movie_merged.zip")
	write("movie.zip.001")
	write("movie.zip.002")

	// Kept: no segments next to it
	orphanMerged := write("other_merged.zip")

	// Kept: not a merged file
	plainZip := write("regular.zip")

	// Kept: only a later segment exists
	laterMerged := write("late_merged.zip")
	write("late.zip.002")

	// Directories are ignored even when named like merged files
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "dir_merged.zip"), 0o755))
	write("dir.zip.001")

	removed, err := service.SweepStaleMerged(tempDir)
	require.NoError(t, err)
	require.Equal(t, []string{staleMerged}, removed)

	require.NoFileExists(t, staleMerged)
	require.FileExists(t, orphanMerged)
	require.FileExists(t, plainZip)
	require.FileExists(t, laterMerged)
	require.FileExists(t, filepath.Join(tempDir, "movie.zip.001"))
	require.DirExists(t, filepath.Join(tempDir, "dir_merged.zip"))
}

func TestService_SweepStaleMergedMissingDirectory(t *testing.T) {
	service := NewService()

	_, err := service.SweepStaleMerged(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read directory")
}

func TestService_PrepareAndDiscard(t *testing.T) {
	service := NewService()
	dest := t.TempDir()

	staging, err := service.Prepare(dest)
	require.NoError(t, err)
	require.DirExists(t, staging)
	require.Equal(t, dest, filepath.Dir(staging))
	require.True(t, strings.HasPrefix(filepath.Base(staging), StagingPrefix))

	require.NoError(t, os.WriteFile(filepath.Join(staging, "partial.bin"), []byte("x"), 0o644))

	require.NoError(t, service.Discard(staging))
	require.NoDirExists(t, staging)
}

func TestService_PrepareMissingDestination(t *testing.T) {
	service := NewService()

	_, err := service.Prepare(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to create staging directory")
}

func TestService_DiscardRefusesOtherDirectories(t *testing.T) {
	service := NewService()
	dir := t.TempDir()
	precious := filepath.Join(dir, "precious")
	require.NoError(t, os.Mkdir(precious, 0o755))

	err := service.Discard(precious)
	require.ErrorIs(t, err, ErrNotStaging)
	require.DirExists(t, precious)

	err = service.Promote(precious, dir)
	require.ErrorIs(t, err, ErrNotStaging)
	require.DirExists(t, precious)
}

func TestService_Promote(t *testing.T) {
	service := NewService()
	dest := t.TempDir()

	// Existing content in the destination
	require.NoError(t, os.MkdirAll(filepath.Join(dest, "movie"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "movie", "info.txt"), []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "movie", "keep.txt"), []byte("keep"), 0o644))

	staging, err := service.Prepare(dest)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(staging, "movie", "extras"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "movie", "info.txt"), []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "movie", "extras", "bonus.bin"), []byte("bonus"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "top.txt"), []byte("top"), 0o644))

	require.NoError(t, service.Promote(staging, dest))
	require.NoDirExists(t, staging)

	content, err := os.ReadFile(filepath.Join(dest, "movie", "info.txt"))
	require.NoError(t, err)
	require.Equal(t, "new", string(content))

	content, err = os.ReadFile(filepath.Join(dest, "movie", "keep.txt"))
	require.NoError(t, err)
	require.Equal(t, "keep", string(content))

	require.FileExists(t, filepath.Join(dest, "movie", "extras", "bonus.bin"))
	require.FileExists(t, filepath.Join(dest, "top.txt"))
}

func TestService_PromoteConflicts(t *testing.T) {
	t.Run("file over directory", func(t *testing.T) {
		service := NewService()
		dest := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dest, "clash"), 0o755))

		staging, err := service.Prepare(dest)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(staging, "clash"), []byte("file"), 0o644))

		err = service.Promote(staging, dest)
		require.Error(t, err)
		require.Contains(t, err.Error(), "cannot replace directory")
		require.DirExists(t, filepath.Join(dest, "clash"))
	})

	t.Run("directory over file", func(t *testing.T) {
		service := NewService()
		dest := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dest, "clash"), []byte("file"), 0o644))

		staging, err := service.Prepare(dest)
		require.NoError(t, err)
		require.NoError(t, os.Mkdir(filepath.Join(staging, "clash"), 0o755))

		err = service.Promote(staging, dest)
		require.Error(t, err)
		require.Contains(t, err.Error(), "cannot replace file")
		require.FileExists(t, filepath.Join(dest, "clash"))
	})
}

func TestService_isPathSafe(t *testing.T) {
	service := NewService()
	guard := folder.NewService("/base/dest", true)

	tests := []struct {
		name     string
		filePath string
		expected bool
	}{
		{name: "direct child", filePath: "/base/dest/file.txt", expected: true},
		{name: "nested child", filePath: "/base/dest/a/b.txt", expected: true},
		{name: "destination itself", filePath: "/base/dest", expected: false},
		{name: "sibling with shared prefix", filePath: "/base/destination/file.txt", expected: false},
		{name: "traversal", filePath: "/base/dest/../other.txt", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, service.isPathSafe(guard, tt.filePath))
		})
	}
}
