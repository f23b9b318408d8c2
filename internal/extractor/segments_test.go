package extractor

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegmentNames(t *testing.T) {
	require.Equal(t, "movie.zip.001", SegmentName("movie", 1))
	require.Equal(t, "movie.zip.010", SegmentName("movie", 10))
	require.Equal(t, "movie.zip.1000", SegmentName("movie", 1000))
	require.Equal(t, "movie_merged.zip", MergedName("movie"))
}

func TestSplitBaseName(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{filename: "/data/movie.zip.001", expected: "movie"},
		{filename: "movie.zip.002", expected: "movie"},
		{filename: "my.movie.zip.001", expected: "my.movie"},
		{filename: "a.zip.b.zip.001", expected: "a"},
		{filename: "MOVIE.ZIP.001", expected: "MOVIE"},
		{filename: "plain.txt", expected: "plain.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			require.Equal(t, tt.expected, SplitBaseName(tt.filename))
		})
	}
}

func TestFindSegments(t *testing.T) {
	t.Run("contiguous run", func(t *testing.T) {
		dir := t.TempDir()
		writeSegments(t, dir, "movie", map[int][]byte{1: []byte("a"), 2: []byte("b"), 3: []byte("c")})

		segments := FindSegments(dir, "movie")
		require.Equal(t, SegmentSet{
			filepath.Join(dir, "movie.zip.001"),
			filepath.Join(dir, "movie.zip.002"),
			filepath.Join(dir, "movie.zip.003"),
		}, segments)
	})

	t.Run("scan halts at first gap", func(t *testing.T) {
		dir := t.TempDir()
		writeSegments(t, dir, "movie", map[int][]byte{1: []byte("a"), 3: []byte("c")})

		segments := FindSegments(dir, "movie")
		require.Equal(t, SegmentSet{filepath.Join(dir, "movie.zip.001")}, segments)
	})

	t.Run("no first segment", func(t *testing.T) {
		dir := t.TempDir()
		writeSegments(t, dir, "movie", map[int][]byte{2: []byte("b")})

		require.Empty(t, FindSegments(dir, "movie"))
	})
}

func TestJoinSegments(t *testing.T) {
	t.Run("concatenates in ascending order", func(t *testing.T) {
		dir := t.TempDir()
		writeSegments(t, dir, "data", map[int][]byte{
			1: []byte("first-"),
			2: []byte("second-"),
			3: []byte("third"),
		})

		merged, err := JoinSegments(dir, "data")
		require.NoError(t, err)
		require.Equal(t, filepath.Join(dir, "data_merged.zip"), merged)

		content, err := os.ReadFile(merged)
		require.NoError(t, err)
		require.Equal(t, "first-second-third", string(content))
	})

	t.Run("gap keeps only leading run", func(t *testing.T) {
		dir := t.TempDir()
		writeSegments(t, dir, "data", map[int][]byte{
			1: []byte("only-this"),
			3: []byte("never-read"),
		})

		merged, err := JoinSegments(dir, "data")
		require.NoError(t, err)

		content, err := os.ReadFile(merged)
		require.NoError(t, err)
		require.Equal(t, "only-this", string(content))
	})

	t.Run("missing segments", func(t *testing.T) {
		dir := t.TempDir()

		merged, err := JoinSegments(dir, "data")
		require.ErrorIs(t, err, ErrSegmentsNotFound)
		require.Empty(t, merged)
		require.NoFileExists(t, filepath.Join(dir, "data_merged.zip"))
	})

	t.Run("unreadable segment removes partial output", func(t *testing.T) {
		dir := t.TempDir()
		// A directory named like a segment exists but cannot be copied
		require.NoError(t, os.Mkdir(filepath.Join(dir, "data.zip.001"), 0o755))

		merged, err := JoinSegments(dir, "data")
		require.Error(t, err)
		require.Empty(t, merged)
		require.NoFileExists(t, filepath.Join(dir, "data_merged.zip"))
	})
}

func TestJoinSegments_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	entries := map[string]string{
		"readme.txt":         "Hello, World!",
		"docs/guide.txt":     string(bytes.Repeat([]byte("guide "), 500)),
		"docs/deep/data.bin": string(bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7}, 700)),
	}
	names := []string{"readme.txt", "docs/guide.txt", "docs/deep/data.bin"}
	original := buildZip(t, names, entries)

	count := splitIntoSegments(t, dir, "bundle", original, 1000)
	require.Greater(t, count, 2)

	merged, err := JoinSegments(dir, "bundle")
	require.NoError(t, err)

	content, err := os.ReadFile(merged)
	require.NoError(t, err)
	require.Equal(t, original, content)

	reader, err := zip.OpenReader(merged)
	require.NoError(t, err)
	defer reader.Close()

	require.Len(t, reader.File, len(names))
	for i, file := range reader.File {
		require.Equal(t, names[i], file.Name)

		rc, err := file.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		require.Equal(t, entries[file.Name], string(data))
	}
}
