package extractor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrSegmentsNotFound is returned when segment 001 of a split archive does not exist
var ErrSegmentsNotFound = errors.New("no split archive segments found")

// SegmentSet is the contiguous run of segment paths starting at index 001
type SegmentSet []string

// SegmentName returns the bit-exact file name of segment index for base
func SegmentName(base string, index int) string {
	return fmt.Sprintf("%s.zip.%03d", base, index)
}

// MergedName returns the file name of the reassembled archive for base
func MergedName(base string) string {
	return base + "_merged.zip"
}

// SplitBaseName returns everything before the first ".zip." in the file name.
// The separator is matched case-insensitively; the returned base keeps its case.
func SplitBaseName(filename string) string {
	name := filepath.Base(filename)
	if idx := strings.Index(strings.ToLower(name), splitSeparator); idx >= 0 {
		return name[:idx]
	}
	return name
}

// FindSegments collects {base}.zip.001, .002, ... and stops at the first missing index.
// Gaps are not detected: with 001 and 003 present only 001 is returned.
func FindSegments(dir, base string) SegmentSet {
	var segments SegmentSet
	for i := 1; ; i++ {
		candidate := filepath.Join(dir, SegmentName(base, i))
		if _, err := os.Stat(candidate); err != nil {
			break
		}
		segments = append(segments, candidate)
	}
	return segments
}

// JoinSegments concatenates the segments of base into {base}_merged.zip inside dir
// and returns its path. The caller owns removing the merged file.
func JoinSegments(dir, base string) (string, error) {
	segments := FindSegments(dir, base)
	if len(segments) == 0 {
		return "", ErrSegmentsNotFound
	}

	mergedPath := filepath.Join(dir, MergedName(base))
	out, err := os.Create(mergedPath)
	if err != nil {
		return "", fmt.Errorf("failed to create merged archive: %w", err)
	}

	for _, segment := range segments {
		if err := appendSegment(out, segment); err != nil {
			out.Close()
			os.Remove(mergedPath)
			return "", err
		}
	}

	if err := out.Close(); err != nil {
		os.Remove(mergedPath)
		return "", fmt.Errorf("failed to close merged archive: %w", err)
	}

	return mergedPath, nil
}

// appendSegment streams one segment onto the end of out
func appendSegment(out io.Writer, segment string) error {
	in, err := os.Open(segment)
	if err != nil {
		return fmt.Errorf("failed to open segment %s: %w", filepath.Base(segment), err)
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy segment %s: %w", filepath.Base(segment), err)
	}
	return nil
}
