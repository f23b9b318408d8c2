package extractor

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Format identifies which handler an archive is dispatched to
type Format int

const (
	FormatUnsupported Format = iota
	FormatZip
	FormatRar
	FormatSevenZip
	FormatSplitZip
)

// splitSeparator marks a numbered ZIP segment such as "movie.zip.001"
const splitSeparator = ".zip."

var strictSplitPattern = regexp.MustCompile(`\.zip\.\d{3,}$`)

func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatRar:
		return "rar"
	case FormatSevenZip:
		return "7z"
	case FormatSplitZip:
		return "split-zip"
	default:
		return "unsupported"
	}
}

// Classify derives the archive format from the file name alone.
// Exact suffixes win over the ".zip." containment rule, so "a.zip.old.zip" is a plain ZIP.
// The containment rule is unanchored: "notes.zip.backup.txt" classifies as split.
func Classify(path string) Format {
	lower := strings.ToLower(path)

	switch {
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip
	case strings.HasSuffix(lower, ".rar"):
		return FormatRar
	case strings.HasSuffix(lower, ".7z"):
		return FormatSevenZip
	case strings.Contains(lower, splitSeparator):
		return FormatSplitZip
	default:
		return FormatUnsupported
	}
}

// ClassifyStrict behaves like Classify but only accepts split segments whose
// base name ends in ".zip." followed by a numeric index.
func ClassifyStrict(path string) Format {
	format := Classify(path)
	if format != FormatSplitZip {
		return format
	}

	if strictSplitPattern.MatchString(strings.ToLower(filepath.Base(path))) {
		return FormatSplitZip
	}
	return FormatUnsupported
}
