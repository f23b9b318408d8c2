package extractor

// Job describes one archive to extract into an existing destination directory
type Job struct {
	Source      string
	Destination string
}

// Progress is a snapshot emitted after each entry has been written
type Progress struct {
	Entry  int     // 1-based index of the entry just written
	Total  int     // number of entries in the archive being extracted
	SizeGB float64 // size of the source archive, fixed for the whole job
}

// ProgressFunc receives per-entry progress on the extracting goroutine
type ProgressFunc func(entry, total int, sizeGB float64)

// Kind classifies why a job failed. KindNone means the job succeeded.
type Kind int

const (
	KindNone Kind = iota
	KindNotFound
	KindUnsupportedFormat
	KindSegmentsMissing
	KindExtractionFailed
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not_found"
	case KindUnsupportedFormat:
		return "unsupported_format"
	case KindSegmentsMissing:
		return "segments_missing"
	case KindExtractionFailed:
		return "extraction_failed"
	default:
		return "unknown"
	}
}

// Outcome is the single terminal result of a Job
type Outcome struct {
	Basename string
	Format   Format
	SizeGB   float64
	Kind     Kind
	Err      string   // underlying error text, set for KindExtractionFailed
	Files    []string // regular files written, in entry order
}

// Succeeded reports whether the job completed without error
func (o Outcome) Succeeded() bool {
	return o.Kind == KindNone
}

func report(onProgress ProgressFunc, entry, total int, sizeGB float64) {
	if onProgress != nil {
		onProgress(entry, total, sizeGB)
	}
}
