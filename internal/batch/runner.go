// Package batch runs a list of archive extractions sequentially on a background goroutine
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"archive-extractor/internal/extractor"
	"archive-extractor/pkg/models"

	"github.com/google/uuid"
)

const (
	bytesPerGB        = 1024 * 1024 * 1024
	defaultBufferSize = 64
)

// EventType identifies what an Event carries
type EventType int

const (
	EventProgress EventType = iota // an entry of the current archive was written
	EventOutcome                   // the current archive finished
	EventDone                      // the batch finished; the channel closes next
)

// Event is emitted by Run. Index and Count locate the job within the batch.
type Event struct {
	Type     EventType
	Index    int
	Count    int
	Source   string
	Progress extractor.Progress
	Outcome  extractor.Outcome
	Summary  Summary
}

// Summary describes a finished batch
type Summary struct {
	RunID       string
	Jobs        int
	Processed   int
	Succeeded   int
	Failed      int
	Files       int
	TotalGB     float64 // size of every source, computed before the first job
	ExtractedGB float64 // size of the sources that extracted successfully
	Cancelled   bool
}

// HasFailures reports whether any job failed or the batch stopped early
func (s Summary) HasFailures() bool {
	return s.Failed > 0 || s.Cancelled
}

// Runner drives the extractor over a batch of archives
type Runner struct {
	extractor  ExtractorInterface
	history    HistoryInterface
	staging    StagingInterface
	logger     *slog.Logger
	bufferSize int
}

// Option configures a Runner
type Option func(*Runner)

// WithHistory records every outcome through history
func WithHistory(history HistoryInterface) Option {
	return func(r *Runner) {
		r.history = history
	}
}

// WithStaging extracts each job into a staging directory and promotes it on success
func WithStaging(staging StagingInterface) Option {
	return func(r *Runner) {
		r.staging = staging
	}
}

// WithLogger sets the logger used by the runner
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithBufferSize sets the event channel capacity
func WithBufferSize(size int) Option {
	return func(r *Runner) {
		if size > 0 {
			r.bufferSize = size
		}
	}
}

// NewRunner creates a new batch runner
func NewRunner(ext ExtractorInterface, opts ...Option) *Runner {
	r := &Runner{
		extractor:  ext,
		logger:     slog.Default(),
		bufferSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Totals returns the number of sources and their combined size in GB.
// Sources that cannot be stat'ed count as zero bytes.
func Totals(paths []string) (int, float64) {
	var totalBytes int64
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil {
			totalBytes += info.Size()
		}
	}
	return len(paths), float64(totalBytes) / bytesPerGB
}

// Run extracts paths into dest one after another and returns the event stream.
// Progress events are dropped when the consumer falls behind. Outcome and done
// events wait for the consumer until ctx is cancelled, so a caller that stops
// reading early must cancel ctx. The channel is closed after the done event.
func (r *Runner) Run(ctx context.Context, paths []string, dest string) <-chan Event {
	events := make(chan Event, r.bufferSize)
	runID := uuid.NewString()

	go func() {
		defer close(events)
		summary := r.run(ctx, runID, paths, dest, events)
		if !deliver(ctx, events, Event{Type: EventDone, Count: summary.Jobs, Summary: summary}) {
			r.logger.Warn("Dropped done event, consumer stopped reading", "run_id", runID)
		}
	}()

	return events
}

// deliver sends event, preferring delivery over cancellation while the buffer has room.
// It returns false when ctx is cancelled and the consumer is not reading.
func deliver(ctx context.Context, events chan<- Event, event Event) bool {
	select {
	case events <- event:
		return true
	default:
	}

	select {
	case events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}

func (r *Runner) run(ctx context.Context, runID string, paths []string, dest string, events chan<- Event) Summary {
	count, totalGB := Totals(paths)
	summary := Summary{RunID: runID, Jobs: count, TotalGB: totalGB}

	r.logger.Info("Starting batch", "run_id", runID, "archives", count, "size_gb", totalGB, "dest", dest)

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("Batch cancelled", "run_id", runID, "remaining", count-i, "error", err)
			summary.Cancelled = true
			break
		}

		index := i + 1
		job := extractor.Job{Source: path, Destination: dest}
		outcome := r.extract(ctx, index, count, job, events)
		r.record(runID, job, outcome)

		summary.Processed++
		if outcome.Succeeded() {
			summary.Succeeded++
			summary.Files += len(outcome.Files)
			summary.ExtractedGB += outcome.SizeGB
		} else {
			summary.Failed++
		}

		if !deliver(ctx, events, Event{Type: EventOutcome, Index: index, Count: count, Source: path, Outcome: outcome}) {
			r.logger.Warn("Dropped outcome event, consumer stopped reading", "run_id", runID, "archive", path)
		}
	}

	r.logger.Info("Batch finished",
		"run_id", runID,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"files", summary.Files)

	return summary
}

// extract runs one job, through a staging directory when staging is configured
func (r *Runner) extract(ctx context.Context, index, count int, job extractor.Job, events chan<- Event) extractor.Outcome {
	onProgress := func(entry, total int, sizeGB float64) {
		select {
		case events <- Event{
			Type:     EventProgress,
			Index:    index,
			Count:    count,
			Source:   job.Source,
			Progress: extractor.Progress{Entry: entry, Total: total, SizeGB: sizeGB},
		}:
		default:
		}
	}

	if r.staging == nil {
		return r.extractor.Extract(ctx, job, onProgress)
	}

	stagingDir, err := r.staging.Prepare(job.Destination)
	if err != nil {
		r.logger.Error("Failed to prepare staging directory", "archive", job.Source, "error", err)
		return extractor.Outcome{
			Basename: filepath.Base(job.Source),
			Kind:     extractor.KindExtractionFailed,
			Err:      err.Error(),
		}
	}

	staged := job
	staged.Destination = stagingDir
	outcome := r.extractor.Extract(ctx, staged, onProgress)

	if !outcome.Succeeded() {
		r.discard(stagingDir)
		outcome.Files = nil
		return outcome
	}

	if err := r.staging.Promote(stagingDir, job.Destination); err != nil {
		r.logger.Error("Failed to promote staged files", "archive", job.Source, "staging", stagingDir, "error", err)
		r.discard(stagingDir)
		outcome.Kind = extractor.KindExtractionFailed
		outcome.Err = fmt.Sprintf("failed to promote staged files: %v", err)
		outcome.Files = nil
		return outcome
	}

	outcome.Files = rebase(outcome.Files, stagingDir, job.Destination)
	return outcome
}

func (r *Runner) discard(stagingDir string) {
	if err := r.staging.Discard(stagingDir); err != nil {
		r.logger.Warn("Failed to discard staging directory", "staging", stagingDir, "error", err)
	}
}

// rebase maps paths under from onto the same relative paths under to
func rebase(paths []string, from, to string) []string {
	rebased := make([]string, 0, len(paths))
	for _, path := range paths {
		rel, err := filepath.Rel(from, path)
		if err != nil {
			rebased = append(rebased, path)
			continue
		}
		rebased = append(rebased, filepath.Join(to, rel))
	}
	return rebased
}

// record persists an outcome; history failures never fail the job
func (r *Runner) record(runID string, job extractor.Job, outcome extractor.Outcome) {
	if r.history == nil {
		return
	}

	now := time.Now()
	extraction := &models.Extraction{
		RunID:        runID,
		ArchivePath:  job.Source,
		Destination:  job.Destination,
		Basename:     outcome.Basename,
		Format:       outcome.Format.String(),
		SizeGB:       outcome.SizeGB,
		Status:       StatusFor(outcome.Kind),
		ErrorMessage: outcome.Err,
		Entries:      len(outcome.Files),
		CreatedAt:    now,
	}

	if err := r.history.CreateExtraction(extraction); err != nil {
		r.logger.Warn("Failed to record extraction", "archive", job.Source, "error", err)
		return
	}

	for _, filePath := range outcome.Files {
		extractedFile := &models.ExtractedFile{
			ExtractionID: extraction.ID,
			FilePath:     filePath,
			CreatedAt:    now,
		}
		if err := r.history.CreateExtractedFile(extractedFile); err != nil {
			r.logger.Warn("Failed to store extracted file record", "extraction_id", extraction.ID, "file", filePath, "error", err)
			// Continue with other files
		}
	}
}

// StatusFor maps an outcome kind to its persisted status
func StatusFor(kind extractor.Kind) models.ExtractionStatus {
	switch kind {
	case extractor.KindNone:
		return models.StatusSucceeded
	case extractor.KindNotFound:
		return models.StatusNotFound
	case extractor.KindUnsupportedFormat:
		return models.StatusUnsupportedFormat
	case extractor.KindSegmentsMissing:
		return models.StatusSegmentsMissing
	default:
		return models.StatusExtractionFailed
	}
}
