package main

import (
	"fmt"
	"io"

	"archive-extractor/internal/batch"
	"archive-extractor/internal/extractor"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// renderer turns batch events into progress bars and one line per outcome
type renderer struct {
	out     io.Writer
	quiet   bool
	count   int
	totalGB float64

	bar     *progressbar.ProgressBar
	current int

	green  func(a ...interface{}) string
	red    func(a ...interface{}) string
	yellow func(a ...interface{}) string
}

func newRenderer(out io.Writer, quiet bool, count int, totalGB float64) *renderer {
	return &renderer{
		out:     out,
		quiet:   quiet,
		count:   count,
		totalGB: totalGB,
		green:   color.New(color.FgGreen).SprintFunc(),
		red:     color.New(color.FgRed).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
	}
}

// consume renders events until the channel closes and returns the batch summary
func (r *renderer) consume(events <-chan batch.Event) batch.Summary {
	var summary batch.Summary
	for event := range events {
		switch event.Type {
		case batch.EventProgress:
			r.progress(event)
		case batch.EventOutcome:
			r.finishBar()
			r.outcome(event.Outcome)
		case batch.EventDone:
			r.finishBar()
			summary = event.Summary
			r.done(summary)
		}
	}
	return summary
}

func (r *renderer) progress(event batch.Event) {
	if r.quiet {
		return
	}

	if r.bar == nil || r.current != event.Index {
		r.finishBar()
		r.current = event.Index
		r.bar = progressbar.NewOptions(event.Progress.Total,
			progressbar.OptionSetWriter(r.out),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	r.bar.Describe(describeProgress(event.Index, event.Count, event.Progress, r.totalGB))
	_ = r.bar.Set(event.Progress.Entry)
}

func (r *renderer) finishBar() {
	if r.bar == nil {
		return
	}
	_ = r.bar.Finish()
	r.bar = nil
}

func (r *renderer) outcome(outcome extractor.Outcome) {
	line := outcomeLine(outcome)
	switch outcome.Kind {
	case extractor.KindNone:
		line = r.green(line)
	case extractor.KindExtractionFailed:
		line = r.red(line)
	default:
		line = r.yellow(line)
	}
	fmt.Fprintln(r.out, line)
}

func (r *renderer) done(summary batch.Summary) {
	if summary.Cancelled {
		fmt.Fprintln(r.out, r.yellow(fmt.Sprintf("Extraction cancelled after %d of %d archive(s)", summary.Processed, summary.Jobs)))
		return
	}
	fmt.Fprintf(r.out, "Extraction completed: %d file(s) / %.2f GB\n", r.count, r.totalGB)
}

// describeProgress renders the status text for one progress step.
// The extracted share of the archive is estimated from the entry ratio.
func describeProgress(index, count int, progress extractor.Progress, totalGB float64) string {
	partialGB := 0.0
	if progress.Total > 0 {
		partialGB = float64(progress.Entry) / float64(progress.Total) * progress.SizeGB
	}
	return fmt.Sprintf("Extracting archive %d of %d (%.2f GB extracted from %.2f GB total)", index, count, partialGB, totalGB)
}

// outcomeLine renders the single result line for a job
func outcomeLine(outcome extractor.Outcome) string {
	switch outcome.Kind {
	case extractor.KindNone:
		return fmt.Sprintf("Extracted %s (%.2f GB)", outcome.Basename, outcome.SizeGB)
	case extractor.KindNotFound:
		return fmt.Sprintf("File not found: %s", outcome.Basename)
	case extractor.KindUnsupportedFormat:
		return fmt.Sprintf("Format not supported: %s (%.2f GB)", outcome.Basename, outcome.SizeGB)
	case extractor.KindSegmentsMissing:
		return fmt.Sprintf("Parts not found: %s (%.2f GB)", outcome.Basename, outcome.SizeGB)
	default:
		return fmt.Sprintf("Error extracting %s (%.2f GB): %s", outcome.Basename, outcome.SizeGB, outcome.Err)
	}
}
