package batch

import (
	"context"

	"archive-extractor/internal/extractor"
	"archive-extractor/pkg/models"
)

// ExtractorInterface defines the archive extraction operation driven by the runner
//
//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks
type ExtractorInterface interface {
	Extract(ctx context.Context, job extractor.Job, onProgress extractor.ProgressFunc) extractor.Outcome
}

// HistoryInterface defines the persistence operations used to record outcomes
type HistoryInterface interface {
	CreateExtraction(extraction *models.Extraction) error
	CreateExtractedFile(file *models.ExtractedFile) error
}

// StagingInterface defines the staging directory operations used for atomic jobs
type StagingInterface interface {
	Prepare(dest string) (string, error)
	Promote(staging, dest string) error
	Discard(staging string) error
}
