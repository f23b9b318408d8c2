// Package models defines the data structures used throughout the application
package models

import (
	"time"
)

// ExtractionStatus represents the terminal status of an extraction job
type ExtractionStatus string

const (
	StatusSucceeded         ExtractionStatus = "succeeded"
	StatusNotFound          ExtractionStatus = "not_found"
	StatusUnsupportedFormat ExtractionStatus = "unsupported_format"
	StatusSegmentsMissing   ExtractionStatus = "segments_missing"
	StatusExtractionFailed  ExtractionStatus = "extraction_failed"
)

// Extraction represents one archive processed during a batch run
type Extraction struct {
	ID           int64            `json:"id" db:"id"`
	RunID        string           `json:"run_id" db:"run_id"`
	ArchivePath  string           `json:"archive_path" db:"archive_path"`
	Destination  string           `json:"destination" db:"destination"`
	Basename     string           `json:"basename" db:"basename"`
	Format       string           `json:"format" db:"format"`
	SizeGB       float64          `json:"size_gb" db:"size_gb"`
	Status       ExtractionStatus `json:"status" db:"status"`
	ErrorMessage string           `json:"error_message" db:"error_message"`
	Entries      int              `json:"entries" db:"entries"` // Regular files written
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
}

// Succeeded reports whether the extraction finished without error
func (e *Extraction) Succeeded() bool {
	return e.Status == StatusSucceeded
}

// ExtractedFile represents a file written while extracting an archive
type ExtractedFile struct {
	ID           int64     `json:"id" db:"id"`
	ExtractionID int64     `json:"extraction_id" db:"extraction_id"`
	FilePath     string    `json:"file_path" db:"file_path"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
