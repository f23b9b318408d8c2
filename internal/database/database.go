// Package database provides SQLite persistence for extraction history
package database

import (
	"database/sql"
	"errors"
	"fmt"

	"archive-extractor/pkg/models"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	// Add connection parameters to help with concurrent access
	connString := dbPath
	if dbPath != ":memory:" {
		connString = dbPath + "?_busy_timeout=30000&_journal_mode=WAL&_synchronous=NORMAL"
	}

	conn, err := sql.Open("sqlite", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't handle concurrent writes well
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	db := &DB{conn: conn}

	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS extractions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		archive_path TEXT NOT NULL,
		destination TEXT NOT NULL,
		basename TEXT NOT NULL,
		format TEXT NOT NULL,
		size_gb REAL DEFAULT 0.0,
		status TEXT NOT NULL,
		error_message TEXT,
		entries INTEGER DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_extractions_run_id ON extractions(run_id);
	CREATE INDEX IF NOT EXISTS idx_extractions_status ON extractions(status);
	CREATE INDEX IF NOT EXISTS idx_extractions_created_at ON extractions(created_at);

	CREATE TABLE IF NOT EXISTS extracted_files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		extraction_id INTEGER NOT NULL,
		file_path TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (extraction_id) REFERENCES extractions(id)
	);

	CREATE INDEX IF NOT EXISTS idx_extracted_files_extraction_id ON extracted_files(extraction_id);
	`

	_, err := db.conn.Exec(schema)
	return err
}

const extractionColumns = `id, run_id, archive_path, destination, basename, format,
		   size_gb, status, error_message, entries, created_at`

// CreateExtraction creates a new extraction record
func (db *DB) CreateExtraction(extraction *models.Extraction) error {
	query := `
	INSERT INTO extractions (
		run_id, archive_path, destination, basename, format,
		size_gb, status, error_message, entries, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.conn.Exec(query,
		extraction.RunID, extraction.ArchivePath, extraction.Destination,
		extraction.Basename, extraction.Format, extraction.SizeGB,
		extraction.Status, extraction.ErrorMessage, extraction.Entries,
		extraction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create extraction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	extraction.ID = id
	return nil
}

// GetExtraction retrieves an extraction by ID
func (db *DB) GetExtraction(id int64) (*models.Extraction, error) {
	query := `SELECT ` + extractionColumns + ` FROM extractions WHERE id = ?`

	extraction, err := scanExtraction(db.conn.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("extraction %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get extraction: %w", err)
	}

	return extraction, nil
}

// ListExtractions retrieves extractions newest first with pagination
func (db *DB) ListExtractions(limit, offset int) ([]*models.Extraction, error) {
	query := `
	SELECT ` + extractionColumns + `
	FROM extractions
	ORDER BY created_at DESC, id DESC
	LIMIT ? OFFSET ?
	`

	rows, err := db.conn.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list extractions: %w", err)
	}
	defer rows.Close()

	return collectExtractions(rows)
}

// ListExtractionsByRun retrieves all extractions of one batch run in processing order
func (db *DB) ListExtractionsByRun(runID string) ([]*models.Extraction, error) {
	query := `
	SELECT ` + extractionColumns + `
	FROM extractions
	WHERE run_id = ?
	ORDER BY id ASC
	`

	rows, err := db.conn.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get extractions by run: %w", err)
	}
	defer rows.Close()

	return collectExtractions(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExtraction(row rowScanner) (*models.Extraction, error) {
	var extraction models.Extraction
	var errorMessage sql.NullString
	err := row.Scan(
		&extraction.ID, &extraction.RunID, &extraction.ArchivePath,
		&extraction.Destination, &extraction.Basename, &extraction.Format,
		&extraction.SizeGB, &extraction.Status, &errorMessage,
		&extraction.Entries, &extraction.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	extraction.ErrorMessage = errorMessage.String
	return &extraction, nil
}

func collectExtractions(rows *sql.Rows) ([]*models.Extraction, error) {
	var extractions []*models.Extraction
	for rows.Next() {
		extraction, err := scanExtraction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan extraction: %w", err)
		}
		extractions = append(extractions, extraction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate extractions: %w", err)
	}

	return extractions, nil
}

// CreateExtractedFile creates a record for an extracted file
func (db *DB) CreateExtractedFile(file *models.ExtractedFile) error {
	query := `
	INSERT INTO extracted_files (
		extraction_id, file_path, created_at
	) VALUES (?, ?, ?)
	`

	result, err := db.conn.Exec(query, file.ExtractionID, file.FilePath, file.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create extracted file: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	file.ID = id
	return nil
}

// GetExtractedFilesByExtractionID retrieves all files written by an extraction
func (db *DB) GetExtractedFilesByExtractionID(extractionID int64) ([]*models.ExtractedFile, error) {
	query := `
	SELECT id, extraction_id, file_path, created_at
	FROM extracted_files
	WHERE extraction_id = ?
	ORDER BY id ASC
	`

	rows, err := db.conn.Query(query, extractionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get extracted files: %w", err)
	}
	defer rows.Close()

	var files []*models.ExtractedFile
	for rows.Next() {
		var file models.ExtractedFile
		err := rows.Scan(&file.ID, &file.ExtractionID, &file.FilePath, &file.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan extracted file: %w", err)
		}
		files = append(files, &file)
	}

	return files, nil
}

// GetExtractionStats retrieves extraction counts by status
func (db *DB) GetExtractionStats() (map[string]int, error) {
	query := `
	SELECT status, COUNT(*) as count
	FROM extractions
	GROUP BY status
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get extraction stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan extraction stats: %w", err)
		}
		stats[status] = count
	}

	return stats, nil
}
