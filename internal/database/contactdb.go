package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/fieldworkhq/leadspider/internal/model"
)

// ErrBatchNotFound is returned when the requested batch ID does not exist.
var ErrBatchNotFound = errors.New("batch not found")

// ContactDB provides SQLite-based storage for crawl batches and their
// contacts.
//
// Design decision: We use one database file for all batches rather than
// one file per crawl. History queries span batches, and a single file
// keeps backup/restore a one-file affair.
type ContactDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ContactDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ContactDB at the specified directory.
// If CreateIfNotExists is false and the database doesn't exist, an error
// is returned instead of silently creating an empty history.
func Open(dbDir string, opts Options) (*ContactDB, error) {
	dbPath := filepath.Join(dbDir, "leadspider.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &ContactDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Close closes the database connection.
func (cdb *ContactDB) Close() error {
	return cdb.db.Close()
}

// Path returns the database file path.
func (cdb *ContactDB) Path() string {
	return cdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (cdb *ContactDB) createTables() error {
	schema := `
	-- Batches store one row per crawl run
	CREATE TABLE IF NOT EXISTS batches (
		id TEXT PRIMARY KEY,
		seed_url TEXT NOT NULL,
		mode TEXT NOT NULL,
		status TEXT NOT NULL,
		pages_visited INTEGER NOT NULL DEFAULT 0,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_batches_seed ON batches(seed_url);
	CREATE INDEX IF NOT EXISTS idx_batches_started ON batches(started_at);

	-- Contacts store the deduplicated records of each batch
	CREATE TABLE IF NOT EXISTS contacts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT NOT NULL,
		email TEXT NOT NULL,
		name TEXT,
		title TEXT,
		phone TEXT,
		source_url TEXT NOT NULL,
		method TEXT NOT NULL,
		confidence TEXT NOT NULL,
		UNIQUE(batch_id, email),
		FOREIGN KEY(batch_id) REFERENCES batches(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_contacts_batch ON contacts(batch_id);
	CREATE INDEX IF NOT EXISTS idx_contacts_email ON contacts(email);
	`

	if _, err := cdb.db.ExecContext(context.Background(), schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// SaveBatch persists a finished crawl batch and all its contacts in one
// transaction. Saving the same batch ID again replaces its contacts.
func (cdb *ContactDB) SaveBatch(ctx context.Context, batch *model.Batch) error {
	tx, err := cdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op

	_, err = tx.ExecContext(ctx, `
	INSERT INTO batches (id, seed_url, mode, status, pages_visited, started_at, finished_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		status = excluded.status,
		pages_visited = excluded.pages_visited,
		finished_at = excluded.finished_at
	`, batch.ID, batch.SeedURL, batch.Mode, string(batch.Status), batch.PagesVisited,
		batch.StartedAt.UTC().Format(time.RFC3339), batch.FinishedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM contacts WHERE batch_id = ?`, batch.ID); err != nil {
		return fmt.Errorf("failed to clear batch contacts: %w", err)
	}

	for _, c := range batch.Contacts {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO contacts (batch_id, email, name, title, phone, source_url, method, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, batch.ID, c.Email, c.Name, c.Title, c.Phone, c.SourceURL, c.Method, string(c.Confidence))
		if err != nil {
			return fmt.Errorf("failed to save contact %s: %w", c.Email, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// GetBatch loads one batch with its contacts.
func (cdb *ContactDB) GetBatch(ctx context.Context, id string) (*model.Batch, error) {
	row := cdb.db.QueryRowContext(ctx, `
	SELECT id, seed_url, mode, status, pages_visited, started_at, finished_at
	FROM batches WHERE id = ?
	`, id)

	batch, err := scanBatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, id)
		}
		return nil, err
	}

	rows, err := cdb.db.QueryContext(ctx, `
	SELECT email, name, title, phone, source_url, method, confidence
	FROM contacts WHERE batch_id = ? ORDER BY id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows close error is not actionable

	for rows.Next() {
		var c model.Contact
		var confidence string
		if err := rows.Scan(&c.Email, &c.Name, &c.Title, &c.Phone, &c.SourceURL, &c.Method, &confidence); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		c.Confidence = model.Confidence(confidence)
		batch.Contacts = append(batch.Contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return batch, nil
}

// BatchSummary is one row of the crawl history, without contact details.
type BatchSummary struct {
	ID           string
	SeedURL      string
	Mode         string
	Status       model.BatchStatus
	ContactCount int
	PagesVisited int
	StartedAt    time.Time
	FinishedAt   time.Time
}

// ListBatches returns batch summaries ordered newest first.
func (cdb *ContactDB) ListBatches(ctx context.Context, limit int) ([]BatchSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := cdb.db.QueryContext(ctx, `
	SELECT b.id, b.seed_url, b.mode, b.status, b.pages_visited, b.started_at, b.finished_at,
	       (SELECT COUNT(*) FROM contacts c WHERE c.batch_id = b.id)
	FROM batches b ORDER BY b.started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows close error is not actionable

	var batches []BatchSummary
	for rows.Next() {
		var b BatchSummary
		var status, startedAt, finishedAt string
		if err := rows.Scan(&b.ID, &b.SeedURL, &b.Mode, &status, &b.PagesVisited, &startedAt, &finishedAt, &b.ContactCount); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		b.Status = model.BatchStatus(status)
		b.StartedAt = parseTimestamp(startedAt)
		b.FinishedAt = parseTimestamp(finishedAt)
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanBatch.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (*model.Batch, error) {
	var b model.Batch
	var status, startedAt, finishedAt string
	if err := row.Scan(&b.ID, &b.SeedURL, &b.Mode, &status, &b.PagesVisited, &startedAt, &finishedAt); err != nil {
		return nil, err
	}
	b.Status = model.BatchStatus(status)
	b.StartedAt = parseTimestamp(startedAt)
	b.FinishedAt = parseTimestamp(finishedAt)
	return &b, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. SQLite may return timestamps in different formats depending on
// configuration. If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
