// Package storage persists validation results and run history in SQLite.
// Keeping validation results around lets repeated cleanups skip URLs that
// were checked recently.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/linktidy/linktidy/internal/bookmark"
)

// Store is a SQLite-backed store of validation results and dedupe runs.
type Store struct {
	db *sql.DB
}

// ValidationRecord is one cached probe result for a URL.
type ValidationRecord struct {
	URL        string
	Valid      bool
	StatusCode *int
	CheckedAt  time.Time
}

// Run records the outcome of one dedupe run.
type Run struct {
	ID           string
	Strategy     string
	KeepRule     string
	TotalRecords int
	RemovedCount int
	GroupCount   int
	CreatedAt    time.Time
}

// Open creates or opens the database at path, creating parent directories
// as needed. WAL mode keeps concurrent readers from blocking writes.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveValidations upserts the validation fields of every record that was
// actually probed. Records with a nil Valid field are skipped.
func (s *Store) SaveValidations(ctx context.Context, records []bookmark.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO validations (url, valid, status_code, checked_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			valid = excluded.valid,
			status_code = excluded.status_code,
			checked_at = excluded.checked_at`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i := range records {
		rec := &records[i]
		if rec.Valid == nil {
			continue
		}
		var status sql.NullInt64
		if rec.StatusCode != nil {
			status = sql.NullInt64{Int64: int64(*rec.StatusCode), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, rec.URL, *rec.Valid, status, now.Format(time.RFC3339)); err != nil {
			return fmt.Errorf("saving validation for %s: %w", rec.URL, err)
		}
	}
	return tx.Commit()
}

// LoadValidations returns cached results newer than maxAge, keyed by URL.
// A zero maxAge means no age limit.
func (s *Store) LoadValidations(ctx context.Context, maxAge time.Duration) (map[string]ValidationRecord, error) {
	query := `SELECT url, valid, status_code, checked_at FROM validations`
	args := []any{}
	if maxAge > 0 {
		query += ` WHERE checked_at >= ?`
		args = append(args, time.Now().UTC().Add(-maxAge).Format(time.RFC3339))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("loading validations: %w", err)
	}
	defer rows.Close()

	results := make(map[string]ValidationRecord)
	for rows.Next() {
		var rec ValidationRecord
		var status sql.NullInt64
		var checkedAt string
		if err := rows.Scan(&rec.URL, &rec.Valid, &status, &checkedAt); err != nil {
			return nil, fmt.Errorf("scanning validation row: %w", err)
		}
		if status.Valid {
			code := int(status.Int64)
			rec.StatusCode = &code
		}
		if t, err := time.Parse(time.RFC3339, checkedAt); err == nil {
			rec.CheckedAt = t
		}
		results[rec.URL] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading validation rows: %w", err)
	}
	return results, nil
}

// SaveRun records one dedupe run.
func (s *Store) SaveRun(ctx context.Context, run Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, strategy, keep_rule, total_records, removed_count, group_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Strategy, run.KeepRule, run.TotalRecords, run.RemovedCount, run.GroupCount,
		run.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving run %s: %w", run.ID, err)
	}
	return nil
}

// ListRuns returns runs newest first, up to limit. A limit of 0 returns
// everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, strategy, keep_rule, total_records, removed_count, group_count, created_at
		FROM runs ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(&run.ID, &run.Strategy, &run.KeepRule,
			&run.TotalRecords, &run.RemovedCount, &run.GroupCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = t
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading run rows: %w", err)
	}
	return runs, nil
}
