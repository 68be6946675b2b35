// Package sqlite persists smoothing run history. The numerical core stays
// persistence-free; this store is used by the tooling around it to keep a
// record of what was smoothed, with which parameters, and how long it took.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// RunRecord describes one completed smoothing run.
type RunRecord struct {
	RunID         string  `json:"run_id"`
	Source        string  `json:"source"`
	Method        string  `json:"method"`
	Sigma         float64 `json:"sigma"`
	Truncate      float64 `json:"truncate"`
	Rows          int     `json:"rows"`
	Cols          int     `json:"cols"`
	MaskedCells   int     `json:"masked_cells"`
	DurationNanos int64   `json:"duration_nanos"`
	CreatedAt     int64   `json:"created_at"`
}

// RunStore provides persistence for smoothing run records.
type RunStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a run-history database at path and
// ensures the schema exists. Use ":memory:" for tests.
func Open(path string) (*RunStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS smoothing_runs (
			run_id          TEXT PRIMARY KEY,
			source          TEXT NOT NULL,
			method          TEXT NOT NULL,
			sigma           DOUBLE,
			truncate_sigmas DOUBLE,
			rows            INTEGER NOT NULL,
			cols            INTEGER NOT NULL,
			masked_cells    INTEGER,
			duration_nanos  BIGINT,
			created_at      BIGINT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create run schema: %w", err)
	}

	return &RunStore{db: db}, nil
}

// Close closes the underlying database.
func (s *RunStore) Close() error { return s.db.Close() }

// Insert persists a run record. If RunID is empty, a UUID is generated;
// if CreatedAt is zero, the current time is used.
func (s *RunStore) Insert(rec *RunRecord) error {
	if rec.RunID == "" {
		rec.RunID = uuid.New().String()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().UnixNano()
	}

	return retryOnBusy(func() error {
		_, err := s.db.Exec(`
			INSERT INTO smoothing_runs (
				run_id, source, method, sigma, truncate_sigmas,
				rows, cols, masked_cells, duration_nanos, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.RunID, rec.Source, rec.Method, rec.Sigma, rec.Truncate,
			rec.Rows, rec.Cols, rec.MaskedCells, rec.DurationNanos, rec.CreatedAt,
		)
		return err
	})
}

// ListBySource returns all runs for a source, newest first.
func (s *RunStore) ListBySource(source string) ([]*RunRecord, error) {
	rows, err := s.db.Query(`
		SELECT run_id, source, method, sigma, truncate_sigmas,
		       rows, cols, masked_cells, duration_nanos, created_at
		FROM smoothing_runs
		WHERE source = ?
		ORDER BY created_at DESC`, source)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// Recent returns up to limit runs across all sources, newest first.
func (s *RunStore) Recent(limit int) ([]*RunRecord, error) {
	rows, err := s.db.Query(`
		SELECT run_id, source, method, sigma, truncate_sigmas,
		       rows, cols, masked_cells, duration_nanos, created_at
		FROM smoothing_runs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]*RunRecord, error) {
	var recs []*RunRecord
	for rows.Next() {
		rec := &RunRecord{}
		if err := rows.Scan(
			&rec.RunID, &rec.Source, &rec.Method, &rec.Sigma, &rec.Truncate,
			&rec.Rows, &rec.Cols, &rec.MaskedCells, &rec.DurationNanos, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
