// internal/history/history.go
// Package history keeps past benchmark results in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mwiater/litebench/internal/benchmark"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	model       TEXT NOT NULL,
	labels      TEXT NOT NULL,
	warmup      INTEGER NOT NULL,
	samples     INTEGER NOT NULL,
	min_ms      REAL NOT NULL,
	max_ms      REAL NOT NULL,
	average_ms  REAL NOT NULL,
	median_ms   REAL NOT NULL,
	stddev_ms   REAL NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_model ON runs(model, finished_at);
`

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNoRunID is returned when a result without a run id is recorded.
var ErrNoRunID = errors.New("result has no run id")

// Entry is one stored benchmark run.
type Entry struct {
	RunID      string
	Model      string
	Labels     string
	Warmup     int
	Samples    int
	Min        float64
	Max        float64
	Average    float64
	Median     float64
	StdDev     float64
	StartedAt  time.Time
	FinishedAt time.Time
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) and opens the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a benchmark result. Recording the same run id twice replaces the row.
func (s *Store) Record(ctx context.Context, r benchmark.Result) error {
	if r.RunID == "" {
		return ErrNoRunID
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs
			(run_id, model, labels, warmup, samples, min_ms, max_ms, average_ms, median_ms, stddev_ms, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.ModelName, r.Labels, r.Warmup, r.Samples,
		r.Min, r.Max, r.Average, r.Median, r.StdDev,
		r.StartedAt.UTC().Format(timeLayout), r.FinishedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", r.RunID, err)
	}
	return nil
}

// List returns the most recent runs, newest first. An empty model matches every model;
// a limit of zero or less returns all rows.
func (s *Store) List(ctx context.Context, model string, limit int) ([]Entry, error) {
	query := `SELECT run_id, model, labels, warmup, samples, min_ms, max_ms, average_ms, median_ms, stddev_ms, started_at, finished_at FROM runs`
	var args []any
	if model != "" {
		query += ` WHERE model = ?`
		args = append(args, model)
	}
	query += ` ORDER BY finished_at DESC, run_id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var started, finished string
		if err := rows.Scan(&e.RunID, &e.Model, &e.Labels, &e.Warmup, &e.Samples,
			&e.Min, &e.Max, &e.Average, &e.Median, &e.StdDev, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if e.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parse started_at for %s: %w", e.RunID, err)
		}
		if e.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at for %s: %w", e.RunID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
