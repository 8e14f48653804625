// Package store handles SQLite persistence of recorded runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/gowc/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// startedAtLayout is fixed-width and always UTC so that text order matches
// time order.
const startedAtLayout = "2006-01-02T15:04:05.000000000Z"

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			dir TEXT NOT NULL,
			metrics INTEGER NOT NULL,
			failures INTEGER NOT NULL,
			total_lines INTEGER NOT NULL,
			total_words INTEGER NOT NULL,
			total_bytes INTEGER NOT NULL,
			total_chars INTEGER NOT NULL,
			total_max_line_length INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_rows (
			run_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			label TEXT NOT NULL,
			lines INTEGER NOT NULL,
			words INTEGER NOT NULL,
			bytes INTEGER NOT NULL,
			chars INTEGER NOT NULL,
			max_line_length INTEGER NOT NULL,
			PRIMARY KEY (run_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a run and its rows in one transaction.
func (s *Store) InsertRun(ctx context.Context, run model.Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, dir, metrics, failures, total_lines, total_words, total_bytes, total_chars, total_max_line_length)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(startedAtLayout),
		run.Dir,
		int64(run.Metrics),
		run.Failures,
		toInt(run.Total.Lines),
		toInt(run.Total.Words),
		toInt(run.Total.Bytes),
		toInt(run.Total.Chars),
		toInt(run.Total.MaxLineLength),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(run.Rows) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO run_rows (run_id, position, label, lines, words, bytes, chars, max_line_length)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, row := range run.Rows {
			c := row.Counts
			if _, err = stmt.ExecContext(ctx, id, i, row.Label,
				toInt(c.Lines), toInt(c.Words), toInt(c.Bytes), toInt(c.Chars), toInt(c.MaxLineLength)); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first, with their rows.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, dir, metrics, failures, total_lines, total_words, total_bytes, total_chars, total_max_line_length
		 FROM runs
		 ORDER BY started_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.Run
	for rows.Next() {
		var (
			run       model.Run
			startedAt string
			metrics   int64
			total     [5]int64
		)
		if err := rows.Scan(&run.ID, &startedAt, &run.Dir, &metrics, &run.Failures,
			&total[0], &total[1], &total[2], &total[3], &total[4]); err != nil {
			return nil, err
		}
		parsed, err := parseStartedAt(startedAt)
		if err != nil {
			return nil, err
		}
		run.StartedAt = parsed
		run.Metrics = model.MetricSet(metrics)
		run.Total = countsFrom(total)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ids := make([]int64, len(runs))
	for i, run := range runs {
		ids[i] = run.ID
	}
	byRun, err := s.listRows(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range runs {
		runs[i].Rows = byRun[runs[i].ID]
	}
	return runs, nil
}

func (s *Store) listRows(ctx context.Context, runIDs []int64) (map[int64][]model.Row, error) {
	result := map[int64][]model.Row{}
	if len(runIDs) == 0 {
		return result, nil
	}
	placeholders := make([]string, len(runIDs))
	args := make([]any, len(runIDs))
	for i, id := range runIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT run_id, label, lines, words, bytes, chars, max_line_length
		FROM run_rows
		WHERE run_id IN (%s)
		ORDER BY run_id, position`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	for rows.Next() {
		var (
			runID  int64
			row    model.Row
			counts [5]int64
		)
		if err := rows.Scan(&runID, &row.Label, &counts[0], &counts[1], &counts[2], &counts[3], &counts[4]); err != nil {
			return nil, err
		}
		row.Counts = countsFrom(counts)
		result[runID] = append(result[runID], row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func parseStartedAt(value string) (time.Time, error) {
	if t, err := time.Parse(startedAtLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}

func countsFrom(v [5]int64) model.Counts {
	return model.Counts{
		Lines:         uint64(v[0]),
		Words:         uint64(v[1]),
		Bytes:         uint64(v[2]),
		Chars:         uint64(v[3]),
		MaxLineLength: uint64(v[4]),
	}
}

// SQLite integers are signed 64-bit.
func toInt(v uint64) int64 {
	if v > 1<<63-1 {
		return 1<<63 - 1
	}
	return int64(v)
}
