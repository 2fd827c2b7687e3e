package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/havokentity/steamicons/internal/batch"
	"github.com/havokentity/steamicons/internal/icon"
)

// SaveRun records one completed acquiring run and its failures.
func (s *Store) SaveRun(startedAt time.Time, report *batch.Report) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (started_at, attempted, saved) VALUES (?, ?, ?)`,
		startedAt.Format(time.RFC3339), report.Attempted, report.Saved,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get run id: %w", err)
	}

	for _, f := range report.Failures {
		_, err := tx.Exec(
			`INSERT INTO failures (run_id, app_id, name, reason) VALUES (?, ?, ?, ?)`,
			runID, f.AppID, f.Name, string(f.Reason),
		)
		if err != nil {
			return fmt.Errorf("failed to insert failure for app %s: %w", f.AppID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// LastRunFailures returns the failures recorded by the most recent run, in
// the order they occurred. A history without any runs yields nil.
func (s *Store) LastRunFailures() ([]batch.FailureRecord, error) {
	var runID int64
	err := s.db.QueryRow(`SELECT id FROM runs ORDER BY id DESC LIMIT 1`).Scan(&runID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find the last run: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT app_id, name, reason FROM failures WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list failures: %w", err)
	}
	defer rows.Close()

	var failures []batch.FailureRecord
	for rows.Next() {
		var f batch.FailureRecord
		var reason string
		if err := rows.Scan(&f.AppID, &f.Name, &reason); err != nil {
			return nil, fmt.Errorf("failed to scan failure row: %w", err)
		}
		f.Reason = icon.Reason(reason)
		failures = append(failures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read failure rows: %w", err)
	}

	return failures, nil
}
