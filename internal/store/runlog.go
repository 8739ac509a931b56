package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunStatus is the terminal status of a reconciliation run (must match the
// run_status PostgreSQL enum values).
type RunStatus string

const (
	// RunStatusRunning means the run is in progress
	RunStatusRunning RunStatus = "RUNNING"

	// RunStatusCompleted means the run finished, possibly with per-row errors
	RunStatusCompleted RunStatus = "COMPLETED"

	// RunStatusFailed means the run aborted
	RunStatusFailed RunStatus = "FAILED"
)

// RunCounts aggregates the per-run write counters.
type RunCounts struct {
	Processed   int `json:"processed"`
	Created     int `json:"created"`
	Updated     int `json:"updated"`
	Deactivated int `json:"deactivated"`
}

// SyncRunLog is one append-only journal row per reconciliation attempt. The
// row is created at run start and receives exactly one terminal update.
type SyncRunLog struct {
	ID           uuid.UUID
	SyncType     string
	StartedAt    time.Time
	CompletedAt  *time.Time
	Status       RunStatus
	Counts       RunCounts
	ErrorMessage string
	TriggeredBy  string
}

// CreateRunLog opens a run log row with status RUNNING and returns its ID.
func (s *Store) CreateRunLog(ctx context.Context, syncType, triggeredBy string, startedAt time.Time) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sync_run_logs (id, sync_type, started_at, status, triggered_by)
		VALUES ($1, $2, $3, 'RUNNING', $4)`,
		id, syncType, startedAt, triggeredBy)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create sync run log: %w", err)
	}

	return id, nil
}

// CompleteRunLog writes the single terminal update for a successful run.
func (s *Store) CompleteRunLog(ctx context.Context, id uuid.UUID, counts RunCounts, completedAt time.Time) error {
	return s.finishRunLog(ctx, id, RunStatusCompleted, counts, "", completedAt)
}

// FailRunLog writes the single terminal update for a failed run, preserving
// whatever counts were accumulated before the failure.
func (s *Store) FailRunLog(ctx context.Context, id uuid.UUID, counts RunCounts, errorMessage string, completedAt time.Time) error {
	return s.finishRunLog(ctx, id, RunStatusFailed, counts, errorMessage, completedAt)
}

func (s *Store) finishRunLog(
	ctx context.Context,
	id uuid.UUID,
	status RunStatus,
	counts RunCounts,
	errorMessage string,
	completedAt time.Time,
) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE sync_run_logs
		SET status = $2, completed_at = $3, processed = $4, created = $5,
		    updated = $6, deactivated = $7, error_message = $8
		WHERE id = $1 AND status = 'RUNNING'`,
		id, status, completedAt,
		counts.Processed, counts.Created, counts.Updated, counts.Deactivated,
		nilIfEmpty(errorMessage))
	if err != nil {
		return fmt.Errorf("failed to finish sync run log %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sync run log %s is not running", id)
	}

	return nil
}

// ListRecentRuns returns the most recent run log rows, newest first.
func (s *Store) ListRecentRuns(ctx context.Context, limit int) ([]SyncRunLog, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, sync_type, started_at, completed_at, status,
		       processed, created, updated, deactivated, error_message, triggered_by
		FROM sync_run_logs
		ORDER BY started_at DESC
		LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync run logs: %w", err)
	}
	defer rows.Close()

	var runs []SyncRunLog
	for rows.Next() {
		var run SyncRunLog
		var errorMessage *string
		err := rows.Scan(
			&run.ID, &run.SyncType, &run.StartedAt, &run.CompletedAt, &run.Status,
			&run.Counts.Processed, &run.Counts.Created, &run.Counts.Updated,
			&run.Counts.Deactivated, &errorMessage, &run.TriggeredBy,
		)
		if err != nil {
			return nil, err
		}
		run.ErrorMessage = orEmpty(errorMessage)
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
