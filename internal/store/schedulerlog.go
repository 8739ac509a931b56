package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PolicyOutcome is the per-policy result recorded for one scheduler tick.
type PolicyOutcome struct {
	SyncType  string `json:"syncType"`
	Triggered bool   `json:"triggered"`
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
}

// SchedulerLog is one append-only journal row per scheduler tick. The row is
// created with placeholder values at tick start and receives exactly one
// terminal update, so scheduler-level failures remain observable even when
// no reconciliation ran.
type SchedulerLog struct {
	ID              uuid.UUID
	TickedAt        time.Time
	PoliciesChecked int
	PoliciesDue     int
	SyncTriggered   bool
	Outcomes        []PolicyOutcome
	ElapsedMS       int64
	Status          RunStatus
	ErrorMessage    string
}

// CreateSchedulerLog opens a scheduler log row at tick start and returns its ID.
func (s *Store) CreateSchedulerLog(ctx context.Context, tickedAt time.Time) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO scheduler_logs (id, ticked_at, status)
		VALUES ($1, $2, 'RUNNING')`,
		id, tickedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create scheduler log: %w", err)
	}

	return id, nil
}

// FinishSchedulerLog writes the single terminal update for a tick.
func (s *Store) FinishSchedulerLog(ctx context.Context, id uuid.UUID, log SchedulerLog) error {
	outcomes, err := json.Marshal(log.Outcomes)
	if err != nil {
		return fmt.Errorf("failed to serialize policy outcomes: %w", err)
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE scheduler_logs
		SET policies_checked = $2, policies_due = $3, sync_triggered = $4,
		    outcomes = $5, elapsed_ms = $6, status = $7, error_message = $8
		WHERE id = $1 AND status = 'RUNNING'`,
		id,
		log.PoliciesChecked, log.PoliciesDue, log.SyncTriggered,
		outcomes, log.ElapsedMS, log.Status, nilIfEmpty(log.ErrorMessage))
	if err != nil {
		return fmt.Errorf("failed to finish scheduler log %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scheduler log %s is not running", id)
	}

	return nil
}

// ListRecentSchedulerLogs returns the most recent tick rows, newest first.
func (s *Store) ListRecentSchedulerLogs(ctx context.Context, limit int) ([]SchedulerLog, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, ticked_at, policies_checked, policies_due, sync_triggered,
		       outcomes, elapsed_ms, status, error_message
		FROM scheduler_logs
		ORDER BY ticked_at DESC
		LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduler logs: %w", err)
	}
	defer rows.Close()

	var logs []SchedulerLog
	for rows.Next() {
		var log SchedulerLog
		var outcomes []byte
		var errorMessage *string
		err := rows.Scan(
			&log.ID, &log.TickedAt, &log.PoliciesChecked, &log.PoliciesDue,
			&log.SyncTriggered, &outcomes, &log.ElapsedMS, &log.Status, &errorMessage,
		)
		if err != nil {
			return nil, err
		}
		if len(outcomes) > 0 {
			if err := json.Unmarshal(outcomes, &log.Outcomes); err != nil {
				return nil, fmt.Errorf("failed to decode policy outcomes for %s: %w", log.ID, err)
			}
		}
		log.ErrorMessage = orEmpty(errorMessage)
		logs = append(logs, log)
	}

	return logs, rows.Err()
}
