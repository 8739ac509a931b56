package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// ErrPolicyNotFound is returned when a sync policy can't be found.
var ErrPolicyNotFound = errors.New("sync policy not found")

// SyncPolicy is operator-configured scheduling state for one sync type.
// Only the scheduler advances next_due_at; operators toggle enabled and
// adjust the frequency.
type SyncPolicy struct {
	SyncType       string
	Enabled        bool
	FrequencyHours int
	LastRunAt      *time.Time
	NextDueAt      *time.Time
}

// Frequency returns the policy frequency as a duration.
func (p *SyncPolicy) Frequency() time.Duration {
	return time.Duration(p.FrequencyHours) * time.Hour
}

// Due reports whether the policy should run at the given instant. A policy
// with no recorded next-due time has never been scheduled and is due.
func (p *SyncPolicy) Due(now time.Time) bool {
	if !p.Enabled {
		return false
	}
	if p.NextDueAt == nil {
		return true
	}
	return !p.NextDueAt.After(now)
}

// ListPolicies returns all configured sync policies.
func (s *Store) ListPolicies(ctx context.Context) ([]SyncPolicy, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sync_type, enabled, frequency_hours, last_run_at, next_due_at
		FROM sync_policies
		ORDER BY sync_type`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync policies: %w", err)
	}
	defer rows.Close()

	var policies []SyncPolicy
	for rows.Next() {
		var p SyncPolicy
		if err := rows.Scan(&p.SyncType, &p.Enabled, &p.FrequencyHours, &p.LastRunAt, &p.NextDueAt); err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}

	return policies, rows.Err()
}

// GetPolicy returns one sync policy by type.
func (s *Store) GetPolicy(ctx context.Context, syncType string) (*SyncPolicy, error) {
	var p SyncPolicy
	err := s.pool.QueryRow(ctx, `
		SELECT sync_type, enabled, frequency_hours, last_run_at, next_due_at
		FROM sync_policies
		WHERE sync_type = $1`,
		syncType).Scan(&p.SyncType, &p.Enabled, &p.FrequencyHours, &p.LastRunAt, &p.NextDueAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPolicyNotFound
		}
		return nil, fmt.Errorf("failed to get sync policy %s: %w", syncType, err)
	}

	return &p, nil
}

// AdvancePolicy stamps last_run_at and moves next_due_at forward. The
// scheduler calls this before invoking a reconciliation so a slow run cannot
// be re-triggered by the next tick.
func (s *Store) AdvancePolicy(ctx context.Context, syncType string, lastRun, nextDue time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE sync_policies
		SET last_run_at = $2, next_due_at = $3
		WHERE sync_type = $1`,
		syncType, lastRun, nextDue)
	if err != nil {
		return fmt.Errorf("failed to advance sync policy %s: %w", syncType, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPolicyNotFound
	}

	return nil
}

// SetPolicyEnabled toggles a policy on or off.
func (s *Store) SetPolicyEnabled(ctx context.Context, syncType string, enabled bool) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE sync_policies SET enabled = $2 WHERE sync_type = $1`,
		syncType, enabled)
	if err != nil {
		return fmt.Errorf("failed to update sync policy %s: %w", syncType, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPolicyNotFound
	}

	return nil
}

// UpsertPolicy creates a policy or updates its enabled flag and frequency.
// Scheduling state (last_run_at, next_due_at) is preserved on conflict.
func (s *Store) UpsertPolicy(ctx context.Context, p SyncPolicy) error {
	if p.SyncType == "" {
		return fmt.Errorf("sync type is required")
	}
	if p.FrequencyHours <= 0 {
		return fmt.Errorf("frequency must be at least one hour")
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO sync_policies (sync_type, enabled, frequency_hours, next_due_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (sync_type) DO UPDATE SET
			enabled         = EXCLUDED.enabled,
			frequency_hours = EXCLUDED.frequency_hours`,
		p.SyncType, p.Enabled, p.FrequencyHours)
	if err != nil {
		return fmt.Errorf("failed to upsert sync policy %s: %w", p.SyncType, err)
	}

	return nil
}
