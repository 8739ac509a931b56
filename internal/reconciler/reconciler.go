// Package reconciler implements the directory reconciliation run: fetch the
// current directory snapshot, validate it, and converge the Postgres mirror
// onto the eligible set while journaling the outcome.
package reconciler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/4Lienau/directory-sync/internal/directory"
	"github.com/4Lienau/directory-sync/internal/store"
	"github.com/4Lienau/directory-sync/internal/telemetry"
	"github.com/4Lienau/directory-sync/internal/validation"
)

// Trigger identifies what initiated a reconciliation run.
type Trigger string

const (
	// TriggerScheduled marks runs started by the background scheduler
	TriggerScheduled Trigger = "scheduled"

	// TriggerManual marks runs started by an operator (CLI or API)
	TriggerManual Trigger = "manual"
)

// SyncTypeAzureAD is the sync type handled by the directory reconciler.
const SyncTypeAzureAD = "azure_ad_sync"

// rowErrorThreshold is the fraction of eligible records whose writes may
// fail before the whole run is marked FAILED.
const rowErrorThreshold = 0.5

// Result contains the outcome of a single reconciliation run.
type Result struct {
	RunID       uuid.UUID `json:"run_id"`
	Success     bool      `json:"success"`
	Processed   int       `json:"processed"`
	Created     int       `json:"created"`
	Updated     int       `json:"updated"`
	Deactivated int       `json:"deactivated"`
	Ineligible  int       `json:"ineligible"`
	RowErrors   int       `json:"row_errors"`
	Error       string    `json:"error,omitempty"`
}

// DirectoryClient fetches the full user snapshot from the external directory
//
//go:generate mockgen -destination=mocks/mock_reconciler.go -package=mocks github.com/4Lienau/directory-sync/internal/reconciler DirectoryClient,MirrorStore,RunLogStore
type DirectoryClient interface {
	// FetchUsers returns every user visible to the client, fully paginated
	FetchUsers(ctx context.Context) ([]directory.Record, error)
}

// MirrorStore persists mirror rows
type MirrorStore interface {
	// UpsertUser writes one mirror row, returning true when it was created
	UpsertUser(ctx context.Context, u store.MirrorUser, now time.Time) (bool, error)

	// DeactivateAbsent marks ACTIVE rows not present in presentIDs as INACTIVE
	DeactivateAbsent(ctx context.Context, presentIDs []string, now time.Time) (int64, error)

	// CountUsersByStatus returns the mirror row counts per sync status
	CountUsersByStatus(ctx context.Context) (map[store.UserSyncStatus]int64, error)
}

// RunLogStore journals reconciliation runs
type RunLogStore interface {
	// CreateRunLog opens a RUNNING journal row and returns its ID
	CreateRunLog(ctx context.Context, syncType, triggeredBy string, startedAt time.Time) (uuid.UUID, error)

	// CompleteRunLog finalizes a run as COMPLETED
	CompleteRunLog(ctx context.Context, id uuid.UUID, counts store.RunCounts, completedAt time.Time) error

	// FailRunLog finalizes a run as FAILED with an error message
	FailRunLog(ctx context.Context, id uuid.UUID, counts store.RunCounts, errorMessage string, completedAt time.Time) error
}

// Reconciler drives one sync type end to end.
type Reconciler struct {
	syncType string
	client   DirectoryClient
	mirror   MirrorStore
	runs     RunLogStore
	metrics  *telemetry.SyncMetrics
	now      func() time.Time
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithMetrics attaches sync metrics instruments. A nil metrics value keeps
// instrumentation disabled.
func WithMetrics(m *telemetry.SyncMetrics) Option {
	return func(r *Reconciler) {
		r.metrics = m
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) {
		r.now = now
	}
}

// New creates a Reconciler for the given sync type.
func New(syncType string, client DirectoryClient, mirror MirrorStore, runs RunLogStore, opts ...Option) *Reconciler {
	r := &Reconciler{
		syncType: syncType,
		client:   client,
		mirror:   mirror,
		runs:     runs,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run executes one full reconciliation: create the journal row, fetch,
// validate, write, deactivate, finalize. The returned Result is always
// populated; err is non-nil exactly when Result.Success is false.
func (r *Reconciler) Run(ctx context.Context, trigger Trigger) (*Result, error) {
	startedAt := r.now()

	runID, err := r.runs.CreateRunLog(ctx, r.syncType, string(trigger), startedAt)
	if err != nil {
		return &Result{Error: err.Error()}, fmt.Errorf("failed to create sync run log: %w", err)
	}

	slog.InfoContext(ctx, "Starting reconciliation run",
		"sync_type", r.syncType,
		"run_id", runID,
		"triggered_by", trigger)

	result, err := r.reconcile(ctx, runID, startedAt)

	completedAt := r.now()
	counts := store.RunCounts{
		Processed:   result.Processed,
		Created:     result.Created,
		Updated:     result.Updated,
		Deactivated: result.Deactivated,
	}

	if err != nil {
		result.Success = false
		result.Error = err.Error()
		if logErr := r.runs.FailRunLog(ctx, runID, counts, err.Error(), completedAt); logErr != nil {
			slog.ErrorContext(ctx, "Failed to finalize run log", "run_id", runID, "error", logErr)
		}
	} else {
		result.Success = true
		if logErr := r.runs.CompleteRunLog(ctx, runID, counts, completedAt); logErr != nil {
			slog.ErrorContext(ctx, "Failed to finalize run log", "run_id", runID, "error", logErr)
		}
	}

	r.metrics.RecordRunDuration(ctx, r.syncType, completedAt.Sub(startedAt), result.Success)
	r.recordMirrorSize(ctx)

	if err != nil {
		slog.ErrorContext(ctx, "Reconciliation run failed",
			"sync_type", r.syncType,
			"run_id", runID,
			"error", err)
		return result, err
	}

	slog.InfoContext(ctx, "Reconciliation run completed",
		"sync_type", r.syncType,
		"run_id", runID,
		"processed", result.Processed,
		"created", result.Created,
		"updated", result.Updated,
		"deactivated", result.Deactivated,
		"ineligible", result.Ineligible,
		"row_errors", result.RowErrors,
		"duration", completedAt.Sub(startedAt).String())
	return result, nil
}

// reconcile runs the fetch/validate/write phases, mutating result as it
// goes so partial counters survive a mid-run failure.
func (r *Reconciler) reconcile(ctx context.Context, runID uuid.UUID, startedAt time.Time) (*Result, error) {
	result := &Result{RunID: runID}

	records, err := r.client.FetchUsers(ctx)
	if err != nil {
		return result, fmt.Errorf("directory fetch failed: %w", err)
	}

	eligible, ineligible := validation.Partition(records)
	result.Ineligible = len(ineligible)

	slog.InfoContext(ctx, "Fetched directory snapshot",
		"sync_type", r.syncType,
		"total", len(records),
		"eligible", len(eligible),
		"ineligible", len(ineligible))

	// The sweep is keyed on every eligible id, not just the rows whose
	// write succeeded: a transient row failure must not flip a user that is
	// still in the directory to INACTIVE. The stale row is retried next run.
	presentIDs := make([]string, 0, len(eligible))
	for i := range eligible {
		rec := &eligible[i]

		// Re-checked right before the write so a record mutated after
		// partitioning can never reach the mirror.
		if !validation.Eligible(*rec) {
			return result, &DataIntegrityError{
				ExternalID: rec.ID,
				Reason:     "record no longer eligible at write time",
			}
		}
		presentIDs = append(presentIDs, rec.ID)

		created, upsertErr := r.mirror.UpsertUser(ctx, mirrorUserFromRecord(*rec), startedAt)
		if upsertErr != nil {
			rowErr := &RowWriteError{ExternalID: rec.ID, Err: upsertErr}
			slog.WarnContext(ctx, "Mirror row write failed",
				"sync_type", r.syncType,
				"external_id", rec.ID,
				"error", rowErr)
			r.metrics.RecordRowError(ctx, r.syncType)
			result.RowErrors++
			continue
		}

		result.Processed++
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	if len(eligible) > 0 && float64(result.RowErrors) > rowErrorThreshold*float64(len(eligible)) {
		return result, fmt.Errorf("aborting run: %d of %d eligible records failed to write", result.RowErrors, len(eligible))
	}

	// An empty eligible set is indistinguishable from a truncated or
	// misconfigured fetch, so the deactivation sweep is skipped entirely
	// rather than marking every mirror row INACTIVE.
	if len(presentIDs) == 0 {
		slog.WarnContext(ctx, "No eligible records in snapshot, skipping deactivation sweep",
			"sync_type", r.syncType,
			"total", len(records))
		return result, nil
	}

	deactivated, err := r.mirror.DeactivateAbsent(ctx, presentIDs, startedAt)
	if err != nil {
		return result, fmt.Errorf("deactivation sweep failed: %w", err)
	}
	result.Deactivated = int(deactivated)

	return result, nil
}

func (r *Reconciler) recordMirrorSize(ctx context.Context) {
	if r.metrics == nil {
		return
	}

	counts, err := r.mirror.CountUsersByStatus(ctx)
	if err != nil {
		slog.DebugContext(ctx, "Failed to count mirror users", "error", err)
		return
	}

	for status, count := range counts {
		r.metrics.RecordMirrorUsers(ctx, string(status), count)
	}
}

// mirrorUserFromRecord maps a directory snapshot record onto a mirror row.
func mirrorUserFromRecord(rec directory.Record) store.MirrorUser {
	u := store.MirrorUser{
		ExternalID:     rec.ID,
		DisplayName:    rec.DisplayName,
		Email:          rec.Mail,
		PrincipalName:  rec.UserPrincipalName,
		JobTitle:       rec.JobTitle,
		Department:     rec.Department,
		AccountEnabled: rec.AccountEnabled,
		SyncStatus:     store.UserSyncActive,
	}

	if !rec.CreatedDateTime.IsZero() {
		created := rec.CreatedDateTime
		u.ExternalCreatedAt = &created
	}

	return u
}
