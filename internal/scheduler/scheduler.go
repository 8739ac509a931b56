// Package scheduler runs the background tick loop that checks sync policies
// and triggers due reconciliations.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/4Lienau/directory-sync/internal/reconciler"
	"github.com/4Lienau/directory-sync/internal/store"
)

const (
	// defaultTickInterval is the base interval at which the scheduler checks policies
	defaultTickInterval = 5 * time.Minute
	// tickJitter is the maximum random offset (±30 seconds) applied to the tick interval
	tickJitter = 30 * time.Second
)

// Invoker runs one reconciliation for a sync type.
type Invoker interface {
	// Run executes a single reconciliation run
	Run(ctx context.Context, trigger reconciler.Trigger) (*reconciler.Result, error)
}

// PolicyStore provides the scheduling state the tick loop operates on
//
//go:generate mockgen -destination=mocks/mock_scheduler.go -package=mocks github.com/4Lienau/directory-sync/internal/scheduler Invoker,PolicyStore
type PolicyStore interface {
	// ListPolicies returns every configured sync policy
	ListPolicies(ctx context.Context) ([]store.SyncPolicy, error)

	// AdvancePolicy stamps last_run_at and next_due_at for a sync type
	AdvancePolicy(ctx context.Context, syncType string, lastRun, nextDue time.Time) error

	// TryAdvisoryLock attempts a non-blocking per-sync-type lock
	TryAdvisoryLock(ctx context.Context, syncType string) (release func(), acquired bool, err error)

	// CreateSchedulerLog opens a tick journal row
	CreateSchedulerLog(ctx context.Context, tickedAt time.Time) (uuid.UUID, error)

	// FinishSchedulerLog writes the terminal tick journal update
	FinishSchedulerLog(ctx context.Context, id uuid.UUID, log store.SchedulerLog) error
}

// Scheduler owns the background tick loop. Each tick journals itself, lists
// policies, and for every due policy advances its schedule before invoking
// the reconciler, so a failed run still waits a full frequency interval
// instead of retrying on every tick.
type Scheduler struct {
	policies PolicyStore
	invokers map[string]Invoker

	tickInterval time.Duration
	now          func() time.Time

	// mu guards cancelFunc, which Stop reads from another goroutine.
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	done       chan struct{}
}

// Option configures the scheduler.
type Option func(*Scheduler)

// WithTickInterval overrides the base tick interval.
func WithTickInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		s.tickInterval = d
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// New creates a scheduler. invokers maps sync type names to the reconciler
// that handles them; policies for unknown sync types are skipped with a
// warning rather than failing the tick.
func New(policies PolicyStore, invokers map[string]Invoker, opts ...Option) *Scheduler {
	s := &Scheduler{
		policies:     policies,
		invokers:     invokers,
		tickInterval: defaultTickInterval,
		now:          time.Now,
		done:         make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// calculateTickInterval returns the base tick interval with a random jitter
// applied so multiple instances don't poll the database simultaneously.
func (s *Scheduler) calculateTickInterval() time.Duration {
	//nolint:gosec // G404: Non-cryptographic randomness is sufficient for polling jitter
	jitterOffset := time.Duration(rand.Int64N(int64(2*tickJitter))) - tickJitter
	return s.tickInterval + jitterOffset
}

// Start runs the tick loop until the context is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	slog.Info("Starting sync scheduler", "sync_types", len(s.invokers))

	schedCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancelFunc = cancel
	s.mu.Unlock()
	defer func() {
		close(s.done)
		slog.Info("Sync scheduler shutting down")
	}()

	tickInterval := s.calculateTickInterval()
	slog.Info("Configured scheduler tick interval",
		"base_interval", s.tickInterval,
		"actual_interval", tickInterval)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	s.Tick(schedCtx)

	for {
		select {
		case <-ticker.C:
			s.Tick(schedCtx)
			ticker.Reset(s.calculateTickInterval())
		case <-schedCtx.Done():
			slog.Info("Sync scheduler stopping")
			return nil
		}
	}
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	cancel := s.cancelFunc
	s.mu.Unlock()

	if cancel != nil {
		slog.Info("Stopping sync scheduler")
		cancel()
		<-s.done
	}
	return nil
}

// Tick runs one scheduling pass. The tick journal row is created first and
// finalized on the way out, so even a tick that fails to list policies
// leaves a FAILED row behind.
func (s *Scheduler) Tick(ctx context.Context) {
	tickedAt := s.now()

	logID, err := s.policies.CreateSchedulerLog(ctx, tickedAt)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to create scheduler log, skipping tick", "error", err)
		return
	}

	tickLog := store.SchedulerLog{
		ID:       logID,
		TickedAt: tickedAt,
		Status:   store.RunStatusCompleted,
	}
	defer func() {
		tickLog.ElapsedMS = s.now().Sub(tickedAt).Milliseconds()
		if finishErr := s.policies.FinishSchedulerLog(ctx, logID, tickLog); finishErr != nil {
			slog.ErrorContext(ctx, "Failed to finalize scheduler log", "log_id", logID, "error", finishErr)
		}
	}()

	policies, err := s.policies.ListPolicies(ctx)
	if err != nil {
		tickLog.Status = store.RunStatusFailed
		tickLog.ErrorMessage = fmt.Sprintf("failed to list sync policies: %v", err)
		slog.ErrorContext(ctx, "Failed to list sync policies", "error", err)
		return
	}
	tickLog.PoliciesChecked = len(policies)

	for i := range policies {
		policy := &policies[i]
		if !policy.Due(tickedAt) {
			slog.DebugContext(ctx, "Policy not due",
				"sync_type", policy.SyncType,
				"next_due_at", policy.NextDueAt)
			continue
		}
		tickLog.PoliciesDue++

		outcome := s.runPolicy(ctx, policy, tickedAt)
		if outcome.Triggered {
			tickLog.SyncTriggered = true
		}
		tickLog.Outcomes = append(tickLog.Outcomes, outcome)
	}
}

// runPolicy handles one due policy: advance its schedule, take the advisory
// lock, and invoke the reconciler.
func (s *Scheduler) runPolicy(ctx context.Context, policy *store.SyncPolicy, tickedAt time.Time) store.PolicyOutcome {
	outcome := store.PolicyOutcome{SyncType: policy.SyncType}

	invoker, ok := s.invokers[policy.SyncType]
	if !ok {
		outcome.Message = "no reconciler registered for sync type"
		slog.WarnContext(ctx, "Skipping policy with unknown sync type", "sync_type", policy.SyncType)
		return outcome
	}

	// The schedule is advanced before the run so that a crashed or failed
	// run is not retried on the very next tick.
	nextDue := tickedAt.Add(policy.Frequency())
	if err := s.policies.AdvancePolicy(ctx, policy.SyncType, tickedAt, nextDue); err != nil {
		outcome.Message = fmt.Sprintf("failed to advance policy schedule: %v", err)
		slog.ErrorContext(ctx, "Failed to advance policy schedule",
			"sync_type", policy.SyncType,
			"error", err)
		return outcome
	}

	release, acquired, err := s.policies.TryAdvisoryLock(ctx, policy.SyncType)
	if err != nil {
		outcome.Message = fmt.Sprintf("failed to acquire sync lock: %v", err)
		slog.ErrorContext(ctx, "Failed to acquire sync lock",
			"sync_type", policy.SyncType,
			"error", err)
		return outcome
	}
	if !acquired {
		outcome.Message = "sync already running elsewhere"
		slog.WarnContext(ctx, "Sync already running elsewhere, skipping",
			"sync_type", policy.SyncType)
		return outcome
	}
	defer release()

	outcome.Triggered = true

	result, err := invoker.Run(ctx, reconciler.TriggerScheduled)
	if err != nil {
		outcome.Message = err.Error()
		return outcome
	}

	outcome.Success = true
	outcome.Message = fmt.Sprintf("processed %d records", result.Processed)
	return outcome
}
