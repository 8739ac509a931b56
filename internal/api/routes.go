package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/4Lienau/directory-sync/internal/reconciler"
	"github.com/4Lienau/directory-sync/internal/store"
)

// defaultListLimit bounds the run and tick listings when no limit is given.
const defaultListLimit = 20

// SyncRunner runs one reconciliation on demand
//
//go:generate mockgen -destination=mocks/mock_api.go -package=mocks github.com/4Lienau/directory-sync/internal/api SyncRunner,SyncStore
type SyncRunner interface {
	// Run executes a single reconciliation run
	Run(ctx context.Context, trigger reconciler.Trigger) (*reconciler.Result, error)
}

// SyncStore exposes the read and locking operations the API needs
type SyncStore interface {
	// ListRecentRuns returns recent run journal rows, newest first
	ListRecentRuns(ctx context.Context, limit int) ([]store.SyncRunLog, error)

	// ListPolicies returns every configured sync policy
	ListPolicies(ctx context.Context) ([]store.SyncPolicy, error)

	// ListRecentSchedulerLogs returns recent scheduler tick rows, newest first
	ListRecentSchedulerLogs(ctx context.Context, limit int) ([]store.SchedulerLog, error)

	// TryAdvisoryLock attempts a non-blocking per-sync-type lock
	TryAdvisoryLock(ctx context.Context, syncType string) (release func(), acquired bool, err error)
}

// Handlers holds the dependencies for the sync API endpoints.
type Handlers struct {
	syncType string
	runner   SyncRunner
	store    SyncStore
}

// NewHandlers creates the API handler set for one sync type.
func NewHandlers(syncType string, runner SyncRunner, st SyncStore) *Handlers {
	return &Handlers{
		syncType: syncType,
		runner:   runner,
		store:    st,
	}
}

// Health handles liveness checks.
func (*Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	WriteJSONResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// triggerRequest is the optional manual trigger body.
type triggerRequest struct {
	SyncType string `json:"syncType"`
}

// TriggerSync runs a manual reconciliation and returns its result. The
// request blocks until the run finishes; a run already in progress for the
// same sync type yields 409.
func (h *Handlers) TriggerSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req triggerRequest
	if r.Body != nil {
		// An empty body means the default sync type.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			WriteErrorResponse(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}
	if req.SyncType != "" && req.SyncType != h.syncType {
		WriteErrorResponse(w, "unknown sync type: "+req.SyncType, http.StatusBadRequest)
		return
	}

	release, acquired, err := h.store.TryAdvisoryLock(ctx, h.syncType)
	if err != nil {
		WriteErrorResponse(w, "failed to acquire sync lock: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if !acquired {
		WriteErrorResponse(w, "sync already in progress", http.StatusConflict)
		return
	}
	defer release()

	result, err := h.runner.Run(ctx, reconciler.TriggerManual)
	if err != nil {
		WriteJSONResponse(w, result, http.StatusInternalServerError)
		return
	}

	WriteJSONResponse(w, result, http.StatusOK)
}

// runResponse is the wire shape of one run journal row.
type runResponse struct {
	ID           string          `json:"id"`
	SyncType     string          `json:"sync_type"`
	StartedAt    time.Time       `json:"started_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
	Status       store.RunStatus `json:"status"`
	Counts       store.RunCounts `json:"counts"`
	ErrorMessage string          `json:"error_message,omitempty"`
	TriggeredBy  string          `json:"triggered_by"`
}

// parseListLimit reads the optional limit query parameter. A false return
// means the error response was already written.
func parseListLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit, true
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 || parsed > 100 {
		WriteErrorResponse(w, "limit must be an integer between 1 and 100", http.StatusBadRequest)
		return 0, false
	}
	return parsed, true
}

// ListRuns returns recent reconciliation runs, newest first.
func (h *Handlers) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseListLimit(w, r)
	if !ok {
		return
	}

	runs, err := h.store.ListRecentRuns(r.Context(), limit)
	if err != nil {
		WriteErrorResponse(w, "failed to list sync runs", http.StatusInternalServerError)
		return
	}

	resp := make([]runResponse, 0, len(runs))
	for _, run := range runs {
		resp = append(resp, runResponse{
			ID:           run.ID.String(),
			SyncType:     run.SyncType,
			StartedAt:    run.StartedAt,
			CompletedAt:  run.CompletedAt,
			Status:       run.Status,
			Counts:       run.Counts,
			ErrorMessage: run.ErrorMessage,
			TriggeredBy:  run.TriggeredBy,
		})
	}

	WriteJSONResponse(w, map[string]interface{}{"runs": resp}, http.StatusOK)
}

// policyResponse is the wire shape of one sync policy.
type policyResponse struct {
	SyncType       string     `json:"sync_type"`
	Enabled        bool       `json:"enabled"`
	FrequencyHours int        `json:"frequency_hours"`
	LastRunAt      *time.Time `json:"last_run_at,omitempty"`
	NextDueAt      *time.Time `json:"next_due_at,omitempty"`
}

// ListPolicies returns the configured sync policies.
func (h *Handlers) ListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.store.ListPolicies(r.Context())
	if err != nil {
		WriteErrorResponse(w, "failed to list sync policies", http.StatusInternalServerError)
		return
	}

	resp := make([]policyResponse, 0, len(policies))
	for _, p := range policies {
		resp = append(resp, policyResponse{
			SyncType:       p.SyncType,
			Enabled:        p.Enabled,
			FrequencyHours: p.FrequencyHours,
			LastRunAt:      p.LastRunAt,
			NextDueAt:      p.NextDueAt,
		})
	}

	WriteJSONResponse(w, map[string]interface{}{"policies": resp}, http.StatusOK)
}

// tickResponse is the wire shape of one scheduler tick journal row.
type tickResponse struct {
	ID              string                `json:"id"`
	TickedAt        time.Time             `json:"ticked_at"`
	PoliciesChecked int                   `json:"policies_checked"`
	PoliciesDue     int                   `json:"policies_due"`
	SyncTriggered   bool                  `json:"sync_triggered"`
	Outcomes        []store.PolicyOutcome `json:"outcomes,omitempty"`
	ElapsedMS       int64                 `json:"elapsed_ms"`
	Status          store.RunStatus       `json:"status"`
	ErrorMessage    string                `json:"error_message,omitempty"`
}

// ListTicks returns recent scheduler ticks, newest first.
func (h *Handlers) ListTicks(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseListLimit(w, r)
	if !ok {
		return
	}

	ticks, err := h.store.ListRecentSchedulerLogs(r.Context(), limit)
	if err != nil {
		WriteErrorResponse(w, "failed to list scheduler ticks", http.StatusInternalServerError)
		return
	}

	resp := make([]tickResponse, 0, len(ticks))
	for _, tick := range ticks {
		resp = append(resp, tickResponse{
			ID:              tick.ID.String(),
			TickedAt:        tick.TickedAt,
			PoliciesChecked: tick.PoliciesChecked,
			PoliciesDue:     tick.PoliciesDue,
			SyncTriggered:   tick.SyncTriggered,
			Outcomes:        tick.Outcomes,
			ElapsedMS:       tick.ElapsedMS,
			Status:          tick.Status,
			ErrorMessage:    tick.ErrorMessage,
		})
	}

	WriteJSONResponse(w, map[string]interface{}{"ticks": resp}, http.StatusOK)
}
