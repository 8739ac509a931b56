package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/4Lienau/directory-sync/internal/api/mocks"
	"github.com/4Lienau/directory-sync/internal/reconciler"
	"github.com/4Lienau/directory-sync/internal/store"
)

type fixture struct {
	runner *mocks.MockSyncRunner
	store  *mocks.MockSyncStore
	server *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		runner: mocks.NewMockSyncRunner(ctrl),
		store:  mocks.NewMockSyncStore(ctrl),
	}

	handlers := NewHandlers(reconciler.SyncTypeAzureAD, f.runner, f.store)
	f.server = httptest.NewServer(NewServer(handlers))
	t.Cleanup(f.server.Close)
	return f
}

func TestHealth(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	resp, err := http.Get(f.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestTriggerSync(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	runID := uuid.New()
	f.store.EXPECT().
		TryAdvisoryLock(gomock.Any(), reconciler.SyncTypeAzureAD).
		Return(func() {}, true, nil)
	f.runner.EXPECT().
		Run(gomock.Any(), reconciler.TriggerManual).
		Return(&reconciler.Result{RunID: runID, Success: true, Processed: 5, Created: 2, Updated: 3}, nil)

	resp, err := http.Post(f.server.URL+"/api/v1/sync", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result reconciler.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Equal(t, runID, result.RunID)
	assert.Equal(t, 5, result.Processed)
}

func TestTriggerSyncExplicitType(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.store.EXPECT().
		TryAdvisoryLock(gomock.Any(), reconciler.SyncTypeAzureAD).
		Return(func() {}, true, nil)
	f.runner.EXPECT().
		Run(gomock.Any(), reconciler.TriggerManual).
		Return(&reconciler.Result{RunID: uuid.New(), Success: true}, nil)

	body := strings.NewReader(`{"syncType": "azure_ad_sync"}`)
	resp, err := http.Post(f.server.URL+"/api/v1/sync", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTriggerSyncUnknownType(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	body := strings.NewReader(`{"syncType": "ldap_sync"}`)
	resp, err := http.Post(f.server.URL+"/api/v1/sync", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errBody map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Contains(t, errBody["error"], "unknown sync type")
}

func TestTriggerSyncMalformedBody(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	body := strings.NewReader(`{"syncType":`)
	resp, err := http.Post(f.server.URL+"/api/v1/sync", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTriggerSyncConflict(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.store.EXPECT().
		TryAdvisoryLock(gomock.Any(), reconciler.SyncTypeAzureAD).
		Return(nil, false, nil)

	resp, err := http.Post(f.server.URL+"/api/v1/sync", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "already in progress")
}

func TestTriggerSyncRunFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.store.EXPECT().
		TryAdvisoryLock(gomock.Any(), reconciler.SyncTypeAzureAD).
		Return(func() {}, true, nil)
	f.runner.EXPECT().
		Run(gomock.Any(), reconciler.TriggerManual).
		Return(&reconciler.Result{Success: false, Error: "directory fetch failed"},
			errors.New("directory fetch failed"))

	resp, err := http.Post(f.server.URL+"/api/v1/sync", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var result reconciler.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "fetch failed")
}

func TestListRuns(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	completed := time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC)
	f.store.EXPECT().
		ListRecentRuns(gomock.Any(), defaultListLimit).
		Return([]store.SyncRunLog{
			{
				ID:          uuid.New(),
				SyncType:    reconciler.SyncTypeAzureAD,
				StartedAt:   completed.Add(-5 * time.Minute),
				CompletedAt: &completed,
				Status:      store.RunStatusCompleted,
				Counts:      store.RunCounts{Processed: 10, Created: 1, Updated: 9},
				TriggeredBy: "scheduled",
			},
		}, nil)

	resp, err := http.Get(f.server.URL + "/api/v1/sync/runs")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Runs []runResponse `json:"runs"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Runs, 1)
	assert.Equal(t, reconciler.SyncTypeAzureAD, body.Runs[0].SyncType)
	assert.Equal(t, store.RunStatusCompleted, body.Runs[0].Status)
	assert.Equal(t, 10, body.Runs[0].Counts.Processed)
}

func TestListRunsCustomLimit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.store.EXPECT().ListRecentRuns(gomock.Any(), 5).Return(nil, nil)

	resp, err := http.Get(f.server.URL + "/api/v1/sync/runs?limit=5")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListRunsInvalidLimit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	for _, limit := range []string{"0", "-1", "101", "abc"} {
		resp, err := http.Get(f.server.URL + "/api/v1/sync/runs?limit=" + limit)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "limit=%s", limit)
	}
}

func TestListPolicies(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	nextDue := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	f.store.EXPECT().ListPolicies(gomock.Any()).Return([]store.SyncPolicy{
		{SyncType: reconciler.SyncTypeAzureAD, Enabled: true, FrequencyHours: 24, NextDueAt: &nextDue},
	}, nil)

	resp, err := http.Get(f.server.URL + "/api/v1/sync/policies")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Policies []policyResponse `json:"policies"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Policies, 1)
	assert.True(t, body.Policies[0].Enabled)
	assert.Equal(t, 24, body.Policies[0].FrequencyHours)
}

func TestListPoliciesStoreFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.store.EXPECT().ListPolicies(gomock.Any()).Return(nil, errors.New("database unavailable"))

	resp, err := http.Get(f.server.URL + "/api/v1/sync/policies")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestListTicks(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	tickedAt := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	f.store.EXPECT().
		ListRecentSchedulerLogs(gomock.Any(), defaultListLimit).
		Return([]store.SchedulerLog{
			{
				ID:              uuid.New(),
				TickedAt:        tickedAt,
				PoliciesChecked: 1,
				PoliciesDue:     1,
				SyncTriggered:   true,
				Outcomes: []store.PolicyOutcome{
					{SyncType: reconciler.SyncTypeAzureAD, Triggered: true, Success: true, Message: "processed 10 records"},
				},
				ElapsedMS: 1500,
				Status:    store.RunStatusCompleted,
			},
		}, nil)

	resp, err := http.Get(f.server.URL + "/api/v1/scheduler/ticks")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Ticks []tickResponse `json:"ticks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Ticks, 1)
	assert.True(t, body.Ticks[0].SyncTriggered)
	assert.Equal(t, store.RunStatusCompleted, body.Ticks[0].Status)
	require.Len(t, body.Ticks[0].Outcomes, 1)
	assert.Equal(t, reconciler.SyncTypeAzureAD, body.Ticks[0].Outcomes[0].SyncType)
}

func TestListTicksInvalidLimit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	resp, err := http.Get(f.server.URL + "/api/v1/scheduler/ticks?limit=500")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListTicksStoreFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.store.EXPECT().
		ListRecentSchedulerLogs(gomock.Any(), defaultListLimit).
		Return(nil, errors.New("database unavailable"))

	resp, err := http.Get(f.server.URL + "/api/v1/scheduler/ticks")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
