package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNewSyncMetricsNilProvider(t *testing.T) {
	t.Parallel()

	metrics, err := NewSyncMetrics(nil)
	require.NoError(t, err)
	assert.Nil(t, metrics)

	// A nil receiver is a no-op, not a panic.
	metrics.RecordRunDuration(context.Background(), "azure_ad_sync", time.Second, true)
	metrics.RecordMirrorUsers(context.Background(), "ACTIVE", 10)
	metrics.RecordRowError(context.Background(), "azure_ad_sync")
}

func TestNewSyncMetrics(t *testing.T) {
	t.Parallel()

	metrics, err := NewSyncMetrics(noop.NewMeterProvider())
	require.NoError(t, err)
	require.NotNil(t, metrics)

	metrics.RecordRunDuration(context.Background(), "azure_ad_sync", 2*time.Second, false)
	metrics.RecordMirrorUsers(context.Background(), "INACTIVE", 3)
	metrics.RecordRowError(context.Background(), "azure_ad_sync")
}
