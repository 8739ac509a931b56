// Package telemetry provides OpenTelemetry instrumentation for the directory sync service.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// SyncMetricsMeterName is the name used for the sync metrics meter
	SyncMetricsMeterName = "github.com/4Lienau/directory-sync/sync"
)

// SyncMetrics holds the OpenTelemetry instruments for reconciliation metrics
type SyncMetrics struct {
	runDuration metric.Float64Histogram
	mirrorUsers metric.Int64Gauge
	rowErrors   metric.Int64Counter
}

// NewSyncMetrics creates a new SyncMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewSyncMetrics(provider metric.MeterProvider) (*SyncMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(SyncMetricsMeterName)

	runDuration, err := meter.Float64Histogram(
		"dirsync_run_duration_seconds",
		metric.WithDescription("Duration of reconciliation runs in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600),
	)
	if err != nil {
		return nil, err
	}

	mirrorUsers, err := meter.Int64Gauge(
		"dirsync_mirror_users",
		metric.WithDescription("Number of mirror users by sync status"),
		metric.WithUnit("{user}"),
	)
	if err != nil {
		return nil, err
	}

	rowErrors, err := meter.Int64Counter(
		"dirsync_row_write_errors_total",
		metric.WithDescription("Number of individual mirror writes that failed"),
	)
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{
		runDuration: runDuration,
		mirrorUsers: mirrorUsers,
		rowErrors:   rowErrors,
	}, nil
}

// RecordRunDuration records the duration and outcome of a reconciliation run.
func (m *SyncMetrics) RecordRunDuration(ctx context.Context, syncType string, duration time.Duration, success bool) {
	if m == nil || m.runDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("sync_type", syncType),
		attribute.Bool("success", success),
	}

	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordMirrorUsers records the current mirror size for one sync status.
func (m *SyncMetrics) RecordMirrorUsers(ctx context.Context, status string, count int64) {
	if m == nil || m.mirrorUsers == nil {
		return
	}

	m.mirrorUsers.Record(ctx, count, metric.WithAttributes(attribute.String("status", status)))
}

// RecordRowError counts one failed per-row mirror write.
func (m *SyncMetrics) RecordRowError(ctx context.Context, syncType string) {
	if m == nil || m.rowErrors == nil {
		return
	}

	m.rowErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("sync_type", syncType)))
}
