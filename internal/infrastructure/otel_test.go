package infrastructure

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradebook/internal/config"
)

func TestInitializeTelemetry_Disabled(t *testing.T) {
	ctx := context.Background()

	tel, err := InitializeTelemetry(ctx, config.TelemetryConfig{Environment: "test"}, slog.Default())
	require.NoError(t, err)

	assert.Nil(t, tel.TracerProvider)
	require.NotNil(t, tel.Tracer)
	require.NotNil(t, tel.Metrics)

	_, span := tel.Tracer.Start(ctx, "noop")
	assert.False(t, span.IsRecording())
	span.End()

	require.NoError(t, tel.Shutdown(ctx))
}

func TestInitializeTelemetry_WritesTraceAndMetrics(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := config.TelemetryConfig{
		TraceFile:   filepath.Join(dir, "traces", "run.json"),
		MetricsFile: filepath.Join(dir, "metrics", "gradebook.prom"),
		Environment: "test",
	}

	tel, err := InitializeTelemetry(ctx, cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, tel.TracerProvider)

	spanCtx, span := tel.Tracer.Start(ctx, "roster.load")
	SetSpanAttributes(spanCtx, map[string]interface{}{"rows": 3, "path": "main.csv"})
	RecordError(spanCtx, errors.New("boom"))
	span.End()

	tel.Metrics.RowsRead.Add(ctx, 3)
	tel.Metrics.FieldsCoerced.Add(ctx, 1)
	tel.Metrics.ExamsSeen.Record(ctx, 2)

	require.NoError(t, tel.Shutdown(ctx))

	traces, err := os.ReadFile(cfg.TraceFile)
	require.NoError(t, err)
	assert.Contains(t, string(traces), "roster.load")
	assert.Contains(t, string(traces), "boom")

	metrics, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "gradebook_roster_rows")
	assert.Contains(t, string(metrics), "gradebook_fields_coerced")
	assert.Contains(t, string(metrics), "gradebook_exams")
	assert.Contains(t, string(metrics), "gradebook_run_duration_seconds")
	assert.Contains(t, string(metrics), "gradebook_memory_allocated_bytes")
}

func TestSystemMetrics_Collect(t *testing.T) {
	ctx := context.Background()
	tel, err := InitializeTelemetry(ctx, config.TelemetryConfig{}, nil)
	require.NoError(t, err)
	defer tel.Shutdown(ctx)

	start := time.Now().Add(-2 * time.Second)
	stats := tel.System.Collect(ctx, start)

	assert.GreaterOrEqual(t, stats.Duration, 2*time.Second)
	assert.Greater(t, stats.MemoryAllocated, uint64(0))
	assert.Greater(t, stats.GoRoutines, 0)
	assert.Len(t, stats.LogAttrs(), 5)
}

func TestRecordError_NoSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordError(context.Background(), errors.New("ignored"))
		SetSpanAttributes(context.Background(), map[string]interface{}{"k": "v"})
	})
}
