package infrastructure

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// SystemMetrics records the resource footprint of a single run.
type SystemMetrics struct {
	memoryAllocated metric.Int64Gauge
	memorySystem    metric.Int64Gauge
	gcCount         metric.Int64Gauge
	goRoutines      metric.Int64Gauge
	runDuration     metric.Float64Gauge
}

// NewSystemMetrics creates the run resource gauges on meter
func NewSystemMetrics(meter metric.Meter) (*SystemMetrics, error) {
	memoryAllocated, err := meter.Int64Gauge(
		"gradebook_memory_allocated_bytes",
		metric.WithDescription("Heap bytes allocated when the run finished"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	memorySystem, err := meter.Int64Gauge(
		"gradebook_memory_system_bytes",
		metric.WithDescription("Bytes obtained from the operating system"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	gcCount, err := meter.Int64Gauge(
		"gradebook_gc_cycles",
		metric.WithDescription("Completed garbage collection cycles"),
	)
	if err != nil {
		return nil, err
	}

	goRoutines, err := meter.Int64Gauge(
		"gradebook_goroutines",
		metric.WithDescription("Number of goroutines when the run finished"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Gauge(
		"gradebook_run_duration_seconds",
		metric.WithDescription("Wall time of the run"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &SystemMetrics{
		memoryAllocated: memoryAllocated,
		memorySystem:    memorySystem,
		gcCount:         gcCount,
		goRoutines:      goRoutines,
		runDuration:     runDuration,
	}, nil
}

// SystemStats is a snapshot of the process at the end of a run
type SystemStats struct {
	Duration        time.Duration
	MemoryAllocated uint64
	MemorySystem    uint64
	GCCount         uint32
	GoRoutines      int
}

// Collect records a snapshot taken now against a run that began at startTime.
func (sm *SystemMetrics) Collect(ctx context.Context, startTime time.Time) *SystemStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := &SystemStats{
		Duration:        time.Since(startTime),
		MemoryAllocated: m.Alloc,
		MemorySystem:    m.Sys,
		GCCount:         m.NumGC,
		GoRoutines:      runtime.NumGoroutine(),
	}

	sm.memoryAllocated.Record(ctx, int64(stats.MemoryAllocated))
	sm.memorySystem.Record(ctx, int64(stats.MemorySystem))
	sm.gcCount.Record(ctx, int64(stats.GCCount))
	sm.goRoutines.Record(ctx, int64(stats.GoRoutines))
	sm.runDuration.Record(ctx, stats.Duration.Seconds())

	return stats
}

// LogAttrs returns the snapshot as log attributes
func (stats *SystemStats) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Duration("duration", stats.Duration),
		slog.Uint64("memory_allocated", stats.MemoryAllocated),
		slog.Uint64("memory_system", stats.MemorySystem),
		slog.Int("gc_cycles", int(stats.GCCount)),
		slog.Int("goroutines", stats.GoRoutines),
	}
}
