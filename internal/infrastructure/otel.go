package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"gradebook/internal/config"
)

const (
	ServiceName    = "gradebook"
	ServiceVersion = "1.0.0"
	MeterName      = "gradebook"
)

// Telemetry holds the tracer and meter used by one invocation, plus the
// outputs they are flushed to on Shutdown.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Registry       *promclient.Registry
	Tracer         trace.Tracer
	Meter          metric.Meter
	Metrics        *RunMetrics
	System         *SystemMetrics

	startTime   time.Time
	traceFile   *os.File
	metricsFile string
	logger      *slog.Logger
}

// RunMetrics are the counters recorded while a roster is processed.
type RunMetrics struct {
	RowsRead       metric.Int64Counter
	FieldsCoerced  metric.Int64Counter
	ExamsSeen      metric.Int64Gauge
	StudentsRanked metric.Int64Counter
	Failures       metric.Int64Counter
}

// InitializeTelemetry sets up tracing and metrics for a run. Tracing is a
// no-op unless cfg.TraceFile is set; metrics are always collected into a
// private registry and written out only when cfg.MetricsFile is set.
func InitializeTelemetry(ctx context.Context, cfg config.TelemetryConfig, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	t := &Telemetry{
		startTime:   time.Now(),
		metricsFile: cfg.MetricsFile,
		logger:      logger,
	}

	if err := t.initializeTracing(cfg, res); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := t.initializeMetrics(res); err != nil {
		t.closeTraceFile()
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.DebugContext(ctx, "Telemetry initialized",
		slog.Bool("tracing_enabled", t.TracerProvider != nil),
		slog.String("metrics_file", cfg.MetricsFile))

	return t, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg config.TelemetryConfig) (*resource.Resource, error) {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
	), nil
}

func (t *Telemetry) initializeTracing(cfg config.TelemetryConfig, res *resource.Resource) error {
	if cfg.TraceFile == "" {
		t.Tracer = noop.NewTracerProvider().Tracer(MeterName)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.TraceFile), 0755); err != nil {
		return fmt.Errorf("failed to create trace directory: %w", err)
	}
	file, err := os.Create(cfg.TraceFile)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(file),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	t.traceFile = file
	t.TracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	t.Tracer = t.TracerProvider.Tracer(MeterName, trace.WithInstrumentationVersion(ServiceVersion))
	return nil
}

func (t *Telemetry) initializeMetrics(res *resource.Resource) error {
	t.Registry = promclient.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(t.Registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	t.MeterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	t.Meter = t.MeterProvider.Meter(MeterName, metric.WithInstrumentationVersion(ServiceVersion))

	metrics, err := CreateRunMetrics(t.Meter)
	if err != nil {
		return err
	}
	t.Metrics = metrics

	system, err := NewSystemMetrics(t.Meter)
	if err != nil {
		return err
	}
	t.System = system
	return nil
}

// CreateRunMetrics creates the roster-processing instruments on meter.
func CreateRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	rowsRead, err := meter.Int64Counter(
		"gradebook_roster_rows",
		metric.WithDescription("Number of roster rows read"),
	)
	if err != nil {
		return nil, err
	}

	fieldsCoerced, err := meter.Int64Counter(
		"gradebook_fields_coerced",
		metric.WithDescription("Number of exam fields that were absent or not a clean integer and counted as zero"),
	)
	if err != nil {
		return nil, err
	}

	examsSeen, err := meter.Int64Gauge(
		"gradebook_exams",
		metric.WithDescription("Number of distinct exam columns in the roster"),
	)
	if err != nil {
		return nil, err
	}

	studentsRanked, err := meter.Int64Counter(
		"gradebook_students_ranked",
		metric.WithDescription("Number of students placed in a ranking"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter(
		"gradebook_failures",
		metric.WithDescription("Number of pipeline runs that ended in an error"),
	)
	if err != nil {
		return nil, err
	}

	return &RunMetrics{
		RowsRead:       rowsRead,
		FieldsCoerced:  fieldsCoerced,
		ExamsSeen:      examsSeen,
		StudentsRanked: studentsRanked,
		Failures:       failures,
	}, nil
}

// Shutdown flushes spans, writes the metrics textfile if one is configured
// and releases the trace file.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if err := t.closeTraceFile(); err != nil {
		errs = append(errs, fmt.Errorf("trace file close: %w", err))
	}

	if t.System != nil {
		stats := t.System.Collect(ctx, t.startTime)
		t.logger.LogAttrs(ctx, slog.LevelDebug, "Run resource usage", stats.LogAttrs()...)
	}

	if t.metricsFile != "" && t.Registry != nil {
		if err := os.MkdirAll(filepath.Dir(t.metricsFile), 0755); err != nil {
			errs = append(errs, fmt.Errorf("metrics directory: %w", err))
		} else if err := promclient.WriteToTextfile(t.metricsFile, t.Registry); err != nil {
			errs = append(errs, fmt.Errorf("metrics textfile: %w", err))
		}
	}

	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("telemetry shutdown errors: %v", errs)
	}

	t.logger.DebugContext(ctx, "Telemetry shutdown complete")
	return nil
}

func (t *Telemetry) closeTraceFile() error {
	if t.traceFile == nil {
		return nil
	}
	err := t.traceFile.Close()
	t.traceFile = nil
	return err
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanAttributes sets integer and string attributes on the current span
func SetSpanAttributes(ctx context.Context, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, val))
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case int64:
			attrs = append(attrs, attribute.Int64(k, val))
		case float64:
			attrs = append(attrs, attribute.Float64(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}
	span.SetAttributes(attrs...)
}
