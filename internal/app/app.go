package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"gradebook/internal/config"
	"gradebook/internal/exporter"
	"gradebook/internal/grading"
	"gradebook/internal/infrastructure"
	"gradebook/internal/report"
	"gradebook/internal/roster"
	"gradebook/internal/validation"
)

const AppName = "gradebook"

var (
	// VERSION and BuildTime are set at link time by build.go
	VERSION   = "dev"
	BuildTime = "unknown"
)

// Application wires configuration, logging and telemetry to the grading
// pipelines. Each Run method is one independent entry point.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Telemetry *infrastructure.Telemetry
	Validator *validation.FileValidator
	// Out receives the human-readable reports.
	Out io.Writer
}

// NewApplication initializes logging and telemetry for one invocation.
func NewApplication(ctx context.Context, cfg *config.Config, out io.Writer) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if out == nil {
		out = os.Stdout
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	tel, err := infrastructure.InitializeTelemetry(ctx, cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	logger.DebugContext(ctx, "Application starting",
		slog.String("name", AppName),
		slog.String("version", VERSION))

	return &Application{
		Config:    cfg,
		Logger:    logger,
		Telemetry: tel,
		Validator: validation.NewFileValidator(logger),
		Out:       out,
	}, nil
}

// Close flushes telemetry and releases the log file.
func (a *Application) Close(ctx context.Context) error {
	var first error
	if a.Telemetry != nil {
		if err := a.Telemetry.Shutdown(ctx); err != nil {
			first = err
		}
	}
	if err := infrastructure.CloseLogFile(); err != nil && first == nil {
		first = err
	}
	return first
}

// RunChart aggregates the roster at input and writes the stacked bar chart
// workbook to output. An empty output uses the configured chart path.
func (a *Application) RunChart(ctx context.Context, input, output string) error {
	ctx, span := a.Telemetry.Tracer.Start(infrastructure.EnsureRunID(ctx), "gradebook.chart")
	defer span.End()

	if output == "" {
		output = a.Config.Chart.OutputPath
	}

	err := a.runChart(ctx, input, output)
	return a.finish(ctx, "chart", err)
}

func (a *Application) runChart(ctx context.Context, input, output string) error {
	if err := a.Validator.ValidateOutputFile(output, ".xlsx"); err != nil {
		return err
	}

	ranking, err := a.rank(ctx, input)
	if err != nil {
		return err
	}

	if err := a.Validator.EnsureOutputDirectory(output); err != nil {
		return err
	}

	ctx, span := a.Telemetry.Tracer.Start(ctx, "report.chart")
	defer span.End()

	renderer := report.NewChartRenderer(a.Config.Chart, infrastructure.WithComponent(a.Logger, "report"))
	if err := renderer.Render(ctx, ranking, output); err != nil {
		infrastructure.RecordError(ctx, err)
		return err
	}
	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{"output": output})
	return nil
}

// RunStats prints per-student statistics for the roster at input. When
// csvOut is set the statistics are also exported there.
func (a *Application) RunStats(ctx context.Context, input, csvOut string) error {
	ctx, span := a.Telemetry.Tracer.Start(infrastructure.EnsureRunID(ctx), "gradebook.stats")
	defer span.End()

	err := a.runStats(ctx, input, csvOut)
	return a.finish(ctx, "stats", err)
}

func (a *Application) runStats(ctx context.Context, input, csvOut string) error {
	table, err := a.load(ctx, input)
	if err != nil {
		return err
	}

	stats, err := a.describe(ctx, table)
	if err != nil {
		return err
	}

	if err := report.WriteStatistics(a.Out, stats); err != nil {
		return fmt.Errorf("failed to print statistics: %w", err)
	}

	if csvOut != "" {
		exp := exporter.NewStatisticsExporter(infrastructure.WithComponent(a.Logger, "exporter"))
		if err := exp.ExportStatistics(stats, csvOut); err != nil {
			return err
		}
	}
	return nil
}

// RunRank prints the ranking table for the roster at input. When csvOut is
// set the ranking is also exported there.
func (a *Application) RunRank(ctx context.Context, input, csvOut string) error {
	ctx, span := a.Telemetry.Tracer.Start(infrastructure.EnsureRunID(ctx), "gradebook.rank")
	defer span.End()

	err := a.runRank(ctx, input, csvOut)
	return a.finish(ctx, "rank", err)
}

func (a *Application) runRank(ctx context.Context, input, csvOut string) error {
	ranking, err := a.rank(ctx, input)
	if err != nil {
		return err
	}

	report.WriteRanking(a.Out, ranking)

	if csvOut != "" {
		exp := exporter.NewRankingExporter(infrastructure.WithComponent(a.Logger, "exporter"))
		if err := exp.ExportRanking(ranking, csvOut); err != nil {
			return err
		}
	}
	return nil
}

// load validates and reads the roster. An empty input uses the configured path.
func (a *Application) load(ctx context.Context, input string) (*roster.Table, error) {
	if input == "" {
		input = a.Config.Roster.Path
	}

	ctx, span := a.Telemetry.Tracer.Start(ctx, "roster.load")
	defer span.End()

	if err := a.Validator.ValidateRoster(input); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	table, err := roster.Load(ctx, input, a.rosterOptions())
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	a.Telemetry.Metrics.RowsRead.Add(ctx, int64(len(table.Rows)))
	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"path":    input,
		"rows":    len(table.Rows),
		"columns": len(table.Header),
	})
	return table, nil
}

func (a *Application) rosterOptions() roster.Options {
	opts := roster.Options{
		TrimLeadingSpace: a.Config.Roster.TrimLeadingSpace,
		Sheet:            a.Config.Roster.Sheet,
		Logger:           infrastructure.WithComponent(a.Logger, "roster"),
	}
	if r, _ := utf8.DecodeRuneInString(a.Config.Roster.Delimiter); r != utf8.RuneError {
		opts.Delimiter = r
	}
	return opts
}

func (a *Application) rank(ctx context.Context, input string) (*grading.Ranking, error) {
	table, err := a.load(ctx, input)
	if err != nil {
		return nil, err
	}

	ctx, span := a.Telemetry.Tracer.Start(ctx, "grading.aggregate")
	defer span.End()

	ranking, err := grading.Aggregate(table, grading.Identity{
		IDColumn:   a.Config.Roster.IDColumn,
		NameColumn: a.Config.Roster.NameColumn,
	})
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	a.Telemetry.Metrics.FieldsCoerced.Add(ctx, int64(ranking.Coerced))
	a.Telemetry.Metrics.ExamsSeen.Record(ctx, int64(len(ranking.Exams)))
	a.Telemetry.Metrics.StudentsRanked.Add(ctx, int64(len(ranking.Records)))

	a.Logger.InfoContext(ctx, "Roster aggregated",
		slog.Int("students", len(ranking.Records)),
		slog.Int("exams", len(ranking.Exams)),
		slog.Int("fields_coerced", ranking.Coerced))
	return ranking, nil
}

func (a *Application) describe(ctx context.Context, table *roster.Table) ([]grading.StudentStats, error) {
	ctx, span := a.Telemetry.Tracer.Start(ctx, "grading.statistics")
	defer span.End()

	stats, err := grading.Describe(table)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	coerced := 0
	for _, st := range stats {
		coerced += st.Coerced
	}
	a.Telemetry.Metrics.FieldsCoerced.Add(ctx, int64(coerced))
	a.Telemetry.Metrics.ExamsSeen.Record(ctx, int64(len(table.Header)-2))

	a.Logger.InfoContext(ctx, "Statistics computed",
		slog.Int("students", len(stats)),
		slog.Int("fields_coerced", coerced))
	return stats, nil
}

// finish logs the outcome of a pipeline once and counts failures.
func (a *Application) finish(ctx context.Context, pipeline string, err error) error {
	if err == nil {
		a.Logger.InfoContext(ctx, "Pipeline completed", slog.String("pipeline", pipeline))
		return nil
	}

	infrastructure.RecordError(ctx, err)
	a.Telemetry.Metrics.Failures.Add(ctx, 1,
		metric.WithAttributes(attribute.String("pipeline", pipeline)))
	a.Logger.ErrorContext(ctx, "Pipeline failed",
		slog.String("pipeline", pipeline),
		slog.String("error", err.Error()))
	return err
}
