package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"gradebook/internal/config"
	"gradebook/internal/errors"
	"gradebook/internal/grading"
)

// DefaultTitle is used when the chart configuration leaves the title empty.
const DefaultTitle = config.DefaultChartTitle

// ChartRenderer writes a ranking to an Excel workbook holding the data and a
// native horizontal stacked bar chart over it.
type ChartRenderer struct {
	logger *slog.Logger
	sheet  string
	title  string
}

// NewChartRenderer creates a chart renderer
func NewChartRenderer(cfg config.ChartConfig, logger *slog.Logger) *ChartRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	r := &ChartRenderer{logger: logger, sheet: cfg.Sheet, title: cfg.Title}
	if r.sheet == "" {
		r.sheet = config.DefaultChartSheet
	}
	if r.title == "" {
		r.title = DefaultTitle
	}
	return r
}

// Render saves the workbook at path. The data sheet has one row per student
// in ranking order: name, one column per exam alphabetically, the total and
// a "Name (Total: N)" label. The chart draws one bar per student with that
// label on the category axis, and one segment per exam coloured along the
// viridis map.
func (r *ChartRenderer) Render(ctx context.Context, ranking *grading.Ranking, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), r.sheet); err != nil {
		return errors.NewValidationError("invalid chart sheet name", err).WithContext("sheet", r.sheet)
	}

	if err := r.writeData(f, ranking); err != nil {
		return errors.NewStorageError("failed to write chart data", err).WithContext("path", path)
	}

	if len(ranking.Exams) == 0 || len(ranking.Records) == 0 {
		r.logger.WarnContext(ctx, "Nothing to plot, writing data sheet only",
			slog.Int("students", len(ranking.Records)),
			slog.Int("exams", len(ranking.Exams)))
	} else if err := f.AddChart(r.sheet, r.anchorCell(ranking), r.chart(ranking)); err != nil {
		return errors.NewStorageError("failed to add chart", err).WithContext("path", path)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError("failed to save chart workbook", err).WithContext("path", path)
	}

	r.logger.InfoContext(ctx, "Chart written",
		slog.String("path", path),
		slog.Int("students", len(ranking.Records)),
		slog.Int("exams", len(ranking.Exams)))
	return nil
}

func (r *ChartRenderer) writeData(f *excelize.File, ranking *grading.Ranking) error {
	header := []interface{}{"Student"}
	for _, exam := range ranking.Exams {
		header = append(header, exam)
	}
	header = append(header, "Total", "Label")
	if err := f.SetSheetRow(r.sheet, "A1", &header); err != nil {
		return err
	}

	for i, name := range ranking.Students {
		row := []interface{}{name}
		for _, mark := range ranking.Marks[i] {
			row = append(row, mark)
		}
		row = append(row, ranking.Totals[i], barLabel(name, ranking.Totals[i]))

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(r.sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (r *ChartRenderer) chart(ranking *grading.Ranking) *excelize.Chart {
	n := len(ranking.Students)
	labelCol := len(ranking.Exams) + 3
	colors := Viridis(len(ranking.Exams))

	series := make([]excelize.ChartSeries, len(ranking.Exams))
	for j := range ranking.Exams {
		col := j + 2
		series[j] = excelize.ChartSeries{
			Name:       r.ref(col, 1, col, 1),
			Categories: r.ref(labelCol, 2, labelCol, n+1),
			Values:     r.ref(col, 2, col, n+1),
			Fill:       excelize.Fill{Type: "pattern", Color: []string{colors[j]}, Pattern: 1},
		}
	}

	overlap := 100
	return &excelize.Chart{
		Type:      excelize.BarStacked,
		Series:    series,
		Title:     []excelize.RichTextRun{{Text: r.title}},
		Legend:    excelize.ChartLegend{Position: "right", ShowLegendKey: true},
		Dimension: excelize.ChartDimension{Width: 960, Height: uint(160 + 28*n)},
		XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Students"}}},
		YAxis: excelize.ChartAxis{
			Title:          []excelize.RichTextRun{{Text: "Marks"}},
			MajorGridLines: true,
		},
		Overlap:      &overlap,
		ShowBlanksAs: "zero",
	}
}

// barLabel names the student and annotates the bar with its total.
func barLabel(name string, total int) string {
	return fmt.Sprintf("%s (Total: %d)", name, total)
}

// anchorCell places the chart two columns right of the data.
func (r *ChartRenderer) anchorCell(ranking *grading.Ranking) string {
	cell, _ := excelize.CoordinatesToCellName(len(ranking.Exams)+5, 2)
	return cell
}

// ref builds an absolute range reference on the data sheet, e.g. 'Marks'!$B$2:$B$4.
func (r *ChartRenderer) ref(col1, row1, col2, row2 int) string {
	from, _ := excelize.CoordinatesToCellName(col1, row1, true)
	to, _ := excelize.CoordinatesToCellName(col2, row2, true)
	sheet := "'" + strings.ReplaceAll(r.sheet, "'", "''") + "'"
	if from == to {
		return sheet + "!" + from
	}
	return sheet + "!" + from + ":" + to
}
