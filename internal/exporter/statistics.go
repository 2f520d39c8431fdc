package exporter

import (
	"log/slog"

	"gradebook/internal/grading"
)

// StatisticsExporter writes per-student statistics as CSV
type StatisticsExporter struct {
	csvWriter *CSVWriter
}

// NewStatisticsExporter creates a new statistics exporter
func NewStatisticsExporter(logger *slog.Logger) *StatisticsExporter {
	return &StatisticsExporter{csvWriter: NewCSVWriter(logger)}
}

// ExportStatistics writes one row per student in roster order.
func (s *StatisticsExporter) ExportStatistics(stats []grading.StudentStats, outputPath string) error {
	records := make([][]string, 0, len(stats))
	for _, st := range stats {
		records = append(records, s.statsToCSVRow(st))
	}
	return s.csvWriter.WriteSimpleCSV(outputPath, s.getHeaders(), records)
}

func (s *StatisticsExporter) getHeaders() []string {
	return []string{"Student", "Roll_Number", "Name", "Exams", "Mean", "Median", "StdDev"}
}

func (s *StatisticsExporter) statsToCSVRow(st grading.StudentStats) []string {
	return []string{
		formatInt(st.Index),
		st.Identifier,
		st.Name,
		formatInt(st.Count),
		formatFloat(st.Mean),
		formatFloat(st.Median),
		formatFloat(st.StdDev),
	}
}
