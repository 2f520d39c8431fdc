package exporter

import (
	"log/slog"

	"gradebook/internal/grading"
)

// RankingExporter writes the ranked roster as CSV
type RankingExporter struct {
	csvWriter *CSVWriter
}

// NewRankingExporter creates a new ranking exporter
func NewRankingExporter(logger *slog.Logger) *RankingExporter {
	return &RankingExporter{csvWriter: NewCSVWriter(logger)}
}

// ExportRanking writes one row per student, best total first, with one mark
// column per exam in alphabetical order.
func (r *RankingExporter) ExportRanking(ranking *grading.Ranking, outputPath string) error {
	records := make([][]string, 0, len(ranking.Records))
	for i, rec := range ranking.Records {
		row := []string{formatInt(i + 1), rec.Identifier, rec.Name}
		for _, mark := range ranking.Marks[i] {
			row = append(row, formatInt(mark))
		}
		row = append(row, formatInt(rec.Total))
		records = append(records, row)
	}
	return r.csvWriter.WriteSimpleCSV(outputPath, r.getHeaders(ranking), records)
}

func (r *RankingExporter) getHeaders(ranking *grading.Ranking) []string {
	headers := []string{"Rank", "Roll_Number", "Name"}
	headers = append(headers, ranking.Exams...)
	return append(headers, "Total")
}
