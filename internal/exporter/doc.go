// Package exporter writes grading results as CSV files.
//
// CSVWriter is the shared writer; it creates parent directories and prefixes
// fresh files with a UTF-8 BOM so Excel opens them with the right encoding.
// StatisticsExporter and RankingExporter turn grading results into rows.
//
//	exp := exporter.NewRankingExporter(logger)
//	if err := exp.ExportRanking(ranking, "out/ranking.csv"); err != nil {
//	    return err
//	}
package exporter
