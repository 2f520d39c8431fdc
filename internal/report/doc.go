// Package report renders grading results for people: the stacked bar chart
// workbook, the statistics text block and the ranking table.
package report
