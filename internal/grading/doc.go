// Package grading turns roster rows into marks, rankings and per-student
// statistics.
//
// Every field goes through Normalize, which keeps a value only when it is a
// plain string of decimal digits and treats everything else as zero.
// Aggregate builds the ranking used by the chart and the ranking table;
// Describe computes mean, median and population standard deviation for each
// row independently of the ranking.
package grading
