package grading

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/wangjohn/quickselect"

	"gradebook/internal/errors"
	"gradebook/internal/roster"
)

// identityFields is the number of leading columns skipped by Describe.
const identityFields = 2

// StudentStats summarizes one roster row. Index is 1-based in file order.
type StudentStats struct {
	Index      int
	Identifier string
	Name       string
	Count      int
	Mean       float64
	Median     float64
	StdDev     float64
	Coerced    int
}

// Describe computes the mean, median and population standard deviation of
// every row's marks. The first two columns are taken to be the roll number and
// name whatever their headers say; every later column is a mark. A header
// that repeats a name counts it once. A roster without any mark column is
// rejected.
func Describe(table *roster.Table) ([]StudentStats, error) {
	columns, index := uniqueColumns(table.Header)
	if len(columns) <= identityFields {
		return nil, errors.NewDegenerateInputError("roster has no exam columns").
			WithContext("path", table.Path).
			WithContext("columns", len(columns))
	}

	out := make([]StudentStats, 0, len(table.Rows))
	for i, row := range table.Rows {
		values := make([]string, len(columns))
		for _, field := range row.Fields {
			values[index[field.Column]] = field.Value
		}

		st := StudentStats{
			Index:      i + 1,
			Identifier: values[0],
			Name:       values[1],
		}

		marks := make([]float64, 0, len(values)-identityFields)
		for _, raw := range values[identityFields:] {
			if !IsClean(raw) {
				st.Coerced++
			}
			marks = append(marks, float64(Normalize(raw)))
		}

		st.Count = len(marks)
		st.Mean, st.StdDev = meanStdDev(marks)
		st.Median = median(marks)
		out = append(out, st)
	}
	return out, nil
}

// uniqueColumns collapses repeated header names to their first position.
// Rows are read last value wins.
func uniqueColumns(header []string) ([]string, map[string]int) {
	index := make(map[string]int, len(header))
	columns := make([]string, 0, len(header))
	for _, name := range header {
		if _, ok := index[name]; ok {
			continue
		}
		index[name] = len(columns)
		columns = append(columns, name)
	}
	return columns, index
}

// meanStdDev returns the mean and the population standard deviation (divisor N).
func meanStdDev(xs []float64) (float64, float64) {
	var s stats.StreamStats
	for _, x := range xs {
		s.Add(x)
	}
	if s.Count < 2 {
		return s.Mean(), 0
	}
	n := float64(s.Count)
	variance := s.Variance() * (n - 1) / n
	return s.Mean(), math.Sqrt(math.Max(variance, 0))
}

// median returns the middle value of xs, or the average of the two middle
// values when the count is even. xs is not modified.
func median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}

	cp := append([]float64(nil), xs...)
	k := n/2 + 1
	if err := quickselect.Float64Slice(cp).QuickSelect(k); err != nil {
		return math.NaN()
	}

	// cp[:k] now holds the k smallest values in no particular order.
	hi, lo := math.Inf(-1), math.Inf(-1)
	for _, x := range cp[:k] {
		switch {
		case x > hi:
			hi, lo = x, hi
		case x > lo:
			lo = x
		}
	}
	if n%2 == 1 {
		return hi
	}
	return (hi + lo) / 2
}
