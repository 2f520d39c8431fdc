package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"gradebook/internal/grading"
)

// WriteStatistics prints the statistics block: a "Statistics:" line followed
// by one line per student in roster order.
func WriteStatistics(w io.Writer, stats []grading.StudentStats) error {
	if _, err := fmt.Fprintln(w, "Statistics:"); err != nil {
		return err
	}
	for _, st := range stats {
		_, err := fmt.Fprintf(w, "Student %d: Mean = %.2f, Median = %s, Standard Deviation = %.2f\n",
			st.Index, st.Mean, FormatMedian(st.Median), st.StdDev)
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatMedian renders a median the way a float literal reads: the shortest
// exact decimal, always with a fractional part ("20.0", "22.5").
func FormatMedian(m float64) string {
	switch {
	case math.IsNaN(m):
		return "nan"
	case math.IsInf(m, 1):
		return "inf"
	case math.IsInf(m, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(m, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// WriteRanking prints the ranking as a table, best total first, with one
// column per exam in alphabetical order.
func WriteRanking(w io.Writer, ranking *grading.Ranking) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)

	header := []string{"Rank", "Roll Number", "Name"}
	header = append(header, ranking.Exams...)
	table.SetHeader(append(header, "Total"))

	for i, rec := range ranking.Records {
		row := []string{strconv.Itoa(i + 1), rec.Identifier, rec.Name}
		for _, mark := range ranking.Marks[i] {
			row = append(row, strconv.Itoa(mark))
		}
		table.Append(append(row, strconv.Itoa(rec.Total)))
	}

	table.Render()
}
