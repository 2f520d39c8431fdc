package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradebook/internal/grading"
)

func TestWriteStatistics(t *testing.T) {
	var buf bytes.Buffer
	err := WriteStatistics(&buf, []grading.StudentStats{
		{Index: 1, Mean: 20, Median: 20, StdDev: math.Sqrt(200.0 / 3)},
		{Index: 2, Mean: 22.5, Median: 22.5, StdDev: 2.5},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"Statistics:\n"+
			"Student 1: Mean = 20.00, Median = 20.0, Standard Deviation = 8.16\n"+
			"Student 2: Mean = 22.50, Median = 22.5, Standard Deviation = 2.50\n",
		buf.String())
}

func TestWriteStatistics_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStatistics(&buf, nil))
	assert.Equal(t, "Statistics:\n", buf.String())
}

func TestFormatMedian(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{20, "20.0"},
		{22.5, "22.5"},
		{0, "0.0"},
		{1234567, "1234567.0"},
		{math.NaN(), "nan"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMedian(tt.in))
	}
}

func TestWriteRanking(t *testing.T) {
	ranking := &grading.Ranking{
		Records: []grading.StudentRecord{
			{Identifier: "3", Name: "Carol", Total: 90},
			{Identifier: "1", Name: "Alice", Total: 80},
			{Identifier: "2", Name: "Bob", Total: 80},
		},
		Students: []string{"Carol", "Alice", "Bob"},
		Exams:    []string{"Math", "Sci"},
		Marks:    [][]int{{90, 0}, {50, 30}, {40, 40}},
		Totals:   []int{90, 80, 80},
	}

	var buf bytes.Buffer
	WriteRanking(&buf, ranking)
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Contains(t, out, "Rank")
	assert.Contains(t, out, "Roll Number")
	assert.Contains(t, out, "Math")
	assert.Contains(t, out, "Total")

	carol := strings.Index(out, "Carol")
	alice := strings.Index(out, "Alice")
	bob := strings.Index(out, "Bob")
	assert.True(t, carol < alice && alice < bob, "rows must follow ranking order")
}
