package grading

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradebook/internal/errors"
)

func TestDescribe(t *testing.T) {
	table := newTable([]string{"Roll_Number", "Name", "E1", "E2", "E3"},
		[]string{"1", "Alice", "10", "20", "30"},
		[]string{"2", "Bob", "15", "abc", "30"},
		[]string{"3", "Carol", "40"},
	)

	got, err := Describe(table)
	require.NoError(t, err)
	require.Len(t, got, 3)

	alice := got[0]
	assert.Equal(t, 1, alice.Index)
	assert.Equal(t, "1", alice.Identifier)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, 3, alice.Count)
	assert.InDelta(t, 20.0, alice.Mean, 1e-9)
	assert.InDelta(t, 20.0, alice.Median, 1e-9)
	assert.InDelta(t, 8.16, alice.StdDev, 0.005)
	assert.Equal(t, 0, alice.Coerced)

	bob := got[1]
	assert.InDelta(t, 15.0, bob.Mean, 1e-9)
	assert.InDelta(t, 15.0, bob.Median, 1e-9)
	assert.InDelta(t, math.Sqrt(150), bob.StdDev, 1e-9)
	assert.Equal(t, 1, bob.Coerced)

	carol := got[2]
	assert.Equal(t, 3, carol.Index)
	assert.InDelta(t, 40.0/3, carol.Mean, 1e-9)
	assert.InDelta(t, 0.0, carol.Median, 1e-9)
	assert.Equal(t, 2, carol.Coerced)
}

func TestDescribe_PositionalColumns(t *testing.T) {
	// The first two columns are skipped whatever they are called.
	table := newTable([]string{"Exam1", "Roll_Number", "Name", "Exam2"},
		[]string{"99", "1", "Alice", "4"},
	)

	got, err := Describe(table)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "99", got[0].Identifier)
	assert.Equal(t, 2, got[0].Count)
	assert.InDelta(t, 2.0, got[0].Median, 1e-9)
	assert.InDelta(t, 2.0, got[0].Mean, 1e-9)
}

func TestDescribe_RepeatedExamHeader(t *testing.T) {
	table := newTable([]string{"Roll_Number", "Name", "Math", "Math", "Sci"},
		[]string{"1", "Alice", "10", "20", "30"},
		[]string{"2", "Bob", "7", "abc", "9"},
	)

	got, err := Describe(table)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 2, got[0].Count)
	assert.InDelta(t, 25.0, got[0].Mean, 1e-9)
	assert.InDelta(t, 25.0, got[0].Median, 1e-9)
	assert.InDelta(t, 5.0, got[0].StdDev, 1e-9)

	// "abc" replaces the earlier Math mark and reads as zero
	assert.InDelta(t, 4.5, got[1].Mean, 1e-9)
	assert.Equal(t, 1, got[1].Coerced)

	_, err = Describe(newTable([]string{"Roll_Number", "Name", "Name"}, []string{"1", "Alice", "Al"}))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeDegenerateInput))
}

func TestDescribe_NoExamColumns(t *testing.T) {
	for _, header := range [][]string{
		{"Roll_Number", "Name"},
		{"Roll_Number"},
		{},
	} {
		_, err := Describe(newTable(header, []string{"1", "Alice"}[:len(header)]))
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeDegenerateInput))
	}
}

func TestDescribe_EmptyRoster(t *testing.T) {
	got, err := Describe(newTable([]string{"Roll_Number", "Name", "Exam"}))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"single", []float64{7}, 7},
		{"odd", []float64{30, 10, 20}, 20},
		{"even", []float64{40, 10, 30, 20}, 25},
		{"even pair", []float64{20, 25}, 22.5},
		{"duplicates", []float64{5, 5, 1, 5}, 5},
		{"all equal", []float64{3, 3, 3, 3, 3}, 3},
		{"zeros", []float64{0, 0, 9}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]float64(nil), tt.in...)
			assert.Equal(t, tt.want, median(in))
			assert.Equal(t, tt.in, in, "input must not be reordered")
		})
	}

	assert.True(t, math.IsNaN(median(nil)))
}

func TestMeanStdDev(t *testing.T) {
	mean, sd := meanStdDev([]float64{10, 20, 30})
	assert.InDelta(t, 20.0, mean, 1e-9)
	assert.InDelta(t, math.Sqrt(200.0/3), sd, 1e-9)

	mean, sd = meanStdDev([]float64{42})
	assert.InDelta(t, 42.0, mean, 1e-9)
	assert.Equal(t, 0.0, sd)

	mean, sd = meanStdDev([]float64{5, 5, 5, 5})
	assert.InDelta(t, 5.0, mean, 1e-9)
	assert.InDelta(t, 0.0, sd, 1e-9)
}
