package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw   string
		want  int
		clean bool
	}{
		{"", 0, false},
		{"abc", 0, false},
		{"4.5", 0, false},
		{"-3", 0, false},
		{"+3", 0, false},
		{" 7", 0, false},
		{"7 ", 0, false},
		{"042", 42, true},
		{"0", 0, true},
		{"100", 100, true},
		{"٣", 0, false},
		{"99999999999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
			assert.Equal(t, tt.clean, IsClean(tt.raw))
		})
	}
}

func TestExamSet(t *testing.T) {
	s := NewExamSet()
	assert.Equal(t, 0, s.Len())

	assert.True(t, s.Add("Physics"))
	assert.True(t, s.Add("Algebra"))
	assert.False(t, s.Add("Physics"))
	assert.True(t, s.Add("Chemistry"))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"Algebra", "Chemistry", "Physics"}, s.Sorted())

	pos, ok := s.Position("Physics")
	assert.True(t, ok)
	assert.Equal(t, 0, pos)
	pos, ok = s.Position("Chemistry")
	assert.True(t, ok)
	assert.Equal(t, 2, pos)
	_, ok = s.Position("History")
	assert.False(t, ok)
}
