package grading

import "sort"

// ExamSet accumulates the distinct exam column names seen while scanning a
// roster. It only grows, and it remembers the position at which each exam was
// first seen so marks stored in that order can be looked up by name.
type ExamSet struct {
	positions map[string]int
	order     []string
}

// NewExamSet returns an empty set.
func NewExamSet() *ExamSet {
	return &ExamSet{positions: make(map[string]int)}
}

// Add records name and reports whether it was new.
func (s *ExamSet) Add(name string) bool {
	if _, ok := s.positions[name]; ok {
		return false
	}
	s.positions[name] = len(s.order)
	s.order = append(s.order, name)
	return true
}

// Len returns the number of distinct exams seen so far.
func (s *ExamSet) Len() int {
	return len(s.order)
}

// Position returns the first-seen index of name.
func (s *ExamSet) Position(name string) (int, bool) {
	pos, ok := s.positions[name]
	return pos, ok
}

// Sorted returns the exam names in alphabetical order.
func (s *ExamSet) Sorted() []string {
	names := append([]string(nil), s.order...)
	sort.Strings(names)
	return names
}
