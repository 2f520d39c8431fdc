package grading

import (
	"sort"

	"gradebook/internal/errors"
	"gradebook/internal/roster"
)

// Identity names the two columns that identify a student rather than hold a mark.
type Identity struct {
	IDColumn   string
	NameColumn string
}

// DefaultIdentity is the column pair used by rosters exported from the
// school register.
var DefaultIdentity = Identity{IDColumn: "Roll_Number", NameColumn: "Name"}

func (id Identity) excludes(column string) bool {
	return column == id.IDColumn || column == id.NameColumn
}

// StudentRecord is one student's marks in the order the exam columns were
// first seen. Total is the sum of the normalized marks; zero padding added to
// align the row with later exams never changes it.
type StudentRecord struct {
	Line       int
	Identifier string
	Name       string
	Marks      []int
	Total      int
}

// Ranking is the aggregated roster ready for rendering. Records, Students,
// Marks and Totals share one order: total marks descending, ties keeping file
// order. Exams is alphabetical and Marks[i][j] is the mark of Students[i] in
// Exams[j].
type Ranking struct {
	Records  []StudentRecord
	ExamSet  *ExamSet
	Students []string
	Exams    []string
	Marks    [][]int
	Totals   []int
	// Coerced counts exam fields that were absent or not a clean integer.
	Coerced int
}

// Aggregate builds the ranking of every student in table. Columns other than
// the two identity columns are exams; their values go through Normalize.
// Each exam holds one mark per student even when its header repeats.
func Aggregate(table *roster.Table, identity Identity) (*Ranking, error) {
	for _, column := range []string{identity.IDColumn, identity.NameColumn} {
		if !table.HasColumn(column) {
			return nil, errors.NewParsingError("roster header is missing an identity column", nil).
				WithContext("path", table.Path).
				WithContext("column", column)
		}
	}

	exams := NewExamSet()
	records := make([]StudentRecord, 0, len(table.Rows))
	coerced := 0

	for _, row := range table.Rows {
		record := StudentRecord{Line: row.Line}
		// A repeated column keeps the position of its first occurrence and
		// the value of its last one.
		dirty := make(map[int]bool)
		for _, field := range row.Fields {
			switch field.Column {
			case identity.IDColumn:
				record.Identifier = field.Value
				continue
			case identity.NameColumn:
				record.Name = field.Value
				continue
			}

			exams.Add(field.Column)
			pos, _ := exams.Position(field.Column)
			record.Marks = pad(record.Marks, pos+1)
			record.Marks[pos] = Normalize(field.Value)
			dirty[pos] = !IsClean(field.Value)
		}
		record.Marks = pad(record.Marks, exams.Len())
		for _, mark := range record.Marks {
			record.Total += mark
		}
		for _, d := range dirty {
			if d {
				coerced++
			}
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Total > records[j].Total
	})

	return newRanking(records, exams, coerced), nil
}

func pad(marks []int, size int) []int {
	for len(marks) < size {
		marks = append(marks, 0)
	}
	if marks == nil {
		marks = []int{}
	}
	return marks
}

// newRanking lays the records out for rendering. Marks are stored in
// first-seen exam order, so each alphabetical column is looked up through the
// exam's first-seen position.
func newRanking(records []StudentRecord, exams *ExamSet, coerced int) *Ranking {
	sorted := exams.Sorted()
	perm := make([]int, len(sorted))
	for j, name := range sorted {
		perm[j], _ = exams.Position(name)
	}

	r := &Ranking{
		Records:  records,
		ExamSet:  exams,
		Students: make([]string, len(records)),
		Exams:    sorted,
		Marks:    make([][]int, len(records)),
		Totals:   make([]int, len(records)),
		Coerced:  coerced,
	}
	for i, rec := range records {
		r.Students[i] = rec.Name
		r.Totals[i] = rec.Total
		row := make([]int, len(perm))
		for j, pos := range perm {
			if pos < len(rec.Marks) {
				row[j] = rec.Marks[pos]
			}
		}
		r.Marks[i] = row
	}
	return r
}
