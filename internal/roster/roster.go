package roster

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"gradebook/internal/errors"
)

// Field is one cell of a row, tagged with the header column it belongs to.
// Present is false when the row ended before this column.
type Field struct {
	Column  string
	Value   string
	Present bool
}

// Row is a single data row in header column order. Line is the 1-based
// record number, the header being record 1.
type Row struct {
	Line   int
	Fields []Field
}

// Value returns the raw value of the named column and whether the row carried it.
func (r Row) Value(column string) (string, bool) {
	for _, f := range r.Fields {
		if f.Column == column {
			return f.Value, f.Present
		}
	}
	return "", false
}

// Table is a fully loaded roster: the header plus every data row.
type Table struct {
	Path   string
	Header []string
	Rows   []Row
}

// HasColumn reports whether the header contains column.
func (t *Table) HasColumn(column string) bool {
	for _, h := range t.Header {
		if h == column {
			return true
		}
	}
	return false
}

// Options controls how a roster file is parsed.
type Options struct {
	// Delimiter separates CSV fields. Zero means ','.
	Delimiter rune
	// TrimLeadingSpace ignores leading white space in a CSV field.
	TrimLeadingSpace bool
	// Sheet selects the workbook sheet. Empty means the first sheet.
	Sheet string
	Logger *slog.Logger
}

// Load reads the roster at path. Workbooks (.xlsx, .xlsm) are read with
// excelize, anything else is treated as delimited text.
func Load(ctx context.Context, path string, opts Options) (*Table, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = readWorkbook(path, opts.Sheet)
	default:
		records, err = readDelimited(path, opts)
	}
	if err != nil {
		logger.DebugContext(ctx, "Failed to read roster",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	table, err := buildTable(path, records)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Roster loaded",
		slog.String("path", path),
		slog.Int("columns", len(table.Header)),
		slog.Int("rows", len(table.Rows)))

	return table, nil
}

// buildTable turns raw records into a Table. The first record is the header;
// short rows are padded with absent fields and long rows are rejected.
func buildTable(path string, records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.NewParsingError("roster has no header row", nil).
			WithContext("path", path)
	}

	header := append([]string(nil), records[0]...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	table := &Table{
		Path:   path,
		Header: header,
		Rows:   make([]Row, 0, len(records)-1),
	}

	for i, record := range records[1:] {
		line := i + 2
		if len(record) > len(header) {
			return nil, errors.NewParsingError("row has more fields than the header", nil).
				WithContext("path", path).
				WithContext("line", line).
				WithContext("fields", len(record)).
				WithContext("columns", len(header))
		}

		fields := make([]Field, len(header))
		for j, column := range header {
			fields[j] = Field{Column: column}
			if j < len(record) {
				fields[j].Value = record[j]
				fields[j].Present = true
			}
		}
		table.Rows = append(table.Rows, Row{Line: line, Fields: fields})
	}

	return table, nil
}
