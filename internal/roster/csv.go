package roster

import (
	"bufio"
	"encoding/csv"
	stderrors "errors"
	"os"

	"gradebook/internal/errors"
)

// readDelimited reads every record of a delimited text file. The file is
// closed before returning on every path.
func readDelimited(path string, opts Options) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFileError("cannot open roster", err).WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1 // ragged rows are padded or rejected by buildTable
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = opts.TrimLeadingSpace

	records, err := reader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if stderrors.As(err, &parseErr) {
			return nil, errors.NewParsingError("malformed roster row", err).
				WithContext("path", path).
				WithContext("line", parseErr.Line)
		}
		return nil, errors.NewFileError("cannot read roster", err).WithContext("path", path)
	}

	return records, nil
}
