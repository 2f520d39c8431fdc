package roster

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"gradebook/internal/errors"
)

// readWorkbook reads the rows of one sheet of an Excel workbook. Blank rows
// are dropped, matching how blank lines are skipped in delimited files.
func readWorkbook(path, sheet string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFileError("cannot open roster", err).WithContext("path", path)
	}
	defer file.Close()

	wb, err := excelize.OpenReader(file)
	if err != nil {
		return nil, errors.NewParsingError("roster is not a readable workbook", err).WithContext("path", path)
	}
	defer wb.Close()

	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.NewParsingError("workbook has no sheets", nil).WithContext("path", path)
		}
		sheet = sheets[0]
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("cannot read sheet %q", sheet), err).WithContext("path", path)
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		records = append(records, row)
	}
	return records, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
