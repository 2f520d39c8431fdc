// Package roster reads a table of student marks into typed rows.
//
// The first record of the file is the header. Every following record becomes
// a Row whose Fields follow header order; a record that stops early is padded
// with fields marked absent, and a record with more fields than the header is
// rejected as a parsing error. Delimited text files are read with
// encoding/csv, Excel workbooks with excelize.
//
//	table, err := roster.Load(ctx, "main.csv", roster.Options{})
//	if err != nil {
//	    return err
//	}
//	for _, row := range table.Rows {
//	    name, _ := row.Value("Name")
//	    ...
//	}
package roster
