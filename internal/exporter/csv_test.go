package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradebook/internal/errors"
)

func readCSV(t *testing.T, path string) ([]byte, [][]string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))).ReadAll()
	require.NoError(t, err)
	return data, records
}

func TestCSVWriter_WriteSimpleCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	w := NewCSVWriter(nil)

	err := w.WriteSimpleCSV(path, []string{"Name", "Total"}, [][]string{
		{"Alice", "80"},
		{"Smith, Jo", "70"},
	})
	require.NoError(t, err)

	data, records := readCSV(t, path)
	assert.True(t, bytes.HasPrefix(data, utf8BOM))
	assert.Equal(t, [][]string{
		{"Name", "Total"},
		{"Alice", "80"},
		{"Smith, Jo", "70"},
	}, records)
}

func TestCSVWriter_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := NewCSVWriter(nil)

	require.NoError(t, w.WriteSimpleCSV(path, []string{"Name"}, [][]string{{"Alice"}, {"Bob"}}))
	require.NoError(t, w.WriteCSV(path, WriteOptions{Headers: []string{"Name"}, Records: [][]string{{"Carol"}}}))

	data, records := readCSV(t, path)
	assert.False(t, bytes.HasPrefix(data, utf8BOM))
	assert.Equal(t, [][]string{{"Name"}, {"Carol"}}, records)
}

func TestCSVWriter_StorageError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := NewCSVWriter(nil).WriteSimpleCSV(filepath.Join(blocker, "out.csv"), nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeStorage))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "13.40", formatFloat(13.4))
	assert.Equal(t, "8.16", formatFloat(8.164965809))
	assert.Equal(t, "0.00", formatFloat(0))
	assert.Equal(t, "42", formatInt(42))
}
