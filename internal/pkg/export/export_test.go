package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var sample = Table{
	Header: []string{"Date", "Employee ID", "Name"},
	Rows: [][]string{
		{"2024-03-04", "EMP001", "Ana, Jr."},
		{"2024-03-04", "EMP002", "Ben"},
	},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, sample))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, sample.Header, records[0])
	assert.Equal(t, "Ana, Jr.", records[1][2])
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, Table{Header: sample.Header}))

	assert.Equal(t, "Date,Employee ID,Name\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteXLSX(&buf, sample))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, sample.Header, rows[0])
	assert.Equal(t, []string{"2024-03-04", "EMP002", "Ben"}, rows[2])
}
