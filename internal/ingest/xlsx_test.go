package ingest

import (
	"bytes"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/crimegrid/patrolboard/internal/model"
)

func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("incidents")
	require.NoError(t, err)

	for _, cells := range rows {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().Value = v
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, [][]string{
		{"LATITUDE", "LONGITUDE", "CRIME_TYPE", "STATUS"},
		{"51.5074", "-0.1278", "LARCENY", "CLOSED"},
		{"bogus", "-0.1", "THEFT", "OPEN"},
	})

	incidents, err := ParseXLSX(data)
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Equal(t, model.CrimeTheft, incidents[0].Type)
	assert.Equal(t, model.StatusClosed, incidents[0].Status)
}

func TestParseXLSXNotAWorkbook(t *testing.T) {
	t.Parallel()

	_, err := ParseXLSX([]byte("definitely not a zip"))
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMalformedFile))
}

func TestParseFileDispatch(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, [][]string{
		{"lat", "lon"},
		{"51.5", "-0.12"},
	})

	incidents, err := ParseFile("upload.XLSX", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, incidents, 1)

	incidents, err = ParseFile("upload.csv", bytes.NewReader([]byte("lat,lon\n51.5,-0.12\n")))
	require.NoError(t, err)
	assert.Len(t, incidents, 1)
}
