package ingest

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/crimegrid/patrolboard/internal/model"
)

// ParseCSV reads comma-delimited incident data with a header row. Structural
// decode failures (broken quoting) return ErrMalformedFile; a decode that
// yields no valid rows returns ErrEmptyDataset. Prior session state is never
// touched here: the caller replaces its incident set only on success.
func ParseCSV(r io.Reader) ([]model.Incident, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // short rows are handled per field

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(ErrMalformedFile, "read csv: %v", err)
	}
	if len(records) < 2 {
		return nil, eris.Wrap(ErrEmptyDataset, "csv has no data rows")
	}

	incidents := rowsToIncidents(records[0], records[1:], time.Now())
	if len(incidents) == 0 {
		return nil, eris.Wrap(ErrEmptyDataset, "all rows failed coordinate validation")
	}
	return incidents, nil
}

// ParseFile dispatches on the file extension: .xlsx uploads go through the
// XLSX reader, everything else is treated as CSV.
func ParseFile(name string, r io.Reader) ([]model.Incident, error) {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, eris.Wrap(err, "ingest: read upload")
		}
		return ParseXLSX(data)
	}
	return ParseCSV(r)
}
