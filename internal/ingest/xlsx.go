package ingest

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/crimegrid/patrolboard/internal/model"
)

// ParseXLSX reads incident data from the first sheet of an XLSX workbook.
// Row one is the header; alias resolution and row conversion are shared with
// the CSV path.
func ParseXLSX(data []byte) ([]model.Incident, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, eris.Wrapf(ErrMalformedFile, "open xlsx: %v", err)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Wrap(ErrMalformedFile, "xlsx has no sheets")
	}

	sheet := f.Sheets[0]
	var rows [][]string
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}

	if len(rows) < 2 {
		return nil, eris.Wrap(ErrEmptyDataset, "xlsx has no data rows")
	}

	incidents := rowsToIncidents(rows[0], rows[1:], time.Now())
	if len(incidents) == 0 {
		return nil, eris.Wrap(ErrEmptyDataset, "all rows failed coordinate validation")
	}
	return incidents, nil
}
