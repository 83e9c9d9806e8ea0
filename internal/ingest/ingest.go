// Package ingest parses uploaded tabular files (CSV or XLSX) into canonical
// incidents. Field lookup is alias-driven: each logical field has an ordered
// list of accepted header spellings, resolved once against the header row
// before any rows are read.
package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/crimegrid/patrolboard/internal/model"
)

var (
	// ErrMalformedFile means the upload is not decodable as tabular data.
	ErrMalformedFile = eris.New("ingest: malformed file")
	// ErrEmptyDataset means decoding succeeded but no row survived
	// coordinate validation.
	ErrEmptyDataset = eris.New("ingest: no valid rows in dataset")
)

// Logical fields of an incident row.
const (
	fieldLat         = "latitude"
	fieldLng         = "longitude"
	fieldType        = "type"
	fieldDate        = "date"
	fieldStatus      = "status"
	fieldID          = "id"
	fieldDescription = "description"
	fieldLocation    = "location"
)

// fieldAliases holds the accepted header spellings per logical field, in
// precedence order. The first alias present in the header wins.
var fieldAliases = map[string][]string{
	fieldLat:         {"LATITUDE", "latitude", "Latitude", "lat"},
	fieldLng:         {"LONGITUDE", "longitude", "Longitude", "lon", "lng"},
	fieldType:        {"CRIME_TYPE", "crime_type", "CrimeType", "type"},
	fieldDate:        {"DATE_TIME", "datetime", "DateTime", "date", "Date"},
	fieldStatus:      {"STATUS", "status"},
	fieldID:          {"ID", "id"},
	fieldDescription: {"DESCRIPTION", "description"},
	fieldLocation:    {"LOCATION", "location"},
}

// dateLayouts are tried in order when parsing the date/time column.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
}

// columnMap maps a logical field to its column index in the header row.
// Fields with no matching alias are absent from the map.
type columnMap map[string]int

func resolveColumns(header []string) columnMap {
	byName := make(map[string]int, len(header))
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if _, seen := byName[name]; !seen {
			byName[name] = i
		}
	}

	cols := make(columnMap, len(fieldAliases))
	for field, aliases := range fieldAliases {
		for _, alias := range aliases {
			if idx, ok := byName[alias]; ok {
				cols[field] = idx
				break
			}
		}
	}
	return cols
}

func (c columnMap) get(row []string, field string) string {
	idx, ok := c[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// rowsToIncidents converts data rows into incidents. Rows whose coordinates
// do not parse to finite numbers are dropped silently; every other anomaly
// is absorbed with a default.
func rowsToIncidents(header []string, rows [][]string, now time.Time) []model.Incident {
	cols := resolveColumns(header)

	var incidents []model.Incident
	for i, row := range rows {
		lat, latErr := parseCoord(cols.get(row, fieldLat))
		lng, lngErr := parseCoord(cols.get(row, fieldLng))
		if latErr != nil || lngErr != nil {
			continue
		}

		id := cols.get(row, fieldID)
		if id == "" {
			id = fmt.Sprintf("UPLOADED-%d", i)
		}

		incidents = append(incidents, model.Incident{
			ID:          id,
			Type:        model.NormalizeCrimeType(cols.get(row, fieldType)),
			Latitude:    lat,
			Longitude:   lng,
			DateTime:    parseDateTime(cols.get(row, fieldDate), now),
			Status:      model.NormalizeStatus(cols.get(row, fieldStatus)),
			Description: cols.get(row, fieldDescription),
			Location:    cols.get(row, fieldLocation),
		})
	}
	return incidents
}

func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, eris.Errorf("ingest: non-finite coordinate %q", s)
	}
	return v, nil
}

func parseDateTime(s string, now time.Time) time.Time {
	if s == "" {
		return now
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return now
}
