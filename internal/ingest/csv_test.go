package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimegrid/patrolboard/internal/model"
)

func TestParseCSVBasic(t *testing.T) {
	t.Parallel()

	csv := `LATITUDE, LONGITUDE, CRIME_TYPE, DATE_TIME, STATUS
51.5074, -0.1278, THEFT, 2024-01-15 14:30, OPEN
51.5155, -0.0922, ASSAULT, 2024-01-15 23:45, CLOSED
51.4975, -0.1357, BURGLARY, 2024-01-16 02:15, UNDER_INVESTIGATION
`
	incidents, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, incidents, 3)

	first := incidents[0]
	assert.Equal(t, "UPLOADED-0", first.ID)
	assert.Equal(t, model.CrimeTheft, first.Type)
	assert.InDelta(t, 51.5074, first.Latitude, 1e-9)
	assert.InDelta(t, -0.1278, first.Longitude, 1e-9)
	assert.Equal(t, model.StatusOpen, first.Status)
	assert.Equal(t, time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC), first.DateTime)

	assert.Equal(t, model.StatusClosed, incidents[1].Status)
	assert.Equal(t, model.StatusUnderInvestigation, incidents[2].Status)
}

func TestParseCSVHeaderAliases(t *testing.T) {
	t.Parallel()

	// Every recognized lat/lng alias variant yields an identical incident.
	headers := []string{
		"LATITUDE,LONGITUDE,CRIME_TYPE",
		"latitude,longitude,type",
		"Latitude,Longitude,CrimeType",
		"lat,lon,crime_type",
		"lat,lng,type",
	}

	for _, header := range headers {
		t.Run(header, func(t *testing.T) {
			t.Parallel()
			csv := header + "\n51.5,-0.12,ROBBERY\n"
			incidents, err := ParseCSV(strings.NewReader(csv))
			require.NoError(t, err)
			require.Len(t, incidents, 1)
			assert.InDelta(t, 51.5, incidents[0].Latitude, 1e-9)
			assert.InDelta(t, -0.12, incidents[0].Longitude, 1e-9)
			assert.Equal(t, model.CrimeRobbery, incidents[0].Type)
		})
	}
}

func TestParseCSVDropsInvalidCoordinates(t *testing.T) {
	t.Parallel()

	csv := `lat,lon,type
51.5,-0.12,THEFT
not-a-number,-0.12,THEFT
51.5,,THEFT
NaN,-0.12,THEFT
51.6,-0.13,FRAUD
`
	incidents, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)

	// 5 rows, 3 invalid: exactly 2 incidents survive.
	require.Len(t, incidents, 2)
	assert.Equal(t, model.CrimeTheft, incidents[0].Type)
	assert.Equal(t, model.CrimeFraud, incidents[1].Type)
	// Synthetic ids keep their original row position.
	assert.Equal(t, "UPLOADED-4", incidents[1].ID)
}

func TestParseCSVEmptyDataset(t *testing.T) {
	t.Parallel()

	csv := "lat,lon\nabc,def\nxyz,123abc\n"
	_, err := ParseCSV(strings.NewReader(csv))
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrEmptyDataset))
}

func TestParseCSVHeaderOnly(t *testing.T) {
	t.Parallel()

	_, err := ParseCSV(strings.NewReader("lat,lon,type\n"))
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrEmptyDataset))
}

func TestParseCSVMalformed(t *testing.T) {
	t.Parallel()

	// Unterminated quote breaks the tabular decode itself.
	csv := "lat,lon,type\n\"51.5,-0.12,THEFT\n"
	_, err := ParseCSV(strings.NewReader(csv))
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMalformedFile))
}

func TestParseCSVDefaults(t *testing.T) {
	t.Parallel()

	csv := `lat,lon
51.5,-0.12
`
	before := time.Now()
	incidents, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, incidents, 1)

	inc := incidents[0]
	assert.Equal(t, model.CrimeOther, inc.Type)
	assert.Equal(t, model.StatusOpen, inc.Status)
	assert.Equal(t, "UPLOADED-0", inc.ID)
	assert.Empty(t, inc.Description)
	assert.Empty(t, inc.Location)
	// Missing date defaults to parse-time now.
	assert.False(t, inc.DateTime.Before(before))
}

func TestParseCSVExplicitID(t *testing.T) {
	t.Parallel()

	csv := `ID,lat,lon,type,LOCATION,DESCRIPTION
CASE-7,51.5,-0.12,theft,Soho,bike stolen
`
	incidents, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Equal(t, "CASE-7", incidents[0].ID)
	assert.Equal(t, "Soho", incidents[0].Location)
	assert.Equal(t, "bike stolen", incidents[0].Description)
}

func TestParseCSVUnrecognizedStatus(t *testing.T) {
	t.Parallel()

	csv := "lat,lon,STATUS\n51.5,-0.12,ARCHIVED\n"
	incidents, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Equal(t, model.StatusOpen, incidents[0].Status)
}

func TestResolveColumnsPrecedence(t *testing.T) {
	t.Parallel()

	// When several aliases are present, the earlier alias in the table wins.
	cols := resolveColumns([]string{"lat", "LATITUDE", "lon", "LONGITUDE"})
	assert.Equal(t, 1, cols[fieldLat])
	assert.Equal(t, 3, cols[fieldLng])

	// Absent fields stay unmapped.
	_, ok := cols[fieldStatus]
	assert.False(t, ok)
}

func TestParseDateTimeLayouts(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-15 14:30", time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)},
		{"2024-01-15 14:30:45", time.Date(2024, 1, 15, 14, 30, 45, 0, time.UTC)},
		{"2024-01-15T14:30:45Z", time.Date(2024, 1, 15, 14, 30, 45, 0, time.UTC)},
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"garbage", now},
		{"", now},
	}

	for _, tt := range tests {
		assert.True(t, parseDateTime(tt.in, now).Equal(tt.want), "input %q", tt.in)
	}
}
