package demo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimegrid/patrolboard/internal/model"
)

func TestGenerateIncidents(t *testing.T) {
	t.Parallel()

	incidents := GenerateIncidents(DefaultIncidentCount)

	// 150 random plus 3 clusters of 20.
	require.Len(t, incidents, DefaultIncidentCount+60)

	clusterNames := map[string]int{}
	for _, inc := range incidents {
		assert.NotEmpty(t, inc.ID)
		assert.NotEmpty(t, inc.Location)
		assert.InDelta(t, DemoCity.CenterLat, inc.Latitude, 0.2)
		assert.InDelta(t, DemoCity.CenterLng, inc.Longitude, 0.2)

		if strings.HasPrefix(inc.ID, "INC-HOTSPOT-") {
			clusterNames[inc.Location]++
			// Cluster incidents are always open so the gap rule can fire.
			assert.Equal(t, model.StatusOpen, inc.Status)
		}
	}

	require.Len(t, clusterNames, 3)
	for name, n := range clusterNames {
		assert.Equal(t, 20, n, "cluster %s", name)
	}
}

func TestGenerateIncidentsUniqueIDs(t *testing.T) {
	t.Parallel()

	incidents := GenerateIncidents(50)
	seen := make(map[string]bool, len(incidents))
	for _, inc := range incidents {
		assert.False(t, seen[inc.ID], "duplicate id %s", inc.ID)
		seen[inc.ID] = true
	}
}

func TestDefaultUnits(t *testing.T) {
	t.Parallel()

	units := DefaultUnits()
	require.Len(t, units, 5)
	assert.Equal(t, "UNIT-01", units[0].ID)
	assert.Equal(t, model.UnitOffDuty, units[4].Status)
}

func TestLoadUnitsFromYAML(t *testing.T) {
	t.Parallel()

	content := `
- id: UNIT-11
  name: Kilo-11
  latitude: 40.71
  longitude: -74.0
  status: AVAILABLE
- id: UNIT-12
  name: Lima-12
  latitude: 40.72
  longitude: -74.01
  status: RESPONDING
`
	path := filepath.Join(t.TempDir(), "units.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	units, err := LoadUnits(path)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "Kilo-11", units[0].Name)
	assert.Equal(t, model.UnitResponding, units[1].Status)
}

func TestLoadUnitsEmptyPath(t *testing.T) {
	t.Parallel()

	units, err := LoadUnits("")
	require.NoError(t, err)
	assert.Len(t, units, 5)
}

func TestLoadUnitsMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadUnits(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
