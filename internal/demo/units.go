package demo

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/crimegrid/patrolboard/internal/model"
)

// DefaultUnits is the built-in patrol roster. Units are static for a session
// and never derived from incident data.
func DefaultUnits() []model.PatrolUnit {
	return []model.PatrolUnit{
		{ID: "UNIT-01", Name: "Alpha-1", Latitude: 51.5080, Longitude: -0.1200, Status: model.UnitOnPatrol},
		{ID: "UNIT-02", Name: "Bravo-2", Latitude: 51.5150, Longitude: -0.0950, Status: model.UnitAvailable},
		{ID: "UNIT-03", Name: "Charlie-3", Latitude: 51.5000, Longitude: -0.1400, Status: model.UnitResponding},
		{ID: "UNIT-04", Name: "Delta-4", Latitude: 51.5200, Longitude: -0.1100, Status: model.UnitOnPatrol},
		{ID: "UNIT-05", Name: "Echo-5", Latitude: 51.4950, Longitude: -0.1000, Status: model.UnitOffDuty},
	}
}

// LoadUnits reads a patrol roster from a YAML file. An empty path returns the
// built-in roster.
func LoadUnits(path string) ([]model.PatrolUnit, error) {
	if path == "" {
		return DefaultUnits(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "demo: read units file")
	}

	var units []model.PatrolUnit
	if err := yaml.Unmarshal(data, &units); err != nil {
		return nil, eris.Wrap(err, "demo: parse units file")
	}
	if len(units) == 0 {
		return nil, eris.New("demo: units file has no entries")
	}
	return units, nil
}
