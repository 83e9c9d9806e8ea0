// Package demo generates the synthetic dataset the dashboard starts with
// before any upload.
package demo

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/crimegrid/patrolboard/internal/model"
)

// City describes the default demo viewport.
type City struct {
	Name      string
	CenterLat float64
	CenterLng float64
	Zoom      int
}

// DemoCity is the London viewport used until a dataset is uploaded.
var DemoCity = City{
	Name:      "London, UK",
	CenterLat: 51.5074,
	CenterLng: -0.1278,
	Zoom:      13,
}

// DefaultIncidentCount is the size of the random portion of the demo set;
// the hotspot clusters come on top.
const DefaultIncidentCount = 150

var demoTypes = []model.CrimeType{
	model.CrimeMurder, model.CrimeAssault, model.CrimeRobbery,
	model.CrimeBurglary, model.CrimeTheft, model.CrimeVehicleTheft,
	model.CrimeCyber, model.CrimeFraud, model.CrimeVandalism,
	model.CrimeDrugOffense,
}

var propertyTypes = []model.CrimeType{
	model.CrimeTheft, model.CrimeBurglary, model.CrimeVehicleTheft,
}

var demoStatuses = []model.IncidentStatus{
	model.StatusOpen, model.StatusClosed, model.StatusUnderInvestigation,
}

// hotspotSites are fixed clusters layered on top of the random incidents so
// the insight rules have something to find out of the box.
var hotspotSites = []struct {
	lat, lng float64
	name     string
}{
	{51.5155, -0.0922, "East London"},
	{51.4975, -0.1357, "Central Westminster"},
	{51.5074, -0.0877, "City of London"},
}

// GenerateIncidents builds count random incidents around the demo city plus
// 20 OPEN incidents per hotspot cluster. Property crime is overweighted to
// mimic real distributions.
func GenerateIncidents(count int) []model.Incident {
	incidents := make([]model.Incident, 0, count+20*len(hotspotSites))
	now := time.Now()

	for i := 0; i < count; i++ {
		ct := demoTypes[rand.IntN(len(demoTypes))]
		if rand.Float64() > 0.7 {
			ct = propertyTypes[rand.IntN(len(propertyTypes))]
		}

		incidents = append(incidents, model.Incident{
			ID:          fmt.Sprintf("INC-%05d", 1000+i),
			Type:        ct,
			Latitude:    DemoCity.CenterLat + randInRange(-0.08, 0.08),
			Longitude:   DemoCity.CenterLng + randInRange(-0.15, 0.15),
			DateTime:    randomPastTime(now, 30),
			Status:      demoStatuses[rand.IntN(len(demoStatuses))],
			Description: fmt.Sprintf("%s incident reported", ct.Label()),
			Location:    fmt.Sprintf("Zone %d", 1+rand.IntN(12)),
		})
	}

	clusterTypes := []model.CrimeType{model.CrimeTheft, model.CrimeRobbery, model.CrimeAssault}
	for idx, site := range hotspotSites {
		for i := 0; i < 20; i++ {
			incidents = append(incidents, model.Incident{
				ID:          fmt.Sprintf("INC-HOTSPOT-%d-%d", idx, i),
				Type:        clusterTypes[rand.IntN(len(clusterTypes))],
				Latitude:    site.lat + randInRange(-0.01, 0.01),
				Longitude:   site.lng + randInRange(-0.01, 0.01),
				DateTime:    randomPastTime(now, 7),
				Status:      model.StatusOpen,
				Description: fmt.Sprintf("Hotspot incident in %s", site.name),
				Location:    site.name,
			})
		}
	}

	return incidents
}

func randInRange(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}

func randomPastTime(now time.Time, daysBack int) time.Time {
	back := time.Duration(rand.Float64() * float64(daysBack) * 24 * float64(time.Hour))
	return now.Add(-back)
}
