// Package analytics reduces incident sets into statistics snapshots and
// rule-based tactical insights. Everything here is a pure function of its
// inputs, safe to recompute on every read.
package analytics

import (
	"sort"

	"github.com/crimegrid/patrolboard/internal/model"
)

// trendDays caps the daily series to the most recent distinct dates present
// in the data. Earlier days are dropped outright, not merged.
const trendDays = 30

// ComputeStats aggregates an incident set into a CrimeStats snapshot.
// ByType always carries all canonical type keys, zero-filled, so consumers
// never need to probe for missing keys.
func ComputeStats(incidents []model.Incident) model.CrimeStats {
	stats := model.CrimeStats{
		TotalIncidents: len(incidents),
		ByType:         make(map[model.CrimeType]int, len(model.AllCrimeTypes)),
	}
	for _, ct := range model.AllCrimeTypes {
		stats.ByType[ct] = 0
	}

	byDay := make(map[string]int)
	for _, inc := range incidents {
		stats.ByType[inc.Type]++
		stats.ByHour[inc.DateTime.Hour()]++
		byDay[inc.DateTime.UTC().Format("2006-01-02")]++

		switch inc.Status {
		case model.StatusOpen:
			stats.OpenCases++
		case model.StatusClosed:
			stats.ClosedCases++
		}
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	if len(days) > trendDays {
		days = days[len(days)-trendDays:]
	}

	stats.ByDay = make([]model.DayCount, 0, len(days))
	for _, day := range days {
		stats.ByDay = append(stats.ByDay, model.DayCount{Date: day, Count: byDay[day]})
	}
	return stats
}
