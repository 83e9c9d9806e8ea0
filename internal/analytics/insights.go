package analytics

import (
	"fmt"
	"math"

	"github.com/crimegrid/patrolboard/internal/model"
)

// Fixed rule thresholds. These are part of the contract: hotspot and gap
// counts are strict greater-than, violent share is strict as well.
const (
	hotspotMinCount = 10
	violentShare    = 0.15
	resourceGapOpen = 5
	unknownLocation = "Unknown"
)

// locationBucket accumulates per-location counts for the hotspot rules.
type locationBucket struct {
	name  string
	count int
	types []model.CrimeType
}

// GenerateInsights runs the fixed rule battery over incidents and their
// stats snapshot. Rules are evaluated unconditionally and emitted in rule
// order (hotspot, trend, violent alert, resource gap), not severity order.
func GenerateInsights(incidents []model.Incident, stats model.CrimeStats) []model.AIInsight {
	var insights []model.AIInsight

	hotspot := findHotspot(incidents)

	// Rule 1: hotspot. Only fires past the strict count threshold.
	if hotspot != nil && hotspot.count > hotspotMinCount {
		dominant := dominantType(hotspot.types)
		insights = append(insights, model.AIInsight{
			ID:       "hotspot-1",
			Type:     model.InsightHotspot,
			Severity: model.SeverityHigh,
			Title:    "High Density Zone Detected",
			Description: fmt.Sprintf("Analysis detects elevated %s activity in %s sector.",
				dominant.Label(), hotspot.name),
			Recommendation: fmt.Sprintf("Increase visible patrolling in %s during peak hours (22:00 - 04:00). Consider deploying additional units.",
				hotspot.name),
			AffectedArea: hotspot.name,
			CrimeType:    dominant,
		})
	}

	// Rule 2: temporal trend. Always emitted; the percentage is defined as 0
	// for an empty dataset.
	peakHour := 0
	for h, n := range stats.ByHour {
		if n > stats.ByHour[peakHour] {
			peakHour = h
		}
	}
	pct := 0
	if stats.TotalIncidents > 0 {
		pct = int(math.Round(float64(stats.ByHour[peakHour]) / float64(stats.TotalIncidents) * 100))
	}
	peakStart := fmt.Sprintf("%02d:00", peakHour)
	peakEnd := fmt.Sprintf("%02d:00", (peakHour+2)%24)
	insights = append(insights, model.AIInsight{
		ID:       "temporal-1",
		Type:     model.InsightTrend,
		Severity: model.SeverityMedium,
		Title:    "Peak Activity Window Identified",
		Description: fmt.Sprintf("Crime frequency peaks between %s and %s. This window accounts for %d%% of all incidents.",
			peakStart, peakEnd, pct),
		Recommendation: fmt.Sprintf("Schedule shift overlaps and enhanced patrol coverage during %s - %s.",
			peakStart, peakEnd),
	})

	// Rule 3: violent crime alert.
	violent := stats.ByType[model.CrimeMurder] + stats.ByType[model.CrimeAssault] + stats.ByType[model.CrimeRobbery]
	if float64(violent) > float64(stats.TotalIncidents)*violentShare {
		insights = append(insights, model.AIInsight{
			ID:       "violent-1",
			Type:     model.InsightAlert,
			Severity: model.SeverityCritical,
			Title:    "Elevated Violent Crime Rate",
			Description: fmt.Sprintf("Violent crimes (Murder, Assault, Robbery) represent %d%% of total incidents.",
				int(math.Round(float64(violent)/float64(stats.TotalIncidents)*100))),
			Recommendation: "Deploy rapid response units. Coordinate with investigative teams for pattern analysis.",
		})
	}

	// Rule 4: resource gap. Counts OPEN cases whose raw location matches the
	// max bucket; the bucket need not have crossed the hotspot threshold
	// above. The match is on the stored location, so incidents without one
	// never count toward an "Unknown" gap.
	if hotspot != nil {
		open := 0
		for _, inc := range incidents {
			if inc.Status == model.StatusOpen && inc.Location == hotspot.name {
				open++
			}
		}
		if open > resourceGapOpen {
			insights = append(insights, model.AIInsight{
				ID:       "gap-1",
				Type:     model.InsightResourceGap,
				Severity: model.SeverityMedium,
				Title:    "Patrol Coverage Gap",
				Description: fmt.Sprintf("%d open cases in %s with limited active patrol presence.",
					open, hotspot.name),
				Recommendation: "Consider redeploying Unit-4 or Unit-5 to cover this sector.",
			})
		}
	}

	return insights
}

func bucketName(location string) string {
	if location == "" {
		return unknownLocation
	}
	return location
}

// findHotspot returns the location bucket with the most incidents, or nil for
// an empty set. Ties keep the first-seen bucket.
func findHotspot(incidents []model.Incident) *locationBucket {
	buckets := make(map[string]*locationBucket)
	var order []*locationBucket

	for _, inc := range incidents {
		name := bucketName(inc.Location)
		b, ok := buckets[name]
		if !ok {
			b = &locationBucket{name: name}
			buckets[name] = b
			order = append(order, b)
		}
		b.count++
		b.types = append(b.types, inc.Type)
	}

	var max *locationBucket
	for _, b := range order {
		if max == nil || b.count > max.count {
			max = b
		}
	}
	return max
}

// dominantType returns the mode of the given types; ties keep the type seen
// first.
func dominantType(types []model.CrimeType) model.CrimeType {
	counts := make(map[model.CrimeType]int)
	var order []model.CrimeType

	for _, ct := range types {
		if _, ok := counts[ct]; !ok {
			order = append(order, ct)
		}
		counts[ct]++
	}

	best := model.CrimeOther
	bestCount := -1
	for _, ct := range order {
		if counts[ct] > bestCount {
			best, bestCount = ct, counts[ct]
		}
	}
	return best
}
