// Package geo derives map framing from incident coordinates.
package geo

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/crimegrid/patrolboard/internal/model"
)

// ComputeBounds frames a non-empty incident set: the center is the midpoint
// of the bounding box per axis (not the centroid, which clustered outliers
// would drag), and zoom is picked from a fixed ladder on the larger axis
// span. Strict thresholds: a span of exactly 1 degree is not "> 1".
func ComputeBounds(incidents []model.Incident) (model.MapBounds, error) {
	if len(incidents) == 0 {
		return model.MapBounds{}, eris.New("geo: no incidents to frame")
	}

	b := geom.NewBounds(geom.XY)
	for _, inc := range incidents {
		b = b.Extend(geom.NewPointFlat(geom.XY, []float64{inc.Longitude, inc.Latitude}))
	}

	minLng, minLat := b.Min(0), b.Min(1)
	maxLng, maxLat := b.Max(0), b.Max(1)

	span := maxLat - minLat
	if lngSpan := maxLng - minLng; lngSpan > span {
		span = lngSpan
	}

	return model.MapBounds{
		CenterLat: (minLat + maxLat) / 2,
		CenterLng: (minLng + maxLng) / 2,
		Zoom:      zoomForSpan(span),
	}, nil
}

func zoomForSpan(span float64) int {
	switch {
	case span > 1:
		return 8
	case span > 0.5:
		return 10
	case span > 0.1:
		return 12
	default:
		return 14
	}
}
