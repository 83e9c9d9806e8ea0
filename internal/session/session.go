// Package session owns the live incident set and everything derived from it.
// State is replaced wholesale on upload or reset, never mutated per incident,
// and statistics/insights are recomputed from the current set on every read
// so they can never go stale.
package session

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/crimegrid/patrolboard/internal/analytics"
	"github.com/crimegrid/patrolboard/internal/demo"
	"github.com/crimegrid/patrolboard/internal/geo"
	"github.com/crimegrid/patrolboard/internal/ingest"
	"github.com/crimegrid/patrolboard/internal/model"
)

// ErrUploadInFlight is returned when an upload starts while another one has
// not finished. Concurrent uploads are rejected rather than queued.
var ErrUploadInFlight = eris.New("session: upload already in flight")

// Meta describes the current dataset for the presentation layer.
type Meta struct {
	CityName     string `json:"city_name"`
	UploadedFile string `json:"uploaded_file,omitempty"`
	Loading      bool   `json:"loading"`
	Total        int    `json:"total"`
}

// Holder is the single owner of session state. All accessors return copies;
// callers never see the internal slices.
type Holder struct {
	mu           sync.Mutex
	loading      bool
	incidents    []model.Incident
	units        []model.PatrolUnit
	bounds       model.MapBounds
	cityName     string
	uploadedFile string
	demoCount    int
}

// New creates a holder seeded with synthetic demo data.
func New(units []model.PatrolUnit, demoCount int) *Holder {
	if demoCount <= 0 {
		demoCount = demo.DefaultIncidentCount
	}
	h := &Holder{units: units, demoCount: demoCount}
	h.resetLocked()
	return h
}

// Upload parses the file and, on success, atomically replaces the incident
// set, bounds and dataset labels. Any failure leaves prior state untouched.
func (h *Holder) Upload(ctx context.Context, filename string, r io.Reader) error {
	h.mu.Lock()
	if h.loading {
		h.mu.Unlock()
		return ErrUploadInFlight
	}
	h.loading = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.loading = false
		h.mu.Unlock()
	}()

	incidents, err := ingest.ParseFile(filename, r)
	if err != nil {
		zap.L().Warn("session: upload rejected",
			zap.String("file", filename),
			zap.Error(err),
		)
		return err
	}
	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "session: upload cancelled")
	}

	bounds, err := geo.ComputeBounds(incidents)
	if err != nil {
		return eris.Wrap(err, "session: frame uploaded incidents")
	}

	h.mu.Lock()
	h.incidents = incidents
	h.bounds = bounds
	h.cityName = fmt.Sprintf("Custom Dataset (%d incidents)", len(incidents))
	h.uploadedFile = filename
	h.mu.Unlock()

	zap.L().Info("session: dataset replaced",
		zap.String("file", filename),
		zap.Int("incidents", len(incidents)),
	)
	return nil
}

// Reset atomically restores freshly generated demo data and the default demo
// viewport.
func (h *Holder) Reset() {
	h.mu.Lock()
	h.resetLocked()
	h.mu.Unlock()

	zap.L().Info("session: reset to demo data")
}

func (h *Holder) resetLocked() {
	h.incidents = demo.GenerateIncidents(h.demoCount)
	h.bounds = model.MapBounds{
		CenterLat: demo.DemoCity.CenterLat,
		CenterLng: demo.DemoCity.CenterLng,
		Zoom:      demo.DemoCity.Zoom,
	}
	h.cityName = demo.DemoCity.Name
	h.uploadedFile = ""
}

// Incidents returns a copy of the current incident set.
func (h *Holder) Incidents() []model.Incident {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]model.Incident, len(h.incidents))
	copy(out, h.incidents)
	return out
}

// Units returns a copy of the patrol roster.
func (h *Holder) Units() []model.PatrolUnit {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]model.PatrolUnit, len(h.units))
	copy(out, h.units)
	return out
}

// Bounds returns the current map framing.
func (h *Holder) Bounds() model.MapBounds {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bounds
}

// Stats recomputes the statistics snapshot from the current incidents.
func (h *Holder) Stats() model.CrimeStats {
	return analytics.ComputeStats(h.Incidents())
}

// Insights recomputes the insight list from the current incidents.
func (h *Holder) Insights() []model.AIInsight {
	incidents := h.Incidents()
	return analytics.GenerateInsights(incidents, analytics.ComputeStats(incidents))
}

// Meta returns the dataset labels and loading flag.
func (h *Holder) Meta() Meta {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Meta{
		CityName:     h.cityName,
		UploadedFile: h.uploadedFile,
		Loading:      h.loading,
		Total:        len(h.incidents),
	}
}
