// Package export writes incident snapshots to GIS-friendly formats. An
// export is a one-shot copy of the current set, not a persistence layer.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/crimegrid/patrolboard/internal/model"
)

// csvHeader is the canonical column set; it round-trips through the ingest
// alias tables.
var csvHeader = []string{"ID", "LATITUDE", "LONGITUDE", "CRIME_TYPE", "DATE_TIME", "STATUS", "DESCRIPTION", "LOCATION"}

// WriteCSV writes incidents as canonical CSV.
func WriteCSV(w io.Writer, incidents []model.Incident) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, inc := range incidents {
		row := []string{
			inc.ID,
			strconv.FormatFloat(inc.Latitude, 'f', -1, 64),
			strconv.FormatFloat(inc.Longitude, 'f', -1, 64),
			string(inc.Type),
			inc.DateTime.Format("2006-01-02 15:04:05"),
			string(inc.Status),
			inc.Description,
			inc.Location,
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

// WriteShapefile writes incidents as an ESRI point shapefile at path
// (the .shx and .dbf siblings are created alongside it).
func WriteShapefile(path string, incidents []model.Incident) error {
	if len(incidents) == 0 {
		return eris.New("export: no incidents to write")
	}

	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrap(err, "export: create shapefile")
	}
	defer w.Close()

	fields := []shp.Field{
		shp.StringField("ID", 32),
		shp.StringField("TYPE", 16),
		shp.StringField("STATUS", 20),
		shp.StringField("DATE", 20),
		shp.StringField("LOCATION", 64),
	}
	if err := w.SetFields(fields); err != nil {
		return eris.Wrap(err, "export: set shapefile fields")
	}

	for _, inc := range incidents {
		row := int(w.Write(&shp.Point{X: inc.Longitude, Y: inc.Latitude}))

		attrs := []string{
			inc.ID,
			string(inc.Type),
			string(inc.Status),
			inc.DateTime.Format("2006-01-02 15:04"),
			inc.Location,
		}
		for i, v := range attrs {
			if err := w.WriteAttribute(row, i, v); err != nil {
				return eris.Wrapf(err, "export: write attribute %d", i)
			}
		}
	}

	zap.L().Info("export: shapefile written",
		zap.String("path", path),
		zap.Int("incidents", len(incidents)),
	)
	return nil
}
