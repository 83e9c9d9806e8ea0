package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crimegrid/patrolboard/internal/export"
)

var (
	exportFile string
	exportDemo bool
	exportOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an incident dataset for GIS tools",
	Long: `Writes incidents as an ESRI point shapefile or canonical CSV, chosen by
the output extension (.shp or .csv).

Examples:
  patrolboard export --file raw.csv --out incidents.shp
  patrolboard export --demo --out demo.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		incidents, err := loadIncidents(exportFile, exportDemo)
		if err != nil {
			return err
		}

		switch strings.ToLower(filepath.Ext(exportOut)) {
		case ".shp":
			if err := export.WriteShapefile(exportOut, incidents); err != nil {
				return err
			}
		case ".csv":
			f, err := os.Create(exportOut)
			if err != nil {
				return eris.Wrap(err, "export: create output file")
			}
			defer f.Close() //nolint:errcheck
			if err := export.WriteCSV(f, incidents); err != nil {
				return err
			}
		default:
			return eris.Errorf("export: unsupported output extension %q (want .shp or .csv)", filepath.Ext(exportOut))
		}

		zap.L().Info("export: complete",
			zap.String("out", exportOut),
			zap.Int("incidents", len(incidents)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFile, "file", "", "path to CSV or XLSX incident file")
	exportCmd.Flags().BoolVar(&exportDemo, "demo", false, "export generated demo data instead of a file")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path ending in .shp or .csv (required)")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}
