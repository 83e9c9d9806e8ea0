package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crimegrid/patrolboard/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "patrolboard",
	Short: "Crime incident analytics dashboard backend",
	Long:  "Ingests crime incident CSV/XLSX files, aggregates statistics, derives rule-based tactical insights, and serves them over a JSON API.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
