package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"restopos/internal/export"
	"restopos/internal/logger"
	"restopos/internal/repositories/postgres"
)

var exportDate string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a daily sales report as Parquet",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		log := logger.New("restopos-export")

		day := time.Now().UTC().Truncate(24 * time.Hour)
		if exportDate != "" {
			parsed, err := time.Parse("2006-01-02", exportDate)
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid --date %q, want YYYY-MM-DD\n", exportDate)
				os.Exit(1)
			}
			day = parsed
		}

		ctx := context.Background()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			log.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		exporter, err := export.NewExporter(ctx, postgres.NewOrderRepository(pool), cfg.Export, log)
		if err != nil {
			log.Error("exporter setup failed", "error", err)
			os.Exit(1)
		}

		rows, err := exporter.Export(ctx, day, day.Add(24*time.Hour))
		if err != nil {
			log.Error("export failed", "error", err)
			os.Exit(1)
		}
		log.Info("export complete", "date", day.Format("2006-01-02"), "rows", rows)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDate, "date", "", "Report date (YYYY-MM-DD), defaults to today")
	rootCmd.AddCommand(exportCmd)
}
