package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roofscope/measure/internal/report"
	"github.com/roofscope/measure/internal/store"
)

var (
	reportMeasurementID string
	reportSessionID     string
	reportChartPath     string
	reportPlotPath      string
)

var reportCmd = &cobra.Command{
	Use:   "report [measurements.db]",
	Short: "Render charts for a stored measurement document",
	Long: `Load a finalized measurement document from a measurement database and
render an area breakdown chart (HTML) and a pitch/area scatter plot (PNG).
With --session, the most recent document for that session is used.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportMeasurementID, "id", "", "measurement document ID")
	reportCmd.Flags().StringVar(&reportSessionID, "session", "", "session ID (most recent document wins)")
	reportCmd.Flags().StringVar(&reportChartPath, "chart", "", "write area chart HTML to this path")
	reportCmd.Flags().StringVar(&reportPlotPath, "plot", "", "write pitch/area plot PNG to this path")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportMeasurementID == "" && reportSessionID == "" {
		return fmt.Errorf("one of --id or --session is required")
	}
	if reportChartPath == "" && reportPlotPath == "" {
		return fmt.Errorf("nothing to render: pass --chart and/or --plot")
	}

	db, err := store.NewDB(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	doc, err := resolveDocument(db)
	if err != nil {
		return err
	}

	if reportChartPath != "" {
		f, err := os.Create(reportChartPath)
		if err != nil {
			return fmt.Errorf("create chart file: %w", err)
		}
		if err := report.RenderAreaChart(doc, f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write chart file: %w", err)
		}
		fmt.Printf("Wrote area chart for %s to %s\n", doc.ID, reportChartPath)
	}

	if reportPlotPath != "" {
		if err := report.RenderPitchAreaPlot(doc, reportPlotPath); err != nil {
			return err
		}
		fmt.Printf("Wrote pitch/area plot for %s to %s\n", doc.ID, reportPlotPath)
	}
	return nil
}

func resolveDocument(db *store.DB) (*report.Document, error) {
	if reportMeasurementID != "" {
		return db.GetDocument(reportMeasurementID)
	}
	docs, err := db.ListDocuments(reportSessionID)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no measurement documents for session %s", reportSessionID)
	}
	return docs[0], nil
}
