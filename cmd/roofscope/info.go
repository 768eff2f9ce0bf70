package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roofscope/measure/internal/report"
	"github.com/roofscope/measure/internal/units"
)

var infoUnits string

var infoCmd = &cobra.Command{
	Use:   "info [measurement.json]",
	Short: "Summarize a finalized measurement document",
	Long:  "Print total area, per-surface breakdown, quality score, and validation findings for a measurement document exported as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&infoUnits, "units", "u", units.SquareMeters,
		"area units for output ("+units.GetValidUnitsString()+")")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	if !units.IsValid(infoUnits) {
		return fmt.Errorf("invalid units %q, valid values: %s", infoUnits, units.GetValidUnitsString())
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read measurement file: %w", err)
	}
	var doc report.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse measurement file: %w", err)
	}

	fmt.Println("Measurement Document")
	fmt.Println("====================")
	fmt.Printf("ID:       %s\n", doc.ID)
	fmt.Printf("Session:  %s\n", doc.SessionID)
	fmt.Printf("Operator: %s\n", doc.OperatorID)
	fmt.Printf("Created:  %s\n\n", doc.CreatedAt.Format("2006-01-02 15:04:05 MST"))

	fmt.Printf("Total projected area: %.2f %s\n", units.ConvertArea(doc.TotalArea, infoUnits), infoUnits)
	fmt.Printf("Quality score: %.2f\n\n", doc.QualityScore)

	fmt.Printf("Surfaces (%d):\n", len(doc.Surfaces))
	for i, s := range doc.Surfaces {
		fmt.Printf("  %2d. %-10s %-8s area=%.2f %s pitch=%.1f° azimuth=%.1f° confidence=%.2f\n",
			i+1, s.Type, s.Material,
			units.ConvertArea(s.ProjectedArea, infoUnits), infoUnits,
			s.PitchDeg, s.AzimuthDeg, s.Confidence)
	}

	if len(doc.Errors) > 0 {
		fmt.Printf("\nErrors (%d):\n", len(doc.Errors))
		for _, issue := range doc.Errors {
			fmt.Printf("  [%s] %s\n", issue.Code, issue.Message)
		}
	}
	if len(doc.Warnings) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(doc.Warnings))
		for _, issue := range doc.Warnings {
			fmt.Printf("  [%s] %s\n", issue.Code, issue.Message)
		}
	}
	return nil
}
