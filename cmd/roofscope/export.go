package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roofscope/measure/internal/config"
	"github.com/roofscope/measure/internal/mesh"
	"github.com/roofscope/measure/internal/surface"
)

var (
	exportFormat string
	exportOut    string
	exportName   string
	exportConfig string
)

var exportCmd = &cobra.Command{
	Use:   "export [surfaces.json]",
	Short: "Export a surface set as a 3D model",
	Long:  "Build an extruded 3D model from a JSON list of measured surfaces and write it in the requested interchange format.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(mesh.FormatOBJ), "output format (json, obj, ply)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportName, "name", "n", "roof", "model name")
	exportCmd.Flags().StringVarP(&exportConfig, "config", "c", "", "tuning config JSON (optional)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read surfaces file: %w", err)
	}
	var planes []*surface.Plane
	if err := json.Unmarshal(data, &planes); err != nil {
		return fmt.Errorf("parse surfaces file: %w", err)
	}
	if len(planes) == 0 {
		return fmt.Errorf("surfaces file %s contains no surfaces", args[0])
	}

	var opts mesh.BuildOptions
	if exportConfig != "" {
		cfg, err := config.LoadTuningConfig(exportConfig)
		if err != nil {
			return err
		}
		opts.ExtrusionHeight = cfg.GetExtrusionHeight()
	}

	builder := mesh.NewBuilder()
	model, err := builder.BuildModel(planes, exportName, opts)
	if err != nil {
		return err
	}

	out, err := mesh.ExportModel(model, mesh.Format(exportFormat))
	if err != nil {
		return err
	}

	if exportOut == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(exportOut, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	fmt.Printf("Wrote %s (%d vertices, %d faces) to %s\n",
		exportFormat, model.TotalVertices, model.TotalFaces, exportOut)
	return nil
}
