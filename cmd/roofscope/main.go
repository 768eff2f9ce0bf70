// Command roofscope inspects and exports roof measurement data produced by
// the measurement core: session documents, surface sets, and 3D models.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "roofscope",
	Short: "Inspect and export roof measurement data",
	Long: `roofscope is a command-line tool for working with roof measurement
sessions: summarizing finalized measurement documents, exporting surface
sets as 3D models (JSON, OBJ, PLY), and rendering report charts.`,
	Version: "1.0.0",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
