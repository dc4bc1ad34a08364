package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomeasure/version"
)

var rootCmd = &cobra.Command{
	Use:   "gomeasure",
	Short: "Measure distances, areas and angles on 3D models",
	Long: `gomeasure is a measurement tool for 3D models. It opens STL and
OpenSCAD files in an interactive viewer where clicked points form
distance, area and angle measurements, replays scripted sessions
headlessly for automation, and exports measured scenes as SVG, PDF or
PNG.`,
	Version: version.GetVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
