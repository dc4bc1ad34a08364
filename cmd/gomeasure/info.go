package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomeasure/pkg/analysis"
	"github.com/philipparndt/gomeasure/pkg/label"
	"github.com/philipparndt/gomeasure/pkg/stl"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Summarize a model",
	Long:  "Print the dimensions, surface area and edge statistics of an STL file.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	model, err := stl.Parse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stats := analysis.Analyze(model)

	if model.Name != "" {
		fmt.Printf("Name:      %s\n", model.Name)
	}
	fmt.Printf("File:      %s\n", args[0])
	fmt.Printf("Triangles: %d\n", stats.TriangleCount)
	fmt.Printf("Edges:     %d\n", stats.EdgeCount())
	fmt.Printf("Surface:   %s\n", label.FormatMeasurement(stats.SurfaceArea, label.UnitSquareMeters))
	fmt.Println()

	fmt.Printf("Min:       %s\n", formatVector(stats.Bounds.Min))
	fmt.Printf("Max:       %s\n", formatVector(stats.Bounds.Max))
	fmt.Printf("Center:    %s\n", formatVector(stats.Bounds.Center()))
	fmt.Printf("Size:      %.3f x %.3f x %.3f\n", stats.Size.X, stats.Size.Y, stats.Size.Z)
	fmt.Printf("Diagonal:  %s\n", label.FormatMeasurement(stats.Bounds.Diagonal(), label.UnitMeters))
	fmt.Printf("Volume:    %s\n", label.FormatMeasurement(stats.Bounds.Volume(), label.UnitCubicMeters))
	fmt.Println()

	fmt.Printf("Edge lengths:    %s to %s, avg %s\n",
		label.FormatValue(stats.MinEdgeLength),
		label.FormatValue(stats.MaxEdgeLength),
		label.FormatValue(stats.AvgEdgeLength))
	fmt.Printf("Triangle areas:  %s to %s, avg %s\n",
		label.FormatValue(stats.MinTriangleArea),
		label.FormatValue(stats.MaxTriangleArea),
		label.FormatValue(stats.AvgTriangleArea))
}
