package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomeasure/pkg/analysis"
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/label"
	"github.com/philipparndt/gomeasure/pkg/stl"
)

var (
	edgesCount    int
	edgesLongest  bool
	edgesShortest bool
	edgesMin      float64
	edgesMax      float64
)

var edgesCmd = &cobra.Command{
	Use:   "edges <file>",
	Short: "List and measure mesh edges",
	Long: `List the unique edges of an STL file with their lengths. Shared
edges between adjacent triangles are counted once.`,
	Args: cobra.ExactArgs(1),
	Run:  runEdges,
}

func init() {
	rootCmd.AddCommand(edgesCmd)
	edgesCmd.Flags().IntVarP(&edgesCount, "count", "n", 10, "number of edges to list")
	edgesCmd.Flags().BoolVarP(&edgesLongest, "longest", "l", false, "longest edges first")
	edgesCmd.Flags().BoolVarP(&edgesShortest, "shortest", "s", false, "shortest edges first")
	edgesCmd.Flags().Float64Var(&edgesMin, "min", 0, "only edges at least this long")
	edgesCmd.Flags().Float64Var(&edgesMax, "max", 0, "only edges at most this long")
}

func formatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

func runEdges(cmd *cobra.Command, args []string) {
	model, err := stl.Parse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stats := analysis.Analyze(model)

	var edges []analysis.Edge
	switch {
	case edgesLongest:
		edges = stats.LongestEdges(edgesCount)
	case edgesShortest:
		edges = stats.ShortestEdges(edgesCount)
	case edgesMax > 0:
		edges = stats.EdgesInRange(edgesMin, edgesMax)
		if len(edges) > edgesCount {
			edges = edges[:edgesCount]
		}
	default:
		edges = stats.Edges
		if len(edges) > edgesCount {
			edges = edges[:edgesCount]
		}
	}

	fmt.Printf("Edges:   %d unique\n", stats.EdgeCount())
	fmt.Printf("Lengths: %s to %s, avg %s\n\n",
		label.FormatValue(stats.MinEdgeLength),
		label.FormatValue(stats.MaxEdgeLength),
		label.FormatValue(stats.AvgEdgeLength))

	if len(edges) == 0 {
		fmt.Println("No edges match.")
		return
	}
	for i, edge := range edges {
		fmt.Printf("%3d  %-26s %-26s %s\n", i+1,
			formatVector(edge.A), formatVector(edge.B),
			label.FormatMeasurement(edge.Length, label.UnitMeters))
	}
}
