package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/label"
)

var arcAxis string

var arcCmd = &cobra.Command{
	Use:   "arc",
	Short: "Radius of the circle through three points",
	Long: `Fit a circle through three points lying on an arc and print its
radius and center. The circle plane is normal to one axis; by default
the axis along which the points vary the least.`,
	Run: runArc,
}

func init() {
	rootCmd.AddCommand(arcCmd)
	arcCmd.Flags().StringArrayVar(&measurePoints, "point", nil, "point as x,y,z (repeatable)")
	arcCmd.MarkFlagRequired("point")
	arcCmd.Flags().StringVar(&arcAxis, "axis", "auto", "constraint axis: x, y, z or auto")
}

// flattestAxis picks the axis with the smallest coordinate spread; the
// circle lies in the plane normal to it
func flattestAxis(points []geometry.Vector3) int {
	bbox := geometry.NewBoundingBox()
	for _, p := range points {
		bbox.Extend(p)
	}
	size := bbox.Size()

	switch {
	case size.X <= size.Y && size.X <= size.Z:
		return 0
	case size.Y <= size.Z:
		return 1
	default:
		return 2
	}
}

func runArc(cmd *cobra.Command, args []string) {
	points := parsePoints(3, 3)

	var axis int
	switch arcAxis {
	case "x":
		axis = 0
	case "y":
		axis = 1
	case "z":
		axis = 2
	case "auto":
		axis = flattestAxis(points)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown axis %q (want x, y, z or auto)\n", arcAxis)
		os.Exit(1)
	}

	fit, err := geometry.FitCircleToPoints3D(points, axis)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Radius: %s\n", label.FormatMeasurement(fit.Radius, label.UnitMeters))
	fmt.Printf("Center: (%.3f, %.3f, %.3f)\n", fit.Center.X, fit.Center.Y, fit.Center.Z)
	fmt.Printf("Plane:  %s constant\n", [3]string{"X", "Y", "Z"}[axis])
	fmt.Printf("StdDev: %.6f\n", fit.StdDev)
}
