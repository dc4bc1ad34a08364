package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/label"
	"github.com/philipparndt/gomeasure/pkg/measure"
)

var measurePoints []string

var distanceCmd = &cobra.Command{
	Use:   "distance",
	Short: "Distance along a chain of points",
	Long:  "Sum the segment lengths along the given points, in order.",
	Run:   runDistance,
}

var areaCmd = &cobra.Command{
	Use:   "area",
	Short: "Area of a point outline",
	Long: `Area of the outline spanned by the given points, computed as a
triangle fan anchored at the first point. Exact for convex outlines.`,
	Run: runArea,
}

var angleCmd = &cobra.Command{
	Use:   "angle",
	Short: "Angle at the middle of three points",
	Long:  "Angle in degrees at the second point, between the directions toward the first and the third.",
	Run:   runAngle,
}

func init() {
	for _, cmd := range []*cobra.Command{distanceCmd, areaCmd, angleCmd} {
		rootCmd.AddCommand(cmd)
		cmd.Flags().StringArrayVar(&measurePoints, "point", nil, "point as x,y,z (repeatable)")
		cmd.MarkFlagRequired("point")
	}
}

func parsePoint(s string) (geometry.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geometry.Vector3{}, fmt.Errorf("point %q must be x,y,z", s)
	}
	var c [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("point %q: %w", s, err)
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// parsePoints parses every --point flag and enforces the count bounds;
// max 0 means unbounded
func parsePoints(min, max int) []geometry.Vector3 {
	if len(measurePoints) < min {
		fmt.Fprintf(os.Stderr, "Error: need at least %d --point flags\n", min)
		os.Exit(1)
	}
	if max > 0 && len(measurePoints) > max {
		fmt.Fprintf(os.Stderr, "Error: need at most %d --point flags\n", max)
		os.Exit(1)
	}

	points := make([]geometry.Vector3, 0, len(measurePoints))
	for _, s := range measurePoints {
		p, err := parsePoint(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		points = append(points, p)
	}
	return points
}

func runDistance(cmd *cobra.Command, args []string) {
	points := parsePoints(2, 0)

	var total float64
	for i := 1; i < len(points); i++ {
		total += points[i-1].Distance(points[i])
	}
	fmt.Printf("Distance: %s\n", label.FormatMeasurement(total, measure.Distance.Unit()))
}

func runArea(cmd *cobra.Command, args []string) {
	points := parsePoints(3, 0)
	area := geometry.FanArea(points)
	fmt.Printf("Area: %s\n", label.FormatMeasurement(area, measure.Area.Unit()))
}

func runAngle(cmd *cobra.Command, args []string) {
	points := parsePoints(3, 3)
	angle := geometry.AngleAt(points[0], points[1], points[2])
	fmt.Printf("Angle: %s\n", label.FormatMeasurement(angle, measure.Angle.Unit()))
}
