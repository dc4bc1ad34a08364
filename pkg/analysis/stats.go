// Package analysis computes aggregate statistics over a model: bounds,
// surface area, and length distributions of its edges and triangles.
// It backs the offline inspection commands.
package analysis

import (
	"math"
	"sort"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/stl"
)

// Edge is one unique mesh edge. Edges shared between adjacent
// triangles appear once.
type Edge struct {
	A, B   geometry.Vector3
	Length float64
}

// ModelStats summarizes the measurable properties of a model
type ModelStats struct {
	Bounds        geometry.BoundingBox
	Size          geometry.Vector3
	SurfaceArea   float64
	TriangleCount int

	Edges         []Edge
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64

	MinTriangleArea float64
	MaxTriangleArea float64
	AvgTriangleArea float64
}

type edgeKey [6]float64

func keyFor(a, b geometry.Vector3) edgeKey {
	return edgeKey{a.X, a.Y, a.Z, b.X, b.Y, b.Z}
}

// Analyze computes the statistics of a model in one pass over its
// triangles
func Analyze(model *stl.Model) *ModelStats {
	stats := &ModelStats{
		Bounds:        model.BoundingBox(),
		TriangleCount: model.TriangleCount(),
	}
	stats.Size = stats.Bounds.Size()

	minArea := math.MaxFloat64
	maxArea := 0.0
	totalArea := 0.0

	seen := make(map[edgeKey]bool)
	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, tri := range model.Triangles {
		area := tri.Area()
		totalArea += area
		minArea = math.Min(minArea, area)
		maxArea = math.Max(maxArea, area)

		pairs := [3][2]geometry.Vector3{
			{tri.V1, tri.V2},
			{tri.V2, tri.V3},
			{tri.V3, tri.V1},
		}
		for _, pair := range pairs {
			a, b := pair[0], pair[1]
			if seen[keyFor(a, b)] || seen[keyFor(b, a)] {
				continue
			}
			seen[keyFor(a, b)] = true

			length := a.Distance(b)
			stats.Edges = append(stats.Edges, Edge{A: a, B: b, Length: length})
			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	}

	if stats.TriangleCount > 0 {
		stats.SurfaceArea = totalArea
		stats.MinTriangleArea = minArea
		stats.MaxTriangleArea = maxArea
		stats.AvgTriangleArea = totalArea / float64(stats.TriangleCount)
	}
	if len(stats.Edges) > 0 {
		stats.MinEdgeLength = minLength
		stats.MaxEdgeLength = maxLength
		stats.AvgEdgeLength = totalLength / float64(len(stats.Edges))
	}

	return stats
}

// EdgeCount returns the number of unique edges
func (s *ModelStats) EdgeCount() int {
	return len(s.Edges)
}

// LongestEdges returns the n longest edges, longest first
func (s *ModelStats) LongestEdges(n int) []Edge {
	return s.sortedEdges(n, func(a, b Edge) bool { return a.Length > b.Length })
}

// ShortestEdges returns the n shortest edges, shortest first
func (s *ModelStats) ShortestEdges(n int) []Edge {
	return s.sortedEdges(n, func(a, b Edge) bool { return a.Length < b.Length })
}

func (s *ModelStats) sortedEdges(n int, less func(a, b Edge) bool) []Edge {
	edges := make([]Edge, len(s.Edges))
	copy(edges, s.Edges)
	sort.Slice(edges, func(i, j int) bool { return less(edges[i], edges[j]) })

	if n > len(edges) {
		n = len(edges)
	}
	return edges[:n]
}

// EdgesInRange returns the edges whose length lies in [min, max]
func (s *ModelStats) EdgesInRange(min, max float64) []Edge {
	var edges []Edge
	for _, edge := range s.Edges {
		if edge.Length >= min && edge.Length <= max {
			edges = append(edges, edge)
		}
	}
	return edges
}
