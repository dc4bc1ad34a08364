package scene

import "github.com/philipparndt/gomeasure/pkg/geometry"

// Mesh is a triangle mesh object, typically externally owned model
// content the user measures against
type Mesh struct {
	Node
	triangles []geometry.Triangle
	bounds    geometry.BoundingBox
}

// NewMesh creates a mesh object from triangles
func NewMesh(name string, triangles []geometry.Triangle, flags Flag) *Mesh {
	bounds := geometry.NewBoundingBox()
	for _, t := range triangles {
		bounds.Extend(t.V1)
		bounds.Extend(t.V2)
		bounds.Extend(t.V3)
	}
	return &Mesh{
		Node:      NewNode(name, flags),
		triangles: triangles,
		bounds:    bounds,
	}
}

// Triangles returns the mesh triangles
func (m *Mesh) Triangles() []geometry.Triangle { return m.triangles }

// Bounds returns the axis-aligned bounding box of the mesh
func (m *Mesh) Bounds() geometry.BoundingBox { return m.bounds }

// Intersect returns the nearest triangle intersection along the ray
func (m *Mesh) Intersect(r geometry.Ray) (geometry.Vector3, float64, bool) {
	nearest := -1.0
	for _, tri := range m.triangles {
		if t, ok := tri.IntersectRay(r); ok {
			if nearest < 0 || t < nearest {
				nearest = t
			}
		}
	}
	if nearest < 0 {
		return geometry.Vector3{}, 0, false
	}
	return r.At(nearest), nearest, true
}

// Plane is an infinite horizontal plane at a fixed height, useful as a
// ground reference in headless scenes
type Plane struct {
	Node
	y float64
}

// NewGroundPlane creates a horizontal plane at height y
func NewGroundPlane(name string, y float64, flags Flag) *Plane {
	return &Plane{Node: NewNode(name, flags), y: y}
}

// Height returns the plane height
func (p *Plane) Height() float64 { return p.y }

// Intersect returns where the ray crosses the plane
func (p *Plane) Intersect(r geometry.Ray) (geometry.Vector3, float64, bool) {
	if r.Direction.Y == 0 {
		return geometry.Vector3{}, 0, false
	}
	t := (p.y - r.Origin.Y) / r.Direction.Y
	if t <= 0 {
		return geometry.Vector3{}, 0, false
	}
	return r.At(t), t, true
}
