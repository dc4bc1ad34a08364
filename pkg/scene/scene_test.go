package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

func TestWorldAddRemove(t *testing.T) {
	w := NewWorld()
	a := NewGroundPlane("a", 0, 0)
	b := NewGroundPlane("b", 1, 0)

	w.Add(a)
	w.Add(b)
	assert.Len(t, w.Objects(), 2)

	w.Remove(a)
	assert.Len(t, w.Objects(), 1)
	assert.Equal(t, "b", w.Objects()[0].Name())

	// Removing again is a no-op
	w.Remove(a)
	assert.Len(t, w.Objects(), 1)

	// Removing an object that was never added is a no-op
	w.Remove(NewGroundPlane("c", 2, 0))
	assert.Len(t, w.Objects(), 1)
}

func TestWorldIntersectRaySorted(t *testing.T) {
	w := NewWorld()
	w.Add(NewGroundPlane("far", -10, 0))
	w.Add(NewGroundPlane("near", -1, 0))

	ray := geometry.NewRay(geometry.NewVector3(0, 5, 0), geometry.NewVector3(0, -1, 0))
	hits := w.IntersectRay(ray)

	require.Len(t, hits, 2)
	assert.Equal(t, "near", hits[0].Object.Name())
	assert.Equal(t, "far", hits[1].Object.Name())
	assert.Less(t, hits[0].Distance, hits[1].Distance)
}

func TestWorldIntersectRayWalksChildren(t *testing.T) {
	w := NewWorld()
	parent := NewGroundPlane("parent", 0, 0)
	child := NewGroundPlane("child", -2, 0)
	parent.AddChild(child)
	w.Add(parent)

	ray := geometry.NewRay(geometry.NewVector3(0, 5, 0), geometry.NewVector3(0, -1, 0))
	hits := w.IntersectRay(ray)

	require.Len(t, hits, 2)
	assert.Equal(t, "parent", hits[0].Object.Name())
	assert.Equal(t, "child", hits[1].Object.Name())
}

func TestWorldIntersectRaySkipsNoRaycast(t *testing.T) {
	w := NewWorld()
	w.Add(NewGroundPlane("visible", 0, 0))
	w.Add(NewGroundPlane("skipped", -1, FlagNoRaycast))

	ray := geometry.NewRay(geometry.NewVector3(0, 5, 0), geometry.NewVector3(0, -1, 0))
	hits := w.IntersectRay(ray)

	require.Len(t, hits, 1)
	assert.Equal(t, "visible", hits[0].Object.Name())
}

func TestNodeChildren(t *testing.T) {
	parent := NewGroundPlane("parent", 0, 0)
	a := NewGroundPlane("a", 1, 0)
	b := NewGroundPlane("b", 2, 0)

	parent.AddChild(a)
	parent.AddChild(b)
	assert.Len(t, parent.Children(), 2)

	parent.RemoveChild(a)
	require.Len(t, parent.Children(), 1)
	assert.Equal(t, "b", parent.Children()[0].Name())

	parent.RemoveChild(a)
	assert.Len(t, parent.Children(), 1)
}

func TestFlagHas(t *testing.T) {
	f := FlagToolOwned | FlagNoRaycast
	assert.True(t, f.Has(FlagToolOwned))
	assert.True(t, f.Has(FlagNoRaycast))
	assert.False(t, Flag(0).Has(FlagToolOwned))
}

func TestPlaneIntersect(t *testing.T) {
	p := NewGroundPlane("ground", 2, 0)

	ray := geometry.NewRay(geometry.NewVector3(1, 10, 3), geometry.NewVector3(0, -1, 0))
	point, dist, ok := p.Intersect(ray)

	require.True(t, ok)
	assert.InDelta(t, 8.0, dist, 1e-10)
	assert.InDelta(t, 1.0, point.X, 1e-10)
	assert.InDelta(t, 2.0, point.Y, 1e-10)
	assert.InDelta(t, 3.0, point.Z, 1e-10)

	// Parallel ray misses
	_, _, ok = p.Intersect(geometry.NewRay(geometry.NewVector3(0, 10, 0), geometry.NewVector3(1, 0, 0)))
	assert.False(t, ok)

	// Plane behind the origin misses
	_, _, ok = p.Intersect(geometry.NewRay(geometry.NewVector3(0, 0, 0), geometry.NewVector3(0, -1, 0)))
	assert.False(t, ok)
}

func TestMeshIntersectNearest(t *testing.T) {
	// Two parallel square faces, the ray passes through both
	near := quadTriangles(geometry.NewVector3(0, 0, 1))
	far := quadTriangles(geometry.NewVector3(0, 0, -1))
	mesh := NewMesh("part", append(near, far...), 0)

	ray := geometry.NewRay(geometry.NewVector3(0.2, 0.2, 5), geometry.NewVector3(0, 0, -1))
	point, dist, ok := mesh.Intersect(ray)

	require.True(t, ok)
	assert.InDelta(t, 4.0, dist, 1e-10)
	assert.InDelta(t, 1.0, point.Z, 1e-10)
}

func TestMeshIntersectMiss(t *testing.T) {
	mesh := NewMesh("part", quadTriangles(geometry.NewVector3(0, 0, 0)), 0)

	ray := geometry.NewRay(geometry.NewVector3(5, 5, 5), geometry.NewVector3(0, 0, 1))
	_, _, ok := mesh.Intersect(ray)
	assert.False(t, ok)
}

func TestMeshBounds(t *testing.T) {
	mesh := NewMesh("part", quadTriangles(geometry.NewVector3(2, 3, 4)), 0)

	bounds := mesh.Bounds()
	assert.InDelta(t, 1.5, bounds.Min.X, 1e-10)
	assert.InDelta(t, 2.5, bounds.Max.X, 1e-10)
	assert.InDelta(t, 2.5, bounds.Min.Y, 1e-10)
	assert.InDelta(t, 3.5, bounds.Max.Y, 1e-10)
}

// quadTriangles returns a unit square around center in the XY plane,
// split into two triangles
func quadTriangles(center geometry.Vector3) []geometry.Triangle {
	h := 0.5
	a := center.Add(geometry.NewVector3(-h, -h, 0))
	b := center.Add(geometry.NewVector3(h, -h, 0))
	c := center.Add(geometry.NewVector3(h, h, 0))
	d := center.Add(geometry.NewVector3(-h, h, 0))
	normal := geometry.NewVector3(0, 0, 1)
	return []geometry.Triangle{
		geometry.NewTriangle(normal, a, b, c),
		geometry.NewTriangle(normal, a, c, d),
	}
}
