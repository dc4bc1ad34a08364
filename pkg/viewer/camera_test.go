package viewer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/pick"
	"github.com/philipparndt/gomeasure/pkg/scene"
)

func unitBox(half float64) geometry.BoundingBox {
	box := geometry.NewBoundingBox()
	box.Extend(geometry.NewVector3(-half, -half, -half))
	box.Extend(geometry.NewVector3(half, half, half))
	return box
}

func TestNewCameraFramesBounds(t *testing.T) {
	cam := NewCamera(unitBox(5))

	assert.Equal(t, geometry.NewVector3(0, 0, 0), cam.Target)
	assert.Equal(t, 20.0, cam.Distance)
	assert.Equal(t, geometry.NewVector3(0, 0, 20), cam.Position)
	assert.Equal(t, 1.0, cam.Aspect)
}

func TestRotateClampsPitch(t *testing.T) {
	cam := NewCamera(unitBox(1))

	cam.Rotate(10, 0)
	assert.InDelta(t, math.Pi/2-0.1, cam.RotationX, 1e-12)

	cam.Rotate(-20, 0)
	assert.InDelta(t, -(math.Pi/2 - 0.1), cam.RotationX, 1e-12)

	// Orbiting leaves the distance to the target untouched
	assert.InDelta(t, 4.0, cam.Position.Distance(cam.Target), 1e-9)
}

func TestZoomKeepsMinimumDistance(t *testing.T) {
	cam := NewCamera(unitBox(1))

	cam.Zoom(-0.999)
	assert.Equal(t, 0.1, cam.Distance)

	cam.Zoom(1.0)
	assert.InDelta(t, 0.2, cam.Distance, 1e-12)
}

func TestPanShiftsTargetAndPosition(t *testing.T) {
	cam := NewCamera(unitBox(1))

	cam.Pan(100, 0)

	// Dragging right moves the view content right, the camera left
	assert.InDelta(t, -0.8, cam.Target.X, 1e-12)
	assert.InDelta(t, -0.8, cam.Position.X, 1e-12)
	assert.InDelta(t, 0, cam.Target.Y, 1e-12)
	assert.InDelta(t, 4, cam.Position.Z, 1e-12)
}

func TestFrameKeepsOrientation(t *testing.T) {
	cam := NewCamera(unitBox(1))
	cam.Rotate(0.3, 0.7)

	box := geometry.NewBoundingBox()
	box.Extend(geometry.NewVector3(8, -2, -2))
	box.Extend(geometry.NewVector3(12, 2, 2))
	cam.Frame(box)

	assert.Equal(t, geometry.NewVector3(10, 0, 0), cam.Target)
	assert.Equal(t, 8.0, cam.Distance)
	assert.InDelta(t, 0.3, cam.RotationX, 1e-12)
	assert.InDelta(t, 0.7, cam.RotationY, 1e-12)
	assert.InDelta(t, 8.0, cam.Position.Distance(cam.Target), 1e-9)
}

func TestProjectTargetHitsScreenCenter(t *testing.T) {
	cam := NewCamera(unitBox(5))

	x, y, z := cam.Project(cam.Target, 800, 600)

	assert.InDelta(t, 400, x, 1e-9)
	assert.InDelta(t, 300, y, 1e-9)
	assert.InDelta(t, 20, z, 1e-9)
}

func TestScreenRayCenterLooksAtTarget(t *testing.T) {
	cam := NewCamera(unitBox(5))

	ray := cam.ScreenRay(0, 0)

	forward := cam.Target.Sub(cam.Position).Normalize()
	assert.InDelta(t, 1.0, ray.Direction.Dot(forward), 1e-12)
	assert.Equal(t, cam.Position, ray.Origin)
}

func TestScreenRayPassesThroughProjectedPoints(t *testing.T) {
	width, height := 800.0, 600.0
	cam := NewCamera(unitBox(5))
	cam.Aspect = width / height

	points := []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(3, -2, 1),
		geometry.NewVector3(-4, 1, -3),
	}

	check := func() {
		for _, p := range points {
			x, y, _ := cam.Project(p, width, height)
			ndcX := (2 * x / width) - 1
			ndcY := 1 - (2 * y / height)

			ray := cam.ScreenRay(ndcX, ndcY)

			// Perpendicular distance from the point to the ray
			miss := p.Sub(ray.Origin).Cross(ray.Direction).Length()
			assert.Less(t, miss, 1e-9, "point %v", p)
		}
	}

	check()

	cam.Rotate(0.4, 0.9)
	check()
}

type fixedSize struct {
	w, h float64
}

func (f fixedSize) Size() (float64, float64) { return f.w, f.h }

func TestCameraDrivesHitTesting(t *testing.T) {
	tri := geometry.NewTriangle(geometry.Vector3{},
		geometry.NewVector3(-5, -5, 0),
		geometry.NewVector3(5, -5, 0),
		geometry.NewVector3(0, 5, 0),
	)
	world := scene.NewWorld()
	mesh := scene.NewMesh("model", []geometry.Triangle{tri}, 0)
	world.Add(mesh)

	cam := NewCamera(mesh.Bounds())
	cam.Aspect = 2.0 // matches the 200x100 viewport
	tester := pick.New(cam, fixedSize{w: 200, h: 100}, world)

	hit, ok := tester.HitAt(100, 50)
	require.True(t, ok)
	assert.InDelta(t, 0, hit.Point.X, 1e-9)
	assert.InDelta(t, 0, hit.Point.Y, 1e-9)
	assert.InDelta(t, 0, hit.Point.Z, 1e-9)
	assert.InDelta(t, cam.Distance, hit.Distance, 1e-9)

	hit, ok = tester.HitAt(110, 50)
	require.True(t, ok)
	assert.Greater(t, hit.Point.X, 0.0)
	assert.InDelta(t, 0, hit.Point.Z, 1e-9)

	hit, ok = tester.HitAt(100, 25)
	require.True(t, ok)
	assert.Greater(t, hit.Point.Y, 0.0)
}
