package pick

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/scene"
)

// recordingCamera captures the NDC it was asked about and shoots a
// straight-down ray whose X/Z follow the NDC
type recordingCamera struct {
	ndcX, ndcY float64
	height     float64
}

func (c *recordingCamera) ScreenRay(ndcX, ndcY float64) geometry.Ray {
	c.ndcX, c.ndcY = ndcX, ndcY
	return geometry.NewRay(
		geometry.NewVector3(ndcX, c.height, ndcY),
		geometry.NewVector3(0, -1, 0),
	)
}

type fixedViewport struct {
	w, h float64
}

func (v fixedViewport) Size() (float64, float64) { return v.w, v.h }

func TestHitAtNDCMapping(t *testing.T) {
	cam := &recordingCamera{height: 10}
	world := scene.NewWorld()
	world.Add(scene.NewGroundPlane("ground", 0, 0))
	tester := New(cam, fixedViewport{800, 600}, world)

	tests := []struct {
		name             string
		offsetX, offsetY float64
		wantX, wantY     float64
	}{
		{"center", 400, 300, 0, 0},
		{"top left", 0, 0, -1, 1},
		{"bottom right", 800, 600, 1, -1},
		{"quarter", 200, 150, -0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := tester.HitAt(tt.offsetX, tt.offsetY)
			require.True(t, ok)
			assert.InDelta(t, tt.wantX, cam.ndcX, 1e-10)
			assert.InDelta(t, tt.wantY, cam.ndcY, 1e-10)
		})
	}
}

func TestHitAtReturnsWorldPoint(t *testing.T) {
	cam := &recordingCamera{height: 10}
	world := scene.NewWorld()
	world.Add(scene.NewGroundPlane("ground", 2, 0))
	tester := New(cam, fixedViewport{100, 100}, world)

	hit, ok := tester.HitAt(50, 50)
	require.True(t, ok)
	assert.Equal(t, "ground", hit.Object.Name())
	assert.InDelta(t, 2.0, hit.Point.Y, 1e-10)
	assert.InDelta(t, 8.0, hit.Distance, 1e-10)
}

func TestHitAtSkipsToolOwned(t *testing.T) {
	cam := &recordingCamera{height: 10}
	world := scene.NewWorld()
	world.Add(scene.NewGroundPlane("preview", 5, scene.FlagToolOwned))
	world.Add(scene.NewGroundPlane("model", 0, 0))
	tester := New(cam, fixedViewport{100, 100}, world)

	hit, ok := tester.HitAt(50, 50)
	require.True(t, ok)
	assert.Equal(t, "model", hit.Object.Name())
}

func TestHitAtMaxDistance(t *testing.T) {
	cam := &recordingCamera{height: 1000}
	world := scene.NewWorld()
	world.Add(scene.NewGroundPlane("ground", 0, 0))
	tester := New(cam, fixedViewport{100, 100}, world)

	// Nearest foreign hit is 1000 away, beyond the default cutoff
	_, ok := tester.HitAt(50, 50)
	assert.False(t, ok)

	tester.MaxDistance = 2000
	_, ok = tester.HitAt(50, 50)
	assert.True(t, ok)
}

func TestHitAtMissingCollaborators(t *testing.T) {
	world := scene.NewWorld()
	world.Add(scene.NewGroundPlane("ground", 0, 0))
	cam := &recordingCamera{height: 10}

	_, ok := New(nil, fixedViewport{100, 100}, world).HitAt(50, 50)
	assert.False(t, ok)

	_, ok = New(cam, nil, world).HitAt(50, 50)
	assert.False(t, ok)

	_, ok = New(cam, fixedViewport{100, 100}, nil).HitAt(50, 50)
	assert.False(t, ok)

	_, ok = New(cam, fixedViewport{0, 0}, world).HitAt(50, 50)
	assert.False(t, ok)
}

func TestHitAtEmptyScene(t *testing.T) {
	cam := &recordingCamera{height: 10}
	tester := New(cam, fixedViewport{100, 100}, scene.NewWorld())

	_, ok := tester.HitAt(50, 50)
	assert.False(t, ok)
}
