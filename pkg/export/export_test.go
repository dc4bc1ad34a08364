package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/label"
	"github.com/philipparndt/gomeasure/pkg/scene"
	"github.com/philipparndt/gomeasure/pkg/viewer"
)

func measuredWorld() (*scene.World, *viewer.Camera) {
	world := scene.NewWorld()
	world.Add(scene.NewGroundPlane("ground", 0, 0))

	tri := geometry.NewTriangle(geometry.Vector3{},
		geometry.NewVector3(-4, 0, -4),
		geometry.NewVector3(4, 0, -4),
		geometry.NewVector3(0, 4, 2),
	)
	mesh := scene.NewMesh("model", []geometry.Triangle{tri}, 0)
	world.Add(mesh)

	line := scene.NewPolyline("measurement line", 8, scene.FlagToolOwned)
	line.Append(geometry.NewVector3(-4, 0, -4))
	line.Append(geometry.NewVector3(4, 0, -4))
	world.Add(line)

	points := scene.NewPointCloud("measurement points", 8, scene.FlagToolOwned)
	points.Append(geometry.NewVector3(-4, 0, -4))
	points.Append(geometry.NewVector3(4, 0, -4))
	world.Add(points)

	labels := label.NewManager(label.NewOverlay(), world, nil)
	labels.UpsertMeasurement("8.00 m", geometry.NewVector3(0, 0, -4), geometry.NewVector3(0, 1, 0), 1)

	cam := viewer.NewCamera(mesh.Bounds())
	return world, cam
}

func TestRenderBuildsCanvas(t *testing.T) {
	world, cam := measuredWorld()

	c, err := Render(world, cam, 640, 480)

	require.NoError(t, err)
	assert.Equal(t, 640.0, c.W)
	assert.Equal(t, 480.0, c.H)
}

func TestRenderRejectsNilScene(t *testing.T) {
	_, cam := measuredWorld()

	_, err := Render(nil, cam, 640, 480)
	require.Error(t, err)

	_, err = Render(scene.NewWorld(), nil, 640, 480)
	require.Error(t, err)

	_, err = Render(scene.NewWorld(), cam, 0, 480)
	require.Error(t, err)
}

func TestWriteSVG(t *testing.T) {
	world, cam := measuredWorld()
	path := filepath.Join(t.TempDir(), "measurement.svg")

	require.NoError(t, Write(path, world, cam, 640, 480))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestWritePNG(t *testing.T) {
	world, cam := measuredWorld()
	path := filepath.Join(t.TempDir(), "measurement.png")

	require.NoError(t, Write(path, world, cam, 320, 240))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteUnknownExtension(t *testing.T) {
	world, cam := measuredWorld()

	err := Write(filepath.Join(t.TempDir(), "measurement.bin"), world, cam, 320, 240)

	require.Error(t, err)
}
