package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/scene"
)

func TestManagerUpsertHelpInPlace(t *testing.T) {
	world := scene.NewWorld()
	m := NewManager(NewOverlay(), world, nil)

	m.UpsertHelp("click to start", geometry.NewVector3(1, 2, 3))
	first := m.Help()
	require.NotNil(t, first)
	assert.Len(t, world.Objects(), 1)

	// Overlay updates mutate the same label
	m.UpsertHelp("click to add", geometry.NewVector3(4, 5, 6))
	assert.Same(t, first, m.Help())
	assert.Equal(t, "click to add", first.Text())
	assert.Equal(t, geometry.NewVector3(4, 5, 6), first.Position())
	assert.Len(t, world.Objects(), 1)
}

func TestManagerUpsertMeasurementPlacement(t *testing.T) {
	world := scene.NewWorld()
	m := NewManager(NewOverlay(), world, nil)

	pos := geometry.NewVector3(1, 0, 2)
	dir := geometry.NewVector3(0, 1, 0)
	m.UpsertMeasurement("2.00 m", pos, dir, 0.5)

	l := m.Measurement()
	require.NotNil(t, l)

	// Anchor offset along dir, depth pushed toward the viewer
	want := geometry.NewVector3(1, 0.5, 2*1.1)
	assert.InDelta(t, 0, l.Position().Distance(want), 1e-10)
	assert.Equal(t, "2.00 m", l.Text())
}

func TestManagerReplacingBackendSwapsLabels(t *testing.T) {
	world := scene.NewWorld()
	backend := NewTextMesh(nil)
	backend.SetFace(basicfont.Face7x13)
	m := NewManager(backend, world, nil)

	m.UpsertHelp("first", geometry.NewVector3(0, 0, 0))
	first := m.Help()
	require.NotNil(t, first)

	m.UpsertHelp("second", geometry.NewVector3(1, 1, 1))
	second := m.Help()
	require.NotNil(t, second)

	assert.NotSame(t, first, second)
	assert.Equal(t, "second", second.Text())
	assert.Len(t, world.Objects(), 1)
}

func TestManagerPromoteMeasurement(t *testing.T) {
	world := scene.NewWorld()
	m := NewManager(NewOverlay(), world, nil)
	line := scene.NewPolyline("measurement line", 8, scene.FlagToolOwned)

	m.UpsertMeasurement("1.00 m", geometry.NewVector3(0, 0, 0), geometry.NewVector3(0, 1, 0), 0)
	promoted := m.PromoteMeasurement(line)

	require.NotNil(t, promoted)
	assert.Nil(t, m.Measurement())
	assert.Empty(t, world.Objects())
	require.Len(t, line.Children(), 1)
	assert.Same(t, promoted, line.Children()[0].(*Label))

	// Nothing left to promote
	assert.Nil(t, m.PromoteMeasurement(line))
}

func TestManagerClear(t *testing.T) {
	world := scene.NewWorld()
	m := NewManager(NewOverlay(), world, nil)

	m.UpsertHelp("help", geometry.NewVector3(0, 0, 0))
	m.UpsertMeasurement("1.00 m", geometry.NewVector3(0, 0, 0), geometry.NewVector3(0, 1, 0), 0)
	require.Len(t, world.Objects(), 2)

	m.Clear()
	assert.Empty(t, world.Objects())
	assert.Nil(t, m.Help())
	assert.Nil(t, m.Measurement())

	// Clear is idempotent
	m.Clear()
	assert.Empty(t, world.Objects())
}

func TestTextMeshWithoutFace(t *testing.T) {
	backend := NewTextMesh(nil)

	l, err := backend.Create("too early", geometry.NewVector3(0, 0, 0))
	assert.NoError(t, err)
	assert.Nil(t, l)

	// The manager treats the miss as a no-op
	world := scene.NewWorld()
	m := NewManager(backend, world, nil)
	m.UpsertHelp("too early", geometry.NewVector3(0, 0, 0))
	assert.Nil(t, m.Help())
	assert.Empty(t, world.Objects())
}

func TestTextMeshRasterizes(t *testing.T) {
	backend := NewTextMesh(nil)
	backend.SetFace(basicfont.Face7x13)

	l, err := backend.Create("2.50 m", geometry.NewVector3(0, 0, 0))
	require.NoError(t, err)
	require.NotNil(t, l)

	img := l.Image()
	require.NotNil(t, img)
	assert.Positive(t, img.Rect.Dx())
	assert.Positive(t, img.Rect.Dy())

	w, h := l.Size()
	assert.Positive(t, w)
	assert.Positive(t, h)

	// Text is baked in
	assert.ErrorIs(t, backend.SetText(l, "changed"), ErrStaticText)
	assert.False(t, backend.UpdatesInPlace())
}

func TestLabelIsToolOwned(t *testing.T) {
	l, err := NewOverlay().Create("help", geometry.NewVector3(0, 0, 0))
	require.NoError(t, err)
	assert.True(t, l.Flags().Has(scene.FlagToolOwned))

	_, _, hit := l.Intersect(geometry.NewRay(geometry.NewVector3(0, 0, 5), geometry.NewVector3(0, 0, -1)))
	assert.False(t, hit)
}
