package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gomeasure/pkg/scene"
)

func TestDragRegistryRegisterAndClear(t *testing.T) {
	r := NewDragRegistry()
	a := scene.NewGroundPlane("a", 0, 0)
	b := scene.NewGroundPlane("b", 0, 0)

	r.Register(a)
	r.Register(b)
	require.Len(t, r.Objects, 2)

	// Clear keeps the backing storage for the collaborator's view
	r.Clear()
	assert.Empty(t, r.Objects)
	assert.GreaterOrEqual(t, cap(r.Objects), 2)

	r.Register(a)
	assert.Len(t, r.Objects, 1)
}

func TestDragRegistryTolerant(t *testing.T) {
	var r *DragRegistry
	assert.NotPanics(t, func() {
		r.Register(scene.NewGroundPlane("a", 0, 0))
		r.Clear()
	})

	reg := NewDragRegistry()
	reg.Register(nil)
	assert.Empty(t, reg.Objects)
}
