package measure

import "github.com/philipparndt/gomeasure/pkg/scene"

// DragRegistry collects the objects an external drag collaborator may
// move around, typically the value labels of a completed measurement.
// Collaborators read Objects through the registry; Clear truncates the
// slice in place so their view empties with it.
type DragRegistry struct {
	Objects []scene.Object
}

// NewDragRegistry creates an empty registry
func NewDragRegistry() *DragRegistry {
	return &DragRegistry{}
}

// Register adds an object to the draggable set. Nil registries and
// objects are tolerated.
func (r *DragRegistry) Register(o scene.Object) {
	if r == nil || o == nil {
		return
	}
	r.Objects = append(r.Objects, o)
}

// Clear empties the draggable set, keeping the backing storage
func (r *DragRegistry) Clear() {
	if r == nil {
		return
	}
	r.Objects = r.Objects[:0]
}
