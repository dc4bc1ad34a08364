// Package pick resolves pointer positions into world-space scene hits.
// It owns the offset-to-NDC conversion, the tool-owned filtering and
// the distance cutoff, so the measurement session only ever sees
// usable hit points.
package pick

import (
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/scene"
)

// DefaultMaxDistance is the default cutoff between the camera and an
// acceptable hit point
const DefaultMaxDistance = 500.0

// Camera produces picking rays from normalized device coordinates
type Camera interface {
	ScreenRay(ndcX, ndcY float64) geometry.Ray
}

// Viewport reports the rendered element size. This must be the
// size the pointer offsets are relative to, not the backing buffer
// resolution.
type Viewport interface {
	Size() (width, height float64)
}

// HitTester casts pointer positions into the scene
type HitTester struct {
	Camera      Camera
	Viewport    Viewport
	Graph       scene.Graph
	MaxDistance float64
}

// New creates a hit tester with the default distance cutoff
func New(camera Camera, viewport Viewport, graph scene.Graph) *HitTester {
	return &HitTester{
		Camera:      camera,
		Viewport:    viewport,
		Graph:       graph,
		MaxDistance: DefaultMaxDistance,
	}
}

// HitAt resolves element-relative pointer offsets into the nearest
// scene hit, skipping tool-owned geometry. It reports a miss when a
// collaborator is missing, nothing intersects, or the nearest hit lies
// at or beyond MaxDistance.
func (h *HitTester) HitAt(offsetX, offsetY float64) (scene.Hit, bool) {
	if h.Camera == nil || h.Viewport == nil || h.Graph == nil {
		return scene.Hit{}, false
	}

	width, height := h.Viewport.Size()
	if width <= 0 || height <= 0 {
		return scene.Hit{}, false
	}

	ndcX := (2.0 * offsetX / width) - 1.0
	ndcY := 1.0 - (2.0 * offsetY / height)
	ray := h.Camera.ScreenRay(ndcX, ndcY)

	for _, hit := range h.Graph.IntersectRay(ray) {
		if hit.Object.Flags().Has(scene.FlagToolOwned) {
			continue
		}
		// Hits are distance sorted, so the first foreign hit decides
		if hit.Distance < h.MaxDistance {
			return hit, true
		}
		return scene.Hit{}, false
	}
	return scene.Hit{}, false
}
