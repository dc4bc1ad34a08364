package scene

import "github.com/philipparndt/gomeasure/pkg/geometry"

// VertexBuffer is a preallocated position buffer with an explicit draw
// count. The backing storage is sized once at construction and never
// grows; renderers upload the full buffer and draw only the first
// DrawCount vertices.
type VertexBuffer struct {
	data      []float32 // 3 components per vertex
	drawCount int
}

// NewVertexBuffer allocates a buffer for capacity vertices
func NewVertexBuffer(capacity int) *VertexBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &VertexBuffer{data: make([]float32, 3*capacity)}
}

// Capacity returns the number of vertices the buffer can hold
func (b *VertexBuffer) Capacity() int {
	return len(b.data) / 3
}

// SetVertex writes the three components of vertex i at offset 3i.
// Writes outside the capacity are rejected.
func (b *VertexBuffer) SetVertex(i int, p geometry.Vector3) bool {
	if i < 0 || i >= b.Capacity() {
		return false
	}
	b.data[3*i] = float32(p.X)
	b.data[3*i+1] = float32(p.Y)
	b.data[3*i+2] = float32(p.Z)
	return true
}

// Vertex reads vertex i back; out-of-range indices return the zero
// vector
func (b *VertexBuffer) Vertex(i int) geometry.Vector3 {
	if i < 0 || i >= b.Capacity() {
		return geometry.Vector3{}
	}
	return geometry.Vector3{
		X: float64(b.data[3*i]),
		Y: float64(b.data[3*i+1]),
		Z: float64(b.data[3*i+2]),
	}
}

// SetDrawCount sets the number of vertices renderers should draw,
// clamped to the capacity
func (b *VertexBuffer) SetDrawCount(n int) {
	if n < 0 {
		n = 0
	}
	if max := b.Capacity(); n > max {
		n = max
	}
	b.drawCount = n
}

// DrawCount returns the number of vertices renderers should draw
func (b *VertexBuffer) DrawCount() int {
	return b.drawCount
}

// Data exposes the raw component array for renderer upload
func (b *VertexBuffer) Data() []float32 {
	return b.data
}
