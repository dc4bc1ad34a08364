package scene

import "github.com/philipparndt/gomeasure/pkg/geometry"

// arcSamples is the number of points an arc polyline is built from
const arcSamples = 5

// PointCloud renders its buffer as individual point markers
type PointCloud struct {
	Node
	buf   *VertexBuffer
	count int
}

// NewPointCloud creates a point cloud with a fixed capacity
func NewPointCloud(name string, capacity int, flags Flag) *PointCloud {
	return &PointCloud{
		Node: NewNode(name, flags),
		buf:  NewVertexBuffer(capacity),
	}
}

// Append adds a point and extends the draw count. Appends beyond the
// capacity are rejected.
func (p *PointCloud) Append(pt geometry.Vector3) bool {
	if !p.buf.SetVertex(p.count, pt) {
		return false
	}
	p.count++
	p.buf.SetDrawCount(p.count)
	return true
}

// Set overwrites point i without changing the count
func (p *PointCloud) Set(i int, pt geometry.Vector3) bool {
	return p.buf.SetVertex(i, pt)
}

// SetDrawCount overrides the number of points drawn
func (p *PointCloud) SetDrawCount(n int) {
	p.buf.SetDrawCount(n)
}

// Len returns the number of appended points
func (p *PointCloud) Len() int { return p.count }

// Point returns point i
func (p *PointCloud) Point(i int) geometry.Vector3 { return p.buf.Vertex(i) }

// Buffer exposes the underlying vertex buffer for rendering
func (p *PointCloud) Buffer() *VertexBuffer { return p.buf }

// Intersect always misses; markers have no pickable surface
func (p *PointCloud) Intersect(geometry.Ray) (geometry.Vector3, float64, bool) {
	return geometry.Vector3{}, 0, false
}

// Polyline renders its buffer as a connected line strip
type Polyline struct {
	Node
	buf   *VertexBuffer
	count int
}

// NewPolyline creates a line strip with a fixed capacity. One spare
// vertex beyond the capacity is reserved for a closing vertex.
func NewPolyline(name string, capacity int, flags Flag) *Polyline {
	return &Polyline{
		Node: NewNode(name, flags),
		buf:  NewVertexBuffer(capacity + 1),
	}
}

// Append adds a vertex and extends the draw count. Appends beyond the
// capacity are rejected.
func (l *Polyline) Append(p geometry.Vector3) bool {
	if l.count >= l.buf.Capacity()-1 {
		return false
	}
	l.buf.SetVertex(l.count, p)
	l.count++
	l.buf.SetDrawCount(l.count)
	return true
}

// Close appends the given point in the reserved closing slot so the
// strip visually returns to it. The appended vertices stay untouched.
func (l *Polyline) Close(p geometry.Vector3) {
	l.buf.SetVertex(l.count, p)
	l.buf.SetDrawCount(l.count + 1)
}

// Set overwrites vertex i without changing the count
func (l *Polyline) Set(i int, p geometry.Vector3) bool {
	return l.buf.SetVertex(i, p)
}

// SetDrawCount overrides the number of vertices drawn
func (l *Polyline) SetDrawCount(n int) {
	l.buf.SetDrawCount(n)
}

// Len returns the number of appended vertices, not counting a closing
// vertex
func (l *Polyline) Len() int { return l.count }

// Point returns vertex i
func (l *Polyline) Point(i int) geometry.Vector3 { return l.buf.Vertex(i) }

// Buffer exposes the underlying vertex buffer for rendering
func (l *Polyline) Buffer() *VertexBuffer { return l.buf }

// Intersect always misses; measurement lines have no pickable surface
func (l *Polyline) Intersect(geometry.Ray) (geometry.Vector3, float64, bool) {
	return geometry.Vector3{}, 0, false
}

// NewArc builds a polyline tracing the quadratic Bezier curve from
// start to end with the given control point
func NewArc(name string, start, ctrl, end geometry.Vector3, flags Flag) *Polyline {
	arc := NewPolyline(name, arcSamples, flags)
	for _, p := range geometry.SampleQuadraticBezier(start, ctrl, end, arcSamples) {
		arc.Append(p)
	}
	return arc
}

// TriangleFan renders a filled fan anchored at its first point. Every
// point appended after the second adds the triangle (first, new, last),
// matching the fan area computation.
type TriangleFan struct {
	Node
	buf    *VertexBuffer
	points []geometry.Vector3
}

// NewTriangleFan creates a fan for an outline of up to capacity points
func NewTriangleFan(name string, capacity int, flags Flag) *TriangleFan {
	triangles := capacity - 2
	if triangles < 0 {
		triangles = 0
	}
	return &TriangleFan{
		Node:   NewNode(name, flags),
		buf:    NewVertexBuffer(3 * triangles),
		points: make([]geometry.Vector3, 0, capacity),
	}
}

// Append adds an outline point. From the third point on, each append
// writes one triangle into the buffer.
func (f *TriangleFan) Append(p geometry.Vector3) bool {
	if len(f.points) == cap(f.points) {
		return false
	}

	f.points = append(f.points, p)
	n := len(f.points)
	if n < 3 {
		return true
	}

	base := 3 * (n - 3)
	f.buf.SetVertex(base, f.points[0])
	f.buf.SetVertex(base+1, p)
	f.buf.SetVertex(base+2, f.points[n-2])
	f.buf.SetDrawCount(base + 3)
	return true
}

// Len returns the number of outline points
func (f *TriangleFan) Len() int { return len(f.points) }

// Buffer exposes the underlying vertex buffer for rendering
func (f *TriangleFan) Buffer() *VertexBuffer { return f.buf }

// Intersect always misses; the fill preview has no pickable surface
func (f *TriangleFan) Intersect(geometry.Ray) (geometry.Vector3, float64, bool) {
	return geometry.Vector3{}, 0, false
}
