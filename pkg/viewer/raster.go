package viewer

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/label"
	"github.com/philipparndt/gomeasure/pkg/scene"
)

// Snapshot renders the world into an offscreen image through the given
// camera. Exports and script replays use this path, so it carries no
// windowing dependencies.
func Snapshot(world *scene.World, cam *Camera, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{24, 24, 28, 255}), image.Point{}, draw.Src)

	zbuffer := make([]float64, width*height)
	for i := range zbuffer {
		zbuffer[i] = math.MaxFloat64
	}

	s := &offscreen{
		img:     img,
		zbuffer: zbuffer,
		cam:     cam,
		width:   float64(width),
		height:  float64(height),
	}
	for _, o := range world.Objects() {
		s.draw(o)
	}
	return img
}

// offscreen carries the state of one snapshot render
type offscreen struct {
	img     *image.RGBA
	zbuffer []float64
	cam     *Camera
	width   float64
	height  float64
}

// screenVertex is a projected vertex with its camera-space depth
type screenVertex struct {
	x, y, z float64
}

func (s *offscreen) project(p geometry.Vector3) screenVertex {
	x, y, z := s.cam.Project(p, s.width, s.height)
	return screenVertex{x, y, z}
}

func (s *offscreen) draw(o scene.Object) {
	switch obj := o.(type) {
	case *scene.Mesh:
		s.drawMesh(obj)
	case *scene.Plane:
		s.drawPlane(obj)
	case *scene.PointCloud:
		s.drawPoints(obj)
	case *scene.Polyline:
		s.drawPolyline(obj)
	case *scene.TriangleFan:
		s.drawFan(obj)
	case *label.Label:
		s.drawLabel(obj)
	}
	for _, child := range o.Children() {
		s.draw(child)
	}
}

// drawMesh fills depth-tested triangles shaded by their facing angle
func (s *offscreen) drawMesh(m *scene.Mesh) {
	light := geometry.NewVector3(0.4, 0.8, 0.45).Normalize()

	for _, tri := range m.Triangles() {
		normal := tri.Normal
		if normal.Length() == 0 {
			normal = tri.CalculateNormal()
		}
		shade := math.Abs(normal.Dot(light))
		c := uint8(70 + 150*shade)

		v0 := s.project(tri.V1)
		v1 := s.project(tri.V2)
		v2 := s.project(tri.V3)
		if v0.z <= 0.01 || v1.z <= 0.01 || v2.z <= 0.01 {
			continue
		}
		s.fillTriangle(v0, v1, v2, color.RGBA{c, c, c, 255})
	}
}

// drawPlane draws a reference grid centered under the camera target
func (s *offscreen) drawPlane(p *scene.Plane) {
	const cells = 10
	ext := s.cam.Distance
	if ext <= 0 {
		ext = 10
	}
	step := 2 * ext / cells

	cx := s.cam.Target.X
	cz := s.cam.Target.Z
	gray := color.RGBA{70, 70, 70, 255}

	for i := 0; i <= cells; i++ {
		d := -ext + float64(i)*step
		s.drawSegment(
			geometry.NewVector3(cx+d, p.Height(), cz-ext),
			geometry.NewVector3(cx+d, p.Height(), cz+ext), gray)
		s.drawSegment(
			geometry.NewVector3(cx-ext, p.Height(), cz+d),
			geometry.NewVector3(cx+ext, p.Height(), cz+d), gray)
	}
}

// drawPoints stamps a small disc per drawn point
func (s *offscreen) drawPoints(p *scene.PointCloud) {
	buf := p.Buffer()
	for i := 0; i < buf.DrawCount(); i++ {
		v := s.project(buf.Vertex(i))
		if v.z <= 0.01 {
			continue
		}
		s.disc(int(v.x), int(v.y), 4, color.RGBA{255, 80, 80, 255})
	}
}

// drawPolyline draws the drawn range of a line strip. Lines skip the
// depth test so measurement annotations stay visible on the model.
func (s *offscreen) drawPolyline(l *scene.Polyline) {
	buf := l.Buffer()
	amber := color.RGBA{255, 200, 0, 255}
	for i := 1; i < buf.DrawCount(); i++ {
		s.drawSegment(buf.Vertex(i-1), buf.Vertex(i), amber)
	}
}

// drawFan fills the area preview triangles in a dimmed accent color
func (s *offscreen) drawFan(f *scene.TriangleFan) {
	buf := f.Buffer()
	fill := color.RGBA{128, 100, 0, 255}
	for base := 0; base+2 < buf.DrawCount(); base += 3 {
		v0 := s.project(buf.Vertex(base))
		v1 := s.project(buf.Vertex(base + 1))
		v2 := s.project(buf.Vertex(base + 2))
		if v0.z <= 0.01 || v1.z <= 0.01 || v2.z <= 0.01 {
			continue
		}
		s.fillTriangle(v0, v1, v2, fill)
	}
}

// drawLabel blits rasterized label text centered on the anchor.
// Overlay labels carry no raster and are marked with a cross.
func (s *offscreen) drawLabel(l *label.Label) {
	v := s.project(l.Position())
	if v.z <= 0.01 {
		return
	}
	x, y := int(v.x), int(v.y)

	if img := l.Image(); img != nil {
		size := img.Bounds().Size()
		target := image.Rect(0, 0, size.X, size.Y).
			Add(image.Pt(x-size.X/2, y-size.Y/2))
		draw.Draw(s.img, target, img, img.Bounds().Min, draw.Over)
		return
	}

	white := color.RGBA{255, 255, 255, 255}
	s.line(x-4, y, x+4, y, white)
	s.line(x, y-4, x, y+4, white)
}

// fillTriangle fills a depth-tested triangle with a scanline sweep
func (s *offscreen) fillTriangle(v0, v1, v2 screenVertex, col color.RGBA) {
	// Sort vertices by Y coordinate (top to bottom)
	if v0.y > v1.y {
		v0, v1 = v1, v0
	}
	if v1.y > v2.y {
		v1, v2 = v2, v1
	}
	if v0.y > v1.y {
		v0, v1 = v1, v0
	}

	bounds := s.img.Bounds()
	width := bounds.Max.X

	for y := int(math.Max(0, v0.y)); y <= int(math.Min(float64(bounds.Max.Y-1), v2.y)); y++ {
		fy := float64(y)

		// Intersect the scanline with the triangle edges
		var xs, zs [2]float64
		found := 0
		for _, e := range [3][2]screenVertex{{v0, v1}, {v1, v2}, {v0, v2}} {
			a, b := e[0], e[1]
			if a.y == b.y || fy < a.y || fy > b.y {
				continue
			}
			if found < 2 {
				t := (fy - a.y) / (b.y - a.y)
				xs[found] = a.x + t*(b.x-a.x)
				zs[found] = a.z + t*(b.z-a.z)
				found++
			}
		}
		if found < 2 {
			continue
		}

		xStart, xEnd := xs[0], xs[1]
		zStart, zEnd := zs[0], zs[1]
		if xStart > xEnd {
			xStart, xEnd = xEnd, xStart
			zStart, zEnd = zEnd, zStart
		}

		left := int(math.Max(0, xStart))
		right := int(math.Min(float64(bounds.Max.X-1), xEnd))

		for x := left; x <= right; x++ {
			t := 0.0
			if xEnd != xStart {
				t = (float64(x) - xStart) / (xEnd - xStart)
			}
			z := zStart + t*(zEnd-zStart)

			// Depth test - draw if closer (smaller z)
			idx := y*width + x
			if idx >= 0 && idx < len(s.zbuffer) && z < s.zbuffer[idx] {
				s.zbuffer[idx] = z
				s.img.SetRGBA(x, y, col)
			}
		}
	}
}

// drawSegment projects a world-space segment and rasterizes it
func (s *offscreen) drawSegment(a, b geometry.Vector3, col color.RGBA) {
	pa := s.project(a)
	pb := s.project(b)
	if pa.z <= 0.01 && pb.z <= 0.01 {
		return
	}
	s.line(int(pa.x), int(pa.y), int(pb.x), int(pb.y), col)
}

// line draws a clipped line using Bresenham's algorithm
func (s *offscreen) line(x1, y1, x2, y2 int, col color.RGBA) {
	// Near-plane projections can land absurdly far off screen and
	// would make the walk below step millions of times
	const maxCoord = 1 << 14
	if abs(x1) > maxCoord || abs(y1) > maxCoord || abs(x2) > maxCoord || abs(y2) > maxCoord {
		return
	}

	bounds := s.img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := -1
	if x1 < x2 {
		sx = 1
	}
	sy := -1
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy

	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			s.img.SetRGBA(x1, y1, col)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// disc stamps a filled circle of the given radius
func (s *offscreen) disc(cx, cy, r int, col color.RGBA) {
	bounds := s.img.Bounds()
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			x, y := cx+dx, cy+dy
			if x >= 0 && x < bounds.Max.X && y >= 0 && y < bounds.Max.Y {
				s.img.SetRGBA(x, y, col)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
