package export

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/label"
	"github.com/philipparndt/gomeasure/pkg/scene"
	"github.com/philipparndt/gomeasure/pkg/viewer"
)

// Canvas units map 1:1 to viewport pixels. Font sizes are in points,
// so text heights convert through this factor.
const ptPerUnit = 72.0 / 25.4

const (
	labelFontHeight = 13.0
	labelPadX       = 8.0
	labelPadY       = 4.0
	markerRadius    = 4.0
	lineWidth       = 2.0
	gridWidth       = 1.0
)

var (
	backgroundColor = color.RGBA{24, 24, 28, 255}
	gridColor       = color.RGBA{70, 70, 70, 255}
	lineColor       = color.RGBA{255, 200, 0, 255}
	fillColor       = color.RGBA{128, 100, 0, 255}
	markerColor     = color.RGBA{255, 80, 80, 255}
	labelBgColor    = color.RGBA{20, 20, 20, 220}
	labelEdgeColor  = color.RGBA{100, 100, 100, 255}
	noColor         = color.RGBA{0, 0, 0, 0}
)

// Write projects the world through the camera and writes it to path.
// The format follows the file extension (.svg, .pdf or .png).
func Write(path string, world *scene.World, cam *viewer.Camera, width, height float64) error {
	c, err := Render(world, cam, width, height)
	if err != nil {
		return err
	}

	var opts []interface{}
	if strings.EqualFold(filepath.Ext(path), ".png") {
		// one raster pixel per canvas unit
		opts = append(opts, canvas.DPMM(1.0))
	}
	if err := renderers.Write(path, c, opts...); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Render draws the world onto a new canvas of the given size. The draw
// order matches the offscreen snapshot, with meshes painter-sorted since
// a vector canvas has no depth buffer.
func Render(world *scene.World, cam *viewer.Camera, width, height float64) (*canvas.Canvas, error) {
	if world == nil || cam == nil {
		return nil, errors.New("export needs a world and a camera")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid export size %vx%v", width, height)
	}

	face, err := labelFace()
	if err != nil {
		return nil, err
	}

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	s := &vectorScene{
		ctx:    ctx,
		cam:    cam,
		width:  width,
		height: height,
		face:   face,
	}

	ctx.SetFillColor(backgroundColor)
	ctx.SetStrokeColor(noColor)
	ctx.DrawPath(0, 0, canvas.Rectangle(width, height))

	for _, o := range world.Objects() {
		s.draw(o)
	}
	return c, nil
}

func labelFace() (*canvas.FontFace, error) {
	family := canvas.NewFontFamily("go")
	if err := family.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("loading label font: %w", err)
	}
	return family.Face(labelFontHeight*ptPerUnit, canvas.White, canvas.FontRegular, canvas.FontNormal), nil
}

// vectorScene carries the state of one export render
type vectorScene struct {
	ctx    *canvas.Context
	cam    *viewer.Camera
	width  float64
	height float64
	face   *canvas.FontFace
}

// projected is a screen-space vertex with its camera-space depth
type projected struct {
	x, y, z float64
}

func (s *vectorScene) project(p geometry.Vector3) projected {
	x, y, z := s.cam.Project(p, s.width, s.height)
	return projected{x, y, z}
}

func (s *vectorScene) draw(o scene.Object) {
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

// drawMesh fills the triangles back to front, shaded by facing angle
func (s *vectorScene) drawMesh(m *scene.Mesh) {
	light := geometry.NewVector3(0.4, 0.8, 0.45).Normalize()

	type shadedTriangle struct {
		v0, v1, v2 projected
		depth      float64
		col        color.RGBA
	}

	tris := make([]shadedTriangle, 0, len(m.Triangles()))
	for _, tri := range m.Triangles() {
		v0 := s.project(tri.V1)
		v1 := s.project(tri.V2)
		v2 := s.project(tri.V3)
		if v0.z <= 0.01 || v1.z <= 0.01 || v2.z <= 0.01 {
			continue
		}

		normal := tri.Normal
		if normal.Length() == 0 {
			normal = tri.CalculateNormal()
		}
		shade := normal.Dot(light)
		if shade < 0 {
			shade = -shade
		}
		c := uint8(70 + 150*shade)

		tris = append(tris, shadedTriangle{
			v0: v0, v1: v1, v2: v2,
			depth: (v0.z + v1.z + v2.z) / 3,
			col:   color.RGBA{c, c, c, 255},
		})
	}

	sort.Slice(tris, func(i, j int) bool { return tris[i].depth > tris[j].depth })

	for _, tri := range tris {
		s.fillTriangle(tri.v0, tri.v1, tri.v2, tri.col)
	}
}

// drawPlane draws a reference grid centered under the camera target
func (s *vectorScene) drawPlane(p *scene.Plane) {
	const cells = 10
	ext := s.cam.Distance
	if ext <= 0 {
		ext = 10
	}
	step := 2 * ext / cells

	cx := s.cam.Target.X
	cz := s.cam.Target.Z

	for i := 0; i <= cells; i++ {
		d := -ext + float64(i)*step
		s.strokeSegment(
			geometry.NewVector3(cx+d, p.Height(), cz-ext),
			geometry.NewVector3(cx+d, p.Height(), cz+ext), gridColor, gridWidth)
		s.strokeSegment(
			geometry.NewVector3(cx-ext, p.Height(), cz+d),
			geometry.NewVector3(cx+ext, p.Height(), cz+d), gridColor, gridWidth)
	}
}

// drawPoints stamps a disc per drawn point
func (s *vectorScene) drawPoints(p *scene.PointCloud) {
	buf := p.Buffer()
	for i := 0; i < buf.DrawCount(); i++ {
		v := s.project(buf.Vertex(i))
		if v.z <= 0.01 {
			continue
		}
		s.ctx.SetFillColor(markerColor)
		s.ctx.SetStrokeColor(noColor)
		s.ctx.DrawPath(v.x, v.y, canvas.Circle(markerRadius))
	}
}

// drawPolyline strokes the drawn range of a line strip
func (s *vectorScene) drawPolyline(l *scene.Polyline) {
	buf := l.Buffer()
	if buf.DrawCount() < 2 {
		return
	}

	s.ctx.SetFillColor(noColor)
	s.ctx.SetStrokeColor(lineColor)
	s.ctx.SetStrokeWidth(lineWidth)

	p := &canvas.Path{}
	started := false
	for i := 0; i < buf.DrawCount(); i++ {
		v := s.project(buf.Vertex(i))
		if v.z <= 0.01 {
			started = false
			continue
		}
		if !started {
			p.MoveTo(v.x, v.y)
			started = true
			continue
		}
		p.LineTo(v.x, v.y)
	}
	s.ctx.DrawPath(0, 0, p)
}

// drawFan fills the area preview triangles
func (s *vectorScene) drawFan(f *scene.TriangleFan) {
	buf := f.Buffer()
	for base := 0; base+2 < buf.DrawCount(); base += 3 {
		v0 := s.project(buf.Vertex(base))
		v1 := s.project(buf.Vertex(base + 1))
		v2 := s.project(buf.Vertex(base + 2))
		if v0.z <= 0.01 || v1.z <= 0.01 || v2.z <= 0.01 {
			continue
		}
		s.fillTriangle(v0, v1, v2, fillColor)
	}
}

// drawLabel draws the label text in a bordered box on the anchor
func (s *vectorScene) drawLabel(l *label.Label) {
	text := l.Text()
	if text == "" {
		return
	}
	v := s.project(l.Position())
	if v.z <= 0.01 {
		return
	}

	metrics := s.face.Metrics()
	textW := s.face.TextWidth(text)
	textH := metrics.Ascent + metrics.Descent

	boxW := textW + 2*labelPadX
	boxH := textH + 2*labelPadY
	left := v.x - boxW/2
	top := v.y - boxH/2

	s.ctx.SetFillColor(labelBgColor)
	s.ctx.SetStrokeColor(labelEdgeColor)
	s.ctx.SetStrokeWidth(1)
	s.ctx.DrawPath(left, top, canvas.Rectangle(boxW, boxH))

	line := canvas.NewTextLine(s.face, text, canvas.Center)
	s.ctx.DrawText(v.x, top+labelPadY+metrics.Ascent, line)
}

func (s *vectorScene) fillTriangle(v0, v1, v2 projected, col color.RGBA) {
	s.ctx.SetFillColor(col)
	s.ctx.SetStrokeColor(noColor)

	p := &canvas.Path{}
	p.MoveTo(v0.x, v0.y)
	p.LineTo(v1.x, v1.y)
	p.LineTo(v2.x, v2.y)
	p.Close()
	s.ctx.DrawPath(0, 0, p)
}

func (s *vectorScene) strokeSegment(a, b geometry.Vector3, col color.RGBA, width float64) {
	pa := s.project(a)
	pb := s.project(b)
	if pa.z <= 0.01 || pb.z <= 0.01 {
		return
	}

	s.ctx.SetFillColor(noColor)
	s.ctx.SetStrokeColor(col)
	s.ctx.SetStrokeWidth(width)

	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(pb.x-pa.x, pb.y-pa.y)
	s.ctx.DrawPath(pa.x, pa.y, p)
}
