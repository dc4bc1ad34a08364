package viewer

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/input"
	"github.com/philipparndt/gomeasure/pkg/label"
	"github.com/philipparndt/gomeasure/pkg/pick"
	"github.com/philipparndt/gomeasure/pkg/scene"
)

// MeasureView is an interactive 3D view of a scene graph. It renders
// the graph with a software projection and forwards pointer and key
// events to an input dispatcher, so measurement sessions subscribe to
// the dispatcher without knowing the widget.
type MeasureView struct {
	widget.BaseWidget
	world  *scene.World
	camera *Camera
	events *input.Dispatcher

	width    float64
	height   float64
	objects  []fyne.CanvasObject
	dragging bool
}

// NewMeasureView creates a view of the world framed on bounds
func NewMeasureView(world *scene.World, bounds geometry.BoundingBox) *MeasureView {
	v := &MeasureView{
		world:  world,
		camera: NewCamera(bounds),
		events: input.NewDispatcher(),
	}
	v.ExtendBaseWidget(v)
	return v
}

// Camera returns the view camera
func (v *MeasureView) Camera() *Camera { return v.camera }

// Events returns the dispatcher pointer and key events are pushed into
func (v *MeasureView) Events() *input.Dispatcher { return v.events }

// Viewport exposes the rendered size for hit testing
func (v *MeasureView) Viewport() pick.Viewport { return widgetViewport{v} }

type widgetViewport struct {
	view *MeasureView
}

func (w widgetViewport) Size() (float64, float64) {
	return w.view.width, w.view.height
}

// CreateRenderer creates the renderer for the widget
func (v *MeasureView) CreateRenderer() fyne.WidgetRenderer {
	return &measureViewRenderer{view: v}
}

// Render rebuilds the widget's canvas objects for the given size
func (v *MeasureView) Render(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	v.width = width
	v.height = height
	v.camera.Aspect = width / height

	v.objects = v.objects[:0]
	for _, o := range v.world.Objects() {
		v.drawObject(o)
	}
	v.Refresh()
}

// Redraw re-renders at the last known size
func (v *MeasureView) Redraw() {
	v.Render(v.width, v.height)
}

func (v *MeasureView) drawObject(o scene.Object) {
	switch obj := o.(type) {
	case *scene.Mesh:
		v.drawMesh(obj)
	case *scene.Plane:
		v.drawPlane(obj)
	case *scene.PointCloud:
		v.drawPoints(obj)
	case *scene.Polyline:
		v.drawPolyline(obj)
	case *scene.TriangleFan:
		v.drawFan(obj)
	case *label.Label:
		v.drawLabel(obj)
	}
	for _, child := range o.Children() {
		v.drawObject(child)
	}
}

// drawMesh renders all triangle edges with depth-based brightness
func (v *MeasureView) drawMesh(m *scene.Mesh) {
	for _, triangle := range m.Triangles() {
		vertices := [3]geometry.Vector3{triangle.V1, triangle.V2, triangle.V3}

		for i := 0; i < 3; i++ {
			a := vertices[i]
			b := vertices[(i+1)%3]

			_, _, z1 := v.camera.Project(a, v.width, v.height)
			_, _, z2 := v.camera.Project(b, v.width, v.height)

			avgZ := (z1 + z2) / 2
			brightness := uint8(math.Max(50, math.Min(255, 100+avgZ*5)))

			v.addLine(a, b, color.RGBA{brightness, brightness, brightness, 255}, 1)
		}
	}
}

// drawPlane renders a reference grid centered under the camera target
func (v *MeasureView) drawPlane(p *scene.Plane) {
	const cells = 10
	ext := v.camera.Distance
	if ext <= 0 {
		ext = 10
	}
	step := 2 * ext / cells

	cx := v.camera.Target.X
	cz := v.camera.Target.Z
	gray := color.RGBA{70, 70, 70, 255}

	for i := 0; i <= cells; i++ {
		d := -ext + float64(i)*step
		v.addLine(
			geometry.NewVector3(cx+d, p.Height(), cz-ext),
			geometry.NewVector3(cx+d, p.Height(), cz+ext), gray, 1)
		v.addLine(
			geometry.NewVector3(cx-ext, p.Height(), cz+d),
			geometry.NewVector3(cx+ext, p.Height(), cz+d), gray, 1)
	}
}

// drawPoints renders the drawn range of a point cloud as markers
func (v *MeasureView) drawPoints(p *scene.PointCloud) {
	buf := p.Buffer()
	for i := 0; i < buf.DrawCount(); i++ {
		x, y, z := v.camera.Project(buf.Vertex(i), v.width, v.height)
		if z <= 0.01 {
			continue
		}

		marker := canvas.NewCircle(color.RGBA{255, 80, 80, 255})
		marker.StrokeColor = color.White
		marker.StrokeWidth = 2
		size := float32(10)
		marker.Resize(fyne.NewSize(size, size))
		marker.Move(fyne.NewPos(float32(x)-size/2, float32(y)-size/2))

		v.objects = append(v.objects, marker)
	}
}

// drawPolyline renders the drawn range of a line strip
func (v *MeasureView) drawPolyline(l *scene.Polyline) {
	buf := l.Buffer()
	amber := color.RGBA{255, 200, 0, 255}
	for i := 1; i < buf.DrawCount(); i++ {
		v.addLine(buf.Vertex(i-1), buf.Vertex(i), amber, 2)
	}
}

// drawFan renders the fill preview as translucent triangle edges
func (v *MeasureView) drawFan(f *scene.TriangleFan) {
	buf := f.Buffer()
	fill := color.NRGBA{R: 255, G: 200, B: 0, A: 80}
	for base := 0; base+2 < buf.DrawCount(); base += 3 {
		a := buf.Vertex(base)
		b := buf.Vertex(base + 1)
		c := buf.Vertex(base + 2)
		v.addLine(a, b, fill, 1)
		v.addLine(b, c, fill, 1)
		v.addLine(c, a, fill, 1)
	}
}

// drawLabel renders label text in screen space at the projected anchor
func (v *MeasureView) drawLabel(l *label.Label) {
	x, y, z := v.camera.Project(l.Position(), v.width, v.height)
	if z <= 0.01 {
		return
	}

	text := canvas.NewText(l.Text(), color.White)
	text.TextSize = 14
	text.Move(fyne.NewPos(float32(x), float32(y)))

	v.objects = append(v.objects, text)
}

func (v *MeasureView) addLine(a, b geometry.Vector3, col color.Color, stroke float32) {
	x1, y1, z1 := v.camera.Project(a, v.width, v.height)
	x2, y2, z2 := v.camera.Project(b, v.width, v.height)
	if z1 <= 0.01 && z2 <= 0.01 {
		return
	}

	line := canvas.NewLine(col)
	line.StrokeWidth = stroke
	line.Position1 = fyne.NewPos(float32(x1), float32(y1))
	line.Position2 = fyne.NewPos(float32(x2), float32(y2))

	v.objects = append(v.objects, line)
}

// Tapped forwards a completed primary click. Fyne has already separated
// taps from drags, so the press and release arrive back to back.
func (v *MeasureView) Tapped(ev *fyne.PointEvent) {
	v.forwardClick(ev, input.ButtonPrimary)
}

// TappedSecondary forwards a completed secondary click
func (v *MeasureView) TappedSecondary(ev *fyne.PointEvent) {
	v.forwardClick(ev, input.ButtonSecondary)
}

func (v *MeasureView) forwardClick(ev *fyne.PointEvent, button input.Button) {
	p := input.PointerEvent{
		OffsetX: float64(ev.Position.X),
		OffsetY: float64(ev.Position.Y),
		Button:  button,
	}
	v.events.PointerDown(p)
	v.events.PointerUp(p)
	v.Redraw()
}

// MouseIn implements desktop.Hoverable
func (v *MeasureView) MouseIn(*desktop.MouseEvent) {}

// MouseMoved forwards hover movement so previews can track the cursor
func (v *MeasureView) MouseMoved(ev *desktop.MouseEvent) {
	if v.dragging {
		return
	}
	v.events.PointerMove(input.PointerEvent{
		OffsetX: float64(ev.Position.X),
		OffsetY: float64(ev.Position.Y),
	})
	v.Redraw()
}

// MouseOut implements desktop.Hoverable
func (v *MeasureView) MouseOut() {}

// Dragged orbits the camera
func (v *MeasureView) Dragged(ev *fyne.DragEvent) {
	v.dragging = true
	v.camera.Rotate(float64(-ev.Dragged.DY)*0.01, float64(ev.Dragged.DX)*0.01)
	v.Redraw()
}

// DragEnd finishes a camera orbit
func (v *MeasureView) DragEnd() {
	v.dragging = false
}

// Scrolled zooms the camera
func (v *MeasureView) Scrolled(ev *fyne.ScrollEvent) {
	v.camera.Zoom(-float64(ev.Scrolled.DY) * 0.001)
	v.Redraw()
}

// FocusGained implements fyne.Focusable
func (v *MeasureView) FocusGained() {}

// FocusLost implements fyne.Focusable
func (v *MeasureView) FocusLost() {}

// TypedRune implements fyne.Focusable
func (v *MeasureView) TypedRune(rune) {}

// TypedKey forwards enter and escape presses
func (v *MeasureView) TypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyReturn, fyne.KeyEnter:
		v.events.KeyDown(input.KeyEnter)
	case fyne.KeyEscape:
		v.events.KeyDown(input.KeyEscape)
	default:
		return
	}
	v.Redraw()
}

// measureViewRenderer implements fyne.WidgetRenderer
type measureViewRenderer struct {
	view *MeasureView
}

func (m *measureViewRenderer) Layout(size fyne.Size) {
	m.view.Render(float64(size.Width), float64(size.Height))
}

func (m *measureViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (m *measureViewRenderer) Refresh() {
	canvas.Refresh(m.view)
}

func (m *measureViewRenderer) Objects() []fyne.CanvasObject {
	return m.view.objects
}

func (m *measureViewRenderer) Destroy() {}
