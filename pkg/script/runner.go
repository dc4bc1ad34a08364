package script

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/input"
	"github.com/philipparndt/gomeasure/pkg/label"
	"github.com/philipparndt/gomeasure/pkg/measure"
	"github.com/philipparndt/gomeasure/pkg/pick"
	"github.com/philipparndt/gomeasure/pkg/scene"
	"github.com/philipparndt/gomeasure/pkg/stl"
	"github.com/philipparndt/gomeasure/pkg/viewer"
)

// Scripts address a fixed element size; move and click offsets are
// relative to this viewport
const (
	viewportWidth  = 800.0
	viewportHeight = 600.0
)

// Result is the replayed scene plus the session summary
type Result struct {
	World     *scene.World
	Camera    *viewer.Camera
	Mode      measure.Mode
	Points    []geometry.Vector3
	Value     float64
	Completed bool
	Formatted string
}

// Run replays the script against a headless measurement setup
func Run(sc *Script, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}

	r := &runner{
		log:    log,
		world:  scene.NewWorld(),
		events: input.NewDispatcher(),
		now:    time.Unix(0, 0),
	}

	for _, st := range sc.Statements {
		// Virtual time, one second per statement, keeps scripted
		// clicks clear of the debounce window
		r.now = r.now.Add(time.Second)
		if err := r.exec(st); err != nil {
			return nil, fmt.Errorf("line %d: %w", st.Pos.Line, err)
		}
	}

	return r.result(), nil
}

// RunFile parses and replays a script file
func RunFile(path string, log *zap.Logger) (*Result, error) {
	sc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Run(sc, log)
}

type runner struct {
	log    *zap.Logger
	world  *scene.World
	events *input.Dispatcher

	camera    *viewer.Camera
	frameDist float64
	session   *measure.Session
	now       time.Time
}

type runnerViewport struct{}

func (runnerViewport) Size() (float64, float64) {
	return viewportWidth, viewportHeight
}

func (r *runner) exec(st *Statement) error {
	switch {
	case st.Model != nil:
		return r.loadModel(string(st.Model.Path))

	case st.Plane != nil:
		r.addPlane(st.Plane.Height)

	case st.Camera != nil:
		r.orientCamera(st.Camera)

	case st.Open != nil:
		return r.open(st.Open.Mode)

	case st.Move != nil:
		r.events.PointerMove(input.PointerEvent{OffsetX: st.Move.X, OffsetY: st.Move.Y})

	case st.Click != nil:
		ev := input.PointerEvent{OffsetX: st.Click.X, OffsetY: st.Click.Y, Button: input.ButtonPrimary}
		r.events.PointerDown(ev)
		r.events.PointerUp(ev)

	case st.Secondary != nil:
		ev := input.PointerEvent{Button: input.ButtonSecondary}
		r.events.PointerDown(ev)
		r.events.PointerUp(ev)

	case st.Press != nil:
		if st.Press.Key == "escape" {
			r.events.KeyDown(input.KeyEscape)
		} else {
			r.events.KeyDown(input.KeyEnter)
		}
	}
	return nil
}

func (r *runner) loadModel(path string) error {
	model, err := stl.Parse(path)
	if err != nil {
		return err
	}

	r.world.Add(model.Mesh("", 0))
	r.frame(model.BoundingBox())
	r.log.Info("model loaded",
		zap.String("path", path),
		zap.Int("triangles", model.TriangleCount()))
	return nil
}

func (r *runner) addPlane(height float64) {
	r.world.Add(scene.NewGroundPlane("ground", height, 0))

	// Frame a nominal patch of the infinite plane
	box := geometry.NewBoundingBox()
	box.Extend(geometry.NewVector3(-5, height, -5))
	box.Extend(geometry.NewVector3(5, height, 5))
	r.frame(box)
}

// frame points the camera at the given bounds. The camera object is
// created once and mutated afterwards so the hit tester can hold on
// to it.
func (r *runner) frame(bounds geometry.BoundingBox) {
	if r.camera == nil {
		r.camera = viewer.NewCamera(bounds)
	} else {
		r.camera.Frame(bounds)
	}
	r.camera.Aspect = viewportWidth / viewportHeight
	r.frameDist = r.camera.Distance
}

func (r *runner) ensureCamera() {
	if r.camera != nil {
		return
	}
	box := geometry.NewBoundingBox()
	box.Extend(geometry.NewVector3(-5, -5, -5))
	box.Extend(geometry.NewVector3(5, 5, 5))
	r.frame(box)
}

func (r *runner) orientCamera(st *CameraStmt) {
	r.ensureCamera()
	r.camera.RotationX = st.AngleX
	r.camera.RotationY = st.AngleY
	r.camera.Distance = st.DistanceFactor * r.frameDist
	r.camera.UpdatePosition()
}

func (r *runner) open(mode string) error {
	r.ensureCamera()

	if r.session == nil {
		r.session = measure.NewSession(measure.Deps{
			Graph:    r.world,
			Input:    r.events,
			Picker:   pick.New(r.camera, runnerViewport{}, r.world),
			Labels:   label.NewManager(label.NewOverlay(), r.world, r.log),
			Registry: measure.NewDragRegistry(),
			Log:      r.log,
		}, measure.Config{Now: func() time.Time { return r.now }})
	}

	_, err := r.session.Open(parseMode(mode))
	return err
}

func parseMode(s string) measure.Mode {
	switch s {
	case "area":
		return measure.Area
	case "angle":
		return measure.Angle
	default:
		return measure.Distance
	}
}

func (r *runner) result() *Result {
	r.ensureCamera()

	res := &Result{World: r.world, Camera: r.camera}
	if r.session == nil {
		return res
	}

	res.Mode = r.session.Mode()
	res.Points = r.session.Points()
	res.Value = r.session.Value()
	res.Completed = r.session.Completed()
	res.Formatted = label.FormatMeasurement(res.Value, res.Mode.Unit())
	return res
}
