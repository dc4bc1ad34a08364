package app

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/philipparndt/gomeasure/internal/config"
	"github.com/philipparndt/gomeasure/pkg/input"
	"github.com/philipparndt/gomeasure/pkg/label"
	"github.com/philipparndt/gomeasure/pkg/measure"
	"github.com/philipparndt/gomeasure/pkg/pick"
	"github.com/philipparndt/gomeasure/pkg/scene"
	"github.com/philipparndt/gomeasure/pkg/stl"
	"github.com/philipparndt/gomeasure/pkg/viewer"
)

// App is the interactive viewer: a raylib window hosting the shared
// scene graph, the orbit camera and one measurement session.
type App struct {
	cfg *config.Config
	log *zap.Logger

	world     *scene.World
	sceneMesh *scene.Mesh
	events    *input.Dispatcher
	session   *measure.Session

	Camera      CameraState
	Model       ModelData
	View        ViewSettings
	Interaction InteractionState
	FileWatch   FileWatchState
	UI          UIState
}

// screenViewport reports the live window size, so picking stays
// correct across resizes. Pointer offsets and screen size share the
// same logical pixels on raylib.
type screenViewport struct{}

func (screenViewport) Size() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

// Run opens the interactive viewer on an STL or OpenSCAD file and
// blocks until the window is closed
func Run(path string, cfg *config.Config, log *zap.Logger) error {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}

	model, tempFile, err := loadModel(path)
	if err != nil {
		return err
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Viewer.Width), int32(cfg.Viewer.Height), "GoMeasure")
	rl.SetTargetFPS(60)

	app := newApp(path, model, tempFile, cfg, log)
	defer app.shutdown()

	if err := app.setupFileWatcher(); err != nil {
		log.Warn("file watching unavailable, auto-reload disabled", zap.Error(err))
	}

	app.loop()
	return nil
}

func newApp(path string, model *stl.Model, tempFile string, cfg *config.Config, log *zap.Logger) *App {
	app := &App{
		cfg:    cfg,
		log:    log,
		world:  scene.NewWorld(),
		events: input.NewDispatcher(),
		View:   ViewSettings{showFilled: true},
		FileWatch: FileWatchState{
			sourceFile: path,
			scad:       tempFile != "",
			tempFile:   tempFile,
			loaded:     make(chan loadResult, 1),
		},
	}

	app.sceneMesh = model.Mesh(filepath.Base(path), 0)
	app.world.Add(app.sceneMesh)
	app.Model.model = model
	app.uploadMesh(model)

	bounds := model.BoundingBox()
	app.Camera.orbit = viewer.NewCamera(bounds)
	app.Camera.orbit.RotationX = 0.3
	app.Camera.orbit.RotationY = 0.3
	app.Camera.orbit.UpdatePosition()
	app.Camera.defaultDistance = app.Camera.orbit.Distance
	app.Camera.defaultRotationX = 0.3
	app.Camera.defaultRotationY = 0.3
	app.Camera.rlCam = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
	app.syncCamera()

	// The window draws overlay labels itself, so the session gets the
	// overlay backend regardless of the configured one.
	labels := label.NewManager(label.NewOverlay(), app.world, log)
	picker := pick.New(app.Camera.orbit, screenViewport{}, app.world)
	app.session = measure.NewSession(measure.Deps{
		Graph:    app.world,
		Input:    app.events,
		Picker:   picker,
		Labels:   labels,
		Registry: measure.NewDragRegistry(),
		Log:      log,
	}, cfg.SessionConfig())

	app.UI.font, app.UI.ownedFont = loadUIFont(cfg.Viewer.Font, log)

	log.Info("model loaded",
		zap.String("file", path),
		zap.Int("triangles", model.TriangleCount()))

	return app
}

// loop runs the frame loop until the window closes. Escape is reserved
// for cancelling a measurement, so only the close button and Ctrl+C
// quit the app.
func (a *App) loop() {
	for {
		if rl.WindowShouldClose() && !rl.IsKeyPressed(rl.KeyEscape) {
			break
		}
		ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrl && rl.IsKeyPressed(rl.KeyC) {
			break
		}

		if a.FileWatch.needsReload.Swap(false) {
			a.reloadModel()
		}
		a.applyLoadedModel()

		a.handleInput()
		a.syncCamera()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(a.Camera.rlCam)
		if a.View.showFilled {
			rl.DrawMesh(a.Model.mesh, a.Model.material, rl.MatrixIdentity())
		}
		if a.View.showWireframe {
			a.drawWireframe()
		}
		rl.EndMode3D()

		a.drawAnnotations()
		a.drawHUD()

		rl.EndDrawing()
	}
}

func (a *App) shutdown() {
	if a.session != nil {
		a.session.Close()
	}
	if a.FileWatch.watcher != nil {
		a.FileWatch.watcher.Close()
	}
	if a.UI.ownedFont {
		rl.UnloadFont(a.UI.font)
	}
	if a.Model.uploaded {
		rl.UnloadMesh(&a.Model.mesh)
	}
	if a.FileWatch.tempFile != "" {
		os.Remove(a.FileWatch.tempFile)
	}
	rl.CloseWindow()
}
