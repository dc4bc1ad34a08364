package app

import (
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gomeasure/pkg/stl"
	"github.com/philipparndt/gomeasure/pkg/viewer"
	"github.com/philipparndt/gomeasure/pkg/watcher"
)

// CameraState drives the raylib camera from the shared orbit camera.
// The orbit camera is the source of truth; the raylib struct is
// derived from it every frame.
type CameraState struct {
	orbit *viewer.Camera
	rlCam rl.Camera3D

	defaultDistance  float64
	defaultRotationX float64
	defaultRotationY float64
}

// ModelData holds the loaded model and its uploaded GPU mesh
type ModelData struct {
	model    *stl.Model
	mesh     rl.Mesh
	material rl.Material
	edges    [][2]rl.Vector3
	uploaded bool
}

// InteractionState tracks mouse gestures across frames
type InteractionState struct {
	mouseDownPos rl.Vector2
	isPanning    bool
}

// FileWatchState holds auto-reload state. The watcher callback and the
// background load run off the main thread; the main loop picks the
// result up from the loaded channel.
type FileWatchState struct {
	sourceFile string
	scad       bool
	// tempFile is the rendered STL of an OpenSCAD source, empty for
	// plain STL files
	tempFile    string
	watcher     *watcher.FileWatcher
	needsReload atomic.Bool
	loading     atomic.Bool
	loadStart   time.Time
	loaded      chan loadResult
}

// ViewSettings holds display toggles
type ViewSettings struct {
	showWireframe bool
	showFilled    bool
}

// UIState holds HUD resources
type UIState struct {
	font      rl.Font
	ownedFont bool
}
