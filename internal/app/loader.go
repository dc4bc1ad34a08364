package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/philipparndt/gomeasure/pkg/openscad"
	"github.com/philipparndt/gomeasure/pkg/stl"
	"github.com/philipparndt/gomeasure/pkg/watcher"
)

// loadResult is a background load handed to the main thread
type loadResult struct {
	model *stl.Model
	// tempFile carries the rendered STL path for OpenSCAD sources
	tempFile string
}

// loadModel loads an STL file, or renders an OpenSCAD file to a
// temporary STL first. Returns the temp file path for the caller to
// clean up, empty for plain STL.
func loadModel(path string) (*stl.Model, string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".scad":
		renderer := openscad.NewRenderer(filepath.Dir(path))
		tempFile := filepath.Join(os.TempDir(), fmt.Sprintf("gomeasure_%d.stl", time.Now().UnixNano()))
		if err := renderer.RenderToSTL(path, tempFile); err != nil {
			return nil, "", err
		}

		model, err := stl.Parse(tempFile)
		if err != nil {
			os.Remove(tempFile)
			return nil, "", fmt.Errorf("parsing rendered %s: %w", path, err)
		}
		return model, tempFile, nil

	case ".stl":
		model, err := stl.Parse(path)
		if err != nil {
			return nil, "", fmt.Errorf("loading %s: %w", path, err)
		}
		return model, "", nil

	default:
		return nil, "", fmt.Errorf("unsupported file type %q, want .stl or .scad", filepath.Ext(path))
	}
}

// setupFileWatcher watches the source file so edits reload the model
// without restarting the viewer. For OpenSCAD sources the whole
// use/include closure is watched.
func (a *App) setupFileWatcher() error {
	fw, err := watcher.NewFileWatcher(500*time.Millisecond, a.log)
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}

	files := []string{a.FileWatch.sourceFile}
	if a.FileWatch.scad {
		renderer := openscad.NewRenderer(filepath.Dir(a.FileWatch.sourceFile))
		deps, err := renderer.Dependencies(a.FileWatch.sourceFile)
		if err != nil {
			fw.Close()
			return fmt.Errorf("resolving dependencies of %s: %w", a.FileWatch.sourceFile, err)
		}
		files = deps
	}

	callback := func(changedFile string) {
		a.log.Info("file changed", zap.String("file", changedFile))
		a.FileWatch.needsReload.Store(true)
	}
	if err := fw.Watch(files, callback); err != nil {
		fw.Close()
		return fmt.Errorf("watching %s: %w", a.FileWatch.sourceFile, err)
	}

	fw.Start()
	a.FileWatch.watcher = fw
	a.log.Info("watching for changes", zap.Strings("files", files))
	return nil
}

// reloadModel loads the changed source off the main thread. The GPU
// mesh swap happens later in applyLoadedModel, raylib calls are only
// safe on the main thread.
func (a *App) reloadModel() {
	if !a.FileWatch.loading.CompareAndSwap(false, true) {
		return
	}
	a.FileWatch.loadStart = time.Now()
	a.log.Info("reloading model", zap.String("file", a.FileWatch.sourceFile))

	go func() {
		model, tempFile, err := loadModel(a.FileWatch.sourceFile)
		if err != nil {
			a.log.Error("reload failed", zap.Error(err))
			a.FileWatch.loading.Store(false)
			return
		}
		a.FileWatch.loaded <- loadResult{model: model, tempFile: tempFile}
	}()
}

// applyLoadedModel swaps in a freshly loaded model on the main thread.
// The camera keeps its orientation and distance; the target shifts by
// the model center delta so the view stays on the model.
func (a *App) applyLoadedModel() {
	var res loadResult
	select {
	case res = <-a.FileWatch.loaded:
	default:
		return
	}

	oldCenter := a.modelCenter()

	newMesh := res.model.Mesh(filepath.Base(a.FileWatch.sourceFile), 0)
	a.world.Remove(a.sceneMesh)
	a.world.Add(newMesh)
	a.sceneMesh = newMesh
	a.Model.model = res.model
	a.uploadMesh(res.model)

	if old := a.FileWatch.tempFile; old != "" && old != res.tempFile {
		os.Remove(old)
	}
	a.FileWatch.tempFile = res.tempFile

	orbit := a.Camera.orbit
	orbit.Target = orbit.Target.Add(newMesh.Bounds().Center().Sub(oldCenter))
	orbit.UpdatePosition()

	a.log.Info("model reloaded",
		zap.Int("triangles", res.model.TriangleCount()),
		zap.Duration("took", time.Since(a.FileWatch.loadStart)))
	a.FileWatch.loading.Store(false)
}