package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
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

// App wires the fyne window, the measure view widget and one
// measurement session
type App struct {
	window fyne.Window
	cfg    *config.Config
	log    *zap.Logger

	model   *stl.Model
	world   *scene.World
	view    *viewer.MeasureView
	session *measure.Session

	// refreshSubs keep the status panel in step with session events;
	// re-registered after each Open so they run after the session's
	// own handlers
	refreshSubs []*input.Subscription

	status *StatusPanel
}

// StatusPanel shows the running measurement state next to the view
type StatusPanel struct {
	modeLabel   *widget.Label
	pointsLabel *widget.Label
	valueLabel  *widget.Label
	modelLabel  *widget.Label
}

func main() {
	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := loadConfig(log)

	a := fyneapp.New()
	w := a.NewWindow("GoMeasure")

	gui := &App{window: w, cfg: cfg, log: log}
	if len(os.Args) > 1 {
		gui.loadFile(os.Args[1])
	} else {
		gui.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(float32(cfg.Viewer.Width), float32(cfg.Viewer.Height)))
	w.ShowAndRun()
}

// loadConfig picks up the nearest gomeasure.yaml; a missing file means
// defaults, a broken one is reported and ignored
func loadConfig(log *zap.Logger) *config.Config {
	path, err := config.Find()
	if err != nil {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Warn("ignoring unusable config", zap.Error(err))
		return config.Default()
	}
	log.Info("config loaded", zap.String("path", path))
	return cfg
}

func (g *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to GoMeasure")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Click 'Open STL File' to load a 3D model")

	openButton := widget.NewButton("Open STL File", func() {
		g.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	g.window.SetContent(content)
}

func (g *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		g.loadFile(reader.URI().Path())
	}, g.window)
}

func (g *App) loadFile(filename string) {
	model, err := stl.Parse(filename)
	if err != nil {
		dialog.ShowError(fmt.Errorf("loading %s: %w", filename, err), g.window)
		return
	}

	g.model = model
	g.setupMainUI()
}

// labelBackend builds the configured label backend. The overlay
// backend lets the view draw text itself; textmesh rasterizes labels
// into the scene and needs a font file.
func (g *App) labelBackend() label.Backend {
	if g.cfg.Measure.LabelBackend == config.BackendTextMesh {
		backend := label.NewTextMesh(g.log)
		if g.cfg.Viewer.Font != "" {
			backend.LoadFaceAsync(g.cfg.Viewer.Font, 14)
		}
		return backend
	}
	return label.NewOverlay()
}

func (g *App) setupMainUI() {
	if g.session != nil {
		g.session.Close()
	}

	g.world = scene.NewWorld()
	mesh := g.model.Mesh(g.model.Name, 0)
	g.world.Add(mesh)

	g.view = viewer.NewMeasureView(g.world, mesh.Bounds())

	labels := label.NewManager(g.labelBackend(), g.world, g.log)
	picker := pick.New(g.view.Camera(), g.view.Viewport(), g.world)
	g.session = measure.NewSession(measure.Deps{
		Graph:    g.world,
		Input:    g.view.Events(),
		Picker:   picker,
		Labels:   labels,
		Registry: measure.NewDragRegistry(),
		Log:      g.log,
	}, g.cfg.SessionConfig())

	g.status = &StatusPanel{
		modeLabel:   widget.NewLabel("Mode: none"),
		pointsLabel: widget.NewLabel("Points: -"),
		valueLabel:  widget.NewLabel("Value: -"),
		modelLabel:  widget.NewLabel(""),
	}
	g.status.valueLabel.TextStyle = fyne.TextStyle{Bold: true}

	size := mesh.Bounds().Size()
	g.status.modelLabel.SetText(fmt.Sprintf(
		"Model: %s\nTriangles: %d\n\nDimensions:\n  X: %.2f\n  Y: %.2f\n  Z: %.2f",
		g.model.Name,
		g.model.TriangleCount(),
		size.X, size.Y, size.Z,
	))

	distanceButton := widget.NewButton("Distance", func() { g.openMode(measure.Distance) })
	areaButton := widget.NewButton("Area", func() { g.openMode(measure.Area) })
	angleButton := widget.NewButton("Angle", func() { g.openMode(measure.Angle) })

	finishButton := widget.NewButton("Finish", func() {
		g.session.Complete()
		g.refresh()
	})
	cancelButton := widget.NewButton("Cancel", func() {
		g.session.Cancel()
		g.refresh()
	})
	openButton := widget.NewButton("Open File", func() {
		g.showFileDialog()
	})

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Pick a mode, then click points on the model\n" +
			"• Drag to rotate the view\n" +
			"• Scroll to zoom in/out\n" +
			"• Right click or Enter to finish\n" +
			"• Escape to cancel",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Model Information:"),
		widget.NewSeparator(),
		g.status.modelLabel,
		widget.NewSeparator(),
		widget.NewLabel("Measure:"),
		container.NewHBox(distanceButton, areaButton, angleButton),
		container.NewHBox(finishButton, cancelButton),
		widget.NewSeparator(),
		g.status.modeLabel,
		g.status.pointsLabel,
		g.status.valueLabel,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		openButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		g.view,     // center
	)

	g.window.SetContent(content)
	g.window.Canvas().Focus(g.view)
}

// openMode starts measuring and re-registers the refresh handlers, so
// they observe the session state after its own handlers have run
func (g *App) openMode(mode measure.Mode) {
	if _, err := g.session.Open(mode); err != nil {
		dialog.ShowError(err, g.window)
		return
	}

	for _, sub := range g.refreshSubs {
		sub.Release()
	}
	events := g.view.Events()
	g.refreshSubs = []*input.Subscription{
		events.OnPointerUp(func(input.PointerEvent) { g.refresh() }),
		events.OnKeyDown(func(input.Key) { g.refresh() }),
	}

	g.refresh()
	g.window.Canvas().Focus(g.view)
}

// refresh syncs the status panel with the session and redraws the view
func (g *App) refresh() {
	s := g.session
	switch {
	case s.Active() && s.Completed():
		g.status.modeLabel.SetText(fmt.Sprintf("Mode: %s (finished)", s.Mode()))
		g.status.pointsLabel.SetText(fmt.Sprintf("Points: %d", len(s.Points())))
		g.status.valueLabel.SetText(fmt.Sprintf("Value: %s",
			label.FormatMeasurement(s.Value(), s.Mode().Unit())))
	case s.Active():
		g.status.modeLabel.SetText(fmt.Sprintf("Mode: %s", s.Mode()))
		g.status.pointsLabel.SetText(fmt.Sprintf("Points: %d", len(s.Points())))
		g.status.valueLabel.SetText(fmt.Sprintf("Value: %s",
			label.FormatMeasurement(s.Value(), s.Mode().Unit())))
	default:
		g.status.modeLabel.SetText("Mode: none")
		g.status.pointsLabel.SetText("Points: -")
		g.status.valueLabel.SetText("Value: -")
	}

	g.view.Redraw()
}
