package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/philipparndt/gomeasure/pkg/input"
	"github.com/philipparndt/gomeasure/pkg/measure"
)

// clickSlack is the largest press-to-release travel still counted as a
// click rather than a camera drag
const clickSlack = 5.0

func pointerEvent(pos rl.Vector2, button input.Button) input.PointerEvent {
	return input.PointerEvent{
		OffsetX: float64(pos.X),
		OffsetY: float64(pos.Y),
		Button:  button,
	}
}

// handleInput polls raylib once per frame, drives the camera directly
// and forwards pointer and key events into the dispatcher the
// measurement session subscribes to
func (a *App) handleInput() {
	mouse := rl.GetMousePosition()

	// Camera view preset shortcuts
	if rl.IsKeyPressed(rl.KeyHome) {
		a.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.setCameraView(maxPitch, 0)
	}
	if rl.IsKeyPressed(rl.KeyB) {
		a.setCameraView(-maxPitch, 0)
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		a.setCameraView(0, 0)
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		a.setCameraView(0, math.Pi)
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		a.setCameraView(0, -math.Pi/2)
	}
	if rl.IsKeyPressed(rl.KeyFour) {
		a.setCameraView(0, math.Pi/2)
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.Interaction.mouseDownPos = mouse
		// Pan if Shift is pressed, in any mode
		a.Interaction.isPanning = rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
		if !a.Interaction.isPanning {
			a.events.PointerDown(pointerEvent(mouse, input.ButtonPrimary))
		}
	}

	// The secondary button completes a measurement on press; the
	// release carries no extra meaning
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		ev := pointerEvent(mouse, input.ButtonSecondary)
		a.events.PointerDown(ev)
		a.events.PointerUp(ev)
	}

	delta := rl.GetMouseDelta()
	panning := (rl.IsMouseButtonDown(rl.MouseLeftButton) && a.Interaction.isPanning) ||
		rl.IsMouseButtonDown(rl.MouseMiddleButton)

	switch {
	case panning:
		if delta.X != 0 || delta.Y != 0 {
			a.Camera.orbit.Pan(float64(delta.X), float64(delta.Y))
		}
	case rl.IsMouseButtonDown(rl.MouseLeftButton):
		// Orbit drag. The forwarded move disqualifies the press as a
		// click.
		if delta.X != 0 || delta.Y != 0 {
			a.Camera.orbit.Rotate(float64(-delta.Y)*0.01, float64(delta.X)*0.01)
			a.events.PointerMove(pointerEvent(mouse, input.ButtonPrimary))
		}
	default:
		// Hover moves keep the preview tracking the cursor
		if delta.X != 0 || delta.Y != 0 {
			a.events.PointerMove(pointerEvent(mouse, input.ButtonPrimary))
		}
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		// Slow multi-frame drags can slip under the per-frame move
		// check, so the total travel decides click versus drag
		if rl.Vector2Distance(a.Interaction.mouseDownPos, mouse) >= clickSlack {
			a.events.PointerMove(pointerEvent(mouse, input.ButtonPrimary))
		}
		a.events.PointerUp(pointerEvent(mouse, input.ButtonPrimary))
		a.Interaction.isPanning = false
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Camera.orbit.Zoom(float64(-wheel) * 0.03)
	}

	// Display toggles
	if rl.IsKeyPressed(rl.KeyW) {
		a.View.showWireframe = !a.View.showWireframe
	}
	if rl.IsKeyPressed(rl.KeyF) {
		a.View.showFilled = !a.View.showFilled
	}

	// Measurement modes. Opening closes any previous measurement, so
	// C restarts the current mode from scratch.
	if rl.IsKeyPressed(rl.KeyD) {
		a.openMeasurement(measure.Distance)
	}
	if rl.IsKeyPressed(rl.KeyA) {
		a.openMeasurement(measure.Area)
	}
	if rl.IsKeyPressed(rl.KeyG) {
		a.openMeasurement(measure.Angle)
	}
	if rl.IsKeyPressed(rl.KeyC) && a.session.Active() {
		a.openMeasurement(a.session.Mode())
	}

	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		a.events.KeyDown(input.KeyEnter)
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.events.KeyDown(input.KeyEscape)
	}
}

func (a *App) openMeasurement(mode measure.Mode) {
	if _, err := a.session.Open(mode); err != nil {
		a.log.Error("opening measurement failed",
			zap.String("mode", mode.String()), zap.Error(err))
	}
}
