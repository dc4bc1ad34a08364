package app

import (
	"fmt"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/philipparndt/gomeasure/pkg/label"
	"github.com/philipparndt/gomeasure/version"
)

// loadUIFont loads the configured TTF at a large base size so it stays
// crisp when scaled down on high DPI displays. The second result
// reports whether the font must be unloaded on shutdown.
func loadUIFont(path string, log *zap.Logger) (rl.Font, bool) {
	if path == "" {
		return rl.GetFontDefault(), false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("HUD font not readable, using default", zap.String("font", path), zap.Error(err))
		return rl.GetFontDefault(), false
	}
	return rl.LoadFontFromMemory(".ttf", data, 96, nil), true
}

// drawHUD draws the model info, the controls help and the live
// measurement readout
func (a *App) drawHUD() {
	y := float32(10)
	lineHeight := float32(20)
	fontSize16 := float32(16)
	fontSize14 := float32(14)
	fontSize12 := float32(12)

	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	// === MODEL ===
	bounds := a.sceneMesh.Bounds()
	size := bounds.Size()
	rl.DrawTextEx(a.UI.font, "Model:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	rl.DrawTextEx(a.UI.font, fmt.Sprintf("  %s", a.sceneMesh.Name()), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
	y += lineHeight
	rl.DrawTextEx(a.UI.font, fmt.Sprintf("  Triangles: %d", a.Model.model.TriangleCount()), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
	y += lineHeight
	rl.DrawTextEx(a.UI.font, fmt.Sprintf("  Size: %.2f × %.2f × %.2f", size.X, size.Y, size.Z), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
	y += lineHeight * 2

	// === MEASURE ===
	rl.DrawTextEx(a.UI.font, "Measure:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	rl.DrawTextEx(a.UI.font, "  D: Distance | A: Area | G: Angle", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight
	if a.session.Active() {
		rl.DrawTextEx(a.UI.font, fmt.Sprintf("  Mode: %s | Points: %d", a.session.Mode(), len(a.session.Points())), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.Green)
		y += lineHeight
		rl.DrawTextEx(a.UI.font, "  Right Click / Enter: Finish | ESC: Cancel", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.NewColor(255, 200, 100, 255))
		y += lineHeight
		rl.DrawTextEx(a.UI.font, "  C: Restart mode", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.NewColor(255, 200, 100, 255))
		y += lineHeight
	}
	y += lineHeight

	// === VIEW ===
	rl.DrawTextEx(a.UI.font, "View:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	rl.DrawTextEx(a.UI.font, "  Home: Reset | T: Top | B: Bottom", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight
	rl.DrawTextEx(a.UI.font, "  1: Front | 2: Back | 3: Left | 4: Right", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight
	rl.DrawTextEx(a.UI.font, "  W: Wireframe | F: Fill", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight * 2

	// === NAVIGATE ===
	rl.DrawTextEx(a.UI.font, "Navigate:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	rl.DrawTextEx(a.UI.font, "  Left Drag: Rotate | Shift+Drag: Pan", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight
	rl.DrawTextEx(a.UI.font, "  Mouse Wheel: Zoom | Middle: Pan", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)

	// Live measurement readout in the bottom-right corner
	if a.session.Active() {
		readout := fmt.Sprintf("%s: %s", a.session.Mode(),
			label.FormatMeasurement(a.session.Value(), a.session.Mode().Unit()))

		boxPadding := float32(10)
		textSize := rl.MeasureTextEx(a.UI.font, readout, fontSize16, 1)
		boxWidth := textSize.X + boxPadding*2
		boxHeight := textSize.Y + boxPadding*2
		boxX := screenWidth - boxWidth - 20
		boxY := screenHeight - boxHeight - 20

		rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 200))
		rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.Yellow)
		rl.DrawTextEx(a.UI.font, readout, rl.Vector2{X: boxX + boxPadding, Y: boxY + boxPadding}, fontSize16, 1, rl.Yellow)
	}

	// Loading indicator while a changed file reparses
	if a.FileWatch.loading.Load() {
		elapsed := time.Since(a.FileWatch.loadStart).Seconds()
		spinner := []string{"|", "/", "-", "\\"}
		loadingText := fmt.Sprintf("%s Reloading... (%.1fs)", spinner[int(elapsed*8)%len(spinner)], elapsed)

		boxWidth := float32(250)
		boxHeight := float32(40)
		boxX := screenWidth - boxWidth - 20
		boxY := float32(20)

		rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 180))
		rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.Yellow)
		textSize := rl.MeasureTextEx(a.UI.font, loadingText, fontSize16, 1)
		rl.DrawTextEx(a.UI.font, loadingText,
			rl.Vector2{X: boxX + (boxWidth-textSize.X)/2, Y: boxY + (boxHeight-textSize.Y)/2}, fontSize16, 1, rl.Yellow)
	}

	// Version and FPS in the bottom-left corner
	bottomY := screenHeight - 30
	versionText := fmt.Sprintf("v%s", version.GetVersion())
	rl.DrawTextEx(a.UI.font, versionText, rl.Vector2{X: 10, Y: bottomY}, fontSize12, 1, rl.Gray)

	versionWidth := rl.MeasureTextEx(a.UI.font, versionText, fontSize12, 1).X
	rl.DrawTextEx(a.UI.font, fmt.Sprintf("FPS: %d", rl.GetFPS()),
		rl.Vector2{X: 10 + versionWidth + 15, Y: bottomY}, fontSize12, 1, rl.Lime)
}
