package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// maxPitch keeps preset views inside the same vertical clamp Rotate
// applies, so the up vector never degenerates at the poles
const maxPitch = math.Pi/2 - 0.1

func rlVec(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// syncCamera pushes the orbit camera into the raylib camera and keeps
// the projection aspect in step with the window, so picking rays and
// rendered pixels agree
func (a *App) syncCamera() {
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if w > 0 && h > 0 {
		a.Camera.orbit.Aspect = w / h
	}

	a.Camera.rlCam.Position = rlVec(a.Camera.orbit.Position)
	a.Camera.rlCam.Target = rlVec(a.Camera.orbit.Target)
	a.Camera.rlCam.Fovy = float32(a.Camera.orbit.FOV * 180 / math.Pi)
}

// resetCameraView restores the default orbit around the model
func (a *App) resetCameraView() {
	orbit := a.Camera.orbit
	orbit.Target = a.modelCenter()
	orbit.Distance = a.Camera.defaultDistance
	orbit.RotationX = a.Camera.defaultRotationX
	orbit.RotationY = a.Camera.defaultRotationY
	orbit.UpdatePosition()
}

// setCameraView recenters on the model at the given orbit angles
func (a *App) setCameraView(rotationX, rotationY float64) {
	orbit := a.Camera.orbit
	orbit.Target = a.modelCenter()
	orbit.RotationX = math.Max(-maxPitch, math.Min(maxPitch, rotationX))
	orbit.RotationY = rotationY
	orbit.UpdatePosition()
}

func (a *App) modelCenter() geometry.Vector3 {
	return a.sceneMesh.Bounds().Center()
}
