package geometry

import (
	"fmt"
	"math"
)

// CircleFit represents the result of fitting a circle to points
type CircleFit struct {
	Center Vector3 // circle center in 3D
	Radius float64 // circle radius
	Normal Vector3 // normal of the plane containing the circle
	StdDev float64 // standard deviation of the fit
}

// axisNormals maps a constraint axis to the normal of its plane
var axisNormals = [3]Vector3{
	{X: 1}, // X constant, circle in YZ
	{Y: 1}, // Y constant, circle in XZ
	{Z: 1}, // Z constant, circle in XY
}

// projectToPlane drops the constrained coordinate, keeping the other
// two in axis order
func projectToPlane(p Vector3, constraintAxis int) (float64, float64) {
	switch constraintAxis {
	case 0:
		return p.Y, p.Z
	case 1:
		return p.X, p.Z
	default:
		return p.X, p.Y
	}
}

// FitCircleToPoints3D fits a circle to a set of 3D points lying in a
// plane with one constant axis coordinate (constraintAxis: 0=X, 1=Y,
// 2=Z). The circle is determined from the first, middle and last point
// using the 3-point determinant formula:
//
//	D = 2(x1(y2-y3) + x2(y3-y1) + x3(y1-y2))
//	cx = ((x1²+y1²)(y2-y3) + (x2²+y2²)(y3-y1) + (x3²+y3²)(y1-y2)) / D
//	cy = ((x1²+y1²)(x3-x2) + (x2²+y2²)(x1-x3) + (x3²+y3²)(x2-x1)) / D
//
// The remaining points only contribute to the fit quality estimate.
func FitCircleToPoints3D(points []Vector3, constraintAxis int) (*CircleFit, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("need at least 3 points to fit a circle")
	}
	if constraintAxis < 0 || constraintAxis > 2 {
		return nil, fmt.Errorf("invalid constraint axis: %d (must be 0, 1, or 2)", constraintAxis)
	}

	x1, y1 := projectToPlane(points[0], constraintAxis)
	x2, y2 := projectToPlane(points[len(points)/2], constraintAxis)
	x3, y3 := projectToPlane(points[len(points)-1], constraintAxis)

	D := 2.0 * (x1*(y2-y3) + x2*(y3-y1) + x3*(y1-y2))
	if math.Abs(D) < 1e-10 {
		return nil, fmt.Errorf("points are collinear")
	}

	sq1 := x1*x1 + y1*y1
	sq2 := x2*x2 + y2*y2
	sq3 := x3*x3 + y3*y3

	cx := (sq1*(y2-y3) + sq2*(y3-y1) + sq3*(y1-y2)) / D
	cy := (sq1*(x3-x2) + sq2*(x1-x3) + sq3*(x2-x1)) / D
	radius := math.Hypot(x1-cx, y1-cy)

	var center Vector3
	switch constraintAxis {
	case 0:
		center = NewVector3(points[0].X, cx, cy)
	case 1:
		center = NewVector3(cx, points[0].Y, cy)
	default:
		center = NewVector3(cx, cy, points[0].Z)
	}

	// Fit quality over all points, not just the three used
	var sumError float64
	for _, p := range points {
		px, py := projectToPlane(p, constraintAxis)
		dist := math.Hypot(px-cx, py-cy)
		sumError += (dist - radius) * (dist - radius)
	}
	stdDev := math.Sqrt(sumError / float64(len(points)))

	return &CircleFit{
		Center: center,
		Radius: radius,
		Normal: axisNormals[constraintAxis],
		StdDev: stdDev,
	}, nil
}
