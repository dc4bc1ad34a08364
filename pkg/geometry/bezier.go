package geometry

// QuadraticBezier evaluates the quadratic Bezier curve through p0 and
// p1 with control point ctrl at parameter t in [0, 1]
func QuadraticBezier(p0, ctrl, p1 Vector3, t float64) Vector3 {
	u := 1.0 - t
	return p0.Mul(u * u).
		Add(ctrl.Mul(2.0 * u * t)).
		Add(p1.Mul(t * t))
}

// SampleQuadraticBezier returns n evenly spaced points along the curve,
// including both endpoints
func SampleQuadraticBezier(p0, ctrl, p1 Vector3, n int) []Vector3 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []Vector3{p0}
	}

	points := make([]Vector3, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		points[i] = QuadraticBezier(p0, ctrl, p1, t)
	}
	return points
}
