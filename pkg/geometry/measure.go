package geometry

import "math"

// AngleAt returns the angle at vertex between the directions toward a
// and toward b, in degrees within [0, 180]. Degenerate input (a or b
// coinciding with vertex) yields a deterministic value instead of NaN.
func AngleAt(a, vertex, b Vector3) float64 {
	u := a.Sub(vertex).Normalize()
	w := b.Sub(vertex).Normalize()

	// Clamp against floating point drift before acos
	dot := u.Dot(w)
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}
	return math.Acos(dot) * 180.0 / math.Pi
}

// HeronArea returns the area of a triangle from its three side lengths.
// Degenerate side lengths yield zero instead of NaN.
func HeronArea(a, b, c float64) float64 {
	s := (a + b + c) / 2.0
	v := s * (s - a) * (s - b) * (s - c)
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}

// FanArea returns the area of the polygon spanned by points, computed
// as a triangle fan anchored at the first point. The result is exact
// for convex outlines; concave outlines are over-counted because the
// fan triangles overlap the exterior.
func FanArea(points []Vector3) float64 {
	if len(points) < 3 {
		return 0
	}

	var area float64
	p0 := points[0]
	for i := 1; i < len(points)-1; i++ {
		a := p0.Distance(points[i])
		b := points[i].Distance(points[i+1])
		c := points[i+1].Distance(p0)
		area += HeronArea(a, b, c)
	}
	return area
}

// Bisector returns the interior bisector direction at vertex: the
// normalized sum of the unit vectors from vertex toward a and toward b.
// Opposite directions cancel to the zero vector.
func Bisector(vertex, a, b Vector3) Vector3 {
	u := a.Sub(vertex).Normalize()
	w := b.Sub(vertex).Normalize()
	return u.Add(w).Normalize()
}
