package geometry

// Ray represents a half-line with an origin and a unit direction
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray, normalizing the direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction.Normalize(),
	}
}

// At returns the point on the ray at parameter t
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
