package geometry

import (
	"math"
	"testing"
)

func TestAngleAtRightAngle(t *testing.T) {
	angle := AngleAt(
		NewVector3(1, 0, 0),
		NewVector3(0, 0, 0),
		NewVector3(0, 1, 0),
	)

	if math.Abs(angle-90.0) > 1e-10 {
		t.Errorf("AngleAt failed: expected 90, got %v", angle)
	}
}

func TestAngleAtCollinear(t *testing.T) {
	// Both directions point the same way
	angle := AngleAt(
		NewVector3(1, 0, 0),
		NewVector3(0, 0, 0),
		NewVector3(2, 0, 0),
	)
	if math.Abs(angle) > 1e-10 {
		t.Errorf("AngleAt same direction failed: expected 0, got %v", angle)
	}

	// Opposite directions
	angle = AngleAt(
		NewVector3(-1, 0, 0),
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
	)
	if math.Abs(angle-180.0) > 1e-10 {
		t.Errorf("AngleAt opposite direction failed: expected 180, got %v", angle)
	}
}

func TestAngleAtSymmetric(t *testing.T) {
	a := NewVector3(3, 1, -2)
	vertex := NewVector3(0.5, 0.5, 0.5)
	b := NewVector3(-1, 4, 2)

	if math.Abs(AngleAt(a, vertex, b)-AngleAt(b, vertex, a)) > 1e-10 {
		t.Errorf("AngleAt is not symmetric in its outer arguments")
	}
}

func TestAngleAtRange(t *testing.T) {
	points := []Vector3{
		NewVector3(1, 2, 3),
		NewVector3(-4, 0, 2),
		NewVector3(0, -7, 1),
		NewVector3(5, 5, 5),
	}

	for _, a := range points {
		for _, b := range points {
			angle := AngleAt(a, NewVector3(0, 0, 0), b)
			if angle < 0 || angle > 180 {
				t.Errorf("AngleAt out of range: got %v for %v, %v", angle, a, b)
			}
		}
	}
}

func TestAngleAtDegeneratePoint(t *testing.T) {
	// Vertex coincides with an endpoint; must not yield NaN
	angle := AngleAt(
		NewVector3(0, 0, 0),
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
	)
	if math.IsNaN(angle) {
		t.Errorf("AngleAt degenerate input produced NaN")
	}
}

func TestHeronArea(t *testing.T) {
	area := HeronArea(3, 4, 5)

	expected := 6.0
	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("HeronArea failed: expected %v, got %v", expected, area)
	}
}

func TestHeronAreaDegenerate(t *testing.T) {
	// Collapsed triangle: sides cannot close
	area := HeronArea(1, 2, 5)
	if area != 0 {
		t.Errorf("HeronArea degenerate failed: expected 0, got %v", area)
	}
}

func TestFanAreaTriangle(t *testing.T) {
	points := []Vector3{
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	}

	area := FanArea(points)
	expected := 6.0
	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("FanArea failed: expected %v, got %v", expected, area)
	}
}

func TestFanAreaSquare(t *testing.T) {
	points := []Vector3{
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(1, 1, 0),
		NewVector3(0, 1, 0),
	}

	area := FanArea(points)
	expected := 1.0
	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("FanArea failed: expected %v, got %v", expected, area)
	}
}

func TestFanAreaTooFewPoints(t *testing.T) {
	if area := FanArea(nil); area != 0 {
		t.Errorf("FanArea of nil failed: expected 0, got %v", area)
	}

	points := []Vector3{NewVector3(0, 0, 0), NewVector3(1, 0, 0)}
	if area := FanArea(points); area != 0 {
		t.Errorf("FanArea of 2 points failed: expected 0, got %v", area)
	}
}

func TestFanAreaConcaveOvercounts(t *testing.T) {
	// L-shaped outline, true area 3. The fan anchored at the first
	// vertex covers the notch, so the result is larger.
	points := []Vector3{
		NewVector3(0, 0, 0),
		NewVector3(2, 0, 0),
		NewVector3(2, 1, 0),
		NewVector3(1, 1, 0),
		NewVector3(1, 2, 0),
		NewVector3(0, 2, 0),
	}

	area := FanArea(points)
	if area <= 3.0 {
		t.Errorf("FanArea concave: expected overcount above 3, got %v", area)
	}
}

func TestBisector(t *testing.T) {
	dir := Bisector(
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
	)

	inv := 1.0 / math.Sqrt2
	expected := NewVector3(inv, inv, 0)
	if dir.Distance(expected) > 1e-10 {
		t.Errorf("Bisector failed: expected %v, got %v", expected, dir)
	}
}

func TestBisectorOppositeDirections(t *testing.T) {
	dir := Bisector(
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(-1, 0, 0),
	)

	if dir.Length() != 0 {
		t.Errorf("Bisector of opposite directions failed: expected zero vector, got %v", dir)
	}
}

func TestRayAt(t *testing.T) {
	r := NewRay(NewVector3(1, 0, 0), NewVector3(0, 2, 0))
	point := r.At(3)

	expected := NewVector3(1, 3, 0)
	if point.Distance(expected) > 1e-10 {
		t.Errorf("Ray.At failed: expected %v, got %v", expected, point)
	}
}
