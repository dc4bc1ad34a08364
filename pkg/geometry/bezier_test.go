package geometry

import (
	"math"
	"testing"
)

func TestQuadraticBezierEndpoints(t *testing.T) {
	p0 := NewVector3(0, 0, 0)
	ctrl := NewVector3(1, 2, 0)
	p1 := NewVector3(2, 0, 0)

	if start := QuadraticBezier(p0, ctrl, p1, 0); start.Distance(p0) > 1e-10 {
		t.Errorf("Bezier t=0 failed: expected %v, got %v", p0, start)
	}
	if end := QuadraticBezier(p0, ctrl, p1, 1); end.Distance(p1) > 1e-10 {
		t.Errorf("Bezier t=1 failed: expected %v, got %v", p1, end)
	}
}

func TestQuadraticBezierMidpoint(t *testing.T) {
	p0 := NewVector3(0, 0, 0)
	ctrl := NewVector3(1, 2, 0)
	p1 := NewVector3(2, 0, 0)

	mid := QuadraticBezier(p0, ctrl, p1, 0.5)

	// (p0 + 2*ctrl + p1) / 4
	expected := NewVector3(1, 1, 0)
	if mid.Distance(expected) > 1e-10 {
		t.Errorf("Bezier t=0.5 failed: expected %v, got %v", expected, mid)
	}
}

func TestSampleQuadraticBezier(t *testing.T) {
	p0 := NewVector3(0, 0, 0)
	ctrl := NewVector3(1, 2, 0)
	p1 := NewVector3(2, 0, 0)

	points := SampleQuadraticBezier(p0, ctrl, p1, 5)
	if len(points) != 5 {
		t.Fatalf("Sample count failed: expected 5, got %d", len(points))
	}

	if points[0].Distance(p0) > 1e-10 {
		t.Errorf("First sample failed: expected %v, got %v", p0, points[0])
	}
	if points[4].Distance(p1) > 1e-10 {
		t.Errorf("Last sample failed: expected %v, got %v", p1, points[4])
	}
	if points[2].Distance(NewVector3(1, 1, 0)) > 1e-10 {
		t.Errorf("Middle sample failed: got %v", points[2])
	}
}

func TestSampleQuadraticBezierBadCount(t *testing.T) {
	p0 := NewVector3(0, 0, 0)
	if points := SampleQuadraticBezier(p0, p0, p0, 0); points != nil {
		t.Errorf("Sample with n=0 failed: expected nil, got %v", points)
	}
}

func TestQuadraticBezierSymmetricArc(t *testing.T) {
	// Control point above the chord: curve peaks halfway and samples
	// are mirror-symmetric around it
	p0 := NewVector3(-1, 0, 0)
	ctrl := NewVector3(0, 1, 0)
	p1 := NewVector3(1, 0, 0)

	a := QuadraticBezier(p0, ctrl, p1, 0.25)
	b := QuadraticBezier(p0, ctrl, p1, 0.75)

	if math.Abs(a.Y-b.Y) > 1e-10 || math.Abs(a.X+b.X) > 1e-10 {
		t.Errorf("Bezier symmetry failed: %v vs %v", a, b)
	}
}
