package measure

import (
	"math"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/label"
	"github.com/philipparndt/gomeasure/pkg/scene"
)

// Mode selects what a session measures
type Mode int

const (
	// Distance measures the total length of a clicked point chain
	Distance Mode = iota
	// Area measures the fan area of a clicked outline
	Area
	// Angle measures the angle at the second of three clicked points
	Angle
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case Area:
		return "area"
	case Angle:
		return "angle"
	default:
		return "distance"
	}
}

// Unit returns the unit suffix for values measured in this mode
func (m Mode) Unit() string {
	switch m {
	case Area:
		return label.UnitSquareMeters
	case Angle:
		return label.UnitDegrees
	default:
		return label.UnitMeters
	}
}

// Label placement factors: area labels sit at 0.4 of the first edge
// along its bisector, angle labels at 0.2 of the shorter adjacent edge
const (
	areaLabelFactor  = 0.4
	angleLabelFactor = 0.2
)

// modeState carries the behaviour that differs between modes. The
// session drives it through this interface; newModeState is the only
// place that switches on the mode.
type modeState interface {
	// value returns the measure over the committed points so far
	value() float64

	// preview updates mode transient geometry for the cursor position
	preview(cursor geometry.Vector3)

	// commit integrates a newly committed point (already appended to
	// the session); true requests completion
	commit(p geometry.Vector3) bool

	// complete finalizes the measurement; ok is false when too few
	// points were committed
	complete() (float64, bool)

	// discardPreview removes mode transient geometry from the graph
	discardPreview()

	// teardown removes every mode-owned object from the graph
	teardown()
}

func newModeState(m Mode, s *Session) modeState {
	switch m {
	case Area:
		return newAreaState(s)
	case Angle:
		return &angleState{s: s}
	default:
		return &distanceState{s: s}
	}
}

// distanceState labels each committed segment as it forms; the line
// and markers the session owns are all the geometry it needs
type distanceState struct {
	s *Session
}

func (d *distanceState) value() float64 {
	points := d.s.points
	var total float64
	for i := 1; i < len(points); i++ {
		total += points[i-1].Distance(points[i])
	}
	return total
}

func (d *distanceState) preview(cursor geometry.Vector3) {
	points := d.s.points
	if len(points) == 0 {
		return
	}
	last := points[len(points)-1]
	text := label.FormatMeasurement(last.Distance(cursor), label.UnitMeters)
	d.s.labels.UpsertMeasurement(text, last.Midpoint(cursor), geometry.Vector3{}, 0)
}

func (d *distanceState) commit(geometry.Vector3) bool {
	points := d.s.points
	n := len(points)
	if n < 2 {
		return false
	}

	// Pin the transient label to the committed segment, then keep it
	// as a child of the line
	a, b := points[n-2], points[n-1]
	text := label.FormatMeasurement(a.Distance(b), label.UnitMeters)
	d.s.labels.UpsertMeasurement(text, a.Midpoint(b), geometry.Vector3{}, 0)
	d.s.labels.PromoteMeasurement(d.s.line)
	return false
}

func (d *distanceState) complete() (float64, bool) {
	if len(d.s.points) < 2 {
		return 0, false
	}
	return d.value(), true
}

func (d *distanceState) discardPreview() {}

func (d *distanceState) teardown() {}

// areaState owns the fill fan and the closing edge preview
type areaState struct {
	s       *Session
	fan     *scene.TriangleFan
	closing *scene.Polyline
}

func newAreaState(s *Session) *areaState {
	a := &areaState{
		s:       s,
		fan:     scene.NewTriangleFan("area fill", s.cfg.PointCapacity, scene.FlagToolOwned),
		closing: scene.NewPolyline("area closing edge", 2, scene.FlagToolOwned),
	}
	s.graph.Add(a.fan)
	s.graph.Add(a.closing)
	return a
}

func (a *areaState) value() float64 {
	return geometry.FanArea(a.s.points)
}

func (a *areaState) preview(cursor geometry.Vector3) {
	points := a.s.points
	if len(points) == 0 {
		return
	}
	// The outline will close back to the first point
	a.closing.Set(0, cursor)
	a.closing.Set(1, points[0])
	a.closing.SetDrawCount(2)
}

func (a *areaState) commit(p geometry.Vector3) bool {
	a.fan.Append(p)
	return false
}

func (a *areaState) complete() (float64, bool) {
	points := a.s.points
	if len(points) < 3 {
		return 0, false
	}

	a.s.line.Close(points[0])
	area := geometry.FanArea(points)

	// Label near the first edge, inside the outline
	first, second, last := points[0], points[1], points[len(points)-1]
	dir := geometry.Bisector(first, second, last)
	dist := areaLabelFactor * first.Distance(second)
	a.s.labels.UpsertMeasurement(label.FormatMeasurement(area, label.UnitSquareMeters), first, dir, dist)
	a.s.labels.PromoteMeasurement(a.s.line)
	return area, true
}

func (a *areaState) discardPreview() {
	if a.closing != nil {
		a.s.graph.Remove(a.closing)
		a.closing = nil
	}
}

func (a *areaState) teardown() {
	a.discardPreview()
	if a.fan != nil {
		a.s.graph.Remove(a.fan)
		a.fan = nil
	}
}

// angleState builds its arc at completion; until then the session's
// marker and line previews carry the interaction
type angleState struct {
	s   *Session
	arc *scene.Polyline
}

func (g *angleState) value() float64 {
	points := g.s.points
	if len(points) < 3 {
		return 0
	}
	return geometry.AngleAt(points[0], points[1], points[2])
}

func (g *angleState) preview(geometry.Vector3) {}

func (g *angleState) commit(geometry.Vector3) bool {
	// The third point decides the angle, nothing more to collect
	return len(g.s.points) == 3
}

func (g *angleState) complete() (float64, bool) {
	points := g.s.points
	if len(points) < 3 {
		return 0, false
	}

	p0, p1, p2 := points[0], points[1], points[2]
	angle := geometry.AngleAt(p0, p1, p2)

	dir := geometry.Bisector(p1, p0, p2)
	dist := angleLabelFactor * math.Min(p1.Distance(p0), p1.Distance(p2))
	g.s.labels.UpsertMeasurement(label.FormatMeasurement(angle, label.UnitDegrees), p1, dir, dist)

	// Arc between the leg offsets, bent through the label anchor
	start := p1.Add(p0.Sub(p1).Normalize().Mul(dist))
	end := p1.Add(p2.Sub(p1).Normalize().Mul(dist))
	ctrl := p1.Add(dir.Mul(dist))
	if l := g.s.labels.Measurement(); l != nil {
		ctrl = l.Position()
	}
	g.arc = scene.NewArc("angle arc", start, ctrl, end, scene.FlagToolOwned)
	g.s.graph.Add(g.arc)

	g.s.labels.PromoteMeasurement(g.s.line)
	return angle, true
}

func (g *angleState) discardPreview() {}

func (g *angleState) teardown() {
	if g.arc != nil {
		g.s.graph.Remove(g.arc)
		g.arc = nil
	}
}
