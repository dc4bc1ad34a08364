// Package label manages the floating text annotations of a
// measurement: the help text following the cursor and the value labels
// attached to measured geometry. Two backends cover the capability
// split between hosts that can update a label in place and hosts that
// must rebuild one on every change.
package label

import (
	"image"

	"go.uber.org/zap"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/scene"
)

// depthScale nudges label positions away from the geometry they
// annotate so the text does not fight the line for depth
const depthScale = 1.1

// Label is a floating text annotation anchored at a world position.
// It participates in the scene graph so committed labels can live as
// children of the geometry they describe.
type Label struct {
	scene.Node
	text     string
	position geometry.Vector3

	// Mesh-backed labels carry their rasterized text; overlay labels
	// leave these zero and are drawn by the host in screen space.
	img           *image.RGBA
	width, height float64
}

func newLabel(text string, pos geometry.Vector3) *Label {
	return &Label{
		Node:     scene.NewNode("label", scene.FlagToolOwned),
		text:     text,
		position: pos,
	}
}

// Text returns the label text
func (l *Label) Text() string { return l.text }

// Position returns the anchor position in world space
func (l *Label) Position() geometry.Vector3 { return l.position }

// Image returns the rasterized text for mesh-backed labels, nil for
// overlay labels
func (l *Label) Image() *image.RGBA { return l.img }

// Size returns the world-space quad dimensions of a mesh-backed label
func (l *Label) Size() (w, h float64) { return l.width, l.height }

// Intersect always misses; labels are never pick targets
func (l *Label) Intersect(geometry.Ray) (geometry.Vector3, float64, bool) {
	return geometry.Vector3{}, 0, false
}

// Backend creates and updates labels. UpdatesInPlace reports whether
// an existing label can be moved and retexted, or has to be replaced
// wholesale on every change.
type Backend interface {
	// Create builds a label. A nil label with a nil error means the
	// backend cannot produce one right now (logged, non-fatal).
	Create(text string, pos geometry.Vector3) (*Label, error)

	// Move re-anchors an existing label
	Move(l *Label, pos geometry.Vector3)

	// SetText replaces the text of an existing label
	SetText(l *Label, text string) error

	// UpdatesInPlace reports whether Move and SetText are usable
	UpdatesInPlace() bool
}

// Manager owns the transient labels of one measurement session: the
// singular help label and the current measurement value label.
type Manager struct {
	backend Backend
	graph   scene.Graph
	log     *zap.Logger

	help        *Label
	measurement *Label
}

// NewManager creates a label manager on the given backend and graph
func NewManager(backend Backend, graph scene.Graph, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{backend: backend, graph: graph, log: log}
}

// upsert updates the label in slot, replacing it when the backend
// cannot update in place
func (m *Manager) upsert(slot **Label, text string, pos geometry.Vector3) {
	if *slot != nil {
		if m.backend.UpdatesInPlace() {
			m.backend.Move(*slot, pos)
			if err := m.backend.SetText(*slot, text); err == nil {
				return
			}
		}
		m.graph.Remove(*slot)
		*slot = nil
	}

	l, err := m.backend.Create(text, pos)
	if err != nil {
		m.log.Warn("label creation failed", zap.String("text", text), zap.Error(err))
		return
	}
	if l == nil {
		return // backend not ready, already logged
	}
	*slot = l
	m.graph.Add(l)
}

// UpsertHelp updates the help label that follows the cursor
func (m *Manager) UpsertHelp(text string, pos geometry.Vector3) {
	m.upsert(&m.help, text, pos)
}

// UpsertMeasurement updates the current value label. The final anchor
// is pos offset by dist along dir, pushed slightly toward the viewer.
func (m *Manager) UpsertMeasurement(text string, pos, dir geometry.Vector3, dist float64) {
	anchor := pos.Add(dir.Mul(dist))
	anchor.Z *= depthScale
	m.upsert(&m.measurement, text, anchor)
}

// Help returns the current help label, nil when absent
func (m *Manager) Help() *Label { return m.help }

// Measurement returns the current value label, nil when absent
func (m *Manager) Measurement() *Label { return m.measurement }

// PromoteMeasurement turns the current value label into a permanent
// child of parent and returns it. The manager forgets the label, so
// the next upsert starts a fresh one.
func (m *Manager) PromoteMeasurement(parent *scene.Polyline) *Label {
	l := m.measurement
	if l == nil {
		return nil
	}
	m.graph.Remove(l)
	parent.AddChild(l)
	m.measurement = nil
	return l
}

// Clear removes the transient labels from the graph
func (m *Manager) Clear() {
	if m.help != nil {
		m.graph.Remove(m.help)
		m.help = nil
	}
	if m.measurement != nil {
		m.graph.Remove(m.measurement)
		m.measurement = nil
	}
}
