// Package measure implements the measurement interaction: a session
// listens to pointer and keyboard input, ray casts clicks into the
// scene and grows the mode-dependent measurement geometry until the
// user completes or cancels it.
package measure

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/input"
	"github.com/philipparndt/gomeasure/pkg/label"
	"github.com/philipparndt/gomeasure/pkg/pick"
	"github.com/philipparndt/gomeasure/pkg/scene"
)

// Help texts shown next to the cursor
const (
	helpPlaceFirst = "Click on the model to place the first point"
	helpPlaceNext  = "Click to add a point, right click or Enter to finish"
)

// Deps are the collaborators a session works with. Registry and Log
// are optional.
type Deps struct {
	Graph    scene.Graph
	Input    input.Source
	Picker   *pick.HitTester
	Labels   *label.Manager
	Registry *DragRegistry
	Log      *zap.Logger
}

// Session is one measurement interaction. It owns every scene object
// it creates and removes all of them on Close. Only one measurement
// is live per session: Open tears the previous one down first.
type Session struct {
	graph    scene.Graph
	source   input.Source
	tester   *pick.HitTester
	labels   *label.Manager
	registry *DragRegistry
	log      *zap.Logger
	cfg      Config

	mode      Mode
	active    bool
	completed bool
	value     float64
	points    []geometry.Vector3
	state     modeState

	// committed geometry
	markers *scene.PointCloud
	line    *scene.Polyline

	// transient geometry, mutated in place while the cursor moves
	cursor  *scene.PointCloud
	preview *scene.Polyline

	// click detection
	pointerDown bool
	moved       bool
	lastClick   time.Time

	subs []*input.Subscription
}

// NewSession creates a session. Zero config fields fall back to the
// defaults.
func NewSession(deps Deps, cfg Config) *Session {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		graph:    deps.Graph,
		source:   deps.Input,
		tester:   deps.Picker,
		labels:   deps.Labels,
		registry: deps.Registry,
		log:      log,
		cfg:      cfg.withDefaults(),
	}
}

// Open starts measuring in the given mode. An already open session is
// fully closed first, so at most one measurement owns scene objects.
// The returned handle releases the session like Close; both are
// idempotent.
func (s *Session) Open(mode Mode) (*input.Subscription, error) {
	if s.graph == nil || s.source == nil || s.tester == nil || s.labels == nil {
		return nil, fmt.Errorf("measurement session needs a scene graph, input source, hit tester and label manager")
	}

	s.Close()

	s.mode = mode
	s.active = true
	s.completed = false
	s.value = 0
	s.points = make([]geometry.Vector3, 0, s.cfg.PointCapacity)
	s.tester.MaxDistance = s.cfg.MaxHitDistance

	s.markers = scene.NewPointCloud("measurement points", s.cfg.PointCapacity, scene.FlagToolOwned)
	s.line = scene.NewPolyline("measurement line", s.cfg.PointCapacity, scene.FlagToolOwned)
	s.cursor = scene.NewPointCloud("cursor marker", 1, scene.FlagToolOwned)
	s.preview = scene.NewPolyline("preview segment", 2, scene.FlagToolOwned)
	s.graph.Add(s.markers)
	s.graph.Add(s.line)
	s.graph.Add(s.cursor)
	s.graph.Add(s.preview)

	s.state = newModeState(mode, s)

	s.subs = append(s.subs,
		s.source.OnPointerDown(s.onPointerDown),
		s.source.OnPointerMove(s.onPointerMove),
		s.source.OnPointerUp(s.onPointerUp),
		s.source.OnKeyDown(s.onKeyDown),
	)

	s.log.Info("measurement opened", zap.String("mode", mode.String()))
	return input.NewSubscription(s.Close), nil
}

// Close ends the session: subscriptions are released, every owned
// scene object is removed and the drag registry is emptied. Closing a
// closed session is a no-op.
func (s *Session) Close() {
	if !s.active {
		return
	}
	s.active = false
	s.completed = false

	for _, sub := range s.subs {
		sub.Release()
	}
	s.subs = nil

	s.discardTransient()
	if s.state != nil {
		s.state.teardown()
		s.state = nil
	}
	s.removeCommitted()
	if s.registry != nil {
		s.registry.Clear()
	}

	s.points = nil
	s.value = 0
	s.pointerDown = false
	s.moved = false
	s.lastClick = time.Time{}
}

// Cancel discards the measurement. Identical to Close.
func (s *Session) Cancel() {
	s.Close()
}

// Complete finishes the measurement. With enough points the committed
// geometry stays in the scene and its labels register for dragging;
// otherwise everything is discarded and the result is empty. Repeated
// calls do nothing.
func (s *Session) Complete() {
	if !s.active || s.completed {
		return
	}
	s.completed = true

	value, ok := s.state.complete()
	s.discardTransient()
	if !ok {
		s.log.Info("measurement discarded", zap.String("mode", s.mode.String()),
			zap.Int("points", len(s.points)))
		s.state.teardown()
		s.removeCommitted()
		return
	}

	s.value = value
	if s.registry != nil && s.line != nil {
		for _, child := range s.line.Children() {
			s.registry.Register(child)
		}
	}
	s.log.Info("measurement completed", zap.String("mode", s.mode.String()),
		zap.Float64("value", value))
}

// Mode returns the measurement mode the session was opened in
func (s *Session) Mode() Mode { return s.mode }

// Active reports whether the session is open (collecting or completed)
func (s *Session) Active() bool { return s.active }

// Completed reports whether the measurement was finished
func (s *Session) Completed() bool { return s.completed }

// Points returns the committed points in click order
func (s *Session) Points() []geometry.Vector3 { return s.points }

// Value returns the final value after completion, or the running
// value over the committed points while collecting
func (s *Session) Value() float64 {
	if s.completed {
		return s.value
	}
	if s.active && s.state != nil {
		return s.state.value()
	}
	return 0
}

func (s *Session) onPointerDown(ev input.PointerEvent) {
	if ev.Button == input.ButtonSecondary {
		s.Complete()
		return
	}
	s.pointerDown = true
	s.moved = false
}

func (s *Session) onPointerMove(ev input.PointerEvent) {
	if s.pointerDown {
		s.moved = true
	}
	if !s.active || s.completed {
		return
	}

	hit, ok := s.tester.HitAt(ev.OffsetX, ev.OffsetY)
	if !ok {
		return // keep the previous preview
	}
	s.updatePreview(hit.Point)
}

func (s *Session) onPointerUp(ev input.PointerEvent) {
	if ev.Button != input.ButtonPrimary {
		return
	}
	wasDown, moved := s.pointerDown, s.moved
	s.pointerDown = false

	// A click is press and release without movement in between;
	// anything else was a camera drag
	if !wasDown || moved {
		return
	}
	if !s.active || s.completed {
		return
	}
	if s.cfg.ClickDebounce > 0 && !s.lastClick.IsZero() &&
		s.cfg.Now().Sub(s.lastClick) < s.cfg.ClickDebounce {
		return
	}

	hit, ok := s.tester.HitAt(ev.OffsetX, ev.OffsetY)
	if !ok {
		return
	}
	s.commitPoint(hit.Point)
}

func (s *Session) onKeyDown(k input.Key) {
	switch k {
	case input.KeyEnter:
		s.Complete()
	case input.KeyEscape:
		s.Cancel()
	}
}

// commitPoint appends a clicked world point to the measurement
func (s *Session) commitPoint(p geometry.Vector3) {
	if len(s.points) >= s.cfg.PointCapacity {
		s.log.Warn("point capacity reached, ignoring click",
			zap.Int("capacity", s.cfg.PointCapacity))
		return
	}

	s.lastClick = s.cfg.Now()
	s.points = append(s.points, p)
	s.markers.Append(p)
	s.line.Append(p)

	if s.state.commit(p) {
		s.Complete()
	}
}

// updatePreview redraws the transient geometry for the cursor position
func (s *Session) updatePreview(p geometry.Vector3) {
	text := helpPlaceFirst
	if len(s.points) > 0 {
		text = helpPlaceNext
	}
	// The help label floats at half the hit height
	s.labels.UpsertHelp(text, geometry.NewVector3(p.X, p.Y/2, p.Z))

	s.cursor.Set(0, p)
	s.cursor.SetDrawCount(1)

	if len(s.points) > 0 {
		last := s.points[len(s.points)-1]
		s.preview.Set(0, last)
		s.preview.Set(1, p)
		s.preview.SetDrawCount(2)
	}

	s.state.preview(p)
}

// discardTransient removes the preview geometry and labels
func (s *Session) discardTransient() {
	if s.cursor != nil {
		s.graph.Remove(s.cursor)
		s.cursor = nil
	}
	if s.preview != nil {
		s.graph.Remove(s.preview)
		s.preview = nil
	}
	if s.state != nil {
		s.state.discardPreview()
	}
	s.labels.Clear()
}

// removeCommitted removes the point markers and the measurement line,
// along with any labels attached to the line
func (s *Session) removeCommitted() {
	if s.markers != nil {
		s.graph.Remove(s.markers)
		s.markers = nil
	}
	if s.line != nil {
		s.graph.Remove(s.line)
		s.line = nil
	}
}
