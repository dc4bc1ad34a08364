// Package input defines the pointer and keyboard contract between a
// host window and the measurement tools, plus a dispatcher hosts push
// their native events through. Offsets are always element-relative,
// in the same logical pixels the viewport reports.
package input

// Button identifies a pointer button
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// Key identifies the keyboard keys the tools react to
type Key int

const (
	KeyEnter Key = iota
	KeyEscape
)

// PointerEvent is one pointer interaction
type PointerEvent struct {
	OffsetX float64
	OffsetY float64
	Button  Button
}

// Subscription is the handle to one event registration. Handles are
// issued per registration, so registering the same function twice
// yields two independently releasable handles.
type Subscription struct {
	release func()
}

// NewSubscription wraps a release function into a handle. Sources and
// session owners use this to hand out their own teardown.
func NewSubscription(release func()) *Subscription {
	return &Subscription{release: release}
}

// Release removes the registration. Further calls are no-ops.
func (s *Subscription) Release() {
	if s != nil && s.release != nil {
		s.release()
		s.release = nil
	}
}

// Source is what tools subscribe to
type Source interface {
	OnPointerDown(fn func(PointerEvent)) *Subscription
	OnPointerMove(fn func(PointerEvent)) *Subscription
	OnPointerUp(fn func(PointerEvent)) *Subscription
	OnKeyDown(fn func(Key)) *Subscription
}
