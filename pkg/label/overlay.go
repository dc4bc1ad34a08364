package label

import "github.com/philipparndt/gomeasure/pkg/geometry"

// Overlay is the screen-space label backend. The host projects the
// anchor each frame and draws the text in 2D, so labels can be moved
// and retexted freely.
type Overlay struct{}

// NewOverlay creates the overlay backend
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Create builds an overlay label
func (o *Overlay) Create(text string, pos geometry.Vector3) (*Label, error) {
	return newLabel(text, pos), nil
}

// Move re-anchors the label
func (o *Overlay) Move(l *Label, pos geometry.Vector3) {
	l.position = pos
}

// SetText replaces the label text
func (o *Overlay) SetText(l *Label, text string) error {
	l.text = text
	return nil
}

// UpdatesInPlace reports that overlay labels are mutable
func (o *Overlay) UpdatesInPlace() bool {
	return true
}
