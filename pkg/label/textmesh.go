package label

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// ErrStaticText is returned when a mesh-backed label is asked to
// change its text; the glyph geometry is baked at creation time
var ErrStaticText = errors.New("text mesh labels cannot change text in place")

// worldPerPixel converts rasterized text pixels to world units
const worldPerPixel = 0.01

// textPadding is the pixel border around the rasterized text
const textPadding = 4

// TextMesh is the mesh label backend: text is rasterized through a
// font face into an image the host renders as a billboard quad. The
// face typically arrives from an asynchronous load, so creation before
// the face is ready degrades to a logged no-op.
type TextMesh struct {
	mu    sync.Mutex
	face  font.Face
	cache map[string]*image.RGBA
	log   *zap.Logger
}

// NewTextMesh creates the mesh backend without a face; call SetFace or
// LoadFaceAsync before labels can appear
func NewTextMesh(log *zap.Logger) *TextMesh {
	if log == nil {
		log = zap.NewNop()
	}
	return &TextMesh{
		cache: make(map[string]*image.RGBA),
		log:   log,
	}
}

// SetFace installs the font face and unblocks label creation
func (t *TextMesh) SetFace(face font.Face) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.face = face
}

// LoadFace parses an OpenType font file into a face at the given size
func LoadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

// LoadFaceAsync loads the font in the background and installs it when
// done. Load failures are logged; the backend then stays in its
// not-ready state.
func (t *TextMesh) LoadFaceAsync(path string, size float64) {
	go func() {
		face, err := LoadFace(path, size)
		if err != nil {
			t.log.Warn("font load failed", zap.String("path", path), zap.Error(err))
			return
		}
		t.SetFace(face)
	}()
}

// Create rasterizes the text and builds a mesh-backed label. Before
// the face is ready it logs and returns nil, keeping the session
// usable.
func (t *TextMesh) Create(text string, pos geometry.Vector3) (*Label, error) {
	img := t.rasterize(text)
	if img == nil {
		return nil, nil
	}

	l := newLabel(text, pos)
	l.img = img
	l.width = float64(img.Rect.Dx()) * worldPerPixel
	l.height = float64(img.Rect.Dy()) * worldPerPixel
	return l, nil
}

// Move re-anchors the label; the quad itself is host-side
func (t *TextMesh) Move(l *Label, pos geometry.Vector3) {
	l.position = pos
}

// SetText always fails; callers replace the label instead
func (t *TextMesh) SetText(*Label, string) error {
	return ErrStaticText
}

// UpdatesInPlace reports that mesh labels must be replaced on change
func (t *TextMesh) UpdatesInPlace() bool {
	return false
}

// rasterize draws the text into an RGBA image, memoized per text
func (t *TextMesh) rasterize(text string) *image.RGBA {
	t.mu.Lock()
	defer t.mu.Unlock()

	if img, ok := t.cache[text]; ok {
		return img
	}
	if t.face == nil {
		t.log.Warn("font not loaded yet, skipping label", zap.String("text", text))
		return nil
	}

	_, advance := font.BoundString(t.face, text)
	width := int(advance >> 6)

	metrics := t.face.Metrics()
	height := int(metrics.Height >> 6)
	ascent := int(metrics.Ascent >> 6)

	imgWidth := width + textPadding*2
	imgHeight := height + textPadding*2
	if width <= 0 || height <= 0 {
		return nil
	}

	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: t.face,
		Dot:  fixed.Point26_6{X: fixed.I(textPadding), Y: fixed.I(textPadding + ascent)},
	}
	d.DrawString(text)

	t.cache[text] = img
	return img
}
