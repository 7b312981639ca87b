package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	// DefaultWidth and DefaultHeight size a fresh blank document.
	DefaultWidth  = 800
	DefaultHeight = 600

	// UntitledName is reported for documents without a backing file.
	UntitledName = "Untitled"
)

// ErrInvalidSize reports a requested canvas size that is not a positive integer.
var ErrInvalidSize = errors.New("invalid canvas size")

// Document owns the pixel buffer being edited together with its dirty flag
// and optional backing path. Other components borrow the buffer for the
// duration of a single operation.
type Document struct {
	ID uuid.UUID

	img   *image.RGBA
	path  string
	dirty bool
	bg    color.RGBA
}

// Option customises a Document during creation.
type Option func(*Document)

// WithBackground sets the fill colour used for blank and grown areas.
func WithBackground(c color.RGBA) Option { return func(d *Document) { d.bg = c } }

// WithPath records the backing file for the document.
func WithPath(path string) Option { return func(d *Document) { d.path = path } }

// New returns a blank, opaque document filled with the background colour.
func New(w, h int, opts ...Option) (*Document, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	d := &Document{ID: uuid.New(), bg: color.RGBA{255, 255, 255, 255}}
	for _, o := range opts {
		o(d)
	}
	d.img = Blank(w, h, d.bg)
	return d, nil
}

// FromImage wraps an existing image. The pixels are copied so the caller keeps
// ownership of img.
func FromImage(img image.Image, opts ...Option) *Document {
	d := &Document{ID: uuid.New(), bg: color.RGBA{255, 255, 255, 255}}
	for _, o := range opts {
		o(d)
	}
	d.img = ToRGBA(img)
	return d
}

// Blank allocates a w×h buffer filled with bg.
func Blank(w, h int, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return img
}

// ToRGBA copies img into a new RGBA buffer whose origin is (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Clone returns a deep copy of img.
func Clone(img *image.RGBA) *image.RGBA {
	if img == nil {
		return nil
	}
	out := &image.RGBA{
		Pix:    make([]uint8, len(img.Pix)),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
	copy(out.Pix, img.Pix)
	return out
}

// Extract returns a copy of rect from img. Areas of rect outside img are left
// transparent.
func Extract(img *image.RGBA, rect image.Rectangle) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	src := rect.Intersect(img.Bounds())
	if !src.Empty() {
		draw.Draw(out, src.Sub(rect.Min), img, src.Min, draw.Src)
	}
	return out
}

// Image returns the current buffer. The pointer changes whenever the canvas
// grows or is replaced.
func (d *Document) Image() *image.RGBA { return d.img }

// Bounds returns the buffer bounds.
func (d *Document) Bounds() image.Rectangle { return d.img.Bounds() }

// Background returns the fill colour for blank and grown areas.
func (d *Document) Background() color.RGBA { return d.bg }

// SetImage installs img as the buffer and marks the document dirty.
func (d *Document) SetImage(img *image.RGBA) {
	d.img = img
	d.dirty = true
}

// Replace installs img without touching the dirty flag. Used when a document
// is loaded from disk.
func (d *Document) Replace(img *image.RGBA) { d.img = img }

// Path returns the backing file path, if any.
func (d *Document) Path() string { return d.path }

// SetPath sets the backing file path.
func (d *Document) SetPath(path string) { d.path = path }

// Name returns the file name used in logs and titles.
func (d *Document) Name() string {
	if d.path == "" {
		return UntitledName
	}
	return filepath.Base(d.path)
}

// SuggestedName is the file name offered when saving. Untitled documents get
// a name derived from their ID so two unsaved canvases never collide.
func (d *Document) SuggestedName() string {
	if d.path != "" {
		return filepath.Base(d.path)
	}
	return "untitled-" + d.ID.String()[:8] + ".png"
}

// Dirty reports whether the buffer has unsaved mutations.
func (d *Document) Dirty() bool { return d.dirty }

// MarkDirty records a buffer mutation.
func (d *Document) MarkDirty() { d.dirty = true }

// MarkClean clears the dirty flag. Only a successful save should call it.
func (d *Document) MarkClean() { d.dirty = false }

// EnsurePoints grows the canvas so every point lies inside the buffer. It
// returns the points translated into the buffer's new coordinate space, or
// unchanged when no growth was needed.
func (d *Document) EnsurePoints(pts ...image.Point) []image.Point {
	img, _, out := Grow(d.img, d.bg, pts...)
	if img != d.img {
		d.img = img
		d.dirty = true
	}
	return out
}

// EnsureRect grows the canvas to contain r and returns r translated into the
// buffer's coordinate space.
func (d *Document) EnsureRect(r image.Rectangle) image.Rectangle {
	img, shift := GrowRect(d.img, d.bg, r)
	if img != d.img {
		d.img = img
		d.dirty = true
	}
	return r.Sub(shift)
}
