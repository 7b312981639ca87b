// Package selection implements the marquee, drag, clipboard and paste state
// machine that sits on top of a canvas document.
package selection

import (
	"errors"
	"image"
	"image/draw"

	"github.com/example/easel/internal/canvas"
)

var (
	// ErrEmptyClipboard is returned by Paste when nothing has been copied.
	ErrEmptyClipboard = errors.New("clipboard is empty")
	// ErrNoSelection is returned by operations that need a selection.
	ErrNoSelection = errors.New("no selection")
)

// State is the engine's position in the selection state machine.
type State int

const (
	Idle State = iota
	HasSelection
	Marqueeing
	Dragging
	PastePreview
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case HasSelection:
		return "selected"
	case Marqueeing:
		return "marquee"
	case Dragging:
		return "dragging"
	case PastePreview:
		return "paste"
	}
	return "unknown"
}

// Surface is the document the engine reads from and commits into.
type Surface interface {
	Image() *image.RGBA
	// EnsureRect grows the surface to contain r and returns r in the
	// surface's new coordinates.
	EnsureRect(r image.Rectangle) image.Rectangle
	MarkDirty()
}

// Engine tracks one selection and the clipboard slot. The mutate hook runs
// once before the first buffer write of each user action so the caller can
// record history.
type Engine struct {
	state      State
	bounds     image.Rectangle
	img        *image.RGBA
	cut        bool
	dragOffset image.Point
	anchor     image.Point
	marquee    image.Rectangle
	floating   bool
	recorded   bool
	clipboard  *image.RGBA

	mutate func()
}

// New returns an idle engine. mutate may be nil.
func New(mutate func()) *Engine {
	if mutate == nil {
		mutate = func() {}
	}
	return &Engine{mutate: mutate}
}

func (e *Engine) State() State               { return e.state }
func (e *Engine) Bounds() image.Rectangle    { return e.bounds }
func (e *Engine) Image() *image.RGBA         { return e.img }
func (e *Engine) Cut() bool                  { return e.cut }
func (e *Engine) Clipboard() *image.RGBA     { return e.clipboard }
func (e *Engine) SetClipboard(i *image.RGBA) { e.clipboard = i }

// Active reports whether bounds and image are set.
func (e *Engine) Active() bool { return e.img != nil && !e.bounds.Empty() }

// Floating reports whether the selection image differs from the buffer
// underneath it and must be drawn on top of the canvas.
func (e *Engine) Floating() bool {
	return e.Active() && (e.floating || e.state == Dragging || e.state == PastePreview)
}

// Marquee returns the live rectangle while marqueeing.
func (e *Engine) Marquee() (image.Rectangle, bool) {
	return e.marquee, e.state == Marqueeing
}

// Clear drops the selection without touching the buffer.
func (e *Engine) Clear() {
	e.state = Idle
	e.bounds = image.Rectangle{}
	e.img = nil
	e.cut = false
	e.floating = false
	e.recorded = false
	e.marquee = image.Rectangle{}
}

// PointerDown starts a marquee, a drag or commits a pending paste depending
// on the current state. copyMod selects copy semantics for drags.
func (e *Engine) PointerDown(s Surface, p image.Point, copyMod bool) {
	switch {
	case e.state == PastePreview:
		e.bounds = image.Rectangle{Min: p, Max: p.Add(e.img.Bounds().Size())}
		e.commit(s)
	case e.Active() && p.In(e.bounds):
		e.dragOffset = p.Sub(e.bounds.Min)
		e.cut = !copyMod
		switch {
		case e.Floating():
			// A rotated image has no source pixels left to lift and its
			// history entry is still open.
			if copyMod {
				e.stamp(s)
			}
		case e.cut:
			e.mutate()
			e.recorded = true
			e.lift(s)
		default:
			e.recorded = false
		}
		e.state = Dragging
	default:
		if e.Floating() {
			e.commit(s)
		}
		e.Clear()
		e.state = Marqueeing
		e.anchor = p
		e.marquee = image.Rectangle{Min: p, Max: p}
	}
}

// PointerMove updates the marquee or moves the dragged selection.
func (e *Engine) PointerMove(p image.Point) {
	switch e.state {
	case Marqueeing:
		e.marquee = image.Rectangle{Min: e.anchor, Max: p}.Canon()
	case Dragging:
		e.bounds = image.Rectangle{Min: p.Sub(e.dragOffset), Max: p.Sub(e.dragOffset).Add(e.bounds.Size())}
	}
}

// PointerUp finishes a marquee or commits a drag.
func (e *Engine) PointerUp(s Surface, p image.Point) {
	switch e.state {
	case Marqueeing:
		r := image.Rectangle{Min: e.anchor, Max: p}.Canon().Intersect(s.Image().Bounds())
		if r.Empty() {
			e.Clear()
			return
		}
		e.img = canvas.Extract(s.Image(), r)
		e.bounds = r
		e.marquee = image.Rectangle{}
		e.floating = false
		e.state = HasSelection
	case Dragging:
		e.PointerMove(p)
		e.commit(s)
	}
}

// Copy stores the pixels currently under the selection in the clipboard slot.
// A rotated selection is committed first so the copy sees it.
func (e *Engine) Copy(s Surface) error {
	if e.bounds.Empty() {
		return ErrNoSelection
	}
	e.Commit(s)
	e.clipboard = canvas.Extract(s.Image(), e.bounds)
	return nil
}

// Paste installs the clipboard slot as a floating selection centred on c and
// waits for a pointer-down to place it. A rotated selection still floating is
// committed into s first.
func (e *Engine) Paste(s Surface, c image.Point) error {
	if e.clipboard == nil {
		return ErrEmptyClipboard
	}
	e.Commit(s)
	img := canvas.Clone(e.clipboard)
	sz := img.Bounds().Size()
	at := c.Sub(sz.Div(2))
	e.img = img
	e.bounds = image.Rectangle{Min: at, Max: at.Add(sz)}
	e.cut = false
	e.recorded = false
	e.state = PastePreview
	return nil
}

// Rotate turns the selection image by degrees and re-centres its bounds. A
// selection still resting in the buffer is lifted out first, like a cut. The
// result stays floating until the next commit.
func (e *Engine) Rotate(s Surface, degrees float64) error {
	if !e.Active() {
		return ErrNoSelection
	}
	e.mutate()
	e.recorded = true
	if !e.Floating() {
		e.lift(s)
	}
	rot := canvas.Rotate(e.img, degrees)
	c := e.bounds.Min.Add(e.bounds.Size().Div(2))
	at := c.Sub(rot.Bounds().Size().Div(2))
	e.img = rot
	e.bounds = image.Rectangle{Min: at, Max: at.Add(rot.Bounds().Size())}
	e.floating = true
	return nil
}

// Mirror flips the selection image and commits it.
func (e *Engine) Mirror(s Surface) error {
	if !e.Active() {
		return ErrNoSelection
	}
	e.mutate()
	e.recorded = true
	e.img = canvas.MirrorHorizontal(e.img)
	e.commit(s)
	return nil
}

// lift clears the pixels under the selection to transparent.
func (e *Engine) lift(s Surface) {
	src := e.bounds.Intersect(s.Image().Bounds())
	if src.Empty() {
		return
	}
	draw.Draw(s.Image(), src, image.Transparent, image.Point{}, draw.Src)
	s.MarkDirty()
}

// Commit composites a rotated selection that is still floating at its
// current bounds. Selections resting in the buffer, drags and pending pastes
// are left alone.
func (e *Engine) Commit(s Surface) {
	if e.Active() && e.floating && e.state == HasSelection {
		e.commit(s)
	}
}

// commit composites the selection into the surface, growing it as needed.
func (e *Engine) commit(s Surface) {
	if !e.recorded {
		e.mutate()
	}
	e.stamp(s)
	e.state = HasSelection
	e.floating = false
	e.recorded = false
}

// stamp draws the selection image at its bounds and moves the bounds into
// the possibly grown surface.
func (e *Engine) stamp(s Surface) {
	r := s.EnsureRect(e.bounds)
	draw.Draw(s.Image(), r, e.img, image.Point{}, draw.Over)
	s.MarkDirty()
	e.bounds = r
}
