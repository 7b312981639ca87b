// Package editor drives a canvas document from pointer events and commands.
//
// A Session has a single writer: every method must be called from the same
// goroutine (the window's event loop or a CLI command). Background work such
// as auto save posts closures back to that goroutine instead of touching the
// buffer directly. Embedding the session where several goroutines mutate the
// document needs external locking.
package editor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/example/easel/internal/actionlog"
	"github.com/example/easel/internal/canvas"
	"github.com/example/easel/internal/history"
	"github.com/example/easel/internal/notify"
	"github.com/example/easel/internal/raster"
	"github.com/example/easel/internal/selection"
	"github.com/example/easel/internal/viewport"
)

var (
	// ErrNoPath is returned by Save when the document has never been saved.
	ErrNoPath = errors.New("document has no file path")
	// ErrNoTextAnchor is returned by PlaceText before the text tool was clicked.
	ErrNoTextAnchor = errors.New("no text position chosen")
	// ErrInvalidSides rejects polygon side counts below three.
	ErrInvalidSides = errors.New("shapes need at least 3 sides")
)

// Modifiers are the keyboard modifiers held during a pointer event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// CopyDrag reports whether a selection drag should leave the source intact.
func (m Modifiers) CopyDrag() bool { return m&ModCtrl != 0 }

// ClipboardMirror publishes copies to, and reads pastes from, the desktop
// clipboard.
type ClipboardMirror interface {
	WriteImage(img image.Image) error
	ReadImage() (*image.RGBA, error)
}

// Session is one open document with its tool state, history and selection.
type Session struct {
	doc     *canvas.Document
	hist    *history.Manager
	sel     *selection.Engine
	raster  *raster.Rasterizer
	actions *actionlog.Logger
	notify  *notify.Notifier
	mirror  ClipboardMirror

	onChange func()
	bg       color.RGBA
	initW    int
	initH    int

	zoom               float64
	displayW, displayH int

	tool  raster.Tool
	style raster.Style
	sides int

	// pointer gesture
	down       bool
	start, cur image.Point
	last       image.Point
	penStarted bool

	textAt      image.Point
	textPending bool
}

// Option configures a Session.
type Option func(*Session)

// WithDocument edits doc instead of a new blank canvas.
func WithDocument(doc *canvas.Document) Option { return func(s *Session) { s.doc = doc } }

// WithCanvasSize sets the size of the initial blank canvas.
func WithCanvasSize(w, h int) Option { return func(s *Session) { s.initW, s.initH = w, h } }

// WithBackground sets the colour of blank canvases and grown areas.
func WithBackground(c color.RGBA) Option { return func(s *Session) { s.bg = c } }

// WithHistoryLimit bounds the undo and redo stacks.
func WithHistoryLimit(n int) Option { return func(s *Session) { s.hist = history.New(n) } }

// WithActionLog records user actions to l.
func WithActionLog(l *actionlog.Logger) Option { return func(s *Session) { s.actions = l } }

// WithNotifier sends desktop notifications for saves and copies.
func WithNotifier(n *notify.Notifier) Option { return func(s *Session) { s.notify = n } }

// WithClipboardMirror mirrors copies to the desktop clipboard.
func WithClipboardMirror(m ClipboardMirror) Option { return func(s *Session) { s.mirror = m } }

// WithOnChange is called after anything visible changes.
func WithOnChange(fn func()) Option { return func(s *Session) { s.onChange = fn } }

// WithStyle sets the initial brush.
func WithStyle(width int, c color.Color) Option {
	return func(s *Session) { s.style = raster.Style{Width: max(1, width), Color: c} }
}

// WithSides sets the initial polygon and star side count.
func WithSides(n int) Option { return func(s *Session) { s.sides = n } }

// WithTool sets the initial tool.
func WithTool(t raster.Tool) Option { return func(s *Session) { s.tool = t } }

// WithStarOptions overrides the star construction constants.
func WithStarOptions(o raster.StarOptions) Option {
	return func(s *Session) { s.raster = raster.New(o) }
}

// New creates a Session. Without WithDocument it starts on a blank white
// canvas that is not dirty.
func New(opts ...Option) (*Session, error) {
	s := &Session{
		bg:    color.RGBA{255, 255, 255, 255},
		initW: canvas.DefaultWidth,
		initH: canvas.DefaultHeight,
		zoom:  1,
		tool:  raster.ToolPen,
		style: raster.Style{Width: 3, Color: color.RGBA{R: 255, A: 255}},
		sides: 5,
	}
	for _, o := range opts {
		o(s)
	}
	if s.hist == nil {
		s.hist = history.New(history.DefaultLimit)
	}
	if s.raster == nil {
		s.raster = raster.New(raster.DefaultStarOptions())
	}
	if s.doc == nil {
		doc, err := canvas.New(s.initW, s.initH, canvas.WithBackground(s.bg))
		if err != nil {
			return nil, err
		}
		s.doc = doc
	}
	s.sel = selection.New(s.record)
	return s, nil
}

// record snapshots the buffer ahead of a mutation.
func (s *Session) record() { s.hist.BeginMutation(s.doc.Image()) }

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

func (s *Session) logAction(format string, args ...any) {
	s.actions.Logf(s.doc.Name(), format, args...)
}

// Document returns the document being edited.
func (s *Session) Document() *canvas.Document { return s.doc }

// Buffer returns the current pixels. Callers must not keep it past the next
// mutation.
func (s *Session) Buffer() *image.RGBA { return s.doc.Image() }

// Dirty reports unsaved changes.
func (s *Session) Dirty() bool { return s.doc.Dirty() }

// Selection exposes the selection engine for rendering.
func (s *Session) Selection() *selection.Engine { return s.sel }

// History exposes the undo stacks.
func (s *Session) History() *history.Manager { return s.hist }

// Tool returns the active tool.
func (s *Session) Tool() raster.Tool { return s.tool }

// Style returns the brush.
func (s *Session) Style() raster.Style { return s.style }

// Sides returns the polygon and star side count.
func (s *Session) Sides() int { return s.sides }

// Mapper returns the current viewport mapping.
func (s *Session) Mapper() viewport.Mapper {
	b := s.doc.Bounds()
	return viewport.Mapper{
		ImageW:   b.Dx(),
		ImageH:   b.Dy(),
		Zoom:     s.zoom,
		DisplayW: s.displayW,
		DisplayH: s.displayH,
	}
}

// SetViewport records the size of the display area.
func (s *Session) SetViewport(w, h int) {
	s.displayW, s.displayH = w, h
	s.changed()
}

// Zoom returns the zoom factor.
func (s *Session) Zoom() float64 { return s.zoom }

// SetZoom sets the zoom factor, clamped to the viewport minimum.
func (s *Session) SetZoom(z float64) {
	s.zoom = viewport.ClampZoom(z)
	s.changed()
}

// ZoomIn enlarges the view by one step.
func (s *Session) ZoomIn() {
	s.SetZoom(viewport.ZoomIn(s.zoom))
	s.logAction("zoomed in")
}

// ZoomOut shrinks the view by one step.
func (s *Session) ZoomOut() {
	s.SetZoom(viewport.ZoomOut(s.zoom))
	s.logAction("zoomed out")
}

// ZoomToFit picks the zoom that shows the whole canvas.
func (s *Session) ZoomToFit() {
	b := s.doc.Bounds()
	s.SetZoom(viewport.Fit(b.Dx(), b.Dy(), s.displayW, s.displayH))
}

// SetTool switches tools, abandoning any gesture in progress.
func (s *Session) SetTool(t raster.Tool) {
	if t == s.tool {
		return
	}
	s.cancelGesture()
	s.sel.Commit(s.doc)
	s.tool = t
	s.logAction("selected tool %s", t)
	s.changed()
}

// SetBrushWidth sets the stroke width. Widths below one become one.
func (s *Session) SetBrushWidth(w int) {
	s.style.Width = max(1, w)
	s.logAction("set brush width %d", s.style.Width)
	s.changed()
}

// SetBrushColor sets the stroke colour.
func (s *Session) SetBrushColor(c color.Color) {
	s.style.Color = c
	s.logAction("set brush color")
	s.changed()
}

// SetSides sets the polygon and star side count.
func (s *Session) SetSides(n int) error {
	if n < 3 {
		return fmt.Errorf("%w: %d", ErrInvalidSides, n)
	}
	s.sides = n
	s.logAction("set sides %d", n)
	return nil
}

// TextAnchor returns where PlaceText will draw, if the text tool was clicked.
func (s *Session) TextAnchor() (image.Point, bool) { return s.textAt, s.textPending }

func (s *Session) cancelGesture() {
	s.down = false
	s.penStarted = false
	s.textPending = false
}

// PointerDown starts a gesture at display coordinates (x, y).
func (s *Session) PointerDown(x, y int, mods Modifiers) {
	p := s.Mapper().ToImage(image.Pt(x, y))
	if s.sel.State() == selection.PastePreview {
		s.sel.PointerDown(s.doc, p, mods.CopyDrag())
		s.logAction("pasted selection")
		s.changed()
		return
	}
	switch s.tool {
	case raster.ToolSelection:
		s.sel.PointerDown(s.doc, p, mods.CopyDrag())
	case raster.ToolColorPicker:
		s.pick(p)
	case raster.ToolText:
		s.textAt = p
		s.textPending = true
	case raster.ToolPoint:
		s.record()
		s.raster.Dot(s.doc, p, s.style)
		s.logAction("drew point")
	default:
		s.down = true
		s.start, s.cur, s.last = p, p, p
		s.penStarted = false
	}
	s.changed()
}

// PointerMove continues a gesture.
func (s *Session) PointerMove(x, y int) {
	p := s.Mapper().ToImage(image.Pt(x, y))
	if s.tool == raster.ToolSelection || s.sel.State() == selection.PastePreview {
		s.sel.PointerMove(p)
		s.changed()
		return
	}
	if !s.down {
		return
	}
	switch {
	case s.tool == raster.ToolPen:
		if p == s.last {
			return
		}
		if !s.penStarted {
			s.record()
			s.penStarted = true
		}
		shift := s.raster.Segment(s.doc, s.last, p, s.style)
		s.last = p.Add(shift)
		s.start = s.start.Add(shift)
	case s.tool.IsShape():
		s.cur = p
	}
	s.changed()
}

// PointerUp finishes a gesture.
func (s *Session) PointerUp(x, y int) {
	p := s.Mapper().ToImage(image.Pt(x, y))
	if s.tool == raster.ToolSelection {
		prev := s.sel.State()
		s.sel.PointerUp(s.doc, p)
		switch {
		case prev == selection.Dragging:
			if s.sel.Cut() {
				s.logAction("moved selection")
			} else {
				s.logAction("copied selection by drag")
			}
		case prev == selection.Marqueeing && s.sel.Active():
			s.logAction("selected region")
		}
		s.changed()
		return
	}
	if !s.down {
		return
	}
	s.down = false
	switch {
	case s.tool == raster.ToolPen:
		if !s.penStarted {
			s.record()
			s.raster.Dot(s.doc, s.last, s.style)
		}
		s.penStarted = false
		s.logAction("drew with pen")
	case s.tool.IsShape():
		s.drawShape(raster.Shape{Tool: s.tool, Start: s.start, End: p, Sides: s.sides})
	}
	s.changed()
}

func (s *Session) drawShape(shape raster.Shape) {
	if err := s.raster.Check(shape); err != nil {
		return
	}
	s.record()
	if _, err := s.raster.Draw(s.doc, shape, s.style); err != nil {
		log.Printf("draw %s: %v", shape.Tool, err)
		return
	}
	s.logAction("drew %s", shape.Tool)
}

// Draw applies a shape in image coordinates, as if dragged with its tool.
func (s *Session) Draw(shape raster.Shape) error {
	if err := s.raster.Check(shape); err != nil {
		return err
	}
	s.record()
	_, err := s.raster.Draw(s.doc, shape, s.style)
	if err == nil {
		s.logAction("drew %s", shape.Tool)
		s.changed()
	}
	return err
}

// Stroke draws a freehand path in image coordinates as one undo step. Each
// point follows the content when an earlier segment grows the canvas.
func (s *Session) Stroke(points []image.Point) error {
	if len(points) == 0 {
		return raster.ErrDegenerate
	}
	s.record()
	var off image.Point
	last := points[0]
	if len(points) == 1 {
		s.raster.Dot(s.doc, last, s.style)
	}
	for _, p := range points[1:] {
		p = p.Add(off)
		shift := s.raster.Segment(s.doc, last, p, s.style)
		off = off.Add(shift)
		last = p.Add(shift)
	}
	s.logAction("drew with pen")
	s.changed()
	return nil
}

func (s *Session) pick(p image.Point) {
	if !p.In(s.doc.Bounds()) {
		return
	}
	c := s.doc.Image().RGBAAt(p.X, p.Y)
	c.A = 255
	s.style.Color = c
	s.logAction("picked color")
}

// PreviewOverlay renders the shape being dragged onto a transparent image the
// size of the canvas. It returns nil when there is nothing to preview.
func (s *Session) PreviewOverlay() *image.RGBA {
	if !s.down || !s.tool.IsShape() {
		return nil
	}
	shape := raster.Shape{Tool: s.tool, Start: s.start, End: s.cur, Sides: s.sides}
	overlay, err := s.raster.Preview(s.doc.Bounds(), shape, s.style)
	if err != nil {
		return nil
	}
	return overlay
}

// PlaceText draws text at the position chosen with the text tool.
func (s *Session) PlaceText(text string) error {
	if !s.textPending {
		return ErrNoTextAnchor
	}
	if text == "" {
		s.textPending = false
		return nil
	}
	if _, err := s.raster.MeasureText(text, s.style); err != nil {
		return err
	}
	s.record()
	if _, err := s.raster.Text(s.doc, s.textAt, text, s.style); err != nil {
		return err
	}
	s.textPending = false
	s.logAction("placed text")
	s.changed()
	return nil
}
