package editor

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/easel/internal/actionlog"
	"github.com/example/easel/internal/canvas"
	"github.com/example/easel/internal/raster"
	"github.com/example/easel/internal/selection"
)

func newSession(t *testing.T, w, h int, opts ...Option) *Session {
	t.Helper()
	s, err := New(append([]Option{WithCanvasSize(w, h)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.SetViewport(w, h)
	return s
}

func patterned(t *testing.T, w, h int) *Session {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 5), G: uint8(y * 5), B: 9, A: 255})
		}
	}
	s, err := New(WithDocument(canvas.FromImage(img)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.SetViewport(w, h)
	return s
}

func sameImage(a, b *image.RGBA) bool {
	return a.Bounds() == b.Bounds() && bytes.Equal(a.Pix, b.Pix)
}

func drag(s *Session, from, to image.Point, mods Modifiers) {
	s.PointerDown(from.X, from.Y, mods)
	mid := from.Add(to).Div(2)
	s.PointerMove(mid.X, mid.Y)
	s.PointerMove(to.X, to.Y)
	s.PointerUp(to.X, to.Y)
}

func TestNewSessionIsClean(t *testing.T) {
	s := newSession(t, 30, 20)
	if s.Dirty() {
		t.Fatal("a new blank canvas should not be dirty")
	}
	if s.Buffer().RGBAAt(5, 5) != (color.RGBA{255, 255, 255, 255}) {
		t.Fatal("expected a white canvas")
	}
	if _, err := New(WithCanvasSize(0, 10)); !errors.Is(err, canvas.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestUndoRestoresEachTool(t *testing.T) {
	from, to := image.Pt(10, 12), image.Pt(30, 28)
	for _, tool := range []raster.Tool{
		raster.ToolPen, raster.ToolLine, raster.ToolDotted, raster.ToolRectangle,
		raster.ToolEllipse, raster.ToolTriangle, raster.ToolPolygon, raster.ToolStar,
	} {
		t.Run(tool.String(), func(t *testing.T) {
			s := newSession(t, 40, 40)
			s.SetTool(tool)
			before := canvas.Clone(s.Buffer())
			drag(s, from, to, 0)
			if sameImage(before, s.Buffer()) {
				t.Fatal("gesture did not change the buffer")
			}
			if n := s.History().Len(); n != 1 {
				t.Fatalf("expected one history entry, got %d", n)
			}
			after := canvas.Clone(s.Buffer())
			if !s.Undo() {
				t.Fatal("undo reported nothing to undo")
			}
			if !sameImage(before, s.Buffer()) {
				t.Fatal("undo did not restore the buffer")
			}
			if !s.Redo() || !sameImage(after, s.Buffer()) {
				t.Fatal("redo did not reapply the gesture")
			}
		})
	}
}

func TestPointToolDrawsOnPress(t *testing.T) {
	s := newSession(t, 40, 40)
	s.SetTool(raster.ToolPoint)
	s.PointerDown(20, 20, 0)
	s.PointerUp(20, 20)
	if c := s.Buffer().RGBAAt(20, 20); c.R < 200 || c.G > 60 {
		t.Fatalf("pixel = %+v", c)
	}
	if !s.Dirty() || s.History().Len() != 1 {
		t.Fatal("point should dirty the document and record history")
	}
}

func TestDrawOutsideGrowsAndUndoShrinks(t *testing.T) {
	s := newSession(t, 40, 40)
	err := s.Draw(raster.Shape{Tool: raster.ToolLine, Start: image.Pt(-10, 5), End: image.Pt(5, 5)})
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if b := s.Buffer().Bounds(); b.Dx() <= 40 || b.Dy() != 40 {
		t.Fatalf("expected a wider canvas, got %v", b)
	}
	s.Undo()
	if b := s.Buffer().Bounds(); b != image.Rect(0, 0, 40, 40) {
		t.Fatalf("undo should restore the size, got %v", b)
	}
}

func TestDrawInsideKeepsCanvasSize(t *testing.T) {
	s := newSession(t, 20, 20, WithStyle(9, color.Black))
	if err := s.Draw(raster.Shape{Tool: raster.ToolLine, Start: image.Pt(1, 1), End: image.Pt(10, 10)}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if err := s.Stroke([]image.Point{{0, 0}, {19, 0}, {19, 19}}); err != nil {
		t.Fatalf("Stroke: %v", err)
	}
	if b := s.Buffer().Bounds(); b != image.Rect(0, 0, 20, 20) {
		t.Fatalf("drawing inside the canvas grew it to %v", b)
	}
}

func TestStrokeFollowsGrowth(t *testing.T) {
	s := newSession(t, 40, 40)
	if err := s.Stroke([]image.Point{{30, 10}, {-5, 10}, {30, 30}}); err != nil {
		t.Fatalf("Stroke: %v", err)
	}
	if s.History().Len() != 1 {
		t.Fatalf("a stroke is one undo step, got %d", s.History().Len())
	}
	dx := s.Buffer().Bounds().Dx() - 40
	if dx <= 0 {
		t.Fatal("stroke past the left edge should grow the canvas")
	}
	// Midpoint of the last segment, moved with the content.
	if c := s.Buffer().RGBAAt(12+dx, 20); c.R < 200 || c.G > 60 {
		t.Fatalf("last segment not drawn at shifted position: %v", c)
	}
	if err := s.Stroke(nil); !errors.Is(err, raster.ErrDegenerate) {
		t.Fatalf("empty stroke: %v", err)
	}
}

func TestDegenerateShapeRecordsNothing(t *testing.T) {
	s := newSession(t, 40, 40)
	s.SetTool(raster.ToolRectangle)
	s.PointerDown(10, 10, 0)
	s.PointerUp(10, 10)
	if s.History().Len() != 0 || s.Dirty() {
		t.Fatal("a zero-size rectangle must not touch history or the dirty flag")
	}
	if err := s.Draw(raster.Shape{Tool: raster.ToolEllipse, Start: image.Pt(3, 3), End: image.Pt(3, 9)}); !errors.Is(err, raster.ErrDegenerate) {
		t.Fatalf("expected ErrDegenerate, got %v", err)
	}
}

func TestPreviewOverlayDuringDrag(t *testing.T) {
	s := newSession(t, 40, 40)
	s.SetTool(raster.ToolRectangle)
	before := canvas.Clone(s.Buffer())
	s.PointerDown(5, 5, 0)
	s.PointerMove(20, 20)
	overlay := s.PreviewOverlay()
	if overlay == nil {
		t.Fatal("expected a preview while dragging")
	}
	if !sameImage(before, s.Buffer()) {
		t.Fatal("preview must not touch the buffer")
	}
	s.PointerUp(20, 20)
	if s.PreviewOverlay() != nil {
		t.Fatal("preview should end with the gesture")
	}
}

func TestNewActionClearsRedo(t *testing.T) {
	s := newSession(t, 40, 40)
	s.SetTool(raster.ToolLine)
	drag(s, image.Pt(5, 5), image.Pt(30, 5), 0)
	s.Undo()
	if !s.History().CanRedo() {
		t.Fatal("expected a redo entry")
	}
	drag(s, image.Pt(5, 20), image.Pt(30, 20), 0)
	if s.History().CanRedo() {
		t.Fatal("a new action must clear redo")
	}
}

func selectRect(s *Session, r image.Rectangle) {
	s.SetTool(raster.ToolSelection)
	drag(s, r.Min, r.Max, 0)
}

func TestCopyDragKeepsSource(t *testing.T) {
	s := patterned(t, 40, 40)
	src := s.Buffer().RGBAAt(2, 2)
	selectRect(s, image.Rect(0, 0, 10, 10))
	drag(s, image.Pt(5, 5), image.Pt(25, 25), ModCtrl)
	if s.Buffer().RGBAAt(2, 2) != src {
		t.Fatal("copy drag changed the source")
	}
	if s.Buffer().RGBAAt(22, 22) != src {
		t.Fatal("copy drag did not place the pixels")
	}
	if n := s.History().Len(); n != 1 {
		t.Fatalf("expected one history entry, got %d", n)
	}
}

func TestMoveDragClearsSource(t *testing.T) {
	s := patterned(t, 40, 40)
	src := s.Buffer().RGBAAt(2, 2)
	selectRect(s, image.Rect(0, 0, 10, 10))
	drag(s, image.Pt(5, 5), image.Pt(25, 25), 0)
	if s.Buffer().RGBAAt(2, 2).A != 0 {
		t.Fatal("move drag should clear the source")
	}
	if s.Buffer().RGBAAt(22, 22) != src {
		t.Fatal("move drag did not place the pixels")
	}
	s.Undo()
	if s.Buffer().RGBAAt(2, 2) != src {
		t.Fatal("undo should restore the source")
	}
}

func TestPasteAnchorsAtViewportCentre(t *testing.T) {
	s := patterned(t, 40, 40)
	selectRect(s, image.Rect(0, 0, 10, 10))
	if err := s.Copy(); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if err := s.Paste(); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if s.Selection().State() != selection.PastePreview {
		t.Fatalf("state = %v", s.Selection().State())
	}
	if b := s.Selection().Bounds(); b != image.Rect(15, 15, 25, 25) {
		t.Fatalf("paste bounds = %v", b)
	}
	s.PointerDown(30, 30, 0)
	if b := s.Selection().Bounds(); b != image.Rect(30, 30, 40, 40) {
		t.Fatalf("placed bounds = %v", b)
	}
	if s.Buffer().RGBAAt(30, 30) != s.Buffer().RGBAAt(0, 0) {
		t.Fatal("paste not committed")
	}
	if s.History().Len() != 1 {
		t.Fatalf("expected one history entry, got %d", s.History().Len())
	}
}

type fakeMirror struct {
	written []image.Image
	img     *image.RGBA
	err     error
}

func (m *fakeMirror) WriteImage(img image.Image) error {
	m.written = append(m.written, img)
	return m.err
}

func (m *fakeMirror) ReadImage() (*image.RGBA, error) {
	if m.img == nil {
		return nil, errors.New("clipboard has no image")
	}
	return m.img, nil
}

func TestPasteFallsBackToSystemClipboard(t *testing.T) {
	mirror := &fakeMirror{}
	s := newSession(t, 40, 40, WithClipboardMirror(mirror))
	if err := s.Paste(); !errors.Is(err, selection.ErrEmptyClipboard) {
		t.Fatalf("expected ErrEmptyClipboard, got %v", err)
	}
	mirror.img = image.NewRGBA(image.Rect(0, 0, 4, 6))
	if err := s.Paste(); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if b := s.Selection().Bounds(); b.Size() != image.Pt(4, 6) {
		t.Fatalf("paste bounds = %v", b)
	}
}

func TestCopyMirrorsToSystemClipboard(t *testing.T) {
	mirror := &fakeMirror{err: errors.New("no display")}
	s := patterned(t, 20, 20)
	s.mirror = mirror
	if err := s.Copy(); !errors.Is(err, selection.ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	selectRect(s, image.Rect(2, 2, 6, 6))
	if err := s.Copy(); err != nil {
		t.Fatalf("a failing system clipboard must not fail Copy: %v", err)
	}
	if len(mirror.written) != 1 {
		t.Fatalf("expected one mirrored copy, got %d", len(mirror.written))
	}
}

func TestRotateSelectionThenUndo(t *testing.T) {
	s := patterned(t, 20, 20)
	before := canvas.Clone(s.Buffer())
	selectRect(s, image.Rect(2, 4, 10, 8))
	if err := s.RotateRight(); err != nil {
		t.Fatalf("RotateRight: %v", err)
	}
	if b := s.Selection().Bounds(); b != image.Rect(4, 2, 8, 10) {
		t.Fatalf("rotated bounds = %v", b)
	}
	s.Undo()
	if !sameImage(before, s.Buffer()) || s.Selection().Active() {
		t.Fatal("undo should restore the buffer and drop the selection")
	}
}

// hasOpaque reports whether every opaque pixel of img appears in buf at at.
func hasOpaque(buf, img *image.RGBA, at image.Point) bool {
	b := img.Bounds()
	seen := 0
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := img.RGBAAt(x, y)
			if c.A != 255 {
				continue
			}
			if buf.RGBAAt(at.X+x, at.Y+y) != c {
				return false
			}
			seen++
		}
	}
	return seen > 0
}

// rotateStrip selects a 20x4 strip and turns it upright, returning the
// rotated pixels.
func rotateStrip(t *testing.T, s *Session) *image.RGBA {
	t.Helper()
	selectRect(s, image.Rect(5, 15, 25, 19))
	if err := s.RotateRight(); err != nil {
		t.Fatalf("RotateRight: %v", err)
	}
	if b := s.Selection().Bounds(); b != image.Rect(13, 7, 17, 27) {
		t.Fatalf("rotated bounds = %v", b)
	}
	return canvas.Clone(s.Selection().Image())
}

func TestPasteKeepsRotatedSelection(t *testing.T) {
	s := patterned(t, 40, 40)
	selectRect(s, image.Rect(0, 0, 6, 3))
	if err := s.Copy(); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	rot := rotateStrip(t, s)
	if err := s.Paste(); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	s.PointerDown(30, 33, 0)
	if !hasOpaque(s.Buffer(), rot, image.Pt(13, 7)) {
		t.Fatal("rotated selection lost when pasting")
	}
	if s.Buffer().RGBAAt(30, 33) != s.Buffer().RGBAAt(0, 0) {
		t.Fatal("paste not placed")
	}
}

func TestSaveWritesRotatedSelection(t *testing.T) {
	s := patterned(t, 40, 40)
	rot := rotateStrip(t, s)
	path, err := s.SaveAs(filepath.Join(t.TempDir(), "rot.png"))
	if err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if s.Dirty() || s.Selection().Floating() {
		t.Fatal("save should commit the selection and leave the document clean")
	}
	img, err := canvas.Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !hasOpaque(img, rot, image.Pt(13, 7)) {
		t.Fatal("saved file is missing the rotated selection")
	}
	if s.History().Len() != 1 {
		t.Fatalf("committing on save should not add history, got %d", s.History().Len())
	}
}

func TestSwitchToolCommitsRotatedSelection(t *testing.T) {
	s := patterned(t, 40, 40)
	rot := rotateStrip(t, s)
	s.SetTool(raster.ToolPen)
	if s.Selection().Floating() {
		t.Fatal("rotated selection still floating after a tool change")
	}
	if !hasOpaque(s.Buffer(), rot, image.Pt(13, 7)) {
		t.Fatal("rotated selection not committed")
	}
}

func TestDragRotatedSelection(t *testing.T) {
	s := patterned(t, 40, 40)
	before := canvas.Clone(s.Buffer())
	rot := rotateStrip(t, s)
	under := s.Buffer().RGBAAt(15, 8)
	drag(s, image.Pt(15, 10), image.Pt(35, 12), 0)
	if got := s.Buffer().RGBAAt(15, 8); got != under {
		t.Fatalf("drag erased canvas under the rotated selection: %+v -> %+v", under, got)
	}
	if !hasOpaque(s.Buffer(), rot, image.Pt(33, 9)) {
		t.Fatal("rotated selection not dropped at the pointer")
	}
	if n := s.History().Len(); n != 1 {
		t.Fatalf("rotate and move should be one undo step, got %d", n)
	}
	s.Undo()
	if !sameImage(before, s.Buffer()) {
		t.Fatal("undo should restore the canvas from before the rotation")
	}
}

func TestRotateCanvas(t *testing.T) {
	s := newSession(t, 40, 20)
	if err := s.Do(CmdRotateLeft); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if b := s.Buffer().Bounds(); b.Dx() != 20 || b.Dy() != 40 {
		t.Fatalf("bounds = %v", b)
	}
	if err := s.Do(CmdMirror); err != nil {
		t.Fatalf("mirror: %v", err)
	}
	if s.History().Len() != 2 {
		t.Fatalf("expected two history entries, got %d", s.History().Len())
	}
}

func TestResizeFromStrings(t *testing.T) {
	s := newSession(t, 40, 40)
	for _, tc := range [][2]string{{"0", "10"}, {"abc", "10"}, {"10", "-3"}, {"", ""}} {
		if err := s.ResizeFromStrings(tc[0], tc[1]); !errors.Is(err, canvas.ErrInvalidSize) {
			t.Fatalf("%q: expected ErrInvalidSize, got %v", tc, err)
		}
	}
	if s.History().Len() != 0 || s.Buffer().Bounds() != image.Rect(0, 0, 40, 40) {
		t.Fatal("invalid resize must leave the canvas and history alone")
	}
	if err := s.Do(CmdResize, " 20 ", "10"); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if b := s.Buffer().Bounds(); b != image.Rect(0, 0, 20, 10) {
		t.Fatalf("bounds = %v", b)
	}
	if !s.History().CanUndo() {
		t.Fatal("resize should be undoable")
	}
}

func TestSaveAndSaveAs(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t, 10, 10)
	s.ClearCanvas()
	if err := s.Save(); !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath, got %v", err)
	}
	path, err := s.SaveAs(filepath.Join(dir, "pic.xyz"))
	if err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if filepath.Base(path) != "pic.xyz.png" || s.Document().Path() != path {
		t.Fatalf("unexpected path %q", path)
	}
	if s.Dirty() {
		t.Fatal("save should clear the dirty flag")
	}
	if _, err := canvas.Load(path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestOpenAndNewResetHistory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.png")
	if err := canvas.Save(canvas.Blank(12, 7, color.Black), path); err != nil {
		t.Fatal(err)
	}
	s := newSession(t, 40, 40)
	s.ClearCanvas()
	if err := s.Do(CmdOpen, path); err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.History().CanUndo() || s.Dirty() || s.Buffer().Bounds().Dx() != 12 {
		t.Fatal("open should start a clean document with no history")
	}
	if s.Document().Name() != "in.png" {
		t.Fatalf("name = %q", s.Document().Name())
	}
	if err := s.Do(CmdNew, "5", "6"); err != nil {
		t.Fatalf("new: %v", err)
	}
	if s.Document().Path() != "" || s.Buffer().Bounds() != image.Rect(0, 0, 5, 6) {
		t.Fatal("new should start an untitled canvas")
	}
	if err := s.Open(filepath.Join(dir, "missing.png")); err == nil {
		t.Fatal("expected an error opening a missing file")
	}
}

func TestColorPicker(t *testing.T) {
	s := patterned(t, 20, 20)
	s.SetTool(raster.ToolColorPicker)
	s.PointerDown(3, 4, 0)
	s.PointerUp(3, 4)
	want := color.RGBA{R: 15, G: 20, B: 9, A: 255}
	if s.Style().Color != want {
		t.Fatalf("picked %+v", s.Style().Color)
	}
	if s.History().Len() != 0 || s.Dirty() {
		t.Fatal("picking must not modify the document")
	}
}

func TestPlaceText(t *testing.T) {
	s := newSession(t, 80, 40)
	if err := s.PlaceText("hi"); !errors.Is(err, ErrNoTextAnchor) {
		t.Fatalf("expected ErrNoTextAnchor, got %v", err)
	}
	s.SetTool(raster.ToolText)
	s.PointerDown(5, 5, 0)
	s.PointerUp(5, 5)
	if _, ok := s.TextAnchor(); !ok {
		t.Fatal("expected a pending text anchor")
	}
	if err := s.PlaceText("hi"); err != nil {
		t.Fatalf("PlaceText: %v", err)
	}
	if s.History().Len() != 1 || !s.Dirty() {
		t.Fatal("text should record history")
	}
}

func TestSetSides(t *testing.T) {
	s := newSession(t, 10, 10)
	if err := s.SetSides(2); !errors.Is(err, ErrInvalidSides) {
		t.Fatalf("expected ErrInvalidSides, got %v", err)
	}
	if err := s.SetSides(7); err != nil || s.Sides() != 7 {
		t.Fatalf("SetSides(7) = %v, sides %d", err, s.Sides())
	}
	s.SetBrushWidth(0)
	if s.Style().Width != 1 {
		t.Fatalf("width = %d", s.Style().Width)
	}
}

func TestDoUnknownCommand(t *testing.T) {
	s := newSession(t, 10, 10)
	if err := s.Do("explode"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if err := s.Do(CmdResize, "5"); err == nil {
		t.Fatal("expected an argument error")
	}
}

func TestZoom(t *testing.T) {
	s := newSession(t, 10, 10)
	s.Do(CmdZoomIn)
	if s.Zoom() != 1.25 {
		t.Fatalf("zoom = %v", s.Zoom())
	}
	s.SetZoom(0)
	if s.Zoom() <= 0 {
		t.Fatal("zoom must stay positive")
	}
}

func TestAutoSave(t *testing.T) {
	s := newSession(t, 10, 10)
	s.ClearCanvas()
	if s.AutoSave() {
		t.Fatal("auto save without a path should skip")
	}
	path := filepath.Join(t.TempDir(), "auto.png")
	if _, err := s.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	if s.AutoSave() {
		t.Fatal("auto save of a clean document should skip")
	}
	s.ClearCanvas()
	if !s.AutoSave() || s.Dirty() {
		t.Fatal("expected a dirty document with a path to be saved")
	}
}

func TestRunAutoSavePostsToOwner(t *testing.T) {
	s := newSession(t, 10, 10)
	path := filepath.Join(t.TempDir(), "loop.png")
	if _, err := s.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	s.ClearCanvas()

	ctx, cancel := context.WithCancel(context.Background())
	posted := make(chan func())
	done := make(chan struct{})
	go func() {
		s.RunAutoSave(ctx, 5*time.Millisecond, func(fn func()) {
			select {
			case posted <- fn:
			case <-ctx.Done():
			}
		})
		close(done)
	}()
	select {
	case fn := <-posted:
		fn()
	case <-time.After(5 * time.Second):
		t.Fatal("auto save never fired")
	}
	cancel()
	<-done
	if s.Dirty() {
		t.Fatal("posted auto save did not run")
	}
}

func TestQuit(t *testing.T) {
	answer := Cancel
	asked := 0
	c := ConfirmFunc(func(string) Answer { asked++; return answer })

	s := newSession(t, 10, 10)
	if ok, err := s.Quit(c); !ok || err != nil || asked != 0 {
		t.Fatalf("clean quit = %v, %v (asked %d)", ok, err, asked)
	}
	s.ClearCanvas()
	if ok, _ := s.Quit(c); ok {
		t.Fatal("cancel should keep the editor open")
	}
	answer = Yes
	if ok, err := s.Quit(c); ok || !errors.Is(err, ErrNoPath) {
		t.Fatalf("save on quit without a path = %v, %v", ok, err)
	}
	answer = No
	if ok, _ := s.Quit(c); !ok {
		t.Fatal("discarding should quit")
	}
}

func TestActionsAreLogged(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "actions.txt")
	l := actionlog.New(logPath, actionlog.WithInterval(time.Hour))
	s := newSession(t, 40, 40, WithActionLog(l))
	s.SetTool(raster.ToolLine)
	drag(s, image.Pt(5, 5), image.Pt(30, 5), 0)
	s.RotateLeft()
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[Untitled] selected tool line", "[Untitled] drew line", "[Untitled] rotated -90 degrees"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("log missing %q:\n%s", want, data)
		}
	}
}
