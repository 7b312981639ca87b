package editor

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/example/easel/internal/canvas"
	"github.com/example/easel/internal/selection"
)

// Command names an editor action that takes no pointer input.
type Command string

const (
	CmdCopy           Command = "copy"
	CmdPaste          Command = "paste"
	CmdSave           Command = "save"
	CmdSaveAs         Command = "save-as"
	CmdOpen           Command = "open"
	CmdNew            Command = "new"
	CmdResize         Command = "resize"
	CmdUndo           Command = "undo"
	CmdRedo           Command = "redo"
	CmdRotateLeft     Command = "rotate-left"
	CmdRotateRight    Command = "rotate-right"
	CmdRotate         Command = "rotate"
	CmdMirror         Command = "mirror"
	CmdZoomIn         Command = "zoom-in"
	CmdZoomOut        Command = "zoom-out"
	CmdZoomFit        Command = "zoom-fit"
	CmdClearSelection Command = "clear-selection"
	CmdClearCanvas    Command = "clear"
)

// ErrUnknownCommand is returned by Do for names it does not recognise.
var ErrUnknownCommand = errors.New("unknown command")

// Do runs a command by name. Commands that need values take them as args.
func (s *Session) Do(cmd Command, args ...string) error {
	need := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("%s: expected %d argument(s), got %d", cmd, n, len(args))
		}
		return nil
	}
	switch cmd {
	case CmdCopy:
		return s.Copy()
	case CmdPaste:
		return s.Paste()
	case CmdSave:
		return s.Save()
	case CmdSaveAs:
		if err := need(1); err != nil {
			return err
		}
		_, err := s.SaveAs(args[0])
		return err
	case CmdOpen:
		if err := need(1); err != nil {
			return err
		}
		return s.Open(args[0])
	case CmdNew:
		if err := need(2); err != nil {
			return err
		}
		w, h, err := canvas.ParseSize(args[0], args[1])
		if err != nil {
			return err
		}
		return s.NewDocument(w, h)
	case CmdResize:
		if err := need(2); err != nil {
			return err
		}
		return s.ResizeFromStrings(args[0], args[1])
	case CmdUndo:
		s.Undo()
	case CmdRedo:
		s.Redo()
	case CmdRotateLeft:
		return s.RotateLeft()
	case CmdRotateRight:
		return s.RotateRight()
	case CmdRotate:
		if err := need(1); err != nil {
			return err
		}
		deg, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("rotate: %w", err)
		}
		return s.Rotate(deg)
	case CmdMirror:
		return s.Mirror()
	case CmdZoomIn:
		s.ZoomIn()
	case CmdZoomOut:
		s.ZoomOut()
	case CmdZoomFit:
		s.ZoomToFit()
	case CmdClearSelection:
		s.ClearSelection()
	case CmdClearCanvas:
		s.ClearCanvas()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	return nil
}

// Copy puts the selected pixels in the clipboard slot and mirrors them to the
// desktop clipboard when one is configured.
func (s *Session) Copy() error {
	if err := s.sel.Copy(s.doc); err != nil {
		return err
	}
	clip := s.sel.Clipboard()
	if s.mirror != nil {
		if err := s.mirror.WriteImage(clip); err != nil {
			log.Printf("copy to system clipboard: %v", err)
		}
	}
	b := clip.Bounds()
	s.notify.Copy(fmt.Sprintf("%dx%d selection", b.Dx(), b.Dy()), clip)
	s.logAction("copied selection")
	return nil
}

// Paste floats the clipboard slot at the centre of the visible area. The next
// pointer down places it. An empty slot falls back to the desktop clipboard.
func (s *Session) Paste() error {
	if s.sel.Clipboard() == nil && s.mirror != nil {
		if img, err := s.mirror.ReadImage(); err == nil {
			s.sel.SetClipboard(img)
		} else {
			log.Printf("paste from system clipboard: %v", err)
		}
	}
	if err := s.sel.Paste(s.doc, s.Mapper().Center()); err != nil {
		log.Printf("paste: %v", err)
		return err
	}
	s.cancelGesture()
	s.changed()
	return nil
}

// ClearSelection drops the selection. A rotated selection is committed first;
// a pending paste is abandoned.
func (s *Session) ClearSelection() {
	if s.sel.State() == selection.Idle {
		return
	}
	s.sel.Commit(s.doc)
	s.sel.Clear()
	s.logAction("cleared selection")
	s.changed()
}

// ClearCanvas fills the canvas with the background colour.
func (s *Session) ClearCanvas() {
	s.record()
	b := s.doc.Bounds()
	s.doc.SetImage(canvas.Blank(b.Dx(), b.Dy(), s.doc.Background()))
	s.sel.Clear()
	s.logAction("cleared canvas")
	s.changed()
}

// Undo restores the previous buffer. It returns false when there is nothing to
// undo.
func (s *Session) Undo() bool {
	img, ok := s.hist.Undo(s.doc.Image())
	if !ok {
		return false
	}
	s.doc.SetImage(img)
	s.sel.Clear()
	s.cancelGesture()
	s.logAction("undo")
	s.changed()
	return true
}

// Redo reapplies the last undone change.
func (s *Session) Redo() bool {
	img, ok := s.hist.Redo(s.doc.Image())
	if !ok {
		return false
	}
	s.doc.SetImage(img)
	s.sel.Clear()
	s.cancelGesture()
	s.logAction("redo")
	s.changed()
	return true
}

// Rotate turns the selection, or the whole canvas when nothing is selected,
// clockwise by degrees.
func (s *Session) Rotate(degrees float64) error {
	if s.sel.Active() {
		if err := s.sel.Rotate(s.doc, degrees); err != nil {
			return err
		}
		s.logAction("rotated selection %g degrees", degrees)
		s.changed()
		return nil
	}
	s.record()
	s.doc.SetImage(canvas.Rotate(s.doc.Image(), degrees))
	s.logAction("rotated %g degrees", degrees)
	s.changed()
	return nil
}

// RotateLeft turns a quarter turn anticlockwise.
func (s *Session) RotateLeft() error { return s.Rotate(-90) }

// RotateRight turns a quarter turn clockwise.
func (s *Session) RotateRight() error { return s.Rotate(90) }

// Mirror flips the selection, or the canvas, left to right.
func (s *Session) Mirror() error {
	if s.sel.Active() {
		if err := s.sel.Mirror(s.doc); err != nil {
			return err
		}
		s.logAction("mirrored selection")
		s.changed()
		return nil
	}
	s.record()
	s.doc.SetImage(canvas.MirrorHorizontal(s.doc.Image()))
	s.logAction("mirrored")
	s.changed()
	return nil
}

// Resize scales the canvas to w by h. Invalid sizes leave everything as it
// was.
func (s *Session) Resize(w, h int) error {
	img, err := canvas.Resize(s.doc.Image(), w, h)
	if err != nil {
		return err
	}
	s.record()
	s.doc.SetImage(img)
	s.sel.Clear()
	s.logAction("resized to %dx%d", w, h)
	s.changed()
	return nil
}

// ResizeFromStrings validates user-entered dimensions and resizes.
func (s *Session) ResizeFromStrings(ws, hs string) error {
	w, h, err := canvas.ParseSize(ws, hs)
	if err != nil {
		log.Printf("resize: %v", err)
		return err
	}
	return s.Resize(w, h)
}

// NewDocument replaces the document with a blank canvas and forgets history.
func (s *Session) NewDocument(w, h int) error {
	doc, err := canvas.New(w, h, canvas.WithBackground(s.bg))
	if err != nil {
		return err
	}
	s.replaceDocument(doc)
	s.logAction("new canvas %dx%d", w, h)
	return nil
}

// Open loads path as the new document.
func (s *Session) Open(path string) error {
	img, err := canvas.Load(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	s.replaceDocument(canvas.FromImage(img, canvas.WithPath(path), canvas.WithBackground(s.bg)))
	s.logAction("opened a file")
	return nil
}

func (s *Session) replaceDocument(doc *canvas.Document) {
	s.doc = doc
	s.hist.Clear()
	s.sel.Clear()
	s.cancelGesture()
	s.changed()
}

// Save writes the document to its path.
func (s *Session) Save() error {
	path := s.doc.Path()
	if path == "" {
		return ErrNoPath
	}
	if err := s.write(path); err != nil {
		return err
	}
	s.notify.Save(path)
	s.logAction("saved a file")
	return nil
}

// SaveAs writes the document to path, adding ".png" when the extension is not
// a supported format, and adopts it as the document path. It returns the path
// actually written.
func (s *Session) SaveAs(path string) (string, error) {
	if _, ok := canvas.LookupFormat(canvas.Extension(path)); !ok {
		path += ".png"
	}
	if err := s.write(path); err != nil {
		return "", err
	}
	s.doc.SetPath(path)
	s.notify.Save(path)
	s.logAction("saved a file")
	return path, nil
}

func (s *Session) write(path string) error {
	s.sel.Commit(s.doc)
	if err := canvas.Save(s.doc.Image(), path); err != nil {
		log.Printf("save %s: %v", path, err)
		return err
	}
	s.doc.MarkClean()
	s.changed()
	return nil
}
