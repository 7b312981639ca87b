//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	backend      *x11Clipboard

	readTimeout    = 2 * time.Second
	errReadTimeout = errors.New("clipboard owner did not answer")
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		clip := &x11Clipboard{}
		if err := clip.initialize(); err != nil {
			initErr = err
			return
		}
		backend = clip
	})
	return initErr
}

// WriteImage encodes the provided image as PNG and takes ownership of the
// CLIPBOARD selection, serving the data until another client claims it.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	data, err := encode(img)
	if err != nil {
		return err
	}
	return backend.own(data)
}

// ReadImage retrieves PNG image data from the clipboard and decodes it.
func ReadImage() (*image.RGBA, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := backend.readSelection(backend.atoms.png)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

type x11Clipboard struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atomSet
	mu     sync.RWMutex
	data   []byte
}

type atomSet struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

func (c *x11Clipboard) initialize() error {
	conn, err := xgb.NewConn()
	if err != nil {
		return err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return err
	}
	const eventMask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, []uint32{eventMask}).Check(); err != nil {
		conn.Close()
		return err
	}
	atoms, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return err
	}
	c.conn = conn
	c.window = window
	c.atoms = atoms
	go c.serve()
	return nil
}

func internAtoms(conn *xgb.Conn) (atomSet, error) {
	var set atomSet
	for _, a := range []struct {
		name string
		dst  *xproto.Atom
	}{
		{"CLIPBOARD", &set.clipboard},
		{"TARGETS", &set.targets},
		{"image/png", &set.png},
		{"EASEL_CLIPBOARD", &set.property},
	} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(a.name)), a.name).Reply()
		if err != nil {
			return atomSet{}, fmt.Errorf("intern %s: %w", a.name, err)
		}
		*a.dst = reply.Atom
	}
	return set, nil
}

func (c *x11Clipboard) own(data []byte) error {
	c.mu.Lock()
	c.data = append([]byte(nil), data...)
	c.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(c.conn, c.window, c.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

// serve answers selection requests from other clients.
func (c *x11Clipboard) serve() {
	for {
		ev, err := c.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			c.reply(e)
		case xproto.SelectionClearEvent:
			c.mu.Lock()
			c.data = nil
			c.mu.Unlock()
		}
	}
}

func (c *x11Clipboard) reply(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}

	c.mu.RLock()
	data := c.data
	c.mu.RUnlock()

	switch {
	case e.Target == c.atoms.targets:
		targets := []xproto.Atom{c.atoms.targets}
		if len(data) > 0 {
			targets = append(targets, c.atoms.png)
		}
		buf := make([]byte, len(targets)*4)
		for i, atom := range targets {
			xgb.Put32(buf[i*4:], uint32(atom))
		}
		xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, property, xproto.AtomAtom, 32, uint32(len(targets)), buf)
	case e.Target == c.atoms.png && len(data) > 0:
		xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, property, c.atoms.png, 8, uint32(len(data)), data)
	default:
		property = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(c.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

func (c *x11Clipboard) readSelection(target xproto.Atom) ([]byte, error) {
	c.mu.RLock()
	own := c.data
	c.mu.RUnlock()
	if len(own) > 0 {
		return append([]byte(nil), own...), nil
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.ConvertSelectionChecked(conn, window, c.atoms.clipboard, target, c.atoms.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := awaitSelection(conn, window)
		done <- result{data, err}
	}()
	select {
	case r := <-done:
		return r.data, r.err
	case <-time.After(readTimeout):
		return nil, errReadTimeout
	}
}

// awaitSelection waits for the owner's SelectionNotify and fetches the
// property it wrote. Closing conn ends the wait.
func awaitSelection(conn *xgb.Conn, window xproto.Window) ([]byte, error) {
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		if ev == nil {
			return nil, errors.New("x11 connection closed")
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, ErrNoImage
		}
		reply, perr := xproto.GetProperty(conn, true, window, e.Property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return append([]byte(nil), reply.Value...), nil
	}
}
