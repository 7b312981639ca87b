// Package appstate is the desktop window around an editor session.
package appstate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/easel/internal/canvas"
	"github.com/example/easel/internal/editor"
	"github.com/example/easel/internal/selection"
	"github.com/example/easel/internal/theme"
)

// AppState holds the window configuration.
type AppState struct {
	Session  *editor.Session
	Theme    *theme.Theme
	AutoSave time.Duration
	Title    string
	SaveDir  string

	updateCh  chan struct{}
	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithSession sets the session the window edits.
func WithSession(s *editor.Session) Option { return func(a *AppState) { a.Session = s } }

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithAutoSave sets the auto save interval. Zero disables it.
func WithAutoSave(d time.Duration) Option { return func(a *AppState) { a.AutoSave = d } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithSaveDir sets the directory untitled documents are offered in.
func WithSaveDir(dir string) Option { return func(a *AppState) { a.SaveDir = dir } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Theme:    theme.Default(),
		AutoSave: editor.DefaultAutoSaveInterval,
		Title:    "Easel",
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// NotifyChanged requests a repaint. It never blocks and is safe to call from
// any goroutine.
func (a *AppState) NotifyChanged() {
	if a.updateCh == nil {
		return
	}
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// postEvent carries work from background goroutines onto the event loop.
type postEvent struct{ fn func() }

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() error {
	if a.Session == nil {
		return errors.New("appstate: no session")
	}
	driver.Main(a.Main)
	return nil
}

// shell is the event loop state of one open window.
type shell struct {
	app  *AppState
	sess *editor.Session
	w    screen.Window
	th   *theme.Theme

	width, height int
	fitted        bool

	buttons   []*CacheButton
	layout    toolbarLayout
	keys      keymap
	actions   map[string]func()
	hover     hover
	shortcuts []Shortcut

	pressed    bool
	prompt     *prompt
	confirming bool
	quit       bool

	message      string
	messageUntil time.Time
}

func (a *AppState) Main(s screen.Screen) {
	sess := a.Session
	for _, tl := range toolLabels {
		if w := labelWidth(tl.label) + 8; w > toolbarWidth {
			toolbarWidth = w
		}
	}

	b := sess.Buffer().Bounds()
	width := min(max(b.Dx()+toolbarWidth, 640), 1600)
	height := min(max(b.Dy()+statusHeight, 480), 1000)
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.Title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()
	defer a.notifyClose()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sess.RunAutoSave(ctx, a.AutoSave, func(fn func()) { w.Send(postEvent{fn}) })

	sh := &shell{app: a, sess: sess, w: w, th: a.Theme, width: width, height: height, hover: noHover()}
	sh.configure()
	sess.SetViewport(canvasArea(width, height).Dx(), canvasArea(width, height).Dy())

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	for !sh.quit {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				sh.closeWindow()
				stopPaint()
				return
			}
		case size.Event:
			sh.width, sh.height = e.WidthPx, e.HeightPx
			area := canvasArea(sh.width, sh.height)
			sess.SetViewport(area.Dx(), area.Dy())
			if !sh.fitted {
				sess.ZoomToFit()
				sh.fitted = true
			}
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := sh.snapshot()
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case postEvent:
			e.fn()
			w.Send(paint.Event{})
		case mouse.Event:
			sh.handleMouse(e)
		case key.Event:
			if e.Direction == key.DirPress {
				sh.handleKey(e)
				w.Send(paint.Event{})
			}
		}
	}
	stopPaint()
}

func (sh *shell) register(name string, keys KeyboardShortcuts, fn func()) {
	sh.actions[name] = fn
	if keys != nil {
		sh.keys.bind(name, keys)
	}
}

func (sh *shell) run(action string) {
	if fn, ok := sh.actions[action]; ok {
		fn()
	}
	sh.w.Send(paint.Event{})
}

func (sh *shell) say(format string, args ...any) {
	sh.message = fmt.Sprintf(format, args...)
	log.Print(sh.message)
	sh.messageUntil = time.Now().Add(2 * time.Second)
}

func (sh *shell) fail(op string, err error) {
	sh.say("%s: %v", op, err)
}

// try wraps fn as an action that reports its error on the status line.
func (sh *shell) try(op string, fn func() error) func() {
	return func() {
		if err := fn(); err != nil {
			sh.fail(op, err)
		}
	}
}

func (sh *shell) ask(label, initial string, submit func(string)) {
	sh.prompt = &prompt{label: label, input: initial, onSubmit: submit}
}

func (sh *shell) configure() {
	sh.actions = map[string]func(){}
	sh.keys = keymap{}
	sess := sh.sess

	sh.buttons = sh.buttons[:0]
	for _, tl := range toolLabels {
		sh.buttons = append(sh.buttons, &CacheButton{Button: &ToolButton{
			label:    tl.label,
			tool:     tl.tool,
			theme:    sh.th,
			onSelect: sess.SetTool,
		}})
	}
	sh.layout = layoutToolbar(len(sh.buttons), sh.height)

	sh.register("copy", shortcutList{ctrl('c')}, func() {
		if err := sess.Copy(); err != nil {
			sh.fail("copy", err)
			return
		}
		sh.say("copied selection")
	})
	sh.register("paste", shortcutList{ctrl('v')}, func() {
		if err := sess.Paste(); err != nil {
			sh.fail("paste", err)
		}
	})
	saveAs := func() {
		sh.ask("Save as: ", sh.suggestPath(), func(path string) {
			written, err := sess.SaveAs(path)
			if err != nil {
				sh.fail("save", err)
				return
			}
			sh.say("saved %s", written)
		})
	}
	sh.register("save", shortcutList{ctrl('s')}, func() {
		err := sess.Save()
		switch {
		case errors.Is(err, editor.ErrNoPath):
			saveAs()
		case err != nil:
			sh.fail("save", err)
		default:
			sh.say("saved %s", sess.Document().Path())
		}
	})
	sh.register("saveas", shortcutList{ctrlShift('s')}, saveAs)
	sh.register("open", shortcutList{ctrl('o')}, func() {
		sh.ask("Open: ", "", func(path string) {
			if err := sess.Open(path); err != nil {
				sh.fail("open", err)
				return
			}
			sess.ZoomToFit()
		})
	})
	sh.register("new", shortcutList{ctrl('n')}, func() {
		sh.ask("New canvas (WxH): ", fmt.Sprintf("%dx%d", canvas.DefaultWidth, canvas.DefaultHeight), func(in string) {
			ws, hs := splitDims(in)
			if err := sess.Do(editor.CmdNew, ws, hs); err != nil {
				sh.fail("new", err)
			}
		})
	})
	sh.register("resize", shortcutList{ctrl('e')}, func() {
		b := sess.Buffer().Bounds()
		sh.ask("Resize to (WxH): ", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()), func(in string) {
			if err := sess.ResizeFromStrings(splitDims(in)); err != nil {
				sh.fail("resize", err)
			}
		})
	})
	sh.register("undo", shortcutList{ctrl('z')}, func() { sess.Undo() })
	sh.register("redo", shortcutList{ctrl('y'), ctrlShift('z')}, func() { sess.Redo() })
	sh.register("rotleft", shortcutList{ctrl('l')}, sh.try("rotate", sess.RotateLeft))
	sh.register("rotright", shortcutList{ctrl('r')}, sh.try("rotate", sess.RotateRight))
	sh.register("mirror", shortcutList{ctrl('m')}, sh.try("mirror", sess.Mirror))
	sh.register("deselect", shortcutList{{Code: key.CodeEscape}}, sess.ClearSelection)
	sh.register("clear", shortcutList{{Code: key.CodeDeleteForward, Modifiers: key.ModControl}}, sess.ClearCanvas)
	sh.register("zoomin", shortcutList{{Rune: '+'}, {Rune: '='}, {Rune: '+', Modifiers: key.ModShift}}, sess.ZoomIn)
	sh.register("zoomout", shortcutList{{Rune: '-'}}, sess.ZoomOut)
	sh.register("fit", shortcutList{{Rune: '0'}}, sess.ZoomToFit)
	sh.register("fewer", shortcutList{{Rune: '['}}, func() {
		if err := sess.SetSides(sess.Sides() - 1); err != nil {
			sh.fail("sides", err)
		}
	})
	sh.register("more", shortcutList{{Rune: ']'}}, sh.try("sides", func() error { return sess.SetSides(sess.Sides() + 1) }))
	sh.register("quit", shortcutList{ctrl('q')}, sh.requestQuit)
}

var statusShortcuts = []Shortcut{
	{label: "^S:save", action: "save"},
	{label: "^Z:undo", action: "undo"},
	{label: "^Y:redo", action: "redo"},
	{label: "^C:copy", action: "copy"},
	{label: "^V:paste", action: "paste"},
	{label: "^L:rot left", action: "rotleft"},
	{label: "^R:rot right", action: "rotright"},
	{label: "^M:mirror", action: "mirror"},
	{label: "^E:resize", action: "resize"},
	{label: "^Q:quit", action: "quit"},
}

func (sh *shell) status() string {
	s := sh.sess
	return statusLine(s.Document().Name(), s.Dirty(), s.Buffer().Bounds(), s.Tool(), s.Style().Width, s.Sides(), s.Zoom())
}

func (sh *shell) snapshot() paintState {
	s := sh.sess
	status := sh.status()
	sh.shortcuts = layoutShortcuts(statusShortcuts, status, sh.height)
	sh.layout = layoutToolbar(len(sh.buttons), sh.height)

	st := paintState{
		width:      sh.width,
		height:     sh.height,
		theme:      sh.th,
		buttons:    sh.buttons,
		layout:     sh.layout,
		hover:      sh.hover,
		shortcuts:  sh.shortcuts,
		mapper:     s.Mapper(),
		canvas:     canvas.Clone(s.Buffer()),
		overlay:    s.PreviewOverlay(),
		tool:       s.Tool(),
		color:      s.Style().Color,
		brushWidth: s.Style().Width,
		status:     status,
		message:    sh.message,

		messageUntil: sh.messageUntil,
	}
	sel := s.Selection()
	if sel.Active() {
		st.selRect = sel.Bounds()
		if sel.Floating() {
			st.floating = canvas.Clone(sel.Image())
		}
	}
	st.marquee, st.marching = sel.Marquee()
	switch {
	case sh.prompt != nil:
		st.prompt = sh.prompt.text()
	case sh.confirming:
		st.prompt = fmt.Sprintf("Save changes to %s? (y/n, Esc to cancel)", s.Document().Name())
	}
	return st
}

func (sh *shell) handleMouse(e mouse.Event) {
	p := image.Pt(int(e.X), int(e.Y))
	press := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress
	if press && sh.message != "" && time.Now().Before(sh.messageUntil) {
		sh.messageUntil = time.Time{}
		sh.w.Send(paint.Event{})
		return
	}

	switch e.Button {
	case mouse.ButtonWheelUp:
		sh.sess.ZoomIn()
		sh.w.Send(paint.Event{})
		return
	case mouse.ButtonWheelDown:
		sh.sess.ZoomOut()
		sh.w.Send(paint.Event{})
		return
	}

	area := canvasArea(sh.width, sh.height)
	if !sh.pressed && !p.In(area) {
		sh.handleChrome(p, e, press)
		return
	}

	local := p.Sub(area.Min)
	switch {
	case press:
		sh.pressed = true
		sh.sess.PointerDown(local.X, local.Y, modifiers(e.Modifiers))
		if _, ok := sh.sess.TextAnchor(); ok && sh.prompt == nil {
			sh.ask("Text: ", "", func(text string) {
				if err := sh.sess.PlaceText(text); err != nil {
					sh.fail("text", err)
				}
			})
		}
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		if sh.pressed {
			sh.pressed = false
			sh.sess.PointerUp(local.X, local.Y)
		}
	case e.Direction == mouse.DirNone && sh.pressed:
		sh.sess.PointerMove(local.X, local.Y)
	default:
		return
	}
	sh.w.Send(paint.Event{})
}

// handleChrome deals with the toolbar and status bar.
func (sh *shell) handleChrome(p image.Point, e mouse.Event, press bool) {
	prev := sh.hover
	sh.hover = noHover()
	if p.Y >= sh.height-statusHeight {
		for i, sc := range sh.shortcuts {
			if p.In(sc.rect) {
				sh.hover.shortcut = i
				if press {
					sh.run(sc.action)
				}
				break
			}
		}
	} else if p.X < toolbarWidth {
		sh.hover.tool = hit(sh.layout.tools, p)
		sh.hover.swatch = hit(sh.layout.swatch, p)
		sh.hover.width = hit(sh.layout.widths, p)
		if press {
			switch {
			case sh.hover.tool >= 0:
				sh.buttons[sh.hover.tool].Activate()
			case sh.hover.swatch >= 0:
				sh.sess.SetBrushColor(palette[sh.hover.swatch])
			case sh.hover.width >= 0:
				sh.sess.SetBrushWidth(widths[sh.hover.width])
			}
		}
	}
	if press || prev != sh.hover {
		sh.w.Send(paint.Event{})
	}
}

func (sh *shell) handleKey(e key.Event) {
	if sh.prompt != nil {
		p := sh.prompt
		if p.handle(e) && sh.prompt == p {
			sh.prompt = nil
		}
		return
	}
	if sh.confirming {
		if ans, ok := answerFor(e); ok {
			sh.confirming = false
			sh.finishQuit(ans)
		}
		return
	}
	if name, ok := sh.keys.lookup(e); ok {
		sh.run(name)
		return
	}
	if e.Modifiers&shortcutMods == 0 {
		if t, ok := toolForRune(e.Rune); ok {
			sh.sess.SetTool(t)
		}
	}
}

func (sh *shell) requestQuit() {
	if sh.sess.Selection().State() == selection.PastePreview {
		sh.sess.ClearSelection()
	}
	if !sh.sess.Dirty() {
		sh.finishQuit(editor.Cancel)
		return
	}
	sh.confirming = true
}

func (sh *shell) finishQuit(ans editor.Answer) {
	ok, err := sh.sess.Quit(editor.ConfirmFunc(func(string) editor.Answer { return ans }))
	if errors.Is(err, editor.ErrNoPath) {
		sh.ask("Save as: ", sh.suggestPath(), func(path string) {
			if _, err := sh.sess.SaveAs(path); err != nil {
				sh.fail("save", err)
				return
			}
			sh.finishQuit(editor.No)
		})
		return
	}
	if err != nil {
		sh.fail("save", err)
		return
	}
	sh.quit = ok
}

// closeWindow handles the window manager closing the window. Nothing can be
// asked any more, so a document with a path is saved and anything else is
// dropped.
func (sh *shell) closeWindow() {
	ans := editor.No
	if sh.sess.Document().Path() != "" {
		ans = editor.Yes
	}
	if _, err := sh.sess.Quit(editor.ConfirmFunc(func(string) editor.Answer { return ans })); err != nil {
		log.Printf("close: %v", err)
	}
}

// suggestPath is the initial Save As input.
func (sh *shell) suggestPath() string {
	doc := sh.sess.Document()
	if p := doc.Path(); p != "" {
		return p
	}
	if sh.app.SaveDir == "" {
		return doc.SuggestedName()
	}
	return filepath.Join(sh.app.SaveDir, doc.SuggestedName())
}
