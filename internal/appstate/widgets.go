package appstate

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/easel/internal/raster"
	"github.com/example/easel/internal/theme"
)

const (
	statusHeight = 24
	buttonHeight = 22
	swatchSize   = 16
	swatchGap    = 2
	widthRowH    = 14
)

var toolbarWidth = 64

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// Invalidate drops the cached renderings, for example after a theme change.
func (cb *CacheButton) Invalidate() { cb.cache = [3]*image.RGBA{} }

func buttonFill(th *theme.Theme, state ButtonState) color.RGBA {
	switch state {
	case StateHover:
		return th.ButtonBackgroundHover
	case StatePressed:
		return th.ButtonBackgroundActive
	}
	return th.ButtonBackground
}

func drawLabel(dst *image.RGBA, x, y int, c color.Color, s string) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

func labelWidth(s string) int {
	return (&font.Drawer{Face: basicfont.Face7x13}).MeasureString(s).Ceil()
}

// ToolButton selects a drawing tool.
type ToolButton struct {
	label    string
	tool     raster.Tool
	theme    *theme.Theme
	rect     image.Rectangle
	onSelect func(raster.Tool)
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, tb.rect, &image.Uniform{buttonFill(tb.theme, state)}, image.Point{}, draw.Src)
	drawLabel(dst, tb.rect.Min.X+4, tb.rect.Min.Y+15, tb.theme.ButtonText, tb.label)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) { tb.rect = r }

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect(tb.tool)
	}
}

// Shortcut is a clickable hint in the status bar.
type Shortcut struct {
	label  string
	action string
	rect   image.Rectangle
}

func (s *Shortcut) Draw(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	draw.Draw(dst, s.rect, &image.Uniform{buttonFill(th, state)}, image.Point{}, draw.Src)
	strokeRect(dst, s.rect, th.ButtonBorder)
	drawLabel(dst, s.rect.Min.X+2, s.rect.Min.Y+14, th.ButtonText, s.label)
}

// toolLabels pairs each tool with its toolbar label and key.
var toolLabels = []struct {
	label string
	tool  raster.Tool
	key   rune
}{
	{"B:Pen", raster.ToolPen, 'b'},
	{"P:Point", raster.ToolPoint, 'p'},
	{"L:Line", raster.ToolLine, 'l'},
	{"D:Dotted", raster.ToolDotted, 'd'},
	{"R:Rect", raster.ToolRectangle, 'r'},
	{"E:Ellipse", raster.ToolEllipse, 'e'},
	{"A:Triangle", raster.ToolTriangle, 'a'},
	{"G:Polygon", raster.ToolPolygon, 'g'},
	{"S:Star", raster.ToolStar, 's'},
	{"T:Text", raster.ToolText, 't'},
	{"I:Picker", raster.ToolColorPicker, 'i'},
	{"M:Select", raster.ToolSelection, 'm'},
}

// palette is the swatch grid under the tool buttons.
var palette = []color.RGBA{
	{0, 0, 0, 255},
	{255, 255, 255, 255},
	{255, 0, 0, 255},
	{0, 255, 0, 255},
	{0, 0, 255, 255},
	{255, 255, 0, 255},
	{0, 255, 255, 255},
	{255, 0, 255, 255},
	{128, 0, 0, 255},
	{0, 128, 0, 255},
	{0, 0, 128, 255},
	{128, 128, 0, 255},
	{0, 128, 128, 255},
	{128, 0, 128, 255},
	{192, 192, 192, 255},
	{128, 128, 128, 255},
}

var widths = []int{1, 2, 3, 4, 6, 8, 12, 16}

// toolbarLayout records where each toolbar element was drawn so mouse events
// can be hit-tested against the last frame.
type toolbarLayout struct {
	tools   []image.Rectangle
	swatch  []image.Rectangle
	widths  []image.Rectangle
	content image.Rectangle
}

func layoutToolbar(tools, height int) toolbarLayout {
	var l toolbarLayout
	y := 0
	for i := 0; i < tools; i++ {
		l.tools = append(l.tools, image.Rect(0, y, toolbarWidth, y+buttonHeight))
		y += buttonHeight
	}
	y += 4
	x := 4
	for range palette {
		l.swatch = append(l.swatch, image.Rect(x, y, x+swatchSize, y+swatchSize))
		x += swatchSize + swatchGap
		if x+swatchSize > toolbarWidth {
			x = 4
			y += swatchSize + swatchGap
		}
	}
	if x != 4 {
		y += swatchSize + swatchGap
	}
	y += 4
	for range widths {
		l.widths = append(l.widths, image.Rect(0, y, toolbarWidth, y+widthRowH))
		y += widthRowH
	}
	l.content = image.Rect(0, 0, toolbarWidth, max(y, height))
	return l
}

func hit(rects []image.Rectangle, p image.Point) int {
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}

// hover tracks which toolbar or status element is under the pointer.
type hover struct {
	tool, swatch, width, shortcut int
}

func noHover() hover { return hover{-1, -1, -1, -1} }

func drawToolbar(dst *image.RGBA, th *theme.Theme, buttons []*CacheButton, l toolbarLayout, tool raster.Tool, col color.Color, width int, hv hover) {
	draw.Draw(dst, l.content.Intersect(dst.Bounds()), &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	for i, cb := range buttons {
		cb.SetRect(l.tools[i])
		state := StateDefault
		if cb.Button.(*ToolButton).tool == tool {
			state = StatePressed
		} else if i == hv.tool {
			state = StateHover
		}
		cb.Draw(dst, state)
	}
	current := color.RGBAModel.Convert(col).(color.RGBA)
	for i, r := range l.swatch {
		draw.Draw(dst, r, &image.Uniform{palette[i]}, image.Point{}, draw.Src)
		if i == hv.swatch {
			draw.Draw(dst, r, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
		}
		if palette[i] == current {
			strokeRect(dst, r, th.SelectionOutline)
		}
	}
	for i, r := range l.widths {
		state := StateDefault
		if widths[i] == width {
			state = StatePressed
		} else if i == hv.width {
			state = StateHover
		}
		draw.Draw(dst, r, &image.Uniform{buttonFill(th, state)}, image.Point{}, draw.Src)
		drawLabel(dst, 4, r.Min.Y+11, th.ButtonText, strconv.Itoa(widths[i]))
		cy := r.Min.Y + widthRowH/2
		h := min(widths[i], widthRowH-2)
		draw.Draw(dst, image.Rect(24, cy-h/2, toolbarWidth-4, cy-h/2+max(h, 1)), &image.Uniform{col}, image.Point{}, draw.Src)
	}
}

func strokeRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	u := &image.Uniform{c}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

// drawDashedRect outlines r with alternating dashes of c1 and c2.
func drawDashedRect(dst *image.RGBA, r image.Rectangle, dash int, c1, c2 color.Color) {
	if r.Empty() {
		return
	}
	set := func(x, y, i int) {
		if !image.Pt(x, y).In(dst.Bounds()) {
			return
		}
		if (i/dash)%2 == 0 {
			dst.Set(x, y, c1)
		} else {
			dst.Set(x, y, c2)
		}
	}
	// Each corner belongs to the edge that reaches it first.
	i := 0
	for x := r.Min.X; x < r.Max.X; x++ {
		set(x, r.Min.Y, i)
		i++
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		set(r.Max.X-1, y, i)
		i++
	}
	if r.Dy() > 1 {
		for x := r.Max.X - 2; x >= r.Min.X; x-- {
			set(x, r.Max.Y-1, i)
			i++
		}
	}
	if r.Dx() > 1 {
		for y := r.Max.Y - 2; y > r.Min.Y; y-- {
			set(r.Min.X, y, i)
			i++
		}
	}
}

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}
