package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/easel/internal/raster"
	"github.com/example/easel/internal/theme"
	"github.com/example/easel/internal/viewport"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var (
	messageOnce sync.Once
	messageFace font.Face
)

func bannerFace() font.Face {
	messageOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			log.Printf("parse font: %v", err)
			return
		}
		messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 28, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			log.Printf("font face: %v", err)
		}
	})
	return messageFace
}

// paintState is a copy of everything a frame needs, taken on the event loop
// so the paint goroutine never reads the live document.
type paintState struct {
	width, height int
	theme         *theme.Theme
	buttons       []*CacheButton
	layout        toolbarLayout
	hover         hover
	shortcuts     []Shortcut

	mapper   viewport.Mapper
	canvas   *image.RGBA
	overlay  *image.RGBA
	floating *image.RGBA
	selRect  image.Rectangle
	marquee  image.Rectangle
	marching bool

	tool       raster.Tool
	color      color.Color
	brushWidth int
	status     string
	prompt     string

	message      string
	messageUntil time.Time
}

// canvasArea is the window region the document is shown in.
func canvasArea(width, height int) image.Rectangle {
	return image.Rect(toolbarWidth, 0, width, height-statusHeight)
}

// toDisplay maps an image rectangle to window coordinates.
func toDisplay(m viewport.Mapper, area image.Rectangle, r image.Rectangle) image.Rectangle {
	return image.Rectangle{Min: m.ToDisplay(r.Min), Max: m.ToDisplay(r.Max)}.Add(area.Min)
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()
	th := st.theme

	area := canvasArea(st.width, st.height)
	draw.Draw(dst, area, &image.Uniform{th.Background}, image.Point{}, draw.Src)
	imgRect := st.mapper.ImageRect().Add(area.Min)
	drawCheckerboard(dst, imgRect.Intersect(area), 8, th.CheckerLight, th.CheckerDark)
	if ctx.Err() != nil {
		return
	}

	if st.canvas != nil {
		xdraw.NearestNeighbor.Scale(dst, imgRect, st.canvas, st.canvas.Bounds(), draw.Over, nil)
	}
	if st.overlay != nil {
		xdraw.NearestNeighbor.Scale(dst, imgRect, st.overlay, st.overlay.Bounds(), draw.Over, nil)
	}
	if st.floating != nil {
		r := toDisplay(st.mapper, area, st.selRect)
		xdraw.NearestNeighbor.Scale(dst, r, st.floating, st.floating.Bounds(), draw.Over, nil)
	}
	if ctx.Err() != nil {
		return
	}

	if !st.selRect.Empty() {
		drawDashedRect(dst, toDisplay(st.mapper, area, st.selRect), 4, th.SelectionOutline, color.White)
	}
	if st.marching {
		drawDashedRect(dst, toDisplay(st.mapper, area, st.marquee), 4, th.MarqueeOutline, color.White)
	}
	if ctx.Err() != nil {
		return
	}

	drawToolbar(dst, th, st.buttons, st.layout, st.tool, st.color, st.brushWidth, st.hover)
	drawStatus(dst, st)
	if ctx.Err() != nil {
		return
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		drawBanner(dst, st.width, st.height, st.message)
	}
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func drawStatus(dst *image.RGBA, st paintState) {
	th := st.theme
	bar := image.Rect(0, st.height-statusHeight, st.width, st.height)
	draw.Draw(dst, bar, &image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)
	y := bar.Min.Y + 16

	swatch := image.Rect(4, bar.Min.Y+4, 4+swatchSize, bar.Min.Y+4+swatchSize)
	draw.Draw(dst, swatch, &image.Uniform{st.color}, image.Point{}, draw.Src)
	strokeRect(dst, swatch, th.ButtonBorder)

	x := swatch.Max.X + 6
	if st.prompt != "" {
		drawLabel(dst, x, y, th.Foreground, st.prompt+"|")
		return
	}
	drawLabel(dst, x, y, th.Foreground, st.status)
	for i := range st.shortcuts {
		state := StateDefault
		if i == st.hover.shortcut {
			state = StateHover
		}
		st.shortcuts[i].Draw(dst, th, state)
	}
}

// layoutShortcuts places the status bar hints after the status text.
func layoutShortcuts(list []Shortcut, status string, height int) []Shortcut {
	out := make([]Shortcut, len(list))
	y := height - statusHeight + 16
	x := 4 + swatchSize + 6 + labelWidth(status) + 12
	for i, sc := range list {
		w := labelWidth(sc.label)
		sc.rect = image.Rect(x-2, y-14, x+w+2, y+4)
		out[i] = sc
		x = sc.rect.Max.X + 8
	}
	return out
}

func drawBanner(dst *image.RGBA, width, height int, msg string) {
	face := bannerFace()
	if face == nil {
		return
	}
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: face}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	px := (width - wmsg) / 2
	py := (height-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	draw.Draw(dst, rect, &image.Uniform{color.RGBA{255, 255, 255, 230}}, image.Point{}, draw.Over)
	strokeRect(dst, rect, color.Black)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}

func statusLine(name string, dirty bool, b image.Rectangle, tool raster.Tool, width, sides int, zoom float64) string {
	mark := ""
	if dirty {
		mark = "*"
	}
	s := fmt.Sprintf("%s%s  %dx%d  %s  w%d  %.0f%%", name, mark, b.Dx(), b.Dy(), tool, width, zoom*100)
	if tool == raster.ToolPolygon || tool == raster.ToolStar {
		s += fmt.Sprintf("  n%d", sides)
	}
	return s
}
