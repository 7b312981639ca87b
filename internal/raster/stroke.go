package raster

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// DashPattern is the on/off run length in pixels used for dotted lines.
var DashPattern = []float64{10, 10}

// Style is the immutable brush applied to a single rasterize call.
type Style struct {
	Width int
	Color color.Color
}

func (s Style) width() float64 {
	if s.Width < 1 {
		return 1
	}
	return float64(s.Width)
}

func (s Style) color() color.Color {
	if s.Color == nil {
		return color.Black
	}
	return s.Color
}

// centre converts an integer pixel coordinate into the pixel centre.
func centre(p image.Point) fixed.Point26_6 {
	return rasterx.ToFixedP(float64(p.X)+0.5, float64(p.Y)+0.5)
}

// strokeOutline draws o onto dst with the given style.
func strokeOutline(dst *image.RGBA, o Outline, st Style) {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	dasher := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	capFn := rasterx.RoundCap
	var dashes []float64
	if o.Dashed {
		capFn = rasterx.ButtCap
		dashes = DashPattern
	}
	dasher.SetStroke(fixed.Int26_6(st.width()*64), 4<<6, capFn, capFn, rasterx.RoundGap, rasterx.Round, dashes, 0)
	dasher.SetColor(st.color())

	switch {
	case o.Ellipse:
		r := image.Rectangle{Min: o.Points[0], Max: o.Points[1]}
		cx := float64(r.Min.X+r.Max.X)/2 + 0.5
		cy := float64(r.Min.Y+r.Max.Y)/2 + 0.5
		rasterx.AddEllipse(cx, cy, float64(r.Dx())/2, float64(r.Dy())/2, 0, dasher)
	default:
		dasher.Start(centre(o.Points[0]))
		for _, p := range o.Points[1:] {
			dasher.Line(centre(p))
		}
		dasher.Stop(o.Closed)
	}
	dasher.Draw()
}

// fillDot paints a filled circle of the brush diameter centred on p.
func fillDot(dst *image.RGBA, p image.Point, st Style) {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	filler := rasterx.NewFiller(b.Dx(), b.Dy(), scanner)
	filler.SetColor(st.color())
	rasterx.AddCircle(float64(p.X)+0.5, float64(p.Y)+0.5, max(st.width()/2, 0.5), filler)
	filler.Draw()
}
