package canvas

import (
	"image"
	"image/color"
	"image/draw"
)

// Grow expands img so that every point in pts lies inside it. The existing
// pixels keep their colour, new areas are filled with bg. The returned shift is
// the old origin expressed in the new buffer's coordinates negated, so callers
// translate points with p.Sub(shift). When no growth is needed img is returned
// unchanged with a zero shift.
func Grow(img *image.RGBA, bg color.Color, pts ...image.Point) (*image.RGBA, image.Point, []image.Point) {
	if len(pts) == 0 {
		return img, image.Point{}, nil
	}
	b := img.Bounds()
	left, top := min(0, pts[0].X), min(0, pts[0].Y)
	right, bottom := max(b.Dx(), pts[0].X+1), max(b.Dy(), pts[0].Y+1)
	for _, p := range pts[1:] {
		left = min(left, p.X)
		top = min(top, p.Y)
		right = max(right, p.X+1)
		bottom = max(bottom, p.Y+1)
	}
	shift := image.Pt(left, top)
	out := make([]image.Point, len(pts))
	for i, p := range pts {
		out[i] = p.Sub(shift)
	}
	if left == 0 && top == 0 && right == b.Dx() && bottom == b.Dy() {
		return img, image.Point{}, out
	}
	grown := Blank(right-left, bottom-top, bg)
	draw.Draw(grown, b.Sub(b.Min).Add(image.Pt(-left, -top)), img, b.Min, draw.Src)
	return grown, shift, out
}

// GrowRect is Grow for the two corners of r. r is half open so its maximum
// corner is exclusive.
func GrowRect(img *image.RGBA, bg color.Color, r image.Rectangle) (*image.RGBA, image.Point) {
	r = r.Canon()
	if r.Empty() {
		return img, image.Point{}
	}
	grown, shift, _ := Grow(img, bg, r.Min, r.Max.Sub(image.Pt(1, 1)))
	return grown, shift
}
