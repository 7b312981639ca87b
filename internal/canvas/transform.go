package canvas

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// snap removes floating point noise so quarter turns produce exact sizes.
func snap(v float64) float64 {
	for _, t := range []float64{-1, 0, 1} {
		if math.Abs(v-t) < 1e-12 {
			return t
		}
	}
	return v
}

// RotatedSize returns the bounding box of a w×h image rotated by degrees.
func RotatedSize(w, h int, degrees float64) (int, int) {
	rad := degrees * math.Pi / 180
	sin, cos := math.Abs(snap(math.Sin(rad))), math.Abs(snap(math.Cos(rad)))
	nw := int(math.Floor(float64(w)*cos + float64(h)*sin))
	nh := int(math.Floor(float64(h)*cos + float64(w)*sin))
	return nw, nh
}

// Rotate returns src rotated clockwise by degrees about its centre. The result
// is sized to the rotated bounding box, areas not covered by src are
// transparent.
func Rotate(src *image.RGBA, degrees float64) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	nw, nh := RotatedSize(w, h, degrees)
	dst := image.NewRGBA(image.Rect(0, 0, max(nw, 1), max(nh, 1)))
	if w == 0 || h == 0 {
		return dst
	}
	rad := degrees * math.Pi / 180
	sin, cos := snap(math.Sin(rad)), snap(math.Cos(rad))
	cx, cy := float64(b.Min.X)+float64(w)/2, float64(b.Min.Y)+float64(h)/2
	ncx, ncy := float64(nw)/2, float64(nh)/2
	m := f64.Aff3{
		cos, -sin, ncx - cos*cx + sin*cy,
		sin, cos, ncy - sin*cx - cos*cy,
	}
	xdraw.CatmullRom.Transform(dst, m, src, b, xdraw.Src, nil)
	return dst
}

// MirrorHorizontal returns a copy of src flipped left to right.
func MirrorHorizontal(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		so := src.PixOffset(b.Min.X, b.Min.Y+y)
		do := dst.PixOffset(0, y)
		for x := 0; x < w; x++ {
			s := so + x*4
			d := do + (w-1-x)*4
			copy(dst.Pix[d:d+4], src.Pix[s:s+4])
		}
	}
	return dst
}

// Resize scales src to w×h with Catmull-Rom resampling.
func Resize(src *image.RGBA, w, h int) (*image.RGBA, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// ParseSize converts user supplied width and height strings into positive
// integers.
func ParseSize(ws, hs string) (int, int, error) {
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: width %q", ErrInvalidSize, ws)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: height %q", ErrInvalidSize, hs)
	}
	if w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return w, h, nil
}
