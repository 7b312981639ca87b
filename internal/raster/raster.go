// Package raster turns tool gestures into pixels. Geometry is computed in
// image coordinates, the target surface grows to fit it, and the result is
// stroked with rasterx.
package raster

import (
	"image"
)

// Surface is the drawable document as seen by the rasterizer.
type Surface interface {
	Image() *image.RGBA
	// EnsurePoints grows the surface so every point fits and returns the
	// points in the surface's new coordinates.
	EnsurePoints(pts ...image.Point) []image.Point
	MarkDirty()
}

// Rasterizer draws shapes, freehand segments and text.
type Rasterizer struct {
	Star  StarOptions
	fonts *fontCache
}

// New returns a Rasterizer using the supplied star constants.
func New(star StarOptions) *Rasterizer {
	return &Rasterizer{Star: star, fonts: newFontCache()}
}

// Check reports whether s would draw anything, without touching a surface.
func (r *Rasterizer) Check(s Shape) error {
	_, err := Geometry(s, r.Star)
	return err
}

// Draw grows the surface to fit s and strokes it. The returned offset is how
// far existing content moved inside the surface.
func (r *Rasterizer) Draw(surf Surface, s Shape, st Style) (image.Point, error) {
	o, err := Geometry(s, r.Star)
	if err != nil {
		return image.Point{}, err
	}
	shift := r.ensure(surf, o)
	o = o.Translate(shift)
	render(surf.Image(), o, st)
	surf.MarkDirty()
	return shift, nil
}

// Segment draws one freehand step from a to b. A zero length step paints a
// dot. The returned offset translates later points into the grown surface.
func (r *Rasterizer) Segment(surf Surface, a, b image.Point, st Style) image.Point {
	o := Outline{Points: []image.Point{a, b}}
	shift := r.ensure(surf, o)
	render(surf.Image(), o.Translate(shift), st)
	surf.MarkDirty()
	return shift
}

// Dot paints a single brush dot at p.
func (r *Rasterizer) Dot(surf Surface, p image.Point, st Style) image.Point {
	return r.Segment(surf, p, p, st)
}

// Preview renders s onto a transparent overlay sized like bounds. No growth
// happens, so parts of the shape outside bounds are clipped.
func (r *Rasterizer) Preview(bounds image.Rectangle, s Shape, st Style) (*image.RGBA, error) {
	o, err := Geometry(s, r.Star)
	if err != nil {
		return nil, err
	}
	overlay := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	render(overlay, o.Translate(bounds.Min.Mul(-1)), st)
	return overlay, nil
}

// ensure grows surf to the outline's vertices. The brush may still reach past
// an edge and be clipped there.
func (r *Rasterizer) ensure(surf Surface, o Outline) image.Point {
	b := o.Bounds()
	moved := surf.EnsurePoints(b.Min, b.Max)
	return moved[0].Sub(b.Min)
}

func render(dst *image.RGBA, o Outline, st Style) {
	if len(o.Points) == 0 {
		return
	}
	if !o.Ellipse && allSame(o.Points) {
		fillDot(dst, o.Points[0], st)
		return
	}
	strokeOutline(dst, o, st)
}

func allSame(pts []image.Point) bool {
	for _, p := range pts[1:] {
		if p != pts[0] {
			return false
		}
	}
	return true
}
