package raster

import (
	"errors"
	"image"
	"math"
)

// ErrDegenerate reports geometry that would draw nothing. Callers skip the
// history entry when they see it.
var ErrDegenerate = errors.New("degenerate geometry")

// StarOptions holds the fallback constants used when building stars.
type StarOptions struct {
	// DefaultPoints replaces point counts below 2.
	DefaultPoints int
	// InnerRatio divides the outer radius to give the inner radius.
	InnerRatio float64
	// FallbackRatio multiplies the outer radius when InnerRatio yields no
	// usable inner radius.
	FallbackRatio float64
}

// DefaultStarOptions returns the stock star constants.
func DefaultStarOptions() StarOptions {
	return StarOptions{DefaultPoints: 5, InnerRatio: 2.5, FallbackRatio: 0.4}
}

// Shape is a tool gesture expressed in image coordinates.
type Shape struct {
	Tool       Tool
	Start, End image.Point
	Sides      int
}

// Outline is the resolved geometry for a shape.
type Outline struct {
	Points []image.Point
	Closed bool
	Dashed bool
	// Ellipse marks Points as the two corners of the bounding box of an
	// inscribed ellipse.
	Ellipse bool
}

// Bounds returns the smallest rectangle containing every vertex.
func (o Outline) Bounds() image.Rectangle {
	if len(o.Points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: o.Points[0], Max: o.Points[0]}
	for _, p := range o.Points[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r
}

// Translate returns a copy of o moved by d.
func (o Outline) Translate(d image.Point) Outline {
	pts := make([]image.Point, len(o.Points))
	for i, p := range o.Points {
		pts[i] = p.Add(d)
	}
	o.Points = pts
	return o
}

// Geometry resolves s into an outline.
func Geometry(s Shape, star StarOptions) (Outline, error) {
	switch s.Tool {
	case ToolPoint:
		return Outline{Points: []image.Point{s.End}}, nil
	case ToolPen:
		return Outline{Points: []image.Point{s.Start, s.End}}, nil
	case ToolLine, ToolDotted:
		if s.Start == s.End {
			return Outline{}, ErrDegenerate
		}
		return Outline{Points: []image.Point{s.Start, s.End}, Dashed: s.Tool == ToolDotted}, nil
	case ToolRectangle:
		r := image.Rectangle{Min: s.Start, Max: s.End}.Canon()
		if r.Dx() == 0 || r.Dy() == 0 {
			return Outline{}, ErrDegenerate
		}
		return Outline{Points: RectVertices(r), Closed: true}, nil
	case ToolEllipse:
		r := image.Rectangle{Min: s.Start, Max: s.End}.Canon()
		if r.Dx() == 0 || r.Dy() == 0 {
			return Outline{}, ErrDegenerate
		}
		return Outline{Points: []image.Point{r.Min, r.Max}, Ellipse: true}, nil
	case ToolTriangle:
		if s.Start == s.End {
			return Outline{}, ErrDegenerate
		}
		return Outline{Points: TriangleVertices(s.Start, s.End), Closed: true}, nil
	case ToolPolygon:
		pts := PolygonVertices(s.Start, s.End, s.Sides)
		if pts == nil {
			return Outline{}, ErrDegenerate
		}
		return Outline{Points: pts, Closed: true}, nil
	case ToolStar:
		pts := StarVertices(s.Start, s.End, s.Sides, star)
		if pts == nil {
			return Outline{}, ErrDegenerate
		}
		return Outline{Points: pts, Closed: true}, nil
	}
	return Outline{}, ErrDegenerate
}

// RectVertices returns the corners of r clockwise from the top-left.
func RectVertices(r image.Rectangle) []image.Point {
	return []image.Point{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}
}

// TriangleVertices places the apex at start and a horizontal base at end.Y
// spanning both x coordinates.
func TriangleVertices(start, end image.Point) []image.Point {
	return []image.Point{
		start,
		{X: min(start.X, end.X), Y: end.Y},
		{X: max(start.X, end.X), Y: end.Y},
	}
}

// PolygonVertices returns a regular polygon centred on c with its first
// vertex at v. It returns nil when sides < 3 or v == c.
func PolygonVertices(c, v image.Point, sides int) []image.Point {
	if sides < 3 || c == v {
		return nil
	}
	dx, dy := float64(v.X-c.X), float64(v.Y-c.Y)
	r := math.Hypot(dx, dy)
	a0 := math.Atan2(dy, dx)
	step := 2 * math.Pi / float64(sides)
	pts := make([]image.Point, sides)
	for i := range pts {
		a := a0 + float64(i)*step
		pts[i] = image.Pt(
			c.X+int(math.Round(r*math.Cos(a))),
			c.Y+int(math.Round(r*math.Sin(a))),
		)
	}
	return pts
}

// StarVertices returns the 2n alternating outer and inner vertices of a star
// centred on c with its first point at v.
func StarVertices(c, v image.Point, n int, opts StarOptions) []image.Point {
	if n < 2 {
		n = opts.DefaultPoints
	}
	if n < 3 {
		return nil
	}
	dx, dy := float64(v.X-c.X), float64(v.Y-c.Y)
	outer := math.Hypot(dx, dy)
	if outer <= 0.5 {
		return nil
	}
	inner := 0.0
	if opts.InnerRatio > 0 {
		inner = outer / opts.InnerRatio
	}
	if inner <= 0 {
		inner = math.Max(1, outer*opts.FallbackRatio)
	}
	a0 := math.Atan2(dy, dx)
	step := math.Pi / float64(n)
	pts := make([]image.Point, 2*n)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := a0 + float64(i)*step
		pts[i] = image.Pt(
			c.X+int(math.Round(r*math.Cos(a))),
			c.Y+int(math.Round(r*math.Sin(a))),
		)
	}
	return pts
}
