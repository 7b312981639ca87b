package raster

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/example/easel/internal/canvas"
)

var red = color.RGBA{R: 255, A: 255}

func TestStarVerticesAlternateRadii(t *testing.T) {
	pts := StarVertices(image.Pt(0, 0), image.Pt(50, 0), 5, DefaultStarOptions())
	if len(pts) != 10 {
		t.Fatalf("expected 10 vertices, got %d", len(pts))
	}
	for i, p := range pts {
		want := 50.0
		if i%2 == 1 {
			want = 20
		}
		if r := math.Hypot(float64(p.X), float64(p.Y)); math.Abs(r-want) > 1 {
			t.Errorf("vertex %d %v has radius %.2f, want %v", i, p, r, want)
		}
	}
	if pts[0] != image.Pt(50, 0) {
		t.Errorf("first vertex %v", pts[0])
	}
}

func TestStarFallbacks(t *testing.T) {
	opts := DefaultStarOptions()
	if pts := StarVertices(image.Pt(0, 0), image.Pt(30, 0), 1, opts); len(pts) != 10 {
		t.Fatalf("expected default of 5 points, got %d vertices", len(pts))
	}
	if pts := StarVertices(image.Pt(0, 0), image.Pt(30, 0), 2, opts); pts != nil {
		t.Fatalf("two points should be degenerate, got %v", pts)
	}
	if pts := StarVertices(image.Pt(3, 3), image.Pt(3, 3), 5, opts); pts != nil {
		t.Fatalf("zero radius should draw nothing, got %v", pts)
	}
	opts.InnerRatio = 0
	pts := StarVertices(image.Pt(0, 0), image.Pt(50, 0), 4, opts)
	if r := math.Hypot(float64(pts[1].X), float64(pts[1].Y)); math.Abs(r-20) > 1 {
		t.Fatalf("fallback inner radius %.2f, want 20", r)
	}
}

func TestPolygonSquare(t *testing.T) {
	pts := PolygonVertices(image.Pt(0, 0), image.Pt(10, 0), 4)
	want := []image.Point{{10, 0}, {0, 10}, {-10, 0}, {0, -10}}
	for i := range want {
		if pts[i] != want[i] {
			t.Fatalf("vertex %d = %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestTriangleVertices(t *testing.T) {
	pts := TriangleVertices(image.Pt(10, 0), image.Pt(2, 8))
	want := []image.Point{{10, 0}, {2, 8}, {10, 8}}
	for i := range want {
		if pts[i] != want[i] {
			t.Fatalf("vertex %d = %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestGeometryDegenerate(t *testing.T) {
	p := image.Pt(4, 4)
	tests := []Shape{
		{Tool: ToolLine, Start: p, End: p},
		{Tool: ToolDotted, Start: p, End: p},
		{Tool: ToolRectangle, Start: p, End: image.Pt(9, 4)},
		{Tool: ToolEllipse, Start: p, End: image.Pt(4, 9)},
		{Tool: ToolTriangle, Start: p, End: p},
		{Tool: ToolPolygon, Start: p, End: image.Pt(9, 9), Sides: 2},
		{Tool: ToolStar, Start: p, End: p, Sides: 5},
		{Tool: ToolText, Start: p, End: p},
	}
	for _, s := range tests {
		if _, err := Geometry(s, DefaultStarOptions()); !errors.Is(err, ErrDegenerate) {
			t.Errorf("%v: expected ErrDegenerate, got %v", s.Tool, err)
		}
	}
}

func TestDrawPointGrowsCanvas(t *testing.T) {
	doc, _ := canvas.New(10, 10)
	before := canvas.Clone(doc.Image())
	r := New(DefaultStarOptions())
	shift, err := r.Draw(doc, Shape{Tool: ToolPoint, End: image.Pt(-5, -5)}, Style{Width: 1, Color: red})
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	b := doc.Bounds()
	if b.Dx() < 15 || b.Dy() < 15 {
		t.Fatalf("expected at least 15x15, got %v", b)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if got := doc.Image().RGBAAt(x+shift.X, y+shift.Y); got != before.RGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d) changed: %+v", x, y, got)
			}
		}
	}
	dot := image.Pt(-5, -5).Add(shift)
	if got := doc.Image().RGBAAt(dot.X, dot.Y); got.G == 255 {
		t.Fatalf("dot not painted at %v: %+v", dot, got)
	}
	if !doc.Dirty() {
		t.Fatal("drawing should mark the document dirty")
	}
}

func TestDrawInsideKeepsBuffer(t *testing.T) {
	doc, _ := canvas.New(20, 20)
	buf := doc.Image()
	r := New(DefaultStarOptions())
	shift, err := r.Draw(doc, Shape{Tool: ToolLine, Start: image.Pt(1, 1), End: image.Pt(19, 10)}, Style{Width: 7, Color: red})
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if doc.Image() != buf || shift != (image.Point{}) {
		t.Fatalf("wide brush inside the canvas grew it to %v", doc.Bounds())
	}
	if got := doc.Image().RGBAAt(1, 1); got.G > 50 {
		t.Fatalf("expected the endpoint painted, got %+v", got)
	}
}

func TestDrawLinePaintsAlongPath(t *testing.T) {
	doc, _ := canvas.New(20, 20)
	r := New(DefaultStarOptions())
	if _, err := r.Draw(doc, Shape{Tool: ToolLine, Start: image.Pt(4, 10), End: image.Pt(15, 10)}, Style{Width: 3, Color: red}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if !doc.Bounds().Eq(image.Rect(0, 0, 20, 20)) {
		t.Fatalf("inside line should not grow, got %v", doc.Bounds())
	}
	if got := doc.Image().RGBAAt(10, 10); got.G > 50 {
		t.Fatalf("expected red on the line, got %+v", got)
	}
	if got := doc.Image().RGBAAt(10, 2); got.G != 255 {
		t.Fatalf("expected background away from line, got %+v", got)
	}
}

func TestDottedLineHasGaps(t *testing.T) {
	doc, _ := canvas.New(70, 10)
	r := New(DefaultStarOptions())
	if _, err := r.Draw(doc, Shape{Tool: ToolDotted, Start: image.Pt(0, 5), End: image.Pt(60, 5)}, Style{Width: 1, Color: red}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if got := doc.Image().RGBAAt(5, 5); got.G > 50 {
		t.Fatalf("expected dash at x=5, got %+v", got)
	}
	if got := doc.Image().RGBAAt(15, 5); got.G != 255 {
		t.Fatalf("expected gap at x=15, got %+v", got)
	}
}

func TestDrawDegenerateLeavesSurface(t *testing.T) {
	doc, _ := canvas.New(10, 10)
	r := New(DefaultStarOptions())
	_, err := r.Draw(doc, Shape{Tool: ToolRectangle, Start: image.Pt(1, 1), End: image.Pt(1, 8)}, Style{Width: 2, Color: red})
	if !errors.Is(err, ErrDegenerate) {
		t.Fatalf("expected ErrDegenerate, got %v", err)
	}
	if doc.Dirty() {
		t.Fatal("degenerate draw marked the document dirty")
	}
}

func TestPreviewDoesNotGrow(t *testing.T) {
	r := New(DefaultStarOptions())
	bounds := image.Rect(0, 0, 10, 10)
	overlay, err := r.Preview(bounds, Shape{Tool: ToolEllipse, Start: image.Pt(-5, -5), End: image.Pt(8, 8)}, Style{Width: 2, Color: red})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !overlay.Bounds().Eq(bounds) {
		t.Fatalf("overlay bounds %v", overlay.Bounds())
	}
	painted := false
	for i := 3; i < len(overlay.Pix); i += 4 {
		if overlay.Pix[i] != 0 {
			painted = true
			break
		}
	}
	if !painted {
		t.Fatal("expected ellipse arc inside the overlay")
	}
}

func TestTextGrowsCanvas(t *testing.T) {
	doc, _ := canvas.New(10, 10)
	r := New(DefaultStarOptions())
	if _, err := r.Text(doc, image.Pt(0, 0), "Hello", Style{Width: 2, Color: red}); err != nil {
		t.Fatalf("Text: %v", err)
	}
	if b := doc.Bounds(); b.Dx() <= 10 || b.Dy() <= 20 {
		t.Fatalf("expected canvas to grow to fit text, got %v", b)
	}
}

func TestParseTool(t *testing.T) {
	for _, tool := range Tools() {
		got, err := ParseTool(tool.String())
		if err != nil || got != tool {
			t.Errorf("ParseTool(%q) = %v, %v", tool.String(), got, err)
		}
	}
	if got, _ := ParseTool("Circle"); got != ToolEllipse {
		t.Errorf("alias circle = %v", got)
	}
	if _, err := ParseTool("spray"); err == nil {
		t.Error("expected error for unknown tool")
	}
}
