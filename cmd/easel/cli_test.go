package main

import (
	"errors"
	"flag"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/easel/internal/canvas"
	"github.com/example/easel/internal/config"
	"github.com/example/easel/internal/raster"
	"github.com/example/easel/internal/theme"
)

func testRoot(t *testing.T) *root {
	t.Helper()
	dir := t.TempDir()
	return &root{
		fs:          flag.NewFlagSet("easel", flag.ContinueOnError),
		program:     "easel",
		config:      config.New(),
		logFile:     filepath.Join(dir, "actions.txt"),
		activeTheme: theme.Default(),
	}
}

func writeImage(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.png")
	img := canvas.Blank(w, h, color.RGBA{255, 255, 255, 255})
	if err := canvas.Save(img, path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	return path
}

func TestParseDrawClipboardRequiresOutput(t *testing.T) {
	_, err := parseDrawCmd([]string{"-from-clipboard", "line", "0", "0", "1", "1"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "output file is required when reading from the clipboard"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseDrawNegativeCoordinates(t *testing.T) {
	d, err := parseDrawCmd([]string{"-file", "a.png", "-color", "#00ff00", "line", "-10", "5", "20", "-3"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.tool != raster.ToolLine {
		t.Fatalf("tool = %v", d.tool)
	}
	want := []image.Point{{-10, 5}, {20, -3}}
	if len(d.points) != 2 || d.points[0] != want[0] || d.points[1] != want[1] {
		t.Fatalf("points = %v", d.points)
	}
	if d.color != (color.RGBA{0, 255, 0, 255}) || d.output != "a.png" {
		t.Fatalf("color %v output %q", d.color, d.output)
	}
}

func TestParseDrawErrors(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"-file", "a.png", "picker", "1", "1"}, "cannot be used"},
		{[]string{"-file", "a.png", "rect", "1", "1", "2"}, "requires 4 integer arguments"},
		{[]string{"-file", "a.png", "pen", "1", "1"}, "at least two"},
		{[]string{"-file", "a.png", "text", "1", "1"}, "requires x y and content"},
		{[]string{"-file", "a.png", "-sides", "2", "star", "0", "0", "9", "9"}, "sides"},
		{[]string{"line", "0", "0", "1", "1"}, "input file is required"},
		{[]string{"-file", "a.png", "blob", "0", "0"}, "unknown tool"},
	}
	for _, tc := range cases {
		_, err := parseDrawCmd(tc.args, nil)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%v: expected error containing %q, got %v", tc.args, tc.want, err)
		}
	}
}

func TestDrawRunGrowsCanvas(t *testing.T) {
	r := testRoot(t)
	in := writeImage(t, 20, 20)
	out := filepath.Join(t.TempDir(), "out.png")
	d, err := parseDrawCmd([]string{"-file", in, "-output", out, "-width", "2", "line", "-10", "5", "10", "5"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := d.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img, err := canvas.Load(out)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b := img.Bounds(); b.Dx() <= 20 || b.Dy() != 20 {
		t.Fatalf("expected the canvas to grow to the left, got %v", b)
	}
}

func TestDrawRunPenAndText(t *testing.T) {
	r := testRoot(t)
	in := writeImage(t, 60, 40)
	for _, args := range [][]string{
		{"-file", in, "pen", "2", "2", "30", "20", "50", "5"},
		{"-file", in, "-width", "1", "text", "5", "5", "hi"},
	} {
		d, err := parseDrawCmd(args, r)
		if err != nil {
			t.Fatalf("parse %v: %v", args, err)
		}
		if err := d.Run(); err != nil {
			t.Fatalf("run %v: %v", args, err)
		}
	}
	img, err := canvas.Load(in)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 60, 40) {
		t.Fatalf("in-bounds drawing must not grow, got %v", img.Bounds())
	}
}

func TestTransformRotateAndResize(t *testing.T) {
	r := testRoot(t)
	in := writeImage(t, 30, 10)
	rot, err := parseTransformCmd("rotate", []string{"-file", in, "90"}, r)
	if err != nil {
		t.Fatalf("parse rotate: %v", err)
	}
	if err := rot.Run(); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	img, err := canvas.Load(in)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 30 {
		t.Fatalf("rotated bounds = %v", b)
	}

	bad, err := parseTransformCmd("resize", []string{"-file", in, "0", "5"}, r)
	if err != nil {
		t.Fatalf("parse resize: %v", err)
	}
	if err := bad.Run(); !errors.Is(err, canvas.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestTransformArgumentCounts(t *testing.T) {
	r := testRoot(t)
	var uerr *UsageError
	if _, err := parseTransformCmd("resize", []string{"-file", "a.png", "10"}, r); !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if _, err := parseTransformCmd("rotate", []string{"-file", "a.png", "left"}, r); err == nil {
		t.Fatal("expected an angle error")
	}
	if _, err := parseTransformCmd("mirror", []string{"a.png"}, r); err == nil {
		t.Fatal("expected missing -file error")
	}
}

func TestNewUsesSaveDir(t *testing.T) {
	r := testRoot(t)
	r.config.SaveDir = t.TempDir()
	n, err := parseNewCmd([]string{"-width", "12", "-height", "7", "-background", "black", "blank"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := n.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img, err := canvas.Load(filepath.Join(r.config.SaveDir, "blank.png"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 12, 7) || img.RGBAAt(3, 3) != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("unexpected blank canvas %v %v", img.Bounds(), img.RGBAAt(3, 3))
	}
}

func TestRootUnknownCommandIsUsage(t *testing.T) {
	r := testRoot(t)
	err := r.Run([]string{"paint"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "Usage: easel") {
		t.Fatalf("help text missing usage line:\n%s", uerr.Error())
	}
}

func TestHelpTemplatesRender(t *testing.T) {
	r := testRoot(t)
	d, _ := parseDrawCmd([]string{"-file", "a.png", "point", "1", "1"}, r)
	tr, _ := parseTransformCmd("mirror", []string{"-file", "a.png"}, r)
	n, _ := parseNewCmd([]string{"x.png"}, r)
	e, _ := parseEditCmd(nil, r)
	c, _ := parseConfigCmd([]string{"print"}, r)
	for _, h := range []HelpData{r, d, tr, n, e, c} {
		text := (&UsageError{of: h}).Error()
		if !strings.Contains(text, "Usage:") || !strings.Contains(text, h.Program()) {
			t.Errorf("%s: unexpected help\n%s", h.Template(), text)
		}
	}
}

func TestResolveThemePrefersConfigThemes(t *testing.T) {
	r := testRoot(t)
	custom := theme.Default()
	custom.Background = color.RGBA{1, 2, 3, 255}
	r.config.Themes["mine"] = custom
	r.themeName = "mine"
	if got := r.resolveTheme(); got != custom {
		t.Fatal("config theme should win")
	}
	r.themeName = ""
	t.Setenv("EASEL_THEME", "no-such-theme")
	if got := r.resolveTheme(); got.Background != theme.Default().Background {
		t.Fatal("unknown theme should fall back to the default")
	}
}
