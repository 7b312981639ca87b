package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/easel/internal/canvas"
	"github.com/example/easel/internal/clipboard"
	"github.com/example/easel/internal/editor"
	"github.com/example/easel/internal/raster"
	"github.com/example/easel/internal/theme"
)

// drawCmd applies one tool to an image file, growing the canvas when the
// shape reaches past an edge.
type drawCmd struct {
	file          string
	output        string
	fromClipboard bool
	toClipboard   bool
	colorSpec     string
	color         color.RGBA
	width         int
	sides         int
	tool          raster.Tool
	points        []image.Point
	text          string
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{fs: fs}
	if r != nil {
		d.root = r.subcommand("draw")
	}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.file, "file", "", "input image file")
	fs.StringVar(&d.output, "output", "", "output file path (defaults to input file)")
	fs.BoolVar(&d.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.StringVar(&d.colorSpec, "color", "red", "stroke color name or hex value")
	fs.IntVar(&d.width, "width", 3, "stroke width in pixels")
	fs.IntVar(&d.sides, "sides", 5, "corners of a polygon or points of a star")

	flagArgs, positionals := splitDrawArgs(args)
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	positionals = append(positionals, fs.Args()...)
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	tool, err := raster.ParseTool(positionals[0])
	if err != nil {
		return nil, err
	}
	d.tool = tool
	remaining := positionals[1:]
	switch {
	case tool == raster.ToolPoint:
		d.points, err = expectPoints(remaining, 1, tool)
	case tool == raster.ToolPen:
		if len(remaining) < 4 || len(remaining)%2 != 0 {
			return nil, fmt.Errorf("pen requires at least two x y pairs")
		}
		d.points, err = expectPoints(remaining, len(remaining)/2, tool)
	case tool == raster.ToolText:
		if len(remaining) < 3 {
			return nil, fmt.Errorf("text requires x y and content")
		}
		d.points, err = expectPoints(remaining[:2], 1, tool)
		d.text = strings.Join(remaining[2:], " ")
		if strings.TrimSpace(d.text) == "" {
			return nil, fmt.Errorf("text content cannot be empty")
		}
	case tool.IsShape():
		d.points, err = expectPoints(remaining, 2, tool)
	default:
		return nil, fmt.Errorf("%s cannot be used from the command line", tool)
	}
	if err != nil {
		return nil, err
	}
	d.color, err = theme.ParseColor(d.colorSpec)
	if err != nil {
		return nil, err
	}
	if d.fromClipboard {
		if d.output == "" {
			if d.file == "" {
				return nil, fmt.Errorf("output file is required when reading from the clipboard")
			}
			d.output = d.file
		}
	} else {
		if d.file == "" {
			return nil, fmt.Errorf("input file is required")
		}
		if d.output == "" {
			d.output = d.file
		}
	}
	if d.width < 1 {
		d.width = 1
	}
	if d.sides < 3 {
		return nil, fmt.Errorf("sides must be at least 3, got %d", d.sides)
	}
	return d, nil
}

// splitDrawArgs separates flags from the shape so negative coordinates are
// not mistaken for flags.
func splitDrawArgs(args []string) (flags, positionals []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") || isNumber(a) {
			return flags, append(positionals, args[i:]...)
		}
		flags = append(flags, a)
		if strings.Contains(a, "=") || i+1 >= len(args) {
			continue
		}
		switch strings.TrimLeft(a, "-") {
		case "from-clipboard", "to-clipboard", "h", "help":
		default:
			i++
			flags = append(flags, args[i])
		}
	}
	return flags, positionals
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func expectPoints(args []string, n int, tool raster.Tool) ([]image.Point, error) {
	if len(args) != n*2 {
		return nil, fmt.Errorf("%s requires %d integer arguments", tool, n*2)
	}
	pts := make([]image.Point, n)
	for i := range pts {
		x, err := strconv.Atoi(args[2*i])
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", args[2*i])
		}
		y, err := strconv.Atoi(args[2*i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", args[2*i+1])
		}
		pts[i] = image.Pt(x, y)
	}
	return pts, nil
}

func (d *drawCmd) Run() error {
	src, err := d.loadSource()
	if err != nil {
		return err
	}
	opts, logger := d.sessionOptions()
	defer func() {
		if err := logger.Close(); err != nil {
			log.Printf("error closing action log: %v", err)
		}
	}()
	opts = append(opts,
		editor.WithDocument(canvas.FromImage(src, canvas.WithPath(d.output))),
		editor.WithStyle(d.width, d.color),
		editor.WithSides(d.sides),
	)
	sess, err := editor.New(opts...)
	if err != nil {
		return err
	}
	if err := d.apply(sess); err != nil {
		return err
	}
	saved, err := sess.SaveAs(d.output)
	if err != nil {
		return err
	}
	if abs, err := filepath.Abs(saved); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	if d.toClipboard {
		if err := clipboard.WriteImage(sess.Buffer()); err != nil {
			return fmt.Errorf("copy image to clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", filepath.Base(saved))
	}
	return nil
}

func (d *drawCmd) apply(sess *editor.Session) error {
	switch {
	case d.tool == raster.ToolPen:
		return sess.Stroke(d.points)
	case d.tool == raster.ToolPoint:
		return sess.Stroke(d.points[:1])
	case d.tool == raster.ToolText:
		sess.SetTool(raster.ToolText)
		p := d.points[0]
		sess.PointerDown(p.X, p.Y, 0)
		return sess.PlaceText(d.text)
	default:
		return sess.Draw(raster.Shape{Tool: d.tool, Start: d.points[0], End: d.points[1], Sides: d.sides})
	}
}

func (d *drawCmd) loadSource() (image.Image, error) {
	if d.fromClipboard {
		img, err := clipboard.ReadImage()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		return img, nil
	}
	return canvas.Load(d.file)
}
