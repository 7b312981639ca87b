package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/example/easel/internal/editor"
	"github.com/example/easel/internal/theme"
)

// newCmd writes a blank canvas to disk.
type newCmd struct {
	output     string
	width      int
	height     int
	background string
	*root
	fs *flag.FlagSet
}

func (n *newCmd) FlagSet() *flag.FlagSet {
	return n.fs
}

func parseNewCmd(args []string, r *root) (*newCmd, error) {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	n := &newCmd{root: r.subcommand("new"), fs: fs}
	fs.Usage = usageFunc(n)
	fs.IntVar(&n.width, "width", r.config.CanvasWidth, "canvas width in pixels")
	fs.IntVar(&n.height, "height", r.config.CanvasHeight, "canvas height in pixels")
	fs.StringVar(&n.background, "background", "white", "fill color name or hex value")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: n}
	}
	n.output = n.outputPath(fs.Arg(0))
	if n.width < 1 || n.height < 1 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", n.width, n.height)
	}
	return n, nil
}

func (n *newCmd) Run() error {
	bg, err := theme.ParseColor(n.background)
	if err != nil {
		return err
	}
	opts, logger := n.sessionOptions()
	defer func() {
		if err := logger.Close(); err != nil {
			log.Printf("error closing action log: %v", err)
		}
	}()
	opts = append(opts, editor.WithCanvasSize(n.width, n.height), editor.WithBackground(bg))
	sess, err := editor.New(opts...)
	if err != nil {
		return err
	}
	saved, err := sess.SaveAs(n.output)
	if err != nil {
		return err
	}
	if abs, err := filepath.Abs(saved); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	return nil
}
