package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/example/easel/internal/appstate"
	"github.com/example/easel/internal/editor"
	"github.com/example/easel/internal/raster"
)

// editCmd opens the editor window on a file or a blank canvas.
type editCmd struct {
	file   string
	width  int
	height int
	tool   string
	*root
	fs *flag.FlagSet
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r.subcommand("edit"), fs: fs}
	fs.Usage = usageFunc(e)
	fs.IntVar(&e.width, "width", r.config.CanvasWidth, "width of a new blank canvas")
	fs.IntVar(&e.height, "height", r.config.CanvasHeight, "height of a new blank canvas")
	fs.StringVar(&e.tool, "tool", raster.ToolPen.String(), "tool selected at start")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, &UsageError{of: e}
	}
	if fs.NArg() == 1 {
		e.file = fs.Arg(0)
	}
	if e.width < 1 || e.height < 1 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", e.width, e.height)
	}
	if _, err := raster.ParseTool(e.tool); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *editCmd) Run() error {
	tool, err := raster.ParseTool(e.tool)
	if err != nil {
		return err
	}
	title := "Easel"
	if e.file != "" {
		title = "Easel - " + filepath.Base(e.file)
	}
	app := appstate.New(
		appstate.WithTheme(e.activeTheme),
		appstate.WithAutoSave(e.config.AutoSave),
		appstate.WithTitle(title),
		appstate.WithSaveDir(e.config.SaveDir),
	)
	opts, logger := e.sessionOptions()
	defer func() {
		if err := logger.Close(); err != nil {
			log.Printf("error closing action log: %v", err)
		}
	}()
	opts = append(opts,
		editor.WithCanvasSize(e.width, e.height),
		editor.WithTool(tool),
		editor.WithOnChange(app.NotifyChanged),
	)
	sess, err := editor.New(opts...)
	if err != nil {
		return err
	}
	switch _, statErr := os.Stat(e.file); {
	case e.file == "":
	case errors.Is(statErr, os.ErrNotExist):
		// A missing file starts blank and is created on the first save.
		sess.Document().SetPath(e.file)
	default:
		if err := sess.Open(e.file); err != nil {
			return err
		}
	}
	app.Session = sess
	return app.Run()
}
