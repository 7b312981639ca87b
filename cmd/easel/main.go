package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/easel/internal/actionlog"
	"github.com/example/easel/internal/clipboard"
	"github.com/example/easel/internal/config"
	"github.com/example/easel/internal/editor"
	"github.com/example/easel/internal/notify"
	"github.com/example/easel/internal/raster"
	"github.com/example/easel/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs             *flag.FlagSet
	program        string
	notifier       *notify.Notifier
	config         *config.Config
	saveAlerts     bool
	autoSaveAlerts bool
	copyAlerts     bool
	themeName      string
	logFile        string
	activeTheme    *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:        program,
		notifier:       r.notifier,
		config:         r.config,
		saveAlerts:     r.saveAlerts,
		autoSaveAlerts: r.autoSaveAlerts,
		copyAlerts:     r.copyAlerts,
		themeName:      r.themeName,
		logFile:        r.logFile,
		activeTheme:    r.activeTheme,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("easel", flag.ExitOnError),
		program:  "easel",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.autoSaveAlerts, "notify-autosave", cfg.Notify.AutoSave, "show a desktop notification after an automatic save")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	// CLI > env > config > default; empty means "not given on the command line".
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.Names(), ", ")+")")
	r.fs.StringVar(&r.logFile, "log-file", "", "file the action log is appended to")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventAutoSave, r.autoSaveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	r.activeTheme = r.resolveTheme()
	if r.logFile == "" {
		r.logFile = os.Getenv("EASEL_LOG_FILE")
	}
	if r.logFile == "" {
		r.logFile = r.config.LogFile
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit", "open":
		cmd, err = parseEditCmd(subArgs, r)
	case "new":
		cmd, err = parseNewCmd(subArgs, r)
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "rotate", "mirror", "resize":
		cmd, err = parseTransformCmd(cmdName, subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// resolveTheme picks the theme from the flag, EASEL_THEME, then the config.
func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("EASEL_THEME")
	}
	if name == "" {
		name = r.config.Theme
	}
	if t, ok := r.config.Themes[name]; ok {
		return t
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

// sessionOptions turns the configuration into editor options. The returned
// logger must be closed once the session is done.
func (r *root) sessionOptions() ([]editor.Option, *actionlog.Logger) {
	cfg := r.config
	if cfg == nil {
		cfg = config.New()
	}
	star := raster.DefaultStarOptions()
	if cfg.Star.Points > 0 {
		star.DefaultPoints = cfg.Star.Points
	}
	if cfg.Star.InnerRatio > 0 {
		star.InnerRatio = cfg.Star.InnerRatio
	}
	logger := actionlog.New(r.logFile)
	opts := []editor.Option{
		editor.WithCanvasSize(cfg.CanvasWidth, cfg.CanvasHeight),
		editor.WithHistoryLimit(cfg.UndoLimit),
		editor.WithStyle(cfg.Brush.Width, cfg.Brush.Color),
		editor.WithSides(cfg.Brush.Sides),
		editor.WithStarOptions(star),
		editor.WithActionLog(logger),
		editor.WithNotifier(r.notifier),
		editor.WithClipboardMirror(clipboard.System{}),
	}
	return opts, logger
}

// outputPath places bare file names in the configured save directory.
func (r *root) outputPath(path string) string {
	if r.config == nil || r.config.SaveDir == "" || path == "" {
		return path
	}
	if filepath.IsAbs(path) || strings.ContainsRune(path, filepath.Separator) {
		return path
	}
	return filepath.Join(r.config.SaveDir, path)
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
