package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
	"time"

	"github.com/example/easel/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save     bool
	AutoSave bool
	Copy     bool
}

// Brush holds the tool state the editor starts with.
type Brush struct {
	Width int
	Color color.RGBA
	Sides int
}

// Star holds the star construction constants.
type Star struct {
	Points     int
	InnerRatio float64
}

// Config holds the application configuration.
type Config struct {
	Theme        string
	SaveDir      string
	LogFile      string
	AutoSave     time.Duration
	UndoLimit    int
	CanvasWidth  int
	CanvasHeight int
	Brush        Brush
	Star         Star
	Notify       Notify
	Themes       map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:        "", // Default to empty to allow fallback to Env/Default
		LogFile:      "actions_log.txt",
		AutoSave:     5 * time.Minute,
		UndoLimit:    50,
		CanvasWidth:  800,
		CanvasHeight: 600,
		Brush: Brush{
			Width: 3,
			Color: color.RGBA{R: 255, A: 255},
			Sides: 5,
		},
		Star: Star{
			Points:     5,
			InnerRatio: 2.5,
		},
		Notify: Notify{
			Save: true,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.LogFile != "" {
		fmt.Fprintf(&sb, "log_file = %s\n", c.LogFile)
	}
	fmt.Fprintf(&sb, "autosave = %s\n", c.AutoSave)
	fmt.Fprintf(&sb, "undo_limit = %d\n", c.UndoLimit)
	fmt.Fprintf(&sb, "canvas_width = %d\n", c.CanvasWidth)
	fmt.Fprintf(&sb, "canvas_height = %d\n", c.CanvasHeight)
	sb.WriteString("\n")

	sb.WriteString("[brush]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Brush.Width)
	fmt.Fprintf(&sb, "color = %s\n", theme.Hex(c.Brush.Color))
	fmt.Fprintf(&sb, "sides = %d\n", c.Brush.Sides)
	sb.WriteString("\n")

	sb.WriteString("[star]\n")
	fmt.Fprintf(&sb, "points = %d\n", c.Star.Points)
	fmt.Fprintf(&sb, "inner_ratio = %g\n", c.Star.InnerRatio)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "autosave = %v\n", c.Notify.AutoSave)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
