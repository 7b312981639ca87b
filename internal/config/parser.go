package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/example/easel/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	// Context for parsing
	var currentSection string
	var currentTheme *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		// Handle Sections
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"))
			currentTheme = nil

			if strings.HasPrefix(currentSection, "theme.") {
				themeName := strings.TrimPrefix(currentSection, "theme.")
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Parse Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		// Remove quotes if present
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = theme.SetField(currentTheme, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "brush":
			err = setBrushField(&cfg.Brush, key, value)
		case currentSection == "star":
			err = setStarField(&cfg.Star, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			if currentSection == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	case "log_file":
		cfg.LogFile = value
	case "autosave":
		cfg.AutoSave, err = parseDuration(value)
	case "undo_limit":
		cfg.UndoLimit, err = parsePositive(key, value)
	case "canvas_width":
		cfg.CanvasWidth, err = parsePositive(key, value)
	case "canvas_height":
		cfg.CanvasHeight, err = parsePositive(key, value)
	}
	return err
}

// parseDuration accepts Go durations; "off", "0" and "false" disable.
func parseDuration(value string) (time.Duration, error) {
	switch strings.ToLower(value) {
	case "off", "false", "0", "":
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", value, err)
	}
	return d, nil
}

func parsePositive(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid value for key %s: %q", key, value)
	}
	return n, nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "autosave":
		n.AutoSave = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func setBrushField(b *Brush, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "width":
		b.Width, err = parsePositive(key, value)
	case "sides":
		b.Sides, err = parsePositive(key, value)
	case "color", "colour":
		b.Color, err = theme.ParseColor(value)
		if err != nil {
			err = fmt.Errorf("invalid color for key %s: %w", key, err)
		}
	}
	return err
}

func setStarField(s *Star, key, value string) error {
	switch strings.ToLower(key) {
	case "points":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for key %s: %q", key, value)
		}
		s.Points = n
	case "inner_ratio":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid value for key %s: %q", key, value)
		}
		s.InnerRatio = f
	}
	return nil
}
