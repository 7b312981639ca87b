package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDir      = "easel"
	configFile  = "config.rc"
	legacyFile  = "easel.rc"
	devFile     = ".easelrc"
	envOverride = "EASEL_CONFIG"
)

// Loader finds, reads and writes the RC file.
type Loader struct {
	Version      string // "dev" builds also look in the working directory
	OverridePath string // set at link time; EASEL_CONFIG takes its place when empty

	home func() (string, error)
	wd   func() (string, error)
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	if overridePath == "" {
		overridePath = os.Getenv(envOverride)
	}
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
		home:         os.UserHomeDir,
		wd:           os.Getwd,
	}
}

// Candidates lists the paths searched, most specific first.
func (l *Loader) Candidates() []string {
	var out []string
	if l.OverridePath != "" {
		out = append(out, l.OverridePath)
	}
	if l.Version == "dev" && l.wd != nil {
		if wd, err := l.wd(); err == nil {
			out = append(out, filepath.Join(wd, devFile))
		}
	}
	if dir := l.userDir(); dir != "" {
		out = append(out, filepath.Join(dir, configFile), filepath.Join(dir, legacyFile))
	}
	return out
}

func (l *Loader) userDir() string {
	if l.home == nil {
		return ""
	}
	home, err := l.home()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", appDir)
}

// GetConfigPath returns the first candidate that exists, or "".
func (l *Loader) GetConfigPath() string {
	for _, p := range l.Candidates() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads the configuration, returning defaults when no file exists.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SavePath is where "config save" writes: the file in use, else the override,
// else the per-user location.
func (l *Loader) SavePath() string {
	if p := l.GetConfigPath(); p != "" {
		return p
	}
	if l.OverridePath != "" {
		return l.OverridePath
	}
	if dir := l.userDir(); dir != "" {
		return filepath.Join(dir, configFile)
	}
	return devFile
}

// Save writes cfg to SavePath, creating parent directories.
func (l *Loader) Save(cfg *Config) (string, error) {
	if cfg == nil {
		return "", errors.New("config: nothing to save")
	}
	path := l.SavePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(cfg.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
