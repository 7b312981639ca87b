package appstate

import (
	"strings"
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/easel/internal/editor"
	"github.com/example/easel/internal/raster"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

const shortcutMods = key.ModControl | key.ModShift | key.ModAlt | key.ModMeta

// keymap resolves key events to action names.
type keymap map[KeyShortcut]string

func (m keymap) bind(name string, keys KeyboardShortcuts) {
	for _, sc := range keys.KeyboardShortcuts() {
		m[sc] = name
	}
}

// lookup matches by rune first and falls back to the key code, ignoring
// modifiers that are not part of any shortcut.
func (m keymap) lookup(e key.Event) (string, bool) {
	mods := e.Modifiers & shortcutMods
	if e.Rune > 0 {
		r := unicode.ToLower(e.Rune)
		if r < ' ' && mods&key.ModControl != 0 {
			// Some drivers deliver ctrl+letter as the ASCII control code.
			r += 'a' - 1
		}
		if name, ok := m[KeyShortcut{Rune: r, Modifiers: mods}]; ok {
			return name, true
		}
	}
	if e.Code != key.CodeUnknown {
		if name, ok := m[KeyShortcut{Code: e.Code, Modifiers: mods}]; ok {
			return name, true
		}
	}
	return "", false
}

func ctrl(r rune) KeyShortcut      { return KeyShortcut{Rune: r, Modifiers: key.ModControl} }
func ctrlShift(r rune) KeyShortcut { return KeyShortcut{Rune: r, Modifiers: key.ModControl | key.ModShift} }

// toolForRune returns the tool bound to an unmodified key press.
func toolForRune(r rune) (raster.Tool, bool) {
	r = unicode.ToLower(r)
	for _, tl := range toolLabels {
		if tl.key == r {
			return tl.tool, true
		}
	}
	return 0, false
}

// modifiers converts shiny modifiers into editor modifiers.
func modifiers(m key.Modifiers) editor.Modifiers {
	var out editor.Modifiers
	if m&key.ModShift != 0 {
		out |= editor.ModShift
	}
	if m&key.ModControl != 0 {
		out |= editor.ModCtrl
	}
	if m&key.ModAlt != 0 {
		out |= editor.ModAlt
	}
	return out
}

// splitDims parses "800x600" style input into width and height strings.
func splitDims(s string) (string, string) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, sep := range []string{"x", "*", ",", " "} {
		if w, h, ok := strings.Cut(s, sep); ok {
			return strings.TrimSpace(w), strings.TrimSpace(h)
		}
	}
	return s, ""
}
