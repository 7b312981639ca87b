package appstate

import (
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/easel/internal/editor"
)

// prompt collects one line of text in the status bar.
type prompt struct {
	label    string
	input    string
	onSubmit func(string)
	onCancel func()
}

func (p *prompt) text() string { return p.label + p.input }

// handle applies a key press and reports whether the prompt is finished.
func (p *prompt) handle(e key.Event) (done bool) {
	switch e.Code {
	case key.CodeReturnEnter:
		if p.onSubmit != nil {
			p.onSubmit(p.input)
		}
		return true
	case key.CodeEscape:
		if p.onCancel != nil {
			p.onCancel()
		}
		return true
	case key.CodeDeleteBackspace:
		if r := []rune(p.input); len(r) > 0 {
			p.input = string(r[:len(r)-1])
		}
		return false
	}
	if e.Rune > 0 && unicode.IsPrint(e.Rune) {
		p.input += string(e.Rune)
	}
	return false
}

// answerFor maps a key press to a yes/no/cancel answer. ok is false for keys
// that do not answer the question.
func answerFor(e key.Event) (editor.Answer, bool) {
	switch unicode.ToLower(e.Rune) {
	case 'y':
		return editor.Yes, true
	case 'n':
		return editor.No, true
	}
	if e.Code == key.CodeEscape {
		return editor.Cancel, true
	}
	return editor.Cancel, false
}
