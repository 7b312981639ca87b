// Package history keeps bounded undo and redo stacks of full buffer
// snapshots.
package history

import (
	"image"

	"github.com/example/easel/internal/canvas"
)

// DefaultLimit is the number of snapshots kept on each stack.
const DefaultLimit = 50

// Manager records snapshots before every mutation. It is not safe for
// concurrent use.
type Manager struct {
	limit int
	undo  []*image.RGBA
	redo  []*image.RGBA
}

// New returns a Manager holding at most limit snapshots per stack. A limit
// below 1 uses DefaultLimit.
func New(limit int) *Manager {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Manager{limit: limit}
}

// Limit returns the stack capacity.
func (m *Manager) Limit() int { return m.limit }

// BeginMutation snapshots cur ahead of a change and discards the redo stack.
func (m *Manager) BeginMutation(cur *image.RGBA) {
	m.undo = push(m.undo, canvas.Clone(cur), m.limit)
	m.redo = nil
}

// Undo returns the previous buffer. cur is saved for redo. ok is false when
// nothing can be undone.
func (m *Manager) Undo(cur *image.RGBA) (img *image.RGBA, ok bool) {
	if len(m.undo) == 0 {
		return nil, false
	}
	m.redo = push(m.redo, canvas.Clone(cur), m.limit)
	img, m.undo = pop(m.undo)
	return img, true
}

// Redo reverses the last Undo.
func (m *Manager) Redo(cur *image.RGBA) (img *image.RGBA, ok bool) {
	if len(m.redo) == 0 {
		return nil, false
	}
	m.undo = push(m.undo, canvas.Clone(cur), m.limit)
	img, m.redo = pop(m.redo)
	return img, true
}

// Clear drops both stacks.
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
}

func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }
func (m *Manager) Len() int      { return len(m.undo) }
func (m *Manager) RedoLen() int  { return len(m.redo) }

func push(stack []*image.RGBA, img *image.RGBA, limit int) []*image.RGBA {
	stack = append(stack, img)
	if over := len(stack) - limit; over > 0 {
		clear(stack[:over])
		stack = stack[over:]
	}
	return stack
}

func pop(stack []*image.RGBA) (*image.RGBA, []*image.RGBA) {
	n := len(stack) - 1
	img := stack[n]
	stack[n] = nil
	return img, stack[:n]
}
