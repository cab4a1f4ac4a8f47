package input

import (
	"sync"

	"github.com/dshills/keychord/internal/input/keymap"
)

// ContextProvider supplies the condition context at the moment a keystroke
// is resolved. The handler asks for it once per keystroke.
type ContextProvider interface {
	KeymapContext() keymap.Context
}

// ContextFunc adapts a function to ContextProvider.
type ContextFunc func() keymap.Context

// KeymapContext calls f.
func (f ContextFunc) KeymapContext() keymap.Context {
	return f()
}

// EditorStateProvider provides editor state for context updates.
type EditorStateProvider interface {
	// SelectionCount returns the number of non-empty selections.
	SelectionCount() int

	// CursorCount returns the number of cursors, at least one.
	CursorCount() int

	// ActiveModal returns the open modal's id, or "" when none is open.
	ActiveModal() string

	// FocusedPane returns "editor", "sidebar" or another pane name.
	FocusedPane() string
}

// ContextFromEditor derives the condition context from editor state.
func ContextFromEditor(editor EditorStateProvider) keymap.Context {
	if editor == nil {
		return keymap.Context{}
	}
	pane := editor.FocusedPane()
	return keymap.Context{
		HasSelection:       editor.SelectionCount() > 0,
		HasMultipleCursors: editor.CursorCount() > 1,
		ModalActive:        editor.ActiveModal() != "",
		EditorFocused:      pane == "editor",
		SidebarFocused:     pane == "sidebar",
	}
}

// EditorContext adapts an EditorStateProvider to ContextProvider.
func EditorContext(editor EditorStateProvider) ContextProvider {
	return ContextFunc(func() keymap.Context {
		return ContextFromEditor(editor)
	})
}

// MutableContext is a ContextProvider the host updates directly. It is
// safe for concurrent use.
type MutableContext struct {
	mu  sync.RWMutex
	ctx keymap.Context
}

// NewMutableContext creates a MutableContext holding ctx.
func NewMutableContext(ctx keymap.Context) *MutableContext {
	return &MutableContext{ctx: ctx}
}

// KeymapContext returns the current context.
func (c *MutableContext) KeymapContext() keymap.Context {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ctx
}

// Set replaces the context.
func (c *MutableContext) Set(ctx keymap.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctx = ctx
}

// Update applies fn to the context under the lock.
func (c *MutableContext) Update(fn func(*keymap.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.ctx)
}
