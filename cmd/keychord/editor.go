package main

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// replEditor is the simulated editor behind the REPL. Function keys
// change its state; the handler reads conditions from it through
// input.EditorContext.
type replEditor struct {
	mu         sync.RWMutex
	selections int
	cursors    int
	modal      string
	pane       string
}

func newReplEditor() *replEditor {
	return &replEditor{cursors: 1, pane: "editor"}
}

func (e *replEditor) SelectionCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selections
}

func (e *replEditor) CursorCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors
}

func (e *replEditor) ActiveModal() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.modal
}

func (e *replEditor) FocusedPane() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pane
}

// toggle applies F2..F5 and reports whether k was one of them.
//
//	F2 selection on/off   F3 one/two cursors
//	F4 palette modal      F5 editor/sidebar focus
func (e *replEditor) toggle(k tcell.Key) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch k {
	case tcell.KeyF2:
		e.selections = 1 - min(e.selections, 1)
	case tcell.KeyF3:
		if e.cursors > 1 {
			e.cursors = 1
		} else {
			e.cursors = 2
		}
	case tcell.KeyF4:
		if e.modal == "" {
			e.modal = "palette"
		} else {
			e.modal = ""
		}
	case tcell.KeyF5:
		if e.pane == "editor" {
			e.pane = "sidebar"
		} else {
			e.pane = "editor"
		}
	default:
		return false
	}
	return true
}
