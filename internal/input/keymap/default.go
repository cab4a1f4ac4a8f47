package keymap

// BuiltinRecords returns the compiled-in fallback keymap. Hosts use it
// when no keymap file can be loaded. "cmd" is Cmd on macOS and Ctrl
// elsewhere.
func BuiltinRecords() []Record {
	return []Record{
		// File
		{Key: "cmd+s", Command: "SaveFile"},
		{Key: "cmd+shift+s", Command: "SaveFileAs"},
		{Key: "cmd+o", Command: "OpenFile"},
		{Key: "cmd+shift+o", Command: "OpenFolder"},
		{Key: "cmd+n", Command: "NewFile"},
		{Key: "cmd+q", Command: "Quit"},

		// Edit
		{Key: "cmd+z", Command: "Undo"},
		{Key: "cmd+shift+z", Command: "Redo"},
		{Key: "cmd+y", Command: "Redo"},
		{Key: "cmd+c", Command: "Copy"},
		{Key: "cmd+x", Command: "Cut"},
		{Key: "cmd+v", Command: "Paste"},
		{Key: "cmd+a", Command: "SelectAll"},
		{Key: "cmd+shift+d", Command: "Duplicate"},
		{Key: "cmd+backspace", Command: "DeleteLine"},
		{Key: "alt+backspace", Command: "DeleteWordBackward"},
		{Key: "alt+delete", Command: "DeleteWordForward"},
		{Key: "enter", Command: "InsertNewline", When: []string{"editor-focused", "modal-inactive"}},
		{Key: "backspace", Command: "DeleteBackward"},
		{Key: "delete", Command: "DeleteForward"},
		{Key: "tab", Command: "InsertTab", When: []string{"no-selection"}},
		{Key: "tab", Command: "IndentLines", When: []string{"has-selection"}},
		{Key: "shift+tab", Command: "UnindentLines"},

		// Multi-cursor
		{Key: "cmd+d", Command: "SelectNextOccurrence"},
		{Key: "cmd+shift+j", Command: "UnselectOccurrence"},
		{Key: "cmd+alt+up", Command: "AddCursorAbove"},
		{Key: "cmd+alt+down", Command: "AddCursorBelow"},
		{Key: "escape", Command: "EscapeSmartClear"},
		{Key: "escape", Command: "CollapseToSingleCursor", When: []string{"has-multiple-cursors"}},
		{Key: "escape", Command: "ClearSelection", When: []string{"has-selection", "single-cursor"}},
		{Key: "escape", Command: "CloseModal", When: []string{"modal-active"}},

		// Navigation
		{Key: "up", Command: "MoveCursorUp"},
		{Key: "down", Command: "MoveCursorDown"},
		{Key: "left", Command: "MoveCursorLeft"},
		{Key: "right", Command: "MoveCursorRight"},
		{Key: "home", Command: "MoveCursorLineStart"},
		{Key: "end", Command: "MoveCursorLineEnd"},
		{Key: "pageup", Command: "PageUp"},
		{Key: "pagedown", Command: "PageDown"},
		{Key: "alt+left", Command: "MoveCursorWordLeft"},
		{Key: "alt+right", Command: "MoveCursorWordRight"},
		{Key: "shift+up", Command: "MoveCursorUpWithSelection"},
		{Key: "shift+down", Command: "MoveCursorDownWithSelection"},
		{Key: "shift+left", Command: "MoveCursorLeftWithSelection"},
		{Key: "shift+right", Command: "MoveCursorRightWithSelection"},
		{Key: "ctrl+home", Command: "MoveCursorDocumentStart"},
		{Key: "ctrl+end", Command: "MoveCursorDocumentEnd"},
		{Key: "cmd+left", Command: "MoveCursorLineStart", Platform: "macos"},
		{Key: "cmd+right", Command: "MoveCursorLineEnd", Platform: "macos"},

		// Modals
		{Key: "cmd+shift+a", Command: "ToggleCommandPalette"},
		{Key: "cmd+l", Command: "ToggleGotoLine"},
		{Key: "cmd+f", Command: "ToggleFindReplace"},

		// Layout
		{Key: "cmd+shift+n", Command: "NewTab"},
		{Key: "cmd+w", Command: "CloseTab"},
		{Key: "cmd+alt+right", Command: "NextTab"},
		{Key: "cmd+alt+left", Command: "PrevTab"},
		{Key: "ctrl+tab", Command: "FocusNextGroup"},
		{Key: "ctrl+shift+tab", Command: "FocusPrevGroup"},

		// Workspace
		{Key: "cmd+1", Command: "ToggleSidebar"},
		{Key: "cmd+k cmd+r", Command: "RevealInSidebar"},
		{Key: "up", Command: "FileTreeSelectPrevious", When: []string{"sidebar-focused"}},
		{Key: "down", Command: "FileTreeSelectNext", When: []string{"sidebar-focused"}},
		{Key: "enter", Command: "FileTreeOpenOrToggle", When: []string{"sidebar-focused"}},
	}
}
