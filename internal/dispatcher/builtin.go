package dispatcher

import "github.com/dshills/keychord/internal/input/keymap"

// DefaultRegistry returns a registry holding the built-in editor commands.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterBuiltins(r)
	return r
}

// RegisterBuiltins adds the built-in editor commands to r.
func RegisterBuiltins(r *Registry) {
	ed := func(id keymap.CommandID, name string) {
		r.MustRegister(id, Msg(TargetEditor, name))
	}
	edDir := func(id keymap.CommandID, name, dir string) {
		r.MustRegister(id, MsgArg(TargetEditor, name, dir))
	}
	doc := func(id keymap.CommandID, name string) {
		r.MustRegister(id, Msg(TargetDocument, name))
	}

	// Cursor movement
	edDir("MoveCursorUp", "MoveCursor", "up")
	edDir("MoveCursorDown", "MoveCursor", "down")
	edDir("MoveCursorLeft", "MoveCursor", "left")
	edDir("MoveCursorRight", "MoveCursor", "right")
	ed("MoveCursorLineStart", "MoveCursorLineStart")
	ed("MoveCursorLineEnd", "MoveCursorLineEnd")
	ed("MoveCursorDocumentStart", "MoveCursorDocumentStart")
	ed("MoveCursorDocumentEnd", "MoveCursorDocumentEnd")
	edDir("MoveCursorWordLeft", "MoveCursorWord", "left")
	edDir("MoveCursorWordRight", "MoveCursorWord", "right")
	ed("PageUp", "PageUp")
	ed("PageDown", "PageDown")

	// Selection movement
	edDir("MoveCursorUpWithSelection", "MoveCursorWithSelection", "up")
	edDir("MoveCursorDownWithSelection", "MoveCursorWithSelection", "down")
	edDir("MoveCursorLeftWithSelection", "MoveCursorWithSelection", "left")
	edDir("MoveCursorRightWithSelection", "MoveCursorWithSelection", "right")
	ed("MoveCursorLineStartWithSelection", "MoveCursorLineStartWithSelection")
	ed("MoveCursorLineEndWithSelection", "MoveCursorLineEndWithSelection")
	ed("MoveCursorDocumentStartWithSelection", "MoveCursorDocumentStartWithSelection")
	ed("MoveCursorDocumentEndWithSelection", "MoveCursorDocumentEndWithSelection")
	edDir("MoveCursorWordLeftWithSelection", "MoveCursorWordWithSelection", "left")
	edDir("MoveCursorWordRightWithSelection", "MoveCursorWordWithSelection", "right")
	ed("PageUpWithSelection", "PageUpWithSelection")
	ed("PageDownWithSelection", "PageDownWithSelection")

	// Selection
	ed("SelectAll", "SelectAll")
	ed("SelectWord", "SelectWord")
	ed("SelectLine", "SelectLine")
	ed("ClearSelection", "ClearSelection")
	ed("ExpandSelection", "ExpandSelection")
	ed("ShrinkSelection", "ShrinkSelection")

	// Multi-cursor
	ed("AddCursorAbove", "AddCursorAbove")
	ed("AddCursorBelow", "AddCursorBelow")
	ed("CollapseToSingleCursor", "CollapseToSingleCursor")
	ed("SelectNextOccurrence", "SelectNextOccurrence")
	ed("UnselectOccurrence", "UnselectOccurrence")

	// Editing
	doc("InsertNewline", "InsertNewline")
	doc("DeleteBackward", "DeleteBackward")
	doc("DeleteForward", "DeleteForward")
	doc("DeleteWordBackward", "DeleteWordBackward")
	doc("DeleteWordForward", "DeleteWordForward")
	doc("DeleteLine", "DeleteLine")
	doc("Duplicate", "Duplicate")
	doc("IndentLines", "IndentLines")
	doc("UnindentLines", "UnindentLines")
	r.MustRegister("InsertTab", MsgArg(TargetDocument, "InsertChar", "\t"))

	// Clipboard and history
	doc("Copy", "Copy")
	doc("Cut", "Cut")
	doc("Paste", "Paste")
	doc("Undo", "Undo")
	doc("Redo", "Redo")

	// File
	r.MustRegister("SaveFile", Msg(TargetApp, "SaveFile"))
	r.MustRegister("SaveFileAs", Msg(TargetApp, "SaveFileAs"))
	r.MustRegister("OpenFile", Msg(TargetApp, "OpenFileDialog"))
	r.MustRegister("OpenFolder", Msg(TargetApp, "OpenFolderDialog"))
	r.MustRegister("NewFile", Msg(TargetApp, "NewFile"))
	r.MustRegister("Quit", Msg(TargetApp, "Quit"))

	// Modals
	r.MustRegister("ToggleCommandPalette", MsgArg(TargetUI, "ToggleModal", "command-palette"))
	r.MustRegister("ToggleGotoLine", MsgArg(TargetUI, "ToggleModal", "goto-line"))
	r.MustRegister("ToggleFindReplace", MsgArg(TargetUI, "ToggleModal", "find-replace"))
	r.MustRegister("CloseModal", Msg(TargetUI, "CloseModal"))

	// Layout
	r.MustRegister("NewTab", Msg(TargetLayout, "NewTab"))
	r.MustRegister("CloseTab", Msg(TargetLayout, "CloseFocusedTab"))
	r.MustRegister("NextTab", Msg(TargetLayout, "NextTab"))
	r.MustRegister("PrevTab", Msg(TargetLayout, "PrevTab"))
	r.MustRegister("SplitHorizontal", MsgArg(TargetLayout, "SplitFocused", "horizontal"))
	r.MustRegister("SplitVertical", MsgArg(TargetLayout, "SplitFocused", "vertical"))
	r.MustRegister("FocusNextGroup", Msg(TargetLayout, "FocusNextGroup"))
	r.MustRegister("FocusPrevGroup", Msg(TargetLayout, "FocusPrevGroup"))
	r.MustRegister("FocusGroup1", MsgArg(TargetLayout, "FocusGroupByIndex", "1"))
	r.MustRegister("FocusGroup2", MsgArg(TargetLayout, "FocusGroupByIndex", "2"))
	r.MustRegister("FocusGroup3", MsgArg(TargetLayout, "FocusGroupByIndex", "3"))
	r.MustRegister("FocusGroup4", MsgArg(TargetLayout, "FocusGroupByIndex", "4"))

	// Workspace
	r.MustRegister("ToggleSidebar", Msg(TargetWorkspace, "ToggleSidebar"))
	r.MustRegister("RevealInSidebar", Msg(TargetWorkspace, "RevealActiveFile"))
	r.MustRegister("FileTreeSelectPrevious", Msg(TargetWorkspace, "SelectPrevious"))
	r.MustRegister("FileTreeSelectNext", Msg(TargetWorkspace, "SelectNext"))
	r.MustRegister("FileTreeOpenOrToggle", Msg(TargetWorkspace, "OpenOrToggle"))
	r.MustRegister("FileTreeRefresh", Msg(TargetWorkspace, "Refresh"))

	// Escape clears the innermost transient state. The host drops
	// messages that do not apply.
	r.MustRegister("EscapeSmartClear",
		Msg(TargetUI, "CloseModal"),
		Msg(TargetEditor, "CollapseToSingleCursor"),
		Msg(TargetEditor, "ClearSelection"))
}
