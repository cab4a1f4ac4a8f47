// Package input connects platform key events to the keybinding engine.
//
// A Handler owns the chord state of one input stream. For each raw event
// it:
//
//   - normalizes the event into a key.Keystroke
//   - swaps in a table installed by Reload, abandoning a pending chord
//   - abandons a chord whose deadline passed
//   - treats a cancel key pressed mid-chord as a cancellation
//   - resolves the keystroke against the table in the current context
//   - dispatches a Matched command into ordered messages
//
// Outcomes that are not Consumed belong to the host, typically as typed
// text.
//
// # Usage
//
//	table, _ := keymap.Load(defaults, user, keymap.LoadOptions{Commands: registry})
//	h := input.NewHandler(table, dispatcher.New(registry, dispatcher.DefaultConfig()),
//	    input.EditorContext(editor), input.DefaultConfig())
//
//	// From the event loop
//	if out, ok := h.HandleKey(ev); ok && !out.Consumed {
//	    editor.InsertText(ev.Rune)
//	}
//
//	// From a timer
//	h.Tick()
package input
