// Package key provides keystroke types, key specification parsing and
// raw event normalization for the keybinding engine.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a keyboard key (special keys, function keys, keypad keys, or runes)
//   - Modifier: A collapsed modifier set (Ctrl, Alt, Shift, Meta)
//   - Keystroke: A single key with its modifiers; comparable and hashable
//   - Sequence: An ordered list of keystrokes; more than one makes a chord
//   - Platform: macOS, Windows or Linux, for the "cmd" alias and display strings
//
// # Key Specifications
//
// A chord segment joins modifier tokens and a key with '+'; segments of a
// chord are separated by whitespace:
//
//   - Simple keys: "a", "1", "enter", "escape", "numpad_add"
//   - With modifiers: "ctrl+s", "alt+left", "cmd+shift+z"
//   - Chords: "ctrl+k ctrl+c"
//
// "cmd" is the platform command key: Meta on macOS and Ctrl elsewhere.
//
// # Normalization
//
// A Normalizer maps RawEvent values from a platform toolkit into Keystrokes,
// collapsing left/right modifier variants and folding letter case, so that
// matching is exact comparison of Keystroke values.
package key
