package key

import (
	"fmt"
	"strings"
)

// Key represents a logical keyboard key.
// For character keys, use KeyRune and set the Rune field of the Keystroke.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeySpace

	// Keypad keys
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPAdd
	KeyKPSubtract
	KeyKPMultiply
	KeyKPDivide
	KeyKPDecimal
	KeyKPEnter

	// KeyRune is used for character keys (letters, numbers, punctuation).
	// The actual character is stored in Keystroke.Rune.
	KeyRune
)

// keyNames holds the canonical lowercase name of every named key.
// The canonical name is what Keystroke.String emits and Parse accepts.
var keyNames = map[Key]string{
	KeyEscape:     "escape",
	KeyEnter:      "enter",
	KeyTab:        "tab",
	KeyBackspace:  "backspace",
	KeyDelete:     "delete",
	KeyInsert:     "insert",
	KeyHome:       "home",
	KeyEnd:        "end",
	KeyPageUp:     "pageup",
	KeyPageDown:   "pagedown",
	KeyUp:         "up",
	KeyDown:       "down",
	KeyLeft:       "left",
	KeyRight:      "right",
	KeyF1:         "f1",
	KeyF2:         "f2",
	KeyF3:         "f3",
	KeyF4:         "f4",
	KeyF5:         "f5",
	KeyF6:         "f6",
	KeyF7:         "f7",
	KeyF8:         "f8",
	KeyF9:         "f9",
	KeyF10:        "f10",
	KeyF11:        "f11",
	KeyF12:        "f12",
	KeySpace:      "space",
	KeyKP0:        "numpad0",
	KeyKP1:        "numpad1",
	KeyKP2:        "numpad2",
	KeyKP3:        "numpad3",
	KeyKP4:        "numpad4",
	KeyKP5:        "numpad5",
	KeyKP6:        "numpad6",
	KeyKP7:        "numpad7",
	KeyKP8:        "numpad8",
	KeyKP9:        "numpad9",
	KeyKPAdd:      "numpad_add",
	KeyKPSubtract: "numpad_subtract",
	KeyKPMultiply: "numpad_multiply",
	KeyKPDivide:   "numpad_divide",
	KeyKPDecimal:  "numpad_decimal",
	KeyKPEnter:    "numpad_enter",
}

// keyDisplay holds the user-facing label of named keys that differs
// from a title-cased canonical name.
var keyDisplay = map[Key]string{
	KeyUp:         "↑",
	KeyDown:       "↓",
	KeyLeft:       "←",
	KeyRight:      "→",
	KeyPageUp:     "PageUp",
	KeyPageDown:   "PageDown",
	KeyKPAdd:      "Num+",
	KeyKPSubtract: "Num-",
	KeyKPMultiply: "Num*",
	KeyKPDivide:   "Num/",
	KeyKPDecimal:  "Num.",
	KeyKPEnter:    "NumEnter",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyRune:
		return "Rune"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
	}
	if k.IsKeypadKey() {
		return "KP" + strings.TrimPrefix(k.Display(), "Num")
	}
	if name, ok := keyNames[k]; ok {
		return strings.ToUpper(name[:1]) + name[1:]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// Name returns the canonical lowercase name used in key specifications.
// It returns "" for KeyNone, KeyRune and unknown values.
func (k Key) Name() string {
	return keyNames[k]
}

// Display returns the label shown to users, e.g. "↑", "PageUp", "Num5".
func (k Key) Display() string {
	if d, ok := keyDisplay[k]; ok {
		return d
	}
	if k >= KeyKP0 && k <= KeyKP9 {
		return fmt.Sprintf("Num%d", k-KeyKP0)
	}
	return k.String()
}

// IsSpecial returns true if this is a special (non-character) key.
func (k Key) IsSpecial() bool {
	return k != KeyNone && k != KeyRune
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}

// IsNavigationKey returns true if this is a navigation key.
func (k Key) IsNavigationKey() bool {
	return k.IsArrowKey() || k == KeyHome || k == KeyEnd || k == KeyPageUp || k == KeyPageDown
}

// IsKeypadKey returns true if this is a keypad key.
func (k Key) IsKeypadKey() bool {
	return k >= KeyKP0 && k <= KeyKPEnter
}

// keyNameMap maps key names and their aliases (lowercase) to Key values.
var keyNameMap = map[string]Key{
	"escape":          KeyEscape,
	"esc":             KeyEscape,
	"enter":           KeyEnter,
	"return":          KeyEnter,
	"tab":             KeyTab,
	"backspace":       KeyBackspace,
	"back":            KeyBackspace,
	"delete":          KeyDelete,
	"del":             KeyDelete,
	"insert":          KeyInsert,
	"ins":             KeyInsert,
	"home":            KeyHome,
	"end":             KeyEnd,
	"pageup":          KeyPageUp,
	"pgup":            KeyPageUp,
	"pagedown":        KeyPageDown,
	"pgdown":          KeyPageDown,
	"pgdn":            KeyPageDown,
	"up":              KeyUp,
	"arrowup":         KeyUp,
	"down":            KeyDown,
	"arrowdown":       KeyDown,
	"left":            KeyLeft,
	"arrowleft":       KeyLeft,
	"right":           KeyRight,
	"arrowright":      KeyRight,
	"f1":              KeyF1,
	"f2":              KeyF2,
	"f3":              KeyF3,
	"f4":              KeyF4,
	"f5":              KeyF5,
	"f6":              KeyF6,
	"f7":              KeyF7,
	"f8":              KeyF8,
	"f9":              KeyF9,
	"f10":             KeyF10,
	"f11":             KeyF11,
	"f12":             KeyF12,
	"space":           KeySpace,
	"numpad_add":      KeyKPAdd,
	"numadd":          KeyKPAdd,
	"numplus":         KeyKPAdd,
	"numpad_subtract": KeyKPSubtract,
	"numsub":          KeyKPSubtract,
	"numminus":        KeyKPSubtract,
	"numpad_multiply": KeyKPMultiply,
	"nummul":          KeyKPMultiply,
	"numpad_divide":   KeyKPDivide,
	"numdiv":          KeyKPDivide,
	"numpad_enter":    KeyKPEnter,
	"numenter":        KeyKPEnter,
	"numpad_decimal":  KeyKPDecimal,
	"numdot":          KeyKPDecimal,
}

func init() {
	for i := Key(0); i <= 9; i++ {
		keyNameMap[fmt.Sprintf("numpad%d", i)] = KeyKP0 + i
		keyNameMap[fmt.Sprintf("num%d", i)] = KeyKP0 + i
	}
}

// KeyFromName returns the Key for a given name (case-insensitive).
// Returns false if the name is not recognized.
func KeyFromName(name string) (Key, bool) {
	k, ok := keyNameMap[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}
