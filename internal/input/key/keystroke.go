package key

import (
	"fmt"
	"unicode"
)

// Keystroke is a single logical key plus the set of modifiers held with it.
// Keystrokes are comparable: two keystrokes are equal iff key, rune and
// modifier set all match, so they can be used directly as map keys.
type Keystroke struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the lowercase character for KeyRune keystrokes.
	Rune rune

	// Modifiers contains the held modifier keys.
	Modifiers Modifier
}

// Named creates a keystroke for a special key.
func Named(k Key, mods Modifier) Keystroke {
	return Keystroke{Key: k, Modifiers: mods}
}

// Char creates a keystroke for a character. Letters are folded to
// lowercase; case is expressed through ModShift, never through the rune.
// A space character becomes KeySpace.
func Char(r rune, mods Modifier) Keystroke {
	if r == ' ' {
		return Keystroke{Key: KeySpace, Modifiers: mods}
	}
	return Keystroke{Key: KeyRune, Rune: unicode.ToLower(r), Modifiers: mods}
}

// IsRune returns true if this is a character keystroke.
func (k Keystroke) IsRune() bool {
	return k.Key == KeyRune && k.Rune != 0
}

// IsZero reports whether k is the zero keystroke.
func (k Keystroke) IsZero() bool {
	return k == Keystroke{}
}

// Is returns true if k is the given special key without modifiers.
func (k Keystroke) Is(key Key) bool {
	return k.Key == key && k.Modifiers == ModNone
}

// String returns the canonical specification form, which Parse accepts.
// Examples: "s", "ctrl+shift+s", "alt+left", "plus".
func (k Keystroke) String() string {
	name := k.keyName()
	if k.Modifiers == ModNone {
		return name
	}
	return k.Modifiers.String() + "+" + name
}

func (k Keystroke) keyName() string {
	if k.Key == KeyRune {
		switch k.Rune {
		case '+':
			return "plus"
		case 0:
			return ""
		}
		return string(k.Rune)
	}
	if name := k.Key.Name(); name != "" {
		return name
	}
	return k.Key.String()
}

// Display renders the keystroke for the given platform, e.g. "⇧⌘S" on
// macOS and "Ctrl+Shift+S" elsewhere.
func (k Keystroke) Display(p Platform) string {
	var label string
	if k.Key == KeyRune {
		label = string(unicode.ToUpper(k.Rune))
	} else {
		label = k.Key.Display()
	}
	return k.Modifiers.Display(p) + label
}

// GoString implements fmt.GoStringer for debugging.
func (k Keystroke) GoString() string {
	return fmt.Sprintf("Keystroke{Key: %s, Rune: %q, Modifiers: %q}",
		k.Key.String(), k.Rune, k.Modifiers.String())
}
