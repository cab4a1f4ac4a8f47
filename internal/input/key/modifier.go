package key

import "strings"

// Modifier represents a set of logical keyboard modifiers.
// Left and right variants are collapsed before a Modifier is built.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasMeta returns true if Meta is pressed.
func (m Modifier) HasMeta() bool {
	return m.Has(ModMeta)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns the canonical specification form, e.g. "ctrl+alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "ctrl")
	}
	if m.HasAlt() {
		parts = append(parts, "alt")
	}
	if m.HasShift() {
		parts = append(parts, "shift")
	}
	if m.HasMeta() {
		parts = append(parts, "meta")
	}
	return strings.Join(parts, "+")
}

// Display renders the modifiers the way the platform labels them:
// symbols on macOS ("⌃⌥⇧⌘"), "Ctrl+Alt+Shift+Win+" elsewhere.
// The result is meant to be directly followed by a key label.
func (m Modifier) Display(p Platform) string {
	var sb strings.Builder
	if p == PlatformMacOS {
		if m.HasCtrl() {
			sb.WriteString("⌃")
		}
		if m.HasAlt() {
			sb.WriteString("⌥")
		}
		if m.HasShift() {
			sb.WriteString("⇧")
		}
		if m.HasMeta() {
			sb.WriteString("⌘")
		}
		return sb.String()
	}

	if m.HasCtrl() {
		sb.WriteString("Ctrl+")
	}
	if m.HasAlt() {
		sb.WriteString("Alt+")
	}
	if m.HasShift() {
		sb.WriteString("Shift+")
	}
	if m.HasMeta() {
		sb.WriteString("Win+")
	}
	return sb.String()
}

// modifierNameMap maps modifier tokens (lowercase) to Modifier values.
// "cmd" is absent: it depends on the platform, see ModifierFromName.
var modifierNameMap = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
	"meta":    ModMeta,
	"super":   ModMeta,
	"win":     ModMeta,
}

// ModifierFromName returns the Modifier for a token (case-insensitive).
// The platform command token "cmd" (or "command") resolves through p.
func ModifierFromName(name string, p Platform) (Modifier, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "cmd" || name == "command" {
		return p.CommandModifier(), true
	}
	m, ok := modifierNameMap[name]
	return m, ok
}
