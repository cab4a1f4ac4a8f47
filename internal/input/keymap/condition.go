package keymap

import (
	"fmt"
	"strings"
)

// Condition is a named boolean predicate over editor state.
// The set is closed: configuration may only name the constants below.
type Condition uint8

const (
	CondHasSelection Condition = iota + 1
	CondNoSelection
	CondHasMultipleCursors
	CondSingleCursor
	CondModalActive
	CondModalInactive
	CondEditorFocused
	CondSidebarFocused
)

var conditionNames = [...]string{
	CondHasSelection:       "has-selection",
	CondNoSelection:        "no-selection",
	CondHasMultipleCursors: "has-multiple-cursors",
	CondSingleCursor:       "single-cursor",
	CondModalActive:        "modal-active",
	CondModalInactive:      "modal-inactive",
	CondEditorFocused:      "editor-focused",
	CondSidebarFocused:     "sidebar-focused",
}

// conditionAliases maps accepted spellings to conditions. Underscores are
// turned into hyphens before lookup, so "has_selection" works as well.
var conditionAliases = map[string]Condition{
	"selection":        CondHasSelection,
	"multi-cursor":     CondHasMultipleCursors,
	"multiple-cursors": CondHasMultipleCursors,
	"modal":            CondModalActive,
	"no-modal":         CondModalInactive,
	"editor":           CondEditorFocused,
	"sidebar":          CondSidebarFocused,
}

// String returns the canonical configuration name.
func (c Condition) String() string {
	if int(c) < len(conditionNames) && conditionNames[c] != "" {
		return conditionNames[c]
	}
	return fmt.Sprintf("Condition(%d)", c)
}

// ParseCondition resolves a configuration name or alias.
func ParseCondition(name string) (Condition, bool) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for c, n := range conditionNames {
		if n != "" && n == name {
			return Condition(c), true
		}
	}
	c, ok := conditionAliases[name]
	return c, ok
}

// Conditions returns every condition in declaration order.
func Conditions() []Condition {
	out := make([]Condition, 0, len(conditionNames)-1)
	for c := CondHasSelection; int(c) < len(conditionNames); c++ {
		out = append(out, c)
	}
	return out
}

// Context is a snapshot of editor state taken once per resolution.
type Context struct {
	HasSelection       bool
	HasMultipleCursors bool
	ModalActive        bool
	EditorFocused      bool
	SidebarFocused     bool
}

// Holds evaluates a single condition against the snapshot.
func (c Context) Holds(cond Condition) bool {
	switch cond {
	case CondHasSelection:
		return c.HasSelection
	case CondNoSelection:
		return !c.HasSelection
	case CondHasMultipleCursors:
		return c.HasMultipleCursors
	case CondSingleCursor:
		return !c.HasMultipleCursors
	case CondModalActive:
		return c.ModalActive
	case CondModalInactive:
		return !c.ModalActive
	case CondEditorFocused:
		return c.EditorFocused
	case CondSidebarFocused:
		return c.SidebarFocused
	default:
		return false
	}
}

// HoldsAll reports whether every condition holds. An empty list holds.
func (c Context) HoldsAll(conds []Condition) bool {
	for _, cond := range conds {
		if !c.Holds(cond) {
			return false
		}
	}
	return true
}

// ContextFrom builds a Context by setting each named condition true.
// Negative conditions (no-selection, single-cursor, modal-inactive) are
// already the zero value and are accepted for symmetry.
func ContextFrom(names ...string) (Context, error) {
	var ctx Context
	for _, name := range names {
		cond, ok := ParseCondition(name)
		if !ok {
			return Context{}, fmt.Errorf("%w %q", ErrUnknownCondition, name)
		}
		switch cond {
		case CondHasSelection:
			ctx.HasSelection = true
		case CondHasMultipleCursors:
			ctx.HasMultipleCursors = true
		case CondModalActive:
			ctx.ModalActive = true
		case CondEditorFocused:
			ctx.EditorFocused = true
		case CondSidebarFocused:
			ctx.SidebarFocused = true
		}
	}
	return ctx, nil
}
