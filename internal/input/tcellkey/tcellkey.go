// Package tcellkey converts tcell key events into raw key events for the
// normalizer.
//
// Terminals cannot tell Ctrl+H, Ctrl+I and Ctrl+M from Backspace, Tab and
// Enter; those control codes are reported as the named keys.
package tcellkey

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/input/key"
)

var namedKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBacktab:    key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// FromEvent converts a tcell key event.
func FromEvent(ev *tcell.EventKey) key.RawEvent {
	return FromTcell(ev.Key(), ev.Rune(), ev.Modifiers())
}

// FromTcell converts the parts of a tcell key event. Events with no
// equivalent come back with KeyNone, which the normalizer drops.
func FromTcell(k tcell.Key, r rune, mods tcell.ModMask) key.RawEvent {
	ev := key.RawEvent{Modifiers: convertMods(mods)}

	if k == tcell.KeyBacktab {
		ev.Modifiers |= key.RawShiftLeft
	}

	if named, ok := namedKeys[k]; ok {
		ev.Key = named
		return ev
	}

	switch {
	case k == tcell.KeyRune:
		ev.Key = key.KeyRune
		ev.Rune = r
	case k == tcell.KeyCtrlSpace:
		ev.Key = key.KeySpace
		ev.Modifiers |= key.RawCtrlLeft
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		ev.Key = key.KeyRune
		ev.Rune = rune('a' + (k - tcell.KeyCtrlA))
		ev.Modifiers |= key.RawCtrlLeft
	}
	return ev
}

func convertMods(mods tcell.ModMask) key.RawModifier {
	var m key.RawModifier
	if mods&tcell.ModShift != 0 {
		m |= key.RawShiftLeft
	}
	if mods&tcell.ModCtrl != 0 {
		m |= key.RawCtrlLeft
	}
	if mods&tcell.ModAlt != 0 {
		m |= key.RawAltLeft
	}
	if mods&tcell.ModMeta != 0 {
		m |= key.RawMetaLeft
	}
	return m
}
