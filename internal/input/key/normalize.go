package key

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// RawModifier is the modifier state exactly as a platform toolkit reports it,
// with left and right variants kept apart.
type RawModifier uint16

const (
	RawShiftLeft RawModifier = 1 << iota
	RawShiftRight
	RawCtrlLeft
	RawCtrlRight
	RawAltLeft
	RawAltRight
	RawMetaLeft
	RawMetaRight

	// RawCommand is set by toolkits that report an abstract "command"
	// modifier instead of a physical one.
	RawCommand
)

const (
	RawShift = RawShiftLeft | RawShiftRight
	RawCtrl  = RawCtrlLeft | RawCtrlRight
	RawAlt   = RawAltLeft | RawAltRight
	RawMeta  = RawMetaLeft | RawMetaRight
)

// RawEvent is a key-down event before normalization.
type RawEvent struct {
	// Key is the logical key. KeyRune means Rune carries the character;
	// KeyNone with no Rune is a pure modifier press.
	Key Key

	// Rune is the logical character for KeyRune events, unaffected by Ctrl.
	Rune rune

	// Physical is the physical key when the toolkit reports one. It is
	// consulted only when the logical key is unknown (keypad keys).
	Physical Key

	Modifiers RawModifier

	// Repeat is set for auto-repeat events generated by a held key.
	Repeat bool
}

// NormalizerConfig configures a Normalizer.
type NormalizerConfig struct {
	// Platform decides what RawCommand maps to.
	Platform Platform

	// SuppressRepeat drops auto-repeat events.
	SuppressRepeat bool

	// CaseImpliesShift adds ModShift to upper-case letters. Terminals
	// report "A" without a Shift flag, desktop toolkits do not.
	CaseImpliesShift bool
}

// Normalizer turns raw key events into canonical Keystrokes.
// A Normalizer is not safe for concurrent use.
type Normalizer struct {
	config NormalizerConfig
	fold   cases.Caser
}

// NewNormalizer creates a normalizer.
func NewNormalizer(config NormalizerConfig) *Normalizer {
	if config.Platform == PlatformAny {
		config.Platform = CurrentPlatform()
	}
	return &Normalizer{
		config: config,
		fold:   cases.Fold(),
	}
}

// Platform returns the platform the normalizer maps modifiers for.
func (n *Normalizer) Platform() Platform {
	return n.config.Platform
}

// Normalize converts ev into a Keystroke. It returns false for pure
// modifier presses, suppressed repeats and events that carry neither a
// known key nor a printable character.
//
// Letters are folded to lowercase. For other printable characters Shift is
// part of the character ("?" rather than "shift+/") and is dropped.
func (n *Normalizer) Normalize(ev RawEvent) (Keystroke, bool) {
	if ev.Repeat && n.config.SuppressRepeat {
		return Keystroke{}, false
	}

	mods := n.collapse(ev.Modifiers)

	switch {
	case ev.Key == KeyRune || (ev.Key == KeyNone && ev.Rune != 0):
		return n.normalizeRune(ev.Rune, mods)
	case ev.Key != KeyNone && ev.Key < KeyRune:
		return Named(ev.Key, mods), true
	case ev.Physical.IsKeypadKey():
		return Named(ev.Physical, mods), true
	}
	return Keystroke{}, false
}

func (n *Normalizer) normalizeRune(r rune, mods Modifier) (Keystroke, bool) {
	if r == 0 || r == utf8.RuneError || !unicode.IsPrint(r) {
		return Keystroke{}, false
	}
	if r == ' ' {
		return Named(KeySpace, mods), true
	}

	if !unicode.IsLetter(r) {
		return Keystroke{Key: KeyRune, Rune: r, Modifiers: mods.Without(ModShift)}, true
	}

	if unicode.IsUpper(r) && n.config.CaseImpliesShift {
		mods = mods.With(ModShift)
	}
	folded := n.fold.String(string(r))
	if fr, size := utf8.DecodeRuneInString(folded); size == len(folded) {
		r = fr
	} else {
		r = unicode.ToLower(r)
	}
	return Keystroke{Key: KeyRune, Rune: r, Modifiers: mods}, true
}

// collapse merges left/right variants and resolves RawCommand.
func (n *Normalizer) collapse(raw RawModifier) Modifier {
	var m Modifier
	if raw&RawShift != 0 {
		m = m.With(ModShift)
	}
	if raw&RawCtrl != 0 {
		m = m.With(ModCtrl)
	}
	if raw&RawAlt != 0 {
		m = m.With(ModAlt)
	}
	if raw&RawMeta != 0 {
		m = m.With(ModMeta)
	}
	if raw&RawCommand != 0 {
		m = m.With(n.config.Platform.CommandModifier())
	}
	return m
}
