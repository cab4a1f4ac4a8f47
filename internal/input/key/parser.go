package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec       = errors.New("empty key specification")
	ErrInvalidSpec     = errors.New("invalid key specification")
	ErrUnknownModifier = errors.New("unknown modifier")
	ErrUnknownKey      = errors.New("unknown key")
)

// Parse parses one chord segment into a Keystroke.
//
// A segment is zero or more modifier tokens and one key joined by '+':
//
//   - Single character: "a", "1", "@", "+"
//   - Named keys: "enter", "Escape", "pgdn", "numpad_add", "f5"
//   - With modifiers: "ctrl+s", "cmd+shift+z", "alt+left", "ctrl++"
//
// Letter case is not significant; "shift" must be written out. Shift with
// a symbol or digit is rejected: "ctrl+?" rather than "ctrl+shift+/".
// The platform command token "cmd" resolves through p.
func Parse(spec string, p Platform) (Keystroke, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Keystroke{}, ErrEmptySpec
	}
	if strings.ContainsAny(spec, " \t\n") {
		return Keystroke{}, fmt.Errorf("%w: %q contains whitespace", ErrInvalidSpec, spec)
	}
	if spec == "+" {
		return Char('+', ModNone), nil
	}

	var keyPart, modPart string
	switch {
	case strings.HasSuffix(spec, "++"):
		keyPart = "+"
		modPart = strings.TrimSuffix(spec, "++")
	case strings.Contains(spec, "+"):
		i := strings.LastIndexByte(spec, '+')
		modPart, keyPart = spec[:i], spec[i+1:]
	default:
		keyPart = spec
	}

	var mods Modifier
	if modPart != "" {
		for _, tok := range strings.Split(modPart, "+") {
			if tok == "" {
				return Keystroke{}, fmt.Errorf("%w: empty modifier in %q", ErrInvalidSpec, spec)
			}
			m, ok := ModifierFromName(tok, p)
			if !ok {
				return Keystroke{}, fmt.Errorf("%w %q in %q", ErrUnknownModifier, tok, spec)
			}
			mods = mods.With(m)
		}
	}

	if keyPart == "" {
		return Keystroke{}, fmt.Errorf("%w: missing key in %q", ErrInvalidSpec, spec)
	}
	k, err := parseKey(keyPart, mods)
	if err != nil {
		return Keystroke{}, err
	}
	// Shift is part of a symbol ("?" not "shift+/"), as the Normalizer
	// reports it, so shift+<symbol> could never be typed.
	if k.Key == KeyRune && k.Modifiers.HasShift() && !unicode.IsLetter(k.Rune) {
		return Keystroke{}, fmt.Errorf("%w: %q: write the shifted character instead of shift", ErrInvalidSpec, spec)
	}
	return k, nil
}

func parseKey(keyPart string, mods Modifier) (Keystroke, error) {
	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		return Char(r, mods), nil
	}
	if strings.EqualFold(keyPart, "plus") {
		return Char('+', mods), nil
	}
	if k, ok := KeyFromName(keyPart); ok {
		return Named(k, mods), nil
	}
	return Keystroke{}, fmt.Errorf("%w %q", ErrUnknownKey, keyPart)
}

// ParseSequence parses a whitespace-separated chord pattern such as
// "ctrl+k ctrl+c" into a Sequence.
func ParseSequence(s string, p Platform) (Sequence, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, ErrEmptySpec
	}

	seq := make(Sequence, 0, len(fields))
	for _, f := range fields {
		k, err := Parse(f, p)
		if err != nil {
			return nil, err
		}
		seq = append(seq, k)
	}
	return seq, nil
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code and tests.
func MustParse(spec string, p Platform) Keystroke {
	k, err := Parse(spec, p)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return k
}

// MustParseSequence parses a sequence string and panics on error.
func MustParseSequence(s string, p Platform) Sequence {
	seq, err := ParseSequence(s, p)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}

// NormalizeSpec parses and re-formats a chord pattern to its canonical form.
func NormalizeSpec(spec string, p Platform) (string, error) {
	seq, err := ParseSequence(spec, p)
	if err != nil {
		return "", err
	}
	return seq.String(), nil
}
