package key

import (
	"strings"
)

// Sequence is an ordered list of keystrokes. A sequence longer than one
// keystroke is a chord, e.g. "ctrl+k ctrl+c".
type Sequence []Keystroke

// Len returns the number of keystrokes in the sequence.
func (s Sequence) Len() int {
	return len(s)
}

// IsEmpty returns true if the sequence has no keystrokes.
func (s Sequence) IsEmpty() bool {
	return len(s) == 0
}

// IsChord returns true if the sequence needs more than one keystroke.
func (s Sequence) IsChord() bool {
	return len(s) > 1
}

// String returns the canonical form, keystrokes joined by single spaces.
func (s Sequence) String() string {
	if len(s) == 0 {
		return ""
	}

	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}

// Display renders the sequence for the platform, segments joined by spaces.
func (s Sequence) Display(p Platform) string {
	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = k.Display(p)
	}
	return strings.Join(parts, " ")
}

// Equals returns true if two sequences are identical.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i, k := range s {
		if k != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with the given prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	return s[:len(prefix)].Equals(prefix)
}

// Clone returns a copy of the sequence that shares no storage with s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Append returns a new sequence with k added; s is left unchanged.
func (s Sequence) Append(k Keystroke) Sequence {
	out := make(Sequence, len(s), len(s)+1)
	copy(out, s)
	return append(out, k)
}
