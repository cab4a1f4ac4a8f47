package input

import (
	"strings"

	"github.com/dshills/keychord/internal/dispatcher"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

// CancelReason records why a pending chord was abandoned.
type CancelReason uint8

const (
	// CancelNone means no chord was abandoned.
	CancelNone CancelReason = iota
	// CancelTimeout means the chord deadline passed.
	CancelTimeout
	// CancelKey means a cancel key (Escape by default) was pressed mid-chord.
	CancelKey
	// CancelReload means the keymap table was replaced mid-chord.
	CancelReload
	// CancelFocus means focus moved away from the window.
	CancelFocus
	// CancelPointer means a mouse click landed while a chord was pending.
	CancelPointer
	// CancelHost means the host cancelled for its own reasons.
	CancelHost
)

var cancelReasonNames = [...]string{
	CancelNone:    "none",
	CancelTimeout: "timeout",
	CancelKey:     "cancel-key",
	CancelReload:  "reload",
	CancelFocus:   "focus-lost",
	CancelPointer: "pointer",
	CancelHost:    "host",
}

// String returns the reason name.
func (r CancelReason) String() string {
	if int(r) < len(cancelReasonNames) {
		return cancelReasonNames[r]
	}
	return "unknown"
}

// Outcome reports what the handler did with one keystroke or tick.
type Outcome struct {
	// Keystroke is the normalized keystroke. It is zero for ticks.
	Keystroke key.Keystroke

	// Resolution is the resolver's answer for Keystroke.
	Resolution keymap.Resolution

	// Messages holds the dispatched messages of a Matched resolution.
	Messages []dispatcher.Message

	// Cancelled is set when a pending chord was abandoned before or
	// instead of resolving Keystroke.
	Cancelled CancelReason

	// Consumed is true when the keystroke belongs to the engine: it
	// matched, extended a chord, cancelled a chord or was taken by a hook.
	// Unconsumed keystrokes fall through to the host, e.g. as typed text.
	Consumed bool
}

// TimedOut reports whether a pending chord expired.
func (o Outcome) TimedOut() bool {
	return o.Cancelled == CancelTimeout
}

// String returns a one-line description used by the REPL and logs.
func (o Outcome) String() string {
	var sb strings.Builder
	if !o.Keystroke.IsZero() {
		sb.WriteString(o.Keystroke.String())
		sb.WriteString(" -> ")
	}
	if o.Cancelled != CancelNone {
		sb.WriteString("cancelled(")
		sb.WriteString(o.Cancelled.String())
		sb.WriteString(")")
		if o.Keystroke.IsZero() || o.Cancelled == CancelKey {
			return sb.String()
		}
		sb.WriteString(", ")
	}
	sb.WriteString(o.Resolution.String())
	for i, m := range o.Messages {
		if i == 0 {
			sb.WriteString(" [")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(m.String())
		if i == len(o.Messages)-1 {
			sb.WriteString("]")
		}
	}
	return sb.String()
}
