package keymap

import (
	"slices"
	"strconv"
	"strings"

	"github.com/dshills/keychord/internal/input/key"
)

// CommandID names an abstract application command, e.g. "SaveFile".
type CommandID string

// Unbound is the reserved command that removes a default binding when it
// appears in a user record.
const Unbound CommandID = "Unbound"

// Source records which configuration layer declared a binding.
type Source uint8

const (
	SourceDefault Source = iota
	SourceUser
)

// String returns the configuration name of the source.
func (s Source) String() string {
	if s == SourceUser {
		return "user"
	}
	return "default"
}

// Binding maps a keystroke pattern to a command under optional conditions.
type Binding struct {
	// Pattern is the keystroke sequence; more than one keystroke is a chord.
	Pattern key.Sequence

	// Command is executed when the pattern completes.
	Command CommandID

	// When lists conditions that must all hold. Sorted and free of
	// duplicates; empty means unconditional.
	When []Condition

	// Platform restricts the binding to one platform. PlatformAny applies
	// everywhere.
	Platform key.Platform

	// Order is the declaration index across defaults followed by user
	// records. It is stable across merging.
	Order int

	Source Source
}

// Specificity is the number of conditions; more specific bindings win
// when several complete at once.
func (b Binding) Specificity() int {
	return len(b.When)
}

// Active reports whether the binding can fire on the running platform
// under ctx.
func (b Binding) Active(ctx Context, running key.Platform) bool {
	return b.Platform.Allows(running) && ctx.HoldsAll(b.When)
}

// String renders the binding for logs, e.g.
// `ctrl+k ctrl+c -> ToggleComment [has-selection] (user#12)`.
func (b Binding) String() string {
	var sb strings.Builder
	sb.WriteString(b.Pattern.String())
	sb.WriteString(" -> ")
	sb.WriteString(string(b.Command))
	if len(b.When) > 0 {
		sb.WriteString(" [")
		sb.WriteString(joinConditions(b.When))
		sb.WriteString("]")
	}
	if b.Platform != key.PlatformAny {
		sb.WriteString(" @")
		sb.WriteString(b.Platform.String())
	}
	sb.WriteString(" (")
	sb.WriteString(b.Source.String())
	sb.WriteString("#")
	sb.WriteString(strconv.Itoa(b.Order))
	sb.WriteString(")")
	return sb.String()
}

// clone returns a copy that shares no storage with b.
func (b *Binding) clone() Binding {
	out := *b
	out.Pattern = b.Pattern.Clone()
	out.When = slices.Clone(b.When)
	return out
}

// Record converts the binding back to its configuration form. The key is
// written canonically, so "cmd" appears as the modifier it resolved to.
func (b Binding) Record() Record {
	r := Record{Key: b.Pattern.String(), Command: string(b.Command)}
	for _, c := range b.When {
		r.When = append(r.When, c.String())
	}
	if b.Platform != key.PlatformAny {
		r.Platform = b.Platform.String()
	}
	return r
}

// tupleKey identifies the (pattern, condition-set, platform) tuple used for
// override and duplicate detection.
func (b Binding) tupleKey() string {
	return b.Pattern.String() + "|" + joinConditions(b.When) + "|" + b.Platform.String()
}

// preferred reports whether a beats b under the completion tie-break:
// more conditions, then user over default, then later declaration.
func preferred(a, b *Binding) bool {
	if a.Specificity() != b.Specificity() {
		return a.Specificity() > b.Specificity()
	}
	if a.Source != b.Source {
		return a.Source == SourceUser
	}
	return a.Order > b.Order
}

// canonicalConditions sorts and de-duplicates a condition list.
func canonicalConditions(conds []Condition) []Condition {
	if len(conds) == 0 {
		return nil
	}
	out := slices.Clone(conds)
	slices.Sort(out)
	return slices.Compact(out)
}

func joinConditions(conds []Condition) string {
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}
