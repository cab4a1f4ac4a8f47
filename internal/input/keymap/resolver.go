package keymap

import (
	"log/slog"
	"time"

	"github.com/dshills/keychord/internal/input/key"
)

// DefaultChordTimeout is how long a partial chord waits for its next key.
const DefaultChordTimeout = 1000 * time.Millisecond

// Kind classifies a Resolution.
type Kind uint8

const (
	// NoMatch means no active binding accepts the keystroke. The host
	// should route the original event to its fallback handling.
	NoMatch Kind = iota

	// AwaitMore means the keystroke extends a chord that needs more keys.
	AwaitMore

	// Matched means a binding completed; Command is set.
	Matched
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case AwaitMore:
		return "AwaitMore"
	case Matched:
		return "Matched"
	default:
		return "NoMatch"
	}
}

// Resolution is the outcome of resolving one keystroke.
type Resolution struct {
	Kind Kind

	// Command is the matched command. Set only for Matched.
	Command CommandID

	// Binding is the binding that completed. Set only for Matched.
	Binding Binding

	// Ambiguous is set when the tie-break had to choose between complete
	// candidates with the same number of conditions.
	Ambiguous bool
}

// String returns e.g. "Matched(SaveFile)".
func (r Resolution) String() string {
	if r.Kind == Matched {
		return "Matched(" + string(r.Command) + ")"
	}
	return r.Kind.String()
}

// ChordState is the caller-owned state of the chord machine: Idle, or
// awaiting more keys after a prefix until a deadline. The zero value is Idle.
// A ChordState is a value; every transition returns a new one.
type ChordState struct {
	prefix   key.Sequence
	deadline time.Time
}

// Idle returns the idle state.
func Idle() ChordState {
	return ChordState{}
}

// IsIdle reports whether no chord is in progress.
func (s ChordState) IsIdle() bool {
	return len(s.prefix) == 0
}

// Prefix returns a copy of the keystrokes typed so far.
func (s ChordState) Prefix() key.Sequence {
	return s.prefix.Clone()
}

// Deadline returns when the pending chord expires. Zero when idle.
func (s ChordState) Deadline() time.Time {
	return s.deadline
}

// Expired reports whether a pending chord has reached its deadline.
func (s ChordState) Expired(now time.Time) bool {
	return !s.IsIdle() && !now.Before(s.deadline)
}

// ChordPolicy decides what happens when a keystroke both completes a
// binding and prefixes a longer chord.
type ChordPolicy uint8

const (
	// ChordWait waits for the longer chord. The shorter binding can never
	// fire while a longer active chord shares its prefix.
	ChordWait ChordPolicy = iota

	// ChordEager fires the complete binding immediately. The longer chord
	// is unreachable while the shorter one is active.
	ChordEager
)

// ParseChordPolicy resolves "wait" or "eager".
func ParseChordPolicy(s string) (ChordPolicy, bool) {
	switch s {
	case "", "wait":
		return ChordWait, true
	case "eager":
		return ChordEager, true
	}
	return ChordWait, false
}

// String returns the configuration name of the policy.
func (p ChordPolicy) String() string {
	if p == ChordEager {
		return "eager"
	}
	return "wait"
}

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	// Timeout is how long a pending chord waits. Zero means
	// DefaultChordTimeout.
	Timeout time.Duration

	// Platform is the running platform for platform-restricted bindings.
	// PlatformAny means the table's platform.
	Platform key.Platform

	Policy ChordPolicy

	// Clock stamps chord deadlines. Nil means SystemClock.
	Clock Clock

	// Logger receives ResolutionAmbiguity diagnostics. Nil discards them.
	Logger *slog.Logger
}

// DefaultResolverConfig returns the default resolver configuration.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		Timeout: DefaultChordTimeout,
		Policy:  ChordWait,
		Clock:   SystemClock{},
	}
}

// Resolver runs the chord state machine over one immutable Table.
// Resolve does no I/O and holds no mutable state, so a Resolver may be
// shared; the ChordState is what each input stream owns.
type Resolver struct {
	table  *Table
	config ResolverConfig
	logger *slog.Logger
}

// NewResolver creates a resolver over t.
func NewResolver(t *Table, config ResolverConfig) *Resolver {
	if config.Timeout <= 0 {
		config.Timeout = DefaultChordTimeout
	}
	if config.Platform == key.PlatformAny {
		config.Platform = t.Platform()
		if config.Platform == key.PlatformAny {
			config.Platform = key.CurrentPlatform()
		}
	}
	if config.Clock == nil {
		config.Clock = SystemClock{}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{table: t, config: config, logger: logger}
}

// WithTable returns a resolver with the same configuration over t.
func (r *Resolver) WithTable(t *Table) *Resolver {
	return &Resolver{table: t, config: r.config, logger: r.logger}
}

// Table returns the resolver's binding table.
func (r *Resolver) Table() *Table {
	return r.table
}

// Config returns the resolver configuration.
func (r *Resolver) Config() ResolverConfig {
	return r.config
}

// Resolve feeds one keystroke to the state machine.
//
// Candidates are bindings that continue the pending prefix with k, apply
// to the running platform and whose conditions all hold in ctx. With no
// candidate the result is NoMatch and the chord is dropped. Under
// ChordWait any candidate needing more keys yields AwaitMore. Otherwise
// the best complete candidate is Matched: more conditions first, then
// user over default, then the later declaration.
//
// Resolve does not check the deadline; callers run CheckTimeout first.
func (r *Resolver) Resolve(k key.Keystroke, ctx Context, state ChordState) (Resolution, ChordState) {
	if r.table == nil {
		return Resolution{Kind: NoMatch}, Idle()
	}

	node := r.table.tree.find(state.prefix)
	if node != nil {
		node = node.children[k]
	}
	if node == nil {
		return Resolution{Kind: NoMatch}, Idle()
	}

	active := func(b *Binding) bool {
		return b.Active(ctx, r.config.Platform)
	}

	var best, runnerUp *Binding
	for _, b := range node.entries {
		if !active(b) {
			continue
		}
		switch {
		case best == nil:
			best = b
		case preferred(b, best):
			runnerUp, best = best, b
		case runnerUp == nil || preferred(b, runnerUp):
			runnerUp = b
		}
	}

	if best != nil && r.config.Policy == ChordEager {
		return r.matched(best, runnerUp), Idle()
	}

	if node.anyBelow(active) {
		next := ChordState{
			prefix:   state.prefix.Append(k),
			deadline: r.config.Clock.Now().Add(r.config.Timeout),
		}
		return Resolution{Kind: AwaitMore}, next
	}

	if best == nil {
		return Resolution{Kind: NoMatch}, Idle()
	}
	return r.matched(best, runnerUp), Idle()
}

func (r *Resolver) matched(best, runnerUp *Binding) Resolution {
	res := Resolution{Kind: Matched, Command: best.Command, Binding: best.clone()}
	if runnerUp != nil && runnerUp.Specificity() == best.Specificity() {
		res.Ambiguous = true
		r.logger.Warn("ResolutionAmbiguity",
			"cat", "keymap",
			"key", best.Pattern.String(),
			"chosen", best.Command,
			"chosen_source", best.Source.String(),
			"chosen_order", best.Order,
			"rejected", runnerUp.Command,
			"rejected_source", runnerUp.Source.String(),
			"rejected_order", runnerUp.Order)
	}
	return res
}

// CheckTimeout abandons a pending chord whose deadline has passed.
// It reports whether the chord was abandoned; no command is produced.
func (r *Resolver) CheckTimeout(state ChordState, now time.Time) (bool, ChordState) {
	if state.Expired(now) {
		return true, Idle()
	}
	return false, state
}

// Abandon drops any pending chord. Hosts call it on explicit cancel
// triggers such as Escape, a pointer click or focus loss.
func Abandon(ChordState) ChordState {
	return Idle()
}

// DescribePending renders the pending prefix for a status line, e.g.
// "Ctrl+K" or "⌘K". It returns "" when idle.
func (r *Resolver) DescribePending(state ChordState) string {
	if state.IsIdle() {
		return ""
	}
	return state.prefix.Display(r.config.Platform)
}
