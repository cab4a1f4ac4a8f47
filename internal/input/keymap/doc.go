// Package keymap resolves keystrokes to commands through a declarative,
// overridable binding table.
//
// # Key Concepts
//
// Record: One binding as written in configuration (key, command, when,
// platform).
//
// Binding: A validated record. It maps a keystroke pattern to a command
// under optional conditions and an optional platform restriction.
//
// Table: An immutable set of bindings built by Load from default records
// with optional user records layered on top.
//
// Resolver: The chord state machine. Resolve maps a keystroke, a Context
// snapshot and the caller's ChordState to a Resolution and the next
// ChordState.
//
// # Binding Precedence
//
// User records replace defaults with the same (pattern, conditions,
// platform) tuple, and a user record bound to "Unbound" removes the
// default. When several active bindings complete on the same keystroke:
//  1. More conditions win
//  2. User bindings beat defaults
//  3. The later declaration wins
//
// # Chords
//
// A keystroke that could continue an active longer pattern yields
// AwaitMore and a pending ChordState with a deadline. The host calls
// CheckTimeout before each key and on idle ticks; Abandon drops a chord on
// explicit cancellation.
//
// # Usage
//
//	table, err := keymap.Load(defaults, user, keymap.LoadOptions{Commands: registry})
//	if err != nil {
//	    // keep the previous table, report err
//	}
//	r := keymap.NewResolver(table, keymap.DefaultResolverConfig())
//
//	state := keymap.Idle()
//	var res keymap.Resolution
//	res, state = r.Resolve(k, provider.ContextNow(), state)
//	switch res.Kind {
//	case keymap.Matched:
//	    // dispatch res.Command
//	case keymap.AwaitMore:
//	    // show r.DescribePending(state)
//	case keymap.NoMatch:
//	    // route the original event to the fallback handler
//	}
package keymap
