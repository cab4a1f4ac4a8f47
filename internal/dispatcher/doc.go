// Package dispatcher maps matched commands to the ordered abstract
// messages a host applies to its editor model.
//
// A Registry holds the command catalog: each CommandID maps to one or more
// Messages, applied in order. The Dispatcher looks commands up for Matched
// resolutions and rejects NoMatch and AwaitMore with ErrNotMatched, which
// keeps unresolved keys visible to the host's fallback handling.
//
// The Registry also implements keymap.CommandSet, so keymap loading can
// reject unknown command ids:
//
//	registry := dispatcher.DefaultRegistry()
//	table, err := keymap.Load(defaults, user, keymap.LoadOptions{Commands: registry})
//
//	d := dispatcher.New(registry, dispatcher.DefaultConfig())
//	msgs, err := d.Dispatch(res)
package dispatcher
