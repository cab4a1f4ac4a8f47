package keymap

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dshills/keychord/internal/input/key"
)

// CommandSet reports which command ids a host can execute.
type CommandSet interface {
	Known(id CommandID) bool
}

// LoadOptions configures Load.
type LoadOptions struct {
	// Platform resolves the "cmd" alias for unrestricted records.
	// PlatformAny means the running platform.
	Platform key.Platform

	// Commands validates command ids. Nil accepts any non-empty id.
	Commands CommandSet

	// Logger receives merge diagnostics. Nil discards them.
	Logger *slog.Logger
}

type compiled struct {
	binding Binding
	unbind  bool
	raw     Record
	index   int
}

// Load validates default and user records and merges them into a Table.
//
// A user record whose (pattern, condition-set, platform) tuple equals a
// default's replaces it; a user record with command Unbound removes it.
// Any invalid record fails the whole load with a *ConfigError.
func Load(defaults, user []Record, opts LoadOptions) (*Table, error) {
	if opts.Platform == key.PlatformAny {
		opts.Platform = key.CurrentPlatform()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	defs, err := compileSource(defaults, SourceDefault, 0, opts)
	if err != nil {
		return nil, err
	}
	users, err := compileSource(user, SourceUser, len(defaults), opts)
	if err != nil {
		return nil, err
	}

	bindings := merge(defs, users, logger)
	logger.Debug("keymap loaded",
		"cat", "keymap",
		"defaults", len(defaults),
		"user", len(user),
		"bindings", len(bindings))
	return newTable(bindings, opts.Platform), nil
}

func compileSource(records []Record, src Source, base int, opts LoadOptions) ([]compiled, error) {
	out := make([]compiled, 0, len(records))
	seen := make(map[string]int, len(records))

	for i, r := range records {
		c, err := compileRecord(r, src, base+i, opts)
		if err != nil {
			return nil, &ConfigError{Source: src, Index: i, Key: r.Key, Err: err}
		}
		c.index = i

		tk := c.binding.tupleKey()
		if prev, dup := seen[tk]; dup {
			return nil, &ConfigError{
				Source: src,
				Index:  i,
				Key:    r.Key,
				Err:    fmt.Errorf("%w: same pattern, conditions and platform as record %d", ErrDuplicateBinding, prev),
			}
		}
		seen[tk] = i
		out = append(out, c)
	}
	return out, nil
}

func compileRecord(r Record, src Source, order int, opts LoadOptions) (compiled, error) {
	var b Binding
	b.Order = order
	b.Source = src

	if p := strings.TrimSpace(r.Platform); p != "" {
		platform, ok := key.ParsePlatform(p)
		if !ok {
			return compiled{}, fmt.Errorf("%w %q", ErrUnknownPlatform, r.Platform)
		}
		b.Platform = platform
	}

	aliasPlatform := opts.Platform
	if b.Platform != key.PlatformAny {
		aliasPlatform = b.Platform
	}
	pattern, err := key.ParseSequence(r.Key, aliasPlatform)
	if err != nil {
		return compiled{}, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	b.Pattern = pattern

	conds := make([]Condition, 0, len(r.When))
	for _, name := range r.When {
		c, ok := ParseCondition(name)
		if !ok {
			return compiled{}, fmt.Errorf("%w %q", ErrUnknownCondition, name)
		}
		conds = append(conds, c)
	}
	b.When = canonicalConditions(conds)

	cmd := CommandID(strings.TrimSpace(r.Command))
	switch {
	case cmd == "":
		return compiled{}, ErrEmptyCommand
	case cmd == Unbound:
		if src != SourceUser {
			return compiled{}, ErrMisplacedUnbind
		}
		b.Command = Unbound
		return compiled{binding: b, unbind: true, raw: r}, nil
	case opts.Commands != nil && !opts.Commands.Known(cmd):
		return compiled{}, fmt.Errorf("%w %q", ErrUnknownCommand, cmd)
	}
	b.Command = cmd
	return compiled{binding: b, raw: r}, nil
}

// merge layers user bindings over defaults. Overrides take the slot of the
// default they replace; user additions follow the defaults.
func merge(defs, users []compiled, logger *slog.Logger) []Binding {
	out := make([]Binding, 0, len(defs)+len(users))
	removed := make([]bool, 0, len(defs))
	byTuple := make(map[string]int, len(defs))

	for _, d := range defs {
		byTuple[d.binding.tupleKey()] = len(out)
		out = append(out, d.binding)
		removed = append(removed, false)
	}

	for _, u := range users {
		tk := u.binding.tupleKey()
		pos, overrides := byTuple[tk]

		if u.unbind {
			if !overrides {
				logger.Warn("unbind matches no default binding",
					"cat", "keymap",
					"record", u.index,
					"key", u.raw.Key)
				continue
			}
			removed[pos] = true
			continue
		}

		if overrides {
			logger.Debug("user binding overrides default",
				"cat", "keymap",
				"key", u.binding.Pattern.String(),
				"default", out[pos].Command,
				"user", u.binding.Command)
			out[pos] = u.binding
			continue
		}
		out = append(out, u.binding)
		removed = append(removed, false)
	}

	kept := out[:0]
	for i, b := range out {
		if !removed[i] {
			kept = append(kept, b)
		}
	}
	return kept
}
