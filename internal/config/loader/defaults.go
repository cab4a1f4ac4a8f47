package loader

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/log"
)

//go:embed keymap.yaml
var defaultKeymap []byte

// DefaultKeymap returns the embedded default keymap document.
func DefaultKeymap() []byte {
	return defaultKeymap
}

// DefaultRecords parses the embedded default keymap. If that fails the
// compiled-in keymap.BuiltinRecords are returned and the failure is logged.
func DefaultRecords(logger *slog.Logger) []keymap.Record {
	records, err := Parse(defaultKeymap, FormatYAML, "<embedded keymap.yaml>")
	if err != nil || len(records) == 0 {
		log.For(logger, log.CatConfig).Warn("embedded keymap unusable, using builtin bindings", "error", err)
		return keymap.BuiltinRecords()
	}
	return records
}

// LoadTable builds the binding table: the default records with the user
// keymap at userPath layered on top. An empty userPath, or a user file
// that does not exist, leaves the defaults alone.
func (l *Loader) LoadTable(userPath string, opts keymap.LoadOptions) (*keymap.Table, error) {
	defaults := DefaultRecords(opts.Logger)

	var user []keymap.Record
	if userPath != "" {
		records, err := l.LoadFile(userPath)
		switch {
		case errors.Is(err, config.ErrFileNotFound):
			log.For(opts.Logger, log.CatConfig).Info("no user keymap", "path", userPath)
		case err != nil:
			return nil, err
		default:
			user = records
		}
	}

	table, err := keymap.Load(defaults, user, opts)
	if err != nil {
		return nil, fmt.Errorf("loading keymap: %w", err)
	}
	return table, nil
}
