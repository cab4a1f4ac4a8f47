package loader

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/input/keymap"
)

// tomlDocument mirrors:
//
//	[[bindings]]
//	key = "ctrl+k ctrl+c"
//	command = "ToggleComment"
//	when = ["editor-focused"]   # or when = "editor-focused"
type tomlDocument struct {
	Bindings []tomlRecord `toml:"bindings"`
}

// tomlRecord keeps raw values so types can be checked per field.
type tomlRecord struct {
	Key      any `toml:"key"`
	Command  any `toml:"command"`
	When     any `toml:"when"`
	Platform any `toml:"platform"`
}

func (r tomlRecord) record() (keymap.Record, error) {
	var out keymap.Record
	var err error
	if out.Key, err = fieldString("key", r.Key); err != nil {
		return keymap.Record{}, err
	}
	if out.Command, err = fieldString("command", r.Command); err != nil {
		return keymap.Record{}, err
	}
	if out.When, err = fieldStrings("when", r.When); err != nil {
		return keymap.Record{}, err
	}
	if out.Platform, err = fieldString("platform", r.Platform); err != nil {
		return keymap.Record{}, err
	}
	return out, nil
}

func parseTOML(data []byte, source string) ([]keymap.Record, error) {
	fail := func(err error) *config.ParseError {
		return &config.ParseError{Path: source, Format: string(FormatTOML), Err: err}
	}

	var doc tomlDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		pe := fail(err)
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, _ = de.Position()
		}
		return nil, pe
	}

	if len(doc.Bindings) == 0 {
		return nil, nil
	}
	records := make([]keymap.Record, len(doc.Bindings))
	for i, r := range doc.Bindings {
		rec, err := r.record()
		if err != nil {
			return nil, fail(fmt.Errorf("binding %d: %w", i, err))
		}
		records[i] = rec
	}
	return records, nil
}
