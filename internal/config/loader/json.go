package loader

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/input/keymap"
)

var errInvalidJSON = errors.New("invalid JSON")

func parseJSON(data []byte, source string) ([]keymap.Record, error) {
	fail := func(err error) error {
		return &config.ParseError{Path: source, Format: string(FormatJSON), Err: err}
	}

	if !gjson.ValidBytes(data) {
		return nil, fail(errInvalidJSON)
	}

	root := gjson.ParseBytes(data)
	list := root
	if root.IsObject() {
		list = root.Get("bindings")
		if !list.Exists() {
			return nil, nil
		}
	}
	if !list.IsArray() {
		return nil, fail(errors.New("bindings must be an array"))
	}

	var records []keymap.Record
	var err error
	list.ForEach(func(_, entry gjson.Result) bool {
		var r keymap.Record
		r, err = jsonRecord(entry)
		if err != nil {
			err = fmt.Errorf("binding %d: %w", len(records), err)
			return false
		}
		records = append(records, r)
		return true
	})
	if err != nil {
		return nil, fail(err)
	}
	return records, nil
}

func jsonRecord(entry gjson.Result) (keymap.Record, error) {
	if !entry.IsObject() {
		return keymap.Record{}, errors.New("must be an object")
	}

	var r keymap.Record
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"key", &r.Key},
		{"command", &r.Command},
		{"platform", &r.Platform},
	} {
		v := entry.Get(f.name)
		switch v.Type {
		case gjson.String:
			*f.dst = v.String()
		case gjson.Null:
		default:
			return keymap.Record{}, fmt.Errorf("%s must be a string, got %s", f.name, v.Raw)
		}
	}

	when := entry.Get("when")
	switch {
	case !when.Exists() || when.Type == gjson.Null:
	case when.Type == gjson.String:
		r.When = []string{when.String()}
	case when.IsArray():
		for _, c := range when.Array() {
			if c.Type != gjson.String {
				return keymap.Record{}, errors.New("when entries must be strings")
			}
			r.When = append(r.When, c.String())
		}
	default:
		return keymap.Record{}, errors.New("when must be a string or an array of strings")
	}
	return r, nil
}
