package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/input/keymap"
)

type yamlDocument struct {
	Bindings []yamlRecord `yaml:"bindings"`
}

type yamlRecord struct {
	Key      yamlString `yaml:"key"`
	Command  yamlString `yaml:"command"`
	When     stringList `yaml:"when"`
	Platform yamlString `yaml:"platform"`
}

// yamlString accepts only string scalars (or null), so "key: 5" or
// "command: true" are errors instead of being coerced.
type yamlString string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *yamlString) UnmarshalYAML(n *yaml.Node) error {
	v, err := scalarString(n)
	if err != nil {
		return err
	}
	*s = yamlString(v)
	return nil
}

func scalarString(n *yaml.Node) (string, error) {
	if n.Kind == yaml.ScalarNode {
		switch n.ShortTag() {
		case "!!str":
			return n.Value, nil
		case "!!null":
			return "", nil
		}
	}
	return "", fmt.Errorf("line %d: expected a string, got %s %q (quote it)", n.Line, n.ShortTag(), n.Value)
}

// stringList accepts a single string or a list of strings.
type stringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *stringList) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		v, err := scalarString(n)
		if err != nil {
			return err
		}
		*s = nil
		if n.ShortTag() != "!!null" {
			*s = stringList{v}
		}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := scalarString(item)
			if err != nil {
				return err
			}
			items = append(items, v)
		}
		*s = items
		return nil
	}
	return fmt.Errorf("line %d: when must be a string or a list of strings", n.Line)
}

var yamlLineRE = regexp.MustCompile(`line (\d+)`)

func parseYAML(data []byte, source string) ([]keymap.Record, error) {
	var doc yamlDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &config.ParseError{
			Path:   source,
			Format: string(FormatYAML),
			Line:   yamlErrorLine(err),
			Err:    err,
		}
	}

	records := make([]keymap.Record, len(doc.Bindings))
	for i, r := range doc.Bindings {
		records[i] = keymap.Record{
			Key:      string(r.Key),
			Command:  string(r.Command),
			When:     []string(r.When),
			Platform: string(r.Platform),
		}
	}
	return records, nil
}

func yamlErrorLine(err error) int {
	m := yamlLineRE.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// MarshalYAML renders records as a keymap document.
func MarshalYAML(records []keymap.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(struct {
		Bindings []keymap.Record `yaml:"bindings"`
	}{records}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
