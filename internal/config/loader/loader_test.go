package loader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

// mapFS is an in-memory FileSystem.
type mapFS map[string]string

func (m mapFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return []byte(s), nil
}

const yamlKeymap = `
bindings:
  - key: "ctrl+k ctrl+c"
    command: Copy
    when: editor-focused
  - key: "ctrl+alt+up"
    command: AddCursorAbove
    when: [editor-focused, single-cursor]
  - key: "cmd+left"
    command: MoveCursorLineStart
    platform: macos
`

var wantRecords = []keymap.Record{
	{Key: "ctrl+k ctrl+c", Command: "Copy", When: []string{"editor-focused"}},
	{Key: "ctrl+alt+up", Command: "AddCursorAbove", When: []string{"editor-focused", "single-cursor"}},
	{Key: "cmd+left", Command: "MoveCursorLineStart", Platform: "macos"},
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"keymap.yaml", FormatYAML, false},
		{"keymap.YML", FormatYAML, false},
		{"/etc/keymap.toml", FormatTOML, false},
		{"keybindings.json", FormatJSON, false},
		{"keymap.ini", "", true},
		{"keymap", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.wantErr {
			assert.Error(t, err, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestParseYAML(t *testing.T) {
	records, err := Parse([]byte(yamlKeymap), FormatYAML, "test.yaml")
	require.NoError(t, err)
	assert.Equal(t, wantRecords, records)
}

func TestParseYAMLEmpty(t *testing.T) {
	records, err := Parse(nil, FormatYAML, "empty.yaml")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseYAMLSyntaxError(t *testing.T) {
	data := "bindings:\n  - key: \"ctrl+s\"\n    command: [SaveFile\n"

	_, err := Parse([]byte(data), FormatYAML, "bad.yaml")
	require.Error(t, err)

	var pe *config.ParseError
	require.True(t, errors.As(err, &pe), "got %T", err)
	assert.Equal(t, "bad.yaml", pe.Path)
	assert.Equal(t, "yaml", pe.Format)
	assert.Positive(t, pe.Line)
}

func TestParseYAMLBadWhen(t *testing.T) {
	data := "bindings:\n  - key: tab\n    command: InsertTab\n    when: {a: b}\n"

	_, err := Parse([]byte(data), FormatYAML, "bad.yaml")
	assert.True(t, config.IsParseError(err), "got %v", err)
}

func TestParseTOML(t *testing.T) {
	data := `
[[bindings]]
key = "ctrl+k ctrl+c"
command = "Copy"
when = ["editor-focused"]

[[bindings]]
key = "ctrl+alt+up"
command = "AddCursorAbove"
when = ["editor-focused", "single-cursor"]

[[bindings]]
key = "cmd+left"
command = "MoveCursorLineStart"
platform = "macos"
`
	records, err := Parse([]byte(data), FormatTOML, "test.toml")
	require.NoError(t, err)
	assert.Equal(t, wantRecords, records)
}

func TestParseTOMLSingleWhen(t *testing.T) {
	data := `
[[bindings]]
key = "ctrl+k ctrl+c"
command = "Copy"
when = "editor-focused"
`
	records, err := Parse([]byte(data), FormatTOML, "test.toml")
	require.NoError(t, err)
	assert.Equal(t, wantRecords[:1], records)
}

func TestParseRejectsNonStringFields(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"yaml key number", FormatYAML, "bindings:\n  - key: 5\n    command: Copy\n"},
		{"yaml command bool", FormatYAML, "bindings:\n  - key: a\n    command: true\n"},
		{"yaml when entry number", FormatYAML, "bindings:\n  - key: a\n    command: Copy\n    when: [3]\n"},
		{"yaml key list", FormatYAML, "bindings:\n  - key: [a, b]\n    command: Copy\n"},
		{"toml key number", FormatTOML, "[[bindings]]\nkey = 5\ncommand = \"Copy\"\n"},
		{"toml command bool", FormatTOML, "[[bindings]]\nkey = \"a\"\ncommand = true\n"},
		{"toml when number", FormatTOML, "[[bindings]]\nkey = \"a\"\ncommand = \"Copy\"\nwhen = 3\n"},
		{"toml when entry number", FormatTOML, "[[bindings]]\nkey = \"a\"\ncommand = \"Copy\"\nwhen = [3]\n"},
		{"json key number", FormatJSON, `[{"key": 5, "command": "Copy"}]`},
		{"json command bool", FormatJSON, `[{"key": "a", "command": true}]`},
		{"json platform object", FormatJSON, `[{"key": "a", "command": "Copy", "platform": {}}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format, "bad")
			assert.True(t, config.IsParseError(err), "got %v", err)
		})
	}
}

func TestParseYAMLQuotedNumberKey(t *testing.T) {
	records, err := Parse([]byte("bindings:\n  - key: \"1\"\n    command: Copy\n    when: ~\n"), FormatYAML, "ok.yaml")
	require.NoError(t, err)
	assert.Equal(t, []keymap.Record{{Key: "1", Command: "Copy"}}, records)
}

func TestParseTOMLError(t *testing.T) {
	data := "[[bindings]]\nkey = \"ctrl+s\"\ncommand = \n"

	_, err := Parse([]byte(data), FormatTOML, "bad.toml")
	var pe *config.ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.Equal(t, "toml", pe.Format)
	assert.Positive(t, pe.Line)
}

func TestParseJSON(t *testing.T) {
	data := `{"bindings": [
		{"key": "ctrl+k ctrl+c", "command": "Copy", "when": "editor-focused"},
		{"key": "ctrl+alt+up", "command": "AddCursorAbove", "when": ["editor-focused", "single-cursor"]},
		{"key": "cmd+left", "command": "MoveCursorLineStart", "platform": "macos"}
	]}`

	records, err := Parse([]byte(data), FormatJSON, "test.json")
	require.NoError(t, err)
	assert.Equal(t, wantRecords, records)
}

func TestParseJSONBareArray(t *testing.T) {
	data := `[{"key": "ctrl+s", "command": "SaveFile", "when": null}]`

	records, err := Parse([]byte(data), FormatJSON, "keybindings.json")
	require.NoError(t, err)
	assert.Equal(t, []keymap.Record{{Key: "ctrl+s", Command: "SaveFile"}}, records)
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid", `{"bindings": [`},
		{"bindings not array", `{"bindings": {"key": "a"}}`},
		{"entry not object", `{"bindings": ["ctrl+s"]}`},
		{"when number", `{"bindings": [{"key": "a", "command": "Copy", "when": 3}]}`},
		{"when entry number", `{"bindings": [{"key": "a", "command": "Copy", "when": [3]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatJSON, "bad.json")
			assert.True(t, config.IsParseError(err), "got %v", err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	l := NewWithFS(mapFS{"/k/keymap.yaml": yamlKeymap})

	records, err := l.LoadFile("/k/keymap.yaml")
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = l.LoadFile("/k/missing.yaml")
	assert.ErrorIs(t, err, config.ErrFileNotFound)

	_, err = l.LoadFile("/k/keymap.ini")
	assert.Error(t, err)
}

func TestLoadFileFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlKeymap), 0o644))

	t.Setenv("KEYCHORD_TEST_DIR", dir)
	records, err := New().LoadFile("$KEYCHORD_TEST_DIR/keymap.yaml")
	require.NoError(t, err)
	assert.Equal(t, wantRecords, records)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "keymap.yaml"), ExpandPath("~/keymap.yaml"))
	assert.Equal(t, "/abs/keymap.yaml", ExpandPath("/abs/keymap.yaml"))
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	data, err := MarshalYAML(wantRecords)
	require.NoError(t, err)

	records, err := Parse(data, FormatYAML, "roundtrip.yaml")
	require.NoError(t, err)
	assert.Equal(t, wantRecords, records)
}

func TestEmbeddedKeymapMatchesBuiltin(t *testing.T) {
	records, err := Parse(DefaultKeymap(), FormatYAML, "keymap.yaml")
	require.NoError(t, err)
	assert.Equal(t, keymap.BuiltinRecords(), records)
	assert.Equal(t, keymap.BuiltinRecords(), DefaultRecords(nil))
}

func TestLoadTable(t *testing.T) {
	user := `
bindings:
  - key: "ctrl+s"
    command: Unbound
  - key: "ctrl+shift+s"
    command: SaveFile
`
	l := NewWithFS(mapFS{"/u/keymap.yaml": user})
	opts := keymap.LoadOptions{Platform: key.PlatformLinux}

	table, err := l.LoadTable("/u/keymap.yaml", opts)
	require.NoError(t, err)

	b, ok := table.BindingFor("SaveFile", key.PlatformLinux)
	require.True(t, ok)
	assert.Equal(t, "ctrl+shift+s", b.Pattern.String())
	assert.Equal(t, keymap.SourceUser, b.Source)
	assert.Empty(t, table.Lookup(key.MustParseSequence("ctrl+s", key.PlatformLinux)))
}

func TestLoadTableMissingUserFile(t *testing.T) {
	table, err := NewWithFS(mapFS{}).LoadTable("/nowhere/keymap.yaml", keymap.LoadOptions{Platform: key.PlatformLinux})
	require.NoError(t, err)
	assert.Equal(t, len(keymap.BuiltinRecords()), table.Len())
}

func TestLoadTableInvalidUserRecord(t *testing.T) {
	user := "bindings:\n  - key: \"ctrl+s\"\n    command: SaveFile\n    when: hovering\n"
	l := NewWithFS(mapFS{"/u/keymap.yaml": user})

	_, err := l.LoadTable("/u/keymap.yaml", keymap.LoadOptions{Platform: key.PlatformLinux})
	require.Error(t, err)
	assert.True(t, keymap.IsConfigError(err))
	assert.ErrorIs(t, err, keymap.ErrUnknownCondition)
}
