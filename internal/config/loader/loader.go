// Package loader reads keymap files into binding records.
//
// A keymap file holds a "bindings" list of records with key, command and
// optional when and platform fields. YAML (.yaml, .yml), TOML (.toml,
// as [[bindings]] tables) and JSON (.json) are supported; a JSON file may
// also be a bare array of records.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/input/keymap"
)

// Format is a keymap file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported keymap format %q", filepath.Ext(path))
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// Loader reads keymap files.
type Loader struct {
	fs FileSystem
}

// New creates a loader over the OS file system.
func New() *Loader {
	return &Loader{fs: DefaultFS()}
}

// NewWithFS creates a loader over fsys.
func NewWithFS(fsys FileSystem) *Loader {
	return &Loader{fs: fsys}
}

// LoadFile reads the records of the keymap file at path. A missing file
// yields an error wrapping config.ErrFileNotFound.
func (l *Loader) LoadFile(path string) ([]keymap.Record, error) {
	path = ExpandPath(path)
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", config.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading keymap %s: %w", path, err)
	}
	return Parse(data, format, path)
}

// Parse decodes keymap data in the given format. source names the data in
// errors.
func Parse(data []byte, format Format, source string) ([]keymap.Record, error) {
	switch format {
	case FormatYAML:
		return parseYAML(data, source)
	case FormatTOML:
		return parseTOML(data, source)
	case FormatJSON:
		return parseJSON(data, source)
	}
	return nil, fmt.Errorf("unsupported keymap format %q", format)
}

// ExpandPath expands a leading "~/" and environment variables in path.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
