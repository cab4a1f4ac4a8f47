package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func formatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
