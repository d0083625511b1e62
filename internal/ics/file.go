package ics

import (
	"os"
	"path/filepath"
	"strings"
)

// FileName returns "{name}_timetable.ics" with path separators in name
// replaced, so the result is always a single path element.
func FileName(name string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	if safe == "." || safe == ".." {
		safe = "_"
	}
	return safe + "_timetable.ics"
}

// WriteFile writes text to dir/FileName(name), replacing any previous file,
// and returns the path written.
func WriteFile(dir, name, text string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(name))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
