package config

import (
	"errors"
	"os"
	"path/filepath"
)

// EnsureUserConfig writes the embedded defaults to path unless a file is
// already there. It reports whether a new file was created.
func EnsureUserConfig(path string) (created bool, err error) {
	_, err = os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, err
		}
	}
	if err := os.WriteFile(path, defaultYAML, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
