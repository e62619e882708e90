// Package session stores and resolves the session token used to authenticate
// against the market server.
package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// SaveToken writes a token to path.
// Creates parent directories if needed with 0700 permissions.
// The file is written with 0600 permissions.
func SaveToken(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token+"\n"), 0600)
}

// LoadToken reads a token from path, trimming surrounding whitespace.
// A missing file returns an error satisfying errors.Is(err, os.ErrNotExist).
func LoadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// DeleteToken removes the token file.
// Returns nil if the file doesn't exist.
func DeleteToken(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
