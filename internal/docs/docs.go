// Package docs loads raw text documents from the configured texts directory.
package docs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNotFound means no document with the given name exists.
	ErrNotFound = errors.New("document not found")
	// ErrDecode means the document exists but is not valid UTF-8 text.
	ErrDecode = errors.New("document is not valid UTF-8 text")
	// ErrInvalidName means the name would escape the texts directory.
	ErrInvalidName = errors.New("invalid document name")
)

// Source reads documents by name from a single directory.
type Source struct {
	dir string
}

func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// Load returns the document's text. Errors are categorized so callers can
// report not-found, decode, and other failures distinctly.
func (s *Source) Load(name string) (string, error) {
	name = strings.TrimSpace(name)

	if name == "" || filepath.IsAbs(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}

		return "", fmt.Errorf("read document %s: %w", name, err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrDecode, name)
	}

	return string(data), nil
}
