// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrEmptyFilename = errors.New("filename is empty after sanitization")
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// SanitizeFilename reduces an uploaded file name to a safe base name using an
// explicit allow-list: ASCII letters, digits, dot, dash and underscore.
// Everything else is dropped, and leading dots are stripped so the result can
// never traverse upward or hide as a dotfile.
func SanitizeFilename(name string) (string, error) {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		}
	}
	s := strings.TrimLeft(b.String(), ".")
	if s == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptyFilename, name)
	}
	return s, nil
}

// BaseNameWithoutExt returns the file name without its extension.
func BaseNameWithoutExt(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[:idx]
	}
	return name
}
