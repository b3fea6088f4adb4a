package http

import (
	"path/filepath"
	"strings"
)

// sanitizeInput removes control characters other than tab and newlines, and
// trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}

// sanitizeFilename keeps only the base name of an uploaded file.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(sanitizeInput(name), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "statement.pdf"
	}
	return name
}
