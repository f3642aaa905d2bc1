// Package loader converts uploaded files into plain text for ingestion.
// Parsers are registered per file extension; anything unregistered is
// treated as plain text.
package loader

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ParseFunc converts raw file bytes into plain text.
type ParseFunc func(data []byte) (string, error)

var registry = map[string]ParseFunc{}

func init() {
	Register(ParseText, ".txt", ".md", ".text")
	Register(ParseCSV, ".csv")
	Register(ParsePDF, ".pdf")
	Register(ParseDOCX, ".docx")
	Register(ParseDOC, ".doc")
	Register(ParseXLSX, ".xlsx")
}

// Register binds a parser to one or more file extensions. Extensions are
// matched case-insensitively and must include the leading dot.
func Register(fn ParseFunc, extensions ...string) {
	for _, ext := range extensions {
		registry[strings.ToLower(ext)] = fn
	}
}

// SupportedExtensions returns the registered extensions in sorted order.
func SupportedExtensions() []string {
	extensions := make([]string, 0, len(registry))
	for ext := range registry {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}

// Parse converts the file content to plain text based on the filename's
// extension. Unregistered extensions fall back to the plain-text parser, so
// logs, source files and other text uploads ingest without registration.
func Parse(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	fn, ok := registry[ext]
	if !ok {
		fn = ParseText
	}

	text, err := fn(data)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return text, nil
}
