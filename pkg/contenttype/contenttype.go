// Package contenttype classifies sample and override documents by format.
package contenttype

import (
	"bytes"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Category represents a broad document format classification.
type Category string

const (
	JSON    Category = "json"
	YAML    Category = "yaml"
	Unknown Category = "unknown"
)

// Classify returns the category for a format hint. The hint may be a short
// name ("json", "yaml", "yml") or a content-type header value; parameters
// (charset etc.) are stripped with mime.ParseMediaType before matching.
// Returns Unknown for empty or unrecognized hints.
func Classify(format string) Category {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return Unknown
	}

	switch format {
	case "json":
		return JSON
	case "yaml", "yml":
		return YAML
	}

	mediaType, _, err := mime.ParseMediaType(format)
	if err != nil {
		mediaType = format
	}

	// JSON: application/json, application/vnd.*+json, any containing "json"
	if strings.Contains(mediaType, "json") {
		return JSON
	}

	// YAML: application/yaml, text/yaml, application/x-yaml
	if strings.Contains(mediaType, "yaml") {
		return YAML
	}

	return Unknown
}

// FromPath classifies a document by its file extension.
func FromPath(path string) Category {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	default:
		return Unknown
	}
}

// Sniff guesses the category from the document bytes. Documents starting
// with '{' or '[' are JSON; other valid UTF-8 text is treated as YAML.
// Returns Unknown for empty or non-UTF-8 data.
func Sniff(data []byte) Category {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if len(trimmed) == 0 || !utf8.Valid(trimmed) {
		return Unknown
	}
	switch trimmed[0] {
	case '{', '[':
		return JSON
	}
	return YAML
}

// Resolve picks the category from the first informative source: an explicit
// format hint, then the file path, then the content itself.
func Resolve(format, path string, data []byte) Category {
	if c := Classify(format); c != Unknown {
		return c
	}
	if c := FromPath(path); c != Unknown {
		return c
	}
	return Sniff(data)
}
