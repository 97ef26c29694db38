package spec

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyDocument is returned for zero-byte or whitespace-only uploads.
	ErrEmptyDocument = errors.New("document is empty")
	// ErrMalformedDocument is returned when the bytes decode as neither a
	// JSON object nor a YAML mapping.
	ErrMalformedDocument = errors.New("document is not valid JSON or YAML")
	// ErrNotOpenAPI is returned when a well-formed document lacks the
	// minimal OpenAPI shape (an "openapi" or "swagger" key plus "info").
	ErrNotOpenAPI = errors.New("document is not an OpenAPI spec (missing 'openapi' or 'info')")
)

// SniffFormat guesses the document format from the uploaded filename and the
// Content-Type header. The filename extension wins when present. Returns the
// empty Format when neither gives a usable hint.
func SniffFormat(filename, contentType string) Format {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".json"):
		return FormatJSON
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		return FormatYAML
	}
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "json"):
		return FormatJSON
	case strings.Contains(ct, "yaml"):
		return FormatYAML
	}
	return ""
}

// Parse decodes data into a document tree. A non-empty hint pins the decoder;
// otherwise JSON is attempted first and YAML second (YAML accepts most JSON,
// so trying it first would misreport the format). The returned Format is the
// one that actually decoded the bytes.
func Parse(data []byte, hint Format) (map[string]any, Format, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, "", ErrEmptyDocument
	}

	switch hint {
	case FormatJSON:
		doc, err := parseJSON(data)
		return doc, FormatJSON, err
	case FormatYAML:
		doc, err := parseYAML(data)
		return doc, FormatYAML, err
	}

	if doc, err := parseJSON(data); err == nil {
		return doc, FormatJSON, nil
	}
	doc, err := parseYAML(data)
	return doc, FormatYAML, err
}

// ValidateOpenAPI checks the minimal document shape the original upload flow
// required: a version marker plus an info section.
func ValidateOpenAPI(doc map[string]any) error {
	_, hasOpenAPI := doc["openapi"]
	_, hasSwagger := doc["swagger"]
	_, hasInfo := doc["info"]
	if (!hasOpenAPI && !hasSwagger) || !hasInfo {
		return ErrNotOpenAPI
	}
	return nil
}

// CanonicalJSON re-encodes a parsed document tree as JSON. YAML documents
// with non-string mapping keys cannot be represented and are reported as
// malformed.
func CanonicalJSON(doc map[string]any) (string, error) {
	out, err := json.Marshal(doc)
	if err != nil {
		return "", ErrMalformedDocument
	}
	return string(out), nil
}

func parseJSON(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, ErrMalformedDocument
	}
	return doc, nil
}

func parseYAML(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, ErrMalformedDocument
	}
	if doc == nil {
		return nil, ErrEmptyDocument
	}
	return doc, nil
}
