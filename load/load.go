package load

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// UnsupportedFormatError reports a path whose extension does not map to a
// known format.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type %q for %s", e.Ext, e.Path)
}

// ParseError reports malformed content in a supported format.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// File reads the file at path and deserializes it into v, picking the
// format from the extension: .json decodes as JSON, .yaml/.yml as YAML.
// Anything else fails with *UnsupportedFormatError; malformed content
// fails with *ParseError.
func File(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file %s: %w", path, err)
	}
	return decode(path, data, v)
}

// Into is File for callers that prefer a returned value over an out
// parameter.
func Into[T any](path string) (T, error) {
	var v T
	err := File(path, &v)
	return v, err
}

func decode(path string, data []byte, v any) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, v); err != nil {
			return &ParseError{Path: path, Err: err}
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return &ParseError{Path: path, Err: err}
		}
	default:
		return &UnsupportedFormatError{Path: path, Ext: ext}
	}
	return nil
}
