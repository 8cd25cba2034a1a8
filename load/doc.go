// Package load deserializes typed values from files, inferring the
// format from the path's extension. JSON (.json) and YAML (.yaml, .yml)
// are supported; anything else fails with *UnsupportedFormatError, and
// malformed content with *ParseError.
//
// Validated adds an optional JSON-schema check on the raw document before
// decoding, useful for configuration files with a published schema.
package load
