package output

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// Format selects the serialization applied to structured command output.
// It implements pflag.Value, so it binds directly to a cobra flag:
//
//	f := output.Pretty
//	cmd.Flags().VarP(&f, "output", "o", "Output format (pretty, json, yaml)")
type Format string

const (
	Pretty Format = "pretty"
	JSON   Format = "json"
	YAML   Format = "yaml"
)

// UnsupportedFormatError reports a mode outside the supported set. It is
// a caller error: a CLI that binds Format as a flag can never produce it.
type UnsupportedFormatError struct {
	Mode string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported output format %q (want pretty, json or yaml)", e.Mode)
}

// String implements pflag.Value.
func (f *Format) String() string { return string(*f) }

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	switch Format(s) {
	case Pretty, JSON, YAML:
		*f = Format(s)
		return nil
	default:
		return &UnsupportedFormatError{Mode: s}
	}
}

// Type implements pflag.Value.
func (f *Format) Type() string { return "format" }

// List writes a slice of items to w in the selected format. Pretty
// renders a bordered table with one row per item; rows must be structs
// or pointers to structs.
func (f Format) List(w io.Writer, items any) error {
	switch f {
	case Pretty:
		return renderTable(w, items)
	case JSON:
		return writeJSON(w, items)
	case YAML:
		return writeYAML(w, items)
	default:
		return &UnsupportedFormatError{Mode: string(f)}
	}
}

// Item writes a single item to w. Pretty renders a one-row table; JSON
// and YAML serialize the bare value, so single-item output is not wrapped
// in an array.
func (f Format) Item(w io.Writer, v any) error {
	switch f {
	case Pretty:
		return renderTable(w, []any{v})
	case JSON:
		return writeJSON(w, v)
	case YAML:
		return writeYAML(w, v)
	default:
		return &UnsupportedFormatError{Mode: string(f)}
	}
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func writeYAML(w io.Writer, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	_, err = w.Write(out)
	return err
}
