package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// DisplayList formats a slice for a single table cell: each element's
// default formatting, sorted, joined with newlines. Use it when building
// row values by hand for multi-valued fields.
func DisplayList[T any](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return joinSorted(parts)
}

func joinSorted(parts []string) string {
	sort.Strings(parts)
	return strings.Join(parts, "\n")
}

// renderTable renders a slice of structs as a bordered table. Column
// headers come from the exported field names, overridable with a
// `table:"name"` tag; `table:"-"` hides a field.
func renderTable(w io.Writer, items any) error {
	v := reflect.ValueOf(items)
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("pretty output requires a slice, got %T", items)
	}

	var headers []string
	rows := make([][]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		elem, err := derefStruct(v.Index(i))
		if err != nil {
			return err
		}
		hs, cells := structRow(elem)
		if headers == nil {
			headers = hs
		}
		rows = append(rows, cells)
	}
	if headers == nil {
		headers = headersForType(v.Type().Elem())
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)

	_, err := fmt.Fprintln(w, t)
	return err
}

// derefStruct unwraps interfaces and pointers until a struct value is
// reached.
func derefStruct(v reflect.Value) (reflect.Value, error) {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return v, fmt.Errorf("pretty output: nil row")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return v, fmt.Errorf("pretty output requires struct rows, got %s", v.Type())
	}
	return v, nil
}

func structRow(v reflect.Value) (headers, cells []string) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, ok := columnName(field)
		if !ok {
			continue
		}
		headers = append(headers, name)
		cells = append(cells, formatCell(v.Field(i)))
	}
	return headers, cells
}

func headersForType(t reflect.Type) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	var headers []string
	for i := 0; i < t.NumField(); i++ {
		if name, ok := columnName(t.Field(i)); ok {
			headers = append(headers, name)
		}
	}
	return headers
}

func columnName(field reflect.StructField) (string, bool) {
	if field.PkgPath != "" {
		return "", false // unexported
	}
	tag := field.Tag.Get("table")
	switch tag {
	case "-":
		return "", false
	case "":
		return field.Name, true
	default:
		return tag, true
	}
}

func formatCell(v reflect.Value) string {
	if v.CanInterface() {
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String()
		}
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return fmt.Sprintf("%v", v.Interface())
		}
		parts := make([]string, v.Len())
		for i := 0; i < v.Len(); i++ {
			parts[i] = fmt.Sprint(v.Index(i).Interface())
		}
		return joinSorted(parts)
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
