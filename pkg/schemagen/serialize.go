package schemagen

import (
	"bytes"
	"encoding/json"
	"io"
	"maps"
	"slices"
	"strings"
)

const indentUnit = "  "

// Serialize renders s as indented JSON with every mapping sorted by key.
// Each field config sits on a single line with its members in the fixed
// order type, array, filter, required, objName, refTo; false and empty
// members are omitted. Identical schemas always render to identical bytes.
func Serialize(s *Schema) string {
	w := &schemaWriter{}
	w.schema(s)
	return w.String()
}

// WriteTo writes the serialized form of s to out, followed by a newline.
func (s *Schema) WriteTo(out io.Writer) (int64, error) {
	n, err := io.WriteString(out, Serialize(s)+"\n")
	return int64(n), err
}

type schemaWriter struct {
	strings.Builder
}

func (w *schemaWriter) line(depth int, parts ...string) {
	if w.Len() > 0 {
		w.WriteByte('\n')
	}
	w.WriteString(strings.Repeat(indentUnit, depth))
	for _, p := range parts {
		w.WriteString(p)
	}
}

func (w *schemaWriter) schema(s *Schema) {
	w.line(0, "{")
	w.line(1, quote("namespace"), ": ", quote(s.Namespace), ",")
	w.line(1, quote("typePrefix"), ": ", quote(s.TypePrefix), ",")

	names := sortedKeys(s.Groups)
	if len(names) == 0 {
		w.line(1, quote("groups"), ": {}")
	} else {
		w.line(1, quote("groups"), ": {")
		for i, name := range names {
			w.group(2, name, s.Groups[name], i == len(names)-1)
		}
		w.line(1, "}")
	}
	w.line(0, "}")
}

func (w *schemaWriter) group(depth int, name string, g *GroupConfig, last bool) {
	w.line(depth, quote(name), ": {")

	hasObjects := len(g.Objects) > 0
	w.fields(depth+1, g.Fields, !hasObjects)

	if hasObjects {
		w.line(depth+1, quote("objects"), ": {")
		objNames := sortedKeys(g.Objects)
		for i, objName := range objNames {
			w.line(depth+2, quote(objName), ": {")
			w.fields(depth+3, g.Objects[objName].Fields, true)
			w.line(depth+2, "}", separator(i == len(objNames)-1))
		}
		w.line(depth+1, "}")
	}

	w.line(depth, "}", separator(last))
}

func (w *schemaWriter) fields(depth int, fields map[string]FieldConfig, last bool) {
	names := sortedKeys(fields)
	if len(names) == 0 {
		w.line(depth, quote("fields"), ": {}", separator(last))
		return
	}

	w.line(depth, quote("fields"), ": {")
	for i, name := range names {
		w.line(depth+1, quote(name), ": ", inlineField(fields[name]), separator(i == len(names)-1))
	}
	w.line(depth, "}", separator(last))
}

// inlineField renders a field config on one line.
func inlineField(fc FieldConfig) string {
	parts := []string{quote("type") + ": " + quote(string(fc.Type))}
	if fc.Array {
		parts = append(parts, quote("array")+": true")
	}
	if fc.Filter {
		parts = append(parts, quote("filter")+": true")
	}
	if fc.Required {
		parts = append(parts, quote("required")+": true")
	}
	if fc.ObjName != "" {
		parts = append(parts, quote("objName")+": "+quote(fc.ObjName))
	}
	if fc.RefTo != "" {
		parts = append(parts, quote("refTo")+": "+quote(fc.RefTo))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func separator(last bool) string {
	if last {
		return ""
	}
	return ","
}

// quote renders s as a JSON string literal without HTML escaping.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
