package schemagen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/usestring/schemagen-mcp/pkg/sample"
)

// detectField classifies one non-null sample value of the named field.
// It reports false when the value carries too little information (empty
// arrays, nested arrays) or has an unsupported type (numbers, null).
func (b *groupBuilder) detectField(name string, v *sample.Value) (FieldConfig, bool) {
	cfg := FieldConfig{Type: TypeString}
	if name == fieldID {
		cfg.Required = true
		cfg.Filter = true
	}

	switch v.Kind {
	case sample.Bool:
		cfg.Type = TypeBoolean
	case sample.String:
		cfg.Type = TypeString
	case sample.Array:
		cfg.Array = true
		if len(v.Items) == 0 {
			return cfg, false
		}
		t, ok := elementType(v.Items[0])
		if !ok {
			return cfg, false
		}
		cfg.Type = t
		if t == TypeObject {
			cfg.ObjName = name
		}
	case sample.Object:
		cfg.Type = TypeObject
		cfg.ObjName = name
	default:
		return cfg, false
	}

	if strings.HasSuffix(name, refSuffix) {
		cfg.Type = TypeRef
		cfg.ObjName = ""
		cfg.RefTo = b.gen.resolveRef(b.corpus, name, cfg.Array)
	}
	return cfg, true
}

// elementType classifies an array by its first element only.
func elementType(first *sample.Value) (FieldType, bool) {
	switch {
	case first.IsNull():
		return "", false
	case first.Kind == sample.Bool:
		return TypeBoolean, true
	case first.Kind == sample.String:
		return TypeString, true
	case first.Kind == sample.Object:
		return TypeObject, true
	default:
		return "", false
	}
}

// ObjectName composes the flat name of an object found under parent.
// Objects at the group root keep the field name as is; deeper objects append
// the field name with its first letter upper-cased, e.g.
// ObjectName("authorAddress", "geo") == "authorAddressGeo".
func ObjectName(parent, field string) string {
	if parent == "" {
		return field
	}
	return parent + capitalize(field)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
