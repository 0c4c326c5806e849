// Package jsonschema exports inferred group schemas as JSON Schema Draft
// 2020-12 documents.
//
// The exported document describes the corpus itself: an object whose
// properties are the groups, each an array of records. Every group and every
// nested object type becomes an entry under $defs, so the flat object
// namespace of a group maps one-to-one onto definitions.
package jsonschema

import (
	"maps"
	"slices"

	"github.com/invopop/jsonschema"

	"github.com/usestring/schemagen-mcp/pkg/schemagen"
)

// Extension keywords carrying schemagen flags that JSON Schema has no
// vocabulary for.
const (
	KeywordRefTo  = "x-ref-to"
	KeywordFilter = "x-filter"
)

// Export converts s into a JSON Schema document. s is not modified.
func Export(s *schemagen.Schema) *jsonschema.Schema {
	root := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Type:        "object",
		Properties:  jsonschema.NewProperties(),
		Definitions: jsonschema.Definitions{},
	}
	if s.Namespace != schemagen.Placeholder && s.Namespace != "" {
		root.ID = jsonschema.ID(s.Namespace)
	}
	if s.TypePrefix != schemagen.Placeholder && s.TypePrefix != "" {
		root.Title = s.TypePrefix
	}

	for _, name := range slices.Sorted(maps.Keys(s.Groups)) {
		group := s.Groups[name]

		root.Properties.Set(name, &jsonschema.Schema{
			Type:  "array",
			Items: &jsonschema.Schema{Ref: DefinitionRef(name, "")},
		})
		root.Definitions[DefinitionName(name, "")] = objectSchema(name, group.Fields)

		for _, objName := range slices.Sorted(maps.Keys(group.Objects)) {
			root.Definitions[DefinitionName(name, objName)] = objectSchema(name, group.Objects[objName].Fields)
		}
	}
	return root
}

// DefinitionName returns the $defs key of a group (objName empty) or of one
// of its object types.
func DefinitionName(group, objName string) string {
	if objName == "" {
		return group
	}
	return group + "." + objName
}

// DefinitionRef returns the $ref pointing at DefinitionName(group, objName).
func DefinitionRef(group, objName string) string {
	return "#/$defs/" + DefinitionName(group, objName)
}

func objectSchema(group string, fields map[string]schemagen.FieldConfig) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		fc := fields[name]
		schema.Properties.Set(name, fieldSchema(group, fc))
		if fc.Required {
			schema.Required = append(schema.Required, name)
		}
	}
	return schema
}

func fieldSchema(group string, fc schemagen.FieldConfig) *jsonschema.Schema {
	var item *jsonschema.Schema
	switch fc.Type {
	case schemagen.TypeString:
		item = &jsonschema.Schema{Type: "string"}
	case schemagen.TypeBoolean:
		item = &jsonschema.Schema{Type: "boolean"}
	case schemagen.TypeObject:
		item = &jsonschema.Schema{Ref: DefinitionRef(group, fc.ObjName)}
	case schemagen.TypeRef:
		// Reference values are usually ids but the samples do not say.
		item = &jsonschema.Schema{
			Description: "Reference to a record of " + fc.RefTo,
			Extras:      map[string]any{KeywordRefTo: fc.RefTo},
		}
	default:
		item = &jsonschema.Schema{}
	}

	out := item
	if fc.Array {
		out = &jsonschema.Schema{Type: "array", Items: item}
	}
	if fc.Filter {
		if out.Extras == nil {
			out.Extras = map[string]any{}
		}
		out.Extras[KeywordFilter] = true
	}
	return out
}
