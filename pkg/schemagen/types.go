// Package schemagen infers group schemas from sample records.
//
// Given a corpus that maps group names to sample records, it derives one
// GroupConfig per group: field types, array-ness, nested object shapes and
// references to other groups. Types are guessed from sample values, not
// declared. The first sample that gives a field a recognisable shape decides
// that field; later samples can only add fields.
//
// The produced vocabulary is fixed (String, Boolean, Object, Ref). Numbers
// are never inferred and are left out of the schema.
package schemagen

import "maps"

// FieldType is the inferred type of a field.
type FieldType string

const (
	TypeString  FieldType = "String"
	TypeBoolean FieldType = "Boolean"
	TypeObject  FieldType = "Object"
	TypeRef     FieldType = "Ref"
)

// Placeholder marks values the inference could not determine and that an
// operator has to fill in.
const Placeholder = "@@@ TO BE FILLED MANUALLY @@@"

const (
	fieldID   = "id"
	fieldSlug = "slug"
	fieldName = "name"
	refSuffix = "Ref"
)

// FieldConfig describes one inferred field.
type FieldConfig struct {
	Type     FieldType `json:"type"`
	Array    bool      `json:"array,omitempty"`
	Filter   bool      `json:"filter,omitempty"`
	Required bool      `json:"required,omitempty"`
	ObjName  string    `json:"objName,omitempty"` // set iff Type is TypeObject
	RefTo    string    `json:"refTo,omitempty"`   // set iff Type is TypeRef
}

// ObjectConfig describes the shape of one nested object type.
type ObjectConfig struct {
	Fields map[string]FieldConfig `json:"fields"`
}

// GroupConfig is the schema of one group. Objects is a flat namespace: an
// object found at any depth is keyed by the concatenated path from the group
// root (see ObjectName).
type GroupConfig struct {
	Fields  map[string]FieldConfig  `json:"fields"`
	Objects map[string]ObjectConfig `json:"objects,omitempty"`
}

// Schema is the top-level inferred document.
type Schema struct {
	Namespace  string                  `json:"namespace"`
	TypePrefix string                  `json:"typePrefix"`
	Groups     map[string]*GroupConfig `json:"groups"`
}

// NewSchema returns an empty schema with unfilled metadata.
func NewSchema() *Schema {
	return &Schema{
		Namespace:  Placeholder,
		TypePrefix: Placeholder,
		Groups:     make(map[string]*GroupConfig),
	}
}

// Clone returns a deep copy of s.
func (s *Schema) Clone() *Schema {
	out := &Schema{
		Namespace:  s.Namespace,
		TypePrefix: s.TypePrefix,
		Groups:     make(map[string]*GroupConfig, len(s.Groups)),
	}
	for name, g := range s.Groups {
		out.Groups[name] = g.Clone()
	}
	return out
}

// Clone returns a deep copy of g.
func (g *GroupConfig) Clone() *GroupConfig {
	out := &GroupConfig{Fields: maps.Clone(g.Fields)}
	if out.Fields == nil {
		out.Fields = make(map[string]FieldConfig)
	}
	if len(g.Objects) > 0 {
		out.Objects = make(map[string]ObjectConfig, len(g.Objects))
		for name, obj := range g.Objects {
			out.Objects[name] = ObjectConfig{Fields: maps.Clone(obj.Fields)}
		}
	}
	return out
}
