package schemagen

import "strings"

// RefConfig is an override table for references the inference could not
// resolve.
type RefConfig struct {
	Refs []RefOverride `json:"refs" jsonschema:"description=Reference overrides applied in order; later entries win"`
}

// RefOverride points the reference field From ("<group>.<field>") at the
// group To. Entries missing either side are kept but never match.
type RefOverride struct {
	From string `json:"from,omitempty" jsonschema:"description=Reference field as <group>.<field>"`
	To   string `json:"to,omitempty" jsonschema:"description=Target group name"`
}

// ApplyRefConfig returns a copy of s in which every Ref field still pointing
// at Placeholder is redirected according to cfg. Fields that already name a
// target are left untouched, and s itself is never modified.
//
// Fields inside objects are looked up as "<group>.<field>" as well, without
// the object name, so an override cannot tell apart two fields with the same
// name in different objects of one group.
func ApplyRefConfig(s *Schema, cfg *RefConfig) *Schema {
	if cfg == nil {
		return s
	}

	overrides := make(map[string]string, len(cfg.Refs))
	for _, ref := range cfg.Refs {
		overrides[ref.From] = ref.To
	}

	out := s.Clone()
	for groupName, group := range out.Groups {
		applyOverrides(groupName, group.Fields, overrides)
		for _, obj := range group.Objects {
			applyOverrides(groupName, obj.Fields, overrides)
		}
	}
	return out
}

func applyOverrides(groupName string, fields map[string]FieldConfig, overrides map[string]string) {
	for name, fc := range fields {
		if fc.Type != TypeRef || fc.RefTo != Placeholder {
			continue
		}
		to := overrides[groupName+"."+name]
		if to == "" {
			continue
		}
		fc.RefTo = to
		fields[name] = fc
	}
}

// UnresolvedRef locates a Ref field whose target is still Placeholder.
type UnresolvedRef struct {
	Group  string `json:"group"`
	Object string `json:"object,omitempty"` // empty for top-level fields
	Field  string `json:"field"`
}

// Path returns the "<group>.<field>" key an override must use.
func (u UnresolvedRef) Path() string {
	return u.Group + "." + u.Field
}

// Unresolved lists the Ref fields of s still pointing at Placeholder, sorted
// by group, object and field.
func (s *Schema) Unresolved() []UnresolvedRef {
	var out []UnresolvedRef
	for _, groupName := range sortedKeys(s.Groups) {
		group := s.Groups[groupName]
		out = appendUnresolved(out, groupName, "", group.Fields)
		for _, objName := range sortedKeys(group.Objects) {
			out = appendUnresolved(out, groupName, objName, group.Objects[objName].Fields)
		}
	}
	return out
}

func appendUnresolved(out []UnresolvedRef, group, object string, fields map[string]FieldConfig) []UnresolvedRef {
	for _, name := range sortedKeys(fields) {
		fc := fields[name]
		if fc.Type == TypeRef && fc.RefTo == Placeholder {
			out = append(out, UnresolvedRef{Group: group, Object: object, Field: name})
		}
	}
	return out
}

// Summary counts the parts of a schema.
type Summary struct {
	Groups         int `json:"groups"`
	Fields         int `json:"fields"`
	Objects        int `json:"objects"`
	ObjectFields   int `json:"object_fields"`
	References     int `json:"references"`
	UnresolvedRefs int `json:"unresolved_refs"`
}

// Summarize counts the groups, fields, objects and references of s.
func (s *Schema) Summarize() Summary {
	var sum Summary
	countRefs := func(fields map[string]FieldConfig) {
		for _, fc := range fields {
			if fc.Type != TypeRef {
				continue
			}
			sum.References++
			if fc.RefTo == Placeholder {
				sum.UnresolvedRefs++
			}
		}
	}

	sum.Groups = len(s.Groups)
	for _, group := range s.Groups {
		sum.Fields += len(group.Fields)
		countRefs(group.Fields)
		sum.Objects += len(group.Objects)
		for _, obj := range group.Objects {
			sum.ObjectFields += len(obj.Fields)
			countRefs(obj.Fields)
		}
	}
	return sum
}

// ParseRefPath splits "<group>.<field>" at its first dot. It reports false
// when either side is empty.
func ParseRefPath(path string) (group, field string, ok bool) {
	group, field, found := strings.Cut(path, ".")
	return group, field, found && group != "" && field != ""
}
