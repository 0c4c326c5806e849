package schemagen

import (
	"github.com/usestring/schemagen-mcp/pkg/sample"
)

// groupBuilder accumulates the schema of one group while its samples are
// folded in. Fields are decided at most once; objects are merged every time
// they are seen.
type groupBuilder struct {
	gen     *Generator
	corpus  *sample.Corpus
	group   string
	fields  map[string]FieldConfig
	objects map[string]ObjectConfig
}

func newGroupBuilder(gen *Generator, corpus *sample.Corpus, group string) *groupBuilder {
	return &groupBuilder{
		gen:     gen,
		corpus:  corpus,
		group:   group,
		fields:  make(map[string]FieldConfig),
		objects: make(map[string]ObjectConfig),
	}
}

// addRecord folds one sample record into the builder.
func (b *groupBuilder) addRecord(rec *sample.Value) {
	rec.Each(func(name string, v *sample.Value) {
		if v.IsNull() {
			return
		}
		b.addField(name, v)
		b.addObject(name, v, "")
	})
}

// addField records a top-level field unless an earlier sample already did.
func (b *groupBuilder) addField(name string, v *sample.Value) {
	if _, seen := b.fields[name]; seen {
		return
	}
	cfg, ok := b.detectField(name, v)
	if !ok {
		return
	}
	if name == fieldSlug {
		cfg.Required = true
		cfg.Filter = true
	}
	b.fields[name] = cfg
}

// addObject registers the object shape of v (an object or an array of
// objects) under its composite name and descends into its children.
// Shapes without any recognised field are neither registered nor descended
// into.
func (b *groupBuilder) addObject(name string, v *sample.Value, parent string) {
	if v.IsNull() {
		return
	}
	obj, ok := b.analyzeValue(name, v, parent)
	if !ok || len(obj.Fields) == 0 {
		return
	}

	full := ObjectName(parent, name)
	b.mergeObject(full, obj)

	for _, elem := range objectElements(v) {
		elem.Each(func(key string, child *sample.Value) {
			b.addObject(key, child, full)
		})
	}
}

func (b *groupBuilder) analyzeValue(name string, v *sample.Value, parent string) (ObjectConfig, bool) {
	switch v.Kind {
	case sample.Object:
		return b.analyzeObject(name, v, parent), true
	case sample.Array:
		if len(v.Items) == 0 || !v.Items[0].IsObject() {
			return ObjectConfig{}, false
		}
		return b.analyzeArray(name, v, parent), true
	default:
		return ObjectConfig{}, false
	}
}

// analyzeObject classifies the own fields of one object sample. Object-typed
// children are named after their full path so the namespace stays flat.
func (b *groupBuilder) analyzeObject(name string, obj *sample.Value, parent string) ObjectConfig {
	cfg := ObjectConfig{Fields: make(map[string]FieldConfig)}
	obj.Each(func(key string, child *sample.Value) {
		if child.IsNull() {
			return
		}
		fc, ok := b.detectField(key, child)
		if !ok {
			return
		}
		if fc.Type == TypeObject {
			fc.ObjName = ObjectName(ObjectName(parent, name), key)
		}
		cfg.Fields[key] = fc
	})
	return cfg
}

// analyzeArray merges the shapes of every object element, earliest first.
func (b *groupBuilder) analyzeArray(name string, arr *sample.Value, parent string) ObjectConfig {
	acc := ObjectConfig{Fields: make(map[string]FieldConfig)}
	for _, item := range arr.Items {
		if !item.IsObject() {
			continue
		}
		mergeFields(acc.Fields, b.analyzeObject(name, item, parent).Fields)
	}
	return acc
}

func (b *groupBuilder) mergeObject(full string, obj ObjectConfig) {
	existing, ok := b.objects[full]
	if !ok {
		b.objects[full] = obj
		return
	}
	mergeFields(existing.Fields, obj.Fields)
}

// mergeFields adds the fields of src missing from dst. Existing entries are
// never overwritten.
func mergeFields(dst, src map[string]FieldConfig) {
	for name, fc := range src {
		if _, ok := dst[name]; !ok {
			dst[name] = fc
		}
	}
}

// objectElements returns the objects to descend into: v itself, or the
// object elements of an array.
func objectElements(v *sample.Value) []*sample.Value {
	switch v.Kind {
	case sample.Object:
		return []*sample.Value{v}
	case sample.Array:
		elems := make([]*sample.Value, 0, len(v.Items))
		for _, item := range v.Items {
			if item.IsObject() {
				elems = append(elems, item)
			}
		}
		return elems
	default:
		return nil
	}
}

// build finalizes the group. It returns nil when no field was recorded.
func (b *groupBuilder) build() *GroupConfig {
	if len(b.fields) == 0 {
		return nil
	}

	if name, ok := b.fields[fieldName]; ok {
		if _, hasSlug := b.fields[fieldSlug]; hasSlug {
			name.Required = true
			name.Filter = true
			b.fields[fieldName] = name
		}
	}

	g := &GroupConfig{Fields: b.fields}
	if len(b.objects) > 0 {
		g.Objects = b.objects
	}
	return g
}
