// Package sample decodes sample documents into ordered value trees.
//
// Object keys keep the order in which they appear in the source document,
// which encoding/json's map[string]any cannot do. Inference depends on that
// order: the first sample (and the first key) that decides a field wins.
package sample

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind is the JSON type of a Value.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

var kindNames = [...]string{
	Null:   "null",
	Bool:   "boolean",
	Number: "number",
	String: "string",
	Array:  "array",
	Object: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is one decoded JSON value.
type Value struct {
	Kind   Kind
	Bool   bool
	Str    string // string contents, or the literal text of a number
	Items  []*Value
	Fields *orderedmap.OrderedMap[string, *Value]
}

// NewObject returns an empty object value.
func NewObject() *Value {
	return &Value{Kind: Object, Fields: orderedmap.New[string, *Value]()}
}

// NewArray returns an array value holding items.
func NewArray(items ...*Value) *Value {
	if items == nil {
		items = []*Value{}
	}
	return &Value{Kind: Array, Items: items}
}

// NewString returns a string value.
func NewString(s string) *Value {
	return &Value{Kind: String, Str: s}
}

// NewBool returns a boolean value.
func NewBool(b bool) *Value {
	return &Value{Kind: Bool, Bool: b}
}

// IsNull reports whether v is absent or JSON null.
func (v *Value) IsNull() bool {
	return v == nil || v.Kind == Null
}

// IsObject reports whether v is a JSON object.
func (v *Value) IsObject() bool {
	return v != nil && v.Kind == Object
}

// Set adds or replaces a key on an object value. An existing key keeps its
// position.
func (v *Value) Set(key string, val *Value) {
	v.Fields.Set(key, val)
}

// Get returns the value stored under key on an object value.
func (v *Value) Get(key string) (*Value, bool) {
	if !v.IsObject() {
		return nil, false
	}
	return v.Fields.Get(key)
}

// Len returns the number of keys of an object or items of an array.
func (v *Value) Len() int {
	switch {
	case v == nil:
		return 0
	case v.Kind == Object:
		return v.Fields.Len()
	case v.Kind == Array:
		return len(v.Items)
	}
	return 0
}

// Each calls fn for every key of an object value in document order.
// It is a no-op for other kinds.
func (v *Value) Each(fn func(key string, val *Value)) {
	if !v.IsObject() {
		return
	}
	for pair := v.Fields.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Keys returns the keys of an object value in document order.
func (v *Value) Keys() []string {
	keys := make([]string, 0, v.Len())
	v.Each(func(key string, _ *Value) {
		keys = append(keys, key)
	})
	return keys
}

// Interface converts v into the plain Go representation used by
// encoding/json and gojq (map[string]any, []any, string, bool, nil and
// int or float64 for numbers). Key order is lost.
func (v *Value) Interface() any {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case Bool:
		return v.Bool
	case Number:
		if i, err := strconv.Atoi(v.Str); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(v.Str, 64); err == nil {
			return f
		}
		return v.Str
	case String:
		return v.Str
	case Array:
		out := make([]any, len(v.Items))
		for i, item := range v.Items {
			out[i] = item.Interface()
		}
		return out
	case Object:
		out := make(map[string]any, v.Fields.Len())
		v.Each(func(key string, val *Value) {
			out[key] = val.Interface()
		})
		return out
	default:
		return nil
	}
}

// FromAny converts a plain Go value (as produced by encoding/json, yaml or
// gojq) into a Value. Map keys are sorted lexicographically since Go maps
// carry no order.
func FromAny(x any) (*Value, error) {
	switch val := x.(type) {
	case nil:
		return &Value{Kind: Null}, nil
	case bool:
		return NewBool(val), nil
	case string:
		return NewString(val), nil
	case int:
		return &Value{Kind: Number, Str: strconv.Itoa(val)}, nil
	case int64:
		return &Value{Kind: Number, Str: strconv.FormatInt(val, 10)}, nil
	case float64:
		return &Value{Kind: Number, Str: strconv.FormatFloat(val, 'g', -1, 64)}, nil
	case *big.Int:
		return &Value{Kind: Number, Str: val.String()}, nil
	case json.Number:
		return &Value{Kind: Number, Str: val.String()}, nil
	case []any:
		items := make([]*Value, 0, len(val))
		for i, item := range val {
			child, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			items = append(items, child)
		}
		return NewArray(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		obj := NewObject()
		for _, k := range keys {
			child, err := FromAny(val[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			obj.Set(k, child)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", x)
	}
}
