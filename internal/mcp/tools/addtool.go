package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking that the zero value of its output
// type satisfies the output schema the SDK infers for it.
//
// Panics when the check fails, so a bad output type stops the server at
// startup instead of failing every call.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	if err := CheckOutputSchema[Out](); err != nil {
		panic(fmt.Sprintf("AddTool %q: %v", t.Name, err))
	}
	sdkmcp.AddTool(srv, t, h)
}

// CheckOutputSchema reports whether the zero value of T validates against
// the JSON schema inferred from T.
//
// json.Marshal encodes a nil slice as null while the inferred schema says
// "array", so slice fields need omitzero or a non-nil default. json.RawMessage
// fields are rejected too: the schema sees []byte but the wire carries
// arbitrary JSON. Use any together with types.ToAny instead.
//
// The untyped any output, and types the schema package cannot handle, pass.
func CheckOutputSchema[T any]() error {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return nil
	}
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if paths := rawMessagePaths(rt, "", map[reflect.Type]bool{}); len(paths) > 0 {
		return fmt.Errorf("output type %s holds json.RawMessage at %s; use any and types.ToAny", rt, strings.Join(paths, ", "))
	}

	schema, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return nil
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return nil
	}

	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return nil
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	if err := resolved.Validate(&v); err != nil {
		return fmt.Errorf("zero value of %s fails its schema (%v); JSON %s; add omitzero to slice fields or default them to empty slices", rt, err, data)
	}
	return nil
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// rawMessagePaths lists the dotted paths at which t embeds json.RawMessage.
func rawMessagePaths(t reflect.Type, path string, visiting map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == rawMessageType {
		return []string{path}
	}
	if visiting[t] {
		return nil
	}
	visiting[t] = true
	defer delete(visiting, t)

	join := func(part string) string {
		if path == "" {
			return part
		}
		return path + "." + part
	}

	var out []string
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			if f := t.Field(i); f.IsExported() {
				out = append(out, rawMessagePaths(f.Type, join(f.Name), visiting)...)
			}
		}
	case reflect.Slice, reflect.Array:
		out = rawMessagePaths(t.Elem(), join("[]"), visiting)
	case reflect.Map:
		out = rawMessagePaths(t.Elem(), join("[value]"), visiting)
	}
	return out
}
