// Package refconfig loads and validates reference override tables.
//
// The JSON Schema of a table is reflected from schemagen.RefConfig and every
// document is checked against it before decoding, so a malformed table is
// rejected with path-qualified messages instead of being half applied.
package refconfig

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	reflectschema "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/usestring/schemagen-mcp/internal/schema"
	"github.com/usestring/schemagen-mcp/pkg/contenttype"
	"github.com/usestring/schemagen-mcp/pkg/sample"
	"github.com/usestring/schemagen-mcp/pkg/schemagen"
	"github.com/usestring/schemagen-mcp/pkg/types"
)

const resourceName = "ref-config.json"

var reflected = sync.OnceValue(func() *reflectschema.Schema {
	r := &reflectschema.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	s := r.Reflect(&schemagen.RefConfig{})
	s.Title = "Reference overrides"
	return s
})

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := types.ToAny(reflected())
	if err != nil {
		return nil, fmt.Errorf("converting ref-config schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceName, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	s, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("compiling ref-config schema: %w", err)
	}
	return s, nil
})

// JSONSchema returns the indented JSON Schema every override table must
// satisfy.
func JSONSchema() ([]byte, error) {
	return json.MarshalIndent(reflected(), "", "  ")
}

// Load decodes an override table in the given format (sniffed when Unknown)
// and validates it. Validation failures wrap schemagen.ErrInvalidRefConfig.
func Load(data []byte, category contenttype.Category) (*schemagen.RefConfig, error) {
	root, err := sample.Decode(data, category)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schemagen.ErrInvalidRefConfig, err)
	}
	return FromValue(root.Interface())
}

// FromValue validates an already decoded override table (as produced by
// encoding/json or an MCP argument) and converts it.
func FromValue(doc any) (*schemagen.RefConfig, error) {
	// Round-trip so numbers reach the validator as float64 whatever decoded them.
	plain, err := types.ToAny(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schemagen.ErrInvalidRefConfig, err)
	}
	if msgs := Validate(plain); len(msgs) > 0 {
		return nil, fmt.Errorf("%w: %s", schemagen.ErrInvalidRefConfig, strings.Join(msgs, "; "))
	}

	b, err := json.Marshal(plain)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schemagen.ErrInvalidRefConfig, err)
	}
	var cfg schemagen.RefConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", schemagen.ErrInvalidRefConfig, err)
	}
	return &cfg, nil
}

// Validate checks doc against the override table schema and returns sorted,
// human-readable messages. An empty result means doc is valid.
func Validate(doc any) []string {
	s, err := compiled()
	if err != nil {
		return []string{err.Error()}
	}
	if err := s.Validate(doc); err != nil {
		return schema.Messages(err)
	}
	return nil
}

// Lint reports entries that pass validation but can never match: a "from"
// that is not "<group>.<field>", or an empty "to".
func Lint(cfg *schemagen.RefConfig) []string {
	if cfg == nil {
		return nil
	}
	var warnings []string
	for i, ref := range cfg.Refs {
		if _, _, ok := schemagen.ParseRefPath(ref.From); !ok {
			warnings = append(warnings, fmt.Sprintf("refs[%d]: from %q is not <group>.<field>", i, ref.From))
		}
		if ref.To == "" {
			warnings = append(warnings, fmt.Sprintf("refs[%d]: empty to, entry ignored", i))
		}
	}
	return warnings
}
