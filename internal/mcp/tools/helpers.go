// Package tools contains MCP tool implementations for schemagen.
package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/usestring/schemagen-mcp/internal/cache"
	"github.com/usestring/schemagen-mcp/internal/inference"
	"github.com/usestring/schemagen-mcp/internal/refconfig"
	"github.com/usestring/schemagen-mcp/pkg/schemagen"
	"github.com/usestring/schemagen-mcp/pkg/types"
)

// MIME type constant.
const MimeJSON = "application/json"

// SchemaURIPrefix prefixes the resource URI of a cached schema.
const SchemaURIPrefix = "schemagen://schema/"

// SchemaURI returns the resource URI of the cached schema key.
func SchemaURI(key string) string {
	return SchemaURIPrefix + key
}

// parseRefConfig validates a ref_config tool argument. A nil argument means
// no overrides.
func parseRefConfig(raw any) (*schemagen.RefConfig, error) {
	if raw == nil {
		return nil, nil
	}
	cfg, err := refconfig.FromValue(raw)
	if err != nil {
		return nil, WrapInferenceError(err)
	}
	return cfg, nil
}

// finish applies cfg to the cached base entry. Applied schemas are cached
// under their own key so they can be read back as resources.
func (d *Deps) finish(base *cache.Entry, cfg *schemagen.RefConfig) (string, *inference.Result, error) {
	res := d.Engine.Finish(base.Schema, cfg)
	if cfg == nil {
		return base.Key, res, nil
	}

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", nil, fmt.Errorf("encoding ref_config: %w", err)
	}
	key := cache.Key([]byte(base.Key), cfgJSON)
	d.Cache.Put(&cache.Entry{Key: key, Schema: res.Schema, Text: res.Text})
	return key, res, nil
}

func buildInferOutput(key string, base *cache.Entry, res *inference.Result, cached bool) (types.InferSchemaOutput, error) {
	schema, err := types.ToAny(res.Schema)
	if err != nil {
		return types.InferSchemaOutput{}, fmt.Errorf("encoding schema: %w", err)
	}

	out := types.InferSchemaOutput{
		SchemaKey:  key,
		Schema:     schema,
		SchemaText: res.Text,
		Summary:    res.Summary,
		Unresolved: res.Unresolved,
		Warnings:   res.Warnings,
		Cached:     cached,
		Resource: types.ResourceRef{
			URI:      SchemaURI(key),
			MIMEType: MimeJSON,
			Hint:     "Serialized schema text, suitable for saving as <name>_schema.json. schemagen://jsonschema/" + key + " serves the JSON Schema of the corpus",
		},
		Hint: inferHint(key, res.Unresolved),
	}
	if key != base.Key {
		out.BaseKey = base.Key
	}
	return out, nil
}

// inferHint suggests the next tool call.
func inferHint(key string, unresolved []schemagen.UnresolvedRef) string {
	if len(unresolved) == 0 {
		return "All references resolved. Fill in namespace and typePrefix before using the schema."
	}

	paths := make([]string, 0, len(unresolved))
	for _, u := range unresolved {
		paths = append(paths, u.Path())
	}
	return fmt.Sprintf(
		"%d reference(s) point at no group: %s. Call schemagen_apply_ref_config(schema_key=%q, ref_config={\"refs\": [{\"from\": %q, \"to\": \"<group>\"}]}) to resolve them.",
		len(unresolved), strings.Join(paths, ", "), key, paths[0],
	)
}
