package types

import (
	"github.com/usestring/schemagen-mcp/pkg/fieldstats"
	"github.com/usestring/schemagen-mcp/pkg/schemagen"
)

// InferSchemaOutput is the output of schemagen_infer_schema and
// schemagen_apply_ref_config.
type InferSchemaOutput struct {
	// SchemaKey names the cached schema; pass it to schemagen_apply_ref_config
	// or read schemagen://schema/{key}.
	SchemaKey string `json:"schema_key"`
	// BaseKey names the schema before reference overrides, when overrides were applied.
	BaseKey string `json:"base_key,omitempty"`

	// Schema is the inferred document as JSON.
	Schema any `json:"schema"`
	// SchemaText is the canonical serialized form.
	SchemaText string `json:"schema_text"`

	Summary    schemagen.Summary         `json:"summary"`
	Unresolved []schemagen.UnresolvedRef `json:"unresolved_refs,omitzero"`
	Warnings   []string                  `json:"warnings,omitzero"`

	Cached   bool        `json:"cached"`
	Resource ResourceRef `json:"resource"`
	Hint     string      `json:"hint,omitempty"`
}

// FieldStatsOutput is the output of schemagen_field_stats.
type FieldStatsOutput struct {
	Groups    []fieldstats.GroupStats `json:"groups,omitzero"`
	Truncated bool                    `json:"truncated,omitempty"` // more groups than the configured cap
	Hint      string                  `json:"hint,omitempty"`
}
