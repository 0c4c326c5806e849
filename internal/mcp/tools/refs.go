package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemagen-mcp/internal/logging"
	"github.com/usestring/schemagen-mcp/pkg/types"
)

// ApplyRefConfigInput is the input for schemagen_apply_ref_config.
type ApplyRefConfigInput struct {
	SchemaKey string `json:"schema_key" jsonschema:"schema_key returned by schemagen_infer_schema"`
	RefConfig any    `json:"ref_config" jsonschema:"Override table {refs: [{from: '<group>.<field>', to: '<group>'}]}"`
}

// ToolApplyRefConfig applies an override table to a cached schema without
// re-running inference.
func ToolApplyRefConfig(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ApplyRefConfigInput) (*sdkmcp.CallToolResult, types.InferSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ApplyRefConfigInput) (*sdkmcp.CallToolResult, types.InferSchemaOutput, error) {
		if input.SchemaKey == "" {
			return nil, types.InferSchemaOutput{}, ErrInvalidInput("schema_key is required")
		}
		if input.RefConfig == nil {
			return nil, types.InferSchemaOutput{}, ErrInvalidInput("ref_config is required")
		}

		base, ok := d.Cache.Get(input.SchemaKey)
		if !ok {
			return nil, types.InferSchemaOutput{}, ErrNotFound("schema", input.SchemaKey)
		}
		cfg, err := parseRefConfig(input.RefConfig)
		if err != nil {
			return nil, types.InferSchemaOutput{}, err
		}

		logger, _ := logging.WithRunID(d.logger())
		schemaKey, res, err := d.finish(base, cfg)
		if err != nil {
			return nil, types.InferSchemaOutput{}, WrapInferenceError(err)
		}

		logger.Info("ref-config applied",
			"base_key", base.Key,
			"schema_key", schemaKey,
			"overrides", len(cfg.Refs),
			"unresolved_refs", res.Summary.UnresolvedRefs,
		)

		out, err := buildInferOutput(schemaKey, base, res, true)
		if err != nil {
			return nil, types.InferSchemaOutput{}, WrapInferenceError(err)
		}
		return nil, out, nil
	}
}
