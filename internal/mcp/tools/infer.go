package tools

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemagen-mcp/internal/cache"
	"github.com/usestring/schemagen-mcp/internal/inference"
	"github.com/usestring/schemagen-mcp/internal/logging"
	"github.com/usestring/schemagen-mcp/pkg/types"
)

// InferSchemaInput is the input for schemagen_infer_schema.
type InferSchemaInput struct {
	Corpus    string `json:"corpus" jsonschema:"Corpus document: an object mapping each group name to an array of sample records"`
	Format    string `json:"format,omitempty" jsonschema:"Corpus format: json or yaml (default: detected from content)"`
	Select    string `json:"select,omitempty" jsonschema:"jq expression extracting the corpus object from a larger document (e.g. .data)"`
	RefConfig any    `json:"ref_config,omitempty" jsonschema:"Optional override table {refs: [{from: '<group>.<field>', to: '<group>'}]} for references that cannot be resolved by name"`
}

// ToolInferSchema infers a schema from a sample corpus. The base schema is
// cached by the SHA-256 of corpus, format and selection, so repeated calls
// with different ref_config values reuse the inference.
func ToolInferSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, types.InferSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, types.InferSchemaOutput, error) {
		if strings.TrimSpace(input.Corpus) == "" {
			return nil, types.InferSchemaOutput{}, ErrInvalidInput("corpus is required")
		}
		cfg, err := parseRefConfig(input.RefConfig)
		if err != nil {
			return nil, types.InferSchemaOutput{}, err
		}

		if err := ctx.Err(); err != nil {
			return nil, types.InferSchemaOutput{}, WrapInferenceError(err)
		}

		logger, _ := logging.WithRunID(d.logger())
		key := cache.Key([]byte(input.Corpus), []byte(input.Format), []byte(input.Select))

		// Concurrent callers with the same key share this computation, so it
		// must outlive the caller that started it.
		runCtx := context.WithoutCancel(ctx)
		base, cached, err := d.Cache.GetOrCompute(key, func() (*cache.Entry, error) {
			res, err := d.Engine.Run(runCtx, inference.Request{
				Corpus: []byte(input.Corpus),
				Format: input.Format,
				Select: input.Select,
			})
			if err != nil {
				return nil, err
			}
			return &cache.Entry{Key: key, Schema: res.Schema, Text: res.Text}, nil
		})
		if err != nil {
			return nil, types.InferSchemaOutput{}, WrapInferenceError(err)
		}

		schemaKey, res, err := d.finish(base, cfg)
		if err != nil {
			return nil, types.InferSchemaOutput{}, WrapInferenceError(err)
		}

		logger.Info("schema inferred",
			"schema_key", schemaKey,
			"cached", cached,
			"groups", res.Summary.Groups,
			"unresolved_refs", res.Summary.UnresolvedRefs,
		)

		out, err := buildInferOutput(schemaKey, base, res, cached)
		if err != nil {
			return nil, types.InferSchemaOutput{}, WrapInferenceError(err)
		}
		return nil, out, nil
	}
}
