package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemagen-mcp/internal/inference"
	"github.com/usestring/schemagen-mcp/internal/logging"
	"github.com/usestring/schemagen-mcp/pkg/fieldstats"
	"github.com/usestring/schemagen-mcp/pkg/types"
)

// FieldStatsInput is the input for schemagen_field_stats.
type FieldStatsInput struct {
	Corpus    string `json:"corpus" jsonschema:"Corpus document: an object mapping each group name to an array of sample records"`
	Format    string `json:"format,omitempty" jsonschema:"Corpus format: json or yaml (default: detected from content)"`
	Select    string `json:"select,omitempty" jsonschema:"jq expression extracting the corpus object from a larger document"`
	MaxGroups int    `json:"max_groups,omitempty" jsonschema:"Max groups to report (default: server limit)"`
}

// ToolFieldStats reports per-path coverage for every group of a corpus.
func ToolFieldStats(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input FieldStatsInput) (*sdkmcp.CallToolResult, types.FieldStatsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input FieldStatsInput) (*sdkmcp.CallToolResult, types.FieldStatsOutput, error) {
		if strings.TrimSpace(input.Corpus) == "" {
			return nil, types.FieldStatsOutput{}, ErrInvalidInput("corpus is required")
		}

		logger, _ := logging.WithRunID(d.logger())
		groups, err := d.Engine.Stats(ctx, inference.Request{
			Corpus: []byte(input.Corpus),
			Format: input.Format,
			Select: input.Select,
		})
		if err != nil {
			return nil, types.FieldStatsOutput{}, WrapInferenceError(err)
		}

		limit := d.Config.MaxStatsGroups
		if input.MaxGroups > 0 && (limit <= 0 || input.MaxGroups < limit) {
			limit = input.MaxGroups
		}

		out := types.FieldStatsOutput{Groups: groups}
		if limit > 0 && len(groups) > limit {
			out.Groups = groups[:limit]
			out.Truncated = true
		}
		out.Hint = statsHint(out.Groups)

		logger.Info("field stats computed", "groups", len(groups), "truncated", out.Truncated)
		return nil, out, nil
	}
}

// statsHint points at the group losing the most samples to dropped fields.
func statsHint(groups []fieldstats.GroupStats) string {
	var worst *fieldstats.GroupStats
	for i := range groups {
		if groups[i].DroppedSamples > 0 && (worst == nil || groups[i].DroppedSamples > worst.DroppedSamples) {
			worst = &groups[i]
		}
	}
	if worst == nil {
		return "Every observed field is represented in the inferred schema."
	}
	return fmt.Sprintf(
		"Group %q has %d of %d samples with values the schema drops (see paths with inferred=false). Numbers, empty arrays and nested arrays are never inferred.",
		worst.Group, worst.DroppedSamples, worst.Samples,
	)
}
