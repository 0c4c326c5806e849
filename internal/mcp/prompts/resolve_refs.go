package prompts

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemagen-mcp/pkg/schemagen"
)

// HandleResolveReferences lists the unresolved references of a cached schema
// alongside the groups they could point at.
func HandleResolveReferences(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		key := req.Params.Arguments["schema_key"]
		if key == "" {
			return nil, fmt.Errorf("schema_key is required")
		}
		if cfg.Schemas == nil {
			return nil, fmt.Errorf("no schema cache configured")
		}
		entry, ok := cfg.Schemas.Get(key)
		if !ok {
			return nil, fmt.Errorf("schema %q not found; run schemagen_infer_schema again", key)
		}

		unresolved := entry.Schema.Unresolved()
		groups := slices.Sorted(maps.Keys(entry.Schema.Groups))

		var sb strings.Builder
		sb.WriteString("# Resolve Schema References\n\n")

		if len(unresolved) == 0 {
			fmt.Fprintf(&sb, "Schema `%s` has no unresolved references. Nothing to do.\n", key)
			return result(sb.String()), nil
		}

		fmt.Fprintf(&sb, "Schema `%s` has %d reference(s) that matched no group by name.\n\n", key, len(unresolved))

		sb.WriteString("## Unresolved References\n\n")
		sb.WriteString("| Path | Group | Object | Field |\n")
		sb.WriteString("|------|-------|--------|-------|\n")
		for _, u := range unresolved {
			object := u.Object
			if object == "" {
				object = "-"
			}
			fmt.Fprintf(&sb, "| `%s` | %s | %s | %s |\n", u.Path(), u.Group, object, u.Field)
		}

		sb.WriteString("\n## Candidate Groups\n\n")
		for _, g := range groups {
			fmt.Fprintf(&sb, "- `%s`\n", g)
		}

		sb.WriteString("\n## Draft Override Table\n\n")
		sb.WriteString("Replace each `<group>` with one of the candidate groups, or drop the entry to leave it unresolved:\n\n")
		sb.WriteString("```json\n{\"refs\": [\n")
		paths := draftPaths(unresolved)
		for i, u := range paths {
			sep := ","
			if i == len(paths)-1 {
				sep = ""
			}
			fmt.Fprintf(&sb, "  {\"from\": %q, \"to\": %q}%s\n", u.Path(), guessGroup(u.Field, groups), sep)
		}
		sb.WriteString("]}\n```\n\n")

		sb.WriteString("## Next Step\n\n")
		fmt.Fprintf(&sb, "schemagen_apply_ref_config(schema_key=%q, ref_config=<table above>)\n\n", key)
		sb.WriteString("Only references still pointing at the placeholder are rewritten. ")
		sb.WriteString("Overrides for fields inside nested objects use the same `<group>.<field>` path as root fields.\n")

		return result(sb.String()), nil
	}
}

// draftPaths keeps the first reference of each override path. Fields with
// the same name in several objects of a group share one path.
func draftPaths(unresolved []schemagen.UnresolvedRef) []schemagen.UnresolvedRef {
	seen := make(map[string]bool, len(unresolved))
	var out []schemagen.UnresolvedRef
	for _, u := range unresolved {
		if seen[u.Path()] {
			continue
		}
		seen[u.Path()] = true
		out = append(out, u)
	}
	return out
}

// guessGroup returns the first group whose name starts with the stem of a
// Ref field, or "<group>" when none does.
func guessGroup(field string, groups []string) string {
	stem := strings.ToLower(strings.TrimSuffix(field, "Ref"))
	if stem != "" {
		for _, g := range groups {
			if strings.HasPrefix(strings.ToLower(g), stem) {
				return g
			}
		}
	}
	return "<group>"
}

func result(text string) *sdkmcp.GetPromptResult {
	return &sdkmcp.GetPromptResult{
		Description: "Guide for resolving schema references",
		Messages: []*sdkmcp.PromptMessage{
			{
				Role:    "user",
				Content: &sdkmcp.TextContent{Text: text},
			},
		},
	}
}
