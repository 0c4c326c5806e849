package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleInferSchemaWorkflow serves the schema inference guide.
func HandleInferSchemaWorkflow(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		source := req.Params.Arguments["source"]

		var sb strings.Builder

		// 1. Goal
		sb.WriteString("# Infer a Group Schema\n\n")
		if source != "" {
			fmt.Fprintf(&sb, "Build a schema for the sample records from: %s\n\n", source)
		} else {
			sb.WriteString("Build a schema for a set of sample records.\n\n")
		}

		// 2. Input shape
		sb.WriteString("## Corpus Shape\n\n")
		sb.WriteString("The corpus is one JSON or YAML object. Each key is a group name, each value an array of sample records:\n\n")
		sb.WriteString("```json\n")
		sb.WriteString("{\n")
		sb.WriteString("  \"articles\": [{\"title\": \"Hello\", \"slug\": \"hello\", \"authorRef\": \"a1\"}],\n")
		sb.WriteString("  \"authors\": [{\"id\": \"a1\", \"name\": \"Ada\"}]\n")
		sb.WriteString("}\n")
		sb.WriteString("```\n\n")
		if cfg.MaxCorpusBytes > 0 {
			fmt.Fprintf(&sb, "Corpora larger than %d bytes are rejected. ", cfg.MaxCorpusBytes)
		}
		sb.WriteString("If the records sit inside a larger document, pass `select` with a jq expression (e.g. `.data`) instead of reshaping it yourself.\n\n")

		// 3. Workflow
		sb.WriteString("## Workflow\n\n")
		sb.WriteString("```\n")
		sb.WriteString("# Step 1: Check which fields the schema will keep\n")
		sb.WriteString("schemagen_field_stats(corpus=\"<corpus>\")\n")
		sb.WriteString("\n")
		sb.WriteString("# Step 2: Infer the schema\n")
		sb.WriteString("schemagen_infer_schema(corpus=\"<corpus>\")\n")
		sb.WriteString("\n")
		sb.WriteString("# Step 3: Resolve references listed in unresolved_refs\n")
		sb.WriteString("schemagen_apply_ref_config(schema_key=\"<key>\", ref_config={\"refs\": [{\"from\": \"articles.editorRef\", \"to\": \"authors\"}]})\n")
		sb.WriteString("```\n\n")

		// 4. Rules
		sb.WriteString("## Inference Rules\n\n")
		sb.WriteString("- The first sample that gives a field a usable value decides its type. Later samples only add fields\n")
		sb.WriteString("- Strings become String, booleans become Boolean, objects become Object with a flat `objects` entry\n")
		sb.WriteString("- Arrays take the type of their first element and set `array: true`. Arrays of objects merge every element\n")
		sb.WriteString("- Fields named `<x>Ref` become Ref fields pointing at the group named by the plural of `<x>` (`authorRef` -> `authors`)\n")
		sb.WriteString("- Numbers, nulls, empty arrays and nested arrays are not inferred. Use schemagen_field_stats to see what was dropped\n")
		sb.WriteString("- `slug` and `name` at the record root are flagged `filter` and `required`; `id` is flagged `required`\n\n")

		// 5. Constraints
		sb.WriteString("## Constraints\n\n")
		sb.WriteString("- Do NOT edit schema_text by hand to fix references; use ref_config so the change can be replayed\n")
		sb.WriteString("- Fill in `namespace` and `typePrefix` before using the schema, they are left as placeholders\n\n")

		// 6. Error Recovery
		sb.WriteString("## If Things Go Wrong\n\n")
		sb.WriteString("- **INVALID_INPUT: malformed corpus?** The top level must be an object of arrays of objects\n")
		sb.WriteString("- **A group is missing?** Groups whose records carry no inferable field are skipped\n")
		sb.WriteString("- **A Ref points at the placeholder?** No group matched the pluralized name; add a ref_config entry\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for inferring a group schema from sample records",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
