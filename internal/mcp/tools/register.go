package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: schemagen_infer_schema
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemagen_infer_schema",
		Description: "Infer a group schema from sample records. Input corpus maps group names to arrays of sample objects (JSON or YAML). Returns {schema_key, schema, schema_text, summary, unresolved_refs, hint}. Fields ending in Ref become references to the group named by their plural; references that match no group are listed in unresolved_refs. Pass ref_config to resolve them in the same call, or call schemagen_apply_ref_config afterwards with schema_key.",
	}, ToolInferSchema(d))

	// Tool 2: schemagen_apply_ref_config
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemagen_apply_ref_config",
		Description: "Apply a reference override table to a schema returned by schemagen_infer_schema, without re-running inference. Only references still pointing at the placeholder are rewritten. Returns the same shape as schemagen_infer_schema with a new schema_key.",
	}, ToolApplyRefConfig(d))

	// Tool 3: schemagen_field_stats
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemagen_field_stats",
		Description: "Report field coverage per group: for each dotted path (e.g. author.address.city, tags[].name) the observed value kinds, presence count, frequency, detected string format, and whether the inferred schema kept the field. Use this to find fields the schema silently drops (numbers, empty or nested arrays).",
	}, ToolFieldStats(d))
}
