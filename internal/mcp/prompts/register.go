package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	// Prompt 1: Infer a schema from sample data
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "infer_schema_workflow",
		Description: "RECOMMENDED: Build a group schema from sample records. Start here - explains the corpus shape, the inference rules and the follow-up calls for unresolved references.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "source",
				Description: "Where the samples come from (e.g., 'exported CMS content', './fixtures/*.json')",
				Required:    false,
			},
		},
	}, HandleInferSchemaWorkflow(cfg))

	// Prompt 2: Resolve references of a cached schema
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "resolve_references",
		Description: "Walk through the unresolved references of an inferred schema and draft a ref_config override table for them.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "schema_key",
				Description: "schema_key returned by schemagen_infer_schema",
				Required:    true,
			},
		},
	}, HandleResolveReferences(cfg))
}
