package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemagen-mcp/internal/mcp/tools"
	"github.com/usestring/schemagen-mcp/internal/refconfig"
	"github.com/usestring/schemagen-mcp/pkg/jsonschema"
)

// Resource URI scheme: schemagen://
// Supported URIs:
//   schemagen://schema/{key}
//   schemagen://jsonschema/{key}
//   schemagen://ref-config-schema

const (
	uriScheme          = "schemagen://"
	refConfigSchemaURI = uriScheme + "ref-config-schema"
)

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: tools.SchemaURIPrefix + "{key}",
		Name:        "Inferred Schema",
		Description: "Serialized schema text for a schema_key returned by schemagen_infer_schema or schemagen_apply_ref_config. Same content as schema_text; fetch it to save the schema as a file.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant", "user"},
			Priority: 0.6,
		},
	}, s.handleResourceSchema)

	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: uriScheme + "jsonschema/{key}",
		Name:        "Corpus JSON Schema",
		Description: "JSON Schema (Draft 2020-12) of the corpus described by a cached schema, with one $defs entry per group and object type. Use it to validate new samples.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant", "user"},
			Priority: 0.4,
		},
	}, s.handleResourceJSONSchema)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         refConfigSchemaURI,
		Name:        "Ref Config Schema",
		Description: "JSON Schema of the ref_config override table accepted by schemagen_infer_schema and schemagen_apply_ref_config.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.3,
		},
	}, s.handleResourceRefConfigSchema)
}

// Resource handlers

func (s *Server) handleResourceSchema(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	entry, ok := s.deps.Cache.Get(params["key"])
	if !ok {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}
	return toResourceResult(req.Params.URI, entry.Text), nil
}

func (s *Server) handleResourceJSONSchema(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	entry, ok := s.deps.Cache.Get(params["key"])
	if !ok {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}
	data, err := json.MarshalIndent(jsonschema.Export(entry.Schema), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}
	return toResourceResult(req.Params.URI, string(data)), nil
}

func (s *Server) handleResourceRefConfigSchema(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	data, err := refconfig.JSONSchema()
	if err != nil {
		return nil, fmt.Errorf("reflecting ref-config schema: %w", err)
	}
	return toResourceResult(req.Params.URI, string(data)), nil
}

// Helper functions

// parseResourceURI extracts parameters from a schemagen:// URI.
func parseResourceURI(uri string) (map[string]string, error) {
	if !strings.HasPrefix(uri, uriScheme) {
		return nil, tools.ErrInvalidInput("invalid URI scheme: expected " + uriScheme)
	}

	path := strings.TrimPrefix(uri, uriScheme)
	parts := strings.Split(path, "/")
	if parts[0] == "" {
		return nil, tools.ErrInvalidInput("empty resource path")
	}

	params := make(map[string]string)
	resourceType := parts[0]

	switch resourceType {
	case "schema", "jsonschema":
		if len(parts) != 2 || parts[1] == "" {
			return nil, tools.ErrInvalidInput(resourceType + " URI requires a schema key")
		}
		params["key"] = parts[1]

	case "ref-config-schema":

	default:
		return nil, tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", resourceType))
	}

	return params, nil
}

func toResourceResult(uri, text string) *sdkmcp.ReadResourceResult {
	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     text,
			},
		},
	}
}
