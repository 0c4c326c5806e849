// Package mcpsrv provides an extensible MCP server for schema inference.
//
// This package exposes a high-level API for creating and running an MCP server
// with all builtin schemagen tools, prompts, and resources. Users can extend the
// server with custom tools, prompts, and resources using functional options.
//
// # Basic Usage
//
// Create a server with default configuration:
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools using MCP SDK types directly:
//
//	import mcp "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	type MyInput struct {
//	    SchemaKey string `json:"schema_key"`
//	}
//
//	type MyOutput struct {
//	    Groups int `json:"groups"`
//	}
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithDepsTool(&mcp.Tool{Name: "count_groups", Description: "Count groups"},
//	        func(d *mcpsrv.Deps) func(context.Context, *mcp.CallToolRequest, MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	            return func(ctx context.Context, req *mcp.CallToolRequest, in MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	                entry, _ := d.Cache.Get(in.SchemaKey)
//	                return nil, MyOutput{Groups: len(entry.Schema.Groups)}, nil
//	            }
//	        }),
//	)
//
// # Configuration
//
// Configuration is read from the environment (LOG_LEVEL, LOG_FILE,
// SCHEMAGEN_WORKERS, SCHEMA_CACHE_MAX_ITEMS, MAX_CORPUS_BYTES) and can be
// overridden with options:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/schemagen-mcp.log"),
//	    mcpsrv.WithWorkers(4),
//	)
package mcpsrv
