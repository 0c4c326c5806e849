// Package prompts contains MCP prompt implementations for schemagen.
package prompts

import "github.com/usestring/schemagen-mcp/internal/cache"

// SchemaLookup finds a cached schema by key.
type SchemaLookup interface {
	Get(key string) (*cache.Entry, bool)
}

// Config holds configuration needed by prompts.
type Config struct {
	Schemas        SchemaLookup
	MaxCorpusBytes int
}
