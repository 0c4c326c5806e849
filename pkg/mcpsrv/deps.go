package mcpsrv

import (
	"log/slog"

	"github.com/usestring/schemagen-mcp/internal/cache"
	"github.com/usestring/schemagen-mcp/internal/config"
	"github.com/usestring/schemagen-mcp/internal/inference"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools:
// the inference pipeline and the schema cache behind schema_key.
type Deps struct {
	Engine *inference.Engine
	Cache  *cache.SchemaCache
	Config *config.Config
	Logger *slog.Logger
}
