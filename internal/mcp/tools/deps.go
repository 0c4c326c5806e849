package tools

import (
	"log/slog"

	"github.com/usestring/schemagen-mcp/internal/cache"
	"github.com/usestring/schemagen-mcp/internal/config"
	"github.com/usestring/schemagen-mcp/internal/inference"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Engine *inference.Engine
	Cache  *cache.SchemaCache
	Config *config.Config
	Logger *slog.Logger
}

func (d *Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
