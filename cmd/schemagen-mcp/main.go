// Command schemagen-mcp runs the schemagen MCP server on stdio. It is
// shorthand for "schemagen serve" and accepts the same flags.
//
// Configuration is read from the environment (LOG_LEVEL, LOG_FILE,
// SCHEMAGEN_WORKERS, SCHEMA_CACHE_MAX_ITEMS, MAX_CORPUS_BYTES,
// MAX_STATS_GROUPS); flags override it.
package main

import (
	"os"

	"github.com/usestring/schemagen-mcp/internal/cli"
)

func main() {
	args := append([]string{"serve"}, os.Args[1:]...)
	os.Exit(cli.Execute(args, os.Stdin, os.Stdout, os.Stderr))
}
