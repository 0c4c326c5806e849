package cli

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/usestring/schemagen-mcp/internal/refconfig"
	"github.com/usestring/schemagen-mcp/pkg/mcpsrv"
)

func newRefsSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refs-schema",
		Short: "Print the JSON Schema of the --ref-config override table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := refconfig.JSONSchema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long: `Run the MCP server on stdio. Configuration comes from the environment
(SCHEMAGEN_WORKERS, SCHEMA_CACHE_MAX_ITEMS, MAX_CORPUS_BYTES, LOG_*).`,
		Annotations: map[string]string{annotationOwnLogging: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			opts := []mcpsrv.Option{mcpsrv.WithWorkers(a.cfg.Workers)}
			if isSet(cmd.Flags(), "log-level") {
				opts = append(opts, mcpsrv.WithLogLevel(a.logLevel))
			}
			if isSet(cmd.Flags(), "log-file") {
				opts = append(opts, mcpsrv.WithLogFile(a.logFile))
			}
			server, err := mcpsrv.NewServer(opts...)
			if err != nil {
				return err
			}
			defer server.Close()

			slog.Info("starting schemagen MCP server on stdio")
			if err := server.Run(ctx); err != nil && ctx.Err() == nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "schemagen %s\n", Version)
		},
	}
}
