// Package cli implements the schemagen command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/usestring/schemagen-mcp/internal/config"
	"github.com/usestring/schemagen-mcp/internal/logging"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// app carries state shared by all subcommands of one invocation.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	cleanup func() error

	logLevel string
	logFile  string
	workers  int
}

// processError marks failures reading or processing an input file.
type processError struct {
	err error
}

func (e *processError) Error() string { return e.err.Error() }
func (e *processError) Unwrap() error { return e.err }

// NewRootCommand builds the schemagen command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "schemagen",
		Short: "Infer group schemas from sample records",
		Long: `schemagen reads a corpus mapping group names to arrays of sample records
and infers one schema per group: field types, arrays, nested objects and
references between groups. Fields named <x>Ref point at the group named by
the plural of <x>; references that match no group are left for an override
table (--ref-config) to resolve.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.cleanup != nil {
				return a.cleanup()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Logging level: debug, info, warn, error (default: LOG_LEVEL or warn)")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Write logs to this file, rotated (default: LOG_FILE or stderr)")
	root.PersistentFlags().IntVar(&a.workers, "workers", 0, "Groups inferred concurrently (default: SCHEMAGEN_WORKERS or GOMAXPROCS)")

	root.AddCommand(
		newGenerateCommand(a),
		newStatsCommand(a),
		newRefsSchemaCommand(),
		newServeCommand(a),
		newVersionCommand(),
	)
	return root
}

// annotationOwnLogging marks commands that set up logging themselves.
const annotationOwnLogging = "own-logging"

// setup loads the environment configuration, applies flag overrides and
// initializes logging.
func (a *app) setup(cmd *cobra.Command, stderr io.Writer) error {
	flags := cmd.Flags()
	a.cfg = config.Load()
	if !isSet(flags, "log-level") && !envSet("LOG_LEVEL") {
		// Keep the CLI quiet unless asked.
		a.cfg.LogLevel = "warn"
	}
	if isSet(flags, "log-level") {
		a.cfg.LogLevel = a.logLevel
	}
	if isSet(flags, "log-file") {
		a.cfg.LogFile = a.logFile
	}
	if isSet(flags, "workers") {
		if a.workers < 1 {
			return fmt.Errorf("--workers must be at least 1, got %d", a.workers)
		}
		a.cfg.Workers = a.workers
	}

	if cmd.Annotations[annotationOwnLogging] != "" {
		return nil
	}

	logCfg := logging.FromConfig(a.cfg)
	logCfg.Output = stderr
	cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.cleanup = cleanup
	a.logger, _ = logging.WithRunID(slog.Default())
	return nil
}

func isSet(flags *pflag.FlagSet, name string) bool {
	f := flags.Lookup(name)
	return f != nil && f.Changed
}

// Execute runs the command line with args and returns the process exit code.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		var perr *processError
		if errors.As(err, &perr) {
			fmt.Fprintf(stderr, "Error processing file: %v\n", perr.err)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
