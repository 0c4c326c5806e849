package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usestring/schemagen-mcp/internal/inference"
	"github.com/usestring/schemagen-mcp/pkg/jsonschema"
)

// Output formats of the generate command.
const (
	emitSchema     = "schema"
	emitJSONSchema = "jsonschema"
)

type generateOptions struct {
	refConfig     string
	selectExpr    string
	format        string
	output        string
	outputDefault bool
	emit          string
}

func newGenerateCommand(a *app) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [flags] <corpus>",
		Short: "Infer a schema from a corpus file",
		Long: `Infer a schema from a corpus file ("-" reads stdin) and print it.

The corpus is a JSON or YAML object mapping each group name to an array of
sample records. References that match no group are reported on stderr and
keep the placeholder value unless --ref-config resolves them.`,
		Example: `  schemagen generate samples.json
  schemagen generate --ref-config refs.yaml --output-default samples.json
  curl -s https://cms.example.com/export | schemagen generate --select .data -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.refConfig, "ref-config", "", "Override table file (JSON or YAML) resolving references")
	cmd.Flags().StringVar(&opts.selectExpr, "select", "", "jq expression extracting the corpus from a larger document")
	cmd.Flags().StringVar(&opts.format, "format", "", "Corpus format: json or yaml (default: from extension or content)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the schema to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.outputDefault, "output-default", false, "Write the schema to <input>_schema.json")
	cmd.Flags().StringVar(&opts.emit, "emit", emitSchema, "Output format: schema (group config) or jsonschema (JSON Schema 2020-12 of the corpus)")
	cmd.MarkFlagsMutuallyExclusive("output", "output-default")

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, input string, opts generateOptions) error {
	if opts.emit != emitSchema && opts.emit != emitJSONSchema {
		return fmt.Errorf("--emit must be %q or %q, got %q", emitSchema, emitJSONSchema, opts.emit)
	}

	cfg, err := loadRefConfig(opts.refConfig)
	if err != nil {
		return err
	}

	data, err := readInput(input, cmd.InOrStdin())
	if err != nil {
		return &processError{err: err}
	}

	engine := inference.New(a.cfg, a.logger)
	res, err := engine.Run(cmd.Context(), inference.Request{
		Corpus:    data,
		Format:    opts.format,
		Path:      input,
		Select:    opts.selectExpr,
		RefConfig: cfg,
	})
	if err != nil {
		return &processError{err: err}
	}

	stderr := cmd.ErrOrStderr()
	for _, w := range res.Warnings {
		fmt.Fprintf(stderr, "warning: ref-config %s\n", w)
	}
	for _, u := range res.Unresolved {
		fmt.Fprintf(stderr, "unresolved reference: %s\n", u.Path())
	}

	text := []byte(res.Text)
	if opts.emit == emitJSONSchema {
		text, err = json.MarshalIndent(jsonschema.Export(res.Schema), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON Schema: %w", err)
		}
		text = append(text, '\n')
	}

	output := opts.output
	if opts.outputDefault {
		output = defaultOutputPath(input)
	}
	if err := writeOutput(output, text, cmd.OutOrStdout()); err != nil {
		return err
	}
	if output != "" {
		fmt.Fprintf(stderr, "Schema written to %s (%d groups, %d unresolved references)\n",
			output, res.Summary.Groups, res.Summary.UnresolvedRefs)
	}
	return nil
}
