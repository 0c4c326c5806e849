package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/usestring/schemagen-mcp/internal/inference"
)

func newStatsCommand(a *app) *cobra.Command {
	var (
		selectExpr string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "stats [flags] <corpus>",
		Short: "Report field coverage per group as JSON",
		Long: `Report, for each group and each dotted field path, the value kinds seen,
how many samples carry the field and whether the inferred schema keeps it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return &processError{err: err}
			}

			groups, err := inference.New(a.cfg, a.logger).Stats(cmd.Context(), inference.Request{
				Corpus: data,
				Format: format,
				Path:   args[0],
				Select: selectExpr,
			})
			if err != nil {
				return &processError{err: err}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(groups)
		},
	}

	cmd.Flags().StringVar(&selectExpr, "select", "", "jq expression extracting the corpus from a larger document")
	cmd.Flags().StringVar(&format, "format", "", "Corpus format: json or yaml (default: from extension or content)")
	return cmd
}
