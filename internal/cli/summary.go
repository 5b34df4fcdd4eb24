package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/brewlab/percolate/internal/pipeline"
)

// summaryCmd cleans a survey export and prints a structural summary.
var summaryCmd = &cobra.Command{
	Use:   "summary <survey.csv>",
	Short: "Clean a survey CSV and print a quick summary",
	Long: `Summary runs the cleaning pipeline without persisting the result and
prints the table's dimensions, missing-value profile, column type
counts, and value counts for the derived segment and age-group columns.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig(cmd)
		if err != nil {
			return err
		}
		cfg.OutputPath = ""

		df, _, err := pipeline.Run(args[0], cfg, log.Logger)
		if err != nil {
			return err
		}
		defer df.Release()

		return printStructured(cmd.OutOrStdout(), outputFormat, pipeline.Summarize(df))
	},
}

func init() {
	addPipelineFlags(summaryCmd)
	rootCmd.AddCommand(summaryCmd)
}
