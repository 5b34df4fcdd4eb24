package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/brewlab/percolate/internal/pipeline"
)

// cleanCmd runs the full cleaning pipeline on one survey export.
var cleanCmd = &cobra.Command{
	Use:   "clean <survey.csv>",
	Short: "Clean a raw survey CSV into an analysis-ready table",
	Long: `Clean runs the full pipeline: load, drop high-missing columns, rename
headers, encode ordinals, derive features, impute missing values, and
optionally write the cleaned table to --out.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig(cmd)
		if err != nil {
			return err
		}
		if out, _ := cmd.Flags().GetString("out"); out != "" {
			cfg.OutputPath = out
		}

		df, report, err := pipeline.Run(args[0], cfg, log.Logger)
		if err != nil {
			return err
		}
		defer df.Release()

		return printStructured(cmd.OutOrStdout(), outputFormat, report)
	},
}

func init() {
	addPipelineFlags(cleanCmd)
	cleanCmd.Flags().StringP("out", "o", "", "path for the cleaned CSV (omit to skip writing)")
	rootCmd.AddCommand(cleanCmd)
}
