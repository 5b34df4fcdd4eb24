package cli

import (
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/brewlab/percolate/internal/io"
	"github.com/brewlab/percolate/internal/pipeline"
	"github.com/brewlab/percolate/internal/subset"
)

// subsetsCmd cleans a survey export and writes the six thematic subsets.
var subsetsCmd = &cobra.Command{
	Use:   "subsets <survey.csv>",
	Short: "Clean a survey CSV and write the six thematic subsets",
	Long: `Subsets runs the cleaning pipeline and then writes one CSV per analysis
theme (consumption, place, home brewing, on the go, dairy, sweetener)
into --out-dir, named <theme>_subset.csv.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig(cmd)
		if err != nil {
			return err
		}
		if dir, _ := cmd.Flags().GetString("out-dir"); dir != "" {
			cfg.OutputDir = dir
		}

		df, _, err := pipeline.Run(args[0], cfg, log.Logger)
		if err != nil {
			return err
		}
		defer df.Release()

		mem := memory.NewGoAllocator()
		options := io.DefaultCSVOptions()
		options.Delimiter = cfg.DelimiterRune()

		written := make(map[string]string, len(subset.All))
		for _, builder := range subset.All {
			sub, err := builder.Build(df, mem)
			if err != nil {
				return err
			}

			path := filepath.Join(cfg.OutputDir, builder.Name+"_subset.csv")
			if err := io.WriteCSVFile(path, sub, options); err != nil {
				sub.Release()
				return err
			}
			sub.Release()

			log.Info().Str("subset", builder.Name).Str("path", path).Msg("subset written")
			written[builder.Name] = path
		}

		return printStructured(cmd.OutOrStdout(), outputFormat, written)
	},
}

func init() {
	addPipelineFlags(subsetsCmd)
	subsetsCmd.Flags().String("out-dir", "", "directory for the subset CSV files (default current directory)")
	rootCmd.AddCommand(subsetsCmd)
}
