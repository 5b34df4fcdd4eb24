package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewlab/percolate/internal/version"
)

// versionCmd prints detailed build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print detailed version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Info()
		if outputFormat == "json" || outputFormat == "yaml" {
			return printStructured(cmd.OutOrStdout(), outputFormat, info)
		}
		fmt.Fprint(cmd.OutOrStdout(), info.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
