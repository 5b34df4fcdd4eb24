package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brewlab/percolate/internal/config"
	"github.com/brewlab/percolate/internal/version"
)

var (
	// Global flags
	cfgFile      string
	logLevel     string
	outputFormat string
	quiet        bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "percolate",
	Short: "Percolate - coffee survey cleaning and transformation",
	Long: `Percolate cleans a raw coffee survey CSV export into an analysis-ready table.

It strips header noise, drops near-empty columns, renames the long survey
questions, encodes ordinal answers as integer ranks, derives consumption and
age-group labels, imputes missing demographics, and can split the result into
thematic subsets.`,
	Version: version.Info().Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./percolate.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "text", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	// Bind flags to viper
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("percolate")
	}

	// Environment variables
	viper.SetEnvPrefix("PERCOLATE")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		if !quiet {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	}
}

// initLogging configures the global logger
func initLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := viper.GetString("log-level")
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	if !viper.GetBool("quiet") && outputFormat == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// loadRunConfig assembles the pipeline configuration: environment first,
// then an explicit config file, then command flags on top. Flag values
// are validated as given, so an explicit --threshold 0 is honored rather
// than rewritten to the default.
func loadRunConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.LoadFromEnv()

	if cfgFile != "" {
		fileCfg, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.DropThreshold, _ = flags.GetFloat64("threshold")
	}
	if flags.Changed("strategy") {
		cfg.ImputeStrategy, _ = flags.GetString("strategy")
	}
	if flags.Changed("delimiter") {
		cfg.Delimiter, _ = flags.GetString("delimiter")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// addPipelineFlags registers the flags shared by every command that runs
// the cleaning pipeline.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("threshold", config.DefaultDropThreshold,
		"drop columns whose missing fraction is strictly above this value")
	cmd.Flags().String("strategy", config.DefaultImputeStrategy,
		"demographic imputation strategy (mode, unknown)")
	cmd.Flags().String("delimiter", config.DefaultDelimiter, "CSV field delimiter")
}
