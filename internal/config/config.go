// Package config provides configuration for the survey cleaning pipeline
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable settings of a pipeline run
type Config struct {
	// Cleaning Configuration
	DropThreshold  float64 `json:"drop_threshold" yaml:"drop_threshold"`   // Columns with a missing fraction strictly above this are dropped; 0 drops every column with any missing value
	ImputeStrategy string  `json:"impute_strategy" yaml:"impute_strategy"` // Demographic fill strategy: "mode" or "unknown"

	// I/O Configuration
	Delimiter  string `json:"delimiter" yaml:"delimiter"`     // CSV field delimiter (single character)
	OutputPath string `json:"output_path" yaml:"output_path"` // Cleaned table destination ("" = do not persist)
	OutputDir  string `json:"output_dir" yaml:"output_dir"`   // Directory for subset CSV files

	// Debugging Configuration
	VerboseLogging bool `json:"verbose_logging" yaml:"verbose_logging"` // Enable debug-level logging
}

// Default configuration values
const (
	DefaultDropThreshold  = 0.95
	DefaultImputeStrategy = "unknown"
	DefaultDelimiter      = ","
	DefaultOutputDir      = "."
)

// unsetThreshold marks a DropThreshold that no source has set. Zero is a
// valid threshold (drop any column with missing values), so the file
// loaders seed this sentinel before unmarshalling to tell an absent
// field apart from an explicit 0.
const unsetThreshold = -1.0

// NewConfig creates a new configuration with default values
func NewConfig() Config {
	return Config{
		DropThreshold:  DefaultDropThreshold,
		ImputeStrategy: DefaultImputeStrategy,
		Delimiter:      DefaultDelimiter,
		OutputDir:      DefaultOutputDir,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c.DropThreshold < 0.0 || c.DropThreshold > 1.0 {
		return fmt.Errorf("DropThreshold must be between 0 and 1, got %f", c.DropThreshold)
	}

	if c.ImputeStrategy != "mode" && c.ImputeStrategy != "unknown" {
		return fmt.Errorf("ImputeStrategy must be \"mode\" or \"unknown\", got %q", c.ImputeStrategy)
	}

	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("Delimiter must be a single character, got %q", c.Delimiter)
	}

	return nil
}

// WithDefaults returns a new configuration with default values filled in
// for unset values. DropThreshold is only defaulted when negative: an
// explicit 0 means "drop any column with missing values" and is kept.
func (c Config) WithDefaults() Config {
	defaults := NewConfig()

	if c.DropThreshold < 0 {
		c.DropThreshold = defaults.DropThreshold
	}
	if c.ImputeStrategy == "" {
		c.ImputeStrategy = defaults.ImputeStrategy
	}
	if c.Delimiter == "" {
		c.Delimiter = defaults.Delimiter
	}
	if c.OutputDir == "" {
		c.OutputDir = defaults.OutputDir
	}

	return c
}

// DelimiterRune returns the configured delimiter as a rune.
func (c Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// LoadFromJSON loads configuration from JSON data
func LoadFromJSON(data []byte) (Config, error) {
	config := Config{DropThreshold: unsetThreshold}
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing JSON configuration: %w", err)
	}
	return config.WithDefaults(), nil
}

// LoadFromFile loads configuration from a JSON or YAML file
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	config := Config{DropThreshold: unsetThreshold}
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		return Config{}, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", filename, err)
	}

	return config.WithDefaults(), nil
}

// LoadFromEnv loads configuration from PERCOLATE_* environment variables
func LoadFromEnv() Config {
	config := NewConfig()

	if val := os.Getenv("PERCOLATE_DROP_THRESHOLD"); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			config.DropThreshold = parsed
		}
	}

	if val := os.Getenv("PERCOLATE_IMPUTE_STRATEGY"); val != "" {
		config.ImputeStrategy = val
	}

	if val := os.Getenv("PERCOLATE_DELIMITER"); val != "" {
		config.Delimiter = val
	}

	if val := os.Getenv("PERCOLATE_OUTPUT_PATH"); val != "" {
		config.OutputPath = val
	}

	if val := os.Getenv("PERCOLATE_OUTPUT_DIR"); val != "" {
		config.OutputDir = val
	}

	if val := os.Getenv("PERCOLATE_VERBOSE_LOGGING"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.VerboseLogging = parsed
		}
	}

	return config
}
