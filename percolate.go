// Package percolate cleans and transforms coffee survey CSV exports.
// This package is the sole public API for the library; the percolate
// binary under cmd/percolate is a thin CLI over it.
package percolate

import (
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rs/zerolog"

	"github.com/brewlab/percolate/internal/config"
	"github.com/brewlab/percolate/internal/dataframe"
	"github.com/brewlab/percolate/internal/errors"
	"github.com/brewlab/percolate/internal/io"
	"github.com/brewlab/percolate/internal/pipeline"
	"github.com/brewlab/percolate/internal/subset"
)

// Config holds the tunable settings of a cleaning run.
type Config = config.Config

// Report aggregates the diagnostics of one cleaning run.
type Report = pipeline.Report

// Summary describes the shape and missing-data profile of a table.
type Summary = pipeline.Summary

// NewConfig returns a configuration with default values.
func NewConfig() Config {
	return config.NewConfig()
}

// DataFrame is the public type for a cleaned survey table.
// It wraps the internal dataframe.DataFrame to hide implementation details.
type DataFrame struct {
	df *dataframe.DataFrame
}

// Clean runs the full cleaning pipeline on the CSV at path and returns
// the cleaned table together with a run report.
func Clean(path string, cfg Config, logger zerolog.Logger) (*DataFrame, *Report, error) {
	df, report, err := pipeline.Run(path, cfg, logger)
	if err != nil {
		return nil, report, err
	}
	return &DataFrame{df: df}, report, nil
}

// Columns returns the column names in order.
func (d *DataFrame) Columns() []string {
	return d.df.Columns()
}

// Len returns the number of rows.
func (d *DataFrame) Len() int {
	return d.df.Len()
}

// Width returns the number of columns.
func (d *DataFrame) Width() int {
	return d.df.Width()
}

// HasColumn checks if a column exists.
func (d *DataFrame) HasColumn(name string) bool {
	return d.df.HasColumn(name)
}

// String returns a string representation of the table.
func (d *DataFrame) String() string {
	return d.df.String()
}

// Release releases the underlying Arrow memory.
func (d *DataFrame) Release() {
	d.df.Release()
}

// Summary computes a quick structural summary of the table.
func (d *DataFrame) Summary() Summary {
	return pipeline.Summarize(d.df)
}

// WriteCSV persists the table to a CSV file.
func (d *DataFrame) WriteCSV(path string) error {
	return io.WriteCSVFile(path, d.df, io.DefaultCSVOptions())
}

// SubsetNames lists the available thematic subsets in reporting order.
func SubsetNames() []string {
	names := make([]string, 0, len(subset.All))
	for _, b := range subset.All {
		names = append(names, b.Name)
	}
	return names
}

// Subset builds the named thematic subset from the cleaned table. The
// result is an independent copy.
func (d *DataFrame) Subset(name string) (*DataFrame, error) {
	for _, b := range subset.All {
		if b.Name == name {
			sub, err := b.Build(d.df, memory.NewGoAllocator())
			if err != nil {
				return nil, err
			}
			return &DataFrame{df: sub}, nil
		}
	}
	return nil, errors.NewInvalidInputError("Subset", "unknown subset: "+name)
}

// Subsets builds all six thematic subsets from the cleaned table.
func (d *DataFrame) Subsets() (map[string]*DataFrame, error) {
	mem := memory.NewGoAllocator()
	out := make(map[string]*DataFrame, len(subset.All))

	for _, b := range subset.All {
		sub, err := b.Build(d.df, mem)
		if err != nil {
			for _, built := range out {
				built.Release()
			}
			return nil, err
		}
		out[b.Name] = &DataFrame{df: sub}
	}
	return out, nil
}
