// Package pipeline sequences the fixed cleaning stages that turn a raw
// survey export into an analysis-ready table: load, prune, rename,
// encode, derive, impute, persist.
package pipeline

import (
	"sort"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rs/zerolog"

	"github.com/brewlab/percolate/internal/config"
	"github.com/brewlab/percolate/internal/dataframe"
	"github.com/brewlab/percolate/internal/derive"
	"github.com/brewlab/percolate/internal/errors"
	"github.com/brewlab/percolate/internal/impute"
	"github.com/brewlab/percolate/internal/io"
	"github.com/brewlab/percolate/internal/ordinal"
)

// ColumnRenames maps the survey's long question headers to the short
// snake_case names the rest of the pipeline expects. Headers absent
// from this table pass through unchanged.
var ColumnRenames = map[string]string{
	"Submission ID": "submission_id",
	"What is your age?": "age",
	"How many cups of coffee do you typically drink per day?": "cups_per_day",
	"Gender":                "gender",
	"Education Level":       "education",
	"Ethnicity/Race":        "ethnicity",
	"Employment Status":     "employment",
	"Number of Children":    "children",
	"Political Affiliation": "political_affiliation",
}

// Report aggregates the diagnostics of one pipeline run.
type Report struct {
	Rows           int                        `json:"rows" yaml:"rows"`
	Columns        int                        `json:"columns" yaml:"columns"`
	DroppedColumns []string                   `json:"dropped_columns" yaml:"dropped_columns"`
	RenamedColumns map[string]string          `json:"renamed_columns" yaml:"renamed_columns"`
	Encodings      []ordinal.EncodingReport   `json:"encodings" yaml:"encodings"`
	Imputations    []impute.ImputationReport  `json:"imputations" yaml:"imputations"`
	BinaryFilled   []string                   `json:"binary_filled" yaml:"binary_filled"`
	OutputPath     string                     `json:"output_path,omitempty" yaml:"output_path,omitempty"`
}

// DropHighMissing removes every column whose missing fraction is
// strictly above the threshold. A column sitting exactly at the
// threshold is retained. Returns the names of the dropped columns.
func DropHighMissing(df *dataframe.DataFrame, threshold float64) (*dataframe.DataFrame, []string) {
	var dropped []string
	for _, name := range df.Columns() {
		col, _ := df.Column(name)
		if dataframe.NullFraction(col) > threshold {
			dropped = append(dropped, name)
		}
	}
	if len(dropped) == 0 {
		return df, nil
	}
	return df.Drop(dropped...), dropped
}

// Run executes the full cleaning pipeline on the CSV at path and
// returns the cleaned table together with a run report. No stage is
// retried; stages skip work only via the presence checks documented on
// the underlying packages.
func Run(path string, cfg config.Config, logger zerolog.Logger) (*dataframe.DataFrame, *Report, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	mem := memory.NewGoAllocator()
	report := &Report{}

	options := io.DefaultCSVOptions()
	options.Delimiter = cfg.DelimiterRune()

	logger.Info().Str("stage", "load").Str("path", path).Msg("loading dataset")
	df, err := io.ReadCSVFile(path, options, mem)
	if err != nil {
		return nil, nil, err
	}
	if df.Len() == 0 {
		return nil, nil, errors.ErrEmptyTable
	}
	logger.Info().Int("rows", df.Len()).Int("columns", df.Width()).Msg("dataset loaded")

	logger.Info().Str("stage", "drop").Float64("threshold", cfg.DropThreshold).Msg("dropping high-missing columns")
	df, dropped := DropHighMissing(df, cfg.DropThreshold)
	report.DroppedColumns = dropped
	if len(dropped) > 0 {
		logger.Info().Strs("columns", dropped).Msg("columns dropped")
	}

	logger.Info().Str("stage", "rename").Msg("standardizing column names")
	df, applied := df.Rename(ColumnRenames)
	report.RenamedColumns = applied

	logger.Info().Str("stage", "encode").Msg("encoding ordinal variables")
	df, encodings, err := ordinal.EncodeAll(df, mem, logger)
	if err != nil {
		return nil, report, err
	}
	report.Encodings = encodings

	logger.Info().Str("stage", "derive").Msg("building derived features")
	if df.HasColumn(derive.DefaultCupsColumn) {
		if df, err = derive.ConsumptionSegment(df, derive.DefaultCupsColumn, mem); err != nil {
			return nil, report, err
		}
	}
	if df.HasColumn(derive.DefaultAgeColumn) {
		if df, err = derive.AgeGroup(df, derive.DefaultAgeColumn, mem); err != nil {
			return nil, report, err
		}
	}

	logger.Info().Str("stage", "impute").Str("strategy", cfg.ImputeStrategy).Msg("imputing missing values")
	df, imputations, err := impute.ImputeDemographics(df, impute.Strategy(cfg.ImputeStrategy), mem)
	if err != nil {
		return nil, report, err
	}
	report.Imputations = imputations

	df, binaryFilled, err := impute.FillBinaryAsFalse(df, mem)
	if err != nil {
		return nil, report, err
	}
	report.BinaryFilled = binaryFilled

	if cfg.OutputPath != "" {
		logger.Info().Str("stage", "persist").Str("path", cfg.OutputPath).Msg("writing cleaned dataset")
		if err := io.WriteCSVFile(cfg.OutputPath, df, options); err != nil {
			return nil, report, err
		}
		report.OutputPath = cfg.OutputPath
	} else {
		logger.Info().Str("stage", "persist").Msg("no output path configured, skipping write")
	}

	report.Rows = df.Len()
	report.Columns = df.Width()
	logger.Info().Int("rows", report.Rows).Int("columns", report.Columns).Msg("pipeline finished")

	return df, report, nil
}

// ValueCount pairs a label with its occurrence count.
type ValueCount struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// Summary describes the shape and missing-data profile of a table.
type Summary struct {
	Rows                int            `json:"rows" yaml:"rows"`
	Columns             int            `json:"columns" yaml:"columns"`
	MissingCells        int            `json:"missing_cells" yaml:"missing_cells"`
	MissingPct          float64        `json:"missing_pct" yaml:"missing_pct"`
	TypeCounts          map[string]int `json:"type_counts" yaml:"type_counts"`
	ConsumptionSegments []ValueCount   `json:"consumption_segments,omitempty" yaml:"consumption_segments,omitempty"`
	AgeGroups           []ValueCount   `json:"age_groups,omitempty" yaml:"age_groups,omitempty"`
}

// Summarize computes a quick structural summary of the table, with
// value counts for the derived columns when present.
func Summarize(df *dataframe.DataFrame) Summary {
	s := Summary{
		Rows:       df.Len(),
		Columns:    df.Width(),
		TypeCounts: make(map[string]int),
	}

	for _, name := range df.Columns() {
		col, _ := df.Column(name)
		s.MissingCells += col.NullN()
		s.TypeCounts[col.DataType().String()]++
	}
	if cells := s.Rows * s.Columns; cells > 0 {
		s.MissingPct = 100 * float64(s.MissingCells) / float64(cells)
	}

	if col, ok := df.Column(derive.ConsumptionSegmentColumn); ok {
		s.ConsumptionSegments = ValueCounts(col)
	}
	if col, ok := df.Column(derive.AgeGroupColumn); ok {
		s.AgeGroups = ValueCounts(col)
	}

	return s
}

// ValueCounts counts the non-missing values of a column, most frequent
// first. Equal counts order by value for deterministic output.
func ValueCounts(col dataframe.ISeries) []ValueCount {
	counts := make(map[string]int)
	for i := 0; i < col.Len(); i++ {
		if !col.IsNull(i) {
			counts[col.GetAsString(i)]++
		}
	}

	out := make([]ValueCount, 0, len(counts))
	for value, count := range counts {
		out = append(out, ValueCount{Value: value, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
