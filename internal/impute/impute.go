// Package impute fills missing values in the cleaned survey table.
//
// Two fillers exist: demographic columns are filled with the column mode
// or a literal "Unknown", and binary-looking columns have their missing
// slots back-filled with false. Filling never drops rows.
package impute

import (
	"sort"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/brewlab/percolate/internal/dataframe"
	"github.com/brewlab/percolate/internal/errors"
	"github.com/brewlab/percolate/internal/series"
)

// Unknown is the constant fill value for the "unknown" strategy and the
// fallback when no mode can be computed.
const Unknown = "Unknown"

// Strategy selects how demographic missing values are filled.
type Strategy string

const (
	// StrategyMode fills with the column's most frequent non-missing value.
	StrategyMode Strategy = "mode"
	// StrategyUnknown fills with the literal "Unknown".
	StrategyUnknown Strategy = "unknown"
)

// Valid reports whether the strategy is one of the supported values.
func (s Strategy) Valid() bool {
	return s == StrategyMode || s == StrategyUnknown
}

// DemographicColumns are the columns eligible for demographic imputation,
// in fill order. Absent columns are skipped.
var DemographicColumns = []string{"gender", "education", "employment", "political_affiliation"}

// ImputationReport records one demographic column fill.
type ImputationReport struct {
	Column    string   `json:"column" yaml:"column"`
	Strategy  Strategy `json:"strategy" yaml:"strategy"`
	FillValue string   `json:"fill_value" yaml:"fill_value"`
	Filled    int      `json:"filled" yaml:"filled"`
}

// ImputeDemographics fills missing values in whichever demographic columns
// are present and string-typed. Columns without missing values are left
// alone and produce no report entry.
//
// Mode ties break toward the lexicographically smallest value so reruns
// are deterministic; an all-missing column falls back to "Unknown".
func ImputeDemographics(
	df *dataframe.DataFrame, strategy Strategy, mem memory.Allocator,
) (*dataframe.DataFrame, []ImputationReport, error) {
	if !strategy.Valid() {
		return nil, nil, errors.NewInvalidInputError("Impute", "unsupported strategy: "+string(strategy))
	}

	var reports []ImputationReport
	current := df

	for _, column := range DemographicColumns {
		col, ok := current.Column(column)
		if !ok || !dataframe.IsStringType(col) {
			continue
		}
		if col.NullN() == 0 {
			continue
		}

		values, valid, err := dataframe.StringValues(col)
		if err != nil {
			return nil, reports, err
		}

		fill := Unknown
		if strategy == StrategyMode {
			if mode, ok := modeOf(values, valid); ok {
				fill = mode
			}
		}

		filled := 0
		for i := range values {
			if !valid[i] {
				values[i] = fill
				valid[i] = true
				filled++
			}
		}

		current = current.WithColumn(series.NewNullable(column, values, valid, mem))
		reports = append(reports, ImputationReport{
			Column:    column,
			Strategy:  strategy,
			FillValue: fill,
			Filled:    filled,
		})
	}

	return current, reports, nil
}

// modeOf returns the most frequent non-missing value. Ties break toward
// the lexicographically smallest value; ok is false when every slot is
// missing.
func modeOf(values []string, valid []bool) (string, bool) {
	counts := make(map[string]int)
	for i, value := range values {
		if valid[i] {
			counts[value]++
		}
	}
	if len(counts) == 0 {
		return "", false
	}

	distinct := make([]string, 0, len(counts))
	for value := range counts {
		distinct = append(distinct, value)
	}
	sort.Strings(distinct)

	best := distinct[0]
	for _, value := range distinct[1:] {
		if counts[value] > counts[best] {
			best = value
		}
	}
	return best, true
}

// Loose true/false vocabulary for string-typed binary columns.
var (
	trueLike  = map[string]bool{"true": true, "True": true}
	falseLike = map[string]bool{"false": true, "False": true}
)

// FillBinaryAsFalse back-fills missing values with false in every column
// that looks binary: exactly two distinct non-missing values, one
// true-like and one false-like. Boolean columns are filled with false;
// string columns are filled with their observed false-like literal.
// All-missing and wider columns are left untouched. Returns the names of
// the columns that were filled.
func FillBinaryAsFalse(
	df *dataframe.DataFrame, mem memory.Allocator,
) (*dataframe.DataFrame, []string, error) {
	var filled []string
	current := df

	for _, column := range df.Columns() {
		col, _ := current.Column(column)

		switch {
		case dataframe.IsBooleanType(col):
			next, ok, err := fillBoolColumn(current, col, mem)
			if err != nil {
				return nil, filled, err
			}
			if ok {
				current = next
				filled = append(filled, column)
			}
		case dataframe.IsStringType(col):
			next, ok, err := fillStringBinaryColumn(current, col, mem)
			if err != nil {
				return nil, filled, err
			}
			if ok {
				current = next
				filled = append(filled, column)
			}
		}
	}

	return current, filled, nil
}

func fillBoolColumn(
	df *dataframe.DataFrame, col dataframe.ISeries, mem memory.Allocator,
) (*dataframe.DataFrame, bool, error) {
	if col.NullN() == 0 {
		return df, false, nil
	}

	values, valid, err := dataframe.BoolValues(col)
	if err != nil {
		return nil, false, err
	}

	seenTrue, seenFalse := false, false
	for i, value := range values {
		if valid[i] {
			if value {
				seenTrue = true
			} else {
				seenFalse = true
			}
		}
	}
	// Both representations must occur for the column to count as binary
	if !seenTrue || !seenFalse {
		return df, false, nil
	}

	for i := range values {
		if !valid[i] {
			values[i] = false
			valid[i] = true
		}
	}
	return df.WithColumn(series.NewNullable(col.Name(), values, valid, mem)), true, nil
}

func fillStringBinaryColumn(
	df *dataframe.DataFrame, col dataframe.ISeries, mem memory.Allocator,
) (*dataframe.DataFrame, bool, error) {
	if col.NullN() == 0 {
		return df, false, nil
	}

	values, valid, err := dataframe.StringValues(col)
	if err != nil {
		return nil, false, err
	}

	distinct := make(map[string]bool)
	for i, value := range values {
		if valid[i] {
			distinct[value] = true
		}
	}
	if len(distinct) != 2 {
		return df, false, nil
	}

	falseLiteral := ""
	trues, falses := 0, 0
	for value := range distinct {
		switch {
		case trueLike[value]:
			trues++
		case falseLike[value]:
			falses++
			falseLiteral = value
		}
	}
	if trues != 1 || falses != 1 {
		return df, false, nil
	}

	for i := range values {
		if !valid[i] {
			values[i] = falseLiteral
			valid[i] = true
		}
	}
	return df.WithColumn(series.NewNullable(col.Name(), values, valid, mem)), true, nil
}
