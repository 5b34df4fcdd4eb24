// Package ordinal maps ordered category labels to integer ranks.
//
// Each survey ordinal (age bracket, cups per day, education, employment,
// number of children) has a fixed, immutable mapping from label to a
// 0-based contiguous rank. Encoding a column adds a nullable int64 column
// named <column>_encoded: missing source values stay missing, and values
// with no rank are reported as diagnostics rather than failing the run.
package ordinal

import (
	"slices"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/brewlab/percolate/internal/dataframe"
	"github.com/brewlab/percolate/internal/errors"
	"github.com/brewlab/percolate/internal/series"
	"github.com/rs/zerolog"
)

// EncodedSuffix is appended to the source column name for encoded output.
const EncodedSuffix = "_encoded"

// Mapping is an immutable label-to-rank dictionary for one ordinal
// variable. Ranks are unique and contiguous from zero, in label order.
type Mapping struct {
	name   string
	ranks  map[string]int64
	labels []string
}

// NewMapping builds a mapping that assigns rank i to labels[i].
func NewMapping(name string, labels []string) *Mapping {
	ranks := make(map[string]int64, len(labels))
	for i, label := range labels {
		ranks[label] = int64(i)
	}
	return &Mapping{
		name:   name,
		ranks:  ranks,
		labels: append([]string(nil), labels...),
	}
}

// Name returns the ordinal variable name the mapping belongs to.
func (m *Mapping) Name() string {
	return m.name
}

// Rank returns the rank for a label and whether the label is known.
func (m *Mapping) Rank(label string) (int64, bool) {
	rank, ok := m.ranks[label]
	return rank, ok
}

// Labels returns the labels in rank order.
func (m *Mapping) Labels() []string {
	return append([]string(nil), m.labels...)
}

// Len returns the number of labels in the mapping.
func (m *Mapping) Len() int {
	return len(m.labels)
}

// Fixed mappings for the survey's ordinal variables.
var (
	AgeOrder = NewMapping("age", []string{
		"<18 years old",
		"18-24 years old",
		"25-34 years old",
		"35-44 years old",
		"45-54 years old",
		"55-64 years old",
		">65 years old",
	})

	CupsOrder = NewMapping("cups_per_day", []string{
		"Less than 1",
		"1",
		"2",
		"3",
		"4",
		"More than 4",
	})

	EducationOrder = NewMapping("education", []string{
		"Less than high school",
		"High school graduate",
		"Some college or associate's degree",
		"Bachelor's degree",
		"Master's degree",
		"Doctorate or professional degree",
	})

	EmploymentOrder = NewMapping("employment", []string{
		"Unemployed",
		"Student",
		"Employed part-time",
		"Employed full-time",
		"Retired",
	})

	ChildrenOrder = NewMapping("children", []string{
		"0",
		"1",
		"2",
		"3",
		"More than 3",
	})
)

// AgeLabels maps age ranks back to short display brackets for reporting.
var AgeLabels = map[int64]string{
	0: "<18",
	1: "18-24",
	2: "25-34",
	3: "35-44",
	4: "45-54",
	5: "55-64",
	6: ">65",
}

// EncodingReport records the outcome of encoding one column: the output
// column name and the distinct source values that had no rank, sorted
// and deduplicated.
type EncodingReport struct {
	Column   string   `json:"column" yaml:"column"`
	Encoded  string   `json:"encoded" yaml:"encoded"`
	Unmapped []string `json:"unmapped,omitempty" yaml:"unmapped,omitempty"`
}

// Encode adds the column <column>_encoded to the frame, overwriting it if
// present. Per row: a missing source stays missing; a known label becomes
// its rank; an unknown label becomes missing and is recorded once in the
// report. A non-string source has no labels at all, so every present
// value is unmapped and the encoded column is entirely missing.
func Encode(
	df *dataframe.DataFrame, column string, mapping *Mapping, mem memory.Allocator,
) (*dataframe.DataFrame, EncodingReport, error) {
	report := EncodingReport{Column: column, Encoded: column + EncodedSuffix}

	col, ok := df.Column(column)
	if !ok {
		return nil, report, errors.NewColumnNotFoundError("Encode", column)
	}

	var values []string
	var valid []bool
	isString := dataframe.IsStringType(col)

	if isString {
		var err error
		values, valid, err = dataframe.StringValues(col)
		if err != nil {
			return nil, report, err
		}
	} else {
		values = make([]string, col.Len())
		valid = make([]bool, col.Len())
		for i := range values {
			if !col.IsNull(i) {
				values[i] = col.GetAsString(i)
				valid[i] = true
			}
		}
	}

	ranks := make([]int64, len(values))
	rankValid := make([]bool, len(values))
	unmappedSet := make(map[string]struct{})

	for i, value := range values {
		if !valid[i] {
			continue // missing in, missing out
		}
		if rank, known := mapping.Rank(value); known && isString {
			ranks[i] = rank
			rankValid[i] = true
		} else {
			unmappedSet[value] = struct{}{}
		}
	}

	if len(unmappedSet) > 0 {
		report.Unmapped = make([]string, 0, len(unmappedSet))
		for value := range unmappedSet {
			report.Unmapped = append(report.Unmapped, value)
		}
		slices.Sort(report.Unmapped)
	}

	encoded := series.NewNullable(report.Encoded, ranks, rankValid, mem)
	return df.WithColumn(encoded), report, nil
}

// EncodeAll applies the fixed mappings to whichever of the five ordinal
// columns are present. An absent column is silently skipped. The children
// column is additionally skipped unless it is string-typed, since a fully
// numeric children column needs no encoding; the other four encode
// regardless of type.
func EncodeAll(
	df *dataframe.DataFrame, mem memory.Allocator, logger zerolog.Logger,
) (*dataframe.DataFrame, []EncodingReport, error) {
	mappings := []*Mapping{AgeOrder, CupsOrder, EducationOrder, EmploymentOrder, ChildrenOrder}

	var reports []EncodingReport
	current := df

	for _, mapping := range mappings {
		column := mapping.Name()
		col, ok := current.Column(column)
		if !ok {
			continue
		}
		if column == ChildrenOrder.Name() && !dataframe.IsStringType(col) {
			logger.Debug().Str("column", column).Msg("skipping numeric children column")
			continue
		}

		next, report, err := Encode(current, column, mapping, mem)
		if err != nil {
			return nil, reports, err
		}
		if len(report.Unmapped) > 0 {
			logger.Warn().
				Str("column", column).
				Strs("unmapped", report.Unmapped).
				Msg("unmapped ordinal values encoded as missing")
		}
		logger.Info().Str("column", column).Str("encoded", report.Encoded).Msg("ordinal column encoded")

		current = next
		reports = append(reports, report)
	}

	return current, reports, nil
}
