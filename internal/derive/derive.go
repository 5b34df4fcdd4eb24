// Package derive builds categorical summary columns from encoded ranks.
//
// Both builders are total: every rank, and a missing value, maps to
// exactly one label, so rerunning a builder on the same input rewrites
// an identical column.
package derive

import (
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/brewlab/percolate/internal/dataframe"
	"github.com/brewlab/percolate/internal/errors"
	"github.com/brewlab/percolate/internal/series"
)

// Output column names.
const (
	ConsumptionSegmentColumn = "consumption_segment"
	AgeGroupColumn           = "age_group"
)

// Default input columns, matching the encoder's output names.
const (
	DefaultCupsColumn = "cups_per_day_encoded"
	DefaultAgeColumn  = "age_encoded"
)

// Consumption segment labels.
const (
	SegmentUnknown  = "Unknown"
	SegmentLight    = "Light (<1 cup)"
	SegmentModerate = "Moderate (1-2 cups)"
	SegmentHeavy    = "Heavy (3+ cups)"
)

// Age group labels.
const (
	AgeGroupUnknown          = "Unknown"
	AgeGroupGenZ             = "Gen Z (<25)"
	AgeGroupYoungMillennials = "Young Millennials (25-34)"
	AgeGroupOlderMillennials = "Older Millennials (35-44)"
	AgeGroupGenX             = "Gen X (45-64)"
	AgeGroupBoomers          = "Boomers+ (65+)"
)

// SegmentForRank buckets a cups-per-day rank into a consumption segment.
func SegmentForRank(rank int64) string {
	switch {
	case rank == 0:
		return SegmentLight
	case rank == 1 || rank == 2:
		return SegmentModerate
	default:
		return SegmentHeavy
	}
}

// AgeGroupForRank buckets an age rank into a generation label.
func AgeGroupForRank(rank int64) string {
	switch {
	case rank <= 1: // <18, 18-24
		return AgeGroupGenZ
	case rank == 2: // 25-34
		return AgeGroupYoungMillennials
	case rank == 3: // 35-44
		return AgeGroupOlderMillennials
	case rank == 4 || rank == 5: // 45-54, 55-64
		return AgeGroupGenX
	default: // 65+
		return AgeGroupBoomers
	}
}

// ConsumptionSegment adds the consumption_segment column derived from the
// given encoded cups-per-day column. Missing ranks label as Unknown.
func ConsumptionSegment(
	df *dataframe.DataFrame, cupsColumn string, mem memory.Allocator,
) (*dataframe.DataFrame, error) {
	return deriveLabels(df, cupsColumn, ConsumptionSegmentColumn, SegmentUnknown, SegmentForRank, mem)
}

// AgeGroup adds the age_group column derived from the given encoded age
// column. Missing ranks label as Unknown.
func AgeGroup(
	df *dataframe.DataFrame, ageColumn string, mem memory.Allocator,
) (*dataframe.DataFrame, error) {
	return deriveLabels(df, ageColumn, AgeGroupColumn, AgeGroupUnknown, AgeGroupForRank, mem)
}

func deriveLabels(
	df *dataframe.DataFrame, source, target, missingLabel string,
	bucket func(int64) string, mem memory.Allocator,
) (*dataframe.DataFrame, error) {
	col, ok := df.Column(source)
	if !ok {
		return nil, errors.NewColumnNotFoundError("Derive", source)
	}

	ranks, valid, err := dataframe.Int64Values(col)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(ranks))
	for i, rank := range ranks {
		if !valid[i] {
			labels[i] = missingLabel
		} else {
			labels[i] = bucket(rank)
		}
	}

	return df.WithColumn(series.New(target, labels, mem)), nil
}
