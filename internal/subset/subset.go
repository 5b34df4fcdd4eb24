// Package subset builds thematic column projections of the cleaned
// survey table. Every builder returns an independent deep copy, so
// mutating a subset never touches the source table.
package subset

import (
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/brewlab/percolate/internal/dataframe"
	"github.com/brewlab/percolate/internal/series"
)

// BaseColumns is the fixed ordered list of demographic and derived
// columns every subset starts from. Absent columns are omitted.
var BaseColumns = []string{
	"submission_id",
	"age", "age_encoded", "age_group",
	"gender",
	"education", "education_encoded",
	"employment", "employment_encoded",
	"children", "children_encoded",
	"political_affiliation",
}

// topicExtras are appended to the base columns for every topic subset.
var topicExtras = []string{"cups_per_day_encoded", "consumption_segment"}

// Topic substrings matched against column names. All matches are
// case-sensitive except OnTheGoPattern.
const (
	PlacePattern       = "Where do you typically drink coffee?"
	HomeBrewingPattern = "How do you brew coffee at home?"
	OnTheGoPattern     = "where do you typically purchase coffee?"
	DairyPattern       = "What kind of dairy do you add?"
	SweetenerPattern   = "What kind of sugar or sweetener do you add?"
)

// Builder pairs a subset name with its build function.
type Builder struct {
	Name  string
	Build func(*dataframe.DataFrame, memory.Allocator) (*dataframe.DataFrame, error)
}

// All lists the six subset builders in their reporting order.
var All = []Builder{
	{Name: "consumption", Build: Consumption},
	{Name: "place", Build: Place},
	{Name: "home_brewing", Build: HomeBrewing},
	{Name: "on_the_go", Build: OnTheGo},
	{Name: "dairy", Build: Dairy},
	{Name: "sweetener", Build: Sweetener},
}

// Consumption projects the demographic base plus the cups-per-day
// columns and the derived consumption segment.
func Consumption(df *dataframe.DataFrame, mem memory.Allocator) (*dataframe.DataFrame, error) {
	extras := []string{"cups_per_day", "cups_per_day_encoded", "consumption_segment"}
	return build(df, extras, nil, mem)
}

// Place projects the base plus the drinking-location answer columns.
func Place(df *dataframe.DataFrame, mem memory.Allocator) (*dataframe.DataFrame, error) {
	return build(df, topicExtras, containsMatcher(PlacePattern), mem)
}

// HomeBrewing projects the base plus the home brew method columns.
func HomeBrewing(df *dataframe.DataFrame, mem memory.Allocator) (*dataframe.DataFrame, error) {
	return build(df, topicExtras, containsMatcher(HomeBrewingPattern), mem)
}

// OnTheGo projects the base plus the purchase-venue columns. The match
// is case-insensitive because the source survey is inconsistent about
// capitalizing this question.
func OnTheGo(df *dataframe.DataFrame, mem memory.Allocator) (*dataframe.DataFrame, error) {
	matcher := func(name string) bool {
		return strings.Contains(strings.ToLower(name), OnTheGoPattern)
	}
	return build(df, topicExtras, matcher, mem)
}

// Dairy projects the base plus the dairy-addition columns.
func Dairy(df *dataframe.DataFrame, mem memory.Allocator) (*dataframe.DataFrame, error) {
	return build(df, topicExtras, containsMatcher(DairyPattern), mem)
}

// Sweetener projects the base plus the sweetener-addition columns.
func Sweetener(df *dataframe.DataFrame, mem memory.Allocator) (*dataframe.DataFrame, error) {
	return build(df, topicExtras, containsMatcher(SweetenerPattern), mem)
}

func containsMatcher(pattern string) func(string) bool {
	return func(name string) bool {
		return strings.Contains(name, pattern)
	}
}

// build assembles the subset: base columns, extras, then every table
// column matching the topic pattern, intersected with what is present
// and deep-copied. Zero topic matches still yields the base columns.
func build(
	df *dataframe.DataFrame, extras []string,
	match func(string) bool, mem memory.Allocator,
) (*dataframe.DataFrame, error) {
	names := make([]string, 0, len(BaseColumns)+len(extras))
	names = append(names, BaseColumns...)
	names = append(names, extras...)
	if match != nil {
		for _, name := range df.Columns() {
			if match(name) {
				names = append(names, name)
			}
		}
	}

	out := df.Select(names...).Copy()
	return fillChildren(out, mem)
}

// fillChildren back-fills missing children answers with "no children"
// in the subset only. The source table keeps its missing values.
func fillChildren(df *dataframe.DataFrame, mem memory.Allocator) (*dataframe.DataFrame, error) {
	current := df

	if col, ok := current.Column("children"); ok && col.NullN() > 0 {
		switch {
		case dataframe.IsStringType(col):
			values, valid, err := dataframe.StringValues(col)
			if err != nil {
				return nil, err
			}
			for i := range values {
				if !valid[i] {
					values[i] = "0"
					valid[i] = true
				}
			}
			current = current.WithColumn(series.NewNullable("children", values, valid, mem))
		case dataframe.IsInt64Type(col):
			values, valid, err := dataframe.Int64Values(col)
			if err != nil {
				return nil, err
			}
			for i := range values {
				if !valid[i] {
					values[i] = 0
					valid[i] = true
				}
			}
			current = current.WithColumn(series.NewNullable("children", values, valid, mem))
		}
	}

	if col, ok := current.Column("children_encoded"); ok && col.NullN() > 0 && dataframe.IsInt64Type(col) {
		values, valid, err := dataframe.Int64Values(col)
		if err != nil {
			return nil, err
		}
		for i := range values {
			if !valid[i] {
				values[i] = 0
				valid[i] = true
			}
		}
		current = current.WithColumn(series.NewNullable("children_encoded", values, valid, mem))
	}

	return current, nil
}
