// Package dataframe provides the in-memory record table the cleaning
// pipeline operates on: an ordered set of typed, null-aware columns.
package dataframe

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/brewlab/percolate/internal/series"
)

// DataFrame represents a table of data with typed columns
type DataFrame struct {
	columns map[string]ISeries
	order   []string // Maintains column order
}

// New creates a new DataFrame from a slice of ISeries
func New(seriesList ...ISeries) *DataFrame {
	columns := make(map[string]ISeries)
	order := make([]string, 0, len(seriesList))

	for _, s := range seriesList {
		name := s.Name()
		if _, exists := columns[name]; !exists {
			order = append(order, name)
		}
		columns[name] = s
	}

	return &DataFrame{
		columns: columns,
		order:   order,
	}
}

// Columns returns the names of all columns in order
func (df *DataFrame) Columns() []string {
	if len(df.order) == 0 {
		return []string{}
	}
	return append([]string(nil), df.order...)
}

// Len returns the number of rows (all columns share the same length)
func (df *DataFrame) Len() int {
	if len(df.order) > 0 {
		if s, exists := df.columns[df.order[0]]; exists {
			return s.Len()
		}
	}
	return 0
}

// Width returns the number of columns
func (df *DataFrame) Width() int {
	return len(df.columns)
}

// Column returns the series for the given column name
func (df *DataFrame) Column(name string) (ISeries, bool) {
	s, exists := df.columns[name]
	return s, exists
}

// HasColumn checks if a column exists
func (df *DataFrame) HasColumn(name string) bool {
	_, exists := df.columns[name]
	return exists
}

// Select returns a new DataFrame with only the specified columns.
// Absent names are skipped; the underlying arrays are shared.
func (df *DataFrame) Select(names ...string) *DataFrame {
	newColumns := make(map[string]ISeries)
	newOrder := make([]string, 0, len(names))

	for _, name := range names {
		if s, exists := df.columns[name]; exists {
			if _, dup := newColumns[name]; dup {
				continue
			}
			newColumns[name] = s
			newOrder = append(newOrder, name)
		}
	}

	return &DataFrame{
		columns: newColumns,
		order:   newOrder,
	}
}

// Drop returns a new DataFrame without the specified columns
func (df *DataFrame) Drop(names ...string) *DataFrame {
	dropSet := make(map[string]bool)
	for _, name := range names {
		dropSet[name] = true
	}

	newColumns := make(map[string]ISeries)
	newOrder := make([]string, 0, len(df.order))

	for _, name := range df.order {
		if !dropSet[name] {
			newColumns[name] = df.columns[name]
			newOrder = append(newOrder, name)
		}
	}

	return &DataFrame{
		columns: newColumns,
		order:   newOrder,
	}
}

// WithColumn returns a new DataFrame with the given series added.
// A column of the same name is replaced in place, keeping its position;
// otherwise the series is appended as the last column.
func (df *DataFrame) WithColumn(s ISeries) *DataFrame {
	newColumns := make(map[string]ISeries, len(df.columns)+1)
	newOrder := make([]string, 0, len(df.order)+1)

	replaced := false
	for _, name := range df.order {
		if name == s.Name() {
			newColumns[name] = s
			replaced = true
		} else {
			newColumns[name] = df.columns[name]
		}
		newOrder = append(newOrder, name)
	}

	if !replaced {
		newColumns[s.Name()] = s
		newOrder = append(newOrder, s.Name())
	}

	return &DataFrame{
		columns: newColumns,
		order:   newOrder,
	}
}

// Rename returns a new DataFrame with columns renamed per the given map.
// Columns absent from the map pass through unchanged; map keys absent
// from the table are ignored. The applied subset is returned alongside.
func (df *DataFrame) Rename(renames map[string]string) (*DataFrame, map[string]string) {
	applied := make(map[string]string)
	newColumns := make(map[string]ISeries, len(df.columns))
	newOrder := make([]string, 0, len(df.order))

	for _, name := range df.order {
		s := df.columns[name]
		newName := name
		if renamed, ok := renames[name]; ok {
			newName = renamed
			applied[name] = renamed
			s = renameSeries(s, renamed)
		}
		newColumns[newName] = s
		newOrder = append(newOrder, newName)
	}

	return &DataFrame{
		columns: newColumns,
		order:   newOrder,
	}, applied
}

// Copy returns a deep copy of the DataFrame: every column is rebuilt
// with independent memory, preserving null slots.
func (df *DataFrame) Copy() *DataFrame {
	copied := make([]ISeries, 0, len(df.order))
	for _, name := range df.order {
		copied = append(copied, CopySeries(df.columns[name]))
	}
	return New(copied...)
}

// String returns a string representation of the DataFrame
func (df *DataFrame) String() string {
	if len(df.columns) == 0 {
		return "DataFrame[empty]"
	}

	parts := []string{fmt.Sprintf("DataFrame[%dx%d]", df.Len(), df.Width())}

	for _, name := range df.order {
		s := df.columns[name]
		parts = append(parts, fmt.Sprintf("  %s: %s (nulls=%d)", name, s.DataType().String(), s.NullN()))
	}

	return strings.Join(parts, "\n")
}

// Release releases all underlying Arrow memory
func (df *DataFrame) Release() {
	for _, s := range df.columns {
		s.Release()
	}
}

// renameSeries rebuilds a series under a new name, preserving nulls.
func renameSeries(s ISeries, name string) ISeries {
	return copySeriesAs(s, name)
}

// CopySeries creates an independent, null-preserving copy of a series.
func CopySeries(s ISeries) ISeries {
	return copySeriesAs(s, s.Name())
}

func copySeriesAs(s ISeries, name string) ISeries {
	originalArray := s.Array()
	if originalArray == nil {
		return series.New(name, []string{}, memory.NewGoAllocator())
	}
	defer originalArray.Release()

	mem := memory.NewGoAllocator()

	switch typedArr := originalArray.(type) {
	case *array.String:
		values := make([]string, typedArr.Len())
		valid := make([]bool, typedArr.Len())
		for i := 0; i < typedArr.Len(); i++ {
			if !typedArr.IsNull(i) {
				values[i] = typedArr.Value(i)
				valid[i] = true
			}
		}
		return series.NewNullable(name, values, valid, mem)

	case *array.Int64:
		values := make([]int64, typedArr.Len())
		valid := make([]bool, typedArr.Len())
		for i := 0; i < typedArr.Len(); i++ {
			if !typedArr.IsNull(i) {
				values[i] = typedArr.Value(i)
				valid[i] = true
			}
		}
		return series.NewNullable(name, values, valid, mem)

	case *array.Float64:
		values := make([]float64, typedArr.Len())
		valid := make([]bool, typedArr.Len())
		for i := 0; i < typedArr.Len(); i++ {
			if !typedArr.IsNull(i) {
				values[i] = typedArr.Value(i)
				valid[i] = true
			}
		}
		return series.NewNullable(name, values, valid, mem)

	case *array.Boolean:
		values := make([]bool, typedArr.Len())
		valid := make([]bool, typedArr.Len())
		for i := 0; i < typedArr.Len(); i++ {
			if !typedArr.IsNull(i) {
				values[i] = typedArr.Value(i)
				valid[i] = true
			}
		}
		return series.NewNullable(name, values, valid, mem)

	default:
		return series.New(name, []string{}, mem)
	}
}

// NullFraction returns the fraction of missing values in a series.
// An empty series has a null fraction of zero.
func NullFraction(s ISeries) float64 {
	if s.Len() == 0 {
		return 0
	}
	return float64(s.NullN()) / float64(s.Len())
}

// IsStringType reports whether the series holds string data.
func IsStringType(s ISeries) bool {
	return arrow.TypeEqual(s.DataType(), arrow.BinaryTypes.String)
}

// IsInt64Type reports whether the series holds int64 data.
func IsInt64Type(s ISeries) bool {
	return arrow.TypeEqual(s.DataType(), arrow.PrimitiveTypes.Int64)
}

// IsBooleanType reports whether the series holds boolean data.
func IsBooleanType(s ISeries) bool {
	return arrow.TypeEqual(s.DataType(), arrow.FixedWidthTypes.Boolean)
}
