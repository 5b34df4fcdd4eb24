// Package series provides typed, null-aware column storage backed by Apache Arrow.
package series

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Series represents a typed data column with an Apache Arrow backend.
// A null slot in the underlying array is the column's "missing" value.
type Series[T any] struct {
	name  string
	array arrow.Array
}

// New creates a new Series from a slice of values. All slots are valid;
// use NewNullable when the column carries missing values.
func New[T any](name string, values []T, mem memory.Allocator) *Series[T] {
	return NewNullable(name, values, nil, mem)
}

// NewNullable creates a new Series from values plus a validity mask.
// valid[i] == false marks row i as missing; a nil mask means all valid.
func NewNullable[T any](name string, values []T, valid []bool, mem memory.Allocator) *Series[T] {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	if valid != nil && len(valid) != len(values) {
		panic(fmt.Sprintf("series %q: validity mask length %d does not match values length %d",
			name, len(valid), len(values)))
	}

	var arr arrow.Array

	switch v := any(values).(type) {
	case []string:
		builder := array.NewStringBuilder(mem)
		defer builder.Release()
		builder.AppendValues(v, valid)
		arr = builder.NewArray()
	case []int64:
		builder := array.NewInt64Builder(mem)
		defer builder.Release()
		builder.AppendValues(v, valid)
		arr = builder.NewArray()
	case []float64:
		builder := array.NewFloat64Builder(mem)
		defer builder.Release()
		builder.AppendValues(v, valid)
		arr = builder.NewArray()
	case []bool:
		builder := array.NewBooleanBuilder(mem)
		defer builder.Release()
		builder.AppendValues(v, valid)
		arr = builder.NewArray()
	default:
		panic(fmt.Sprintf("unsupported type: %T", values))
	}

	return &Series[T]{
		name:  name,
		array: arr,
	}
}

// Name returns the column name
func (s *Series[T]) Name() string {
	return s.name
}

// Len returns the length of the series
func (s *Series[T]) Len() int {
	return s.array.Len()
}

// NullN returns the number of missing values in the series
func (s *Series[T]) NullN() int {
	return s.array.NullN()
}

// Values returns the data as a Go slice. Missing slots carry the zero
// value; consult IsNull to distinguish them.
func (s *Series[T]) Values() []T {
	result := make([]T, s.array.Len())

	switch arr := s.array.(type) {
	case *array.String:
		if values, ok := any(result).([]string); ok {
			for i := 0; i < arr.Len(); i++ {
				if !arr.IsNull(i) {
					values[i] = arr.Value(i)
				}
			}
		}
	case *array.Int64:
		if values, ok := any(result).([]int64); ok {
			for i := 0; i < arr.Len(); i++ {
				if !arr.IsNull(i) {
					values[i] = arr.Value(i)
				}
			}
		}
	case *array.Float64:
		if values, ok := any(result).([]float64); ok {
			for i := 0; i < arr.Len(); i++ {
				if !arr.IsNull(i) {
					values[i] = arr.Value(i)
				}
			}
		}
	case *array.Boolean:
		if values, ok := any(result).([]bool); ok {
			for i := 0; i < arr.Len(); i++ {
				if !arr.IsNull(i) {
					values[i] = arr.Value(i)
				}
			}
		}
	default:
		panic(fmt.Sprintf("unsupported array type: %T", arr))
	}

	return result
}

// Value returns the value at the given index
func (s *Series[T]) Value(index int) T {
	if index < 0 || index >= s.array.Len() {
		var zero T
		return zero
	}

	var result T

	switch arr := s.array.(type) {
	case *array.String:
		if v, ok := any(&result).(*string); ok && !arr.IsNull(index) {
			*v = arr.Value(index)
		}
	case *array.Int64:
		if v, ok := any(&result).(*int64); ok && !arr.IsNull(index) {
			*v = arr.Value(index)
		}
	case *array.Float64:
		if v, ok := any(&result).(*float64); ok && !arr.IsNull(index) {
			*v = arr.Value(index)
		}
	case *array.Boolean:
		if v, ok := any(&result).(*bool); ok && !arr.IsNull(index) {
			*v = arr.Value(index)
		}
	}

	return result
}

// DataType returns the Arrow data type
func (s *Series[T]) DataType() arrow.DataType {
	return s.array.DataType()
}

// IsNull checks if the value at index is missing
func (s *Series[T]) IsNull(index int) bool {
	return s.array.IsNull(index)
}

// GetAsString returns the value at index rendered as a string.
// Missing values render as the empty string.
func (s *Series[T]) GetAsString(index int) string {
	if index < 0 || index >= s.array.Len() || s.array.IsNull(index) {
		return ""
	}

	switch arr := s.array.(type) {
	case *array.String:
		return arr.Value(index)
	case *array.Int64:
		return strconv.FormatInt(arr.Value(index), 10)
	case *array.Float64:
		return strconv.FormatFloat(arr.Value(index), 'g', -1, 64)
	case *array.Boolean:
		if arr.Value(index) {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// String returns a string representation of the series
func (s *Series[T]) String() string {
	return fmt.Sprintf("Series[%s]: %s (len=%d, nulls=%d)",
		reflect.TypeOf(new(T)).Elem().Name(),
		s.name,
		s.Len(),
		s.NullN())
}

// Array returns the underlying Arrow array (retains a reference)
func (s *Series[T]) Array() arrow.Array {
	if s.array != nil {
		s.array.Retain()
		return s.array
	}
	return nil
}

// Release releases the underlying Arrow memory
func (s *Series[T]) Release() {
	if s.array != nil {
		s.array.Release()
	}
}
