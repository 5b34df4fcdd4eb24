package dataframe

import (
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/brewlab/percolate/internal/errors"
)

// StringValues extracts a string column as a value slice plus validity
// mask. valid[i] == false marks a missing row.
func StringValues(s ISeries) ([]string, []bool, error) {
	arr := s.Array()
	defer arr.Release()

	typedArr, ok := arr.(*array.String)
	if !ok {
		return nil, nil, errors.NewTypeMismatchError("StringValues", s.Name(), "string", s.DataType().String())
	}

	values := make([]string, typedArr.Len())
	valid := make([]bool, typedArr.Len())
	for i := 0; i < typedArr.Len(); i++ {
		if !typedArr.IsNull(i) {
			values[i] = typedArr.Value(i)
			valid[i] = true
		}
	}
	return values, valid, nil
}

// Int64Values extracts an int64 column as a value slice plus validity mask.
func Int64Values(s ISeries) ([]int64, []bool, error) {
	arr := s.Array()
	defer arr.Release()

	typedArr, ok := arr.(*array.Int64)
	if !ok {
		return nil, nil, errors.NewTypeMismatchError("Int64Values", s.Name(), "int64", s.DataType().String())
	}

	values := make([]int64, typedArr.Len())
	valid := make([]bool, typedArr.Len())
	for i := 0; i < typedArr.Len(); i++ {
		if !typedArr.IsNull(i) {
			values[i] = typedArr.Value(i)
			valid[i] = true
		}
	}
	return values, valid, nil
}

// BoolValues extracts a boolean column as a value slice plus validity mask.
func BoolValues(s ISeries) ([]bool, []bool, error) {
	arr := s.Array()
	defer arr.Release()

	typedArr, ok := arr.(*array.Boolean)
	if !ok {
		return nil, nil, errors.NewTypeMismatchError("BoolValues", s.Name(), "bool", s.DataType().String())
	}

	values := make([]bool, typedArr.Len())
	valid := make([]bool, typedArr.Len())
	for i := 0; i < typedArr.Len(); i++ {
		if !typedArr.IsNull(i) {
			values[i] = typedArr.Value(i)
			valid[i] = true
		}
	}
	return values, valid, nil
}
