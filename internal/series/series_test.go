package series

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
)

func TestNewSeries(t *testing.T) {
	mem := memory.NewGoAllocator()

	tests := []struct {
		name           string
		columnName     string
		data           interface{}
		expectedLen    int
		expectedValues interface{}
	}{
		{
			name:           "string series",
			columnName:     "gender",
			data:           []string{"Male", "Female", "Non-binary"},
			expectedLen:    3,
			expectedValues: []string{"Male", "Female", "Non-binary"},
		},
		{
			name:           "int64 series",
			columnName:     "age_encoded",
			data:           []int64{0, 2, 6},
			expectedLen:    3,
			expectedValues: []int64{0, 2, 6},
		},
		{
			name:           "float64 series",
			columnName:     "score",
			data:           []float64{1.5, 2.0, 3.25},
			expectedLen:    3,
			expectedValues: []float64{1.5, 2.0, 3.25},
		},
		{
			name:           "bool series",
			columnName:     "drinks_at_home",
			data:           []bool{true, false, true},
			expectedLen:    3,
			expectedValues: []bool{true, false, true},
		},
		{
			name:           "empty string series",
			columnName:     "empty",
			data:           []string{},
			expectedLen:    0,
			expectedValues: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			switch data := tt.data.(type) {
			case []string:
				s := New(tt.columnName, data, mem)
				defer s.Release()
				assert.Equal(t, tt.columnName, s.Name())
				assert.Equal(t, tt.expectedLen, s.Len())
				assert.Zero(t, s.NullN())
				if tt.expectedLen > 0 {
					assert.Equal(t, tt.expectedValues, s.Values())
				}
			case []int64:
				s := New(tt.columnName, data, mem)
				defer s.Release()
				assert.Equal(t, tt.columnName, s.Name())
				assert.Equal(t, tt.expectedLen, s.Len())
				if tt.expectedLen > 0 {
					assert.Equal(t, tt.expectedValues, s.Values())
				}
			case []float64:
				s := New(tt.columnName, data, mem)
				defer s.Release()
				assert.Equal(t, tt.columnName, s.Name())
				assert.Equal(t, tt.expectedLen, s.Len())
				if tt.expectedLen > 0 {
					assert.Equal(t, tt.expectedValues, s.Values())
				}
			case []bool:
				s := New(tt.columnName, data, mem)
				defer s.Release()
				assert.Equal(t, tt.columnName, s.Name())
				assert.Equal(t, tt.expectedLen, s.Len())
				if tt.expectedLen > 0 {
					assert.Equal(t, tt.expectedValues, s.Values())
				}
			}
		})
	}
}

func TestNewNullableSeries(t *testing.T) {
	mem := memory.NewGoAllocator()

	s := NewNullable("education", []string{"Bachelor's degree", "", "Master's degree"}, []bool{true, false, true}, mem)
	defer s.Release()

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 1, s.NullN())
	assert.False(t, s.IsNull(0))
	assert.True(t, s.IsNull(1))
	assert.False(t, s.IsNull(2))

	// Missing slots surface as zero values
	assert.Equal(t, []string{"Bachelor's degree", "", "Master's degree"}, s.Values())
}

func TestNewNullableInt64Series(t *testing.T) {
	mem := memory.NewGoAllocator()

	s := NewNullable("cups_per_day_encoded", []int64{2, 0, 5}, []bool{true, false, true}, mem)
	defer s.Release()

	assert.Equal(t, 1, s.NullN())
	assert.True(t, s.IsNull(1))
	assert.Equal(t, int64(2), s.Value(0))
	assert.Equal(t, int64(0), s.Value(1))
	assert.Equal(t, int64(5), s.Value(2))
}

func TestSeriesValue(t *testing.T) {
	mem := memory.NewGoAllocator()

	data := []string{"first", "second", "third"}
	s := New("test", data, mem)
	defer s.Release()

	assert.Equal(t, "first", s.Value(0))
	assert.Equal(t, "second", s.Value(1))
	assert.Equal(t, "third", s.Value(2))

	// Invalid indices return the zero value
	assert.Equal(t, "", s.Value(-1))
	assert.Equal(t, "", s.Value(3))
}

func TestSeriesGetAsString(t *testing.T) {
	mem := memory.NewGoAllocator()

	strs := NewNullable("s", []string{"a", ""}, []bool{true, false}, mem)
	defer strs.Release()
	assert.Equal(t, "a", strs.GetAsString(0))
	assert.Equal(t, "", strs.GetAsString(1))

	ints := NewNullable("i", []int64{42, 0}, []bool{true, false}, mem)
	defer ints.Release()
	assert.Equal(t, "42", ints.GetAsString(0))
	assert.Equal(t, "", ints.GetAsString(1))

	bools := New("b", []bool{true, false}, mem)
	defer bools.Release()
	assert.Equal(t, "true", bools.GetAsString(0))
	assert.Equal(t, "false", bools.GetAsString(1))

	floats := New("f", []float64{1.5}, mem)
	defer floats.Release()
	assert.Equal(t, "1.5", floats.GetAsString(0))

	// Out of range renders empty
	assert.Equal(t, "", floats.GetAsString(9))
}

func TestNewNullableMaskLengthMismatchPanics(t *testing.T) {
	mem := memory.NewGoAllocator()

	assert.Panics(t, func() {
		NewNullable("bad", []string{"a", "b"}, []bool{true}, mem)
	})
}
