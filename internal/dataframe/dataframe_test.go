package dataframe

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/brewlab/percolate/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDataFrame(mem memory.Allocator) *DataFrame {
	ids := series.New("submission_id", []string{"a1", "b2", "c3"}, mem)
	ages := series.NewNullable("age", []string{"25-34 years old", "", "45-54 years old"}, []bool{true, false, true}, mem)
	cups := series.NewNullable("cups_per_day_encoded", []int64{1, 2, 0}, []bool{true, true, false}, mem)

	return New(ids, ages, cups)
}

func TestNewDataFrame(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := createTestDataFrame(mem)
	defer df.Release()

	assert.Equal(t, 3, df.Len())
	assert.Equal(t, 3, df.Width())
	assert.Equal(t, []string{"submission_id", "age", "cups_per_day_encoded"}, df.Columns())
	assert.True(t, df.HasColumn("age"))
	assert.False(t, df.HasColumn("gender"))
}

func TestSelectSkipsAbsentAndDuplicateColumns(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := createTestDataFrame(mem)
	defer df.Release()

	selected := df.Select("age", "missing_column", "age", "submission_id")

	assert.Equal(t, []string{"age", "submission_id"}, selected.Columns())
	assert.Equal(t, 3, selected.Len())
}

func TestDrop(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := createTestDataFrame(mem)
	defer df.Release()

	dropped := df.Drop("age")

	assert.Equal(t, []string{"submission_id", "cups_per_day_encoded"}, dropped.Columns())
	assert.False(t, dropped.HasColumn("age"))
}

func TestWithColumnAppendsNewColumn(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := createTestDataFrame(mem)
	defer df.Release()

	gender := series.New("gender", []string{"Male", "Female", "Male"}, mem)
	out := df.WithColumn(gender)

	assert.Equal(t, []string{"submission_id", "age", "cups_per_day_encoded", "gender"}, out.Columns())
}

func TestWithColumnReplacesInPlace(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := createTestDataFrame(mem)
	defer df.Release()

	replacement := series.New("age", []string{"x", "y", "z"}, mem)
	out := df.WithColumn(replacement)

	// Position preserved, values replaced
	assert.Equal(t, []string{"submission_id", "age", "cups_per_day_encoded"}, out.Columns())
	col, ok := out.Column("age")
	require.True(t, ok)
	assert.Equal(t, "x", col.GetAsString(0))
}

func TestRename(t *testing.T) {
	mem := memory.NewGoAllocator()

	what := series.New("What is your age?", []string{"25-34 years old"}, mem)
	gender := series.New("Gender", []string{"Female"}, mem)
	other := series.New("favorite roast", []string{"dark"}, mem)
	df := New(what, gender, other)
	defer df.Release()

	renamed, applied := df.Rename(map[string]string{
		"What is your age?": "age",
		"Gender":            "gender",
		"Nonexistent":       "nope",
	})

	assert.Equal(t, []string{"age", "gender", "favorite roast"}, renamed.Columns())
	assert.Equal(t, map[string]string{
		"What is your age?": "age",
		"Gender":            "gender",
	}, applied)

	col, ok := renamed.Column("age")
	require.True(t, ok)
	assert.Equal(t, "25-34 years old", col.GetAsString(0))
}

func TestCopyIsIndependentAndPreservesNulls(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := createTestDataFrame(mem)
	copied := df.Copy()

	// Releasing the source must not affect the copy
	df.Release()

	assert.Equal(t, 3, copied.Len())

	age, ok := copied.Column("age")
	require.True(t, ok)
	assert.True(t, age.IsNull(1))
	assert.Equal(t, "25-34 years old", age.GetAsString(0))

	cups, ok := copied.Column("cups_per_day_encoded")
	require.True(t, ok)
	assert.True(t, cups.IsNull(2))
	assert.Equal(t, 1, cups.NullN())
}

func TestNullFraction(t *testing.T) {
	mem := memory.NewGoAllocator()

	s := series.NewNullable("col", []string{"a", "", "", ""}, []bool{true, false, false, false}, mem)
	defer s.Release()
	assert.InDelta(t, 0.75, NullFraction(s), 1e-9)

	empty := series.New("empty", []string{}, mem)
	defer empty.Release()
	assert.Zero(t, NullFraction(empty))
}

func TestTypePredicates(t *testing.T) {
	mem := memory.NewGoAllocator()

	strs := series.New("s", []string{"a"}, mem)
	ints := series.New("i", []int64{1}, mem)
	bools := series.New("b", []bool{true}, mem)
	defer strs.Release()
	defer ints.Release()
	defer bools.Release()

	assert.True(t, IsStringType(strs))
	assert.False(t, IsStringType(ints))
	assert.True(t, IsInt64Type(ints))
	assert.True(t, IsBooleanType(bools))
	assert.False(t, IsBooleanType(strs))
}

func TestTypedValueExtraction(t *testing.T) {
	mem := memory.NewGoAllocator()

	strs := series.NewNullable("s", []string{"a", ""}, []bool{true, false}, mem)
	defer strs.Release()

	values, valid, err := StringValues(strs)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", ""}, values)
	assert.Equal(t, []bool{true, false}, valid)

	// Wrong type surfaces a TableError
	ints := series.New("i", []int64{1}, mem)
	defer ints.Release()
	_, _, err = StringValues(ints)
	assert.Error(t, err)

	intVals, intValid, err := Int64Values(ints)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, intVals)
	assert.Equal(t, []bool{true}, intValid)

	bools := series.NewNullable("b", []bool{true, false, false}, []bool{true, true, false}, mem)
	defer bools.Release()
	boolVals, boolValid, err := BoolValues(bools)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, boolVals)
	assert.Equal(t, []bool{true, true, false}, boolValid)
}

func TestStringRepresentation(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := createTestDataFrame(mem)
	defer df.Release()

	repr := df.String()
	assert.Contains(t, repr, "DataFrame[3x3]")
	assert.Contains(t, repr, "age")

	empty := New()
	assert.Equal(t, "DataFrame[empty]", empty.String())
}
