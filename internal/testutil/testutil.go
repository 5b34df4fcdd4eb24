// Package testutil provides common testing utilities shared across the
// percolate test files: memory allocator setup, survey-shaped fixtures,
// and column assertions.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/brewlab/percolate/internal/dataframe"
	"github.com/brewlab/percolate/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoryContext provides a memory allocator with automatic cleanup.
type TestMemoryContext struct {
	Allocator memory.Allocator
	cleanup   func()
}

// Release performs cleanup of the memory context.
func (tmc *TestMemoryContext) Release() {
	if tmc.cleanup != nil {
		tmc.cleanup()
	}
}

// SetupMemoryTest creates a memory allocator with automatic cleanup for
// tests. Release the returned context with defer.
func SetupMemoryTest(tb testing.TB) *TestMemoryContext {
	tb.Helper()
	return &TestMemoryContext{
		Allocator: memory.NewGoAllocator(),
		cleanup:   func() {},
	}
}

// RawSurveyCSV is a small survey export in its original shape: long
// question headers, a leading BOM, empty cells for missing answers, and
// an all-empty column that the pipeline should drop.
const RawSurveyCSV = "\ufeff" + `Submission ID,What is your age?,How many cups of coffee do you typically drink per day?,Gender,Education Level,Employment Status,Number of Children,Political Affiliation,Where do you typically drink coffee? (At home),What kind of dairy do you add? (Whole milk),abandoned_question
s01,25-34 years old,2,Female,Bachelor's degree,Employed full-time,0,Independent,true,false,
s02,18-24 years old,More than 4,Male,Master's degree,Student,More than 3,,false,true,
s03,25-34 years old,1,,Bachelor's degree,Employed full-time,1,Democrat,,false,
s04,>65 years old,Less than 1,Female,Doctorate or professional degree,Retired,2,Republican,true,,
`

// WriteSurveyCSV writes the raw survey fixture into a temp directory
// and returns its path.
func WriteSurveyCSV(tb testing.TB) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "survey.csv")
	require.NoError(tb, os.WriteFile(path, []byte(RawSurveyCSV), 0o600))
	return path
}

// CleanedSurveyFrame builds a table shaped like the pipeline's output:
// renamed columns, encoded ranks, and derived labels.
func CleanedSurveyFrame(tb testing.TB, mem memory.Allocator) *dataframe.DataFrame {
	tb.Helper()
	return dataframe.New(
		series.New("submission_id", []string{"s01", "s02"}, mem),
		series.New("age", []string{"25-34 years old", "18-24 years old"}, mem),
		series.New("age_encoded", []int64{2, 1}, mem),
		series.New("age_group", []string{"Young Millennials (25-34)", "Gen Z (<25)"}, mem),
		series.New("gender", []string{"Female", "Male"}, mem),
		series.New("cups_per_day", []string{"2", "More than 4"}, mem),
		series.New("cups_per_day_encoded", []int64{2, 5}, mem),
		series.New("consumption_segment", []string{"Moderate (1-2 cups)", "Heavy (3+ cups)"}, mem),
		series.NewNullable("children", []string{"0", ""}, []bool{true, false}, mem),
		series.NewNullable("children_encoded", []int64{0, 0}, []bool{true, false}, mem),
		series.New("political_affiliation", []string{"Independent", "Democrat"}, mem),
	)
}

// AssertColumnStrings renders a column with GetAsString and compares it
// against the expected values ("" for missing).
func AssertColumnStrings(tb testing.TB, df *dataframe.DataFrame, name string, expected []string) {
	tb.Helper()
	col, ok := df.Column(name)
	require.True(tb, ok, "column %q not found", name)
	require.Equal(tb, len(expected), col.Len(), "column %q length", name)
	for i, want := range expected {
		assert.Equal(tb, want, col.GetAsString(i), "%s[%d]", name, i)
	}
}
