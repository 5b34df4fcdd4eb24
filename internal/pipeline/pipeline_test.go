package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewlab/percolate/internal/config"
	"github.com/brewlab/percolate/internal/dataframe"
	"github.com/brewlab/percolate/internal/errors"
	"github.com/brewlab/percolate/internal/io"
	"github.com/brewlab/percolate/internal/series"
)

const sampleSurvey = `Submission ID,What is your age?,How many cups of coffee do you typically drink per day?,Gender,Number of Children,Where do you typically drink coffee? (At home),junk
a1,25-34 years old,2,Female,0,true,
b2,18-24 years old,More than 4,,More than 3,false,
c3,25-34 years old,1,Female,1,,
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleSurvey), 0o600))
	return path
}

func TestDropHighMissingUsesStrictComparison(t *testing.T) {
	mem := memory.NewGoAllocator()

	// 2 of 4 values missing: fraction exactly 0.5
	half := series.NewNullable("half", []string{"a", "", "b", ""},
		[]bool{true, false, true, false}, mem)
	full := series.New("full", []string{"w", "x", "y", "z"}, mem)
	df := dataframe.New(half, full)
	defer df.Release()

	kept, dropped := DropHighMissing(df, 0.5)
	assert.Empty(t, dropped, "fraction equal to threshold is retained")
	assert.True(t, kept.HasColumn("half"))

	pruned, dropped := DropHighMissing(df, 0.49)
	assert.Equal(t, []string{"half"}, dropped)
	assert.False(t, pruned.HasColumn("half"))
	assert.True(t, pruned.HasColumn("full"))
}

func TestRunCleansEndToEnd(t *testing.T) {
	path := writeSample(t)

	cfg := config.NewConfig()
	cfg.ImputeStrategy = "mode"
	df, report, err := Run(path, cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, report)

	// All-empty column dropped, survey headers renamed
	assert.Equal(t, []string{"junk"}, report.DroppedColumns)
	assert.False(t, df.HasColumn("junk"))
	for _, name := range []string{"submission_id", "age", "cups_per_day", "gender", "children"} {
		assert.True(t, df.HasColumn(name), name)
	}

	// Ordinals encoded and derived features built
	for _, name := range []string{"age_encoded", "cups_per_day_encoded", "children_encoded",
		"consumption_segment", "age_group"} {
		assert.True(t, df.HasColumn(name), name)
	}
	segments, _ := df.Column("consumption_segment")
	assert.Equal(t, "Moderate (1-2 cups)", segments.GetAsString(0))
	assert.Equal(t, "Heavy (3+ cups)", segments.GetAsString(1))

	// Mode imputation fills the missing gender
	gender, _ := df.Column("gender")
	assert.Zero(t, gender.NullN())
	assert.Equal(t, "Female", gender.GetAsString(1))
	require.Len(t, report.Imputations, 1)
	assert.Equal(t, "gender", report.Imputations[0].Column)

	// Binary question back-filled with false
	assert.Equal(t, []string{"Where do you typically drink coffee? (At home)"}, report.BinaryFilled)
	binary, _ := df.Column("Where do you typically drink coffee? (At home)")
	assert.Zero(t, binary.NullN())
	assert.Equal(t, "false", binary.GetAsString(2))

	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, df.Width(), report.Columns)
	assert.Empty(t, report.OutputPath)
}

func TestRunPersistsWhenOutputPathSet(t *testing.T) {
	path := writeSample(t)
	out := filepath.Join(t.TempDir(), "cleaned.csv")

	cfg := config.NewConfig()
	cfg.OutputPath = out
	df, report, err := Run(path, cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, out, report.OutputPath)

	mem := memory.NewGoAllocator()
	reloaded, err := io.ReadCSVFile(out, io.DefaultCSVOptions(), mem)
	require.NoError(t, err)
	assert.Equal(t, df.Len(), reloaded.Len())
	assert.Equal(t, df.Columns(), reloaded.Columns())
}

func TestRunHonorsZeroDropThreshold(t *testing.T) {
	path := writeSample(t)

	cfg := config.NewConfig()
	cfg.DropThreshold = 0
	df, report, err := Run(path, cfg, zerolog.Nop())
	require.NoError(t, err)

	// Threshold 0 drops every column carrying a missing value, not just
	// the all-empty one
	assert.Equal(t, []string{
		"Gender",
		"Where do you typically drink coffee? (At home)",
		"junk",
	}, report.DroppedColumns)
	assert.False(t, df.HasColumn("gender"))
	assert.True(t, df.HasColumn("submission_id"))
}

func TestRunEncodesNumericCupsColumn(t *testing.T) {
	// Every cups answer parses as an integer, so the reader infers int64;
	// the encoded and derived columns must still appear
	csv := "Submission ID,How many cups of coffee do you typically drink per day?\na1,1\nb2,2\nc3,3\n"
	path := filepath.Join(t.TempDir(), "numeric.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	df, report, err := Run(path, config.NewConfig(), zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, report.Encodings, 1)
	assert.Equal(t, "cups_per_day", report.Encodings[0].Column)
	assert.Equal(t, []string{"1", "2", "3"}, report.Encodings[0].Unmapped)

	encoded, ok := df.Column("cups_per_day_encoded")
	require.True(t, ok)
	assert.Equal(t, 3, encoded.NullN())

	segments, ok := df.Column("consumption_segment")
	require.True(t, ok)
	for i := 0; i < segments.Len(); i++ {
		assert.Equal(t, "Unknown", segments.GetAsString(i))
	}
}

func TestRunRejectsEmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	header := "Submission ID,What is your age?\n"
	require.NoError(t, os.WriteFile(path, []byte(header), 0o600))

	_, _, err := Run(path, config.NewConfig(), zerolog.Nop())
	assert.ErrorIs(t, err, errors.ErrEmptyTable)
}

func TestRunMissingSourceIsFatal(t *testing.T) {
	_, _, err := Run(filepath.Join(t.TempDir(), "absent.csv"), config.Config{}, zerolog.Nop())
	assert.Error(t, err)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	path := writeSample(t)

	_, _, err := Run(path, config.Config{ImputeStrategy: "median"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := dataframe.New(
		series.NewNullable("gender", []string{"Female", "", "Male", "Female"},
			[]bool{true, false, true, true}, mem),
		series.New("consumption_segment", []string{
			"Moderate (1-2 cups)", "Moderate (1-2 cups)", "Heavy (3+ cups)", "Light (<1 cup)",
		}, mem),
		series.New("age_encoded", []int64{1, 2, 2, 3}, mem),
	)
	defer df.Release()

	s := Summarize(df)

	assert.Equal(t, 4, s.Rows)
	assert.Equal(t, 3, s.Columns)
	assert.Equal(t, 1, s.MissingCells)
	assert.InDelta(t, 100.0/12.0, s.MissingPct, 0.001)
	assert.Equal(t, 2, s.TypeCounts["utf8"])
	assert.Equal(t, 1, s.TypeCounts["int64"])

	require.NotEmpty(t, s.ConsumptionSegments)
	assert.Equal(t, ValueCount{Value: "Moderate (1-2 cups)", Count: 2}, s.ConsumptionSegments[0])
	assert.Empty(t, s.AgeGroups, "no age_group column in fixture")
}

func TestValueCountsSkipsMissingAndOrdersDeterministically(t *testing.T) {
	mem := memory.NewGoAllocator()

	col := series.NewNullable("flavor",
		[]string{"mocha", "latte", "", "latte", "mocha"},
		[]bool{true, true, false, true, true}, mem)

	counts := ValueCounts(col)
	assert.Equal(t, []ValueCount{
		{Value: "latte", Count: 2},
		{Value: "mocha", Count: 2},
	}, counts)
}
