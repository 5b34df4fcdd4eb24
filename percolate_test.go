package percolate_test

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	percolate "github.com/brewlab/percolate"
	"github.com/brewlab/percolate/internal/io"
	"github.com/brewlab/percolate/internal/testutil"
)

func TestCleanEndToEnd(t *testing.T) {
	path := testutil.WriteSurveyCSV(t)

	df, report, err := percolate.Clean(path, percolate.NewConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer df.Release()

	assert.Equal(t, 4, df.Len())
	assert.Equal(t, []string{"abandoned_question"}, report.DroppedColumns)

	for _, name := range []string{
		"submission_id", "age", "age_encoded", "age_group",
		"cups_per_day", "cups_per_day_encoded", "consumption_segment",
		"gender", "children", "children_encoded",
	} {
		assert.True(t, df.HasColumn(name), name)
	}

	// Default strategy fills missing demographics with "Unknown"
	summary := df.Summary()
	assert.Equal(t, 4, summary.Rows)
	assert.NotEmpty(t, summary.ConsumptionSegments)
	assert.NotEmpty(t, summary.AgeGroups)
}

func TestCleanMissingFile(t *testing.T) {
	_, _, err := percolate.Clean(filepath.Join(t.TempDir(), "nope.csv"), percolate.NewConfig(), zerolog.Nop())
	assert.Error(t, err)
}

func TestSubsetNames(t *testing.T) {
	assert.Equal(t, []string{
		"consumption", "place", "home_brewing", "on_the_go", "dairy", "sweetener",
	}, percolate.SubsetNames())
}

func TestSubsets(t *testing.T) {
	path := testutil.WriteSurveyCSV(t)

	df, _, err := percolate.Clean(path, percolate.NewConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer df.Release()

	subsets, err := df.Subsets()
	require.NoError(t, err)
	require.Len(t, subsets, 6)

	consumption := subsets["consumption"]
	require.NotNil(t, consumption)
	assert.True(t, consumption.HasColumn("cups_per_day"))
	assert.True(t, consumption.HasColumn("consumption_segment"))

	_, err = df.Subset("espresso")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	path := testutil.WriteSurveyCSV(t)

	df, _, err := percolate.Clean(path, percolate.NewConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer df.Release()

	out := filepath.Join(t.TempDir(), "cleaned.csv")
	require.NoError(t, df.WriteCSV(out))

	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()
	reloaded, err := io.ReadCSVFile(out, io.DefaultCSVOptions(), mem.Allocator)
	require.NoError(t, err)
	defer reloaded.Release()

	assert.Equal(t, df.Len(), reloaded.Len())
	assert.Equal(t, df.Columns(), reloaded.Columns())
}
