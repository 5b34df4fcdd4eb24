package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoDefaults(t *testing.T) {
	info := Info()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, GoVersion, info.GoVersion)
	assert.False(t, info.BuildTime.IsZero())
}

func TestStringContainsVersion(t *testing.T) {
	info := Info()
	out := info.String()

	assert.True(t, strings.HasPrefix(out, "percolate survey cleaner\n"))
	assert.Contains(t, out, "Version: "+info.Version)
	assert.Contains(t, out, "Go Version: ")
}

func TestStringTruncatesCommit(t *testing.T) {
	info := BuildInfo{
		Version:   "1.2.3",
		BuildDate: unknownValue,
		GitCommit: "abcdef0123456789",
		GoVersion: GoVersion,
	}

	assert.Contains(t, info.String(), "Git Commit: abcdef0\n")
}

func TestIsRelease(t *testing.T) {
	assert.False(t, IsRelease(), "default dev build is not a release")
}
