package version

import (
	"runtime/debug"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseBuildTime(t *testing.T) {
	want := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	assert.True(t, parseBuildTime("2024-05-01T12:30:00Z").Equal(want))
	assert.True(t, parseBuildTime("2024-05-01T12:30:00").Equal(want))
	assert.True(t, parseBuildTime("2024-05-01 12:30:00").Equal(want))
	assert.True(t, parseBuildTime("unknown").IsZero())
	assert.True(t, parseBuildTime("yesterday").IsZero())
}

func TestFillFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2024-05-01T12:30:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	info := BuildInfo{Version: "dev", GitCommit: "unknown"}
	fillFromBuildInfo(&info, bi)

	assert.Equal(t, "dev-0123456", info.Version)
	assert.Equal(t, "0123456789abcdef", info.GitCommit)
	assert.False(t, info.BuildTime.IsZero())
	assert.True(t, info.Dirty)
	assert.False(t, info.IsRelease())
	assert.Equal(t, "dev-0123456", info.Short(), "commit is not repeated")
}

func TestFillFromBuildInfo_LdflagsWin(t *testing.T) {
	bi := &debug.BuildInfo{
		Main:     debug.Module{Version: "v0.0.1"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffffffff"}},
	}

	info := BuildInfo{Version: "v1.2.0", GitCommit: "abcdef0123"}
	fillFromBuildInfo(&info, bi)

	assert.Equal(t, "v1.2.0", info.Version)
	assert.Equal(t, "abcdef0123", info.GitCommit)
	assert.True(t, info.IsRelease())
	assert.Equal(t, "v1.2.0 (abcdef0)", info.Short())
}

func TestBuildInfoString(t *testing.T) {
	info := BuildInfo{
		Version:   "v1.2.0",
		GitCommit: "unknown",
		GoVersion: "go1.24.4",
		Platform:  "linux/amd64",
	}

	assert.Equal(t, "sitecfg v1.2.0\nGo: go1.24.4\nPlatform: linux/amd64", info.String())

	info.Dirty = true
	assert.Contains(t, info.String(), "Working directory: dirty")
}

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
