package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(platform Platform) Options {
	return Options{
		Platform:   platform,
		EntryIDs:   []string{"doom", "quake", "heretic"},
		DockerUser: "someuser",
		RepoName:   "backup",
		MountPath:  "/mnt/games",
	}
}

func TestEmitPosix(t *testing.T) {
	out, err := Emit(testOptions(PlatformPosix))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "#!/bin/sh"))
	assert.Contains(t, out, `DOCKER_USER="someuser"`)
	assert.Contains(t, out, `MOUNT_PATH="/mnt/games"`)
	assert.Contains(t, out, "pull_with_retry")
	assert.Contains(t, out, "docker info")
}

func TestEmitWindows(t *testing.T) {
	out, err := Emit(testOptions(PlatformWindows))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "@echo off"))
	assert.Contains(t, out, "set \"DOCKER_USER=someuser\"")
	assert.Contains(t, out, ":pull_with_retry")
}

func TestEmitDeterministic(t *testing.T) {
	opts := testOptions(PlatformPosix)

	first, err := Emit(opts)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := Emit(opts)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEmitEnumeratesEntriesInOrder(t *testing.T) {
	for _, platform := range []Platform{PlatformPosix, PlatformWindows} {
		out, err := Emit(testOptions(platform))
		require.NoError(t, err)

		// Each id pulled exactly once, in the order supplied.
		pos := 0
		for _, id := range []string{"doom", "quake", "heretic"} {
			needle := ":" + id + "\""
			idx := strings.Index(out[pos:], needle)
			require.GreaterOrEqual(t, idx, 0, "missing %s in %s script", id, platform)
			pos += idx + len(needle)
			assert.NotContains(t, out[pos:], needle)
		}
	}
}

func TestEmitRetryParameters(t *testing.T) {
	out, err := Emit(testOptions(PlatformPosix))
	require.NoError(t, err)

	assert.Contains(t, out, "attempt $attempt/5")
	assert.Contains(t, out, "delay=2")
	assert.Contains(t, out, "delay=60")
}

func TestEmitValidation(t *testing.T) {
	opts := testOptions(PlatformPosix)
	opts.EntryIDs = nil
	_, err := Emit(opts)
	assert.Error(t, err)

	opts = testOptions("plan9")
	_, err = Emit(opts)
	assert.Error(t, err)

	opts = testOptions(PlatformPosix)
	opts.DockerUser = ""
	_, err = Emit(opts)
	assert.Error(t, err)

	opts = testOptions(PlatformPosix)
	opts.MountPath = ""
	_, err = Emit(opts)
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "gamecrate-pull.sh", FileName(PlatformPosix))
	assert.Equal(t, "gamecrate-pull.bat", FileName(PlatformWindows))
}
