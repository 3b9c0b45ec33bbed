package adb

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adbkit/goadb/pkg/adb/adbtest"
	syncpkg "github.com/adbkit/goadb/pkg/adb/sync"
)

var pastTime = time.Unix(1000000000, 0)

func TestPushFileRoundTripsThroughPullForVariousSizes(t *testing.T) {
	for _, size := range []int{0, 1, 1024, 1048576} {
		size := size
		t.Run("", func(t *testing.T) {
			srv := &adbtest.Server{}
			c := newTestClient(t, srv)

			data := make([]byte, size)
			for i := range data {
				data[i] = byte(i % 251)
			}
			dir := t.TempDir()
			localPush := filepath.Join(dir, "payload.bin")
			require.NoError(t, os.WriteFile(localPush, data, 0o644))

			session, err := c.EnterSync(TransportAny())
			require.NoError(t, err)
			pushResult := session.PushFile(localPush, "/data/local/tmp/payload.bin", false)
			require.NoError(t, session.Quit())
			require.NoError(t, c.Reconnect())
			assert.Equal(t, syncpkg.KindFile, pushResult.Kind)
			assert.Equal(t, int64(size), pushResult.Bytes)

			session, err = c.EnterSync(TransportAny())
			require.NoError(t, err)
			localPull := filepath.Join(dir, "pulled.bin")
			pullResult := session.PullFile("/data/local/tmp/payload.bin", localPull, false)
			require.NoError(t, session.Quit())

			assert.Equal(t, syncpkg.KindFile, pullResult.Kind)
			pulled, err := os.ReadFile(localPull)
			require.NoError(t, err)
			assert.Equal(t, data, pulled)
		})
	}
}

func TestPullPreservesExecutableMode(t *testing.T) {
	srv := &adbtest.Server{
		Files: map[string]*adbtest.RemoteFile{
			"/data/local/tmp/runme": {Mode: 0o100755, Data: []byte("#!/bin/sh\n"), Mtime: 1700000000},
		},
	}
	c := newTestClient(t, srv)

	session, err := c.EnterSync(TransportAny())
	require.NoError(t, err)
	defer session.Quit()

	dir := t.TempDir()
	local := filepath.Join(dir, "runme")
	result := session.PullFile("/data/local/tmp/runme", local, true)
	require.Equal(t, syncpkg.KindFile, result.Kind)

	info, err := os.Stat(local)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm()&0o755)
}

func TestPullNonexistentFails(t *testing.T) {
	srv := &adbtest.Server{}
	c := newTestClient(t, srv)

	session, err := c.EnterSync(TransportAny())
	require.NoError(t, err)
	defer session.Quit()

	result := session.PullFile("/nope", filepath.Join(t.TempDir(), "nope"), false)
	require.Equal(t, syncpkg.KindFatalAbort, result.Kind)
	assert.ErrorContains(t, result.Err, "ENOENT")
}

func TestPushBatchDeterminismStopsAtFirstFatalOutcome(t *testing.T) {
	srv := &adbtest.Server{
		Files: map[string]*adbtest.RemoteFile{
			"/data/local/tmp": {Mode: syncpkg.SIFDIR},
		},
	}
	c := newTestClient(t, srv)

	dir := t.TempDir()
	good1 := filepath.Join(dir, "a.txt")
	good2 := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(good1, []byte("one"), 0o644))
	require.NoError(t, os.WriteFile(good2, []byte("two"), 0o644))
	missing := filepath.Join(dir, "missing.txt")

	session, err := c.EnterSync(TransportAny())
	require.NoError(t, err)
	defer session.Quit()

	results := session.Push([]string{good1, missing, good2}, "/data/local/tmp/", false)
	require.Len(t, results, 2)
	assert.Equal(t, syncpkg.KindFile, results[0].Kind)
	assert.Equal(t, syncpkg.KindFatalAbort, results[1].Kind)
}

func TestPushDirectoryAggregatesByteCountAndDuration(t *testing.T) {
	srv := &adbtest.Server{
		Files: map[string]*adbtest.RemoteFile{
			"/data/local/tmp/stage": {Mode: syncpkg.SIFDIR},
		},
	}
	c := newTestClient(t, srv)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("twotwo"), 0o644))

	session, err := c.EnterSync(TransportAny())
	require.NoError(t, err)
	defer session.Quit()

	results := session.PushDirectory(dir, "/data/local/tmp/stage", false)
	require.Len(t, results, 3)

	summary := results[0]
	assert.Equal(t, syncpkg.KindDirectory, summary.Kind)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, int64(3+6), summary.Bytes)
	assert.GreaterOrEqual(t, summary.Dur, time.Duration(0))
}

func TestPushSyncSkipsUnchangedFile(t *testing.T) {
	srv := &adbtest.Server{
		Files: map[string]*adbtest.RemoteFile{
			"/data/local/tmp/same.txt": {Mode: 0o100644, Data: []byte("old"), Mtime: 4102444800},
		},
	}
	c := newTestClient(t, srv)

	dir := t.TempDir()
	local := filepath.Join(dir, "same.txt")
	require.NoError(t, os.WriteFile(local, []byte("new"), 0o644))
	// Force local mtime well before the remote's so --sync treats it as
	// unchanged.
	require.NoError(t, os.Chtimes(local, pastTime, pastTime))

	session, err := c.EnterSync(TransportAny())
	require.NoError(t, err)
	defer session.Quit()

	result := session.PushFile(local, "/data/local/tmp/same.txt", true)
	assert.Equal(t, syncpkg.KindSkipped, result.Kind)
}
