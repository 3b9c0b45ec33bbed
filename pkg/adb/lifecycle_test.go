package adb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adbkit/goadb/pkg/adb/adbtest"
)

func TestWaitForTimesOutWhenStateNeverMatches(t *testing.T) {
	srv := &adbtest.Server{States: map[string]string{"state": "offline"}}
	c := newTestClient(t, srv)

	start := time.Now()
	err := c.WaitFor(TransportAny(), "device", 200*time.Millisecond)
	elapsed := time.Since(start)

	require.Error(t, err)
	var argErr *ArgumentError
	assert.ErrorAs(t, err, &argErr)
	assert.Contains(t, err.Error(), "device")
	assert.Less(t, elapsed, 2*time.Second)
}

func TestWaitForReturnsOnceStateMatches(t *testing.T) {
	srv := &adbtest.Server{States: map[string]string{"state": "device"}}
	c := newTestClient(t, srv)

	err := c.WaitFor(TransportAny(), "device", time.Second)
	require.NoError(t, err)
}

func TestRebootRejectsInvalidTarget(t *testing.T) {
	srv := &adbtest.Server{}
	c := newTestClient(t, srv)

	err := c.Reboot(TransportAny(), "not-a-real-target")
	var argErr *ArgumentError
	assert.ErrorAs(t, err, &argErr)
}
