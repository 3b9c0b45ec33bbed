package adb

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adbkit/goadb/pkg/adb/adbtest"
)

func newTestClient(t *testing.T, srv *adbtest.Server) *Client {
	t.Helper()
	require.NoError(t, srv.Start())
	t.Cleanup(func() { srv.Close() })

	host, portStr, err := net.SplitHostPort(srv.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	c, err := NewClient(Options{Host: host, Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestDevicesListsAttachedDevices(t *testing.T) {
	srv := &adbtest.Server{Devices: "emulator-5554\tdevice\n"}
	c := newTestClient(t, srv)

	out, err := c.Devices()
	require.NoError(t, err)
	assert.Contains(t, out, "List of devices attached\nemulator-5554\tdevice")
}

func TestShellReturnsUntrimmedOutput(t *testing.T) {
	srv := &adbtest.Server{ShellResponses: map[string]string{"echo test": "test\n"}}
	c := newTestClient(t, srv)

	out, err := c.Shell(TransportAny(), "echo test")
	require.NoError(t, err)
	assert.Equal(t, "test\n", out)
}

func TestGetStateReturnsConfiguredState(t *testing.T) {
	srv := &adbtest.Server{States: map[string]string{"state": "device"}}
	c := newTestClient(t, srv)

	state, err := c.GetState(TransportAny())
	require.NoError(t, err)
	assert.Equal(t, "device", state)
}

func TestSelectTransportFailureSurfacesServerReject(t *testing.T) {
	srv := &adbtest.Server{RejectTransport: "device not found"}
	c := newTestClient(t, srv)

	_, err := c.GetState(TransportSerial("missing-device"))
	require.Error(t, err)
	var reject *ServerReject
	assert.ErrorAs(t, err, &reject)
	assert.Contains(t, err.Error(), "device not found")
}
