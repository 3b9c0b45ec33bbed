package adb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adbkit/goadb/pkg/adb/adbtest"
)

func TestForwardAddSendsCommandShape(t *testing.T) {
	srv := &adbtest.Server{}
	c := newTestClient(t, srv)

	err := c.ForwardAdd(TransportAny(), "tcp:8000", "tcp:9000", false)
	require.NoError(t, err)
}

func TestForwardListContainsConfiguredMapping(t *testing.T) {
	srv := &adbtest.Server{ForwardList: "tcp:8000 tcp:9000\n"}
	c := newTestClient(t, srv)

	out, err := c.ForwardList()
	require.NoError(t, err)
	assert.Contains(t, out, "tcp:8000 tcp:9000")
}

func TestReverseAddUsesDoubleOKReplyShape(t *testing.T) {
	srv := &adbtest.Server{}
	c := newTestClient(t, srv)

	_, err := c.ReverseAdd(TransportAny(), "tcp:9000", "tcp:8000", false)
	assert.NoError(t, err)
}

func TestReverseListUsesSingleOKReplyShape(t *testing.T) {
	srv := &adbtest.Server{ReverseList: "tcp:9000 tcp:8000\n"}
	c := newTestClient(t, srv)

	out, err := c.ReverseList(TransportAny())
	require.NoError(t, err)
	assert.Contains(t, out, "tcp:9000 tcp:8000")
}
