package sync

import (
	"encoding/binary"
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() { client.Close(); server.Close() })
	return NewSession(client, nil, 0), server
}

func TestStatDecodesModeBits(t *testing.T) {
	session, server := newTestSession(t)

	go func() {
		buf := make([]byte, 4+4+len("/sdcard"))
		io.ReadFull(server, buf)
		server.Write([]byte("STAT"))
		body := make([]byte, 12)
		binary.LittleEndian.PutUint32(body[0:4], SIFDIR|0o755)
		binary.LittleEndian.PutUint32(body[4:8], 4096)
		binary.LittleEndian.PutUint32(body[8:12], 1700000000)
		server.Write(body)
	}()

	st, err := session.Stat("/sdcard")
	require.NoError(t, err)
	assert.True(t, st.IsDir())
	assert.Equal(t, uint32(4096), st.Size)
	assert.Equal(t, uint32(1700000000), st.Mtime)
}

func TestStatOrZeroTreatsNonexistentAsZero(t *testing.T) {
	session, server := newTestSession(t)

	go func() {
		buf := make([]byte, 4+4+len("/nope"))
		io.ReadFull(server, buf)
		server.Write([]byte("FAIL"))
		server.Write([]byte{6, 0, 0, 0})
		server.Write([]byte("ENOENT"))
	}()

	st, err := session.StatOrZero("/nope")
	require.NoError(t, err)
	assert.False(t, st.Exists())
}

func TestListFiltersDotAndDotDot(t *testing.T) {
	session, server := newTestSession(t)

	go func() {
		buf := make([]byte, 4+4+len("/sdcard"))
		io.ReadFull(server, buf)
		writeDent(server, ".", 0, SIFDIR)
		writeDent(server, "..", 0, SIFDIR)
		writeDent(server, "file.txt", 123, 0o100644)
		server.Write([]byte("DONE"))
		server.Write([]byte{0, 0, 0, 0})
	}()

	entries, err := session.List("/sdcard")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "file.txt", entries[0].Name)
}

func writeDent(conn net.Conn, name string, size, mode uint32) {
	conn.Write([]byte("DENT"))
	fields := make([]byte, 16)
	binary.LittleEndian.PutUint32(fields[0:4], mode)
	binary.LittleEndian.PutUint32(fields[4:8], size)
	binary.LittleEndian.PutUint32(fields[8:12], 0)
	binary.LittleEndian.PutUint32(fields[12:16], uint32(len(name)))
	conn.Write(fields)
	conn.Write([]byte(name))
}
