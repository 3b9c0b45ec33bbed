package sync

import (
	"encoding/binary"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serveSend drains one SEND request's DATA frames from server, returning
// the number of DATA frames seen and the total bytes carried.
func serveSend(server net.Conn) (frames int, total int64) {
	header := make([]byte, 8)
	io.ReadFull(server, header) // SEND tag + payload length
	payloadLen := binary.LittleEndian.Uint32(header[4:8])
	io.ReadFull(server, make([]byte, payloadLen)) // "<remote-path>,<mode>"

	for {
		tagBuf := make([]byte, 4)
		if _, err := io.ReadFull(server, tagBuf); err != nil {
			return frames, total
		}
		lenBuf := make([]byte, 4)
		io.ReadFull(server, lenBuf)
		n := binary.LittleEndian.Uint32(lenBuf)
		switch string(tagBuf) {
		case "DATA":
			io.ReadFull(server, make([]byte, n))
			frames++
			total += int64(n)
		case "DONE":
			server.Write([]byte("OKAY"))
			server.Write([]byte{0, 0, 0, 0})
			return frames, total
		}
	}
}

func TestPushHonorsConfiguredChunkSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payload.bin")
	data := make([]byte, 10*1024)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	session := NewSession(client, nil, 4*1024)

	done := make(chan struct{})
	var frames int
	var total int64
	go func() {
		frames, total = serveSend(server)
		close(done)
	}()

	result := session.PushFile(path, "/data/local/tmp/payload.bin", false)
	<-done

	require.Equal(t, KindFile, result.Kind)
	assert.Equal(t, int64(len(data)), total)
	assert.Equal(t, 3, frames) // 4KiB + 4KiB + 2KiB chunks
}

func TestNewSessionDefaultsChunkSizeWhenNonPositive(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	session := NewSession(client, nil, 0)
	assert.Equal(t, ChunkSize, session.chunkSize)
}
