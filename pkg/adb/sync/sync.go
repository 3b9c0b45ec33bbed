// Package sync implements the ADB sync: sub-protocol: the binary framing
// used for STAT/LIST/RECV/SEND/QUIT once a host connection has switched
// out of line-oriented host-protocol mode. See SPEC_FULL.md §4.3.
package sync

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	tagStat = "STAT"
	tagList = "LIST"
	tagDent = "DENT"
	tagDone = "DONE"
	tagData = "DATA"
	tagSend = "SEND"
	tagRecv = "RECV"
	tagQuit = "QUIT"
	tagOkay = "OKAY"
	tagFail = "FAIL"

	// ChunkSize is the maximum number of file bytes carried by one DATA
	// frame in either direction.
	ChunkSize = 64 * 1024

	// SIFDIR marks a remote stat mode as a directory.
	SIFDIR = 0x4000

	defaultPushMode    = 0o644
	executablePushMode = 0o755

	statDataSize = 12
)

// Session drives the sync: sub-protocol over an already-entered stream.
// A Session owns the connection for its entire lifetime: once entered,
// host-protocol framing is abandoned until Quit, after which the owning
// Client must Reconnect before issuing any further command.
type Session struct {
	rw        io.ReadWriter
	r         *bufio.Reader
	Log       *log.Logger
	chunkSize int
}

// NewSession wraps an already-entered sync: stream. rw must be the same
// connection the caller used to send "sync:" and receive its OKAY.
// chunkSize is the maximum number of file bytes carried by one DATA frame
// during a push; a non-positive value falls back to ChunkSize.
func NewSession(rw io.ReadWriter, log *log.Logger, chunkSize int) *Session {
	if chunkSize <= 0 {
		chunkSize = ChunkSize
	}
	return &Session{rw: rw, r: bufio.NewReader(rw), Log: log, chunkSize: chunkSize}
}

// Quit sends the QUIT frame, ending the sync session. The caller must
// reconnect before using the owning Client again.
func (s *Session) Quit() error {
	return s.writeTag(tagQuit, 0)
}

func (s *Session) writeTag(tag string, length uint32) error {
	if len(tag) != 4 {
		return fmt.Errorf("sync: invalid tag %q", tag)
	}
	var header [8]byte
	copy(header[:4], tag)
	binary.LittleEndian.PutUint32(header[4:], length)
	_, err := s.rw.Write(header[:])
	return err
}

func (s *Session) writeBytes(data []byte) error {
	_, err := s.rw.Write(data)
	return err
}

// writeRequest writes a 4-byte tag, the little-endian length of payload,
// then payload itself — the shape shared by STAT/LIST/RECV/SEND requests.
func (s *Session) writeRequest(tag string, payload []byte) error {
	if err := s.writeTag(tag, uint32(len(payload))); err != nil {
		return err
	}
	return s.writeBytes(payload)
}

func (s *Session) readTag() (string, error) {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func (s *Session) readU32() (uint32, error) {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

func (s *Session) readN(n uint32) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// readFailMessage reads the length-prefixed message that follows a FAIL
// tag.
func (s *Session) readFailMessage() (string, error) {
	n, err := s.readU32()
	if err != nil {
		return "", err
	}
	body, err := s.readN(n)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// pushModeFor returns the octal push mode for a local file: 0755 when any
// execute bit is set, otherwise 0644.
func pushModeFor(perm uint32) uint32 {
	if perm&0o111 != 0 {
		return executablePushMode
	}
	return defaultPushMode
}

func epochSeconds(t time.Time) uint32 {
	return uint32(t.Unix())
}
