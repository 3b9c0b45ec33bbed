package sync

import (
	"encoding/binary"
	"fmt"
)

// StatData mirrors the sync: STAT response body: mode, size, and mtime,
// all little-endian u32 on the wire.
type StatData struct {
	Mode  uint32
	Size  uint32
	Mtime uint32
}

// IsDir reports whether Mode carries the directory bit.
func (d StatData) IsDir() bool {
	return d.Mode&SIFDIR != 0
}

// Exists reports whether the remote path resolved to anything at all.
// adbd returns mode 0 for a path that does not exist.
func (d StatData) Exists() bool {
	return d.Mode != 0
}

// Stat issues a STAT request for path and returns the decoded response.
// A non-STAT reply tag is a hard error — callers that only need an
// existence/directory check should use StatOrZero instead, since adbd
// signals "does not exist" via a zeroed STAT body, not an alternate tag.
func (s *Session) Stat(path string) (StatData, error) {
	if err := s.writeRequest(tagStat, []byte(path)); err != nil {
		return StatData{}, err
	}
	tag, err := s.readTag()
	if err != nil {
		return StatData{}, err
	}
	if tag != tagStat {
		if tag == tagFail {
			msg, err := s.readFailMessage()
			if err != nil {
				return StatData{}, err
			}
			return StatData{}, fmt.Errorf("sync: stat %s: %s", path, msg)
		}
		return StatData{}, fmt.Errorf("sync: stat %s: unexpected reply tag %q", path, tag)
	}
	body, err := s.readN(statDataSize)
	if err != nil {
		return StatData{}, err
	}
	return StatData{
		Mode:  binary.LittleEndian.Uint32(body[0:4]),
		Size:  binary.LittleEndian.Uint32(body[4:8]),
		Mtime: binary.LittleEndian.Uint32(body[8:12]),
	}, nil
}

// StatOrZero issues a STAT request and treats any non-STAT reply as "not
// available" rather than a hard error, per §4.3.1's existence-check
// variant.
func (s *Session) StatOrZero(path string) (StatData, error) {
	if err := s.writeRequest(tagStat, []byte(path)); err != nil {
		return StatData{}, err
	}
	tag, err := s.readTag()
	if err != nil {
		return StatData{}, err
	}
	if tag != tagStat {
		return StatData{}, nil
	}
	body, err := s.readN(statDataSize)
	if err != nil {
		return StatData{}, err
	}
	return StatData{
		Mode:  binary.LittleEndian.Uint32(body[0:4]),
		Size:  binary.LittleEndian.Uint32(body[4:8]),
		Mtime: binary.LittleEndian.Uint32(body[8:12]),
	}, nil
}
