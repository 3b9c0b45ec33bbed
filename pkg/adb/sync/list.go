package sync

import "encoding/binary"

// DirEntry is one record from a LIST response: a remote name with its
// stat fields, valid only for the duration of the enumeration that
// produced it.
type DirEntry struct {
	Name  string
	Mode  uint32
	Size  uint32
	Mtime uint32
}

// IsDir reports whether the entry is a directory.
func (e DirEntry) IsDir() bool {
	return e.Mode&SIFDIR != 0
}

// List issues a LIST request for path and returns every DENT record up
// to the terminating DONE. "." and ".." are filtered defensively, since
// some adbd builds include them in the stream.
func (s *Session) List(path string) ([]DirEntry, error) {
	if err := s.writeRequest(tagList, []byte(path)); err != nil {
		return nil, err
	}
	var entries []DirEntry
	for {
		tag, err := s.readTag()
		if err != nil {
			return nil, err
		}
		switch tag {
		case tagDone:
			if _, err := s.readN(4); err != nil {
				return nil, err
			}
			return entries, nil
		case tagDent:
			fields, err := s.readN(16)
			if err != nil {
				return nil, err
			}
			mode := binary.LittleEndian.Uint32(fields[0:4])
			size := binary.LittleEndian.Uint32(fields[4:8])
			mtime := binary.LittleEndian.Uint32(fields[8:12])
			namelen := binary.LittleEndian.Uint32(fields[12:16])
			nameBytes, err := s.readN(namelen)
			if err != nil {
				return nil, err
			}
			name := string(nameBytes)
			if name == "." || name == ".." {
				continue
			}
			entries = append(entries, DirEntry{Name: name, Mode: mode, Size: size, Mtime: mtime})
		case tagFail:
			msg, err := s.readFailMessage()
			if err != nil {
				return nil, err
			}
			return nil, &ListError{Path: path, Msg: msg}
		default:
			return nil, &ListError{Path: path, Msg: "unexpected reply tag " + tag}
		}
	}
}

// ListError reports a failed LIST request.
type ListError struct {
	Path string
	Msg  string
}

func (e *ListError) Error() string {
	return "sync: list " + e.Path + ": " + e.Msg
}
