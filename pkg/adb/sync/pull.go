package sync

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// recvFile issues a RECV request for remotePath and streams the DATA
// frames that follow into localPath, per §4.3.3.
func (s *Session) recvFile(remotePath, localPath string) (int64, error) {
	if err := s.writeRequest(tagRecv, []byte(remotePath)); err != nil {
		return 0, err
	}

	f, err := os.Create(localPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var total int64
	for {
		tag, err := s.readTag()
		if err != nil {
			return total, err
		}
		switch tag {
		case tagData:
			n, err := s.readU32()
			if err != nil {
				return total, err
			}
			chunk, err := s.readN(n)
			if err != nil {
				return total, err
			}
			if _, err := f.Write(chunk); err != nil {
				return total, err
			}
			total += int64(n)
		case tagDone:
			if _, err := s.readN(4); err != nil {
				return total, err
			}
			return total, nil
		case tagFail:
			msg, err := s.readFailMessage()
			if err != nil {
				return total, err
			}
			return total, fmt.Errorf("remote rejected %s: %s", remotePath, msg)
		default:
			return total, fmt.Errorf("unexpected reply tag %q while pulling %s", tag, remotePath)
		}
	}
}

// preserveMetadata applies the remote file's permission bits and mtime to
// localPath via a follow-up STAT. Failures are warnings, not fatal,
// per §4.3.3.
func (s *Session) preserveMetadata(remotePath, localPath string) error {
	st, err := s.Stat(remotePath)
	if err != nil {
		return err
	}
	if err := os.Chmod(localPath, os.FileMode(st.Mode&0o777)); err != nil {
		return err
	}
	mtime := time.Unix(int64(st.Mtime), 0)
	return os.Chtimes(localPath, mtime, mtime)
}

// PullFile pulls one remote file to an exact local path. When preserve is
// true, permission bits and mtime are copied from the remote stat; a
// preservation failure is logged as a warning via s.Log (when set), not
// returned as fatal.
func (s *Session) PullFile(remotePath, localPath string, preserve bool) PullResult {
	start := time.Now()
	n, err := s.recvFile(remotePath, localPath)
	if err != nil {
		return PullResult{Kind: KindFatalAbort, RemotePath: remotePath, LocalPath: localPath, Bytes: n, Dur: time.Since(start), Err: err}
	}
	dur := time.Since(start)
	if preserve {
		if err := s.preserveMetadata(remotePath, localPath); err != nil && s.Log != nil {
			s.Log.WithError(err).Warn("sync: failed to preserve metadata")
		}
	}
	return PullResult{Kind: KindFile, RemotePath: remotePath, LocalPath: localPath, Bytes: n, Dur: dur, Rate: rate(n, dur)}
}

// pullJob is one (remoteDir, localDir) pair awaiting enumeration, used as
// a FIFO queue element for the breadth-first directory walk. resultIndex
// points at this directory's own KindDirectory entry in the results
// slice, patched in place once its direct children have been RECV'd.
type pullJob struct {
	remoteDir   string
	localDir    string
	resultIndex int
}

// PullDirectory pulls a remote directory tree breadth-first: for each
// directory encountered, LIST its entries, queue subdirectories, and
// RECV files directly, stopping at the first fatal outcome per §4.3.8.
// Each KindDirectory result's Bytes/Dur/Rate/Count aggregate the files
// RECV'd directly within that directory (not its subdirectories).
func (s *Session) PullDirectory(remoteRoot, localRoot string, preserve bool) []PullResult {
	var results []PullResult

	if err := os.MkdirAll(localRoot, 0o755); err != nil {
		return []PullResult{{Kind: KindFatalAbort, RemotePath: remoteRoot, LocalPath: localRoot, Err: err}}
	}
	results = append(results, PullResult{Kind: KindDirectory, RemotePath: remoteRoot, LocalPath: localRoot})

	queue := []pullJob{{remoteDir: remoteRoot, localDir: localRoot, resultIndex: 0}}
	for len(queue) > 0 {
		job := queue[0]
		queue = queue[1:]

		entries, err := s.List(job.remoteDir)
		if err != nil {
			results = append(results, PullResult{Kind: KindFatalAbort, RemotePath: job.remoteDir, LocalPath: job.localDir, Err: err})
			return results
		}

		var dirBytes int64
		var dirDur time.Duration
		var dirCount int
		for _, entry := range entries {
			remotePath := job.remoteDir + "/" + entry.Name
			localPath := filepath.Join(job.localDir, entry.Name)

			if entry.IsDir() {
				if err := os.MkdirAll(localPath, 0o755); err != nil {
					results = append(results, PullResult{Kind: KindFatalAbort, RemotePath: remotePath, LocalPath: localPath, Err: err})
					return results
				}
				results = append(results, PullResult{Kind: KindDirectory, RemotePath: remotePath, LocalPath: localPath})
				queue = append(queue, pullJob{remoteDir: remotePath, localDir: localPath, resultIndex: len(results) - 1})
				continue
			}

			result := s.PullFile(remotePath, localPath, preserve)
			results = append(results, result)
			if result.Kind == KindFatalAbort {
				return results
			}
			dirBytes += result.Bytes
			dirDur += result.Dur
			dirCount++
		}

		results[job.resultIndex].Bytes = dirBytes
		results[job.resultIndex].Dur = dirDur
		results[job.resultIndex].Rate = rate(dirBytes, dirDur)
		results[job.resultIndex].Count = dirCount
	}
	return results
}

// Pull pulls every remote source (file or directory) into localDest,
// which must be an existing directory when more than one source is
// given, stopping at the first fatal outcome across the whole batch.
func (s *Session) Pull(remotes []string, localDest string, preserve bool) []PullResult {
	destInfo, destErr := os.Stat(localDest)
	destIsDir := destErr == nil && destInfo.IsDir()
	if len(remotes) > 1 && !destIsDir {
		return []PullResult{{Kind: KindFatalAbort, LocalPath: localDest,
			Err: fmt.Errorf("local destination %q must be an existing directory", localDest)}}
	}

	var results []PullResult
	for _, remote := range remotes {
		st, err := s.Stat(remote)
		if err != nil {
			results = append(results, PullResult{Kind: KindFatalAbort, RemotePath: remote, Err: err})
			return results
		}

		local := localDest
		if destIsDir {
			local = filepath.Join(localDest, filepath.Base(remote))
		}

		var batch []PullResult
		if st.IsDir() {
			batch = s.PullDirectory(remote, local, preserve)
		} else {
			batch = []PullResult{s.PullFile(remote, local, preserve)}
		}
		results = append(results, batch...)
		if last := batch[len(batch)-1]; last.Kind == KindFatalAbort {
			return results
		}
	}
	return results
}
