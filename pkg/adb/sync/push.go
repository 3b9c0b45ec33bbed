package sync

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// sendFile streams localPath's contents as repeated DATA frames, followed
// by a DONE + mtime terminator, per §4.3.4. remotePath,mode is sent as the
// SEND request payload ("<remote-path>,<mode>").
func (s *Session) sendFile(localPath, remotePath string, mode uint32, mtime uint32) (int64, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	payload := fmt.Sprintf("%s,%d", remotePath, mode)
	if err := s.writeRequest(tagSend, []byte(payload)); err != nil {
		return 0, err
	}

	var total int64
	buf := make([]byte, s.chunkSize)
	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			if err := s.writeTag(tagData, uint32(n)); err != nil {
				return total, err
			}
			if err := s.writeBytes(buf[:n]); err != nil {
				return total, err
			}
			total += int64(n)
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return total, readErr
		}
	}

	if err := s.writeTag(tagDone, mtime); err != nil {
		return total, err
	}
	tag, err := s.readTag()
	if err != nil {
		return total, err
	}
	switch tag {
	case tagOkay:
		// OKAY is followed by a trailing u32 (unused, always zero), the
		// same tag(4)+u32(4) shape every other sync reply header uses.
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
		return total, fmt.Errorf("unexpected reply tag %q after push of %s", tag, remotePath)
	}
}

// modeAndMtime derives the push SEND mode (0755 if any execute bit is
// set, else 0644) and the local file's mtime in epoch seconds.
func modeAndMtime(info os.FileInfo) (uint32, uint32) {
	return pushModeFor(uint32(info.Mode().Perm())), epochSeconds(info.ModTime())
}

// PushFile pushes one local file to an exact remote path (no target
// resolution; callers needing §4.3.6's basename-append rules use Push).
// When syncFlag is true, the remote is STATed first and the push is
// skipped if local_mtime <= remote_mtime.
func (s *Session) PushFile(localPath, remotePath string, syncFlag bool) PushResult {
	info, err := os.Stat(localPath)
	if err != nil {
		return PushResult{Kind: KindFatalAbort, LocalPath: localPath, RemotePath: remotePath, Err: err}
	}
	if info.IsDir() {
		return PushResult{Kind: KindFatalAbort, LocalPath: localPath, RemotePath: remotePath,
			Err: fmt.Errorf("%s is a directory, use PushDirectory", localPath)}
	}

	mode, mtime := modeAndMtime(info)

	if syncFlag {
		remoteStat, statErr := s.StatOrZero(remotePath)
		if statErr == nil && remoteStat.Exists() && int64(mtime) <= int64(remoteStat.Mtime) {
			return PushResult{Kind: KindSkipped, LocalPath: localPath, RemotePath: remotePath}
		}
	}

	start := time.Now()
	n, err := s.sendFile(localPath, remotePath, mode, mtime)
	dur := time.Since(start)
	if err != nil {
		return PushResult{Kind: KindFatalAbort, LocalPath: localPath, RemotePath: remotePath, Bytes: n, Dur: dur, Err: err}
	}
	return PushResult{Kind: KindFile, LocalPath: localPath, RemotePath: remotePath, Bytes: n, Dur: dur, Rate: rate(n, dur)}
}

// PushDirectory walks localRoot and pushes every regular file underneath
// it to remoteRoot + "/" + relative-path, stopping at the first fatal
// outcome per §4.3.8. The leading KindDirectory result aggregates the
// bytes, duration, rate and file count of every KindFile result beneath
// it.
func (s *Session) PushDirectory(localRoot, remoteRoot string, syncFlag bool) []PushResult {
	start := time.Now()
	var fileResults []PushResult
	var totalBytes int64
	var count int

	err := filepath.Walk(localRoot, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			fileResults = append(fileResults, PushResult{Kind: KindFatalAbort, LocalPath: path, Err: walkErr})
			return walkErr
		}
		if info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(localRoot, path)
		if relErr != nil {
			fileResults = append(fileResults, PushResult{Kind: KindFatalAbort, LocalPath: path, Err: relErr})
			return relErr
		}
		remotePath := remoteRoot + "/" + filepath.ToSlash(rel)
		result := s.PushFile(path, remotePath, syncFlag)
		fileResults = append(fileResults, result)
		if result.Kind == KindFile {
			totalBytes += result.Bytes
			count++
		}
		if result.Kind == KindFatalAbort {
			return result.Err
		}
		return nil
	})
	_ = err // the fatal outcome, if any, is already appended to fileResults

	dur := time.Since(start)
	dirResult := PushResult{
		Kind: KindDirectory, LocalPath: localRoot, RemotePath: remoteRoot,
		Bytes: totalBytes, Dur: dur, Rate: rate(totalBytes, dur), Count: count,
	}
	return append([]PushResult{dirResult}, fileResults...)
}

// ResolvePushTarget applies §4.3.6's targeting rules: with more than one
// source, or a remote ending in a path separator, the remote must already
// be a directory and each source's basename is appended; with exactly one
// source and a non-separator-terminated remote, the basename is appended
// only if the remote STATs as an existing directory.
func (s *Session) ResolvePushTarget(sources []string, remote string) (map[string]string, error) {
	endsInSeparator := strings.HasSuffix(remote, "/") || strings.HasSuffix(remote, "\\")
	targets := make(map[string]string, len(sources))

	if len(sources) > 1 || endsInSeparator {
		st, err := s.Stat(strings.TrimRight(remote, "/\\"))
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			return nil, fmt.Errorf("remote target %q must be an existing directory", remote)
		}
		base := strings.TrimRight(remote, "/\\")
		for _, src := range sources {
			targets[src] = base + "/" + filepath.Base(src)
		}
		return targets, nil
	}

	src := sources[0]
	st, statErr := s.StatOrZero(remote)
	if statErr == nil && st.Exists() && st.IsDir() {
		targets[src] = strings.TrimRight(remote, "/") + "/" + filepath.Base(src)
	} else {
		targets[src] = remote
	}
	return targets, nil
}

// Push resolves targets for every source (files or directories) and
// pushes them, stopping at the first fatal outcome across the whole
// batch.
func (s *Session) Push(sources []string, remote string, syncFlag bool) []PushResult {
	targets, err := s.ResolvePushTarget(sources, remote)
	if err != nil {
		return []PushResult{{Kind: KindFatalAbort, RemotePath: remote, Err: err}}
	}

	var results []PushResult
	for _, src := range sources {
		dst := targets[src]
		info, statErr := os.Stat(src)
		if statErr != nil {
			results = append(results, PushResult{Kind: KindFatalAbort, LocalPath: src, RemotePath: dst, Err: statErr})
			return results
		}
		var fileResults []PushResult
		if info.IsDir() {
			fileResults = s.PushDirectory(src, dst, syncFlag)
		} else {
			fileResults = []PushResult{s.PushFile(src, dst, syncFlag)}
		}
		results = append(results, fileResults...)
		if last := fileResults[len(fileResults)-1]; last.Kind == KindFatalAbort {
			return results
		}
	}
	return results
}
