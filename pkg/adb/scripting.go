package adb

import (
	"fmt"
	"strings"
)

// BugreportProgress is one parsed line of bugreportz -p output.
type BugreportProgress struct {
	Kind    string // "PROGRESS", "OK", "FAIL", "INFO"
	Current int
	Total   int
	Path    string
	Message string
}

// parseBugreportLine parses a single bugreportz -p output line. Unknown
// prefixes are reported as Kind "INFO" with the raw line as Message,
// matching the reference CLI's tolerant parsing.
func parseBugreportLine(line string) BugreportProgress {
	line = strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "PROGRESS:"):
		rest := strings.TrimPrefix(line, "PROGRESS:")
		parts := strings.SplitN(rest, "/", 2)
		var cur, total int
		fmt.Sscanf(parts[0], "%d", &cur)
		if len(parts) > 1 {
			fmt.Sscanf(parts[1], "%d", &total)
		}
		return BugreportProgress{Kind: "PROGRESS", Current: cur, Total: total}
	case strings.HasPrefix(line, "OK:"):
		return BugreportProgress{Kind: "OK", Path: strings.TrimPrefix(line, "OK:")}
	case strings.HasPrefix(line, "XOK:"):
		return BugreportProgress{Kind: "OK", Path: strings.TrimPrefix(line, "XOK:")}
	case strings.HasPrefix(line, "FAIL:"):
		return BugreportProgress{Kind: "FAIL", Message: strings.TrimPrefix(line, "FAIL:")}
	case strings.HasPrefix(line, "INFO:"):
		return BugreportProgress{Kind: "INFO", Message: strings.TrimPrefix(line, "INFO:")}
	default:
		return BugreportProgress{Kind: "INFO", Message: line}
	}
}

// Bugreport runs "bugreportz -p" on the device, logs progress at Info via
// c.Log, and pulls the resulting zip to localPath once the device reports
// OK. It opens a second Client to perform the pull, since the first stays
// bound to the shell stream until the device finishes generating the
// report (mirrors the reference client's two-connection approach).
func (c *Client) Bugreport(t Transport, localPath string) error {
	output, err := c.Shell(t, "bugreportz -p")
	if err != nil {
		return err
	}

	var remotePath string
	for _, line := range strings.Split(output, "\n") {
		progress := parseBugreportLine(line)
		switch progress.Kind {
		case "PROGRESS":
			c.Log.WithField("current", progress.Current).WithField("total", progress.Total).Info("adb: bugreport progress")
		case "OK":
			remotePath = progress.Path
		case "FAIL":
			return &ProtocolError{Msg: "bugreportz failed: " + progress.Message}
		case "INFO":
			c.Log.WithField("line", progress.Message).Debug("adb: bugreportz info")
		}
	}
	if remotePath == "" {
		return &ProtocolError{Msg: "bugreportz did not report a remote path"}
	}

	puller, err := NewClient(Options{Host: c.host, Port: c.port, Log: c.Log, ChunkSizeKB: c.chunkSizeBytes / 1024})
	if err != nil {
		return err
	}
	defer puller.Close()

	session, err := puller.EnterSync(t)
	if err != nil {
		return err
	}
	defer session.Quit()

	result := session.PullFile(remotePath, localPath, false)
	if result.Err != nil {
		return result.Err
	}
	return nil
}

// Logcat runs "logcat <args...>" over a shell channel, clearing
// ANDROID_LOG_TAGS first so per-tag filters set in the caller's
// environment don't leak through, matching the reference CLI. Like Shell,
// it returns the output only once the stream reaches EOF; nothing is
// passed on while logcat is still running.
func (c *Client) Logcat(t Transport, args []string) (string, error) {
	cmd := "export ANDROID_LOG_TAGS=\"\"; exec logcat " + strings.Join(args, " ")
	return c.Shell(t, cmd)
}
