package adb

import syncpkg "github.com/adbkit/goadb/pkg/adb/sync"

// EnterSync selects the transport, sends "sync:", and returns a Session
// driving the sync sub-protocol over this Client's connection. Per
// §4.3, host-protocol framing is abandoned for the duration: the
// returned Session owns the connection until its Quit is called, after
// which the Client must Reconnect before any further command.
func (c *Client) EnterSync(t Transport) (*syncpkg.Session, error) {
	if err := c.selectTransport(t); err != nil {
		return nil, err
	}
	if err := c.sendAndAssertOK(cmdSync, "sync"); err != nil {
		return nil, err
	}
	c.Log.WithField("transport", t.Command()).Debug("adb: entered sync")
	// c.r, not c.conn, is the read source: it may already hold bytes the
	// server pipelined immediately after the sync OKAY, and reading from
	// c.conn directly would skip past them.
	return syncpkg.NewSession(readWriter{r: c.r, w: c.conn}, c.Log, c.chunkSizeBytes), nil
}

// readWriter pairs an existing buffered reader with the connection's
// writer so the sync Session can be handed the live connection without
// re-wrapping it and losing any already-buffered bytes.
type readWriter struct {
	r interface{ Read([]byte) (int, error) }
	w interface{ Write([]byte) (int, error) }
}

func (rw readWriter) Read(p []byte) (int, error)  { return rw.r.Read(p) }
func (rw readWriter) Write(p []byte) (int, error) { return rw.w.Write(p) }
