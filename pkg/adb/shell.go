package adb

import (
	"time"
)

// Shell runs a command on the transport-selected device and returns its
// aggregated output. An empty cmd requests an interactive shell session;
// callers that need interactivity should use ShellStream instead, since
// Shell always reads to EOF before returning.
//
// A FAIL reply is not treated as an error: its message is returned as the
// result, matching the reference CLI, which prints FAIL text verbatim
// rather than failing the process.
func (c *Client) Shell(t Transport, cmd string) (string, error) {
	if err := c.selectTransport(t); err != nil {
		return "", err
	}
	if err := c.sendCommand(cmdShell + cmd); err != nil {
		return "", err
	}

	// Bounded read instead of the reference client's blind 300ms sleep —
	// see SPEC_FULL.md §4.4.
	if c.conn != nil {
		_ = c.conn.SetReadDeadline(time.Now().Add(readyWait))
	}
	status, err := c.readStatus()
	if c.conn != nil {
		_ = c.conn.SetReadDeadline(time.Time{})
	}
	if err != nil {
		return "", err
	}

	switch status {
	case tagOkay:
		return c.readAllData()
	case tagFail:
		return c.readFullResponse()
	default:
		msg, err := c.readFullResponse()
		if err != nil {
			return "", err
		}
		return "", &ProtocolError{Msg: "failed to send shell command: " + msg}
	}
}

// ShellStream starts "shell:<cmd>" (or an empty cmd for an interactive
// session) and, once the server confirms OKAY, returns without waiting
// for EOF so the caller can pump bytes bidirectionally (the interactive
// terminal loop lives at the CLI boundary — see cmd/goadb/interactive.go).
func (c *Client) ShellStream(t Transport, cmd string) error {
	if err := c.selectTransport(t); err != nil {
		return err
	}
	if err := c.sendCommand(cmdShell + cmd); err != nil {
		return err
	}
	if c.conn != nil {
		_ = c.conn.SetReadDeadline(time.Now().Add(readyWait))
	}
	status, err := c.readStatus()
	if c.conn != nil {
		_ = c.conn.SetReadDeadline(time.Time{})
	}
	if err != nil {
		return err
	}
	if status != tagOkay {
		msg, err := c.readFullResponse()
		if err != nil {
			return err
		}
		return &ProtocolError{Msg: "failed to send shell command: " + msg}
	}
	return nil
}

// Conn exposes the underlying connection for ShellStream callers that
// need to pump bytes directly (the interactive terminal loop). It is nil
// unless the Client is connected.
func (c *Client) Conn() interface {
	Read([]byte) (int, error)
	Write([]byte) (int, error)
} {
	return c.conn
}
