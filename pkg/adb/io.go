package adb

import (
	"errors"
	"io"
	"os"
	"time"
)

// writeAll writes every byte of data to the connection, matching the
// teacher's io.go send_command (a thin wrapper, but the one primitive
// everything else is built on).
func (c *Client) writeAll(data []byte) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	_, err := c.conn.Write(data)
	return err
}

// readExact reads exactly n bytes, or returns the underlying read error.
func (c *Client) readExact(n int) ([]byte, error) {
	if c.r == nil {
		return nil, ErrNotConnected
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	_, err := io.ReadFull(c.r, buf)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// readExactUTF8 reads exactly n bytes and returns them as a string. An
// unexpected EOF yields an empty string rather than an error, matching
// the reference client's read_exact_string behavior.
func (c *Client) readExactUTF8(n int) (string, error) {
	buf, err := c.readExact(n)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", err
	}
	return string(buf), nil
}

// readVariable appends every readable byte to prefix until the stream
// hits EOF, retrying on transient interruption. Used for responses whose
// length the %04x prefix does not carry.
func (c *Client) readVariable(prefix string) (string, error) {
	if c.r == nil {
		return "", ErrNotConnected
	}
	data := []byte(prefix)
	buf := make([]byte, 1024)
	for {
		n, err := c.r.Read(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if errors.Is(err, io.ErrNoProgress) {
				continue
			}
			return "", err
		}
		if n == 0 {
			break
		}
	}
	return string(data), nil
}

// readAllData drains the connection until EOF, returning everything read
// as a string. Used by commands whose payload is streamed rather than
// length-prefixed (root:, unroot:, remount:).
func (c *Client) readAllData() (string, error) {
	if c.r == nil {
		return "", ErrNotConnected
	}
	var out []byte
	buf := make([]byte, 1024)
	for {
		n, err := c.r.Read(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
		if n == 0 {
			break
		}
	}
	return string(out), nil
}

// peekHasData reports whether at least one more byte is currently
// buffered or becomes readable within readyWait, without consuming it.
// Used by the reverse:* double-OK reply shape to decide whether a second
// status word follows the first OKAY.
func (c *Client) peekHasData() (bool, error) {
	if c.r == nil {
		return false, ErrNotConnected
	}
	if c.r.Buffered() > 0 {
		return true, nil
	}
	if c.conn != nil {
		_ = c.conn.SetReadDeadline(time.Now().Add(readyWait))
		defer c.conn.SetReadDeadline(time.Time{})
	}
	_, err := c.r.Peek(1)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, os.ErrDeadlineExceeded) {
		return false, nil
	}
	return false, err
}
