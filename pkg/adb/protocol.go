package adb

import (
	"fmt"
	"strconv"
	"strings"
)

// sendCommand frames command as "%04x<command>" (lowercase hex length
// prefix) and writes it, per SPEC_FULL.md §4.2.
func (c *Client) sendCommand(command string) error {
	framed := fmt.Sprintf("%04x%s", len(command), command)
	return c.writeAll([]byte(framed))
}

// readStatus reads the 4-byte ASCII status word (OKAY/FAIL/other).
func (c *Client) readStatus() (string, error) {
	return c.readExactUTF8(4)
}

// readFullResponse reads a %04x-length-prefixed payload, falling back to
// a variable-length read if the prefix does not decode as hex, then
// strips a leading '$' or '+' (the ADB prefix quirk).
func (c *Client) readFullResponse() (string, error) {
	prefix, err := c.readExactUTF8(4)
	if err != nil {
		return "", err
	}
	var body string
	if n, convErr := strconv.ParseUint(prefix, 16, 32); convErr == nil {
		body, err = c.readExactUTF8(int(n))
		if err != nil {
			return "", err
		}
	} else {
		body, err = c.readVariable(prefix)
		if err != nil {
			return "", err
		}
	}
	return stripADBPrefix(body), nil
}

func stripADBPrefix(s string) string {
	if strings.HasPrefix(s, "$") || strings.HasPrefix(s, "+") {
		return s[1:]
	}
	return s
}

// sendAndAssertOK sends command and asserts the reply status is OKAY.
// On FAIL, the length-prefixed error message is read and returned as a
// ServerReject. Any other status is a ProtocolError, with label appearing
// in the error text for context.
func (c *Client) sendAndAssertOK(command, label string) error {
	if err := c.sendCommand(command); err != nil {
		return err
	}
	status, err := c.readStatus()
	if err != nil {
		return err
	}
	switch status {
	case tagOkay:
		return nil
	case tagFail:
		msg, err := c.readFullResponse()
		if err != nil {
			return err
		}
		return &ServerReject{Msg: msg}
	default:
		msg, err := c.readFullResponse()
		if err != nil {
			return err
		}
		return &ProtocolError{Msg: fmt.Sprintf("failed to send %s command: %s", label, msg)}
	}
}

// sendAndReadPayload sends command and, on OKAY, reads one length-prefixed
// payload. On FAIL, the error message is returned as a ServerReject.
func (c *Client) sendAndReadPayload(command, label string) (string, error) {
	if err := c.sendCommand(command); err != nil {
		return "", err
	}
	status, err := c.readStatus()
	if err != nil {
		return "", err
	}
	switch status {
	case tagOkay:
		return c.readFullResponse()
	case tagFail:
		msg, err := c.readFullResponse()
		if err != nil {
			return "", err
		}
		return "", &ServerReject{Msg: msg}
	default:
		msg, err := c.readFullResponse()
		if err != nil {
			return "", err
		}
		return "", &ProtocolError{Msg: fmt.Sprintf("unexpected response to %s: %s", label, msg)}
	}
}

// sendAndReadDoubleOK implements the two-stage reply used by reverse:*:
// first OKAY, then (if more data is immediately available) a second
// OKAY/FAIL, then an optional payload.
func (c *Client) sendAndReadDoubleOK(command, label string) (string, error) {
	if err := c.sendCommand(command); err != nil {
		return "", err
	}
	status, err := c.readStatus()
	if err != nil {
		return "", err
	}
	switch status {
	case tagFail:
		msg, err := c.readFullResponse()
		if err != nil {
			return "", err
		}
		return "", &ServerReject{Msg: msg}
	case tagOkay:
		hasMore, err := c.peekHasData()
		if err != nil {
			return "", err
		}
		if !hasMore {
			return "", nil
		}
		second, err := c.readStatus()
		if err != nil {
			return "", err
		}
		switch second {
		case tagOkay:
			hasPayload, err := c.peekHasData()
			if err != nil {
				return "", err
			}
			if !hasPayload {
				return "", nil
			}
			return c.readFullResponse()
		case tagFail:
			msg, err := c.readFullResponse()
			if err != nil {
				return "", err
			}
			return "", &ServerReject{Msg: msg}
		default:
			msg, err := c.readFullResponse()
			if err != nil {
				return "", err
			}
			return "", &ProtocolError{Msg: fmt.Sprintf("failed to send %s command: %s", label, msg)}
		}
	default:
		msg, err := c.readFullResponse()
		if err != nil {
			return "", err
		}
		return "", &ProtocolError{Msg: fmt.Sprintf("failed to send %s command: %s", label, msg)}
	}
}
