package adb

import "fmt"

// ForwardAdd creates a forward socket connection: local requests on
// localSpec are routed to remoteSpec on the transport-selected device
// (e.g. "tcp:8080" -> "tcp:8080"). If norebind is true, the request fails
// rather than replacing an existing forward on the same local socket.
func (c *Client) ForwardAdd(t Transport, localSpec, remoteSpec string, norebind bool) error {
	if err := c.selectTransport(t); err != nil {
		return err
	}
	command := fmt.Sprintf("%s:%s;%s", cmdForward, localSpec, remoteSpec)
	if norebind {
		command = fmt.Sprintf("%s:%s:%s;%s", cmdForward, noRebindOption, localSpec, remoteSpec)
	}
	return c.sendAndAssertOK(command, "forward")
}

// ForwardRemove removes a single forward by its local socket spec.
func (c *Client) ForwardRemove(t Transport, localSpec string) error {
	if err := c.selectTransport(t); err != nil {
		return err
	}
	command := fmt.Sprintf("%s:%s", cmdForwardKill, localSpec)
	return c.sendAndAssertOK(command, "killforward")
}

// ForwardRemoveAll removes every forward registered for the transport.
func (c *Client) ForwardRemoveAll(t Transport) error {
	if err := c.selectTransport(t); err != nil {
		return err
	}
	return c.sendAndAssertOK(cmdForwardKillAl, "killforward-all")
}

// ForwardList returns the server's table of active forwards.
func (c *Client) ForwardList() (string, error) {
	return c.sendAndReadPayload(cmdForwardList, "list-forward")
}

// ReverseAdd creates a reverse socket connection: requests on remoteSpec
// made from the device are routed to localSpec on the host. Reverse
// commands use the double-OK reply shape (see sendAndReadDoubleOK).
func (c *Client) ReverseAdd(t Transport, remoteSpec, localSpec string, norebind bool) (string, error) {
	if err := c.selectTransport(t); err != nil {
		return "", err
	}
	command := fmt.Sprintf("%s:%s;%s", cmdReverseForward, remoteSpec, localSpec)
	if norebind {
		command = fmt.Sprintf("%s:%s:%s;%s", cmdReverseForward, noRebindOption, remoteSpec, localSpec)
	}
	return c.sendAndReadDoubleOK(command, "reverse")
}

// ReverseRemove removes a single reverse forward by its remote socket spec.
func (c *Client) ReverseRemove(t Transport, remoteSpec string) (string, error) {
	if err := c.selectTransport(t); err != nil {
		return "", err
	}
	command := fmt.Sprintf("%s:%s", cmdReverseKill, remoteSpec)
	return c.sendAndReadDoubleOK(command, "reverse killforward")
}

// ReverseRemoveAll removes every reverse forward registered for the
// transport.
func (c *Client) ReverseRemoveAll(t Transport) (string, error) {
	if err := c.selectTransport(t); err != nil {
		return "", err
	}
	return c.sendAndReadDoubleOK(cmdReverseKillAll, "reverse killforward-all")
}

// ReverseList returns the device's table of active reverse forwards.
// Unlike the other reverse:* commands, list-forward replies with a
// single OKAY (or FAIL) followed directly by the length-prefixed
// payload, not the double-OK shape used by add/remove/remove-all.
func (c *Client) ReverseList(t Transport) (string, error) {
	if err := c.selectTransport(t); err != nil {
		return "", err
	}
	return c.sendAndReadPayload(cmdReverseListForward, "reverse list-forward")
}
