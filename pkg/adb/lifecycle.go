package adb

import (
	"fmt"
	"time"
)

// Reboot restarts the transport-selected device, optionally into one of
// bootloader/recovery/sideload/sideload-auto-reboot. An empty target
// reboots normally.
func (c *Client) Reboot(t Transport, target string) error {
	switch target {
	case "", RebootBootloader, RebootRecovery, RebootSideload, RebootSideloadAutoReboot:
	default:
		return &ArgumentError{Msg: fmt.Sprintf("invalid reboot target: %s", target)}
	}
	if err := c.selectTransport(t); err != nil {
		return err
	}
	return c.sendAndAssertOK(cmdReboot+target, "reboot")
}

// Root restarts adbd with root permissions on the device.
func (c *Client) Root(t Transport) (string, error) {
	if err := c.selectTransport(t); err != nil {
		return "", err
	}
	if err := c.sendAndAssertOK(cmdRoot, "root"); err != nil {
		return "", err
	}
	return c.readAllData()
}

// Unroot restarts adbd without root permissions on the device.
func (c *Client) Unroot(t Transport) (string, error) {
	if err := c.selectTransport(t); err != nil {
		return "", err
	}
	if err := c.sendAndAssertOK(cmdUnroot, "unroot"); err != nil {
		return "", err
	}
	return c.readAllData()
}

// Remount remounts the device's partitions read-write.
func (c *Client) Remount(t Transport) (string, error) {
	if err := c.selectTransport(t); err != nil {
		return "", err
	}
	if err := c.sendAndAssertOK(cmdRemount, "remount"); err != nil {
		return "", err
	}
	return c.readAllData()
}

// Usb switches the device back to USB mode.
func (c *Client) Usb(t Transport) (string, error) {
	if err := c.selectTransport(t); err != nil {
		return "", err
	}
	return c.sendAndReadPayload(cmdUsb, "usb")
}

// Tcpip restarts adbd listening on a TCP port instead of USB.
func (c *Client) Tcpip(t Transport, port int) (string, error) {
	if err := c.selectTransport(t); err != nil {
		return "", err
	}
	command := fmt.Sprintf("%s%d", cmdTcpip, port)
	return c.sendAndReadPayload(command, "tcpip")
}

// EnableVerity re-enables dm-verity on the device.
func (c *Client) EnableVerity(t Transport) (string, error) {
	if err := c.selectTransport(t); err != nil {
		return "", err
	}
	if err := c.sendAndAssertOK(cmdEnableVerity, "enable-verity"); err != nil {
		return "", err
	}
	return c.readAllData()
}

// DisableVerity disables dm-verity on the device.
func (c *Client) DisableVerity(t Transport) (string, error) {
	if err := c.selectTransport(t); err != nil {
		return "", err
	}
	if err := c.sendAndAssertOK(cmdDisableVerity, "disable-verity"); err != nil {
		return "", err
	}
	return c.readAllData()
}

// WaitFor polls get-state once per second until the device reports
// desiredState, or until timeout elapses (timeout <= 0 waits forever).
// A transport-selection failure is swallowed and retried, since the
// device may not yet be present.
func (c *Client) WaitFor(t Transport, desiredState string, timeout time.Duration) error {
	start := time.Now()
	for {
		if timeout > 0 && time.Since(start) >= timeout {
			return &ArgumentError{Msg: fmt.Sprintf("timeout while waiting for device to reach '%s' state", desiredState)}
		}
		state, err := c.GetState(t)
		if err == nil && state == desiredState {
			return nil
		}
		time.Sleep(waitForPollInterval)
	}
}
