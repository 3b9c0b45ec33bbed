package adb

// Devices lists attached devices and emulators, formatted the way the
// reference adb CLI prints them.
func (c *Client) Devices() (string, error) {
	list, err := c.sendAndReadPayload(cmdDevices, "devices")
	if err != nil {
		return "", err
	}
	return "List of devices attached\n" + list, nil
}

// GetSerialno returns the serial number of the transport-selected device.
func (c *Client) GetSerialno(t Transport) (string, error) {
	if err := c.selectTransport(t); err != nil {
		return "", err
	}
	return c.sendAndReadPayload(cmdGetSerialno, "get-serialno")
}

// GetDevpath returns the device path of the transport-selected device.
func (c *Client) GetDevpath(t Transport) (string, error) {
	if err := c.selectTransport(t); err != nil {
		return "", err
	}
	return c.sendAndReadPayload(cmdGetDevpath, "get-devpath")
}

// GetState returns the connection state (device/offline/bootloader/...)
// of the transport-selected device.
func (c *Client) GetState(t Transport) (string, error) {
	if err := c.selectTransport(t); err != nil {
		return "", err
	}
	return c.sendAndReadPayload(cmdGetState, "get-state")
}
