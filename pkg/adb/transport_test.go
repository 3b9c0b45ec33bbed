package adb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportCommandStrings(t *testing.T) {
	assert.Equal(t, "host:transport-any", TransportAny().Command())
	assert.Equal(t, "host:transport-usb", TransportUsbAny().Command())
	assert.Equal(t, "host:transport-local", TransportEmulatorAny().Command())
	assert.Equal(t, "host:transport:emulator-5554", TransportSerial("emulator-5554").Command())
}
