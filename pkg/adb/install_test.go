package adb

import (
	"bytes"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInstallFlagsRejectsMutuallyExclusive(t *testing.T) {
	err := validateInstallFlags([]string{"-s", "-f"}, nil)
	var argErr *ArgumentError
	assert.ErrorAs(t, err, &argErr)
}

func TestValidateInstallFlagsWarnsOnDowngradeWipeCombo(t *testing.T) {
	logger := log.New()
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	err := validateInstallFlags([]string{"-d", "-r"}, logger)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "downgrade and data wipe")
}

func TestValidateInstallFlagsAcceptsCompatibleFlags(t *testing.T) {
	err := validateInstallFlags([]string{"-r", "-g"}, nil)
	assert.NoError(t, err)
}
