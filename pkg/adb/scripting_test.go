package adb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBugreportLineProgress(t *testing.T) {
	p := parseBugreportLine("PROGRESS:42/100")
	assert.Equal(t, "PROGRESS", p.Kind)
	assert.Equal(t, 42, p.Current)
	assert.Equal(t, 100, p.Total)
}

func TestParseBugreportLineOK(t *testing.T) {
	p := parseBugreportLine("OK:/data/user_de/0/com.android.shell/files/bugreports/bugreport.zip")
	assert.Equal(t, "OK", p.Kind)
	assert.Equal(t, "/data/user_de/0/com.android.shell/files/bugreports/bugreport.zip", p.Path)
}

func TestParseBugreportLineFail(t *testing.T) {
	p := parseBugreportLine("FAIL:out of space")
	assert.Equal(t, "FAIL", p.Kind)
	assert.Equal(t, "out of space", p.Message)
}

func TestParseBugreportLineUnknownPrefixIsInfo(t *testing.T) {
	p := parseBugreportLine("some unrelated diagnostic text")
	assert.Equal(t, "INFO", p.Kind)
	assert.Equal(t, "some unrelated diagnostic text", p.Message)
}
