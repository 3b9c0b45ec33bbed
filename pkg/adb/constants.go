package adb

import "time"

// Defaults for locating and talking to a local ADB server.
const (
	DefaultServerHost = "127.0.0.1"
	DefaultServerPort = 5037
	ServerAddressEnv  = "ADB_ADDRESS"

	connectTimeout = 5 * time.Second
	// readyWait bounds the read of the shell status byte that the reference
	// client instead blindly sleeps for — see SPEC_FULL.md §4.4.
	readyWait = 300 * time.Millisecond
)

// Host protocol service strings.
const (
	cmdDevices       = "host:devices"
	cmdForward       = "host:forward"
	cmdForwardKill   = "host:killforward"
	cmdForwardKillAl = "host:killforward-all"
	cmdForwardList   = "host:list-forward"

	cmdReverseForward     = "reverse:forward"
	cmdReverseKill        = "reverse:killforward"
	cmdReverseKillAll     = "reverse:killforward-all"
	cmdReverseListForward = "reverse:list-forward"

	cmdGetSerialno = "host:get-serialno"
	cmdGetDevpath  = "host:get-devpath"
	cmdGetState    = "host:get-state"

	cmdSync  = "sync:"
	cmdShell = "shell:"

	cmdReboot        = "reboot:"
	cmdRoot          = "root:"
	cmdUnroot        = "unroot:"
	cmdRemount       = "remount:"
	cmdUsb           = "usb:"
	cmdTcpip         = "tcpip:"
	cmdEnableVerity  = "enable-verity:"
	cmdDisableVerity = "disable-verity:"

	noRebindOption = "norebind"
)

// host-protocol status words; the sync sub-protocol's own 4-byte tags
// live in pkg/adb/sync, the only package that speaks them.
const (
	tagOkay = "OKAY"
	tagFail = "FAIL"
)

const (
	deviceTempRoot = "/data/local/tmp/"

	waitForPollInterval = time.Second
)

// Reboot targets accepted by the "reboot" command.
const (
	RebootBootloader         = "bootloader"
	RebootRecovery           = "recovery"
	RebootSideload           = "sideload"
	RebootSideloadAutoReboot = "sideload-auto-reboot"
)
