package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/adbkit/goadb/pkg/adb"
)

const version = "goadb 1.0.0"

// globalFlags holds the values of the flags that apply to every
// subcommand, parsed from the arguments preceding the subcommand name.
// -s/-d/-e are mutually exclusive targeting flags; the last one given on
// the command line wins, matching the reference CLI's argument loop.
type globalFlags struct {
	serial    string
	usb       bool
	emulator  bool
	host      string
	port      int
	verbose   bool
	config    string
	showHelp  bool
	showVersn bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, rest, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "adb: error:", err)
		return 1
	}
	if flags.showHelp {
		printUsage()
		return 0
	}
	if flags.showVersn {
		fmt.Println(version)
		return 0
	}

	if flags.verbose {
		log.SetLevel(log.DebugLevel)
	}

	configPath := flags.config
	if configPath == "" {
		configPath = adb.DefaultConfigPath()
	}
	cfg, err := adb.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "adb: error: failed to load config:", err)
		return 1
	}
	host, port := flags.host, flags.port
	if _, envSet := os.LookupEnv(adb.ServerAddressEnv); !envSet {
		if host == "" {
			host = cfg.Host
		}
		if port == 0 {
			port = cfg.Port
		}
	}

	if len(rest) == 0 {
		printUsage()
		return 1
	}

	client, err := adb.NewClient(adb.Options{Host: host, Port: port, ChunkSizeKB: cfg.ChunkSizeKB})
	if err != nil {
		fmt.Fprintln(os.Stderr, "adb: error:", err)
		return 1
	}
	defer client.Close()

	transport := resolveTransport(flags)
	return dispatch(client, transport, rest[0], rest[1:])
}

// parseGlobalFlags scans args up to the first non-flag token (the
// subcommand name) for the global flags, matching the reference CLI's
// "-s <serial> <subcommand> ..." ordering. Flags appearing after the
// subcommand are left in the returned rest slice for the subcommand's
// own parsing.
func parseGlobalFlags(args []string) (globalFlags, []string, error) {
	var flags globalFlags
	i := 0
	for i < len(args) {
		switch args[i] {
		case "-s":
			if i+1 >= len(args) {
				return flags, nil, fmt.Errorf("-s requires a serial number")
			}
			flags.serial = args[i+1]
			flags.usb, flags.emulator = false, false
			i += 2
		case "-d":
			flags.usb, flags.emulator = true, false
			flags.serial = ""
			i++
		case "-e":
			flags.emulator, flags.usb = true, false
			flags.serial = ""
			i++
		case "-H":
			if i+1 >= len(args) {
				return flags, nil, fmt.Errorf("-H requires a host")
			}
			flags.host = args[i+1]
			i += 2
		case "-P":
			if i+1 >= len(args) {
				return flags, nil, fmt.Errorf("-P requires a port")
			}
			p, err := strconv.Atoi(args[i+1])
			if err != nil {
				return flags, nil, fmt.Errorf("invalid port %q", args[i+1])
			}
			flags.port = p
			i += 2
		case "-v", "--verbose":
			flags.verbose = true
			i++
		case "--config":
			if i+1 >= len(args) {
				return flags, nil, fmt.Errorf("--config requires a path")
			}
			flags.config = args[i+1]
			i += 2
		case "--help":
			flags.showHelp = true
			i++
		case "--version":
			flags.showVersn = true
			i++
		default:
			return flags, args[i:], nil
		}
	}
	return flags, nil, nil
}

func resolveTransport(flags globalFlags) adb.Transport {
	switch {
	case flags.serial != "":
		return adb.TransportSerial(flags.serial)
	case flags.usb:
		return adb.TransportUsbAny()
	case flags.emulator:
		return adb.TransportEmulatorAny()
	default:
		return adb.TransportAny()
	}
}

func printUsage() {
	fmt.Println(version)
	fmt.Println("usage: goadb [-s SERIAL|-d|-e] [-H HOST] [-P PORT] [-v] [--config PATH] <command> [args...]")
	fmt.Println("commands: devices, shell, push, pull, install, uninstall, forward, reverse,")
	fmt.Println("          reboot, root, unroot, remount, usb, tcpip, get-state, get-serialno,")
	fmt.Println("          get-devpath, wait-for-STATE, enable-verity, disable-verity, keygen,")
	fmt.Println("          bugreport, logcat")
}

func dispatch(c *adb.Client, t adb.Transport, cmd string, args []string) int {
	switch {
	case cmd == "devices":
		return cmdDevices(c)
	case cmd == "shell":
		return cmdShell(c, t, args)
	case cmd == "push":
		return cmdPush(c, t, args)
	case cmd == "pull":
		return cmdPull(c, t, args)
	case cmd == "install":
		return cmdInstall(c, t, args)
	case cmd == "uninstall":
		return cmdUninstall(c, t, args)
	case cmd == "forward":
		return cmdForward(c, t, args)
	case cmd == "reverse":
		return cmdReverse(c, t, args)
	case cmd == "reboot":
		return cmdSimple(func() (string, error) {
			target := ""
			if len(args) > 0 {
				target = args[0]
			}
			return "", c.Reboot(t, target)
		})
	case cmd == "root":
		return cmdSimple(func() (string, error) { return c.Root(t) })
	case cmd == "unroot":
		return cmdSimple(func() (string, error) { return c.Unroot(t) })
	case cmd == "remount":
		return cmdSimple(func() (string, error) { return c.Remount(t) })
	case cmd == "usb":
		return cmdSimple(func() (string, error) { return c.Usb(t) })
	case cmd == "tcpip":
		return cmdTcpip(c, t, args)
	case cmd == "get-state":
		return cmdSimple(func() (string, error) { return c.GetState(t) })
	case cmd == "get-serialno":
		return cmdSimple(func() (string, error) { return c.GetSerialno(t) })
	case cmd == "get-devpath":
		return cmdSimple(func() (string, error) { return c.GetDevpath(t) })
	case cmd == "enable-verity":
		return cmdSimple(func() (string, error) { return c.EnableVerity(t) })
	case cmd == "disable-verity":
		return cmdSimple(func() (string, error) { return c.DisableVerity(t) })
	case strings.HasPrefix(cmd, "wait-for"):
		return cmdWaitFor(c, t, cmd, args)
	case cmd == "keygen":
		return cmdKeygen(args)
	case cmd == "bugreport":
		return cmdBugreport(c, t, args)
	case cmd == "logcat":
		out, err := c.Logcat(t, args)
		if err != nil {
			fmt.Fprintln(os.Stderr, "adb: error:", err)
			return 1
		}
		fmt.Print(out)
		return 0
	default:
		fmt.Fprintln(os.Stderr, "adb: error: unknown command:", cmd)
		return 1
	}
}

func cmdSimple(fn func() (string, error)) int {
	out, err := fn()
	if err != nil {
		fmt.Fprintln(os.Stderr, "adb: error:", err)
		return 1
	}
	if out != "" {
		fmt.Print(out)
	}
	return 0
}

func cmdDevices(c *adb.Client) int {
	out, err := c.Devices()
	if err != nil {
		fmt.Fprintln(os.Stderr, "adb: error:", err)
		return 1
	}
	fmt.Println(out)
	return 0
}

func cmdShell(c *adb.Client, t adb.Transport, args []string) int {
	if len(args) == 0 {
		return cmdInteractiveShell(c, t)
	}
	out, err := c.Shell(t, strings.Join(args, " "))
	if err != nil {
		fmt.Fprintln(os.Stderr, "adb: error:", err)
		return 1
	}
	fmt.Print(out)
	return 0
}

func cmdTcpip(c *adb.Client, t adb.Transport, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "adb: error: tcpip requires a port")
		return 1
	}
	port, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "adb: error: invalid port:", args[0])
		return 1
	}
	return cmdSimple(func() (string, error) { return c.Tcpip(t, port) })
}

func cmdWaitFor(c *adb.Client, t adb.Transport, cmd string, args []string) int {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	seconds := fs.Int("t", 0, "timeout in seconds (0 waits forever)")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	state := strings.TrimPrefix(cmd, "wait-for-")
	for _, transportName := range []string{"device-", "usb-", "local-", "any-"} {
		state = strings.TrimPrefix(state, transportName)
	}
	if state == "" {
		state = "device"
	}

	timeout := time.Duration(*seconds) * time.Second
	if err := c.WaitFor(t, state, timeout); err != nil {
		fmt.Fprintln(os.Stderr, "adb: error:", err)
		return 1
	}
	return 0
}

func cmdKeygen(args []string) int {
	path := adb.DefaultKeyPath()
	if len(args) > 0 {
		path = args[0]
	}
	if err := adb.KeyGen(path); err != nil {
		fmt.Fprintln(os.Stderr, "adb: error:", err)
		return 1
	}
	return 0
}

func cmdBugreport(c *adb.Client, t adb.Transport, args []string) int {
	path := "bugreport.zip"
	if len(args) > 0 {
		path = args[0]
	}
	if err := c.Bugreport(t, path); err != nil {
		fmt.Fprintln(os.Stderr, "adb: error:", err)
		return 1
	}
	return 0
}
