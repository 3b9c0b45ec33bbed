package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/adbkit/goadb/pkg/adb"
)

// cmdInteractiveShell opens an interactive shell session, putting the
// local terminal into raw mode so keystrokes (including control
// characters) pass through to the remote shell unmodified. Terminal raw-
// mode handling is the one piece of the shell channel that belongs to
// the CLI rather than the protocol engine — see SPEC_FULL.md §4.4.
func cmdInteractiveShell(c *adb.Client, t adb.Transport) int {
	if err := c.ShellStream(t, ""); err != nil {
		fmt.Fprintln(os.Stderr, "adb: error:", err)
		return 1
	}

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			fmt.Fprintln(os.Stderr, "adb: error: failed to enter raw mode:", err)
			return 1
		}
		defer term.Restore(fd, oldState)
	}

	conn := c.Conn()
	done := make(chan struct{})
	go func() {
		io.Copy(conn, os.Stdin)
		close(done)
	}()
	io.Copy(os.Stdout, conn)
	<-done
	return 0
}
