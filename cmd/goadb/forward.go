package main

import (
	"fmt"
	"os"

	"github.com/adbkit/goadb/pkg/adb"
)

func cmdForward(c *adb.Client, t adb.Transport, args []string) int {
	switch {
	case contains(args, "--list"):
		out, err := c.ForwardList()
		if err != nil {
			fmt.Fprintln(os.Stderr, "adb: error:", err)
			return 1
		}
		fmt.Print(out)
		return 0
	case contains(args, "--remove-all"):
		if err := c.ForwardRemoveAll(t); err != nil {
			fmt.Fprintln(os.Stderr, "adb: error:", err)
			return 1
		}
		return 0
	case contains(args, "--remove"):
		specs := withoutFlag(args, "--remove")
		if len(specs) != 1 {
			fmt.Fprintln(os.Stderr, "adb: error: forward --remove requires exactly one local socket spec")
			return 1
		}
		if err := c.ForwardRemove(t, specs[0]); err != nil {
			fmt.Fprintln(os.Stderr, "adb: error:", err)
			return 1
		}
		return 0
	default:
		norebind := contains(args, "--no-rebind")
		specs := withoutFlag(args, "--no-rebind")
		if len(specs) != 2 {
			fmt.Fprintln(os.Stderr, "adb: error: forward requires LOCAL and REMOTE specs")
			return 1
		}
		if err := c.ForwardAdd(t, specs[0], specs[1], norebind); err != nil {
			fmt.Fprintln(os.Stderr, "adb: error:", err)
			return 1
		}
		return 0
	}
}

func cmdReverse(c *adb.Client, t adb.Transport, args []string) int {
	switch {
	case contains(args, "--list"):
		out, err := c.ReverseList(t)
		if err != nil {
			fmt.Fprintln(os.Stderr, "adb: error:", err)
			return 1
		}
		fmt.Print(out)
		return 0
	case contains(args, "--remove-all"):
		if _, err := c.ReverseRemoveAll(t); err != nil {
			fmt.Fprintln(os.Stderr, "adb: error:", err)
			return 1
		}
		return 0
	case contains(args, "--remove"):
		specs := withoutFlag(args, "--remove")
		if len(specs) != 1 {
			fmt.Fprintln(os.Stderr, "adb: error: reverse --remove requires exactly one remote socket spec")
			return 1
		}
		if _, err := c.ReverseRemove(t, specs[0]); err != nil {
			fmt.Fprintln(os.Stderr, "adb: error:", err)
			return 1
		}
		return 0
	default:
		norebind := contains(args, "--no-rebind")
		specs := withoutFlag(args, "--no-rebind")
		if len(specs) != 2 {
			fmt.Fprintln(os.Stderr, "adb: error: reverse requires REMOTE and LOCAL specs")
			return 1
		}
		if _, err := c.ReverseAdd(t, specs[0], specs[1], norebind); err != nil {
			fmt.Fprintln(os.Stderr, "adb: error:", err)
			return 1
		}
		return 0
	}
}

func contains(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func withoutFlag(args []string, flag string) []string {
	var out []string
	for _, a := range args {
		if a == flag {
			continue
		}
		out = append(out, a)
	}
	return out
}
