package main

import (
	"fmt"
	"os"

	"github.com/adbkit/goadb/pkg/adb"
)

func cmdInstall(c *adb.Client, t adb.Transport, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "adb: error: install requires an APK path")
		return 1
	}
	apk := args[len(args)-1]
	flags := args[:len(args)-1]

	out, err := c.Install(t, apk, flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, "adb: error:", err)
		return 1
	}
	fmt.Println(out)
	return 0
}

func cmdUninstall(c *adb.Client, t adb.Transport, args []string) int {
	keepData := false
	var pkgName string
	for _, a := range args {
		if a == "-k" {
			keepData = true
			continue
		}
		pkgName = a
	}
	if pkgName == "" {
		fmt.Fprintln(os.Stderr, "adb: error: uninstall requires a package name")
		return 1
	}

	out, err := c.Uninstall(t, pkgName, keepData)
	if err != nil {
		fmt.Fprintln(os.Stderr, "adb: error:", err)
		return 1
	}
	fmt.Print(out)
	return 0
}
