package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/adbkit/goadb/pkg/adb"
	syncpkg "github.com/adbkit/goadb/pkg/adb/sync"
)

func cmdPush(c *adb.Client, t adb.Transport, args []string) int {
	fs := flag.NewFlagSet("push", flag.ContinueOnError)
	syncFlag := fs.Bool("sync", false, "skip files whose local mtime is not newer than the remote's")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	rest := fs.Args()
	if len(rest) < 2 {
		fmt.Fprintln(os.Stderr, "adb: error: push requires at least one LOCAL and a REMOTE")
		return 1
	}
	sources, remote := rest[:len(rest)-1], rest[len(rest)-1]

	session, err := c.EnterSync(t)
	if err != nil {
		fmt.Fprintln(os.Stderr, "adb: error:", err)
		return 1
	}
	results := session.Push(sources, remote, *syncFlag)
	session.Quit()
	c.Reconnect()

	return reportSyncOutcomes(pushResultsToSummaries(results))
}

func cmdPull(c *adb.Client, t adb.Transport, args []string) int {
	fs := flag.NewFlagSet("pull", flag.ContinueOnError)
	preserve := fs.Bool("a", false, "preserve file timestamp and mode")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	rest := fs.Args()
	if len(rest) < 2 {
		fmt.Fprintln(os.Stderr, "adb: error: pull requires at least one REMOTE and a LOCAL")
		return 1
	}
	remotes, local := rest[:len(rest)-1], rest[len(rest)-1]

	session, err := c.EnterSync(t)
	if err != nil {
		fmt.Fprintln(os.Stderr, "adb: error:", err)
		return 1
	}
	results := session.Pull(remotes, local, *preserve)
	session.Quit()
	c.Reconnect()

	return reportSyncOutcomes(pullResultsToSummaries(results))
}

type syncSummary struct {
	kind   syncpkg.Kind
	local  string
	remote string
	bytes  int64
	dur    time.Duration
	rate   float64
	count  int
	err    error
}

func pushResultsToSummaries(results []syncpkg.PushResult) []syncSummary {
	out := make([]syncSummary, len(results))
	for i, r := range results {
		out[i] = syncSummary{kind: r.Kind, local: r.LocalPath, remote: r.RemotePath,
			bytes: r.Bytes, dur: r.Dur, rate: r.Rate, count: r.Count, err: r.Err}
	}
	return out
}

func pullResultsToSummaries(results []syncpkg.PullResult) []syncSummary {
	out := make([]syncSummary, len(results))
	for i, r := range results {
		out[i] = syncSummary{kind: r.Kind, local: r.LocalPath, remote: r.RemotePath,
			bytes: r.Bytes, dur: r.Dur, rate: r.Rate, count: r.Count, err: r.Err}
	}
	return out
}

func reportSyncOutcomes(results []syncSummary) int {
	exit := 0
	for _, r := range results {
		switch r.kind {
		case syncpkg.KindSkipped:
			fmt.Printf("skipping %s\n", r.local)
		case syncpkg.KindFile:
			fmt.Printf("%s: %d bytes in %s (%.1f KB/s)\n", r.local, r.bytes, r.dur.Round(time.Millisecond), r.rate/1024)
		case syncpkg.KindDirectory:
			fmt.Printf("%s: %d files, %d bytes in %s (%.1f KB/s)\n", r.local, r.count, r.bytes, r.dur.Round(time.Millisecond), r.rate/1024)
		case syncpkg.KindFatalAbort:
			fmt.Fprintln(os.Stderr, "adb: error:", r.err)
			exit = 1
		}
	}
	return exit
}
