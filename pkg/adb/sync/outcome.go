package sync

import "time"

// Kind discriminates the tagged union carried by PushResult and
// PullResult. Go has no sum type, so Kind plus per-kind fields on
// the same struct stands in for one — batch callers need to distinguish
// a partial success from a single fatal abort, which a plain error return
// can't express once more than one file is involved.
type Kind int

const (
	// KindSkipped: --sync determined the file did not need transferring.
	KindSkipped Kind = iota
	// KindFile: one regular file was transferred.
	KindFile
	// KindDirectory: one directory was created/traversed. Its Bytes, Dur,
	// Rate and Count aggregate its files, which also appear as their own
	// File outcomes.
	KindDirectory
	// KindFatalAbort: the operation (or the whole batch) stopped here.
	KindFatalAbort
)

func (k Kind) String() string {
	switch k {
	case KindSkipped:
		return "Skipped"
	case KindFile:
		return "File"
	case KindDirectory:
		return "Directory"
	case KindFatalAbort:
		return "FatalAbort"
	default:
		return "Unknown"
	}
}

// PushResult is the outcome of pushing one source path. Dur and Rate are
// populated for KindFile (one file's own transfer) and KindDirectory (the
// whole subtree's aggregate); Count is populated only for KindDirectory,
// counting the files transferred beneath it.
type PushResult struct {
	Kind       Kind
	LocalPath  string
	RemotePath string
	Bytes      int64
	Dur        time.Duration
	Rate       float64 // bytes/second, 0 when Dur is 0
	Count      int     // files transferred; set only when Kind == KindDirectory
	Err        error   // set only when Kind == KindFatalAbort
}

// PullResult is the outcome of pulling one remote path. Dur, Rate and
// Count are set for the same Kinds as in PushResult, except that a
// KindDirectory result aggregates only the files directly inside that
// directory, not those in its subdirectories.
type PullResult struct {
	Kind       Kind
	LocalPath  string
	RemotePath string
	Bytes      int64
	Dur        time.Duration
	Rate       float64
	Count      int
	Err        error // set only when Kind == KindFatalAbort
}

// rate computes bytes/second, returning 0 for a non-positive duration.
func rate(bytes int64, dur time.Duration) float64 {
	if dur <= 0 {
		return 0
	}
	return float64(bytes) / dur.Seconds()
}
