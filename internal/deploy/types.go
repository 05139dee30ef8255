package deploy

import (
	"errors"
	"fmt"
)

// Stage identifies a step of a run.
type Stage int

const (
	StageResolve Stage = iota
	StageDownload
	StageTransfer
	StageInstall
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageResolve:
		return "resolve"
	case StageDownload:
		return "download"
	case StageTransfer:
		return "transfer"
	case StageInstall:
		return "install"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// ErrNoInstallableAsset is returned when the release has no .apk asset.
// No network or device call is made.
var ErrNoInstallableAsset = errors.New("no installable asset in the selected release")

// StageError reports the stage that stopped a run.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Event is emitted as a run advances. Downloaded and Total are only set
// during StageDownload; Total is -1 when the size is unknown.
type Event struct {
	RunID      string
	Tag        string
	Stage      Stage
	Downloaded int64
	Total      int64
}

// Reporter receives events. It is called from the goroutine running the
// pipeline and must not block.
type Reporter func(Event)

// Result summarizes a successful run.
type Result struct {
	RunID  string
	Tag    string
	Bytes  int64  // bytes written to the scratch file
	Output string // output of the install command
}
