package device

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds, matched with errors.Is.
var (
	ErrConnection = errors.New("device connection failed")
	ErrTransfer   = errors.New("file transfer failed")
	ErrCommand    = errors.New("shell command failed")
)

// Error describes a failed adb invocation.
type Error struct {
	Kind   error  // ErrConnection, ErrTransfer or ErrCommand
	Op     string // e.g. "push /tmp/app.apk"
	Output string // trimmed adb output, if any
	Err    error  // underlying exec error, if any
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Op != "" {
		fmt.Fprintf(&b, " (%s)", e.Op)
	}
	if e.Output != "" {
		fmt.Fprintf(&b, ": %s", e.Output)
	} else if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.Kind }
