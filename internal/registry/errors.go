package registry

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by Error when the API answers 404.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized is wrapped by Error when the API rejects the credential.
var ErrUnauthorized = errors.New("bad credentials")

// Error is returned for every failed registry call.
type Error struct {
	Op     string // "list releases", "fetch asset 42"
	Status string // HTTP status line, empty on transport failure
	Err    error
}

func (e *Error) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
