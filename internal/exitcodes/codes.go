package exitcodes

import (
	"errors"
	"os"
)

// Exit codes returned by ghapk
const (
	// Success indicates a clean quit from the session
	Success = 0

	// GeneralError indicates a general/unknown error
	GeneralError = 1

	// ConfigError indicates missing or invalid startup configuration
	// (e.g., GH_ACCESS_TOKEN, GH_OWNER or GH_REPO not set)
	ConfigError = 3

	// RegistryError indicates the release listing could not be fetched
	// (e.g., API unreachable, bad credentials, unknown repository)
	RegistryError = 4

	// TerminalError indicates the interactive session could not start or
	// terminated abnormally (no TTY, renderer failure)
	TerminalError = 5
)

// Exit terminates the program with the given code
func Exit(code int) {
	os.Exit(code)
}

// CodeForError returns the appropriate exit code for an error.
// Any ErrorWithCode in the chain decides the code, otherwise GeneralError.
func CodeForError(err error) int {
	if err == nil {
		return Success
	}

	var ec *ErrorWithCode
	if errors.As(err, &ec) {
		return ec.Code
	}

	return GeneralError
}
