package exitcodes

import "fmt"

// ErrorWithCode is an error that carries an explicit exit code
type ErrorWithCode struct {
	Code    int
	Message string
	Cause   error
}

func (e *ErrorWithCode) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ErrorWithCode) Unwrap() error {
	return e.Cause
}

// NewError creates an error with an explicit exit code
func NewError(code int, message string) *ErrorWithCode {
	return &ErrorWithCode{Code: code, Message: message}
}

// NewErrorf creates an error with formatted message and exit code
func NewErrorf(code int, format string, args ...interface{}) *ErrorWithCode {
	return &ErrorWithCode{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError wraps an existing error with an exit code
func WrapError(code int, message string, cause error) *ErrorWithCode {
	return &ErrorWithCode{Code: code, Message: message, Cause: cause}
}

// Common error constructors

func ConfigErr(message string) *ErrorWithCode {
	return NewError(ConfigError, message)
}

func ConfigErrf(format string, args ...interface{}) *ErrorWithCode {
	return NewErrorf(ConfigError, format, args...)
}

func RegistryErr(message string, cause error) *ErrorWithCode {
	return WrapError(RegistryError, message, cause)
}

func TerminalErr(message string, cause error) *ErrorWithCode {
	return WrapError(TerminalError, message, cause)
}
