package host

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of an alias failure
type ErrorKind int

const (
	ErrorFileNotFound ErrorKind = iota
	ErrorUnsupportedPlatform
	ErrorProcessStartFailed
	ErrorProcessFailed
	ErrorKeyNotFound
	ErrorInvalidArgument
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorFileNotFound:
		return "file not found"
	case ErrorUnsupportedPlatform:
		return "unsupported platform"
	case ErrorProcessStartFailed:
		return "process start failed"
	case ErrorProcessFailed:
		return "process failed"
	case ErrorKeyNotFound:
		return "key not found"
	case ErrorInvalidArgument:
		return "invalid argument"
	default:
		return fmt.Sprintf("error kind %d", int(k))
	}
}

// Error is returned for every precondition an alias refuses to continue past.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Errorf builds an *Error of the given kind.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Error message constants
const (
	ErrMsgCouldNotStart   = "Could not start process."
	ErrMsgProjectNotFound = "Project File Not Found: %s"
	ErrMsgFileNotFound    = "file not found: %s"
	ErrMsgUnixOnly        = "%s alias only runs on Mac OSX"
	ErrMsgToolFailed      = "%s: Process returned an error (exit code %d)"
)
