package host

import (
	"context"
	"io"
)

// ProcessSettings describes how to launch a process.
type ProcessSettings struct {
	Arguments        *Arguments
	WorkingDirectory string
	// Stdout and Stderr receive a copy of the process output when set.
	Stdout io.Writer
	Stderr io.Writer
}

// Process is a handle to a launched process.
type Process interface {
	// WaitForExit blocks until the process exits. A non-zero exit code is not
	// an error; it is reported by ExitCode.
	WaitForExit() error
	ExitCode() int
	Exited() bool
	Stdout() string
	Stderr() string
}

// ProcessRunner launches processes. Start returns a nil Process when the
// process could not be created.
type ProcessRunner interface {
	Start(ctx context.Context, command string, settings ProcessSettings) (Process, error)
}
