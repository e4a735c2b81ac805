// Package invoke runs one external tool to completion on behalf of an alias.
//
// Every alias goes through Run: check the platform, resolve the working
// directory, start the process and wait for it. Run never interprets the
// exit code; tools whose non-zero exit means failure call RequireSuccess.
package invoke

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sirupsen/logrus"
)

// Options controls a single invocation.
type Options struct {
	// Alias names the calling alias in errors and logs.
	Alias string
	// WorkingDirectory defaults to the environment working directory.
	WorkingDirectory string
	// RequireUnix fails the call before launch on non-Unix hosts.
	RequireUnix bool
	Stdout      io.Writer
	Stderr      io.Writer
}

// Run starts command with args and blocks until it exits.
func Run(ctx context.Context, h *host.Host, command string, args *host.Arguments, opts Options) (host.Process, error) {
	if err := CheckPlatform(h, opts); err != nil {
		return nil, err
	}

	base := h.Env.WorkingDirectory()
	workingDir := opts.WorkingDirectory
	if workingDir == "" {
		workingDir = base
	}
	workingDir = host.MakeAbsolute(workingDir, base)

	if args == nil {
		args = host.NewArguments()
	}

	log := h.Logger.WithFields(logrus.Fields{
		"invocation_id": uuid.New().String(),
		"alias":         opts.Alias,
		"command":       command,
		"arguments":     args.RenderSafe(),
		"working_dir":   workingDir,
	})
	log.Info("Starting process")

	proc, err := h.Runner.Start(ctx, command, host.ProcessSettings{
		Arguments:        args,
		WorkingDirectory: workingDir,
		Stdout:           opts.Stdout,
		Stderr:           opts.Stderr,
	})
	if err != nil {
		log.WithError(err).Error("Process could not be started")
		return nil, &host.Error{Kind: host.ErrorProcessStartFailed, Message: host.ErrMsgCouldNotStart, Cause: err}
	}
	if proc == nil {
		log.Error("Process runner returned no handle")
		return nil, &host.Error{Kind: host.ErrorProcessStartFailed, Message: host.ErrMsgCouldNotStart}
	}

	if err := proc.WaitForExit(); err != nil {
		log.WithError(err).Error("Waiting for process failed")
		return proc, err
	}

	log.WithField("exit_code", proc.ExitCode()).Info("Process exited")
	return proc, nil
}

// CheckPlatform applies the platform precondition in opts.
func CheckPlatform(h *host.Host, opts Options) error {
	if opts.RequireUnix && !h.Env.IsUnix() {
		return host.Errorf(host.ErrorUnsupportedPlatform, host.ErrMsgUnixOnly, opts.Alias)
	}
	return nil
}

// RequireSuccess turns a non-zero exit into an ErrorProcessFailed error.
func RequireSuccess(proc host.Process, tool string) error {
	if code := proc.ExitCode(); code != 0 {
		return host.Errorf(host.ErrorProcessFailed, host.ErrMsgToolFailed, tool, code)
	}
	return nil
}

// RunChecked is Run followed by RequireSuccess.
func RunChecked(ctx context.Context, h *host.Host, command string, args *host.Arguments, opts Options) error {
	proc, err := Run(ctx, h, command, args, opts)
	if err != nil {
		return err
	}
	return RequireSuccess(proc, opts.Alias)
}

// DefaultMonoPath is the mono runtime used for .exe tools on Unix.
const DefaultMonoPath = "mono"

// ManagedCommand returns the executable and leading arguments that launch
// the .NET tool at toolPath. On Unix the tool runs under mono (monoPath, or
// DefaultMonoPath when empty); elsewhere it runs directly.
func ManagedCommand(h *host.Host, toolPath, monoPath string) (string, *host.Arguments) {
	tool := h.Abs(toolPath)
	if !h.Env.IsUnix() {
		return tool, host.NewArguments()
	}
	if monoPath == "" {
		monoPath = DefaultMonoPath
	}
	return monoPath, host.NewArguments().AppendQuoted(tool)
}
