// Package mdtool runs the Xamarin Studio command-line tool.
package mdtool

import (
	"context"

	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/invoke"
)

const (
	DefaultToolPath      = "/Applications/Xamarin Studio.app/Contents/MacOS/mdtool"
	DefaultConfiguration = "Debug|iPhoneSimulator"
	DefaultTarget        = "Build"
)

// Settings configures an mdtool invocation.
type Settings struct {
	// Configuration is "<name>|<platform>", e.g. "Release|iPhone".
	Configuration     string
	Target            string
	ToolPath          string
	IncreaseVerbosity bool
	WorkingDirectory  string
}

// NewSettings returns the default settings.
func NewSettings() *Settings {
	return &Settings{
		Configuration: DefaultConfiguration,
		Target:        DefaultTarget,
		ToolPath:      DefaultToolPath,
	}
}

// Runner builds and archives projects with mdtool. mdtool only exists on macOS.
type Runner struct {
	h *host.Host
}

// NewRunner returns a Runner bound to h.
func NewRunner(h *host.Host) *Runner {
	return &Runner{h: h}
}

// Build builds a project or solution.
func (r *Runner) Build(ctx context.Context, projectOrSolution string, settings *Settings) error {
	settings = orDefault(settings)
	if err := invoke.CheckPlatform(r.h, invoke.Options{Alias: "mdtool build", RequireUnix: true}); err != nil {
		return err
	}
	file, err := r.existing(projectOrSolution)
	if err != nil {
		return err
	}

	args := r.prefix(settings).Append("build")
	if settings.Target != "" {
		args.AppendQuoted("-t:" + settings.Target)
	}
	if settings.Configuration != "" {
		args.AppendQuoted("-c:" + settings.Configuration)
	}
	args.AppendQuoted(file)

	return r.run(ctx, settings, args)
}

// Archive archives projectName from solution.
func (r *Runner) Archive(ctx context.Context, solution, projectName string, settings *Settings) error {
	settings = orDefault(settings)
	if err := invoke.CheckPlatform(r.h, invoke.Options{Alias: "mdtool archive", RequireUnix: true}); err != nil {
		return err
	}
	if projectName == "" {
		return host.Errorf(host.ErrorInvalidArgument, "project name is required for archive")
	}
	file, err := r.existing(solution)
	if err != nil {
		return err
	}

	args := r.prefix(settings).Append("archive")
	if settings.Configuration != "" {
		args.AppendQuoted("-c:" + settings.Configuration)
	}
	args.AppendQuoted("-p:" + projectName)
	args.AppendQuoted(file)

	return r.run(ctx, settings, args)
}

func (r *Runner) existing(path string) (string, error) {
	abs := r.h.Abs(path)
	if !r.h.FileExists(abs) {
		return "", host.Errorf(host.ErrorFileNotFound, host.ErrMsgFileNotFound, abs)
	}
	return abs, nil
}

func (r *Runner) prefix(settings *Settings) *host.Arguments {
	args := host.NewArguments()
	if settings.IncreaseVerbosity {
		args.Append("-v")
	}
	return args
}

func (r *Runner) run(ctx context.Context, settings *Settings, args *host.Arguments) error {
	tool := settings.ToolPath
	if tool == "" {
		tool = DefaultToolPath
	}
	return invoke.RunChecked(ctx, r.h, tool, args, invoke.Options{
		Alias:            "mdtool",
		WorkingDirectory: settings.WorkingDirectory,
		RequireUnix:      true,
	})
}

func orDefault(settings *Settings) *Settings {
	if settings == nil {
		return NewSettings()
	}
	return settings
}
