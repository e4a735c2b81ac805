// Package dotnetbuild drives an MSBuild-compatible build of a project or
// solution file.
package dotnetbuild

import (
	"context"
	"sort"
	"strings"

	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/invoke"
)

// Verbosity is the MSBuild logger verbosity.
type Verbosity string

const (
	VerbosityQuiet      Verbosity = "quiet"
	VerbosityMinimal    Verbosity = "minimal"
	VerbosityNormal     Verbosity = "normal"
	VerbosityDetailed   Verbosity = "detailed"
	VerbosityDiagnostic Verbosity = "diagnostic"
)

const (
	DefaultToolPath      = "msbuild"
	DefaultConfiguration = "Debug"
)

// Settings configures one build.
type Settings struct {
	Configuration    string
	Targets          []string
	Properties       map[string][]string
	Verbosity        Verbosity
	ToolPath         string
	WorkingDirectory string
}

// NewSettings returns the default build settings.
func NewSettings() *Settings {
	return &Settings{
		Configuration: DefaultConfiguration,
		Properties:    map[string][]string{},
		Verbosity:     VerbosityNormal,
		ToolPath:      DefaultToolPath,
	}
}

// WithTarget appends a build target.
func (s *Settings) WithTarget(target string) *Settings {
	s.Targets = append(s.Targets, target)
	return s
}

// WithProperty appends values to a build property.
func (s *Settings) WithProperty(name string, values ...string) *Settings {
	if s.Properties == nil {
		s.Properties = map[string][]string{}
	}
	s.Properties[name] = append(s.Properties[name], values...)
	return s
}

// Configurator mutates settings after defaults have been applied.
type Configurator func(*Settings)

// Build runs the build driver against project. Configurators run in order,
// so later ones override earlier ones.
func Build(ctx context.Context, h *host.Host, project string, configure ...Configurator) error {
	settings := NewSettings()
	for _, c := range configure {
		if c != nil {
			c(settings)
		}
	}

	project = h.Abs(project)
	if !h.FileExists(project) {
		return host.Errorf(host.ErrorFileNotFound, host.ErrMsgProjectNotFound, project)
	}

	tool := settings.ToolPath
	if tool == "" {
		tool = DefaultToolPath
	}

	return invoke.RunChecked(ctx, h, tool, Arguments(project, settings), invoke.Options{
		Alias:            "DotNetBuild",
		WorkingDirectory: settings.WorkingDirectory,
	})
}

// Arguments renders the command line for project under settings.
func Arguments(project string, settings *Settings) *host.Arguments {
	args := host.NewArguments()

	if settings.Verbosity != "" {
		args.Append("/v:" + string(settings.Verbosity))
	}
	if settings.Configuration != "" {
		args.AppendQuoted("/p:Configuration=" + settings.Configuration)
	}

	names := make([]string, 0, len(settings.Properties))
	for name := range settings.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, value := range settings.Properties[name] {
			args.AppendQuoted("/p:" + name + "=" + value)
		}
	}

	if len(settings.Targets) > 0 {
		args.Append("/target:" + strings.Join(settings.Targets, ";"))
	}

	args.AppendQuoted(project)
	return args
}
