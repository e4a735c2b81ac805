// Package uitest runs Xamarin.UITest suites locally through NUnit and
// remotely on Xamarin Test Cloud.
package uitest

import (
	"context"

	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/invoke"
)

const DefaultNUnitToolPath = "nunit-console"

// NUnitSettings configures the NUnit console runner.
type NUnitSettings struct {
	ToolPath string
	// ResultsFile is where the XML report goes; empty uses NUnit's default.
	ResultsFile string
	NoResults   bool
	NoLogo      bool
	ShadowCopy  bool
	// Framework selects the runtime, e.g. "net-4.5".
	Framework        string
	Include          string
	Exclude          string
	WorkingDirectory string
}

// NewNUnitSettings returns the default NUnit settings.
func NewNUnitSettings() *NUnitSettings {
	return &NUnitSettings{
		ToolPath:   DefaultNUnitToolPath,
		NoLogo:     true,
		ShadowCopy: true,
	}
}

// Run runs the UITests in assembly with the NUnit console runner. A failing
// test run is reported as an ErrorProcessFailed error.
func Run(ctx context.Context, h *host.Host, assembly string, settings *NUnitSettings) error {
	if settings == nil {
		settings = NewNUnitSettings()
	}

	file := h.Abs(assembly)
	if !h.FileExists(file) {
		return host.Errorf(host.ErrorFileNotFound, host.ErrMsgFileNotFound, file)
	}

	tool := settings.ToolPath
	if tool == "" {
		tool = DefaultNUnitToolPath
	}

	return invoke.RunChecked(ctx, h, tool, NUnitArguments(h, file, settings), invoke.Options{
		Alias:            "UITest",
		WorkingDirectory: settings.WorkingDirectory,
	})
}

// NUnitArguments renders the nunit-console command line for assembly.
func NUnitArguments(h *host.Host, assembly string, settings *NUnitSettings) *host.Arguments {
	args := host.NewArguments().AppendQuoted(assembly)

	if settings.NoLogo {
		args.Append("-nologo")
	}
	if !settings.ShadowCopy {
		args.Append("-noshadow")
	}

	switch {
	case settings.NoResults:
		args.Append("-noresult")
	case settings.ResultsFile != "":
		args.AppendQuoted("-result:" + h.Abs(settings.ResultsFile))
	}

	if settings.Framework != "" {
		args.AppendValue("-framework:" + settings.Framework)
	}
	if settings.Include != "" {
		args.AppendValue("-include:" + settings.Include)
	}
	if settings.Exclude != "" {
		args.AppendValue("-exclude:" + settings.Exclude)
	}
	return args
}
