// Package ios holds the Xamarin.iOS aliases: archiving and building with
// mdtool or msbuild, and editing Info.plist.
package ios

import (
	"context"

	"github.com/sammcj/xamarin-devtools/internal/dotnetbuild"
	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/invoke"
	"github.com/sammcj/xamarin-devtools/internal/mdtool"
)

// DefaultArchiveConfiguration is used by Archive when no settings are given.
const DefaultArchiveConfiguration = "Release|iPhone"

// Archive creates an archive of projectName in solution with a release
// device build.
func Archive(ctx context.Context, h *host.Host, solution, projectName string) error {
	settings := mdtool.NewSettings()
	settings.Configuration = DefaultArchiveConfiguration
	return ArchiveWithSettings(ctx, h, solution, projectName, settings)
}

// ArchiveWith starts from the default mdtool settings and lets configure
// adjust them. A nil configure keeps the defaults.
func ArchiveWith(ctx context.Context, h *host.Host, solution, projectName string, configure func(*mdtool.Settings)) error {
	settings := mdtool.NewSettings()
	if configure != nil {
		configure(settings)
	}
	return ArchiveWithSettings(ctx, h, solution, projectName, settings)
}

// ArchiveWithSettings archives with explicit settings. Only runs on macOS.
func ArchiveWithSettings(ctx context.Context, h *host.Host, solution, projectName string, settings *mdtool.Settings) error {
	if err := invoke.CheckPlatform(h, invoke.Options{Alias: "iOSArchive", RequireUnix: true}); err != nil {
		return err
	}
	return mdtool.NewRunner(h).Archive(ctx, solution, projectName, settings)
}

// Build builds a project or solution with the default mdtool settings.
func Build(ctx context.Context, h *host.Host, projectOrSolution string) error {
	return BuildWithSettings(ctx, h, projectOrSolution, mdtool.NewSettings())
}

// BuildWith starts from the default mdtool settings and lets configure
// adjust them.
func BuildWith(ctx context.Context, h *host.Host, projectOrSolution string, configure func(*mdtool.Settings)) error {
	settings := mdtool.NewSettings()
	if configure != nil {
		configure(settings)
	}
	return BuildWithSettings(ctx, h, projectOrSolution, settings)
}

// BuildWithSettings builds with explicit settings. Only runs on macOS.
func BuildWithSettings(ctx context.Context, h *host.Host, projectOrSolution string, settings *mdtool.Settings) error {
	if err := invoke.CheckPlatform(h, invoke.Options{Alias: "iOSBuild", RequireUnix: true}); err != nil {
		return err
	}
	return mdtool.NewRunner(h).Build(ctx, projectOrSolution, settings)
}

// MSBuild builds an iOS project with the build driver instead of mdtool.
func MSBuild(ctx context.Context, h *host.Host, projectOrSolution string, configure dotnetbuild.Configurator) error {
	if configure == nil {
		return dotnetbuild.Build(ctx, h, projectOrSolution)
	}
	return dotnetbuild.Build(ctx, h, projectOrSolution, configure)
}
