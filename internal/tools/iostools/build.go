// Package iostools exposes the Xamarin.iOS aliases as tools.
package iostools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sammcj/xamarin-devtools/internal/config"
	"github.com/sammcj/xamarin-devtools/internal/dotnetbuild"
	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/ios"
	"github.com/sammcj/xamarin-devtools/internal/mdtool"
	"github.com/sammcj/xamarin-devtools/internal/registry"
	"github.com/sammcj/xamarin-devtools/internal/tools"
)

type (
	// ArchiveTool archives an iOS project with mdtool.
	ArchiveTool struct{}
	// BuildTool builds an iOS project with mdtool.
	BuildTool struct{}
	// MSBuildTool builds an iOS project with the build driver.
	MSBuildTool struct{}
)

func init() {
	registry.Register(&ArchiveTool{})
	registry.Register(&BuildTool{})
	registry.Register(&MSBuildTool{})
}

func (t *ArchiveTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"ios_archive",
		mcp.WithDescription("Archives a Xamarin.iOS project with mdtool (macOS only). Defaults to Release|iPhone."),
		mcp.WithString("solution", mcp.Required(), mcp.Description("Path to the .sln file")),
		mcp.WithString("project", mcp.Required(), mcp.Description("Name of the iOS project inside the solution")),
		mcp.WithString("configuration", mcp.Description("Configuration as \"<name>|<platform>\"")),
		mcp.WithBoolean("verbose", mcp.Description("Pass -v to mdtool")),
	)
}

func (t *ArchiveTool) Execute(ctx context.Context, h *host.Host, cfg *config.Config, args map[string]any) (*mcp.CallToolResult, error) {
	solution, err := tools.RequireString(args, "solution")
	if err != nil {
		return nil, err
	}
	project, err := tools.RequireString(args, "project")
	if err != nil {
		return nil, err
	}
	configure, err := mdtoolConfigurator(args, cfg, cfg.Defaults.ArchiveConfiguration)
	if err != nil {
		return nil, err
	}

	if err := ios.ArchiveWith(ctx, h, solution, project, configure); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Archived %s from %s", project, h.Abs(solution))), nil
}

func (t *BuildTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"ios_build",
		mcp.WithDescription("Builds a Xamarin.iOS project or solution with mdtool (macOS only). Defaults to Debug|iPhoneSimulator."),
		mcp.WithString("project", mcp.Required(), mcp.Description("Path to the .csproj or .sln file")),
		mcp.WithString("configuration", mcp.Description("Configuration as \"<name>|<platform>\"")),
		mcp.WithString("target", mcp.Description("mdtool target (default Build)")),
		mcp.WithBoolean("verbose", mcp.Description("Pass -v to mdtool")),
	)
}

func (t *BuildTool) Execute(ctx context.Context, h *host.Host, cfg *config.Config, args map[string]any) (*mcp.CallToolResult, error) {
	project, err := tools.RequireString(args, "project")
	if err != nil {
		return nil, err
	}
	target, err := tools.OptionalString(args, "target", "")
	if err != nil {
		return nil, err
	}
	configure, err := mdtoolConfigurator(args, cfg, cfg.Defaults.MDToolConfiguration)
	if err != nil {
		return nil, err
	}

	err = ios.BuildWith(ctx, h, project, func(s *mdtool.Settings) {
		configure(s)
		if target != "" {
			s.Target = target
		}
	})
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Built %s", h.Abs(project))), nil
}

// mdtoolConfigurator applies config and argument overrides, in that order.
func mdtoolConfigurator(args map[string]any, cfg *config.Config, defaultConfiguration string) (func(*mdtool.Settings), error) {
	configuration, err := tools.OptionalString(args, "configuration", defaultConfiguration)
	if err != nil {
		return nil, err
	}
	verbose, err := tools.OptionalBool(args, "verbose", false)
	if err != nil {
		return nil, err
	}

	return func(s *mdtool.Settings) {
		if cfg.Tools.MDTool != "" {
			s.ToolPath = cfg.Tools.MDTool
		}
		if configuration != "" {
			s.Configuration = configuration
		}
		s.IncreaseVerbosity = verbose
	}, nil
}

func (t *MSBuildTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"ios_msbuild",
		mcp.WithDescription("Builds a Xamarin.iOS project or solution with msbuild."),
		mcp.WithString("project", mcp.Required(), mcp.Description("Path to the .csproj or .sln file")),
		mcp.WithString("configuration", mcp.Description("Build configuration (default Debug)")),
		mcp.WithArray("targets",
			mcp.Description("Targets to build"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithObject("properties", mcp.Description("Additional MSBuild properties, e.g. {\"Platform\": \"iPhone\"}")),
	)
}

func (t *MSBuildTool) Execute(ctx context.Context, h *host.Host, cfg *config.Config, args map[string]any) (*mcp.CallToolResult, error) {
	project, err := tools.RequireString(args, "project")
	if err != nil {
		return nil, err
	}
	configuration, err := tools.OptionalString(args, "configuration", "")
	if err != nil {
		return nil, err
	}
	targets, err := tools.OptionalStringSlice(args, "targets")
	if err != nil {
		return nil, err
	}
	properties, err := tools.OptionalStringMap(args, "properties")
	if err != nil {
		return nil, err
	}

	err = ios.MSBuild(ctx, h, project, func(s *dotnetbuild.Settings) {
		tools.ApplyBuildConfig(s, cfg)
		if configuration != "" {
			s.Configuration = configuration
		}
		for _, target := range targets {
			s.WithTarget(target)
		}
		for name, values := range properties {
			s.WithProperty(name, values...)
		}
	})
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Built %s", h.Abs(project))), nil
}
