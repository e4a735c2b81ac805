// Package componenttools exposes the Xamarin Component aliases as tools.
package componenttools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sammcj/xamarin-devtools/internal/component"
	"github.com/sammcj/xamarin-devtools/internal/config"
	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/registry"
	"github.com/sammcj/xamarin-devtools/internal/tools"
)

type (
	// RestoreTool restores the components a solution references.
	RestoreTool struct{}
	// PackageTool packages a component from its component.yaml.
	PackageTool struct{}
)

func init() {
	registry.Register(&RestoreTool{})
	registry.Register(&PackageTool{})
}

func (t *RestoreTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"restore_components",
		mcp.WithDescription("Restores the Xamarin Components referenced by a solution using xamarin-component.exe."),
		mcp.WithString("solution", mcp.Required(), mcp.Description("Path to the .sln file")),
		mcp.WithString("tool_path", mcp.Description("xamarin-component.exe location (default from config)")),
	)
}

func (t *RestoreTool) Execute(ctx context.Context, h *host.Host, cfg *config.Config, args map[string]any) (*mcp.CallToolResult, error) {
	solution, err := tools.RequireString(args, "solution")
	if err != nil {
		return nil, err
	}
	settings, err := settingsFrom(args, cfg)
	if err != nil {
		return nil, err
	}
	if err := component.Restore(ctx, h, solution, settings); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Restored components for %s", h.Abs(solution))), nil
}

func (t *PackageTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"package_component",
		mcp.WithDescription("Packages a Xamarin Component from the directory containing its component.yaml."),
		mcp.WithString("directory", mcp.Required(), mcp.Description("Directory containing component.yaml")),
		mcp.WithString("tool_path", mcp.Description("xamarin-component.exe location (default from config)")),
	)
}

func (t *PackageTool) Execute(ctx context.Context, h *host.Host, cfg *config.Config, args map[string]any) (*mcp.CallToolResult, error) {
	dir, err := tools.RequireString(args, "directory")
	if err != nil {
		return nil, err
	}
	settings, err := settingsFrom(args, cfg)
	if err != nil {
		return nil, err
	}
	if err := component.Package(ctx, h, dir, settings); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Packaged component in %s", h.Abs(dir))), nil
}

func settingsFrom(args map[string]any, cfg *config.Config) (*component.Settings, error) {
	settings := component.NewSettings()
	if cfg.Tools.Component != "" {
		settings.ToolPath = cfg.Tools.Component
	}
	if cfg.Tools.Mono != "" {
		settings.MonoPath = cfg.Tools.Mono
	}
	toolPath, err := tools.OptionalString(args, "tool_path", settings.ToolPath)
	if err != nil {
		return nil, err
	}
	settings.ToolPath = toolPath
	return settings, nil
}
