// Package uitesttools exposes the UITest and Test Cloud aliases as tools.
package uitesttools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sammcj/xamarin-devtools/internal/config"
	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/registry"
	"github.com/sammcj/xamarin-devtools/internal/tools"
	"github.com/sammcj/xamarin-devtools/internal/uitest"
)

// UITestTool runs a UITest assembly with the NUnit console runner.
type UITestTool struct{}

func init() {
	registry.Register(&UITestTool{})
}

func (t *UITestTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"uitest",
		mcp.WithDescription("Runs the Xamarin.UITest tests in an assembly with nunit-console. Fails when any test fails."),
		mcp.WithString("assembly", mcp.Required(), mcp.Description("Path to the UITest .dll")),
		mcp.WithString("results_file", mcp.Description("Where to write the NUnit XML results")),
		mcp.WithBoolean("no_results", mcp.Description("Do not write an XML results file")),
		mcp.WithBoolean("no_shadow", mcp.Description("Disable shadow copying of the assembly")),
		mcp.WithString("framework", mcp.Description("Runtime framework, e.g. net-4.5")),
		mcp.WithString("include", mcp.Description("Categories to include")),
		mcp.WithString("exclude", mcp.Description("Categories to exclude")),
	)
}

func (t *UITestTool) Execute(ctx context.Context, h *host.Host, cfg *config.Config, args map[string]any) (*mcp.CallToolResult, error) {
	assembly, err := tools.RequireString(args, "assembly")
	if err != nil {
		return nil, err
	}

	settings := uitest.NewNUnitSettings()
	if cfg.Tools.NUnit != "" {
		settings.ToolPath = cfg.Tools.NUnit
	}
	if settings.ResultsFile, err = tools.OptionalString(args, "results_file", ""); err != nil {
		return nil, err
	}
	if settings.NoResults, err = tools.OptionalBool(args, "no_results", false); err != nil {
		return nil, err
	}
	noShadow, err := tools.OptionalBool(args, "no_shadow", false)
	if err != nil {
		return nil, err
	}
	settings.ShadowCopy = !noShadow
	if settings.Framework, err = tools.OptionalString(args, "framework", ""); err != nil {
		return nil, err
	}
	if settings.Include, err = tools.OptionalString(args, "include", ""); err != nil {
		return nil, err
	}
	if settings.Exclude, err = tools.OptionalString(args, "exclude", ""); err != nil {
		return nil, err
	}

	if err := uitest.Run(ctx, h, assembly, settings); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("UITests passed: %s", h.Abs(assembly))), nil
}
