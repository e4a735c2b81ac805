// Package androidtools exposes the Xamarin.Android aliases as tools.
package androidtools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sammcj/xamarin-devtools/internal/android"
	"github.com/sammcj/xamarin-devtools/internal/config"
	"github.com/sammcj/xamarin-devtools/internal/dotnetbuild"
	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/registry"
	"github.com/sammcj/xamarin-devtools/internal/tools"
)

// PackageTool builds an .apk from an Android project.
type PackageTool struct{}

func init() {
	registry.Register(&PackageTool{})
}

// Definition returns the tool's definition for MCP registration
func (t *PackageTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"android_package",
		mcp.WithDescription("Builds a Xamarin.Android project in Release and returns the newest .apk it produced. With sign=true the SignAndroidPackage target is built and only -Signed.apk files are returned."),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Path to the Android .csproj file"),
		),
		mcp.WithBoolean("sign",
			mcp.Description("Build SignAndroidPackage instead of PackageForAndroid"),
		),
		mcp.WithString("configuration",
			mcp.Description("Build configuration override (default Release)"),
		),
		mcp.WithObject("properties",
			mcp.Description("Additional MSBuild properties, e.g. {\"AndroidKeyStore\": \"true\"}"),
		),
	)
}

// Execute runs the package alias
func (t *PackageTool) Execute(ctx context.Context, h *host.Host, cfg *config.Config, args map[string]any) (*mcp.CallToolResult, error) {
	project, err := tools.RequireString(args, "project")
	if err != nil {
		return nil, err
	}
	sign, err := tools.OptionalBool(args, "sign", false)
	if err != nil {
		return nil, err
	}
	configuration, err := tools.OptionalString(args, "configuration", "")
	if err != nil {
		return nil, err
	}
	properties, err := tools.OptionalStringMap(args, "properties")
	if err != nil {
		return nil, err
	}

	apk, found, err := android.Package(ctx, h, project, sign, func(s *dotnetbuild.Settings) {
		tools.ApplyBuildConfig(s, cfg)
		if configuration != "" {
			s.Configuration = configuration
		}
		for name, values := range properties {
			s.WithProperty(name, values...)
		}
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return mcp.NewToolResultText(fmt.Sprintf("Build succeeded but no .apk was found under %s", project)), nil
	}
	return tools.NewToolResultJSON(map[string]any{"apk": apk, "signed": sign})
}

// ProvideExtendedInfo implements the ExtendedHelpProvider interface
func (t *PackageTool) ProvideExtendedInfo() *tools.ExtendedHelp {
	return &tools.ExtendedHelp{
		WhenToUse: "Use to produce an installable .apk from a Xamarin.Android project. The returned path is the most recently written matching .apk anywhere under the project directory.",
		Examples: []tools.ToolExample{
			{
				Description:    "Build and sign a release package",
				Arguments:      map[string]any{"project": "src/App.Droid/App.Droid.csproj", "sign": true},
				ExpectedResult: "Path to the newest *-Signed.apk under src/App.Droid",
			},
		},
		Troubleshooting: []tools.TroubleshootingTip{
			{
				Problem:  "Build succeeded but no .apk was found",
				Solution: "Check the OutputPath of the Release configuration; only files below the project directory are searched.",
			},
		},
	}
}
