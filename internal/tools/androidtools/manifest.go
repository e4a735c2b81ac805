package androidtools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sammcj/xamarin-devtools/internal/android"
	"github.com/sammcj/xamarin-devtools/internal/config"
	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/registry"
	"github.com/sammcj/xamarin-devtools/internal/tools"
)

// ManifestVersionTool edits versionName and versionCode in AndroidManifest.xml.
type ManifestVersionTool struct{}

func init() {
	registry.Register(&ManifestVersionTool{})
}

// Definition returns the tool's definition for MCP registration
func (t *ManifestVersionTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"android_manifest_version",
		mcp.WithDescription("Sets android:versionName and/or android:versionCode on the root of an AndroidManifest.xml file."),
		mcp.WithString("manifest_path",
			mcp.Required(),
			mcp.Description("Path to AndroidManifest.xml"),
		),
		mcp.WithString("version_name",
			mcp.Description("Semantic version written to android:versionName, e.g. 1.4.0"),
		),
		mcp.WithNumber("version_code",
			mcp.Description("Integer written to android:versionCode"),
		),
	)
}

// Execute runs the manifest aliases
func (t *ManifestVersionTool) Execute(ctx context.Context, h *host.Host, cfg *config.Config, args map[string]any) (*mcp.CallToolResult, error) {
	path, err := tools.RequireString(args, "manifest_path")
	if err != nil {
		return nil, err
	}
	version, err := tools.OptionalVersion(args, "version_name")
	if err != nil {
		return nil, err
	}
	_, hasCode := args["version_code"]
	code, err := tools.OptionalInt(args, "version_code", 0)
	if err != nil {
		return nil, err
	}

	switch {
	case version != nil && hasCode:
		err = android.SetManifestVersionNameAndNumber(h, path, version, code)
	case version != nil:
		err = android.SetManifestVersionName(h, path, version)
	case hasCode:
		err = android.SetManifestVersionNumber(h, path, code)
	default:
		return nil, fmt.Errorf("at least one of version_name or version_code is required")
	}
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Updated %s", h.Abs(path))), nil
}
