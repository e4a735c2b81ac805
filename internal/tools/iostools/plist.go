package iostools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sammcj/xamarin-devtools/internal/config"
	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/ios"
	"github.com/sammcj/xamarin-devtools/internal/registry"
	"github.com/sammcj/xamarin-devtools/internal/tools"
)

// InfoPlistTool edits version and identifier keys in Info.plist.
type InfoPlistTool struct{}

func init() {
	registry.Register(&InfoPlistTool{})
}

func (t *InfoPlistTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"ios_info_plist",
		mcp.WithDescription("Sets CFBundleVersion, CFBundleShortVersionString and/or CFBundleIdentifier in an Info.plist file. Reports, per key, whether the key existed and was updated."),
		mcp.WithString("plist_path", mcp.Required(), mcp.Description("Path to Info.plist")),
		mcp.WithString("bundle_version", mcp.Description("Version written to CFBundleVersion")),
		mcp.WithString("short_version", mcp.Description("Version written to CFBundleShortVersionString as major.minor.patch")),
		mcp.WithString("bundle_identifier", mcp.Description("Value written to CFBundleIdentifier")),
	)
}

func (t *InfoPlistTool) Execute(ctx context.Context, h *host.Host, cfg *config.Config, args map[string]any) (*mcp.CallToolResult, error) {
	path, err := tools.RequireString(args, "plist_path")
	if err != nil {
		return nil, err
	}
	bundleVersion, err := tools.OptionalVersion(args, "bundle_version")
	if err != nil {
		return nil, err
	}
	shortVersion, err := tools.OptionalVersion(args, "short_version")
	if err != nil {
		return nil, err
	}
	identifier, err := tools.OptionalString(args, "bundle_identifier", "")
	if err != nil {
		return nil, err
	}
	if bundleVersion == nil && shortVersion == nil && identifier == "" {
		return nil, fmt.Errorf("at least one of bundle_version, short_version or bundle_identifier is required")
	}

	updated := map[string]bool{}
	if bundleVersion != nil {
		if err := ios.SetInfoPlistBundleVersion(h, path, bundleVersion); err != nil {
			return nil, err
		}
		updated[ios.KeyBundleVersion] = true
	}
	if shortVersion != nil {
		ok, err := ios.SetInfoPlistShortVersionString(h, path, shortVersion)
		if err != nil {
			return nil, err
		}
		updated[ios.KeyBundleShortVersionString] = ok
	}
	if identifier != "" {
		ok, err := ios.SetInfoPlistBundleIdentifier(h, path, identifier)
		if err != nil {
			return nil, err
		}
		updated[ios.KeyBundleIdentifier] = ok
	}

	return tools.NewToolResultJSON(map[string]any{"path": h.Abs(path), "updated": updated})
}
