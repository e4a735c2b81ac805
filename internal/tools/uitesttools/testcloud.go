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

// TestCloudTool submits an .apk and its UITests to Xamarin Test Cloud.
type TestCloudTool struct{}

func init() {
	registry.Register(&TestCloudTool{})
}

func (t *TestCloudTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"test_cloud",
		mcp.WithDescription("Uploads an Android .apk and its UITest assemblies to Xamarin Test Cloud and runs them on a device set."),
		mcp.WithString("apk", mcp.Required(), mcp.Description("The .apk to test")),
		mcp.WithString("api_key", mcp.Required(), mcp.Description("Test Cloud API key")),
		mcp.WithString("devices", mcp.Required(), mcp.Description("Device set hash")),
		mcp.WithString("user", mcp.Required(), mcp.Description("Test Cloud account email")),
		mcp.WithString("assembly_dir", mcp.Required(), mcp.Description("Directory containing the UITest assemblies")),
		mcp.WithString("series", mcp.Description("Test series (default from config, normally master)")),
		mcp.WithString("locale", mcp.Description("Device locale (default from config, normally en_US)")),
		mcp.WithString("app_name", mcp.Description("App name shown in Test Cloud")),
		mcp.WithString("nunit_xml", mcp.Description("Where to write NUnit XML results")),
		mcp.WithArray("categories",
			mcp.Description("NUnit categories to run"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("fixture", mcp.Description("Single fixture to run")),
		mcp.WithBoolean("async", mcp.Description("Return once the upload is accepted")),
		mcp.WithString("keystore", mcp.Description("Keystore used to sign the test server")),
		mcp.WithString("keystore_password", mcp.Description("Keystore password")),
		mcp.WithString("key_alias", mcp.Description("Key alias")),
		mcp.WithString("key_password", mcp.Description("Key password")),
	)
}

func (t *TestCloudTool) Execute(ctx context.Context, h *host.Host, cfg *config.Config, args map[string]any) (*mcp.CallToolResult, error) {
	var sub uitest.Submission
	required := []struct {
		name string
		dst  *string
	}{
		{"apk", &sub.Apk},
		{"api_key", &sub.APIKey},
		{"devices", &sub.DevicesHash},
		{"user", &sub.UserEmail},
		{"assembly_dir", &sub.AssembliesDir},
	}
	for _, r := range required {
		v, err := tools.RequireString(args, r.name)
		if err != nil {
			return nil, err
		}
		*r.dst = v
	}

	settings, err := settingsFrom(args, cfg)
	if err != nil {
		return nil, err
	}
	if err := uitest.Submit(ctx, h, sub, settings); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Submitted %s to Test Cloud (series %s)", h.Abs(sub.Apk), settings.Series)), nil
}

func settingsFrom(args map[string]any, cfg *config.Config) (*uitest.TestCloudSettings, error) {
	settings := uitest.NewTestCloudSettings()
	settings.ToolPath = cfg.Tools.TestCloud
	if cfg.Tools.Mono != "" {
		settings.MonoPath = cfg.Tools.Mono
	}

	optional := []struct {
		name string
		dst  *string
		def  string
	}{
		{"series", &settings.Series, cfg.Defaults.TestCloudSeries},
		{"locale", &settings.Locale, cfg.Defaults.TestCloudLocale},
		{"app_name", &settings.AppName, ""},
		{"nunit_xml", &settings.NUnitXmlFile, ""},
		{"fixture", &settings.Fixture, ""},
		{"keystore", &settings.KeystorePath, ""},
		{"keystore_password", &settings.KeystorePassword, ""},
		{"key_alias", &settings.KeyAlias, ""},
		{"key_password", &settings.KeyPassword, ""},
	}
	for _, o := range optional {
		v, err := tools.OptionalString(args, o.name, o.def)
		if err != nil {
			return nil, err
		}
		*o.dst = v
	}

	var err error
	if settings.Categories, err = tools.OptionalStringSlice(args, "categories"); err != nil {
		return nil, err
	}
	if settings.Async, err = tools.OptionalBool(args, "async", false); err != nil {
		return nil, err
	}
	return settings, nil
}
