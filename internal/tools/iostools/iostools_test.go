package iostools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sammcj/xamarin-devtools/internal/config"
	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/host/hosttest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveTool_Execute(t *testing.T) {
	h, runner := hosttest.NewHost(true)
	require.NoError(t, afero.WriteFile(h.FS, "/work/App.sln", nil, 0o644))
	cfg := config.Default()
	cfg.Tools.MDTool = "/opt/mdtool"

	_, err := (&ArchiveTool{}).Execute(context.Background(), h, cfg, map[string]any{"solution": "App.sln", "project": "App.iOS"})
	require.NoError(t, err)

	inv := runner.Last()
	assert.Equal(t, "/opt/mdtool", inv.Command)
	assert.Equal(t, []string{"archive", "-c:Release|iPhone", "-p:App.iOS", "/work/App.sln"}, inv.Args())
}

func TestBuildTool_Execute(t *testing.T) {
	h, runner := hosttest.NewHost(true)
	require.NoError(t, afero.WriteFile(h.FS, "/work/App.iOS.csproj", nil, 0o644))

	_, err := (&BuildTool{}).Execute(context.Background(), h, config.Default(), map[string]any{
		"project":       "App.iOS.csproj",
		"configuration": "Ad-Hoc|iPhone",
		"target":        "Rebuild",
		"verbose":       true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"-v", "build", "-t:Rebuild", "-c:Ad-Hoc|iPhone", "/work/App.iOS.csproj"}, runner.Last().Args())
}

func TestBuildTool_RequiresMac(t *testing.T) {
	h, runner := hosttest.NewHost(false)
	require.NoError(t, afero.WriteFile(h.FS, "/work/App.sln", nil, 0o644))

	_, err := (&BuildTool{}).Execute(context.Background(), h, config.Default(), map[string]any{"project": "App.sln"})
	assert.True(t, host.IsKind(err, host.ErrorUnsupportedPlatform))
	assert.Contains(t, err.Error(), "iOSBuild alias only runs on Mac OSX")
	assert.Equal(t, 0, runner.Calls())
}

func TestMSBuildTool_Execute(t *testing.T) {
	h, runner := hosttest.NewHost(false)
	require.NoError(t, afero.WriteFile(h.FS, "/work/App.sln", nil, 0o644))

	_, err := (&MSBuildTool{}).Execute(context.Background(), h, config.Default(), map[string]any{
		"project":       "App.sln",
		"configuration": "Release",
		"targets":       []any{"Clean", "Build"},
		"properties":    map[string]any{"Platform": "iPhone"},
	})
	require.NoError(t, err)

	inv := runner.Last()
	assert.Equal(t, "msbuild", inv.Command)
	assert.Equal(t, []string{"/v:normal", "/p:Configuration=Release", "/p:Platform=iPhone", "/target:Clean;Build", "/work/App.sln"}, inv.Args())
}

const plist = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>CFBundleShortVersionString</key>
	<string>1.0</string>
	<key>CFBundleVersion</key>
	<string>1</string>
</dict>
</plist>
`

func TestInfoPlistTool_Execute(t *testing.T) {
	h, _ := hosttest.NewHost(true)
	require.NoError(t, afero.WriteFile(h.FS, "/work/Info.plist", []byte(plist), 0o644))

	result, err := (&InfoPlistTool{}).Execute(context.Background(), h, config.Default(), map[string]any{
		"plist_path":        "Info.plist",
		"bundle_version":    "2.3.4",
		"short_version":     "2.3.4",
		"bundle_identifier": "com.example.app",
	})
	require.NoError(t, err)

	text := result.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, `"CFBundleVersion": true`)
	assert.Contains(t, text, `"CFBundleShortVersionString": true`)
	assert.Contains(t, text, `"CFBundleIdentifier": false`)

	data, err := afero.ReadFile(h.FS, "/work/Info.plist")
	require.NoError(t, err)
	assert.Contains(t, string(data), "<string>2.3.4</string>")
	assert.NotContains(t, string(data), "com.example.app")
}

func TestInfoPlistTool_RequiresAValue(t *testing.T) {
	h, _ := hosttest.NewHost(true)

	_, err := (&InfoPlistTool{}).Execute(context.Background(), h, config.Default(), map[string]any{"plist_path": "Info.plist"})
	assert.ErrorContains(t, err, "at least one of")
}
