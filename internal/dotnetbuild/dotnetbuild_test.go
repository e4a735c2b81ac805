package dotnetbuild

import (
	"context"
	"testing"

	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/host/hosttest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_RendersSettings(t *testing.T) {
	h, runner := hosttest.NewHost(true)
	require.NoError(t, afero.WriteFile(h.FS, "/work/App/App.csproj", []byte("<Project/>"), 0o644))

	err := Build(context.Background(), h, "App/App.csproj", func(s *Settings) {
		s.Configuration = "Release"
		s.WithTarget("PackageForAndroid").WithProperty("AndroidKeyStore", "true")
	})
	require.NoError(t, err)

	inv := runner.Last()
	assert.Equal(t, "msbuild", inv.Command)
	assert.Equal(t, []string{
		"/v:normal",
		"/p:Configuration=Release",
		"/p:AndroidKeyStore=true",
		"/target:PackageForAndroid",
		"/work/App/App.csproj",
	}, inv.Args())
}

func TestBuild_ConfiguratorsApplyInOrder(t *testing.T) {
	h, runner := hosttest.NewHost(true)
	require.NoError(t, afero.WriteFile(h.FS, "/work/App.sln", []byte(""), 0o644))

	err := Build(context.Background(), h, "/work/App.sln",
		func(s *Settings) { s.Configuration = "Release" },
		nil,
		func(s *Settings) { s.Configuration = "Ad-Hoc"; s.ToolPath = "xbuild"; s.Verbosity = "" },
	)
	require.NoError(t, err)
	assert.Equal(t, "xbuild", runner.Last().Command)
	assert.Equal(t, []string{"/p:Configuration=Ad-Hoc", "/work/App.sln"}, runner.Last().Args())
}

func TestBuild_MissingProject(t *testing.T) {
	h, runner := hosttest.NewHost(true)

	err := Build(context.Background(), h, "Missing.csproj")
	assert.True(t, host.IsKind(err, host.ErrorFileNotFound))
	assert.Equal(t, 0, runner.Calls())
}

func TestBuild_FailsOnNonZeroExit(t *testing.T) {
	h, runner := hosttest.NewHost(true)
	runner.ExitCode = 1
	require.NoError(t, afero.WriteFile(h.FS, "/work/App.sln", []byte(""), 0o644))

	err := Build(context.Background(), h, "App.sln")
	assert.True(t, host.IsKind(err, host.ErrorProcessFailed))
}
