package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		EnvConfigPath, "DISABLED_TOOLS",
		"XAMARIN_DEVTOOLS_MDTOOL_PATH", "XAMARIN_DEVTOOLS_MSBUILD_PATH",
		"XAMARIN_DEVTOOLS_COMPONENT_PATH", "XAMARIN_DEVTOOLS_TESTCLOUD_PATH",
		"XAMARIN_DEVTOOLS_NUNIT_PATH", "XAMARIN_DEVTOOLS_ZIPALIGN_PATH",
		"XAMARIN_DEVTOOLS_MONO_PATH", "XAMARIN_DEVTOOLS_ZIPALIGN_ALIGNMENT",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
tools:
  msbuild: /usr/local/bin/msbuild
  testcloud: /opt/uitest/test-cloud.exe
defaults:
  testcloud_series: nightly
disabled_tools:
  - ios_archive
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/msbuild", cfg.Tools.MSBuild)
	assert.Equal(t, "/opt/uitest/test-cloud.exe", cfg.Tools.TestCloud)
	assert.Equal(t, "mono", cfg.Tools.Mono, "unset keys keep defaults")
	assert.Equal(t, "nightly", cfg.Defaults.TestCloudSeries)
	assert.Equal(t, "en_US", cfg.Defaults.TestCloudLocale)
	assert.Equal(t, []string{"ios_archive"}, cfg.DisabledTools)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tools:\n  mono: /yaml/mono\n"), 0o600))

	t.Setenv("XAMARIN_DEVTOOLS_MONO_PATH", "/env/mono")
	t.Setenv("XAMARIN_DEVTOOLS_ZIPALIGN_ALIGNMENT", "8")
	t.Setenv("DISABLED_TOOLS", "test_cloud, uitest ,")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/env/mono", cfg.Tools.Mono)
	assert.Equal(t, 8, cfg.Defaults.ZipAlignAlignment)
	assert.Equal(t, []string{"test_cloud", "uitest"}, cfg.DisabledTools)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tools: [unterminated"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	t.Setenv("XAMARIN_DEVTOOLS_ZIPALIGN_ALIGNMENT", "zero")
	_, err = Load(path)
	assert.ErrorContains(t, err, "ZIPALIGN_ALIGNMENT")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/etc/xamarin-devtools.yaml")
	assert.Equal(t, "/etc/xamarin-devtools.yaml", DefaultPath())

	t.Setenv(EnvConfigPath, "")
	assert.True(t, strings.HasSuffix(DefaultPath(), filepath.Join(".xamarin-devtools", "config.yaml")))
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv("XAMARIN_DEVTOOLS_NUNIT_PATH"))
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("XAMARIN_DEVTOOLS_NUNIT_PATH=/dotenv/nunit\nXAMARIN_DEVTOOLS_MONO_PATH=/dotenv/mono\n"), 0o600))
	t.Setenv("XAMARIN_DEVTOOLS_MONO_PATH", "/shell/mono")

	require.NoError(t, LoadDotEnv(dir))

	assert.Equal(t, "/dotenv/nunit", os.Getenv("XAMARIN_DEVTOOLS_NUNIT_PATH"))
	assert.Equal(t, "/shell/mono", os.Getenv("XAMARIN_DEVTOOLS_MONO_PATH"))

	assert.NoError(t, LoadDotEnv(t.TempDir()), "missing .env is ignored")
}
