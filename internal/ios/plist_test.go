package ios

import (
	"testing"

	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/host/hosttest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plistPath = "/work/Info.plist"

const fullPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleIdentifier</key>
	<string>com.example.app</string>
	<key>CFBundleShortVersionString</key>
	<string>1.0</string>
	<key>CFBundleVersion</key>
	<string>1</string>
</dict>
</plist>
`

const barePlist = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>CFBundleDisplayName</key>
	<string>App</string>
</dict>
</plist>
`

func writePlist(t *testing.T, h *host.Host, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(h.FS, plistPath, []byte(content), 0o644))
}

func readPlist(t *testing.T, h *host.Host) string {
	t.Helper()
	data, err := afero.ReadFile(h.FS, plistPath)
	require.NoError(t, err)
	return string(data)
}

func TestSetInfoPlistBundleVersion(t *testing.T) {
	h, _ := hosttest.NewHost(true)
	writePlist(t, h, fullPlist)

	require.NoError(t, SetInfoPlistBundleVersion(h, plistPath, host.MustParseVersion("2.3.4")))
	out := readPlist(t, h)
	assert.Contains(t, out, "<key>CFBundleVersion</key>\n\t<string>2.3.4</string>")
	assert.Contains(t, out, "<string>1.0</string>", "other values are untouched")
	assert.Contains(t, out, "<!DOCTYPE plist")
}

func TestSetInfoPlistBundleVersion_FourComponents(t *testing.T) {
	h, _ := hosttest.NewHost(true)
	writePlist(t, h, fullPlist)

	require.NoError(t, SetInfoPlistBundleVersion(h, plistPath, host.MustParseVersion("2.1.0.123")))
	assert.Contains(t, readPlist(t, h), "<key>CFBundleVersion</key>\n\t<string>2.1.0.123</string>")

	ok, err := SetInfoPlistShortVersionString(h, plistPath, host.MustParseVersion("2.1.0.123"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, readPlist(t, h), "<key>CFBundleShortVersionString</key>\n\t<string>2.1.0</string>")
}

func TestSetInfoPlistBundleVersion_MissingKey(t *testing.T) {
	h, _ := hosttest.NewHost(true)
	writePlist(t, h, barePlist)

	err := SetInfoPlistBundleVersion(h, plistPath, host.MustParseVersion("2.3.4"))
	assert.True(t, host.IsKind(err, host.ErrorKeyNotFound))
	assert.Equal(t, barePlist, readPlist(t, h))
}

func TestSetInfoPlistShortVersionString(t *testing.T) {
	h, _ := hosttest.NewHost(true)
	writePlist(t, h, fullPlist)

	ok, err := SetInfoPlistShortVersionString(h, plistPath, host.MustParseVersion("2.3.4-beta.1"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, readPlist(t, h), "<key>CFBundleShortVersionString</key>\n\t<string>2.3.4</string>")
}

func TestSetInfoPlistBundleIdentifier(t *testing.T) {
	h, _ := hosttest.NewHost(true)
	writePlist(t, h, fullPlist)

	ok, err := SetInfoPlistBundleIdentifier(h, "Info.plist", "com.example.beta")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, readPlist(t, h), "<string>com.example.beta</string>")
	assert.NotContains(t, readPlist(t, h), "com.example.app")
}

func TestPlistEditors_MissingKeyLeavesFileUnchanged(t *testing.T) {
	h, _ := hosttest.NewHost(true)
	writePlist(t, h, barePlist)

	ok, err := SetInfoPlistShortVersionString(h, plistPath, host.MustParseVersion("1.2.3"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = SetInfoPlistBundleIdentifier(h, plistPath, "com.example.other")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, barePlist, readPlist(t, h))
}

func TestPlistEditors_MissingFile(t *testing.T) {
	h, runner := hosttest.NewHost(true)

	_, err := SetInfoPlistBundleIdentifier(h, plistPath, "com.example")
	assert.True(t, host.IsKind(err, host.ErrorFileNotFound))
	assert.Contains(t, err.Error(), "the Info.plist file provided must exist")

	exists, _ := afero.Exists(h.FS, plistPath)
	assert.False(t, exists)
	assert.Equal(t, 0, runner.Calls())
}
