package android

import (
	"context"
	"testing"

	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/host/hosttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeystore(t *testing.T) {
	h, runner := hosttest.NewHost(true)

	proc, err := GenerateKeystore(context.Background(), h, "/work/release.keystore", "CN=Example, O=Example Ltd", "rel", "p1", "p2", 3650)
	require.NoError(t, err)
	assert.True(t, proc.Exited())

	inv := runner.Last()
	assert.Equal(t, "keytool", inv.Command)
	assert.Equal(t, []string{
		"-genkey", "-v",
		"-keystore", "/work/release.keystore",
		"-dname", "CN=Example, O=Example Ltd",
		"-alias", "rel",
		"-storepass", "p1",
		"-keypass", "p2",
		"-keyalg", "RSA",
		"-keysize", "2048",
		"-validity", "3650",
	}, inv.Args())
	assert.NotContains(t, inv.SafeArguments, "p1")
	assert.NotContains(t, inv.SafeArguments, "p2")
}

func TestSignApk(t *testing.T) {
	h, runner := hosttest.NewHost(true)

	_, err := SignApk(context.Background(), h, "release.keystore", "bin/app.apk", "rel", "store", "key")
	require.NoError(t, err)

	inv := runner.Last()
	assert.Equal(t, "jarsigner", inv.Command)
	assert.Equal(t, []string{
		"-verbose", "-sigalg", "SHA1withRSA", "-digestalg", "SHA1",
		"-keystore", "/work/release.keystore",
		"/work/bin/app.apk", "rel",
		"-storepass", "store",
		"-keypass", "key",
	}, inv.Args())
}

func TestVerifyApkSignature_ReturnsRawExitCode(t *testing.T) {
	h, runner := hosttest.NewHost(true)
	runner.ExitCode = 1

	proc, err := VerifyApkSignature(context.Background(), h, "/work/app.apk")
	require.NoError(t, err, "non-zero exit is informational for verification")
	assert.Equal(t, 1, proc.ExitCode())
	assert.Equal(t, []string{"-verify", "-verbose", "-certs", "/work/app.apk"}, runner.Last().Args())
}

func TestZipAlign(t *testing.T) {
	h, runner := hosttest.NewHost(false)

	_, err := ZipAlign(context.Background(), h, "/sdk/build-tools/zipalign", 4, "in.apk", "out dir/out.apk")
	require.NoError(t, err)

	inv := runner.Last()
	assert.Equal(t, "/sdk/build-tools/zipalign", inv.Command)
	assert.Equal(t, []string{"-f", "-v", "4", "in.apk", "out dir/out.apk"}, inv.Args())
}

func TestSigningHelpers_StartFailure(t *testing.T) {
	h, runner := hosttest.NewHost(true)
	runner.NoHandle = true

	proc, err := GenerateKeystore(context.Background(), h, "k", "CN=x", "a", "s", "k", 1)
	assert.Nil(t, proc)
	assert.True(t, host.IsKind(err, host.ErrorProcessStartFailed))
}
