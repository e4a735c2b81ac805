package invoke

import (
	"context"
	"errors"
	"testing"

	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/host/hosttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ResolvesWorkingDirectoryAndWaits(t *testing.T) {
	h, runner := hosttest.NewHost(true)
	args := host.NewArguments().Append("-verify").AppendQuoted("/work/app.apk")

	proc, err := Run(context.Background(), h, "jarsigner", args, Options{Alias: "test", WorkingDirectory: "sub"})
	require.NoError(t, err)
	require.NotNil(t, proc)

	assert.True(t, proc.Exited(), "handle must be waited on before returning")
	assert.Equal(t, 1, runner.Calls())
	assert.Equal(t, "/work/sub", runner.Last().WorkingDirectory)
	assert.Equal(t, []string{"-verify", "/work/app.apk"}, runner.Last().Args())
}

func TestRun_DefaultsToEnvironmentWorkingDirectory(t *testing.T) {
	h, runner := hosttest.NewHost(true)

	_, err := Run(context.Background(), h, "keytool", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, hosttest.WorkDir, runner.Last().WorkingDirectory)
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	h, runner := hosttest.NewHost(true)
	runner.ExitCode = 1

	proc, err := Run(context.Background(), h, "jarsigner", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, proc.ExitCode())

	err = RequireSuccess(proc, "jarsigner")
	assert.True(t, host.IsKind(err, host.ErrorProcessFailed))
}

func TestRun_PlatformCheckHappensBeforeLaunch(t *testing.T) {
	h, runner := hosttest.NewHost(false)

	proc, err := Run(context.Background(), h, "mdtool", nil, Options{Alias: "iOSBuild", RequireUnix: true})
	assert.Nil(t, proc)
	require.Error(t, err)
	assert.True(t, host.IsKind(err, host.ErrorUnsupportedPlatform))
	assert.Contains(t, err.Error(), "iOSBuild alias only runs on Mac OSX")
	assert.Equal(t, 0, runner.Calls())
}

func TestRun_MissingHandle(t *testing.T) {
	h, runner := hosttest.NewHost(true)
	runner.NoHandle = true

	proc, err := Run(context.Background(), h, "keytool", nil, Options{})
	assert.Nil(t, proc)
	assert.True(t, host.IsKind(err, host.ErrorProcessStartFailed))
	assert.Equal(t, host.ErrMsgCouldNotStart, err.Error())
}

func TestRun_StartError(t *testing.T) {
	h, runner := hosttest.NewHost(true)
	runner.StartErr = errors.New("exec: \"keytool\": executable file not found in $PATH")

	_, err := Run(context.Background(), h, "keytool", nil, Options{})
	assert.True(t, host.IsKind(err, host.ErrorProcessStartFailed))
	assert.ErrorIs(t, err, runner.StartErr)
}

func TestRunChecked(t *testing.T) {
	h, runner := hosttest.NewHost(true)
	require.NoError(t, RunChecked(context.Background(), h, "msbuild", nil, Options{Alias: "msbuild"}))

	runner.ExitCode = 2
	err := RunChecked(context.Background(), h, "msbuild", nil, Options{Alias: "msbuild"})
	assert.EqualError(t, err, "msbuild: Process returned an error (exit code 2)")
}

func TestManagedCommand(t *testing.T) {
	h, _ := hosttest.NewHost(true)
	name, args := ManagedCommand(h, "tools/x.exe", "")
	assert.Equal(t, "mono", name)
	assert.Equal(t, `"/work/tools/x.exe"`, args.Render())

	name, _ = ManagedCommand(h, "tools/x.exe", "/opt/mono/bin/mono")
	assert.Equal(t, "/opt/mono/bin/mono", name)

	h, _ = hosttest.NewHost(false)
	name, args = ManagedCommand(h, "tools/x.exe", "mono")
	assert.Equal(t, "/work/tools/x.exe", name)
	assert.Equal(t, 0, args.Len())
}
