package host

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_ReportsExitCodeWithoutError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	dir := t.TempDir()
	args := NewArguments().Append("-c").AppendQuoted("pwd; echo oops >&2; exit 3")

	proc, err := ExecRunner{}.Start(context.Background(), "sh", ProcessSettings{Arguments: args, WorkingDirectory: dir})
	require.NoError(t, err)
	require.NotNil(t, proc)

	require.NoError(t, proc.WaitForExit())
	assert.True(t, proc.Exited())
	assert.Equal(t, 3, proc.ExitCode())
	assert.Contains(t, proc.Stderr(), "oops")
	assert.NotEmpty(t, proc.Stdout())
}

func TestExecRunner_MissingBinary(t *testing.T) {
	proc, err := ExecRunner{}.Start(context.Background(), "definitely-not-a-real-tool-xyz", ProcessSettings{})
	assert.Error(t, err)
	assert.Nil(t, proc)
}
