package tools

import (
	"math"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sammcj/xamarin-devtools/internal/host/hosttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireString(t *testing.T) {
	args := map[string]any{"project": "App.csproj", "blank": "  ", "number": 3.0}

	got, err := RequireString(args, "project")
	require.NoError(t, err)
	assert.Equal(t, "App.csproj", got)

	_, err = RequireString(args, "blank")
	assert.ErrorContains(t, err, "missing required parameter: blank")

	_, err = RequireString(args, "absent")
	assert.Error(t, err)

	_, err = RequireString(args, "number")
	assert.ErrorContains(t, err, "must be a string")
}

func TestOptionalInt(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    int
		wantErr bool
	}{
		{name: "json number", raw: 3650.0, want: 3650},
		{name: "cli integer", raw: int64(4), want: 4},
		{name: "string", raw: " 42 ", want: 42},
		{name: "fraction", raw: 1.5, wantErr: true},
		{name: "bad string", raw: "many", wantErr: true},
		{name: "bool", raw: true, wantErr: true},
		{name: "huge json number", raw: 1e20, wantErr: true},
		{name: "above int32", raw: int64(math.MaxInt32) + 1, wantErr: true},
		{name: "max int32 string", raw: "2147483647", want: math.MaxInt32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OptionalInt(map[string]any{"n": tt.raw}, "n", 0)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := OptionalInt(map[string]any{}, "n", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestOptionalBoolAndSlices(t *testing.T) {
	b, err := OptionalBool(map[string]any{"sign": "true"}, "sign", false)
	require.NoError(t, err)
	assert.True(t, b)

	_, err = OptionalBool(map[string]any{"sign": 1.0}, "sign", false)
	assert.Error(t, err)

	s, err := OptionalStringSlice(map[string]any{"c": []any{"Smoke", " Login "}}, "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"Smoke", "Login"}, s)

	s, err = OptionalStringSlice(map[string]any{"c": "a,,b"}, "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, s)

	m, err := OptionalStringMap(map[string]any{"p": map[string]any{"A": "1", "B": []any{"x", "y"}, "C": true}}, "p")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"A": {"1"}, "B": {"x", "y"}, "C": {"true"}}, m)
}

func TestOptionalVersion(t *testing.T) {
	v, err := OptionalVersion(map[string]any{"version": "1.2.3"}, "version")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", v.Original())

	v, err = OptionalVersion(map[string]any{"version": "1.0.0.4"}, "version")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0.4", v.Original())
	assert.Equal(t, uint64(4), v.Revision())

	v, err = OptionalVersion(map[string]any{}, "version")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = OptionalVersion(map[string]any{"version": "not-a-version"}, "version")
	assert.ErrorContains(t, err, "invalid version")
}

func TestProcessResult(t *testing.T) {
	proc := &hosttest.FakeProcess{Code: 1, Out: "jar is unsigned.", Waited: true}

	result, err := ProcessResult(proc)
	require.NoError(t, err)
	assert.True(t, result.IsError)

	text := result.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, `"exit_code": 1`)
	assert.Contains(t, text, "jar is unsigned.")
}
