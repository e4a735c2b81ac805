package tools

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolErrorLogger_RedactsCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tool-errors.log")
	l, err := NewToolErrorLogger(path, nil)
	require.NoError(t, err)

	l.LogToolError("android_sign_apk", map[string]any{
		"apk":            "app.apk",
		"store_password": "p1",
		"key_password":   "p2",
	}, errors.New("jarsigner failed"), "cli")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry ToolErrorLogEntry
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "android_sign_apk", entry.ToolName)
	assert.Equal(t, "jarsigner failed", entry.Error)
	assert.Equal(t, "app.apk", entry.Arguments["apk"])
	assert.Equal(t, "[REDACTED]", entry.Arguments["store_password"])
	assert.NotContains(t, string(data), "p1")
}

func TestToolErrorLogger_Prune(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tool-errors.log")
	old := ToolErrorLogEntry{Timestamp: time.Now().AddDate(0, 0, -90).Format(time.RFC3339), ToolName: "old", Error: "x"}
	oldLine, _ := json.Marshal(old)
	require.NoError(t, os.WriteFile(path, []byte(string(oldLine)+"\nnot json\n"), 0o600))

	l, err := NewToolErrorLogger(path, nil)
	require.NoError(t, err)
	l.LogToolError("uitest", nil, errors.New("tests failed"), "stdio")

	require.NoError(t, l.Prune(time.Now().AddDate(0, 0, -DefaultLogRetentionDays)))
	l.LogToolError("test_cloud", nil, errors.New("upload failed"), "stdio")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "not json", lines[0])
	assert.Contains(t, lines[1], `"tool_name":"uitest"`)
	assert.Contains(t, lines[2], `"tool_name":"test_cloud"`)
}

func TestToolErrorLogger_NilIsNoop(t *testing.T) {
	var l *ToolErrorLogger
	l.LogToolError("x", nil, errors.New("boom"), "cli")
	assert.NoError(t, l.Close())
}
