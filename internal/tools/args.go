package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sammcj/xamarin-devtools/internal/host"
)

// RequireString returns a non-empty string argument.
func RequireString(args map[string]any, name string) (string, error) {
	s, err := OptionalString(args, name, "")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("missing required parameter: %s", name)
	}
	return s, nil
}

// OptionalString returns a string argument or def when it is absent.
func OptionalString(args map[string]any, name, def string) (string, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", name)
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// OptionalBool accepts JSON booleans and the strings true/false.
func OptionalBool(args map[string]any, name string, def bool) (bool, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return def, nil
	}
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("%s must be a boolean", name)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%s must be a boolean", name)
	}
}

// OptionalInt accepts JSON numbers (float64 after decoding), CLI integers and
// numeric strings. Fractional values and values outside the int32 range are
// rejected; Android version codes and alignments are 32-bit.
func OptionalInt(args map[string]any, name string, def int) (int, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return def, nil
	}
	var n int64
	switch v := raw.(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%s must be an integer", name)
		}
		if v < math.MinInt32 || v > math.MaxInt32 {
			return 0, fmt.Errorf("%s is out of range: %g", name, v)
		}
		n = int64(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", name)
		}
		n = i
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", name)
		}
		n = i
	default:
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%s is out of range: %d", name, n)
	}
	return int(n), nil
}

// OptionalStringSlice accepts an array of strings or a comma-separated string.
func OptionalStringSlice(args map[string]any, name string) ([]string, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}

	var items []string
	switch v := raw.(type) {
	case []string:
		items = v
	case []any:
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", name, i)
			}
			items = append(items, s)
		}
	case string:
		items = strings.Split(v, ",")
	default:
		return nil, fmt.Errorf("%s must be an array of strings", name)
	}

	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// OptionalStringMap accepts an object whose values are strings or arrays of
// strings, as used for build properties.
func OptionalStringMap(args map[string]any, name string) (map[string][]string, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an object", name)
	}

	out := make(map[string][]string, len(obj))
	for key, value := range obj {
		switch v := value.(type) {
		case string:
			out[key] = []string{v}
		case []any:
			for _, item := range v {
				out[key] = append(out[key], fmt.Sprint(item))
			}
		default:
			out[key] = []string{fmt.Sprint(v)}
		}
	}
	return out, nil
}

// OptionalVersion parses a version argument of one to four dotted numbers
// or a semantic version. A nil version means the argument was absent.
func OptionalVersion(args map[string]any, name string) (*host.Version, error) {
	s, err := OptionalString(args, name, "")
	if err != nil || s == "" {
		return nil, err
	}
	v, err := host.ParseVersion(s)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid version %q: %w", name, s, err)
	}
	return v, nil
}

// NewToolResultJSON renders data as indented JSON text.
func NewToolResultJSON(data any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// ProcessResult reports a finished process. The result is flagged as an
// error when the exit code is non-zero so callers see the failure without
// the tool deciding what it means.
func ProcessResult(proc host.Process) (*mcp.CallToolResult, error) {
	result, err := NewToolResultJSON(map[string]any{
		"exit_code": proc.ExitCode(),
		"stdout":    proc.Stdout(),
		"stderr":    proc.Stderr(),
	})
	if err != nil {
		return nil, err
	}
	result.IsError = proc.ExitCode() != 0
	return result, nil
}
