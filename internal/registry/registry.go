package registry

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sammcj/xamarin-devtools/internal/tools"
	"github.com/sirupsen/logrus"
)

var (
	mu sync.RWMutex

	// toolRegistry is a map of tool names to tool implementations
	toolRegistry = make(map[string]tools.Tool)

	// disabledTools is a set of tool names to disable
	disabledTools = make(map[string]bool)

	// logger is the shared logger instance
	logger *logrus.Logger
)

// credentialTools put passwords or API keys on a command line. They are
// always available to the CLI but only served over MCP when listed in
// ENABLE_ADDITIONAL_TOOLS.
var credentialTools = []string{
	"android_generate_keystore",
	"android_sign_apk",
	"test_cloud",
}

// Init sets the shared logger and the disabled tool set. DISABLED_TOOLS is
// read from the environment and merged with disabled.
func Init(l *logrus.Logger, disabled ...string) {
	mu.Lock()
	defer mu.Unlock()

	logger = l
	disabledTools = make(map[string]bool)

	add := func(name, source string) {
		name = normalise(name)
		if name == "" {
			return
		}
		disabledTools[name] = true
		if logger != nil {
			logger.WithField("tool", name).WithField("source", source).Debug("Tool disabled")
		}
	}
	for _, name := range strings.Split(os.Getenv("DISABLED_TOOLS"), ",") {
		add(name, "DISABLED_TOOLS")
	}
	for _, name := range disabled {
		add(name, "config")
	}
}

// Register adds a tool. Tools register from init, before Init runs, so the
// disabled set is applied at lookup time.
func Register(tool tools.Tool) {
	mu.Lock()
	defer mu.Unlock()

	name := tool.Definition().Name
	toolRegistry[normalise(name)] = tool
	if logger != nil {
		logger.WithField("tool", name).Debug("Tool registered")
	}
}

// GetTool retrieves a tool by name, returns false if disabled. Names match
// case-insensitively with hyphens standing in for underscores.
func GetTool(name string) (tools.Tool, bool) {
	mu.RLock()
	defer mu.RUnlock()

	name = normalise(name)
	if disabledTools[name] {
		return nil, false
	}
	tool, ok := toolRegistry[name]
	return tool, ok
}

// GetTools returns all registered tools, excluding disabled ones
func GetTools() map[string]tools.Tool {
	mu.RLock()
	defer mu.RUnlock()

	filtered := make(map[string]tools.Tool, len(toolRegistry))
	for name, tool := range toolRegistry {
		if disabledTools[normalise(name)] {
			continue
		}
		filtered[name] = tool
	}
	return filtered
}

// GetEnabledTools returns the tools to expose over MCP: GetTools minus
// credential tools that have not been explicitly enabled.
func GetEnabledTools() map[string]tools.Tool {
	filtered := GetTools()
	for name := range filtered {
		if RequiresEnablement(name) && !isToolEnabled(name) {
			delete(filtered, name)
		}
	}
	return filtered
}

// GetEnabledToolNames returns a sorted list of tool names that are not disabled
func GetEnabledToolNames() []string {
	all := GetTools()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RequiresEnablement reports whether name must be listed in
// ENABLE_ADDITIONAL_TOOLS before it is served over MCP.
func RequiresEnablement(name string) bool {
	name = normalise(name)
	for _, t := range credentialTools {
		if normalise(t) == name {
			return true
		}
	}
	return false
}

func isToolEnabled(name string) bool {
	enabled := os.Getenv("ENABLE_ADDITIONAL_TOOLS")
	if enabled == "" {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(enabled), "all") {
		return true
	}
	name = normalise(name)
	for _, t := range strings.Split(enabled, ",") {
		if normalise(t) == name {
			return true
		}
	}
	return false
}

// normalise lowercases and treats hyphens and underscores alike.
func normalise(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
}
