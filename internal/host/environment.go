package host

import (
	"os"
	"path/filepath"
	"runtime"
)

// Environment describes the machine the aliases run on.
type Environment interface {
	// IsUnix reports whether the host is Unix-like (macOS and Linux).
	IsUnix() bool
	// WorkingDirectory is the absolute base for relative paths.
	WorkingDirectory() string
}

// OSEnvironment reads the current process environment.
type OSEnvironment struct{}

func (OSEnvironment) IsUnix() bool {
	return runtime.GOOS != "windows"
}

func (OSEnvironment) WorkingDirectory() string {
	wd, err := os.Getwd()
	if err != nil {
		return string(filepath.Separator)
	}
	return wd
}

// MakeAbsolute returns path unchanged when it is already absolute, otherwise
// joins it onto base. An empty path resolves to base.
func MakeAbsolute(path, base string) string {
	if path == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
