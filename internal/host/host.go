package host

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Host bundles the capabilities an alias may use.
type Host struct {
	FS      afero.Fs
	Env     Environment
	Runner  ProcessRunner
	Globber Globber
	Logger  *logrus.Logger
}

// NewOSHost returns a Host backed by the local machine.
func NewOSHost(logger *logrus.Logger) *Host {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	fs := afero.NewOsFs()
	return &Host{
		FS:      fs,
		Env:     OSEnvironment{},
		Runner:  ExecRunner{},
		Globber: FSGlobber{FS: fs},
		Logger:  logger,
	}
}

// FileExists reports whether path names an existing regular file.
func (h *Host) FileExists(path string) bool {
	info, err := h.FS.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists reports whether path names an existing directory.
func (h *Host) DirExists(path string) bool {
	ok, err := afero.DirExists(h.FS, path)
	return err == nil && ok
}

// Abs resolves path against the environment's working directory.
func (h *Host) Abs(path string) string {
	return MakeAbsolute(path, h.Env.WorkingDirectory())
}
