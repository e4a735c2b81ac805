package tools

import (
	"github.com/sammcj/xamarin-devtools/internal/config"
	"github.com/sammcj/xamarin-devtools/internal/dotnetbuild"
)

// ApplyBuildConfig copies the configured build driver and verbosity onto s.
func ApplyBuildConfig(s *dotnetbuild.Settings, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.Tools.MSBuild != "" {
		s.ToolPath = cfg.Tools.MSBuild
	}
	if cfg.Defaults.MSBuildVerbosity != "" {
		s.Verbosity = dotnetbuild.Verbosity(cfg.Defaults.MSBuildVerbosity)
	}
}
