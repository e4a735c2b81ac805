// Package config loads the tool locations and build defaults shared by every
// alias adapter.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "XAMARIN_DEVTOOLS_CONFIG"

	envPrefix = "XAMARIN_DEVTOOLS_"
)

// ToolPaths holds the executables the adapters launch. Empty values fall
// back to each package's default.
type ToolPaths struct {
	MDTool    string `yaml:"mdtool"`
	MSBuild   string `yaml:"msbuild"`
	Component string `yaml:"component"`
	TestCloud string `yaml:"testcloud"`
	NUnit     string `yaml:"nunit"`
	ZipAlign  string `yaml:"zipalign"`
	Mono      string `yaml:"mono"`
}

// BuildDefaults are used when a caller does not say otherwise.
type BuildDefaults struct {
	MDToolConfiguration  string `yaml:"mdtool_configuration"`
	ArchiveConfiguration string `yaml:"archive_configuration"`
	MSBuildVerbosity     string `yaml:"msbuild_verbosity"`
	TestCloudSeries      string `yaml:"testcloud_series"`
	TestCloudLocale      string `yaml:"testcloud_locale"`
	ZipAlignAlignment    int    `yaml:"zipalign_alignment"`
}

// Config is the top-level configuration.
type Config struct {
	Tools         ToolPaths     `yaml:"tools"`
	Defaults      BuildDefaults `yaml:"defaults"`
	DisabledTools []string      `yaml:"disabled_tools"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Tools: ToolPaths{
			MDTool:    "/Applications/Xamarin Studio.app/Contents/MacOS/mdtool",
			MSBuild:   "msbuild",
			Component: "./tools/xamarin-component.exe",
			NUnit:     "nunit-console",
			ZipAlign:  "zipalign",
			Mono:      "mono",
		},
		Defaults: BuildDefaults{
			MDToolConfiguration:  "Debug|iPhoneSimulator",
			ArchiveConfiguration: "Release|iPhone",
			MSBuildVerbosity:     "normal",
			TestCloudSeries:      "master",
			TestCloudLocale:      "en_US",
			ZipAlignAlignment:    4,
		},
	}
}

// DefaultPath returns the config file location: $XAMARIN_DEVTOOLS_CONFIG,
// else ~/.xamarin-devtools/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".xamarin-devtools", "config.yaml")
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. An empty path means DefaultPath. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (%s): %w", path, err)
		}
	}

	if err := ApplyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads dir/.env into the process environment. Variables that
// are already set are left alone and a missing file is ignored.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides maps XAMARIN_DEVTOOLS_* variables onto cfg.
func ApplyEnvOverrides(cfg *Config) error {
	paths := map[string]*string{
		"MDTOOL_PATH":    &cfg.Tools.MDTool,
		"MSBUILD_PATH":   &cfg.Tools.MSBuild,
		"COMPONENT_PATH": &cfg.Tools.Component,
		"TESTCLOUD_PATH": &cfg.Tools.TestCloud,
		"NUNIT_PATH":     &cfg.Tools.NUnit,
		"ZIPALIGN_PATH":  &cfg.Tools.ZipAlign,
		"MONO_PATH":      &cfg.Tools.Mono,
	}
	for name, field := range paths {
		if v := os.Getenv(envPrefix + name); v != "" {
			*field = v
		}
	}

	if v := os.Getenv(envPrefix + "ZIPALIGN_ALIGNMENT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid %sZIPALIGN_ALIGNMENT %q", envPrefix, v)
		}
		cfg.Defaults.ZipAlignAlignment = n
	}

	if v := os.Getenv("DISABLED_TOOLS"); v != "" {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.DisabledTools = append(cfg.DisabledTools, name)
			}
		}
	}
	return nil
}
