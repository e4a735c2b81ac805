// Package component drives xamarin-component.exe to restore and package
// Xamarin Components.
package component

import (
	"context"
	"path/filepath"

	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/invoke"
)

const (
	DefaultToolPath = "./tools/xamarin-component.exe"
	DefaultMonoPath = invoke.DefaultMonoPath

	manifestName = "component.yaml"
)

// Settings locates the component tool and the mono runtime that hosts it
// on Unix.
type Settings struct {
	ToolPath         string
	MonoPath         string
	WorkingDirectory string
}

// NewSettings returns the default settings.
func NewSettings() *Settings {
	return &Settings{ToolPath: DefaultToolPath, MonoPath: DefaultMonoPath}
}

// Restore restores the components referenced by solution.
func Restore(ctx context.Context, h *host.Host, solution string, settings *Settings) error {
	file := h.Abs(solution)
	if !h.FileExists(file) {
		return host.Errorf(host.ErrorFileNotFound, host.ErrMsgFileNotFound, file)
	}
	return run(ctx, h, orDefault(settings), "restore", file)
}

// Package packages the component described by dir/component.yaml.
func Package(ctx context.Context, h *host.Host, dir string, settings *Settings) error {
	abs := h.Abs(dir)
	if manifest := filepath.Join(abs, manifestName); !h.FileExists(manifest) {
		return host.Errorf(host.ErrorFileNotFound, host.ErrMsgFileNotFound, manifest)
	}
	return run(ctx, h, orDefault(settings), "package", abs)
}

func run(ctx context.Context, h *host.Host, settings *Settings, verb, target string) error {
	name, args := toolCommand(h, settings)
	args.Append(verb).AppendQuoted(target)

	return invoke.RunChecked(ctx, h, name, args, invoke.Options{
		Alias:            "XamarinComponent",
		WorkingDirectory: settings.WorkingDirectory,
	})
}

func toolCommand(h *host.Host, settings *Settings) (string, *host.Arguments) {
	tool := settings.ToolPath
	if tool == "" {
		tool = DefaultToolPath
	}
	return invoke.ManagedCommand(h, tool, settings.MonoPath)
}

func orDefault(settings *Settings) *Settings {
	if settings == nil {
		return NewSettings()
	}
	return settings
}
