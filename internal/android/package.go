// Package android holds the Xamarin.Android aliases: packaging, manifest
// version edits, and the keystore, signing and alignment helpers.
package android

import (
	"context"
	"path/filepath"

	"github.com/sammcj/xamarin-devtools/internal/artifact"
	"github.com/sammcj/xamarin-devtools/internal/dotnetbuild"
	"github.com/sammcj/xamarin-devtools/internal/host"
)

const (
	TargetPackage     = "PackageForAndroid"
	TargetSignPackage = "SignAndroidPackage"

	PackageConfiguration = "Release"
)

// Package builds an .apk from projectFile and returns the newest matching
// .apk anywhere under the project directory. With sign set the signing
// target is built and only "-Signed.apk" files are considered.
//
// found is false when the build produced nothing that matches; callers must
// check it.
func Package(ctx context.Context, h *host.Host, projectFile string, sign bool, configure dotnetbuild.Configurator) (apk string, found bool, err error) {
	target := TargetPackage
	if sign {
		target = TargetSignPackage
	}

	projectFile = h.Abs(projectFile)
	if !h.FileExists(projectFile) {
		return "", false, host.Errorf(host.ErrorFileNotFound, host.ErrMsgProjectNotFound, projectFile)
	}

	err = dotnetbuild.Build(ctx, h, projectFile, func(s *dotnetbuild.Settings) {
		s.Configuration = PackageConfiguration
		s.WithTarget(target)
	}, configure)
	if err != nil {
		return "", false, err
	}

	return artifact.Query{Root: filepath.Dir(projectFile), Pattern: packagePattern(sign)}.Newest(h)
}

func packagePattern(sign bool) string {
	if sign {
		return "**/*-Signed.apk"
	}
	return "**/*.apk"
}
