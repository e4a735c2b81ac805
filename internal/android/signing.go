package android

import (
	"context"
	"strconv"

	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/invoke"
)

const (
	keytoolCommand   = "keytool"
	jarsignerCommand = "jarsigner"
)

// GenerateKeystore creates an RSA 2048 release key with keytool. The exit
// code is left on the returned process for the caller to interpret.
//
// Passwords go on the command line as keytool requires; they are redacted
// only in logs.
func GenerateKeystore(ctx context.Context, h *host.Host, keystorePath, distinguishedName, aliasName, storePassword, keyPassword string, validityDays int) (host.Process, error) {
	args := host.NewArguments().
		Append("-genkey").
		Append("-v").
		AppendSwitch("-keystore", keystorePath).
		AppendSwitch("-dname", distinguishedName).
		AppendSwitch("-alias", aliasName).
		AppendSwitchSecret("-storepass", storePassword).
		AppendSwitchSecret("-keypass", keyPassword).
		AppendSwitch("-keyalg", "RSA").
		AppendSwitch("-keysize", "2048").
		AppendSwitch("-validity", strconv.Itoa(validityDays))

	return invoke.Run(ctx, h, keytoolCommand, args, invoke.Options{Alias: "AndroidGenerateKeystore"})
}

// SignApk signs apkPath in place with jarsigner.
func SignApk(ctx context.Context, h *host.Host, keystorePath, apkPath, aliasName, storePassword, keyPassword string) (host.Process, error) {
	args := host.NewArguments().
		Append("-verbose").
		AppendSwitch("-sigalg", "SHA1withRSA").
		AppendSwitch("-digestalg", "SHA1").
		AppendSwitch("-keystore", h.Abs(keystorePath)).
		AppendValue(h.Abs(apkPath)).
		AppendValue(aliasName).
		AppendSwitchSecret("-storepass", storePassword).
		AppendSwitchSecret("-keypass", keyPassword)

	return invoke.Run(ctx, h, jarsignerCommand, args, invoke.Options{Alias: "AndroidSignApk"})
}

// VerifyApkSignature runs jarsigner -verify. jarsigner reports unsigned or
// partly signed archives through its exit code and output.
func VerifyApkSignature(ctx context.Context, h *host.Host, apkPath string) (host.Process, error) {
	args := host.NewArguments().
		Append("-verify").
		Append("-verbose").
		Append("-certs").
		AppendValue(h.Abs(apkPath))

	return invoke.Run(ctx, h, jarsignerCommand, args, invoke.Options{Alias: "AndroidSignApkVerify"})
}

// ZipAlign aligns inputApkPath into outputApkPath, overwriting the output.
func ZipAlign(ctx context.Context, h *host.Host, zipAlignCommandPath string, alignment int, inputApkPath, outputApkPath string) (host.Process, error) {
	args := host.NewArguments().
		Append("-f").
		Append("-v").
		Append(strconv.Itoa(alignment)).
		AppendValue(inputApkPath).
		AppendValue(outputApkPath)

	return invoke.Run(ctx, h, zipAlignCommandPath, args, invoke.Options{Alias: "AndroidZipAlign"})
}
