package uitest

import (
	"context"

	"github.com/sammcj/xamarin-devtools/internal/artifact"
	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/invoke"
)

const (
	DefaultSeries = "master"
	DefaultLocale = "en_US"

	// testCloudPattern finds the uploader shipped in the Xamarin.UITest
	// NuGet package, relative to the working directory.
	testCloudPattern = "**/Xamarin.UITest*/tools/test-cloud.exe"
)

// TestCloudSettings configures a Test Cloud submission.
type TestCloudSettings struct {
	// ToolPath is test-cloud.exe. When empty the newest copy under the
	// working directory is used.
	ToolPath     string
	MonoPath     string
	Series       string
	Locale       string
	AppName      string
	NUnitXmlFile string
	Categories   []string
	Fixture      string
	// Async returns as soon as the upload is accepted.
	Async bool

	// Keystore used to re-sign the test server apk. All four are required
	// together; KeystorePath empty disables the option.
	KeystorePath     string
	KeystorePassword string
	KeyAlias         string
	KeyPassword      string

	WorkingDirectory string
}

// NewTestCloudSettings returns the default Test Cloud settings.
func NewTestCloudSettings() *TestCloudSettings {
	return &TestCloudSettings{
		MonoPath: invoke.DefaultMonoPath,
		Series:   DefaultSeries,
		Locale:   DefaultLocale,
	}
}

// Submission identifies what to run and for whom.
type Submission struct {
	Apk           string
	APIKey        string
	DevicesHash   string
	UserEmail     string
	AssembliesDir string
}

// TestCloud uploads apk and the UITest assemblies in assembliesDir to Test
// Cloud and runs them on the device set identified by devicesHash.
func TestCloud(ctx context.Context, h *host.Host, apk, apiKey, devicesHash, userEmail, assembliesDir string, settings *TestCloudSettings) error {
	return Submit(ctx, h, Submission{
		Apk:           apk,
		APIKey:        apiKey,
		DevicesHash:   devicesHash,
		UserEmail:     userEmail,
		AssembliesDir: assembliesDir,
	}, settings)
}

// Submit is TestCloud taking its required values as a struct.
func Submit(ctx context.Context, h *host.Host, sub Submission, settings *TestCloudSettings) error {
	if settings == nil {
		settings = NewTestCloudSettings()
	}

	sub.Apk = h.Abs(sub.Apk)
	if !h.FileExists(sub.Apk) {
		return host.Errorf(host.ErrorFileNotFound, host.ErrMsgFileNotFound, sub.Apk)
	}
	sub.AssembliesDir = h.Abs(sub.AssembliesDir)
	if !h.DirExists(sub.AssembliesDir) {
		return host.Errorf(host.ErrorFileNotFound, host.ErrMsgFileNotFound, sub.AssembliesDir)
	}
	if settings.KeystorePath != "" && (settings.KeyAlias == "" || settings.KeystorePassword == "" || settings.KeyPassword == "") {
		return host.Errorf(host.ErrorInvalidArgument, "keystore requires a store password, key alias and key password")
	}

	tool, err := resolveTestCloudTool(h, settings)
	if err != nil {
		return err
	}

	name, args := invoke.ManagedCommand(h, tool, settings.MonoPath)
	appendSubmitArguments(h, args, sub, settings)

	return invoke.RunChecked(ctx, h, name, args, invoke.Options{
		Alias:            "TestCloud",
		WorkingDirectory: settings.WorkingDirectory,
	})
}

func resolveTestCloudTool(h *host.Host, settings *TestCloudSettings) (string, error) {
	if settings.ToolPath != "" {
		return settings.ToolPath, nil
	}

	base := h.Abs(settings.WorkingDirectory)
	tool, found, err := artifact.Query{Root: base, Pattern: testCloudPattern}.Newest(h)
	if err != nil {
		return "", err
	}
	if !found {
		return "", host.Errorf(host.ErrorFileNotFound, "could not locate test-cloud.exe under %s", base)
	}
	h.Logger.WithField("tool", tool).Debug("Resolved test-cloud.exe")
	return tool, nil
}

func appendSubmitArguments(h *host.Host, args *host.Arguments, sub Submission, settings *TestCloudSettings) {
	series := settings.Series
	if series == "" {
		series = DefaultSeries
	}
	locale := settings.Locale
	if locale == "" {
		locale = DefaultLocale
	}

	args.Append("submit").
		AppendQuoted(sub.Apk).
		AppendSecret(sub.APIKey).
		AppendSwitch("--devices", sub.DevicesHash).
		Append("--series").AppendQuoted(series).
		Append("--locale").AppendQuoted(locale).
		AppendSwitch("--user", sub.UserEmail).
		Append("--assembly-dir").AppendQuoted(sub.AssembliesDir)

	if settings.AppName != "" {
		args.Append("--app-name").AppendQuoted(settings.AppName)
	}
	if settings.NUnitXmlFile != "" {
		args.Append("--nunit-xml").AppendQuoted(h.Abs(settings.NUnitXmlFile))
	}
	for _, category := range settings.Categories {
		args.AppendSwitch("--category", category)
	}
	if settings.Fixture != "" {
		args.AppendSwitch("--fixture", settings.Fixture)
	}
	if settings.Async {
		args.Append("--async")
	}
	if settings.KeystorePath != "" {
		args.Append("--keystore").
			AppendQuoted(h.Abs(settings.KeystorePath)).
			AppendSecret(settings.KeystorePassword).
			AppendValue(settings.KeyAlias).
			AppendSecret(settings.KeyPassword)
	}
}
