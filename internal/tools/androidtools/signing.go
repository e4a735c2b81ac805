package androidtools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sammcj/xamarin-devtools/internal/android"
	"github.com/sammcj/xamarin-devtools/internal/config"
	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/registry"
	"github.com/sammcj/xamarin-devtools/internal/tools"
)

const defaultValidityDays = 10000

type (
	// GenerateKeystoreTool wraps keytool -genkey.
	GenerateKeystoreTool struct{}
	// SignApkTool wraps jarsigner.
	SignApkTool struct{}
	// VerifyApkTool wraps jarsigner -verify.
	VerifyApkTool struct{}
	// ZipAlignTool wraps zipalign.
	ZipAlignTool struct{}
)

func init() {
	registry.Register(&GenerateKeystoreTool{})
	registry.Register(&SignApkTool{})
	registry.Register(&VerifyApkTool{})
	registry.Register(&ZipAlignTool{})
}

func (t *GenerateKeystoreTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"android_generate_keystore",
		mcp.WithDescription("Generates an RSA 2048 release keystore with keytool. Returns the exit code and output."),
		mcp.WithString("keystore", mcp.Required(), mcp.Description("Keystore file to create")),
		mcp.WithString("dname", mcp.Required(), mcp.Description("Distinguished name, e.g. \"CN=Example, O=Example Ltd, C=AU\"")),
		mcp.WithString("alias", mcp.Required(), mcp.Description("Key alias")),
		mcp.WithString("store_password", mcp.Required(), mcp.Description("Keystore password")),
		mcp.WithString("key_password", mcp.Required(), mcp.Description("Key password")),
		mcp.WithNumber("validity_days", mcp.Description("Certificate validity in days (default 10000)")),
	)
}

func (t *GenerateKeystoreTool) Execute(ctx context.Context, h *host.Host, cfg *config.Config, args map[string]any) (*mcp.CallToolResult, error) {
	values, err := requireStrings(args, "keystore", "dname", "alias", "store_password", "key_password")
	if err != nil {
		return nil, err
	}
	validity, err := tools.OptionalInt(args, "validity_days", defaultValidityDays)
	if err != nil {
		return nil, err
	}

	proc, err := android.GenerateKeystore(ctx, h, values[0], values[1], values[2], values[3], values[4], validity)
	if err != nil {
		return nil, err
	}
	return tools.ProcessResult(proc)
}

func (t *SignApkTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"android_sign_apk",
		mcp.WithDescription("Signs an .apk in place with jarsigner (SHA1withRSA). Returns the exit code and output."),
		mcp.WithString("keystore", mcp.Required(), mcp.Description("Keystore file")),
		mcp.WithString("apk", mcp.Required(), mcp.Description("The .apk to sign")),
		mcp.WithString("alias", mcp.Required(), mcp.Description("Key alias")),
		mcp.WithString("store_password", mcp.Required(), mcp.Description("Keystore password")),
		mcp.WithString("key_password", mcp.Required(), mcp.Description("Key password")),
	)
}

func (t *SignApkTool) Execute(ctx context.Context, h *host.Host, cfg *config.Config, args map[string]any) (*mcp.CallToolResult, error) {
	values, err := requireStrings(args, "keystore", "apk", "alias", "store_password", "key_password")
	if err != nil {
		return nil, err
	}
	proc, err := android.SignApk(ctx, h, values[0], values[1], values[2], values[3], values[4])
	if err != nil {
		return nil, err
	}
	return tools.ProcessResult(proc)
}

func (t *VerifyApkTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"android_verify_apk",
		mcp.WithDescription("Verifies the signature of an .apk with jarsigner -verify. A non-zero exit code means the archive is unsigned or invalid."),
		mcp.WithString("apk", mcp.Required(), mcp.Description("The .apk to verify")),
	)
}

func (t *VerifyApkTool) Execute(ctx context.Context, h *host.Host, cfg *config.Config, args map[string]any) (*mcp.CallToolResult, error) {
	apk, err := tools.RequireString(args, "apk")
	if err != nil {
		return nil, err
	}
	proc, err := android.VerifyApkSignature(ctx, h, apk)
	if err != nil {
		return nil, err
	}
	return tools.ProcessResult(proc)
}

func (t *ZipAlignTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"android_zipalign",
		mcp.WithDescription("Aligns an .apk with zipalign, overwriting the output file."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Signed input .apk")),
		mcp.WithString("output", mcp.Required(), mcp.Description("Aligned output .apk")),
		mcp.WithNumber("alignment", mcp.Description("Byte alignment (default from config, normally 4)")),
		mcp.WithString("zipalign_path", mcp.Description("zipalign executable (default from config)")),
	)
}

func (t *ZipAlignTool) Execute(ctx context.Context, h *host.Host, cfg *config.Config, args map[string]any) (*mcp.CallToolResult, error) {
	values, err := requireStrings(args, "input", "output")
	if err != nil {
		return nil, err
	}
	alignment, err := tools.OptionalInt(args, "alignment", cfg.Defaults.ZipAlignAlignment)
	if err != nil {
		return nil, err
	}
	zipalign, err := tools.OptionalString(args, "zipalign_path", cfg.Tools.ZipAlign)
	if err != nil {
		return nil, err
	}

	proc, err := android.ZipAlign(ctx, h, zipalign, alignment, values[0], values[1])
	if err != nil {
		return nil, err
	}
	return tools.ProcessResult(proc)
}

func requireStrings(args map[string]any, names ...string) ([]string, error) {
	values := make([]string, len(names))
	for i, name := range names {
		v, err := tools.RequireString(args, name)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
