package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	devtoolscli "github.com/sammcj/xamarin-devtools/internal/cli"
	"github.com/sammcj/xamarin-devtools/internal/config"
	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/registry"
	"github.com/sammcj/xamarin-devtools/internal/tools"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	// Import all tool packages to register them
	_ "github.com/sammcj/xamarin-devtools/internal/imports"
)

// Version information (set during build)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Global resources that need cleanup
// Using atomic operations to prevent race conditions between signal handlers and cleanup
var (
	debugLogFile atomic.Pointer[os.File]
	isStdioMode  atomic.Bool
)

// parseLogLevel parses the LOG_LEVEL environment variable and returns the appropriate logrus level.
// Defaults to WarnLevel if not set or invalid.
func parseLogLevel() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		return logrus.WarnLevel
	}

	switch strings.ToLower(strings.TrimSpace(logLevelStr)) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.WarnLevel
	}
}

func main() {
	// Create context with signal handling so running tools are cancelled on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// CLI commands log to stderr; serve reconfigures output before starting
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(parseLogLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	defer performCleanup(logger)

	app := &cli.Command{
		Name:    "xamarin-devtools",
		Usage:   "Xamarin build, signing and test aliases as CLI commands and MCP tools",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: ~/.xamarin-devtools/config.yaml)",
				Sources: cli.EnvVars(config.EnvConfigPath),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   string(devtoolscli.OutputText),
				Usage:   "Output format for list, help and run (text or json)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Print version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Printf("xamarin-devtools version %s\n", Version)
					fmt.Printf("Commit: %s\n", Commit)
					fmt.Printf("Built: %s\n", BuildDate)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List available tools",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					runner, err := newCLIRunner(cmd, logger)
					if err != nil {
						return err
					}
					return runner.ListTools()
				},
			},
			{
				Name:      "help",
				Usage:     "Show parameters and usage for a tool",
				ArgsUsage: "<tool>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return cli.ShowSubcommandHelp(cmd)
					}
					runner, err := newCLIRunner(cmd, logger)
					if err != nil {
						return err
					}
					return runner.HelpTool(cmd.Args().First())
				},
			},
			{
				Name:            "run",
				Usage:           "Run a tool with --key=value flags or a JSON object",
				ArgsUsage:       "<tool> [--key=value ...] ['{\"key\": \"value\"}']",
				SkipFlagParsing: true,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("tool name required (run 'xamarin-devtools list' to see available tools)")
					}
					runner, err := newCLIRunner(cmd, logger)
					if err != nil {
						return err
					}
					if err := tools.InitGlobalErrorLogger(logger); err != nil {
						logger.WithError(err).Warn("Failed to initialise tool error logger")
					}
					args := cmd.Args().Slice()
					return runner.RunTool(ctx, args[0], args[1:])
				},
			},
			{
				Name:  "serve",
				Usage: "Serve the tools over MCP",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "transport",
						Aliases: []string{"t"},
						Value:   "stdio",
						Usage:   "Transport type (stdio or sse)",
					},
					&cli.StringFlag{
						Name:  "port",
						Value: "18080",
						Usage: "Port to use for the SSE transport",
					},
					&cli.StringFlag{
						Name:  "base-url",
						Value: "http://localhost",
						Usage: "Base URL for the SSE transport",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return serve(cmd, logger)
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		// In stdio mode nothing may be written to stdout or stderr
		if !isStdioMode.Load() {
			logger.Errorf("Error: %v", err)
		}
		performCleanup(logger)
		os.Exit(1)
	}
}

// loadRuntime loads .env and the config file, then initialises the registry.
func loadRuntime(cmd *cli.Command, logger *logrus.Logger) (*config.Config, *host.Host, error) {
	if wd, err := os.Getwd(); err == nil {
		if err := config.LoadDotEnv(wd); err != nil {
			logger.WithError(err).Warn("Failed to load .env")
		}
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, nil, err
	}
	registry.Init(logger, cfg.DisabledTools...)
	return cfg, host.NewOSHost(logger), nil
}

func newCLIRunner(cmd *cli.Command, logger *logrus.Logger) (*devtoolscli.Runner, error) {
	output := devtoolscli.OutputFormat(cmd.String("output"))
	if output != devtoolscli.OutputText && output != devtoolscli.OutputJSON {
		return nil, fmt.Errorf("unsupported output format: %s", output)
	}
	cfg, h, err := loadRuntime(cmd, logger)
	if err != nil {
		return nil, err
	}
	return devtoolscli.NewRunner(h, cfg, output), nil
}

func serve(cmd *cli.Command, logger *logrus.Logger) error {
	transport := cmd.String("transport")
	isStdioMode.Store(transport == "stdio")
	configureServeLogging(logger)

	cfg, h, err := loadRuntime(cmd, logger)
	if err != nil {
		return err
	}

	if err := tools.InitGlobalErrorLogger(logger); err != nil {
		logger.WithError(err).Debug("Failed to initialise tool error logger")
	}

	if transport != "stdio" {
		logger.Infof("Starting xamarin-devtools version %s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}

	mcpSrv := mcpserver.NewMCPServer("xamarin-devtools", Version)
	enabledTools := registry.GetEnabledTools()
	logger.WithField("tool_count", len(enabledTools)).Debug("MCP server created, registering tools")

	for name, tool := range enabledTools {
		mcpSrv.AddTool(tool.Definition(), toolHandler(name, h, cfg, transport, logger))
	}

	logger.WithField("transport", transport).Debug("Starting server")
	switch transport {
	case "stdio":
		return mcpserver.ServeStdio(mcpSrv)
	case "sse":
		port := cmd.String("port")
		sseServer := mcpserver.NewSSEServer(mcpSrv, mcpserver.WithBaseURL(cmd.String("base-url")+"/sse"))
		return sseServer.Start(":" + port)
	default:
		return fmt.Errorf("unsupported transport: %s", transport)
	}
}

func toolHandler(name string, h *host.Host, cfg *config.Config, transport string, logger *logrus.Logger) mcpserver.ToolHandlerFunc {
	return func(toolCtx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tool, ok := registry.GetTool(name)
		if !ok {
			return nil, fmt.Errorf("tool not found: %s", name)
		}

		args, ok := request.Params.Arguments.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid arguments type: expected map[string]any, got %T", request.Params.Arguments)
		}

		result, err := tool.Execute(toolCtx, h, cfg, args)
		if err != nil {
			logger.WithError(err).WithField("tool", name).Error("Tool execution failed")
			tools.GetGlobalErrorLogger().LogToolError(name, args, err, transport)
			return nil, fmt.Errorf("tool execution failed: %w", err)
		}
		return result, nil
	}
}

// configureServeLogging sends logs to ~/.xamarin-devtools/logs so the stdio
// protocol stream stays clean. When the file cannot be opened stdio mode
// discards logs and other transports fall back to stderr.
func configureServeLogging(logger *logrus.Logger) {
	logLevel := parseLogLevel()
	logger.SetLevel(logLevel)

	fallback := io.Writer(os.Stderr)
	if isStdioMode.Load() {
		fallback = io.Discard
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.SetOutput(fallback)
		return
	}
	logDir := filepath.Join(homeDir, ".xamarin-devtools", "logs")
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		logger.SetOutput(fallback)
		return
	}
	file, err := os.OpenFile(filepath.Join(logDir, "xamarin-devtools.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.SetOutput(fallback)
		return
	}
	debugLogFile.Store(file)
	logger.SetOutput(file)
	logger.WithField("level", logLevel.String()).Debug("Logging configured")
}

// performCleanup handles cleanup of resources on shutdown
func performCleanup(logger *logrus.Logger) {
	if errorLogger := tools.GetGlobalErrorLogger(); errorLogger != nil {
		if err := errorLogger.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close tool error logger")
		}
	}
	if file := debugLogFile.Swap(nil); file != nil {
		_ = file.Close()
	}
}
