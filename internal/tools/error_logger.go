package tools

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultLogRetentionDays is how long failed invocations are kept
const DefaultLogRetentionDays = 60

// ToolErrorLogEntry is one failed tool call
type ToolErrorLogEntry struct {
	Timestamp string         `json:"timestamp"`
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments,omitempty"`
	Error     string         `json:"error"`
	Transport string         `json:"transport,omitempty"`
}

// ToolErrorLogger appends failed tool calls to a JSON lines file. Credential
// arguments are redacted before they are written.
type ToolErrorLogger struct {
	mu       sync.Mutex
	file     *os.File
	filePath string
	logger   *logrus.Logger
}

var (
	globalErrorLogger *ToolErrorLogger
	errorLoggerOnce   sync.Once
)

// InitGlobalErrorLogger enables the shared error log when LOG_TOOL_ERRORS=true.
func InitGlobalErrorLogger(logger *logrus.Logger) error {
	var initErr error
	errorLoggerOnce.Do(func() {
		if os.Getenv("LOG_TOOL_ERRORS") != "true" {
			return
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			initErr = fmt.Errorf("failed to get home directory: %w", err)
			return
		}
		l, err := NewToolErrorLogger(filepath.Join(homeDir, ".xamarin-devtools", "logs", "tool-errors.log"), logger)
		if err != nil {
			initErr = err
			return
		}
		globalErrorLogger = l

		go func() {
			if err := l.Prune(time.Now().AddDate(0, 0, -DefaultLogRetentionDays)); err != nil {
				logger.WithError(err).Warn("Failed to prune tool error log")
			}
		}()
		logger.Infof("Tool error logging enabled: %s", l.filePath)
	})
	return initErr
}

// GetGlobalErrorLogger returns the shared logger, or nil when disabled.
func GetGlobalErrorLogger() *ToolErrorLogger {
	return globalErrorLogger
}

// NewToolErrorLogger opens path for appending, creating its directory.
func NewToolErrorLogger(path string, logger *logrus.Logger) (*ToolErrorLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	l := &ToolErrorLogger{filePath: path, logger: logger}
	if err := l.reopenLocked(); err != nil {
		return nil, err
	}
	return l, nil
}

// LogToolError records a failed call. It is safe on a nil receiver.
func (l *ToolErrorLogger) LogToolError(toolName string, args map[string]any, err error, transport string) {
	if l == nil || err == nil {
		return
	}

	entry := ToolErrorLogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		ToolName:  toolName,
		Arguments: RedactArguments(args),
		Error:     err.Error(),
		Transport: transport,
	}
	data, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		l.warn(marshalErr, "Failed to marshal tool error log entry")
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return
	}
	if _, writeErr := l.file.Write(append(data, '\n')); writeErr != nil {
		l.warn(writeErr, "Failed to write tool error log entry")
	}
}

// Close closes the log file.
func (l *ToolErrorLogger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Prune drops entries older than cutoff. Lines that cannot be parsed are kept.
func (l *ToolErrorLogger) Prune(cutoff time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
	defer func() { _ = l.reopenLocked() }()

	f, err := os.Open(l.filePath)
	if err != nil {
		return nil
	}
	var keep []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry ToolErrorLogEntry
		if json.Unmarshal([]byte(line), &entry) != nil {
			keep = append(keep, line)
			continue
		}
		ts, err := time.Parse(time.RFC3339, entry.Timestamp)
		if err != nil || ts.After(cutoff) {
			keep = append(keep, line)
		}
	}
	scanErr := scanner.Err()
	_ = f.Close()
	if scanErr != nil {
		return fmt.Errorf("error reading log file during pruning: %w", scanErr)
	}

	content := ""
	if len(keep) > 0 {
		content = strings.Join(keep, "\n") + "\n"
	}
	tmpPath := l.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write pruned log file: %w", err)
	}
	if err := os.Rename(tmpPath, l.filePath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace log file: %w", err)
	}
	return nil
}

// Caller must hold l.mu.
func (l *ToolErrorLogger) reopenLocked() error {
	f, err := os.OpenFile(l.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open tool error log file: %w", err)
	}
	l.file = f
	return nil
}

func (l *ToolErrorLogger) warn(err error, msg string) {
	if l.logger != nil {
		l.logger.WithError(err).Error(msg)
	}
}

// RedactArguments returns a copy of args with credential values replaced.
func RedactArguments(args map[string]any) map[string]any {
	if args == nil {
		return nil
	}
	out := make(map[string]any, len(args))
	for k, v := range args {
		if isSecretArgument(k) {
			out[k] = "[REDACTED]"
			continue
		}
		out[k] = v
	}
	return out
}

func isSecretArgument(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "password") || strings.Contains(name, "api_key") || strings.Contains(name, "secret")
}
