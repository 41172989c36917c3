// Package output provides terminal output utilities.
package output

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// LogConfig holds configuration for the logger.
type LogConfig struct {
	// Verbose enables debug-level logging, timestamps, and caller info.
	Verbose bool

	// Timestamps controls timestamp display. Nil means use default (true).
	// When Verbose is true, timestamps are forced on regardless.
	Timestamps *bool

	// JSON switches the logger to line-delimited JSON, for build runs
	// driven by another tool (the config server, CI) rather than a
	// terminal. Styled prefixes are meaningless in that shape, so
	// TargetLogger attaches the target as a plain "target" field instead.
	JSON bool
}

// Logger is the global logger instance.
// Initialized with default options; call SetupLogging to configure.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	ReportCaller:    false,
	TimeFormat:      "15:04:05",
})

// jsonMode records whether the current logger was set up for JSON output,
// so TargetLogger knows whether a styled prefix or a plain field is correct.
var jsonMode bool

// SetupLogging configures the global logger based on the provided config.
func SetupLogging(cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	// Resolve timestamps: verbose forces on, otherwise flag/config/default(true).
	showTimestamps := true
	if cfg.Timestamps != nil {
		showTimestamps = *cfg.Timestamps
	}
	if cfg.Verbose {
		showTimestamps = true
	}

	formatter := log.TextFormatter
	if cfg.JSON {
		formatter = log.JSONFormatter
	}
	jsonMode = cfg.JSON

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: showTimestamps,
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
		Formatter:       formatter,
	})
}

// TargetLogger returns a child logger scoped to a build target name. In
// JSON mode the name is attached as a "target" field; otherwise it's a
// styled prefix rendered as t:<name>: with dim "t:" and cyan name (the
// trailing ":" is appended by charmbracelet/log's prefix renderer).
func TargetLogger(name string) *log.Logger {
	if jsonMode {
		return logger.With("target", name)
	}

	prefix := fmt.Sprintf("%s%s",
		styleDim.Render("t:"),
		lipgloss.NewStyle().Foreground(ColorCyan).Render(name),
	)
	return logger.WithPrefix(prefix)
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}

// Print prints a message to stdout without any formatting.
func Print(msg string) {
	os.Stdout.WriteString(msg)
}

// Println prints a message to stdout with a newline.
func Println(msg string) {
	os.Stdout.WriteString(msg + "\n")
}

// Details prints supplementary multi-line content to stderr.
// Use for structured error details (e.g. resolver/task failure output)
// that don't fit the key-value log format.
func Details(msg string) {
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, msg)
}

// Prompt prints an interactive prompt to stderr (no newline).
// Use for user input prompts like confirmation dialogs.
func Prompt(msg string) {
	os.Stderr.WriteString(msg)
}

// ClearScreen clears the terminal screen and moves cursor to top-left.
// Use for watch/refresh mode interfaces.
func ClearScreen() {
	os.Stdout.WriteString("\033[2J\033[H")
}

// BoolPtr returns a pointer to a bool value. Convenience for LogConfig.Timestamps.
func BoolPtr(b bool) *bool {
	return &b
}
