package util

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel is a level name as written in config files and flags.
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	FormatJSON LogFormat = "json"
	FormatText LogFormat = "text"
)

var slogLevels = map[LogLevel]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// LoggerConfig configures NewLogger. Output defaults to stderr, since stdout
// carries MCP traffic when serving.
type LoggerConfig struct {
	Level  LogLevel
	Format LogFormat
	Output io.Writer
}

// NewLogger builds a slog.Logger from config. Unknown levels log at info and
// unknown formats as JSON.
func NewLogger(config LoggerConfig) *slog.Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	level, ok := slogLevels[config.Level]
	if !ok {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if config.Format == FormatText {
		return slog.New(slog.NewTextHandler(out, opts))
	}
	return slog.New(slog.NewJSONHandler(out, opts))
}

// NopLogger discards everything.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLogLevel reads a level from user input, case-insensitively. "warning"
// is accepted for warn; anything unrecognized is info.
func ParseLogLevel(s string) LogLevel {
	level := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	if level == "warning" {
		return LevelWarn
	}
	if _, ok := slogLevels[level]; ok {
		return level
	}
	return LevelInfo
}

// ParseLogFormat returns FormatText for "text" in any case, FormatJSON
// otherwise.
func ParseLogFormat(s string) LogFormat {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatText)) {
		return FormatText
	}
	return FormatJSON
}

// SetDefault installs logger as the process-wide slog default, which
// components fall back to when given a nil logger.
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}
