package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/natefinch/lumberjack"
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	// Level is one of debug, info, warn (or warning) and error. Case-insensitive.
	Level string `yaml:"level"`
	// Format is "json" (default) or "text".
	Format string `yaml:"format"`
	// File additionally writes records to a rotating file when set.
	File *FileConfig `yaml:"file"`
}

// FileConfig describes the rotating file sink.
type FileConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Option adjusts a LoggerConfig after it has been loaded.
type Option func(*LoggerConfig)

// WithLevel overrides the configured level. An empty level is ignored.
func WithLevel(level string) Option {
	return func(c *LoggerConfig) {
		if level != "" {
			c.Level = level
		}
	}
}

// WithFormat overrides the configured format. An empty format is ignored.
func WithFormat(format string) Option {
	return func(c *LoggerConfig) {
		if format != "" {
			c.Format = format
		}
	}
}

// NewLogger creates a new slog.Logger writing to w and, when configured, to
// the rotating file. The level is parsed from the config; defaults to INFO
// if invalid or empty.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	if sink := config.File.writer(); sink != nil {
		w = io.MultiWriter(w, sink)
	}

	options := &slog.HandlerOptions{
		AddSource:   false,
		Level:       parseLevel(config.Level),
		ReplaceAttr: nil,
	}

	var handler slog.Handler
	if strings.EqualFold(config.Format, "text") {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}

	return slog.New(handler)
}

func (c *FileConfig) writer() io.Writer {
	if c == nil || c.Path == "" {
		return nil
	}

	return &lumberjack.Logger{
		Filename:   c.Path,
		MaxSize:    c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
