package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lightbulbflow/lightbulbflow/logging"

	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	config := logging.LoggerConfig{Level: "INFO"}
	logger := logging.NewLogger(config, &buf)

	logger.Info("test message", slog.String("key", "value"))

	var logEntry map[string]any

	err := json.Unmarshal(buf.Bytes(), &logEntry)
	require.NoError(t, err, "output should be valid JSON")
	require.Equal(t, "test message", logEntry["msg"])
	require.Equal(t, "value", logEntry["key"])
	require.Equal(t, "INFO", logEntry["level"])
}

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		configLevel   string
		logLevel      slog.Level
		shouldLog     bool
		expectedLevel string
	}{
		{
			name:          "debug level logs debug",
			configLevel:   "DEBUG",
			logLevel:      slog.LevelDebug,
			shouldLog:     true,
			expectedLevel: "DEBUG",
		},
		{
			name:          "warn level logs warn",
			configLevel:   "WARN",
			logLevel:      slog.LevelWarn,
			shouldLog:     true,
			expectedLevel: "WARN",
		},
		{
			name:          "warning level logs warn",
			configLevel:   "WARNING",
			logLevel:      slog.LevelWarn,
			shouldLog:     true,
			expectedLevel: "WARN",
		},
		{
			name:          "error level logs error",
			configLevel:   "ERROR",
			logLevel:      slog.LevelError,
			shouldLog:     true,
			expectedLevel: "ERROR",
		},
		{
			name:          "info level does not log debug",
			configLevel:   "INFO",
			logLevel:      slog.LevelDebug,
			shouldLog:     false,
			expectedLevel: "",
		},
		{
			name:          "error level does not log info",
			configLevel:   "ERROR",
			logLevel:      slog.LevelInfo,
			shouldLog:     false,
			expectedLevel: "",
		},
		{
			name:          "lowercase level with spaces is accepted",
			configLevel:   " debug ",
			logLevel:      slog.LevelDebug,
			shouldLog:     true,
			expectedLevel: "DEBUG",
		},
		{
			name:          "empty level defaults to info",
			configLevel:   "",
			logLevel:      slog.LevelInfo,
			shouldLog:     true,
			expectedLevel: "INFO",
		},
		{
			name:          "invalid level defaults to info",
			configLevel:   "INVALID",
			logLevel:      slog.LevelInfo,
			shouldLog:     true,
			expectedLevel: "INFO",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			config := logging.LoggerConfig{Level: testCase.configLevel}
			logger := logging.NewLogger(config, &buf)

			logger.Log(context.Background(), testCase.logLevel, "test message")

			if testCase.shouldLog {
				require.NotEmpty(t, buf.String(), "log should be written")

				var logEntry map[string]any

				err := json.Unmarshal(buf.Bytes(), &logEntry)
				require.NoError(t, err, "output should be valid JSON")
				require.Equal(t, testCase.expectedLevel, logEntry["level"])
			} else {
				require.Empty(t, buf.String(), "log should not be written")
			}
		})
	}
}

func TestLoggerConfig_ZeroValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	config := logging.LoggerConfig{}
	logger := logging.NewLogger(config, &buf)

	logger.Info("test message")

	var logEntry map[string]any

	err := json.Unmarshal(buf.Bytes(), &logEntry)
	require.NoError(t, err, "output should be valid JSON")
	require.Equal(t, "INFO", logEntry["level"], "default level should be INFO")
}

func TestNewLogger_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{Format: "TEXT"}, &buf)
	logger.Info("scrape finished", slog.String("scraper", "reddit"))

	line := buf.String()
	require.Contains(t, line, "level=INFO")
	require.Contains(t, line, `msg="scrape finished"`)
	require.Contains(t, line, "scraper=reddit")
}

func TestNewLogger_FileSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	path := filepath.Join(t.TempDir(), "logs", "lightbulbflow.log")

	logger := logging.NewLogger(logging.LoggerConfig{
		File: &logging.FileConfig{Path: path, MaxSizeMB: 1},
	}, &buf)
	logger.Warn("disk and writer")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, buf.String(), string(data))
	require.Contains(t, string(data), "disk and writer")
}

func TestOptions(t *testing.T) {
	t.Parallel()

	cfg := logging.LoggerConfig{Level: "error", Format: "json"}

	logging.WithLevel("")(&cfg)
	logging.WithFormat("")(&cfg)
	require.Equal(t, logging.LoggerConfig{Level: "error", Format: "json"}, cfg)

	logging.WithLevel("debug")(&cfg)
	logging.WithFormat("text")(&cfg)
	require.Equal(t, logging.LoggerConfig{Level: "debug", Format: "text"}, cfg)
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "logging.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		content  string
		expected logging.LoggerConfig
	}{
		{
			name:    "full section",
			content: "logging:\n  level: debug\n  format: text\n  file:\n    path: /var/log/lbf.log\n    max_backups: 3\n",
			expected: logging.LoggerConfig{
				Level:  "debug",
				Format: "text",
				File:   &logging.FileConfig{Path: "/var/log/lbf.log", MaxBackups: 3},
			},
		},
		{
			name:     "other sections are ignored",
			content:  "scraper: {}\nlogging:\n  level: warn\n",
			expected: logging.LoggerConfig{Level: "warn"},
		},
		{
			name:     "no logging section",
			content:  "scraper: {}\n",
			expected: logging.LoggerConfig{},
		},
		{
			name:     "blank document",
			content:  "  \n",
			expected: logging.LoggerConfig{},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := logging.LoadConfig(writeFile(t, testCase.content))
			require.NoError(t, err)
			require.Equal(t, testCase.expected, cfg)
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	_, err := logging.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = logging.LoadConfig(writeFile(t, "logging:\n  levle: debug\n"))
	require.Error(t, err)

	_, err = logging.LoadConfig(writeFile(t, "logging: [unclosed\n"))
	require.Error(t, err)
}

func decodeLines(t *testing.T, output string) []map[string]any {
	t.Helper()

	var entries []map[string]any

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}

		var entry map[string]any

		require.NoError(t, json.Unmarshal([]byte(line), &entry))

		entries = append(entries, entry)
	}

	return entries
}

func TestSetup(t *testing.T) {
	t.Parallel()

	valid := writeFile(t, "logging:\n  level: debug\n")
	broken := writeFile(t, "logging:\n  level: [debug\n")
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	testCases := []struct {
		name         string
		environ      map[string]string
		expectedMsg  string
		expectedLvl  string
		debugEnabled bool
	}{
		{
			name:         "valid document",
			environ:      map[string]string{"LOG_CFG": valid},
			expectedMsg:  "logging configured",
			expectedLvl:  "DEBUG",
			debugEnabled: true,
		},
		{
			name:        "missing document",
			environ:     map[string]string{"LOG_CFG": missing},
			expectedMsg: "logging config not found, using defaults",
			expectedLvl: "INFO",
		},
		{
			name:        "broken document",
			environ:     map[string]string{"LOG_CFG": broken},
			expectedMsg: "invalid logging config, using defaults",
			expectedLvl: "WARN",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := logging.Setup(testCase.environ, &buf)
			require.NotNil(t, logger)
			require.Equal(t, testCase.debugEnabled, logger.Enabled(context.Background(), slog.LevelDebug))

			entries := decodeLines(t, buf.String())
			require.Len(t, entries, 1)
			require.Equal(t, testCase.expectedMsg, entries[0]["msg"])
			require.Equal(t, testCase.expectedLvl, entries[0]["level"])
		})
	}
}

func TestSetup_DefaultPath(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logging.Setup(map[string]string{}, &buf)

	entries := decodeLines(t, buf.String())
	require.Len(t, entries, 1)
	require.Equal(t, "config/logging.yaml", entries[0]["path"])
}

func TestSetup_OptionsOverrideDocument(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	path := writeFile(t, "logging:\n  level: error\n")

	logger := logging.Setup(map[string]string{"LOG_CFG": path}, &buf, logging.WithLevel("debug"))
	require.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}
