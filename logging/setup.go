package logging

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/lightbulbflow/lightbulbflow/config"
	"github.com/lightbulbflow/lightbulbflow/config/fetcher/file"
	"github.com/lightbulbflow/lightbulbflow/config/parser/yaml"
)

// ConfigSection is the document section LoadConfig reads.
const ConfigSection = "logging"

type bootstrap struct {
	ConfigPath string `env:"LOG_CFG" envDefault:"config/logging.yaml"`
}

// LoadConfig reads the logging section of the YAML document at path.
// Unknown keys are rejected. A document that is empty or has no logging
// section yields the zero config.
func LoadConfig(path string) (LoggerConfig, error) {
	var cfg LoggerConfig

	fetcher, err := file.NewFetcher(path)()
	if err != nil {
		return cfg, fmt.Errorf("open logging config: %w", err)
	}

	data, err := fetcher.Fetch()
	if err != nil {
		return cfg, fmt.Errorf("read logging config: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	err = yaml.NewParser(yaml.WithStrict()).Parse(data, &cfg, ConfigSection)
	if err != nil {
		if errors.Is(err, yaml.ErrPathNotFound) {
			return LoggerConfig{}, nil
		}

		return LoggerConfig{}, fmt.Errorf("parse logging config %q: %w", fetcher.Path(), err)
	}

	return cfg, nil
}

// Setup builds the process logger. The document named by LOG_CFG (default
// config/logging.yaml) is read when it exists. Setup never fails: a missing
// document is reported at info level and a broken one at warn level, and
// both fall back to the defaults. A nil environ reads the process
// environment.
func Setup(environ config.Environ, w io.Writer, opts ...Option) *slog.Logger {
	if environ == nil {
		environ = config.OSEnviron()
	}

	var boot bootstrap

	err := env.ParseWithOptions(&boot, env.Options{Environment: environ})

	var cfg LoggerConfig
	if err == nil {
		cfg, err = LoadConfig(boot.ConfigPath)
	}

	for _, apply := range opts {
		apply(&cfg)
	}

	logger := NewLogger(cfg, w)

	switch {
	case err == nil:
		logger.Debug("logging configured", slog.String("path", boot.ConfigPath))
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("logging config not found, using defaults", slog.String("path", boot.ConfigPath))
	default:
		logger.Warn("invalid logging config, using defaults",
			slog.String("path", boot.ConfigPath),
			slog.String("error", err.Error()),
		)
	}

	return logger
}
