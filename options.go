package lightbulbflow

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/lightbulbflow/lightbulbflow/config"
	"github.com/lightbulbflow/lightbulbflow/scraper"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules  []fx.Option
	LogLevel string
	// Logger replaces the logger NewApp would build from LogLevel.
	Logger *slog.Logger
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogger makes logger the application logger. WithLogLevel is then only
// reported through the supplied logging.LoggerConfig.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithConfig supplies an already loaded configuration to the container.
func WithConfig(cfg *config.AppConfig) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, fx.Supply(cfg))
	}
}

// WithConfigProvider loads the configuration with config.Load when the
// container is built. A load failure fails application construction.
func WithConfigProvider(loadOpts ...config.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, fx.Provide(config.Provider(loadOpts...)))
	}
}

// WithScrapers adds the scraper module. It needs a configuration from
// WithConfig or WithConfigProvider.
func WithScrapers(scraperOpts ...scraper.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, scraper.NewModule(scraperOpts...))
	}
}
