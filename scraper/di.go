package scraper

import (
	"log/slog"
	"slices"

	"go.uber.org/fx"
)

// Option configures the scraper module.
type Option func(*moduleOptions)

type moduleOptions struct {
	shutdownWhenDone bool
	extra            []Scraper
}

// WithShutdownWhenDone shuts the application down after the pass finishes.
// The exit code is 1 when any scraper failed.
func WithShutdownWhenDone() Option {
	return func(o *moduleOptions) {
		o.shutdownWhenDone = true
	}
}

// WithScrapers runs the given scrapers after the configured ones.
func WithScrapers(scrapers ...Scraper) Option {
	return func(o *moduleOptions) {
		o.extra = append(o.extra, scrapers...)
	}
}

// NewModule creates the "scraper" Fx module. It needs *config.AppConfig and
// *slog.Logger from the container.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(opts ...Option) fx.Option {
	var options moduleOptions

	for _, apply := range opts {
		apply(&options)
	}

	return fx.Module("scraper",
		fx.Provide(FromConfig),
		fx.Invoke(func(lifecycle fx.Lifecycle, shutdowner fx.Shutdowner, scrapers []Scraper, logger *slog.Logger) {
			var onDone func(error)

			if options.shutdownWhenDone {
				onDone = func(err error) {
					code := 0
					if err != nil {
						code = 1
					}

					shutdownErr := shutdowner.Shutdown(fx.ExitCode(code))
					if shutdownErr != nil {
						logger.Error("failed to trigger shutdown", slog.String("error", shutdownErr.Error()))
					}
				}
			}

			runner := NewRunner(slices.Concat(scrapers, options.extra), logger, onDone)

			lifecycle.Append(fx.Hook{
				OnStart: runner.Start,
				OnStop:  runner.Stop,
			})
		}),
	)
}
