package lightbulbflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/lightbulbflow/lightbulbflow/logging"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is the lightbulbflow application: the Fx container holding the
// logger, the configuration and the modules added through options.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: configure(&options),
	}
}

func configure(options *Options) *fx.App {
	logger := options.Logger
	if logger == nil {
		logger = createLogger(options.LogLevel, os.Stderr)
	}

	slog.SetDefault(logger)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(logging.LoggerConfig{Level: options.LogLevel}),
		fx.Supply(logger),
		fx.Options(options.Modules...),
	)
}

func createLogger(level string, w io.Writer) *slog.Logger {
	config := logging.LoggerConfig{Level: level}

	return logging.NewLogger(config, w)
}

// Err returns the error that occurred while building the container, such
// as a configuration that failed to load.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	err := app.app.Err()
	if err != nil {
		return fmt.Errorf("failed to build app: %w", err)
	}

	return nil
}

// Start runs the OnStart hooks. With WithScrapers this launches the scraper
// pass in the background; Start returns without waiting for it.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Run starts the application and blocks until an OS signal is received or a
// module requests shutdown, then stops gracefully. A non-zero exit code
// requested through fx.Shutdowner terminates the process with that code.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop runs the OnStop hooks, cancelling a scraper pass still in progress
// and waiting for it to return.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}
