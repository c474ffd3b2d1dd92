package lightbulbflow_test

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/lightbulbflow/lightbulbflow"
	"github.com/lightbulbflow/lightbulbflow/config"
	"github.com/lightbulbflow/lightbulbflow/logging"
	"github.com/lightbulbflow/lightbulbflow/scraper"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewApp_CreatesAppWithDefaultLogLevel(t *testing.T) {
	t.Parallel()

	app := lightbulbflow.NewApp()
	require.NotNil(t, app)
	require.NoError(t, app.Err())
}

func TestNewApp_WithModules(t *testing.T) {
	t.Parallel()

	var invoked bool

	module := fx.Module("test",
		fx.Invoke(func() {
			invoked = true
		}),
	)

	app := lightbulbflow.NewApp(lightbulbflow.WithLogger(quietLogger()), lightbulbflow.WithModules(module))
	require.NotNil(t, app)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	require.True(t, invoked)
}

func TestNewApp_LoggerIsAvailableInFxContainer(t *testing.T) {
	t.Parallel()

	logger := quietLogger()

	var capturedLogger *slog.Logger

	module := fx.Module("test",
		fx.Invoke(func(logger *slog.Logger) {
			capturedLogger = logger
		}),
	)

	app := lightbulbflow.NewApp(
		lightbulbflow.WithLogger(logger),
		lightbulbflow.WithModules(module),
	)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	require.Same(t, logger, capturedLogger)
}

func TestNewApp_LoggerConfigIsSupplied(t *testing.T) {
	t.Parallel()

	var capturedConfig logging.LoggerConfig

	module := fx.Module("test",
		fx.Invoke(func(config logging.LoggerConfig) {
			capturedConfig = config
		}),
	)

	app := lightbulbflow.NewApp(
		lightbulbflow.WithLogLevel("warn"),
		lightbulbflow.WithLogger(quietLogger()),
		lightbulbflow.WithModules(module),
	)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	require.Equal(t, "warn", capturedConfig.Level)
}

func TestNewApp_WithConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.AppConfig{Scraper: &config.ScraperConfig{}}

	var captured *config.AppConfig

	app := lightbulbflow.NewApp(
		lightbulbflow.WithLogger(quietLogger()),
		lightbulbflow.WithConfig(cfg),
		lightbulbflow.WithModules(fx.Invoke(func(c *config.AppConfig) { captured = c })),
	)

	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })
	require.Same(t, cfg, captured)
}

func TestNewApp_WithConfigProvider(t *testing.T) {
	t.Parallel()

	var captured *config.AppConfig

	app := lightbulbflow.NewApp(
		lightbulbflow.WithLogger(quietLogger()),
		lightbulbflow.WithConfigProvider(
			config.WithConfigPath(filepath.Join("testdata", "config.yaml")),
			config.WithEnviron(config.Environ{"LBF_SECRETS": "/run/secrets"}),
		),
		lightbulbflow.WithModules(fx.Invoke(func(c *config.AppConfig) { captured = c })),
	)

	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })

	reddit, ok := captured.Reddit()
	require.True(t, ok)
	require.Equal(t, "/run/secrets/reddit.json", reddit.Credentials)
	require.Equal(t, []string{"news", "golang"}, reddit.Subreddits)
}

func TestNewApp_WithConfigProviderFailure(t *testing.T) {
	t.Parallel()

	app := lightbulbflow.NewApp(
		lightbulbflow.WithLogger(quietLogger()),
		lightbulbflow.WithConfigProvider(
			config.WithConfigPath(filepath.Join(t.TempDir(), "missing.yaml")),
			config.WithEnviron(config.Environ{}),
			config.WithAllowMissing(false),
		),
		lightbulbflow.WithModules(fx.Invoke(func(*config.AppConfig) {})),
	)

	err := app.Err()

	var notFoundErr *config.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	require.Error(t, app.Start())
}

func TestNewApp_WithScrapers(t *testing.T) {
	t.Parallel()

	cfg := &config.AppConfig{Scraper: &config.ScraperConfig{
		Reddit: &config.RedditConfig{Subreddits: []string{"news"}},
	}}

	app := lightbulbflow.NewApp(
		lightbulbflow.WithLogger(quietLogger()),
		lightbulbflow.WithConfig(cfg),
		lightbulbflow.WithScrapers(scraper.WithShutdownWhenDone()),
	)
	require.NoError(t, app.Err())

	require.NotPanics(t, func() {
		app.Run()
	})
}

func TestApp_Stop(t *testing.T) {
	t.Parallel()

	var stopCalled bool

	module := fx.Module("test",
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					stopCalled = true

					return nil
				},
			})
		}),
	)

	app := lightbulbflow.NewApp(lightbulbflow.WithLogger(quietLogger()), lightbulbflow.WithModules(module))

	err := app.Start()
	require.NoError(t, err)

	err = app.Stop()
	require.NoError(t, err)
	require.True(t, stopCalled, "OnStop hook should be called")
}

func TestApp_NilApp(t *testing.T) {
	t.Parallel()

	var app *lightbulbflow.App

	require.Error(t, app.Start())
	require.Error(t, app.Stop())
	require.Error(t, app.Err())
	require.NotPanics(t, func() {
		app.Run()
	})
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	module := fx.Module("test",
		fx.Invoke(func(shutdowner fx.Shutdowner) {
			go func() {
				_ = shutdowner.Shutdown()
			}()
		}),
	)

	app := lightbulbflow.NewApp(lightbulbflow.WithLogger(quietLogger()), lightbulbflow.WithModules(module))

	require.NotPanics(t, func() {
		app.Run()
	})
}
