// Command lightbulbflow loads the configuration and runs the configured
// scrapers once.
//
// Configuration precedence, lowest first: the YAML document (-c, LBF_CONFIG
// or the default search path), LBF__* environment variables, then --set.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"

	"github.com/lightbulbflow/lightbulbflow"
	"github.com/lightbulbflow/lightbulbflow/config"
	"github.com/lightbulbflow/lightbulbflow/logging"
	"github.com/lightbulbflow/lightbulbflow/scraper"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type flags struct {
	configPath    string
	sets          []string
	envFiles      []string
	requireConfig bool
	logLevel      string
	printConfig   bool
	version       bool
}

func main() {
	os.Exit(run(os.Args[1:], config.OSEnviron(), os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags

	set := pflag.NewFlagSet("lightbulbflow", pflag.ContinueOnError)
	set.SetOutput(stderr)

	set.StringVarP(&f.configPath, "config", "c", "", "configuration file (default: $LBF_CONFIG, then the search path)")
	set.StringArrayVar(&f.sets, "set", nil, "override a key, e.g. --set scraper.reddit.subreddits=news (repeatable)")
	set.StringSliceVar(&f.envFiles, "env-file", nil, "load variables from a dotenv file; the environment wins (repeatable)")
	set.BoolVar(&f.requireConfig, "require-config", false, "fail when no configuration file is found")
	set.StringVar(&f.logLevel, "log-level", "", "override the log level: debug, info, warn or error")
	set.BoolVar(&f.printConfig, "print-config", false, "print the merged configuration as YAML and exit")
	set.BoolVar(&f.version, "version", false, "print version information and exit")

	err := set.Parse(args)
	if err != nil {
		return f, fmt.Errorf("parse flags: %w", err)
	}

	return f, nil
}

func run(args []string, environ config.Environ, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}

	if err != nil {
		return exitUsage
	}

	if f.version {
		_, _ = fmt.Fprintln(stdout, lightbulbflow.VersionString())

		return exitOK
	}

	if len(f.envFiles) > 0 {
		environ, err = environ.WithDotEnv(f.envFiles...)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "lightbulbflow: %v\n", err)

			return exitError
		}
	}

	logger := logging.Setup(environ, stderr, logging.WithLevel(f.logLevel))

	overrides, err := config.ParseAssignments(f.sets)
	if err != nil {
		logger.Error("invalid --set value", errorAttrs(err)...)

		return exitError
	}

	cfg, err := config.Load(
		config.WithEnviron(environ),
		config.WithConfigPath(f.configPath),
		config.WithOverrides(overrides),
		config.WithAllowMissing(!f.requireConfig),
	)
	if err != nil {
		logger.Error("failed to load configuration", errorAttrs(err)...)

		return exitError
	}

	if f.printConfig {
		return printConfig(cfg, stdout, logger)
	}

	app := lightbulbflow.NewApp(
		lightbulbflow.WithLogger(logger),
		lightbulbflow.WithLogLevel(f.logLevel),
		lightbulbflow.WithConfig(cfg),
		lightbulbflow.WithScrapers(scraper.WithShutdownWhenDone()),
	)

	err = app.Err()
	if err != nil {
		logger.Error("failed to build application", errorAttrs(err)...)

		return exitError
	}

	app.Run()

	return exitOK
}

func printConfig(cfg *config.AppConfig, w io.Writer, logger *slog.Logger) int {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		logger.Error("failed to encode configuration", errorAttrs(err)...)

		return exitError
	}

	_, err = w.Write(out)
	if err != nil {
		logger.Error("failed to write configuration", errorAttrs(err)...)

		return exitError
	}

	return exitOK
}

// errorAttrs adds the structured fields of the config error kinds.
func errorAttrs(err error) []any {
	attrs := []any{slog.String("error", err.Error())}

	var (
		notFoundErr   *config.NotFoundError
		parseErr      *config.ParseError
		shapeErr      *config.ShapeError
		conflictErr   *config.PathConflictError
		validationErr *config.ValidationError
	)

	switch {
	case errors.As(err, &notFoundErr):
		attrs = append(attrs, slog.String("kind", "not_found"), slog.Any("searched", notFoundErr.Searched))
	case errors.As(err, &parseErr):
		attrs = append(attrs, slog.String("kind", "parse"), slog.String("file", parseErr.Path))
	case errors.As(err, &shapeErr):
		attrs = append(attrs, slog.String("kind", "shape"), slog.String("file", shapeErr.Path))
	case errors.As(err, &conflictErr):
		attrs = append(attrs, slog.String("kind", "path_conflict"), slog.String("path", conflictErr.Path))
	case errors.As(err, &validationErr):
		attrs = append(attrs, slog.String("kind", "validation"), slog.String("path", validationErr.Path))
	}

	return attrs
}
