package config

import "fmt"

// Option configures a single Load call.
type Option func(*loadOptions)

type loadOptions struct {
	configPath    string
	overrides     Tree
	allowMissing  bool
	environ       Environ
	envPrefix     string
	envDelimiter  string
	userConfigDir func() (string, error)
	searchPaths   []string
}

// WithConfigPath sets the explicit document path. When it does not name a
// regular file no other location is tried.
func WithConfigPath(path string) Option {
	return func(o *loadOptions) {
		o.configPath = path
	}
}

// WithOverrides sets the highest-precedence layer. The tree is copied, Load
// never modifies it.
func WithOverrides(overrides Tree) Option {
	return func(o *loadOptions) {
		o.overrides = overrides
	}
}

// WithAllowMissing controls whether a missing document is an error.
// Missing documents are allowed by default.
func WithAllowMissing(allow bool) Option {
	return func(o *loadOptions) {
		o.allowMissing = allow
	}
}

// WithEnviron replaces the process environment snapshot taken by Load.
func WithEnviron(environ Environ) Option {
	return func(o *loadOptions) {
		o.environ = environ
	}
}

// WithEnvPrefix changes the prefix and delimiter of override variables.
func WithEnvPrefix(prefix, delimiter string) Option {
	return func(o *loadOptions) {
		o.envPrefix = prefix
		o.envDelimiter = delimiter
	}
}

// WithUserConfigDir replaces os.UserConfigDir when building default candidates.
func WithUserConfigDir(resolve func() (string, error)) Option {
	return func(o *loadOptions) {
		o.userConfigDir = resolve
	}
}

// WithSearchPaths replaces the default candidate locations.
func WithSearchPaths(paths ...string) Option {
	return func(o *loadOptions) {
		o.searchPaths = append([]string{}, paths...)
	}
}

// Load resolves, merges and validates the configuration.
//
// Layers, lowest precedence first: the located document (after ${VAR}
// expansion), LBF__ environment overrides, then WithOverrides. When no
// document is found Load continues with an empty tree unless
// WithAllowMissing(false) was given, in which case it returns *NotFoundError.
func Load(opts ...Option) (*AppConfig, error) {
	options := loadOptions{
		allowMissing: true,
		envPrefix:    DefaultEnvPrefix,
		envDelimiter: DefaultEnvDelimiter,
	}

	for _, apply := range opts {
		apply(&options)
	}

	if options.environ == nil {
		options.environ = OSEnviron()
	}

	locator := Locator{
		Environ:       options.environ,
		UserConfigDir: options.userConfigDir,
		SearchPaths:   options.searchPaths,
	}

	tree := Tree{}

	path, found := locator.Resolve(options.configPath)

	switch {
	case found:
		source, err := LoadSource(path)
		if err != nil {
			return nil, err
		}

		Merge(tree, Expand(source, options.environ))
	case !options.allowMissing:
		return nil, locator.notFound(options.configPath)
	}

	envOverrides, err := FromEnvironment(options.environ, options.envPrefix, options.envDelimiter)
	if err != nil {
		return nil, err
	}

	Merge(tree, envOverrides)
	Merge(tree, copyTree(options.overrides))

	return Validate(tree)
}

// Provider returns an Fx-friendly constructor that calls Load with opts.
func Provider(opts ...Option) func() (*AppConfig, error) {
	return func() (*AppConfig, error) {
		cfg, err := Load(opts...)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		return cfg, nil
	}
}
