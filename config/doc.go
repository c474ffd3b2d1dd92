// Package config resolves the lightbulbflow configuration.
//
// Load builds one typed AppConfig from up to three layers, lowest
// precedence first:
//
//  1. a YAML document located by Locator (explicit path, then the file named
//     by LBF_CONFIG, then the default search paths), with ${VAR} references
//     in string values expanded from the environment;
//  2. LBF__-prefixed environment variables, where "__" separates nested keys
//     (LBF__SCRAPER__REDDIT__CREDENTIALS -> scraper.reddit.credentials);
//  3. overrides supplied by the caller, e.g. from CLI flags.
//
// The layers are combined as untyped trees by Merge: nested mappings merge
// key by key, every other value (sequences included) is replaced by the
// higher layer. Validate then decodes the merged tree into AppConfig with a
// closed schema; unknown keys anywhere fail the load.
//
// The environment is read through an Environ snapshot so tests can inject
// fixtures:
//
//	cfg, err := config.Load(
//	    config.WithConfigPath("testdata/config.yaml"),
//	    config.WithEnviron(config.Environ{"LBF__SCRAPER__REDDIT__SUBREDDITS": "news"}),
//	)
//
// Nothing in this package logs. Failures are returned as *NotFoundError,
// *ParseError, *ShapeError, *PathConflictError or *ValidationError.
package config
