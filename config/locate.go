package config

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/go-homedir"

	"github.com/lightbulbflow/lightbulbflow/config/fetcher/file"
)

const (
	// ConfigPathEnv names the variable holding an explicit config file path.
	ConfigPathEnv = "LBF_CONFIG"

	appDirName     = "lightbulbflow"
	configFileName = "config.yaml"
)

// Locator decides which configuration document, if any, Load reads.
//
// Precedence, first match wins:
//  1. the explicit path passed to Resolve;
//  2. the path in LBF_CONFIG;
//  3. the first existing default candidate (see Candidates).
//
// A path given by 1 or 2 that does not name a regular file resolves to
// "not found"; the default candidates are not consulted in that case.
type Locator struct {
	Environ Environ
	// UserConfigDir resolves the per-user config directory when
	// XDG_CONFIG_HOME is unset. Defaults to os.UserConfigDir.
	UserConfigDir func() (string, error)
	// SearchPaths replaces the default candidate list when non-nil.
	SearchPaths []string
}

// Resolve returns the path of the document to read and whether one was found.
func (l Locator) Resolve(explicit string) (string, bool) {
	if requested := l.requested(explicit); requested != "" {
		return existingFile(requested)
	}

	for _, candidate := range l.Candidates() {
		if file.IsRegular(candidate) {
			return candidate, true
		}
	}

	return "", false
}

// Candidates lists the default locations in probe order:
// ./config.yaml, ./config/settings.yaml, <user-config-dir>/lightbulbflow/config.yaml
// and /etc/lightbulbflow/config.yaml. The user entry is omitted when no
// user config directory can be determined.
func (l Locator) Candidates() []string {
	if l.SearchPaths != nil {
		return slices.Clone(l.SearchPaths)
	}

	candidates := []string{
		"./" + configFileName,
		"./config/settings.yaml",
	}

	if dir, ok := l.userConfigDir(); ok {
		candidates = append(candidates, filepath.Join(dir, appDirName, configFileName))
	}

	return append(candidates, filepath.Join("/etc", appDirName, configFileName))
}

// locatorEnv holds the variables the Locator reads from its snapshot.
type locatorEnv struct {
	ConfigPath    string `env:"LBF_CONFIG"`
	XDGConfigHome string `env:"XDG_CONFIG_HOME"`
}

func (l Locator) vars() locatorEnv {
	var vars locatorEnv

	environ := l.Environ
	if environ == nil {
		environ = Environ{}
	}

	err := env.ParseWithOptions(&vars, env.Options{Environment: environ})
	if err != nil {
		return locatorEnv{}
	}

	return vars
}

// requested returns the explicit path or, failing that, LBF_CONFIG.
func (l Locator) requested(explicit string) string {
	if explicit != "" {
		return explicit
	}

	return l.vars().ConfigPath
}

func (l Locator) userConfigDir() (string, bool) {
	if dir := l.vars().XDGConfigHome; dir != "" {
		return dir, true
	}

	resolve := l.UserConfigDir
	if resolve == nil {
		resolve = os.UserConfigDir
	}

	dir, err := resolve()
	if err != nil || dir == "" {
		return "", false
	}

	return dir, true
}

func (l Locator) notFound(explicit string) *NotFoundError {
	if requested := l.requested(explicit); requested != "" {
		return &NotFoundError{Path: requested}
	}

	return &NotFoundError{Searched: l.Candidates()}
}

// existingFile expands a leading "~" and checks that the result is a
// regular file.
func existingFile(path string) (string, bool) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", false
	}

	if !file.IsRegular(expanded) {
		return "", false
	}

	return expanded, true
}
