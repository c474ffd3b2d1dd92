package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Environ is a snapshot of environment variables. Load and its components
// read the environment only through an Environ, never through os.Getenv.
type Environ map[string]string

// OSEnviron captures the current process environment.
func OSEnviron() Environ {
	return Environ(env.ToMap(os.Environ()))
}

// Lookup returns the value of key and whether it is set.
func (e Environ) Lookup(key string) (string, bool) {
	value, ok := e[key]

	return value, ok
}

// Get returns the value of key, or "" when it is unset.
func (e Environ) Get(key string) string {
	return e[key]
}

// WithDotEnv returns a copy of e extended with the variables defined in the
// given dotenv files. Variables already present in e win, matching
// godotenv.Load semantics.
func (e Environ) WithDotEnv(paths ...string) (Environ, error) {
	values, err := godotenv.Read(paths...)
	if err != nil {
		return nil, fmt.Errorf("read dotenv: %w", err)
	}

	out := make(Environ, len(e)+len(values))
	for key, value := range values {
		out[key] = value
	}

	for key, value := range e {
		out[key] = value
	}

	return out, nil
}
