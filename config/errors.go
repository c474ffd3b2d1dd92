package config

import (
	"fmt"
	"strings"
)

// NotFoundError is returned by Load when no configuration document was
// located and missing documents are not allowed.
type NotFoundError struct {
	// Path is the explicitly requested path (argument or LBF_CONFIG), if any.
	Path string
	// Searched lists the default locations probed when no path was requested.
	Searched []string
}

func (e *NotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config file %q does not exist or is not a regular file", e.Path)
	}

	return "no config file found in " + strings.Join(e.Searched, ", ")
}

// ParseError reports a configuration document that is not well-formed YAML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse config file %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ShapeError reports a document whose top-level value is not a mapping.
type ShapeError struct {
	Path string
	// Kind describes what was found instead, e.g. "sequence" or "string".
	Kind string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("config file %q: top-level value must be a mapping, got %s", e.Path, e.Kind)
}

// PathConflictError reports an override that both sets a value and nests
// keys under the same path.
type PathConflictError struct {
	// Key is the environment variable or assignment that could not be placed.
	Key string
	// Path is the dotted tree path where the conflict was detected.
	Path   string
	Reason string
}

func (e *PathConflictError) Error() string {
	return fmt.Sprintf("override %s conflicts at %q: %s", e.Key, e.Path, e.Reason)
}

// ValidationError reports a merged tree that does not fit the schema.
type ValidationError struct {
	// Path is the dotted field path, e.g. "scraper.reddit.subreddits[0]".
	Path   string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "invalid config: " + e.Reason
	}

	return fmt.Sprintf("invalid config at %q: %s", e.Path, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AssignmentError reports a malformed key=value override pair.
type AssignmentError struct {
	Pair   string
	Reason string
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("invalid override %q: %s", e.Pair, e.Reason)
}
