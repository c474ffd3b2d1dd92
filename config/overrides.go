package config

import (
	"slices"
	"strings"
)

const (
	// DefaultEnvPrefix is the prefix of environment override variables.
	DefaultEnvPrefix = "LBF"
	// DefaultEnvDelimiter separates the prefix and nested key segments.
	DefaultEnvDelimiter = "__"
)

// FromEnvironment builds an override tree from variables named
// <prefix><delimiter><SEGMENT>[<delimiter><SEGMENT>...]. Segments are trimmed
// and lower-cased, empty segments are dropped, and values are kept as raw
// strings; Validate does any type coercion.
//
// Variables are applied in name order. A *PathConflictError is returned when
// one variable needs a mapping where another placed a value, or when two
// variables normalise to the same key.
func FromEnvironment(environ Environ, prefix, delimiter string) (Tree, error) {
	fullPrefix := prefix + delimiter

	names := make([]string, 0, len(environ))
	for name := range environ {
		if strings.HasPrefix(name, fullPrefix) {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	result := Tree{}

	for _, name := range names {
		segments := splitSegments(strings.TrimPrefix(name, fullPrefix), delimiter)
		if len(segments) == 0 {
			continue
		}

		err := insertPath(result, name, segments, environ[name])
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// ParseAssignments converts "a.b.c=value" pairs into an override tree using
// the same key normalisation and conflict rules as FromEnvironment.
func ParseAssignments(pairs []string) (Tree, error) {
	result := Tree{}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, &AssignmentError{Pair: pair, Reason: "expected key=value"}
		}

		segments := splitSegments(key, ".")
		if len(segments) == 0 {
			return nil, &AssignmentError{Pair: pair, Reason: "empty key"}
		}

		err := insertPath(result, key, segments, value)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func splitSegments(raw, delimiter string) []string {
	parts := []string{raw}
	if delimiter != "" {
		parts = strings.Split(raw, delimiter)
	}

	segments := make([]string, 0, len(parts))

	for _, part := range parts {
		segment := strings.ToLower(strings.TrimSpace(part))
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	return segments
}

// insertPath stores value at segments inside tree, creating intermediate
// mappings as needed.
func insertPath(tree Tree, key string, segments []string, value any) error {
	current := tree

	for i, segment := range segments[:len(segments)-1] {
		next, exists := current[segment]
		if !exists {
			child := Tree{}
			current[segment] = child
			current = child

			continue
		}

		child, ok := next.(map[string]any)
		if !ok {
			return &PathConflictError{
				Key:    key,
				Path:   strings.Join(segments[:i+1], "."),
				Reason: "already holds a value, cannot nest keys under it",
			}
		}

		current = child
	}

	leaf := segments[len(segments)-1]

	if existing, exists := current[leaf]; exists {
		reason := "set more than once"
		if _, ok := existing.(map[string]any); ok {
			reason = "already holds nested keys, cannot set a value"
		}

		return &PathConflictError{Key: key, Path: strings.Join(segments, "."), Reason: reason}
	}

	current[leaf] = value

	return nil
}
