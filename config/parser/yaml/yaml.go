package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = errors.New("path not found")

// Option configures a Parser.
type Option func(*Parser)

// WithStrict rejects mapping keys that have no matching struct field.
// It has no effect when decoding into maps or interface values.
func WithStrict() Option {
	return func(p *Parser) {
		p.strict = true
	}
}

// Parser implements config.Parser for YAML data.
type Parser struct {
	strict bool
}

// NewParser creates a new YAML parser instance.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, apply := range opts {
		apply(p)
	}

	return p
}

// Parse decodes data into target. path selects a section using "." as the
// separator; an empty path decodes the whole document.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		err := yaml.UnmarshalWithOptions(data, target, p.decodeOptions()...)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	pathObj, err := yaml.PathString(convertToYAMLPath(path))
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	node, err := pathObj.ReadNode(bytes.NewReader(data))
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	err = yaml.NodeToValue(node, target, p.decodeOptions()...)
	if err != nil {
		return fmt.Errorf("decoding path %q: %w", path, err)
	}

	return nil
}

func (p *Parser) decodeOptions() []yaml.DecodeOption {
	if p.strict {
		return []yaml.DecodeOption{yaml.Strict()}
	}

	return nil
}

// convertToYAMLPath converts a dotted path to goccy/go-yaml PathString format.
func convertToYAMLPath(path string) string {
	parts := strings.Split(path, ".")

	return "$." + strings.Join(parts, ".")
}
