package config

import (
	"bytes"
	"fmt"

	"github.com/lightbulbflow/lightbulbflow/config/fetcher/file"
	yamlparser "github.com/lightbulbflow/lightbulbflow/config/parser/yaml"
)

// Tree is the untyped intermediate form of a configuration: nested
// mappings are map[string]any, sequences []any, leaves are scalars.
type Tree = map[string]any

// Parser decodes raw document bytes into target. path selects a section
// of the document; "" means the whole document.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher provides raw document bytes.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// LoadSource reads the YAML document at path into a Tree.
// An empty document yields an empty Tree.
func LoadSource(path string) (Tree, error) {
	fetcher, err := file.NewFetcher(path)()
	if err != nil {
		return nil, fmt.Errorf("load config source: %w", err)
	}

	return decodeSource(path, fetcher, yamlparser.NewParser())
}

func decodeSource(path string, fetcher DataFetcher, parser Parser) (Tree, error) {
	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return Tree{}, nil
	}

	var document any

	err = parser.Parse(data, &document, "")
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	switch document := document.(type) {
	case nil:
		return Tree{}, nil
	case map[string]any:
		return document, nil
	default:
		return nil, &ShapeError{Path: path, Kind: kindOf(document)}
	}
}

func kindOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "mapping"
	case []any:
		return "sequence"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}
