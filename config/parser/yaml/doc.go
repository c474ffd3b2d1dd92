// Package yaml decodes YAML documents for the config and logging packages.
//
// It is built on github.com/goccy/go-yaml. A Parser can decode a whole
// document or a single section addressed by a dotted path:
//
//	parser := yaml.NewParser(yaml.WithStrict())
//	var cfg logging.LoggerConfig
//	err := parser.Parse(data, &cfg, "logging")
//
// Path conversion:
//   - "" decodes the entire document
//   - "logging" -> "$.logging"
//   - "scraper.reddit" -> "$.scraper.reddit"
//
// Mappings decoded into an interface value become map[string]any, sequences
// become []any.
package yaml
