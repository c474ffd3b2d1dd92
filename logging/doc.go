// Package logging provides structured logging using Go's standard library log/slog.
// Records are written as JSON (or text) to the given writer and, optionally, to a
// rotating file. Setup loads the settings from the YAML document named by LOG_CFG.
package logging
