package scraper

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lightbulbflow/lightbulbflow/config"
)

// ErrAlreadyStarted is returned when a Runner is started twice.
var ErrAlreadyStarted = errors.New("runner already started")

// ErrStopTimeout is returned when the running pass does not finish before
// the stop context expires.
var ErrStopTimeout = errors.New("scrapers did not stop in time")

// Scraper collects data from one source.
type Scraper interface {
	// Name identifies the scraper in logs.
	Name() string
	// Scrape performs a single pass and returns early when ctx is cancelled.
	Scrape(ctx context.Context) error
}

// FromConfig builds the scrapers enabled in cfg. A nil logger is replaced
// by slog.Default.
func FromConfig(cfg *config.AppConfig, logger *slog.Logger) []Scraper {
	if logger == nil {
		logger = slog.Default()
	}

	var scrapers []Scraper

	if reddit, ok := cfg.Reddit(); ok {
		scrapers = append(scrapers, NewRedditScraper(reddit, logger))
	}

	return scrapers
}
