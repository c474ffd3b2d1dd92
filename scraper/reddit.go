package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lightbulbflow/lightbulbflow/config"
)

// RedditName is the name reported by RedditScraper.
const RedditName = "reddit"

// RedditScraper walks the configured subreddits. Fetching posts is not
// implemented yet; each subreddit is only logged.
type RedditScraper struct {
	config config.RedditConfig
	logger *slog.Logger
}

// NewRedditScraper creates a scraper for cfg. The subreddit list is copied.
func NewRedditScraper(cfg config.RedditConfig, logger *slog.Logger) *RedditScraper {
	if logger == nil {
		logger = slog.Default()
	}

	cfg.Subreddits = cfg.SubredditList()

	return &RedditScraper{
		config: cfg,
		logger: logger.With(slog.String("scraper", RedditName)),
	}
}

// Name implements Scraper.
func (s *RedditScraper) Name() string {
	return RedditName
}

// Subreddits returns a copy of the subreddits this scraper visits.
func (s *RedditScraper) Subreddits() []string {
	return s.config.SubredditList()
}

// Scrape implements Scraper.
func (s *RedditScraper) Scrape(ctx context.Context) error {
	s.logger.InfoContext(ctx, "scraping reddit",
		slog.String("credentials", s.config.Credentials),
		slog.Int("subreddits", len(s.config.Subreddits)),
	)

	for _, subreddit := range s.config.Subreddits {
		err := ctx.Err()
		if err != nil {
			return fmt.Errorf("scrape r/%s: %w", subreddit, err)
		}

		s.logger.DebugContext(ctx, "visiting subreddit", slog.String("subreddit", subreddit))
	}

	return nil
}
