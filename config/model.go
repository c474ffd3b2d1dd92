package config

import "slices"

// AppConfig is the validated configuration returned by Load. Each Load call
// returns a new value; nothing in this module modifies it afterwards.
type AppConfig struct {
	Scraper *ScraperConfig `mapstructure:"scraper" yaml:"scraper,omitempty"`
}

// ScraperConfig groups the per-source scraper settings.
type ScraperConfig struct {
	Reddit *RedditConfig `mapstructure:"reddit" yaml:"reddit,omitempty"`
}

// RedditConfig configures the Reddit scraper.
type RedditConfig struct {
	// Credentials is the path to the Reddit API credentials file.
	Credentials string `mapstructure:"credentials" yaml:"credentials" validate:"pathlike"`
	// Subreddits must be present whenever the reddit block is. An empty list
	// is accepted, empty names are not.
	Subreddits []string `mapstructure:"subreddits" yaml:"subreddits" validate:"required,dive,required"`
}

// Reddit returns the Reddit settings and whether they are configured.
func (c *AppConfig) Reddit() (RedditConfig, bool) {
	if c == nil || c.Scraper == nil || c.Scraper.Reddit == nil {
		return RedditConfig{}, false
	}

	return *c.Scraper.Reddit, true
}

// SubredditList returns a copy of the configured subreddits.
func (c RedditConfig) SubredditList() []string {
	return slices.Clone(c.Subreddits)
}
