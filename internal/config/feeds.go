// Package config holds application-level configuration: the feed list and
// the notifier settings loaded at startup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/domain/entity"
)

// DefaultFeedsFile is the feed list path used when FEEDS_FILE is not set.
const DefaultFeedsFile = "feeds.yml"

// feedsFile is the on-disk shape of the feed list.
type feedsFile struct {
	Feeds []entity.Feed `yaml:"feeds"`
}

// DefaultFeeds returns the built-in feed list used when no feeds file exists.
func DefaultFeeds() []entity.Feed {
	return []entity.Feed{
		{URL: "https://techcrunch.com/category/technology/feed/", Category: "Tech"},
		{URL: "https://www.wired.com/feed/category/business/latest/rss", Category: "Business"},
		{URL: "https://krebsonsecurity.com/feed/", Category: "Cybersecurity"},
	}
}

// LoadFeeds reads and validates the feed list from path. A missing file is
// not an error: the built-in defaults are returned so the worker can run
// without any local configuration.
func LoadFeeds(path string) ([]entity.Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultFeeds(), nil
		}
		return nil, fmt.Errorf("read feeds file %s: %w", path, err)
	}

	var parsed feedsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse feeds file %s: %w", path, err)
	}

	if len(parsed.Feeds) == 0 {
		return nil, fmt.Errorf("feeds file %s declares no feeds", path)
	}

	for i, feed := range parsed.Feeds {
		if err := feed.Validate(); err != nil {
			return nil, fmt.Errorf("feeds file %s: feed %d: %w", path, i, err)
		}
	}

	return parsed.Feeds, nil
}
