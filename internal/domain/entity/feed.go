// Package entity contains the domain model for the RSS-to-Telex integration:
// feed descriptors supplied at configuration time and the notifications
// derived from their entries.
package entity

import (
	"fmt"
	"net/url"
	"strings"
)

// Feed describes a single syndication feed the worker polls.
// Instances are immutable after configuration load.
type Feed struct {
	// URL is the absolute URL of the RSS/Atom feed.
	URL string `yaml:"url"`

	// Category is the human-readable category label attached to every
	// notification derived from this feed (e.g. "Tech", "Cybersecurity").
	Category string `yaml:"category"`
}

// Validate checks the Feed descriptor invariants:
// URL must be a syntactically valid absolute URL and Category must be non-empty.
func (f *Feed) Validate() error {
	if strings.TrimSpace(f.URL) == "" {
		return ErrMissingFeedURL
	}

	u, err := url.Parse(f.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidFeedURL, f.URL)
	}

	if strings.TrimSpace(f.Category) == "" {
		return ErrMissingCategory
	}

	return nil
}
