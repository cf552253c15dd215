package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/domain/entity"
)

func writeFeedsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feeds.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write feeds file: %v", err)
	}
	return path
}

func TestLoadFeeds_ValidFile(t *testing.T) {
	path := writeFeedsFile(t, `feeds:
  - url: https://example.com/tech.xml
    category: Tech
  - url: https://example.com/money.xml
    category: Finance
`)

	feeds, err := LoadFeeds(path)
	if err != nil {
		t.Fatalf("LoadFeeds() error = %v", err)
	}

	if len(feeds) != 2 {
		t.Fatalf("feeds length = %d, want 2", len(feeds))
	}
	if feeds[0].URL != "https://example.com/tech.xml" || feeds[0].Category != "Tech" {
		t.Errorf("unexpected first feed: %+v", feeds[0])
	}
}

func TestLoadFeeds_MissingFileUsesDefaults(t *testing.T) {
	feeds, err := LoadFeeds(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("LoadFeeds() error = %v", err)
	}

	if len(feeds) != len(DefaultFeeds()) {
		t.Errorf("feeds length = %d, want the built-in defaults", len(feeds))
	}
	for _, feed := range feeds {
		if err := feed.Validate(); err != nil {
			t.Errorf("default feed %q fails validation: %v", feed.URL, err)
		}
	}
}

func TestLoadFeeds_InvalidYAML(t *testing.T) {
	path := writeFeedsFile(t, "feeds: [broken")

	if _, err := LoadFeeds(path); err == nil {
		t.Fatal("LoadFeeds() error = nil, want parse error")
	}
}

func TestLoadFeeds_EmptyList(t *testing.T) {
	path := writeFeedsFile(t, "feeds: []\n")

	if _, err := LoadFeeds(path); err == nil {
		t.Fatal("LoadFeeds() error = nil, want error for empty list")
	}
}

func TestLoadFeeds_InvalidEntry(t *testing.T) {
	path := writeFeedsFile(t, `feeds:
  - url: not-a-url
    category: Tech
`)

	_, err := LoadFeeds(path)
	if !errors.Is(err, entity.ErrInvalidFeedURL) {
		t.Errorf("LoadFeeds() error = %v, want ErrInvalidFeedURL", err)
	}
}

func TestLoadFeeds_MissingCategory(t *testing.T) {
	path := writeFeedsFile(t, `feeds:
  - url: https://example.com/feed.xml
`)

	_, err := LoadFeeds(path)
	if !errors.Is(err, entity.ErrMissingCategory) {
		t.Errorf("LoadFeeds() error = %v, want ErrMissingCategory", err)
	}
}
