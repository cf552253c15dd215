// Package scraper fetches and parses RSS/Atom feeds. It uses the gofeed
// library for parsing and wraps fetches in retry and circuit breaker
// protection.
package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/resilience/circuitbreaker"
	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/resilience/retry"
	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/usecase/fetch"
)

// feedUserAgent identifies the worker to feed servers.
const feedUserAgent = "RSS Feed Reader/1.0"

// RSSFetcher implements fetch.FeedFetcher using the gofeed library.
type RSSFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryPolicy    retry.Policy
}

// NewRSSFetcher creates an RSSFetcher with the given HTTP client.
// Retry and circuit breaker configuration is baked in.
func NewRSSFetcher(client *http.Client) *RSSFetcher {
	return &RSSFetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryPolicy:    retry.NetworkPolicy(),
	}
}

// Fetch retrieves and parses a feed, returning its entries newest first.
// Transient failures are retried with backoff; a tripped circuit breaker
// rejects the fetch immediately.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) ([]fetch.FeedItem, error) {
	var items []fetch.FeedItem

	retryErr := retry.WithPolicy(ctx, f.retryPolicy, func() error {
		result, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, feedURL)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch rejected, circuit breaker open",
					slog.String("feed_url", feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
			}
			return err
		}

		items = result.([]fetch.FeedItem)
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}

	return items, nil
}

// doFetch performs one fetch-and-parse without retry or circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) ([]fetch.FeedItem, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = feedUserAgent
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, classifyParseError(err)
	}

	items := make([]fetch.FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		// Some feeds omit GUIDs entirely; the link is the next best
		// stable identity for the dedup cursor.
		guid := it.GUID
		if guid == "" {
			guid = it.Link
		}

		items = append(items, fetch.FeedItem{
			GUID:  guid,
			Title: it.Title,
			Link:  it.Link,
		})
	}

	return items, nil
}

// classifyParseError maps gofeed's HTTP failure onto the retry package's
// error type so the transient predicate can tell 5xx from 4xx.
func classifyParseError(err error) error {
	var httpErr gofeed.HTTPError
	if errors.As(err, &httpErr) {
		return &retry.HTTPError{StatusCode: httpErr.StatusCode, Message: httpErr.Status}
	}
	return err
}
