// Package fetch implements the fetch-dedup-deliver cycle: concurrent feed
// fetching, duplicate suppression against per-feed cursors, message
// formatting, and sequential spaced delivery to the configured channels.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/domain/entity"
	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/usecase/notify"
)

// FeedFetcher is an interface for fetching and parsing a syndication feed.
// Implementations own their retry and circuit breaking; entries come back in
// the feed's native order, newest first.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]FeedItem, error)
}

// FeedItem represents one parsed feed entry.
// GUID is the entry identity used by the dedup cursor.
type FeedItem struct {
	GUID  string
	Title string
	Link  string
}

// CycleStats contains statistics about one fetch-and-deliver cycle.
type CycleStats struct {
	Feeds     int
	NewItems  int
	Delivered int
	Failed    int
	Skipped   int
	Duration  time.Duration
}

// Service orchestrates the pipeline for a fixed set of configured feeds.
type Service struct {
	feeds    []entity.Feed
	fetcher  FeedFetcher
	tracker  *Tracker
	channels []notify.Channel

	// spacing paces sequential deliveries within a cycle to respect
	// downstream rate limits.
	spacing *rate.Limiter

	// running guards against overlapping cycles when the configured
	// interval is shorter than one cycle's wall-clock duration.
	running atomic.Bool
}

// NewService creates a fetch Service.
//
// messageSpacing is the minimum gap between consecutive deliveries within a
// cycle; a non-positive value disables spacing.
func NewService(feeds []entity.Feed, fetcher FeedFetcher, channels []notify.Channel, messageSpacing time.Duration) *Service {
	limit := rate.Inf
	if messageSpacing > 0 {
		limit = rate.Every(messageSpacing)
	}

	return &Service{
		feeds:    feeds,
		fetcher:  fetcher,
		tracker:  NewTracker(),
		channels: channels,
		spacing:  rate.NewLimiter(limit, 1),
	}
}

// Tracker exposes the dedup tracker, primarily for tests and diagnostics.
func (s *Service) Tracker() *Tracker {
	return s.tracker
}

// FetchAll fetches every configured feed concurrently and returns the
// combined list of new, formatted notifications. A failing feed contributes
// an empty sublist; it never aborts the other feeds.
func (s *Service) FetchAll(ctx context.Context) []entity.Notification {
	results := make([][]entity.Notification, len(s.feeds))

	var eg errgroup.Group
	for i, feed := range s.feeds {
		eg.Go(func() error {
			results[i] = s.fetchSingle(ctx, feed)
			return nil
		})
	}
	// Goroutines never return errors; per-feed failures are isolated inside
	// fetchSingle.
	_ = eg.Wait()

	var combined []entity.Notification
	for _, items := range results {
		combined = append(combined, items...)
	}
	return combined
}

// fetchSingle fetches one feed, filters out already-seen entries, and formats
// the remainder. All failure modes collapse to an empty slice after logging.
func (s *Service) fetchSingle(ctx context.Context, feed entity.Feed) []entity.Notification {
	items, err := s.fetcher.Fetch(ctx, feed.URL)
	if err != nil {
		slog.Warn("failed to fetch feed",
			slog.String("feed_url", feed.URL),
			slog.String("category", feed.Category),
			slog.Any("error", err))
		feedFetchesTotal.WithLabelValues("failure").Inc()
		return nil
	}

	if len(items) == 0 {
		slog.Debug("feed is empty",
			slog.String("feed_url", feed.URL))
		feedFetchesTotal.WithLabelValues("empty").Inc()
		return nil
	}

	fresh := s.tracker.FilterNew(feed.URL, items)
	feedFetchesTotal.WithLabelValues("success").Inc()
	newItemsTotal.Add(float64(len(fresh)))

	notifications := make([]entity.Notification, 0, len(fresh))
	for _, item := range fresh {
		notifications = append(notifications, Format(item, feed.Category))
	}

	slog.Info("feed fetched",
		slog.String("feed_url", feed.URL),
		slog.Int("entries", len(items)),
		slog.Int("new_items", len(notifications)))

	return notifications
}

// RunCycle executes one complete fetch-and-deliver pass.
//
// Behavior:
//   - a second invocation while a cycle is running returns
//     ErrCycleInProgress without doing any work;
//   - items without a formatted message are skipped and logged;
//   - a delivery failure is logged and the remaining items are still
//     attempted; one bad delivery never aborts the queue;
//   - a panic anywhere in the cycle is recovered and reported as an error so
//     the scheduler keeps firing.
func (s *Service) RunCycle(ctx context.Context) (stats *CycleStats, err error) {
	if !s.running.CompareAndSwap(false, true) {
		slog.Warn("cycle already running, skipping overlapping invocation")
		return nil, ErrCycleInProgress
	}
	defer s.running.Store(false)

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in fetch cycle",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			err = fmt.Errorf("fetch cycle panicked: %v", r)
		}
	}()

	start := time.Now()
	stats = &CycleStats{Feeds: len(s.feeds)}

	notifications := s.FetchAll(ctx)
	stats.NewItems = len(notifications)

	for i := range notifications {
		n := &notifications[i]

		if !n.Deliverable() {
			slog.Warn("skipping item without formatted message",
				slog.String("title", n.Title),
				slog.String("link", n.Link))
			itemsSkippedTotal.Inc()
			stats.Skipped++
			continue
		}

		if waitErr := s.spacing.Wait(ctx); waitErr != nil {
			stats.Duration = time.Since(start)
			return stats, fmt.Errorf("inter-message spacing interrupted: %w", waitErr)
		}

		s.deliver(ctx, n, stats)
	}

	stats.Duration = time.Since(start)
	slog.Info("cycle completed",
		slog.Int("feeds", stats.Feeds),
		slog.Int("new_items", stats.NewItems),
		slog.Int("delivered", stats.Delivered),
		slog.Int("failed", stats.Failed),
		slog.Int("skipped", stats.Skipped),
		slog.Duration("duration", stats.Duration))

	return stats, nil
}

// deliver sends one notification through every enabled channel, isolating
// failures per channel.
func (s *Service) deliver(ctx context.Context, n *entity.Notification, stats *CycleStats) {
	for _, ch := range s.channels {
		if !ch.IsEnabled() {
			continue
		}

		if err := ch.Send(ctx, n); err != nil {
			slog.Error("failed to deliver item",
				slog.String("channel", ch.Name()),
				slog.String("title", n.Title),
				slog.String("link", n.Link),
				slog.Any("error", err))
			itemsDeliveredTotal.WithLabelValues(ch.Name(), "failure").Inc()
			stats.Failed++
			continue
		}

		slog.Info("item delivered",
			slog.String("channel", ch.Name()),
			slog.String("title", n.Title))
		itemsDeliveredTotal.WithLabelValues(ch.Name(), "success").Inc()
		stats.Delivered++
	}
}
