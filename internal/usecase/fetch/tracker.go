package fetch

import "sync"

// Tracker records, per feed URL, the identity of the most recently emitted
// entry. It is the only mutable shared state in the pipeline and lives in
// process memory for the lifetime of the worker: a restart forgets history
// and the first cycle after restart re-emits the feed's current entries.
type Tracker struct {
	mu      sync.RWMutex
	cursors map[string]string
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{cursors: make(map[string]string)}
}

// FilterNew returns the entries of items considered new for the given feed
// URL and advances the cursor.
//
// Rules:
//   - no stored cursor (first successful fetch): every entry is new;
//   - otherwise an entry is new iff its GUID differs from the stored cursor;
//     the comparison is identity inequality across the whole list, not a
//     positional "before the cursor" scan;
//   - the cursor moves to items[0].GUID only when the filtered list and the
//     fetched list are both non-empty, so an empty or glitched fetch cannot
//     erase history.
//
// items must be in the feed's native order (newest first).
func (t *Tracker) FilterNew(feedURL string, items []FeedItem) []FeedItem {
	if len(items) == 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	cursor, seen := t.cursors[feedURL]

	var fresh []FeedItem
	for _, item := range items {
		if !seen || item.GUID != cursor {
			fresh = append(fresh, item)
		}
	}

	if len(fresh) > 0 {
		t.cursors[feedURL] = items[0].GUID
	}

	return fresh
}

// Cursor returns the stored cursor for a feed URL and whether one exists.
func (t *Tracker) Cursor(feedURL string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	cursor, ok := t.cursors[feedURL]
	return cursor, ok
}
