package fetch

import (
	"fmt"
	"strings"

	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/domain/entity"
)

const (
	// maxMessageLength is the hard cap on a formatted message, in characters.
	maxMessageLength = 4000

	truncationSuffix = "..."
	linkMarker       = "🔗"
	defaultMarker    = "📰"
)

// categoryMarkers maps a feed category to its decorative marker.
// This is the single central table; categories outside it fall back to
// defaultMarker.
var categoryMarkers = map[string]string{
	"Tech":          "👨‍💻",
	"Finance":       "💰",
	"Cybersecurity": "🔒",
	"Business":      "💼",
}

// titleReplacer normalizes typographic punctuation to plain ASCII before the
// printable-ASCII filter strips everything else.
var titleReplacer = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "-", // em dash
)

// Format turns a raw feed entry and its feed's category into a
// delivery-ready notification. It is pure: no I/O, no failure mode;
// malformed input simply passes through as empty strings.
func Format(item FeedItem, category string) entity.Notification {
	marker, ok := categoryMarkers[category]
	if !ok {
		marker = defaultMarker
	}

	title := sanitizeTitle(item.Title)
	link := strings.TrimSpace(item.Link)

	message := fmt.Sprintf("%s %s: %s\n\n%s Read more: %s",
		marker, category, title, linkMarker, link)
	message = truncateMessage(message)

	return entity.Notification{
		Title:    title,
		Link:     link,
		Category: category,
		Message:  message,
	}
}

// sanitizeTitle normalizes curly quotes and dashes to ASCII, strips every
// character outside the printable-ASCII-plus-newline range, and trims
// surrounding whitespace.
func sanitizeTitle(title string) string {
	normalized := titleReplacer.Replace(title)

	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		if r == '\n' || (r >= 0x20 && r <= 0x7E) {
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}

// truncateMessage bounds a message to maxMessageLength characters, replacing
// the tail with truncationSuffix so the result is exactly maxMessageLength.
func truncateMessage(message string) string {
	runes := []rune(message)
	if len(runes) <= maxMessageLength {
		return message
	}
	return string(runes[:maxMessageLength-len(truncationSuffix)]) + truncationSuffix
}
