package fetch

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFormat_CategoryMarkers(t *testing.T) {
	tests := []struct {
		category string
		marker   string
	}{
		{"Tech", "👨‍💻"},
		{"Finance", "💰"},
		{"Cybersecurity", "🔒"},
		{"Business", "💼"},
		{"Gardening", "📰"},
		{"", "📰"},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			n := Format(FeedItem{Title: "Hello", Link: "https://example.com/a"}, tt.category)
			want := tt.marker + " " + tt.category + ": Hello\n\n🔗 Read more: https://example.com/a"
			if n.Message != want {
				t.Errorf("message mismatch:\n got: %q\nwant: %q", n.Message, want)
			}
		})
	}
}

func TestFormat_SanitizesTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"curly quotes", "It’s “quoted”", `It's "quoted"`},
		{"dashes", "A – B — C", "A - B - C"},
		{"strips emoji and control chars", "Hot\x07 take 🔥 now", "Hot take  now"},
		{"keeps newlines", "line one\nline two", "line one\nline two"},
		{"trims whitespace", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Format(FeedItem{Title: tt.title, Link: "https://example.com"}, "Tech")
			if n.Title != tt.want {
				t.Errorf("sanitized title = %q, want %q", n.Title, tt.want)
			}
		})
	}
}

func TestFormat_CarriesSourceFields(t *testing.T) {
	n := Format(FeedItem{GUID: "g", Title: "Title", Link: " https://example.com/post "}, "Finance")

	if n.Link != "https://example.com/post" {
		t.Errorf("link = %q, want trimmed URL", n.Link)
	}
	if n.Category != "Finance" {
		t.Errorf("category = %q, want %q", n.Category, "Finance")
	}
	if !n.Deliverable() {
		t.Error("formatted notification must be deliverable")
	}
}

func TestFormat_TruncatesLongMessages(t *testing.T) {
	n := Format(FeedItem{
		Title: strings.Repeat("a", 5000),
		Link:  "https://example.com",
	}, "Tech")

	if got := utf8.RuneCountInString(n.Message); got != maxMessageLength {
		t.Errorf("truncated message length = %d characters, want %d", got, maxMessageLength)
	}
	if !strings.HasSuffix(n.Message, truncationSuffix) {
		t.Errorf("truncated message must end with %q", truncationSuffix)
	}
}

func TestFormat_ShortMessagesUntouched(t *testing.T) {
	n := Format(FeedItem{Title: "short", Link: "https://example.com"}, "Tech")
	if strings.HasSuffix(n.Message, truncationSuffix) {
		t.Errorf("short message must not be truncated: %q", n.Message)
	}
}

func TestTruncateMessage_CountsCharactersNotBytes(t *testing.T) {
	// A message of multi-byte runes just over the cap must be cut at a rune
	// boundary, never mid-encoding.
	msg := strings.Repeat("💰", maxMessageLength+1)
	out := truncateMessage(msg)

	if !utf8.ValidString(out) {
		t.Fatal("truncation produced invalid UTF-8")
	}
	if got := utf8.RuneCountInString(out); got != maxMessageLength {
		t.Errorf("length = %d characters, want %d", got, maxMessageLength)
	}
}
