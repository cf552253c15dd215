package entity

import "errors"

// Sentinel errors for domain validation failures.
var (
	// ErrMissingFeedURL indicates a feed descriptor without a URL.
	ErrMissingFeedURL = errors.New("feed url is required")

	// ErrInvalidFeedURL indicates a feed URL that is not a valid absolute URL.
	ErrInvalidFeedURL = errors.New("feed url is not a valid absolute URL")

	// ErrMissingCategory indicates a feed descriptor without a category label.
	ErrMissingCategory = errors.New("feed category is required")
)
