package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the fetch-and-deliver pipeline.
var (
	// feedFetchesTotal tracks per-feed fetch outcomes within cycles.
	feedFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetches_total",
			Help: "Total number of per-feed fetches",
		},
		[]string{"status"}, // status: success|failure|empty
	)

	// newItemsTotal tracks entries that survived dedup filtering.
	newItemsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_new_items_total",
			Help: "Total number of new feed items discovered",
		},
	)

	// itemsDeliveredTotal tracks delivery outcomes per channel.
	itemsDeliveredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "items_delivered_total",
			Help: "Total number of item deliveries",
		},
		[]string{"channel", "status"}, // status: success|failure
	)

	// itemsSkippedTotal tracks items dropped before delivery (no message).
	itemsSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "items_skipped_total",
			Help: "Total number of items skipped for missing formatted message",
		},
	)
)
