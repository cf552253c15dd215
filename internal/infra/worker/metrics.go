package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cycleRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worker_cycle_runs_total",
		Help: "Total pipeline cycles by outcome (success, failure, skipped).",
	}, []string{"status"})

	cycleDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "worker_cycle_duration_seconds",
		Help:    "Wall-clock duration of pipeline cycles.",
		Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300},
	})

	lastSuccessTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "worker_cycle_last_success_timestamp_seconds",
		Help: "Unix timestamp of the last successful cycle.",
	})
)
