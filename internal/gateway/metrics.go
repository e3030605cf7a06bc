package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	queueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "evald",
			Subsystem: "gateway",
			Name:      "queue_depth",
			Help:      "Jobs waiting in the admission queue",
		},
	)

	workerState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "evald",
			Subsystem: "gateway",
			Name:      "worker_state",
			Help:      "Worker loop state (0=idle 1=draining 2=computing 3=publishing)",
		},
	)

	jobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "evald",
			Subsystem: "gateway",
			Name:      "jobs_total",
			Help:      "Jobs by terminal outcome",
		},
		[]string{"outcome"},
	)

	engineDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "evald",
			Subsystem: "gateway",
			Name:      "engine_duration_seconds",
			Help:      "Duration of engine Generate calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
		},
	)

	encodeFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "evald",
			Subsystem: "gateway",
			Name:      "encode_failures_total",
			Help:      "Per-context tokenizer failures absorbed by the encoder",
		},
	)

	rowsScored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "evald",
			Subsystem: "gateway",
			Name:      "rows_scored_total",
			Help:      "Context rows scored across all jobs",
		},
	)
)

func init() {
	prometheus.MustRegister(queueDepth, workerState, jobsTotal, engineDuration, encodeFailures, rowsScored)
}
