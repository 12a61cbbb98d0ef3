package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and path
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tiroapi_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tiroapi_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tiroapi_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "path"},
	)

	// RateLimiterRejections counts rejected requests due to rate limiting
	RateLimiterRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tiroapi_rate_limiter_rejections_total",
			Help: "Total number of requests rejected by rate limiter",
		},
		[]string{"ip"},
	)

	// DatabaseOperationDuration measures database operation duration
	DatabaseOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tiroapi_db_operation_duration_seconds",
			Help:    "Database operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	// ScoreSubmissions counts score submissions by outcome (accepted,
	// rejected, failed)
	ScoreSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tiroapi_score_submissions_total",
			Help: "Total number of score submissions by outcome",
		},
		[]string{"outcome"},
	)

	// RecordsBroken counts new standing records created by submissions
	RecordsBroken = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tiroapi_records_broken_total",
			Help: "Total number of standing records superseded",
		},
	)

	// BroadcastsPublished counts live updates accepted for fan-out
	BroadcastsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tiroapi_broadcasts_published_total",
			Help: "Total number of live result updates published",
		},
	)

	// LiveSubscribers tracks currently connected scoreboard clients
	LiveSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tiroapi_live_subscribers",
			Help: "Number of currently connected live scoreboard clients",
		},
	)
)

// RecordDBOperation records the duration of a database operation
func RecordDBOperation(operation string, table string, startTime time.Time) {
	duration := time.Since(startTime).Seconds()
	DatabaseOperationDuration.WithLabelValues(operation, table).Observe(duration)
}
