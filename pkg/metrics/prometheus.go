// Package metrics provides Prometheus metrics for the matchday service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the matchday service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Core business metrics
	matchesRecorded      prometheus.Counter
	duplicateSubmissions prometheus.Counter
	ratingUpdates        prometheus.Counter
	balanceRequests      prometheus.Counter
	balanceDuration      prometheus.Histogram
	splitsEvaluated      prometheus.Histogram

	// Operational health metrics
	rosterSize prometheus.Gauge
	matchCount prometheus.Gauge
	guestPools prometheus.Counter

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// Store metrics
	storeErrors       prometheus.Counter
	storeQueryLatency prometheus.Histogram
	storeWriteLatency prometheus.Histogram

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "matchday",
		subsystem:        "core",
		histogramBuckets: prometheus.DefBuckets,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.matchesRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_recorded_total",
		Help:      "Total number of match results recorded",
	})

	m.duplicateSubmissions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_submissions_total",
		Help:      "Total number of duplicate match submissions rejected",
	})

	m.ratingUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rating_updates_total",
		Help:      "Total number of per-player rating updates applied",
	})

	m.balanceRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "balance_requests_total",
		Help:      "Total number of team balance requests served",
	})

	m.balanceDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "balance_duration_milliseconds",
		Help:      "Histogram of team balance search duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.splitsEvaluated = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "splits_evaluated",
		Help:      "Histogram of candidate splits evaluated per balance request",
		Buckets:   []float64{1, 10, 50, 100, 500, 1000, 2000, 3500},
	})

	m.rosterSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_size",
		Help:      "Current number of players on the roster",
	})

	m.matchCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_count",
		Help:      "Total number of matches in the history",
	})

	m.guestPools = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "guest_pools_total",
		Help:      "Total number of balance requests that included guests",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_errors_total",
			Help:      "Total number of HTTP error responses by endpoint and type",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.storeErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Total number of repository errors",
	})

	m.storeQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_query_latency_milliseconds",
		Help:      "Repository read operation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeWriteLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_write_latency_milliseconds",
		Help:      "Repository write operation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Average garbage collection pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Package-level record functions operating on the global manager.

// RecordMatchRecorded increments the recorded-matches counter.
func RecordMatchRecorded() { globalManager.matchesRecorded.Inc() }

// RecordDuplicateSubmission increments the duplicate-submission counter.
func RecordDuplicateSubmission() { globalManager.duplicateSubmissions.Inc() }

// RecordRatingUpdates adds n applied rating updates.
func RecordRatingUpdates(n int) { globalManager.ratingUpdates.Add(float64(n)) }

// RecordBalanceRequest increments the balance-request counter.
func RecordBalanceRequest() { globalManager.balanceRequests.Inc() }

// RecordBalanceDuration observes a balance search duration in milliseconds.
func RecordBalanceDuration(ms float64) { globalManager.balanceDuration.Observe(ms) }

// RecordSplitsEvaluated observes the number of candidate splits evaluated.
func RecordSplitsEvaluated(n int) { globalManager.splitsEvaluated.Observe(float64(n)) }

// RecordGuestPool increments the guest-pool counter.
func RecordGuestPool() { globalManager.guestPools.Inc() }

// UpdateRosterSize sets the current roster size gauge.
func UpdateRosterSize(n int) { globalManager.rosterSize.Set(float64(n)) }

// UpdateMatchCount sets the match history size gauge.
func UpdateMatchCount(n int) { globalManager.matchCount.Set(float64(n)) }

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// RecordHTTPError increments the HTTP error counter.
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordStoreError increments the repository error counter.
func RecordStoreError() { globalManager.storeErrors.Inc() }

// RecordStoreQueryLatency observes a repository read latency in milliseconds.
func RecordStoreQueryLatency(ms float64) { globalManager.storeQueryLatency.Observe(ms) }

// RecordStoreWriteLatency observes a repository write latency in milliseconds.
func RecordStoreWriteLatency(ms float64) { globalManager.storeWriteLatency.Observe(ms) }

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(n int) { globalManager.systemGoroutineCount.Set(float64(n)) }

// RecordSystemGCPauseTime observes an average GC pause in milliseconds.
func RecordSystemGCPauseTime(ms float64) { globalManager.systemGCPauseTime.Observe(ms) }

// GetRegistry returns the custom Prometheus registry used by the service.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
