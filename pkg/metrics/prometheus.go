// Package metrics provides Prometheus metrics for the sales-ranking service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Pipeline metrics
	fetchesTotal    *prometheus.CounterVec
	fetchFallbacks  *prometheus.CounterVec
	fetchDuration   *prometheus.HistogramVec
	pagesFetched    prometheus.Counter
	salesFetched    prometheus.Gauge
	rosterSize      prometheus.Gauge
	rankingEntries  prometheus.Gauge
	rankingRebuilds prometheus.Counter
	newSaleEvents   prometheus.Counter
	notifyErrors    prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "placar",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.fetchesTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetches_total",
		Help:      "Upstream fetches by data kind, source mode and outcome.",
	}, []string{"kind", "mode", "outcome"})

	m.fetchFallbacks = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_fallbacks_total",
		Help:      "Live fetches that fell back to the synthetic source.",
	}, []string{"kind"})

	m.fetchDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_duration_ms",
		Help:      "Fetch round-trip duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"kind"})

	m.pagesFetched = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pages_fetched_total",
		Help:      "Upstream listing pages requested.",
	})

	m.salesFetched = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sales_fetched",
		Help:      "Sales returned by the most recent fetch.",
	})

	m.rosterSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_size",
		Help:      "Brokers known to the most recent roster fetch.",
	})

	m.rankingEntries = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_entries",
		Help:      "Entries in the current ranking snapshot.",
	})

	m.rankingRebuilds = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_rebuilds_total",
		Help:      "Full ranking recomputations.",
	})

	m.newSaleEvents = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "new_sale_events_total",
		Help:      "New-sale notifications emitted by the change detector.",
	})

	m.notifyErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notify_errors_total",
		Help:      "Notification deliveries that failed.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// Package-level helpers operating on the global manager.

// RecordFetch counts one upstream fetch attempt outcome.
func RecordFetch(kind, mode, outcome string) {
	if globalManager.enabled {
		globalManager.fetchesTotal.WithLabelValues(kind, mode, outcome).Inc()
	}
}

// RecordFetchFallback counts a live fetch that degraded to synthetic data.
func RecordFetchFallback(kind string) {
	if globalManager.enabled {
		globalManager.fetchFallbacks.WithLabelValues(kind).Inc()
	}
}

// RecordFetchDuration observes a fetch round-trip in milliseconds.
func RecordFetchDuration(kind string, ms float64) {
	if globalManager.enabled {
		globalManager.fetchDuration.WithLabelValues(kind).Observe(ms)
	}
}

// RecordPageFetched counts one upstream listing page request.
func RecordPageFetched() {
	if globalManager.enabled {
		globalManager.pagesFetched.Inc()
	}
}

// UpdateSalesFetched sets the size of the most recent sale fetch.
func UpdateSalesFetched(count int) {
	if globalManager.enabled {
		globalManager.salesFetched.Set(float64(count))
	}
}

// UpdateRosterSize sets the size of the most recent broker roster.
func UpdateRosterSize(count int) {
	if globalManager.enabled {
		globalManager.rosterSize.Set(float64(count))
	}
}

// UpdateRankingEntries sets the entry count of the current snapshot.
func UpdateRankingEntries(count int) {
	if globalManager.enabled {
		globalManager.rankingEntries.Set(float64(count))
	}
}

// RecordRankingRebuild counts one full ranking recomputation.
func RecordRankingRebuild() {
	if globalManager.enabled {
		globalManager.rankingRebuilds.Inc()
	}
}

// RecordNewSaleEvent counts one emitted new-sale notification.
func RecordNewSaleEvent() {
	if globalManager.enabled {
		globalManager.newSaleEvents.Inc()
	}
}

// RecordNotifyError counts one failed notification delivery.
func RecordNotifyError() {
	if globalManager.enabled {
		globalManager.notifyErrors.Inc()
	}
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration observes one HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
	}
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
