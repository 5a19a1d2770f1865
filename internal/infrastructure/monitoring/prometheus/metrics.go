// Package prometheus exposes the service's metrics registry and the typed
// instrument set used by the HTTP layer, the resolver, the cache, and the
// provider adapters.  A dedicated registry (rather than the library default)
// keeps test runs isolated and avoids duplicate-registration panics.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ipgate"

var httpDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Metrics holds every instrument the service records.  Construct once at
// startup with NewMetrics and inject where needed.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP layer.
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Resolver outcomes, labelled by domain (patents|trademarks) and source
	// (client_database|uspto_api|none|error).
	ResolutionsTotal   *prometheus.CounterVec
	ResolutionDuration *prometheus.HistogramVec

	// Result cache.
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Provider adapters, labelled by adapter name and outcome
	// (hit|empty|error).
	ProviderCallsTotal   *prometheus.CounterVec
	ProviderCallDuration *prometheus.HistogramVec
}

// NewMetrics constructs and registers the full instrument set on a fresh
// registry, including the standard process and Go runtime collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration.",
			Buckets:   httpDurationBuckets,
		}, []string{"method", "path"}),
		ResolutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Completed resolutions by domain and result source.",
		}, []string{"domain", "source"}),
		ResolutionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolution_duration_seconds",
			Help:      "End-to-end resolution duration.",
			Buckets:   httpDurationBuckets,
		}, []string{"domain"}),
		CacheHitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Result cache hits.",
		}, []string{"domain"}),
		CacheMissesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Result cache misses.",
		}, []string{"domain"}),
		ProviderCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "Upstream provider calls by adapter and outcome.",
		}, []string{"adapter", "outcome"}),
		ProviderCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_call_duration_seconds",
			Help:      "Upstream provider call duration.",
			Buckets:   httpDurationBuckets,
		}, []string{"adapter"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ResolutionsTotal,
		m.ResolutionDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.ProviderCallsTotal,
		m.ProviderCallDuration,
	)
	return m
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveHTTPRequest records one completed HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusLabel(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveResolution records one completed resolver run.
func (m *Metrics) ObserveResolution(domain, source string, elapsed time.Duration) {
	m.ResolutionsTotal.WithLabelValues(domain, source).Inc()
	m.ResolutionDuration.WithLabelValues(domain).Observe(elapsed.Seconds())
}

// ObserveCacheAccess records a cache hit or miss for a domain.
func (m *Metrics) ObserveCacheAccess(domain string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(domain).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(domain).Inc()
}

// ObserveProviderCall records one upstream adapter call.
func (m *Metrics) ObserveProviderCall(adapter, outcome string, elapsed time.Duration) {
	m.ProviderCallsTotal.WithLabelValues(adapter, outcome).Inc()
	m.ProviderCallDuration.WithLabelValues(adapter).Observe(elapsed.Seconds())
}

func statusLabel(status int) string {
	// Bounded label cardinality: group by class.
	switch {
	case status < 200:
		return "1xx"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
