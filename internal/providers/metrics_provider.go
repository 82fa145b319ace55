package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"giftdrip/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncDispatchOutcome(outcome string)
	ObserveDispatchDuration(duration time.Duration)
	SetDispatchLastRun(ts time.Time)
}

type MetricsProvider struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	dispatchOutcomes *prometheus.CounterVec
	dispatchDuration prometheus.Histogram
	dispatchLastRun  prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncDispatchOutcome(outcome string) {
	m.dispatchOutcomes.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObserveDispatchDuration(duration time.Duration) {
	m.dispatchDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetDispatchLastRun(ts time.Time) {
	m.dispatchLastRun.Set(float64(ts.Unix()))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "giftdrip_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "giftdrip_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "giftdrip_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "giftdrip_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		dispatchOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "giftdrip_dispatch_outcomes_total",
			Help: "Per-subscription outcomes of push dispatch cycles",
		}, []string{"outcome"}),

		dispatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "giftdrip_dispatch_cycle_duration_seconds",
			Help:    "Duration of push dispatch cycles in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		dispatchLastRun: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "giftdrip_dispatch_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last completed dispatch cycle",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncDispatchOutcome(_ string)                      {}
func (n *noopMetrics) ObserveDispatchDuration(_ time.Duration)          {}
func (n *noopMetrics) SetDispatchLastRun(_ time.Time)                   {}
